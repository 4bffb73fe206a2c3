package application

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/Jaaccob/SagaApp/internal/domain/domainerr"
	"github.com/Jaaccob/SagaApp/internal/domain/entity"
	"github.com/Jaaccob/SagaApp/internal/domain/event"
	"github.com/Jaaccob/SagaApp/internal/domain/repository"
	"github.com/Jaaccob/SagaApp/internal/domain/service"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
	"github.com/Jaaccob/SagaApp/pkg/helpers"
)

const (
	commandRegisterUser = "register_user"
	commandLoginUser    = "login_user"
)

type RegisterUserCommand struct {
	Username string
	Password string
	Email    string
}

type LoginCommand struct {
	Username string
	Password string
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

type TokenIssuer interface {
	IssuePair(userID string, roles []string) (helpers.TokenPair, error)
}

type UserStore interface {
	repository.UserRepository
	repository.UserOutboxRepository
}

// UserService runs the registration pipeline (same ordering and failure
// policy as product creation) and local login.
type UserService struct {
	pipeline
	domain *service.UserDomainService
	store  UserStore
	roles  *RoleCache
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewUserService(domain *service.UserDomainService, store UserStore, roles *RoleCache, hasher PasswordHasher, tokens TokenIssuer, publisher event.Publisher, opts ...Option) *UserService {
	return &UserService{
		pipeline: newPipeline(publisher, opts),
		domain:   domain,
		store:    store,
		roles:    roles,
		hasher:   hasher,
		tokens:   tokens,
	}
}

func (s *UserService) Register(ctx context.Context, cmd RegisterUserCommand) (vo.UserID, error) {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	id, err := s.register(ctx, cmd)
	s.metrics.ObserveCommand(commandRegisterUser, outcome(err), start)
	return id, err
}

func (s *UserService) register(ctx context.Context, cmd RegisterUserCommand) (vo.UserID, error) {
	// Caller mistakes are reported before any I/O can fail.
	if err := entity.NewUser(cmd.Username, cmd.Password, cmd.Email).ValidateForRegistration(); err != nil {
		return vo.UserID{}, err
	}

	role, err := s.roles.Get(ctx, vo.RoleUser)
	if err != nil {
		s.logger.WithError(err).Error("default role lookup failed")
		return vo.UserID{}, asStorage("role.lookup", err)
	}

	user := entity.NewUser(cmd.Username, cmd.Password, cmd.Email, role)
	created, err := s.domain.Create(user)
	if err != nil {
		return vo.UserID{}, err
	}

	hash, err := s.hasher.Hash(user.Password())
	if err != nil {
		s.logger.WithError(err).WithField("username", user.Username()).Error("password hashing failed")
		return vo.UserID{}, fmt.Errorf("hash password: %w", err)
	}
	user.SealPassword(hash)

	if err := s.save(ctx, user, created); err != nil {
		s.logger.WithError(err).WithField("username", user.Username()).Warn("store user failed")
		return vo.UserID{}, err
	}

	if !s.useOutbox {
		s.publishBestEffort(ctx, created)
	}

	s.logger.WithFields(logrus.Fields{"user_id": user.ID().String(), "username": user.Username()}).Info("user registered")
	return user.ID(), nil
}

func (s *UserService) save(ctx context.Context, u *entity.User, created event.UserCreated) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if !s.useOutbox {
		if err := s.store.Save(ctx, u); err != nil {
			return asStorage("user.save", err)
		}
		return nil
	}

	env, err := outboxEnvelope(created)
	if err != nil {
		return err
	}
	if err := s.store.SaveWithOutbox(ctx, u, env); err != nil {
		return asStorage("user.save_with_outbox", err)
	}
	return nil
}

// Login validates the credentials' shape, checks them against the stored
// hash and issues a token pair.
func (s *UserService) Login(ctx context.Context, cmd LoginCommand) (helpers.TokenPair, error) {
	start := time.Now()
	pair, err := s.login(ctx, cmd)
	s.metrics.ObserveCommand(commandLoginUser, outcome(err), start)
	return pair, err
}

func (s *UserService) login(ctx context.Context, cmd LoginCommand) (helpers.TokenPair, error) {
	logged, err := s.domain.Login(entity.NewUser(cmd.Username, cmd.Password, ""))
	if err != nil {
		return helpers.TokenPair{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	stored, err := s.store.GetByUsername(ctx, cmd.Username)
	if err != nil {
		if domainerr.IsNotFound(err) {
			return helpers.TokenPair{}, domainerr.ErrInvalidCredentials
		}
		return helpers.TokenPair{}, asStorage("user.get_by_username", err)
	}
	if !s.hasher.Compare(stored.PasswordHash(), cmd.Password) {
		return helpers.TokenPair{}, domainerr.ErrInvalidCredentials
	}

	roles := lo.Map(stored.RoleNames(), func(r vo.SystemRole, _ int) string { return r.String() })
	pair, err := s.tokens.IssuePair(stored.ID().String(), roles)
	if err != nil {
		return helpers.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":   stored.ID().String(),
		"username":  logged.User.Username,
		"logged_at": logged.At,
	}).Info("user logged in")
	return pair, nil
}
