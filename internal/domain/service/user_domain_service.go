package service

import (
	"time"

	"github.com/Jaaccob/SagaApp/internal/domain/entity"
	"github.com/Jaaccob/SagaApp/internal/domain/event"
)

type UserDomainService struct {
	now func() time.Time
}

func NewUserDomainService() *UserDomainService {
	return &UserDomainService{now: time.Now}
}

func (s *UserDomainService) Create(u *entity.User) (event.UserCreated, error) {
	if err := u.Initialize(); err != nil {
		return event.UserCreated{}, err
	}
	if err := u.ValidateForRegistration(); err != nil {
		return event.UserCreated{}, err
	}
	return event.UserCreated{User: u.Snapshot(), At: s.now()}, nil
}

func (s *UserDomainService) Login(u *entity.User) (event.UserLogged, error) {
	if err := u.ValidateForLogin(); err != nil {
		return event.UserLogged{}, err
	}
	return event.UserLogged{User: u.Snapshot(), At: s.now()}, nil
}
