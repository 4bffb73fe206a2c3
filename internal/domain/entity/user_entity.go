package entity

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/Jaaccob/SagaApp/internal/domain/domainerr"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
)

const (
	minUsernameLen = 6
	maxUsernameLen = 20
	minPasswordLen = 6
	maxEmailLen    = 255

	// bcrypt only accepts this many bytes.
	maxPasswordBytes = 72
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)

// User is the aggregate root for user domain
// The plain password only lives until SealPassword replaces it with a hash.
type User struct {
	id           vo.UserID
	username     string
	password     string
	passwordHash string
	email        string
	roles        []Role
	createdAt    time.Time
}

type UserSnapshot struct {
	ID       vo.UserID
	Username string
	Email    string
	Roles    []vo.SystemRole
}

func NewUser(username, password, email string, roles ...Role) *User {
	return &User{
		username: username,
		password: password,
		email:    email,
		roles:    roles,
	}
}

// RestoreUser rehydrates a stored user; the password is only known as a hash.
func RestoreUser(id vo.UserID, username, email, passwordHash string, createdAt time.Time, roles []Role) *User {
	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		email:        email,
		roles:        roles,
		createdAt:    createdAt,
	}
}

func (u *User) Initialize() error {
	if !u.id.IsZero() {
		return domainerr.ErrAlreadyInitialized
	}
	u.id = vo.NewUserID()
	return nil
}

func (u *User) ValidateForRegistration() error {
	if err := u.validateUsername(); err != nil {
		return err
	}
	if err := u.validatePassword(); err != nil {
		return err
	}
	return u.validateEmail()
}

func (u *User) ValidateForLogin() error {
	if err := u.validateUsername(); err != nil {
		return err
	}
	return u.validatePassword()
}

func (u *User) validateUsername() error {
	switch {
	case strings.TrimSpace(u.username) == "":
		return domainerr.Validation("Username is required")
	case utf8.RuneCountInString(u.username) < minUsernameLen:
		return domainerr.Validation("Username must be at least %d characters", minUsernameLen)
	case utf8.RuneCountInString(u.username) > maxUsernameLen:
		return domainerr.Validation("Username is too long")
	}
	return nil
}

func (u *User) validatePassword() error {
	switch {
	case u.password == "":
		return domainerr.Validation("Password is required")
	case utf8.RuneCountInString(u.password) < minPasswordLen:
		return domainerr.Validation("Password must be at least %d characters", minPasswordLen)
	case len(u.password) > maxPasswordBytes:
		return domainerr.Validation("Password is too long")
	case strings.ContainsAny(u.password, "<>"):
		return domainerr.Validation("Password contains '<>'")
	}

	// "character" here means a special one: anything but a letter or digit.
	if !strings.ContainsFunc(u.password, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }) {
		return domainerr.Validation("Password must contain at least one character")
	}
	if !strings.ContainsFunc(u.password, unicode.IsUpper) {
		return domainerr.Validation("Password must contain at least one upper character")
	}
	return nil
}

func (u *User) validateEmail() error {
	if strings.TrimSpace(u.email) == "" {
		return domainerr.Validation("Email is required")
	}
	if utf8.RuneCountInString(u.email) > maxEmailLen {
		return domainerr.Validation("Email is too long")
	}
	if !emailPattern.MatchString(u.email) {
		return domainerr.Validation("The email address provided is incorrect")
	}
	return nil
}

// SealPassword stores the hash and forgets the plain password.
func (u *User) SealPassword(hash string) {
	u.passwordHash = hash
	u.password = ""
}

func (u *User) ID() vo.UserID        { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) Password() string     { return u.password }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Email() string        { return u.email }
func (u *User) Roles() []Role        { return u.roles }
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) RoleNames() []vo.SystemRole {
	return lo.Map(u.roles, func(r Role, _ int) vo.SystemRole { return r.Name })
}

func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:       u.id,
		Username: u.username,
		Email:    u.email,
		Roles:    u.RoleNames(),
	}
}
