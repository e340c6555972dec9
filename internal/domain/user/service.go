package user

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Service encapsulates login and user administration rules.
type Service struct {
	users Repository
	newID func() string
}

// NewService creates a user Service backed by the given repository.
func NewService(users Repository) *Service {
	return &Service{users: users, newID: uuid.NewString}
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.users.List(ctx)
}

// Authenticate returns the user whose username and password both match exactly.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	var found *User
	for i := range users {
		u := &users[i]
		nameOK := subtle.ConstantTimeCompare([]byte(u.Username), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1
		if nameOK && passOK {
			found = u
		}
	}
	if found == nil {
		return nil, ErrBadCredentials
	}
	return found, nil
}

// CheckUsername validates the format of name and that no other user holds it.
// exceptID names the user being renamed and is ignored in the uniqueness check.
func (s *Service) CheckUsername(ctx context.Context, name, exceptID string) error {
	if !ValidUsername(name) {
		return ErrInvalidUsername
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list users")
	}
	for _, u := range users {
		if u.ID != exceptID && strings.EqualFold(u.Username, name) {
			return ErrUsernameTaken
		}
	}
	return nil
}

// Create validates and persists a new user.
func (s *Service) Create(ctx context.Context, username, password string, admin bool) (*User, error) {
	if err := s.CheckUsername(ctx, username, ""); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	u := &User{
		ID:       s.newID(),
		Username: username,
		Password: password,
		IsAdmin:  admin,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, errors.Wrap(err, "create user")
	}
	return u, nil
}

// Rename changes the username of u after validating it.
func (s *Service) Rename(ctx context.Context, u *User, username string) error {
	if err := s.CheckUsername(ctx, username, u.ID); err != nil {
		return err
	}
	u.Username = username
	return s.users.Update(ctx, u, FieldUsername)
}

// SetPassword replaces the password of u.
func (s *Service) SetPassword(ctx context.Context, u *User, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	u.Password = password
	return s.users.Update(ctx, u, FieldPassword)
}

// SetAdmin changes the administrator flag of u.
func (s *Service) SetAdmin(ctx context.Context, u *User, admin bool) error {
	u.IsAdmin = admin
	return s.users.Update(ctx, u, FieldIsAdmin)
}

// Delete removes the users with the given ids.
func (s *Service) Delete(ctx context.Context, ids []string) error {
	return s.users.Delete(ctx, ids)
}
