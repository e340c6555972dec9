package user

import (
	"context"

	"github.com/go-faster/errors"
)

var (
	// ErrNotFound is returned when a requested user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidUsername is returned when a username fails the format rules.
	ErrInvalidUsername = errors.New("username is not allowed")
	// ErrUsernameTaken is returned when a username is already in use (case-insensitive).
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrBadCredentials is returned when no user matches the given username and password.
	ErrBadCredentials = errors.New("username or password not found")
	// ErrEmptyPassword is returned when a password is set to the empty string.
	ErrEmptyPassword = errors.New("password required")
	// ErrForbidden is returned when a non-administrator opens a mutating screen.
	ErrForbidden = errors.New("administrator rights required")
)

// Field names a single editable attribute of a user.
type Field string

const (
	FieldUsername Field = "username"
	FieldPassword Field = "password"
	FieldIsAdmin  Field = "isAdmin"
)

// User is an operator account. The password is kept in clear text, matching
// the existing users collection format.
type User struct {
	ID       string
	Username string
	Password string
	IsAdmin  bool
}

// RequireAdmin returns ErrForbidden unless u is a logged-in administrator.
func RequireAdmin(u *User) error {
	if u == nil || !u.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// Repository defines persistence operations for the user collection.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User, fields ...Field) error
	Delete(ctx context.Context, ids []string) error
}
