package storage

import (
	"context"

	"github.com/go-faster/jx"

	"github.com/xenking/ercm/internal/domain/user"
)

var userCodec = newCodec(
	member[user.User]{
		name:   "id",
		encode: func(e *jx.Encoder, u *user.User) { e.Str(u.ID) },
		decode: func(d *jx.Decoder, u *user.User) (err error) { u.ID, err = readText(d); return err },
	},
	member[user.User]{
		name:   string(user.FieldUsername),
		encode: func(e *jx.Encoder, u *user.User) { e.Str(u.Username) },
		decode: func(d *jx.Decoder, u *user.User) (err error) { u.Username, err = d.Str(); return err },
	},
	member[user.User]{
		name:   string(user.FieldPassword),
		encode: func(e *jx.Encoder, u *user.User) { e.Str(u.Password) },
		decode: func(d *jx.Decoder, u *user.User) (err error) { u.Password, err = d.Str(); return err },
	},
	member[user.User]{
		name:   string(user.FieldIsAdmin),
		encode: func(e *jx.Encoder, u *user.User) { e.Bool(u.IsAdmin) },
		decode: func(d *jx.Decoder, u *user.User) (err error) { u.IsAdmin, err = d.Bool(); return err },
	},
)

var _ user.Repository = (*UserRepository)(nil)

// UserRepository implements user.Repository on top of a Backend.
type UserRepository struct {
	c collection[user.User]
}

// NewUserRepository returns a UserRepository that stores into b.
func NewUserRepository(b Backend) *UserRepository {
	return &UserRepository{c: collection[user.User]{
		backend:  b,
		name:     Users,
		codec:    userCodec,
		id:       func(u *user.User) string { return u.ID },
		notFound: user.ErrNotFound,
	}}
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	return r.c.list(ctx)
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return r.c.create(ctx, u)
}

// Update writes the given fields of u, or all of them when none are named.
func (r *UserRepository) Update(ctx context.Context, u *user.User, fields ...user.Field) error {
	return r.c.update(ctx, u, fieldNames(fields))
}

func (r *UserRepository) Delete(ctx context.Context, ids []string) error {
	return r.c.delete(ctx, ids)
}
