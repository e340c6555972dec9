package storage

import (
	"context"

	"github.com/go-faster/jx"

	"github.com/xenking/ercm/internal/domain/client"
)

func clientText(name string, field func(*client.Client) *string) member[client.Client] {
	return member[client.Client]{
		name:   name,
		encode: func(e *jx.Encoder, c *client.Client) { e.Str(*field(c)) },
		decode: func(d *jx.Decoder, c *client.Client) (err error) { *field(c), err = readText(d); return err },
	}
}

var clientCodec = newCodec(
	clientText("id", func(c *client.Client) *string { return &c.ID }),
	clientText(string(client.FieldFirstname), func(c *client.Client) *string { return &c.Firstname }),
	clientText(string(client.FieldLastname), func(c *client.Client) *string { return &c.Lastname }),
	clientText(string(client.FieldStreet), func(c *client.Client) *string { return &c.Street }),
	// House numbers and zip codes were stored as numbers by older data files.
	clientText(string(client.FieldHouseNo), func(c *client.Client) *string { return &c.HouseNo }),
	clientText(string(client.FieldCity), func(c *client.Client) *string { return &c.City }),
	clientText(string(client.FieldZip), func(c *client.Client) *string { return &c.Zip }),
	member[client.Client]{
		name:   string(client.FieldDiscount),
		encode: func(e *jx.Encoder, c *client.Client) { writeDecimal(e, c.Discount) },
		decode: func(d *jx.Decoder, c *client.Client) (err error) { c.Discount, err = readDecimal(d); return err },
	},
)

var _ client.Repository = (*ClientRepository)(nil)

// ClientRepository implements client.Repository on top of a Backend.
type ClientRepository struct {
	c collection[client.Client]
}

// NewClientRepository returns a ClientRepository that stores into b.
func NewClientRepository(b Backend) *ClientRepository {
	return &ClientRepository{c: collection[client.Client]{
		backend:  b,
		name:     Clients,
		codec:    clientCodec,
		id:       func(c *client.Client) string { return c.ID },
		notFound: client.ErrNotFound,
	}}
}

func (r *ClientRepository) List(ctx context.Context) ([]client.Client, error) {
	return r.c.list(ctx)
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	return r.c.create(ctx, c)
}

// Update writes the given fields of c, or all of them when none are named.
func (r *ClientRepository) Update(ctx context.Context, c *client.Client, fields ...client.Field) error {
	return r.c.update(ctx, c, fieldNames(fields))
}

func (r *ClientRepository) Delete(ctx context.Context, ids []string) error {
	return r.c.delete(ctx, ids)
}
