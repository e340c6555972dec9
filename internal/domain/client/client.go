package client

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested client does not exist.
var ErrNotFound = errors.New("client not found")

// ErrInvalid is returned when a client violates a field constraint.
var ErrInvalid = errors.New("invalid client")

// Field names a single editable attribute of a client.
type Field string

const (
	FieldFirstname Field = "firstname"
	FieldLastname  Field = "lastname"
	FieldStreet    Field = "street"
	FieldHouseNo   Field = "houseno"
	FieldCity      Field = "city"
	FieldZip       Field = "zip"
	FieldDiscount  Field = "discount"
)

// Client is a customer. Discount is a percentage applied once to the whole
// order after all per-position discounts.
type Client struct {
	ID        string
	Firstname string
	Lastname  string
	Street    string
	HouseNo   string
	City      string
	Zip       string
	Discount  decimal.Decimal
}

// FullName returns "Firstname Lastname".
func (c *Client) FullName() string {
	return c.Firstname + " " + c.Lastname
}

// Validate checks the invariants of a client record.
func (c *Client) Validate() error {
	if c.Discount.IsNegative() || c.Discount.GreaterThan(decimal.NewFromInt(100)) {
		return errors.Wrap(ErrInvalid, "discount must be between 0 and 100")
	}
	return nil
}

// Find returns the client with the given id from a loaded collection.
func Find(clients []Client, id string) (*Client, bool) {
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i], true
		}
	}
	return nil, false
}

// Repository defines persistence operations for the client collection.
type Repository interface {
	List(ctx context.Context) ([]Client, error)
	Create(ctx context.Context, c *Client) error
	Update(ctx context.Context, c *Client, fields ...Field) error
	Delete(ctx context.Context, ids []string) error
}
