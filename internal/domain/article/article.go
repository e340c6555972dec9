package article

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested article does not exist.
var ErrNotFound = errors.New("article not found")

// ErrInvalid is returned when an article violates a field constraint.
var ErrInvalid = errors.New("invalid article")

// ErrInvalidOrderRange is returned when the minimum order quantity exceeds the maximum.
var ErrInvalidOrderRange = errors.Wrap(ErrInvalid, "minimum order quantity exceeds maximum")

// Default values offered when an article is created.
const DefaultDeliveryTime = 3

// Field names a single editable attribute of an article.
type Field string

const (
	FieldDescription     Field = "description"
	FieldDate            Field = "date"
	FieldPrice           Field = "price"
	FieldDeliveryTime    Field = "deliveryTime"
	FieldMinOrderLength  Field = "minOrderLength"
	FieldMaxOrderLength  Field = "maxOrderLength"
	FieldDiscountLength  Field = "discountLength"
	FieldDiscountPercent Field = "discountPercent"
)

// Article is a catalog item that can be ordered once its availability date
// has been reached.
type Article struct {
	ID              string
	Description     string
	Date            time.Time
	Price           decimal.Decimal
	DeliveryTime    int
	MinOrderLength  int
	MaxOrderLength  int
	DiscountLength  int
	DiscountPercent decimal.Decimal
}

// Validate checks the invariants of an article record.
func (a *Article) Validate() error {
	if a.Price.IsNegative() {
		return errors.Wrap(ErrInvalid, "price must not be negative")
	}
	if a.DeliveryTime < 0 {
		return errors.Wrap(ErrInvalid, "delivery time must not be negative")
	}
	if a.MinOrderLength > a.MaxOrderLength {
		return ErrInvalidOrderRange
	}
	if a.DiscountPercent.IsNegative() || a.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return errors.Wrap(ErrInvalid, "discount percent must be between 0 and 100")
	}
	return nil
}

// AvailableOn reports whether the article may be ordered on the given day.
// Both sides are compared by calendar date only.
func (a *Article) AvailableOn(day time.Time) bool {
	y1, m1, d1 := a.Date.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 <= d2
}

// Available filters articles down to those orderable on the given day,
// keeping their original order.
func Available(articles []Article, day time.Time) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.AvailableOn(day) {
			out = append(out, a)
		}
	}
	return out
}

// Repository defines persistence operations for the article collection.
type Repository interface {
	List(ctx context.Context) ([]Article, error)
	Create(ctx context.Context, a *Article) error
	Update(ctx context.Context, a *Article, fields ...Field) error
	Delete(ctx context.Context, ids []string) error
}

// Find returns the article with the given id from a loaded collection.
func Find(articles []Article, id string) (*Article, bool) {
	for i := range articles {
		if articles[i].ID == id {
			return &articles[i], true
		}
	}
	return nil, false
}
