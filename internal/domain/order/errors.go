package order

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Sentinel errors for order validation.
var (
	ErrNotFound          = errors.New("order not found")
	ErrEmptyPositions    = errors.New("at least one position required")
	ErrInvalidReference  = errors.New("invalid reference")
	ErrOutOfRange        = errors.New("quantity out of range")
	ErrDivisionUndefined = errors.New("discount percentage undefined for zero total")
)

// Reference kinds reported by InvalidReferenceError.
const (
	KindClient  = "client"
	KindArticle = "article"
)

// InvalidReferenceError indicates that a client or article id does not resolve.
type InvalidReferenceError struct {
	Kind string
	ID   string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// Is reports whether target is ErrInvalidReference.
func (e *InvalidReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

// OutOfRangeError indicates a quantity outside the article's [Min, Max] order range.
type OutOfRangeError struct {
	ArticleID string
	Quantity  int
	Min       int
	Max       int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("quantity %d for article %s must be between %d and %d",
		e.Quantity, e.ArticleID, e.Min, e.Max)
}

// Is reports whether target is ErrOutOfRange.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
