// Package storage maps domain records to JSON documents kept in named
// collections and defines the backend contract those collections live behind.
package storage

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// Collection names a set of records of one kind.
type Collection string

const (
	Articles Collection = "articles"
	Clients  Collection = "clients"
	Orders   Collection = "orders"
	Users    Collection = "users"
)

// Collections lists every collection in load order.
var Collections = []Collection{Articles, Clients, Orders, Users}

// Backend errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("duplicate record id")
)

// FieldValue is one encoded member of a record.
type FieldValue struct {
	Name  string
	Value jx.Raw
}

// Backend stores collections of JSON objects matched by their "id" member.
//
// Records are returned in insertion order. Neither implementation isolates
// concurrent writers across processes; the last writer wins.
type Backend interface {
	// ReadAll returns every record of c. A collection that was never written is empty.
	ReadAll(ctx context.Context, c Collection) ([]jx.Raw, error)
	// Append adds doc to c. It returns ErrDuplicateID if id is already present.
	Append(ctx context.Context, c Collection, id string, doc jx.Raw) error
	// EditFields replaces the given members of the record with id, leaving the
	// rest of it untouched. It returns ErrNotFound if no record matches.
	EditFields(ctx context.Context, c Collection, id string, fields []FieldValue) error
	// DeleteByIDs removes all records whose id is in ids and reports how many
	// were removed. Unknown ids are ignored.
	DeleteByIDs(ctx context.Context, c Collection, ids []string) (int, error)
	Close() error
}

// Summer is implemented by backends that can total a numeric member
// server-side.
type Summer interface {
	Sum(ctx context.Context, c Collection, field string) (decimal.Decimal, error)
}
