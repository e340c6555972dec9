package storage

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
)

// collection is a typed view over one Backend collection.
type collection[T any] struct {
	backend  Backend
	name     Collection
	codec    *codec[T]
	id       func(*T) string
	notFound error
}

func (c *collection[T]) list(ctx context.Context) ([]T, error) {
	docs, err := c.backend.ReadAll(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.name, err)
	}
	out := make([]T, 0, len(docs))
	for i, doc := range docs {
		v, err := c.codec.Decode(doc)
		if err != nil {
			return nil, fmt.Errorf("decoding %s record %d: %w", c.name, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *collection[T]) get(ctx context.Context, id string) (*T, error) {
	all, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if c.id(&all[i]) == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", c.notFound, id)
}

func (c *collection[T]) create(ctx context.Context, v *T) error {
	id := c.id(v)
	if err := c.backend.Append(ctx, c.name, id, c.codec.Encode(v)); err != nil {
		return fmt.Errorf("appending to %s: %w", c.name, err)
	}
	return nil
}

func (c *collection[T]) update(ctx context.Context, v *T, names []string) error {
	fields, err := c.codec.Fields(v, names)
	if err != nil {
		return err
	}
	id := c.id(v)
	if err := c.backend.EditFields(ctx, c.name, id, fields); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: %s", c.notFound, id)
		}
		return fmt.Errorf("editing %s %s: %w", c.name, id, err)
	}
	return nil
}

func (c *collection[T]) delete(ctx context.Context, ids []string) error {
	if _, err := c.backend.DeleteByIDs(ctx, c.name, ids); err != nil {
		return fmt.Errorf("deleting from %s: %w", c.name, err)
	}
	return nil
}

func fieldNames[F ~string](fields []F) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "id" {
			continue
		}
		names = append(names, string(f))
	}
	return names
}
