// Package jsonfile stores each collection as a JSON array in its own file.
package jsonfile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/ercm/internal/storage"
)

var _ storage.Backend = (*Backend)(nil)

// Backend implements storage.Backend with a whole-file read-modify-write per
// mutation. Untouched records are written back byte for byte.
type Backend struct {
	dir string
	mu  sync.Mutex
}

// Open returns a Backend rooted at dir, creating the directory if needed.
func Open(dir string) (*Backend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Backend{dir: dir}, nil
}

// Path returns the file that holds c.
func (b *Backend) Path(c storage.Collection) string {
	return filepath.Join(b.dir, string(c)+".json")
}

func (b *Backend) ReadAll(_ context.Context, c storage.Collection) ([]jx.Raw, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load(c)
}

func (b *Backend) Append(_ context.Context, c storage.Collection, id string, doc jx.Raw) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	docs, err := b.load(c)
	if err != nil {
		return err
	}
	for _, existing := range docs {
		existingID, err := storage.RecordID(existing)
		if err != nil {
			return err
		}
		if existingID == id {
			return errors.Wrap(storage.ErrDuplicateID, id)
		}
	}
	return b.store(c, append(docs, doc))
}

func (b *Backend) EditFields(_ context.Context, c storage.Collection, id string, fields []storage.FieldValue) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	docs, err := b.load(c)
	if err != nil {
		return err
	}
	found := false
	for i, doc := range docs {
		docID, err := storage.RecordID(doc)
		if err != nil {
			return err
		}
		if docID != id {
			continue
		}
		patched, err := storage.PatchObject(doc, fields)
		if err != nil {
			return fmt.Errorf("patching %s %s: %w", c, id, err)
		}
		docs[i] = patched
		found = true
	}
	if !found {
		return storage.ErrNotFound
	}
	return b.store(c, docs)
}

func (b *Backend) DeleteByIDs(_ context.Context, c storage.Collection, ids []string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	docs, err := b.load(c)
	if err != nil {
		return 0, err
	}
	kept := docs[:0]
	for _, doc := range docs {
		docID, err := storage.RecordID(doc)
		if err != nil {
			return 0, err
		}
		if !slices.Contains(ids, docID) {
			kept = append(kept, doc)
		}
	}
	removed := len(docs) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, b.store(c, kept)
}

func (b *Backend) Close() error { return nil }

func (b *Backend) load(c storage.Collection) ([]jx.Raw, error) {
	data, err := os.ReadFile(b.Path(c))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var docs []jx.Raw
	err = jx.DecodeBytes(data).Arr(func(d *jx.Decoder) error {
		if d.Next() != jx.Object {
			return errors.Errorf("record %d is not an object", len(docs))
		}
		raw, err := d.Raw()
		if err != nil {
			return err
		}
		docs = append(docs, bytes.Clone(raw))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", b.Path(c), err)
	}
	return docs, nil
}

// store replaces the collection file atomically via rename.
func (b *Backend) store(c storage.Collection, docs []jx.Raw) error {
	var e jx.Encoder
	e.ArrStart()
	for _, doc := range docs {
		e.Raw(doc)
	}
	e.ArrEnd()

	path := b.Path(c)
	tmp, err := os.CreateTemp(b.dir, "."+string(c)+"-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod %s: %w", c, err)
	}
	if _, err := tmp.Write(e.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", c, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", c, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
