package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"golang.org/x/sync/errgroup"
)

// ImportResult counts the records added and skipped per collection.
type ImportResult struct {
	Added   map[Collection]int
	Skipped map[Collection]int
}

// Dump writes all collections as one JSON object keyed by collection name.
// Records are copied verbatim.
func Dump(ctx context.Context, b Backend, w io.Writer) error {
	docs := make([][]jx.Raw, len(Collections))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range Collections {
		g.Go(func() error {
			raws, err := b.ReadAll(gctx, c)
			if err != nil {
				return errors.Wrapf(err, "read %s", c)
			}
			docs[i] = raws
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var e jx.Encoder
	e.ObjStart()
	for i, c := range Collections {
		e.FieldStart(string(c))
		e.ArrStart()
		for _, raw := range docs[i] {
			e.Raw(raw)
		}
		e.ArrEnd()
	}
	e.ObjEnd()
	if _, err := w.Write(e.Bytes()); err != nil {
		return errors.Wrap(err, "write dump")
	}
	return nil
}

// checks decode a record through its collection codec and validate it where
// the type carries invariants.
var checks = map[Collection]func(raw jx.Raw) error{
	Articles: func(raw jx.Raw) error {
		a, err := articleCodec.Decode(raw)
		if err != nil {
			return err
		}
		return a.Validate()
	},
	Clients: func(raw jx.Raw) error {
		c, err := clientCodec.Decode(raw)
		if err != nil {
			return err
		}
		return c.Validate()
	},
	Orders: func(raw jx.Raw) error {
		_, err := orderCodec.Decode(raw)
		return err
	},
	Users: func(raw jx.Raw) error {
		_, err := userCodec.Decode(raw)
		return err
	},
}

type importRecord struct {
	collection Collection
	id         string
	raw        jx.Raw
}

// Import appends the records of a document in the form written by Dump.
// Records whose id already exists are skipped and unknown collections are
// ignored, so importing the same document twice adds nothing. Every record
// is decoded and validated before the first one is written, so a rejected
// document leaves the backend unchanged.
func Import(ctx context.Context, b Backend, data []byte) (*ImportResult, error) {
	records, err := parseImport(data)
	if err != nil {
		return nil, errors.Wrap(err, "import")
	}

	res := &ImportResult{
		Added:   make(map[Collection]int),
		Skipped: make(map[Collection]int),
	}
	for _, r := range records {
		err := b.Append(ctx, r.collection, r.id, r.raw)
		switch {
		case errors.Is(err, ErrDuplicateID):
			res.Skipped[r.collection]++
			continue
		case err != nil:
			return res, errors.Wrapf(err, "append %s %s", r.collection, r.id)
		}
		res.Added[r.collection]++
	}
	return res, nil
}

func parseImport(data []byte) ([]importRecord, error) {
	var records []importRecord
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		c := Collection(key)
		check, ok := checks[c]
		if !ok {
			return d.Skip()
		}
		n := 0
		return d.Arr(func(d *jx.Decoder) error {
			n++
			raw, err := d.Raw()
			if err != nil {
				return err
			}
			id, err := RecordID(raw)
			if err != nil {
				return errors.Wrapf(err, "%s record %d", c, n)
			}
			if id == "" {
				return errors.Errorf("%s record %d: no id", c, n)
			}
			if err := check(raw); err != nil {
				return errors.Wrapf(err, "%s record %q", c, id)
			}
			records = append(records, importRecord{collection: c, id: id, raw: jx.Raw(bytes.Clone(raw))})
			return nil
		})
	})
	return records, err
}
