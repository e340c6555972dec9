package storage

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// timeLayout matches the ISO form with millisecond precision used by the data files.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// member binds a JSON object key to a field of T.
type member[T any] struct {
	name   string
	encode func(e *jx.Encoder, v *T)
	decode func(d *jx.Decoder, v *T) error
}

// codec converts T to and from a JSON object. Members are written in
// declaration order; unknown keys are skipped on read.
type codec[T any] struct {
	members []member[T]
	byName  map[string]int
}

func newCodec[T any](members ...member[T]) *codec[T] {
	c := &codec[T]{members: members, byName: make(map[string]int, len(members))}
	for i, m := range members {
		c.byName[m.name] = i
	}
	return c
}

func (c *codec[T]) Encode(v *T) jx.Raw {
	var e jx.Encoder
	c.encodeTo(&e, v)
	return jx.Raw(e.Bytes())
}

func (c *codec[T]) encodeTo(e *jx.Encoder, v *T) {
	e.ObjStart()
	for _, m := range c.members {
		e.FieldStart(m.name)
		m.encode(e, v)
	}
	e.ObjEnd()
}

func (c *codec[T]) Decode(raw jx.Raw) (T, error) {
	var v T
	err := c.decodeFrom(jx.DecodeBytes(raw), &v)
	return v, err
}

func (c *codec[T]) decodeFrom(d *jx.Decoder, v *T) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		i, ok := c.byName[key]
		if !ok {
			return d.Skip()
		}
		if err := c.members[i].decode(d, v); err != nil {
			return errors.Wrapf(err, "decode %q", key)
		}
		return nil
	})
}

// Fields encodes the named members of v. Empty names encode every member.
func (c *codec[T]) Fields(v *T, names []string) ([]FieldValue, error) {
	if len(names) == 0 {
		names = make([]string, len(c.members))
		for i, m := range c.members {
			names[i] = m.name
		}
	}
	out := make([]FieldValue, 0, len(names))
	for _, name := range names {
		i, ok := c.byName[name]
		if !ok {
			return nil, errors.Errorf("unknown field %q", name)
		}
		var e jx.Encoder
		c.members[i].encode(&e, v)
		out = append(out, FieldValue{Name: name, Value: jx.Raw(e.Bytes())})
	}
	return out, nil
}

// RecordID returns the "id" member of doc as text. Numeric ids are
// returned in their literal form.
func RecordID(doc jx.Raw) (string, error) {
	var id string
	err := jx.DecodeBytes(doc).Obj(func(d *jx.Decoder, key string) error {
		if key != "id" {
			return d.Skip()
		}
		v, err := readText(d)
		id = v
		return err
	})
	if err != nil {
		return "", errors.Wrap(err, "read id")
	}
	return id, nil
}

// PatchObject returns a copy of the JSON object doc with the given members
// replaced in place. Members absent from doc are appended in the given order.
func PatchObject(doc jx.Raw, fields []FieldValue) (jx.Raw, error) {
	pending := make(map[string]jx.Raw, len(fields))
	for _, f := range fields {
		pending[f.Name] = f.Value
	}

	var e jx.Encoder
	e.ObjStart()
	err := jx.DecodeBytes(doc).Obj(func(d *jx.Decoder, key string) error {
		e.FieldStart(key)
		if v, ok := pending[key]; ok {
			delete(pending, key)
			e.Raw(v)
			return d.Skip()
		}
		raw, err := d.Raw()
		if err != nil {
			return err
		}
		e.Raw(raw)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode object")
	}
	for _, f := range fields {
		if v, ok := pending[f.Name]; ok {
			delete(pending, f.Name)
			e.FieldStart(f.Name)
			e.Raw(v)
		}
	}
	e.ObjEnd()
	return jx.Raw(e.Bytes()), nil
}

// readText reads a string or a number as text. Null reads as "".
func readText(d *jx.Decoder) (string, error) {
	switch tt := d.Next(); tt {
	case jx.String:
		return d.Str()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return "", err
		}
		return string(n), nil
	case jx.Null:
		return "", d.Null()
	default:
		return "", errors.Errorf("unexpected %v", tt)
	}
}

func readDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	s, err := readText(d)
	if err != nil {
		return decimal.Zero, err
	}
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// readInt reads an integral number. Null reads as 0 and integral values
// written with a fraction such as 3.0 are accepted.
func readInt(d *jx.Decoder) (int, error) {
	v, err := readDecimal(d)
	if err != nil {
		return 0, err
	}
	if !v.IsInteger() {
		return 0, errors.Errorf("%s is not an integer", v)
	}
	return int(v.IntPart()), nil
}

func writeDecimal(e *jx.Encoder, v decimal.Decimal) {
	e.Raw([]byte(v.String()))
}

func readTime(d *jx.Decoder) (time.Time, error) {
	s, err := d.Str()
	if err != nil {
		return time.Time{}, err
	}
	return ParseTime(s)
}

// ParseTime accepts full ISO timestamps and plain YYYY-MM-DD dates.
// Timestamps are returned in local time.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.Local(), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid time %q", s)
	}
	return t, nil
}

func writeTime(e *jx.Encoder, t time.Time) {
	e.Str(t.UTC().Format(timeLayout))
}
