package storage

import (
	"context"

	"github.com/go-faster/jx"

	"github.com/xenking/ercm/internal/domain/order"
)

var positionCodec = newCodec(
	member[order.Position]{
		name:   "articleId",
		encode: func(e *jx.Encoder, p *order.Position) { e.Str(p.ArticleID) },
		decode: func(d *jx.Decoder, p *order.Position) (err error) { p.ArticleID, err = readText(d); return err },
	},
	member[order.Position]{
		name:   "amount",
		encode: func(e *jx.Encoder, p *order.Position) { e.Int(p.Amount) },
		decode: func(d *jx.Decoder, p *order.Position) (err error) { p.Amount, err = readInt(d); return err },
	},
	member[order.Position]{
		name:   "positionPrice",
		encode: func(e *jx.Encoder, p *order.Position) { writeDecimal(e, p.PositionPrice) },
		decode: func(d *jx.Decoder, p *order.Position) (err error) { p.PositionPrice, err = readDecimal(d); return err },
	},
)

func encodePositions(e *jx.Encoder, o *order.Order) {
	e.ArrStart()
	for i := range o.Positions {
		positionCodec.encodeTo(e, &o.Positions[i])
	}
	e.ArrEnd()
}

func decodePositions(d *jx.Decoder, o *order.Order) error {
	o.Positions = o.Positions[:0]
	return d.Arr(func(d *jx.Decoder) error {
		var p order.Position
		if err := positionCodec.decodeFrom(d, &p); err != nil {
			return err
		}
		o.Positions = append(o.Positions, p)
		return nil
	})
}

var orderCodec = newCodec(
	member[order.Order]{
		name:   "id",
		encode: func(e *jx.Encoder, o *order.Order) { e.Str(o.ID) },
		decode: func(d *jx.Decoder, o *order.Order) (err error) { o.ID, err = readText(d); return err },
	},
	member[order.Order]{
		name:   string(order.FieldOrderDate),
		encode: func(e *jx.Encoder, o *order.Order) { writeTime(e, o.OrderDate) },
		decode: func(d *jx.Decoder, o *order.Order) (err error) { o.OrderDate, err = readTime(d); return err },
	},
	member[order.Order]{
		name:   string(order.FieldDeliveryDate),
		encode: func(e *jx.Encoder, o *order.Order) { writeTime(e, o.DeliveryDate) },
		decode: func(d *jx.Decoder, o *order.Order) (err error) { o.DeliveryDate, err = readTime(d); return err },
	},
	member[order.Order]{
		name:   string(order.FieldPrice),
		encode: func(e *jx.Encoder, o *order.Order) { writeDecimal(e, o.Price) },
		decode: func(d *jx.Decoder, o *order.Order) (err error) { o.Price, err = readDecimal(d); return err },
	},
	member[order.Order]{
		name:   string(order.FieldPriceWithoutDiscount),
		encode: func(e *jx.Encoder, o *order.Order) { writeDecimal(e, o.PriceWithoutDiscount) },
		decode: func(d *jx.Decoder, o *order.Order) (err error) {
			o.PriceWithoutDiscount, err = readDecimal(d)
			return err
		},
	},
	member[order.Order]{
		name:   string(order.FieldPriceBeforeCustomerDiscount),
		encode: func(e *jx.Encoder, o *order.Order) { writeDecimal(e, o.PriceBeforeCustomerDiscount) },
		decode: func(d *jx.Decoder, o *order.Order) (err error) {
			o.PriceBeforeCustomerDiscount, err = readDecimal(d)
			return err
		},
	},
	member[order.Order]{
		name:   string(order.FieldClientID),
		encode: func(e *jx.Encoder, o *order.Order) { e.Str(o.ClientID) },
		decode: func(d *jx.Decoder, o *order.Order) (err error) { o.ClientID, err = readText(d); return err },
	},
	member[order.Order]{
		name:   string(order.FieldPositions),
		encode: encodePositions,
		decode: decodePositions,
	},
	member[order.Order]{
		name:   string(order.FieldTotalDiscount),
		encode: func(e *jx.Encoder, o *order.Order) { writeDecimal(e, o.TotalDiscount) },
		decode: func(d *jx.Decoder, o *order.Order) (err error) { o.TotalDiscount, err = readDecimal(d); return err },
	},
	member[order.Order]{
		name:   string(order.FieldDescription),
		encode: func(e *jx.Encoder, o *order.Order) { e.Str(o.Description) },
		decode: func(d *jx.Decoder, o *order.Order) (err error) { o.Description, err = readText(d); return err },
	},
)

// EncodeOrder returns the stored JSON form of o.
func EncodeOrder(o *order.Order) jx.Raw {
	return orderCodec.Encode(o)
}

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository on top of a Backend.
type OrderRepository struct {
	c collection[order.Order]
}

// NewOrderRepository returns an OrderRepository that stores into b.
func NewOrderRepository(b Backend) *OrderRepository {
	return &OrderRepository{c: collection[order.Order]{
		backend:  b,
		name:     Orders,
		codec:    orderCodec,
		id:       func(o *order.Order) string { return o.ID },
		notFound: order.ErrNotFound,
	}}
}

func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	return r.c.list(ctx)
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	return r.c.get(ctx, id)
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	return r.c.create(ctx, o)
}

// Update writes the given fields of o, or all of them when none are named.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order, fields ...order.Field) error {
	return r.c.update(ctx, o, fieldNames(fields))
}

func (r *OrderRepository) Delete(ctx context.Context, ids []string) error {
	return r.c.delete(ctx, ids)
}
