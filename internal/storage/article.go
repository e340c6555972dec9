package storage

import (
	"context"

	"github.com/go-faster/jx"

	"github.com/xenking/ercm/internal/domain/article"
)

var articleCodec = newCodec(
	member[article.Article]{
		name:   "id",
		encode: func(e *jx.Encoder, a *article.Article) { e.Str(a.ID) },
		decode: func(d *jx.Decoder, a *article.Article) (err error) { a.ID, err = readText(d); return err },
	},
	member[article.Article]{
		name:   string(article.FieldDescription),
		encode: func(e *jx.Encoder, a *article.Article) { e.Str(a.Description) },
		decode: func(d *jx.Decoder, a *article.Article) (err error) { a.Description, err = readText(d); return err },
	},
	member[article.Article]{
		name:   string(article.FieldDate),
		encode: func(e *jx.Encoder, a *article.Article) { writeTime(e, a.Date) },
		decode: func(d *jx.Decoder, a *article.Article) (err error) { a.Date, err = readTime(d); return err },
	},
	member[article.Article]{
		name:   string(article.FieldPrice),
		encode: func(e *jx.Encoder, a *article.Article) { writeDecimal(e, a.Price) },
		decode: func(d *jx.Decoder, a *article.Article) (err error) { a.Price, err = readDecimal(d); return err },
	},
	member[article.Article]{
		name:   string(article.FieldDeliveryTime),
		encode: func(e *jx.Encoder, a *article.Article) { e.Int(a.DeliveryTime) },
		decode: func(d *jx.Decoder, a *article.Article) (err error) { a.DeliveryTime, err = readInt(d); return err },
	},
	member[article.Article]{
		name:   string(article.FieldMinOrderLength),
		encode: func(e *jx.Encoder, a *article.Article) { e.Int(a.MinOrderLength) },
		decode: func(d *jx.Decoder, a *article.Article) (err error) { a.MinOrderLength, err = readInt(d); return err },
	},
	member[article.Article]{
		name:   string(article.FieldMaxOrderLength),
		encode: func(e *jx.Encoder, a *article.Article) { e.Int(a.MaxOrderLength) },
		decode: func(d *jx.Decoder, a *article.Article) (err error) { a.MaxOrderLength, err = readInt(d); return err },
	},
	member[article.Article]{
		name:   string(article.FieldDiscountLength),
		encode: func(e *jx.Encoder, a *article.Article) { e.Int(a.DiscountLength) },
		decode: func(d *jx.Decoder, a *article.Article) (err error) { a.DiscountLength, err = readInt(d); return err },
	},
	member[article.Article]{
		name:   string(article.FieldDiscountPercent),
		encode: func(e *jx.Encoder, a *article.Article) { writeDecimal(e, a.DiscountPercent) },
		decode: func(d *jx.Decoder, a *article.Article) (err error) { a.DiscountPercent, err = readDecimal(d); return err },
	},
)

var _ article.Repository = (*ArticleRepository)(nil)

// ArticleRepository implements article.Repository on top of a Backend.
type ArticleRepository struct {
	c collection[article.Article]
}

// NewArticleRepository returns an ArticleRepository that stores into b.
func NewArticleRepository(b Backend) *ArticleRepository {
	return &ArticleRepository{c: collection[article.Article]{
		backend:  b,
		name:     Articles,
		codec:    articleCodec,
		id:       func(a *article.Article) string { return a.ID },
		notFound: article.ErrNotFound,
	}}
}

func (r *ArticleRepository) List(ctx context.Context) ([]article.Article, error) {
	return r.c.list(ctx)
}

func (r *ArticleRepository) Create(ctx context.Context, a *article.Article) error {
	return r.c.create(ctx, a)
}

// Update writes the given fields of a, or all of them when none are named.
func (r *ArticleRepository) Update(ctx context.Context, a *article.Article, fields ...article.Field) error {
	return r.c.update(ctx, a, fieldNames(fields))
}

func (r *ArticleRepository) Delete(ctx context.Context, ids []string) error {
	return r.c.delete(ctx, ids)
}
