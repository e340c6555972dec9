package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/ercm/internal/domain/article"
)

var hundred = decimal.NewFromInt(100)

// Line is an operator's selection of an article and quantity.
type Line struct {
	ArticleID string
	Quantity  int
}

// Quote is the result of pricing a list of lines for one client.
type Quote struct {
	Positions                   []Position
	PriceWithoutDiscount        decimal.Decimal
	PriceBeforeCustomerDiscount decimal.Decimal
	Price                       decimal.Decimal
	TotalDiscount               decimal.Decimal
	LongestDeliveryTime         int
}

// Calculate prices lines in entry order against the article catalog and applies
// clientDiscount once to the item-discounted total.
//
// Each discount is rounded to 2 places as soon as it is applied.
func Calculate(lines []Line, articles []article.Article, clientDiscount decimal.Decimal) (*Quote, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyPositions
	}

	q := &Quote{
		Positions:                   make([]Position, 0, len(lines)),
		PriceWithoutDiscount:        decimal.Zero,
		PriceBeforeCustomerDiscount: decimal.Zero,
	}
	for _, line := range lines {
		a, ok := article.Find(articles, line.ArticleID)
		if !ok {
			return nil, &InvalidReferenceError{Kind: KindArticle, ID: line.ArticleID}
		}
		if err := CheckQuantity(a, line.Quantity); err != nil {
			return nil, err
		}

		positionPrice := PositionPrice(a, line.Quantity)
		q.PriceWithoutDiscount = q.PriceWithoutDiscount.Add(a.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		q.PriceBeforeCustomerDiscount = q.PriceBeforeCustomerDiscount.Add(positionPrice)
		q.LongestDeliveryTime = max(q.LongestDeliveryTime, a.DeliveryTime)

		q.Positions = append(q.Positions, Position{
			ArticleID:     a.ID,
			Amount:        line.Quantity,
			PositionPrice: positionPrice,
		})
	}

	q.Price = ApplyDiscount(q.PriceBeforeCustomerDiscount, clientDiscount)
	q.TotalDiscount = totalDiscount(q.Price, q.PriceWithoutDiscount)
	return q, nil
}

// CheckQuantity returns an *OutOfRangeError when qty lies outside the
// article's minimum and maximum order quantity.
func CheckQuantity(a *article.Article, qty int) error {
	if qty < a.MinOrderLength || qty > a.MaxOrderLength {
		return &OutOfRangeError{
			ArticleID: a.ID,
			Quantity:  qty,
			Min:       a.MinOrderLength,
			Max:       a.MaxOrderLength,
		}
	}
	return nil
}

// PositionPrice returns price*qty, reduced by the article discount when qty
// reaches the discount threshold.
func PositionPrice(a *article.Article, qty int) decimal.Decimal {
	price := a.Price.Mul(decimal.NewFromInt(int64(qty)))
	if qty >= a.DiscountLength {
		price = ApplyDiscount(price, a.DiscountPercent)
	}
	return price
}

// ApplyDiscount subtracts percent% from amount and rounds to 2 places.
func ApplyDiscount(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Sub(amount.Div(hundred).Mul(percent)).Round(2)
}

// DiscountPercent returns round2(100 - 100*price/base). It returns
// ErrDivisionUndefined when base is zero.
func DiscountPercent(price, base decimal.Decimal) (decimal.Decimal, error) {
	if base.IsZero() {
		return decimal.Zero, ErrDivisionUndefined
	}
	return hundred.Sub(hundred.Mul(price).Div(base)).Round(2), nil
}

// totalDiscount reports a zero-value order as 0% discounted.
func totalDiscount(price, base decimal.Decimal) decimal.Decimal {
	pct, err := DiscountPercent(price, base)
	if err != nil {
		return decimal.Zero
	}
	return pct
}

// DeliveryDate returns orderDate shifted by the given number of days.
func DeliveryDate(orderDate time.Time, days int) time.Time {
	return orderDate.AddDate(0, 0, days)
}

// Describe builds the order description "lastname, date".
func Describe(lastname string, orderDate time.Time, layout string) string {
	return lastname + ", " + orderDate.Format(layout)
}
