package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/ercm/internal/domain/article"
	"github.com/xenking/ercm/internal/domain/client"
)

// Summary is a display-ready view of an order with references resolved.
type Summary struct {
	OrderID       string
	Description   string
	ClientName    string
	OrderDate     time.Time
	DeliveryDate  time.Time
	Lines         []SummaryLine
	Price         decimal.Decimal
	TotalDiscount decimal.Decimal
}

// SummaryLine is one position of a Summary.
type SummaryLine struct {
	ArticleID     string
	Article       string
	Amount        int
	PositionPrice decimal.Decimal
}

// Summarize resolves client and article names for o. Positions whose article no
// longer exists keep their article id as the name; a missing client leaves
// ClientName empty.
func Summarize(o *Order, articles []article.Article, clients []client.Client) Summary {
	s := Summary{
		OrderID:       o.ID,
		Description:   o.Description,
		OrderDate:     o.OrderDate,
		DeliveryDate:  o.DeliveryDate,
		Price:         o.Price,
		TotalDiscount: o.TotalDiscount,
		Lines:         make([]SummaryLine, 0, len(o.Positions)),
	}
	if c, ok := client.Find(clients, o.ClientID); ok {
		s.ClientName = c.FullName()
	}
	for _, p := range o.Positions {
		name := p.ArticleID
		if a, ok := article.Find(articles, p.ArticleID); ok {
			name = a.Description
		}
		s.Lines = append(s.Lines, SummaryLine{
			ArticleID:     p.ArticleID,
			Article:       name,
			Amount:        p.Amount,
			PositionPrice: p.PositionPrice,
		})
	}
	return s
}
