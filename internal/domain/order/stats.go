package order

import "github.com/shopspring/decimal"

// ArticleStats aggregates how often and how much of an article was ordered.
type ArticleStats struct {
	Orders  int
	Units   int
	Revenue decimal.Decimal
}

// ClientStats aggregates the orders of a single client.
type ClientStats struct {
	Orders  int
	Total   decimal.Decimal
	Average decimal.Decimal
}

// Totals aggregates all orders.
type Totals struct {
	Orders  int
	Revenue decimal.Decimal
	Average decimal.Decimal
}

// StatsForArticle sums the positions that reference articleID. Revenue is the
// sum of frozen position prices.
func StatsForArticle(orders []Order, articleID string) ArticleStats {
	st := ArticleStats{Revenue: decimal.Zero}
	for _, o := range orders {
		counted := false
		for _, p := range o.Positions {
			if p.ArticleID != articleID {
				continue
			}
			if !counted {
				st.Orders++
				counted = true
			}
			st.Units += p.Amount
			st.Revenue = st.Revenue.Add(p.PositionPrice)
		}
	}
	return st
}

// StatsForClient sums the final prices of the client's orders.
func StatsForClient(orders []Order, clientID string) ClientStats {
	st := ClientStats{Total: decimal.Zero, Average: decimal.Zero}
	for _, o := range orders {
		if o.ClientID != clientID {
			continue
		}
		st.Orders++
		st.Total = st.Total.Add(o.Price)
	}
	if st.Orders > 0 {
		st.Average = st.Total.Div(decimal.NewFromInt(int64(st.Orders))).Round(2)
	}
	return st
}

// TotalsFor sums the final prices of all orders.
func TotalsFor(orders []Order) Totals {
	t := Totals{Orders: len(orders), Revenue: decimal.Zero, Average: decimal.Zero}
	for _, o := range orders {
		t.Revenue = t.Revenue.Add(o.Price)
	}
	if t.Orders > 0 {
		t.Average = t.Revenue.Div(decimal.NewFromInt(int64(t.Orders))).Round(2)
	}
	return t
}
