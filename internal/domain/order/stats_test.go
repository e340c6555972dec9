package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func statsFixture() []Order {
	return []Order{
		{ID: "o1", ClientID: "c1", Price: d("100"), Positions: []Position{
			{ArticleID: "a1", Amount: 2, PositionPrice: d("20")},
			{ArticleID: "a1", Amount: 3, PositionPrice: d("30")},
		}},
		{ID: "o2", ClientID: "c2", Price: d("50.5"), Positions: []Position{
			{ArticleID: "a2", Amount: 1, PositionPrice: d("50.5")},
		}},
		{ID: "o3", ClientID: "c1", Price: d("25"), Positions: []Position{
			{ArticleID: "a1", Amount: 1, PositionPrice: d("10")},
		}},
	}
}

func TestStatsForArticle(t *testing.T) {
	st := StatsForArticle(statsFixture(), "a1")
	assert.Equal(t, 2, st.Orders)
	assert.Equal(t, 6, st.Units)
	assert.Equal(t, "60.00", st.Revenue.StringFixed(2))

	none := StatsForArticle(statsFixture(), "zz")
	assert.Zero(t, none.Orders)
	assert.True(t, none.Revenue.IsZero())
}

func TestStatsForClient(t *testing.T) {
	st := StatsForClient(statsFixture(), "c1")
	assert.Equal(t, 2, st.Orders)
	assert.Equal(t, "125.00", st.Total.StringFixed(2))
	assert.Equal(t, "62.50", st.Average.StringFixed(2))

	none := StatsForClient(statsFixture(), "zz")
	assert.True(t, none.Average.IsZero())
}

func TestTotalsFor(t *testing.T) {
	tot := TotalsFor(statsFixture())
	assert.Equal(t, 3, tot.Orders)
	assert.Equal(t, "175.50", tot.Revenue.StringFixed(2))
	assert.Equal(t, "58.50", tot.Average.StringFixed(2))

	assert.True(t, TotalsFor(nil).Average.IsZero())
}
