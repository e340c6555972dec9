package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/ercm/internal/domain/article"
	"github.com/xenking/ercm/internal/domain/client"
)

func TestSummarize(t *testing.T) {
	o := &Order{
		ID:       "o1",
		ClientID: "c1",
		Price:    d("12.5"),
		Positions: []Position{
			{ArticleID: "a1", Amount: 2, PositionPrice: d("10")},
			{ArticleID: "gone", Amount: 1, PositionPrice: d("2.5")},
		},
	}
	articles := []article.Article{{ID: "a1", Description: "Schraube"}}
	clients := []client.Client{{ID: "c1", Firstname: "Erika", Lastname: "Muster"}}

	s := Summarize(o, articles, clients)
	assert.Equal(t, "Erika Muster", s.ClientName)
	require.Len(t, s.Lines, 2)
	assert.Equal(t, "Schraube", s.Lines[0].Article)
	assert.Equal(t, "gone", s.Lines[1].Article)

	orphan := Summarize(&Order{ClientID: "deleted"}, nil, clients)
	assert.Empty(t, orphan.ClientName)
	assert.Empty(t, orphan.Lines)
}
