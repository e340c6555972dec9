package client

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		discount string
		wantErr  bool
	}{
		{"zero", "0", false},
		{"fraction", "12.5", false},
		{"full", "100", false},
		{"negative", "-1", true},
		{"above hundred", "100.01", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{ID: "c1", Discount: decimal.RequireFromString(tt.discount)}
			err := c.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestFind(t *testing.T) {
	clients := []Client{
		{ID: "1", Firstname: "Erika", Lastname: "Muster"},
		{ID: "2", Firstname: "Hans", Lastname: "Meier"},
	}

	c, ok := Find(clients, "2")
	require.True(t, ok)
	assert.Equal(t, "Hans Meier", c.FullName())

	c.Lastname = "Maier"
	assert.Equal(t, "Maier", clients[1].Lastname)

	_, ok = Find(clients, "3")
	assert.False(t, ok)
}
