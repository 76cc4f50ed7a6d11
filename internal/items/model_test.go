package items

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestItem_DerivedQuantities(t *testing.T) {
	item := Item{
		Price:           decimal.RequireFromString("2.50"),
		Quantity:        7,
		InitialQuantity: 10,
	}

	require.Equal(t, 3, item.SoldQuantity())
	require.Equal(t, 3, item.RefundableQuantity())

	// Sin mutación, el derivado es estable.
	require.Equal(t, item.SoldQuantity(), item.SoldQuantity())
}

func TestItem_DerivedQuantities_NothingSold(t *testing.T) {
	item := Item{Quantity: 5, InitialQuantity: 5}

	require.Equal(t, 0, item.SoldQuantity())
	require.Equal(t, 0, item.RefundableQuantity())
}
