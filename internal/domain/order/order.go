package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Field names a single persisted attribute of an order.
type Field string

const (
	FieldOrderDate                   Field = "orderDate"
	FieldDeliveryDate                Field = "deliveryDate"
	FieldPrice                       Field = "price"
	FieldPriceWithoutDiscount        Field = "priceWithoutDiscount"
	FieldPriceBeforeCustomerDiscount Field = "priceBeforeCustomerDiscount"
	FieldClientID                    Field = "clientId"
	FieldPositions                   Field = "positions"
	FieldTotalDiscount               Field = "totalDiscount"
	FieldDescription                 Field = "description"
)

// Order is a priced, dated customer order.
//
// Price is the amount after item and client discounts. PriceBeforeCustomerDiscount
// is the snapshot after item discounts only; a later client change reprices from it
// without walking the positions again.
type Order struct {
	ID                          string
	OrderDate                   time.Time
	DeliveryDate                time.Time
	Price                       decimal.Decimal
	PriceWithoutDiscount        decimal.Decimal
	PriceBeforeCustomerDiscount decimal.Decimal
	ClientID                    string
	Positions                   []Position
	TotalDiscount               decimal.Decimal
	Description                 string
}

// Position is one line item of an order. PositionPrice is frozen when the
// position is priced and includes the item discount but not the client discount.
type Position struct {
	ArticleID     string
	Amount        int
	PositionPrice decimal.Decimal
}

// Repository defines persistence operations for orders.
type Repository interface {
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order, fields ...Field) error
	Delete(ctx context.Context, ids []string) error
}
