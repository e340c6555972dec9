package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/ercm/internal/domain/article"
	"github.com/xenking/ercm/internal/domain/client"
)

// DefaultDateLayout renders dates as day.month.year without padding.
const DefaultDateLayout = "2.1.2006"

// dayStartHour is the wall-clock hour that new order dates are pinned to.
const dayStartHour = 1

// CreateRequest holds the input for creating an order.
type CreateRequest struct {
	ClientID string
	Lines    []Line
}

// Service encapsulates order pricing and fulfillment rules.
type Service struct {
	orders     Repository
	articles   article.Repository
	clients    client.Repository
	dateLayout string
	now        func() time.Time
	newID      func() string
}

// NewService creates an order Service with the required domain dependencies.
// An empty dateLayout falls back to DefaultDateLayout.
func NewService(
	orders Repository,
	articles article.Repository,
	clients client.Repository,
	dateLayout string,
) *Service {
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	return &Service{
		orders:     orders,
		articles:   articles,
		clients:    clients,
		dateLayout: dateLayout,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// DateLayout returns the layout used for order descriptions.
func (s *Service) DateLayout() string {
	return s.dateLayout
}

// Today returns the current date at the start-of-day hour in local time.
func (s *Service) Today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), dayStartHour, 0, 0, 0, now.Location())
}

// List returns all orders in storage order.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.orders.List(ctx)
}

// Get returns the order with the given id.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.orders.Get(ctx, id)
}

// Create resolves the client, prices the lines and persists a new order dated today.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	c, err := s.resolveClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	articles, err := s.articles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	q, err := Calculate(req.Lines, articles, c.Discount)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	o := &Order{
		ID:                          s.newID(),
		OrderDate:                   today,
		DeliveryDate:                DeliveryDate(today, q.LongestDeliveryTime),
		Price:                       q.Price,
		PriceWithoutDiscount:        q.PriceWithoutDiscount,
		PriceBeforeCustomerDiscount: q.PriceBeforeCustomerDiscount,
		ClientID:                    c.ID,
		Positions:                   q.Positions,
		TotalDiscount:               q.TotalDiscount,
		Description:                 Describe(c.Lastname, today, s.dateLayout),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}

// EditClient reassigns the order to another client and reprices it from the
// stored item-discounted snapshot. Positions and dates stay untouched.
func (s *Service) EditClient(ctx context.Context, orderID, clientID string) (*Order, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	c, err := s.resolveClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	o.ClientID = c.ID
	o.Price = ApplyDiscount(o.PriceBeforeCustomerDiscount, c.Discount)
	o.TotalDiscount = totalDiscount(o.Price, o.PriceWithoutDiscount)
	o.Description = Describe(c.Lastname, o.OrderDate, s.dateLayout)

	if err := s.orders.Update(ctx, o,
		FieldClientID, FieldPrice, FieldDescription, FieldTotalDiscount,
	); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return o, nil
}

// EditArticles replaces the order's positions and reprices it against the
// current catalog. The order date and description are kept; the delivery date
// is recomputed from the order date.
//
// A client that no longer exists contributes a 0% discount.
func (s *Service) EditArticles(ctx context.Context, orderID string, lines []Line) (*Order, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	articles, err := s.articles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	discount := decimal.Zero
	if c, ok := client.Find(clients, o.ClientID); ok {
		discount = c.Discount
	}

	q, err := Calculate(lines, articles, discount)
	if err != nil {
		return nil, err
	}

	o.DeliveryDate = DeliveryDate(o.OrderDate, q.LongestDeliveryTime)
	o.Price = q.Price
	o.PriceWithoutDiscount = q.PriceWithoutDiscount
	o.PriceBeforeCustomerDiscount = q.PriceBeforeCustomerDiscount
	o.Positions = q.Positions
	o.TotalDiscount = q.TotalDiscount

	if err := s.orders.Update(ctx, o,
		FieldDeliveryDate, FieldPrice, FieldPriceWithoutDiscount,
		FieldPriceBeforeCustomerDiscount, FieldPositions, FieldTotalDiscount,
	); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return o, nil
}

// Delete removes the orders with the given ids.
func (s *Service) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.orders.Delete(ctx, ids); err != nil {
		return fmt.Errorf("delete orders: %w", err)
	}
	return nil
}

func (s *Service) resolveClient(ctx context.Context, id string) (*client.Client, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	c, ok := client.Find(clients, id)
	if !ok {
		return nil, &InvalidReferenceError{Kind: KindClient, ID: id}
	}
	return c, nil
}
