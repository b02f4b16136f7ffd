package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderService runs the order state machine: Pending → Approved or
// Pending → Declined, both terminal. Orders draw from the distribution
// inventory only.
//
// Placement does not reserve stock: deduction happens on approval, and
// each approval clamps independently at zero. Two pending orders whose
// combined quantity exceeds available stock can therefore both be
// approved; acceptable for the single-admin workflow this targets.
type OrderService interface {
	ListOrders(ctx context.Context) ([]Order, error)
	// SearchOrders filters by case-insensitive substring over part number,
	// description, requester and status.
	SearchOrders(ctx context.Context, query string) ([]Order, error)

	// PlaceOrder validates the part and quantity against distribution
	// stock at this instant, snapshots part number and description, and
	// prepends a Pending order to the ledger. Any authenticated user may
	// place orders. Fails with ErrPartNotSelected, ErrInvalidQuantity or
	// ErrInsufficientStock.
	PlaceOrder(ctx context.Context, actor Identity, partID string, quantity int) (*Order, error)

	// EditPendingQuantity changes a Pending order's quantity, clamped at
	// zero. Admin only. The new quantity is not re-validated against
	// current stock.
	EditPendingQuantity(ctx context.Context, actor Identity, orderID string, quantity int) (*Order, error)

	// Approve deducts the order quantity from the referenced distribution
	// part, floored at zero, and marks the order Approved. Admin only.
	// Fails with ErrInvalidTransition on a non-Pending order and with
	// ErrStaleReference when the part was deleted after placement (the
	// order stays Pending).
	Approve(ctx context.Context, actor Identity, orderID string) (*Order, error)

	// Decline marks a Pending order Declined. No stock effect. Admin only.
	Decline(ctx context.Context, actor Identity, orderID string) (*Order, error)
}

type orderService struct {
	orders      OrderRepository
	inventories InventoryRepository
	notifier    Notifier
}

func NewOrderService(orders OrderRepository, inventories InventoryRepository, notifier Notifier) OrderService {
	return &orderService{orders: orders, inventories: inventories, notifier: notifier}
}

func (s *orderService) ListOrders(ctx context.Context) ([]Order, error) {
	return s.orders.List(ctx)
}

func (s *orderService) SearchOrders(ctx context.Context, query string) ([]Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return orders, nil
	}
	var matched []Order
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.PartNumber), q) ||
			strings.Contains(strings.ToLower(o.Description), q) ||
			strings.Contains(strings.ToLower(o.RequestedBy), q) ||
			strings.Contains(strings.ToLower(string(o.Status)), q) {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

func (s *orderService) PlaceOrder(ctx context.Context, actor Identity, partID string, quantity int) (*Order, error) {
	parts, err := s.inventories.Parts(ctx, DistributionLocation)
	if err != nil {
		return nil, fmt.Errorf("failed to load distribution inventory: %w", err)
	}

	var part *Part
	for i := range parts {
		if parts[i].ID == partID {
			part = &parts[i]
			break
		}
	}
	if part == nil {
		return nil, ErrPartNotSelected
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if quantity > part.Quantity {
		return nil, fmt.Errorf("cannot order more than available (%d): %w", part.Quantity, ErrInsufficientStock)
	}

	order := Order{
		ID:          uuid.NewString(),
		PartID:      part.ID,
		PartNumber:  part.PartNumber,
		Description: part.Description,
		Quantity:    quantity,
		RequestedBy: actor.Email,
		Status:      OrderPending,
		CreatedAt:   time.Now(),
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	// Most recent first.
	next := append([]Order{order}, orders...)
	if err := s.orders.Replace(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save orders: %w", err)
	}

	s.notifier.OrderPlaced(ctx, order)
	return &order, nil
}

func (s *orderService) EditPendingQuantity(ctx context.Context, actor Identity, orderID string, quantity int) (*Order, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("edit order quantity: %w", ErrPermissionDenied)
	}
	return s.mutatePending(ctx, orderID, func(o *Order) {
		o.Quantity = max(0, quantity)
	})
}

func (s *orderService) Approve(ctx context.Context, actor Identity, orderID string) (*Order, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("approve order: %w", ErrPermissionDenied)
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	idx := indexOfOrder(orders, orderID)
	if idx < 0 {
		return nil, fmt.Errorf("order %q: %w", orderID, ErrNotFound)
	}
	if orders[idx].Status != OrderPending {
		return nil, fmt.Errorf("order %q is %s: %w", orderID, orders[idx].Status, ErrInvalidTransition)
	}

	parts, err := s.inventories.Parts(ctx, DistributionLocation)
	if err != nil {
		return nil, fmt.Errorf("failed to load distribution inventory: %w", err)
	}
	partIdx := -1
	for i := range parts {
		if parts[i].ID == orders[idx].PartID {
			partIdx = i
			break
		}
	}
	if partIdx < 0 {
		return nil, fmt.Errorf("order %q part %q: %w", orderID, orders[idx].PartID, ErrStaleReference)
	}

	// Ledger first: a failed inventory write then leaves an Approved
	// order without its deduction, never deducted stock on a still
	// Pending order.
	now := time.Now()
	next := append([]Order(nil), orders...)
	next[idx].Status = OrderApproved
	next[idx].ApprovedAt = &now
	if err := s.orders.Replace(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save orders: %w", err)
	}

	nextParts := append([]Part(nil), parts...)
	nextParts[partIdx].Quantity = max(0, nextParts[partIdx].Quantity-orders[idx].Quantity)
	if err := s.inventories.Replace(ctx, DistributionLocation, nextParts); err != nil {
		return nil, fmt.Errorf("failed to save distribution inventory: %w", err)
	}

	order := next[idx]
	return &order, nil
}

func (s *orderService) Decline(ctx context.Context, actor Identity, orderID string) (*Order, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("decline order: %w", ErrPermissionDenied)
	}
	now := time.Now()
	return s.mutatePending(ctx, orderID, func(o *Order) {
		o.Status = OrderDeclined
		o.DecidedAt = &now
	})
}

// mutatePending applies fn to a Pending order and replaces the ledger.
func (s *orderService) mutatePending(ctx context.Context, orderID string, fn func(*Order)) (*Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	idx := indexOfOrder(orders, orderID)
	if idx < 0 {
		return nil, fmt.Errorf("order %q: %w", orderID, ErrNotFound)
	}
	if orders[idx].Status != OrderPending {
		return nil, fmt.Errorf("order %q is %s: %w", orderID, orders[idx].Status, ErrInvalidTransition)
	}

	next := append([]Order(nil), orders...)
	fn(&next[idx])
	if err := s.orders.Replace(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save orders: %w", err)
	}
	order := next[idx]
	return &order, nil
}

func indexOfOrder(orders []Order, orderID string) int {
	for i := range orders {
		if orders[i].ID == orderID {
			return i
		}
	}
	return -1
}
