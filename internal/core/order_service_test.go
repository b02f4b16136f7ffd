package core_test

import (
	"context"
	"errors"
	"testing"

	"parts-desk/internal/core"
	"parts-desk/internal/store"
)

func TestOrderLifecycleApprove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	part := f.addStockedPart(t, "06A906461L", 5, 2)

	order, err := f.orders.PlaceOrder(ctx, f.staff, part.ID, 3)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.Status != core.OrderPending {
		t.Errorf("status = %s, want Pending", order.Status)
	}
	if order.RequestedBy != f.staff.Email {
		t.Errorf("requestedBy = %s, want %s", order.RequestedBy, f.staff.Email)
	}
	if order.PartNumber != "06A906461L" {
		t.Errorf("partNr snapshot = %s, want 06A906461L", order.PartNumber)
	}

	// Placement reserves nothing.
	if got := f.distributionPart(t, part.ID).Quantity; got != 5 {
		t.Errorf("stock after placement = %d, want 5", got)
	}

	approved, err := f.orders.Approve(ctx, f.admin, order.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != core.OrderApproved {
		t.Errorf("status = %s, want Approved", approved.Status)
	}
	if approved.ApprovedAt == nil {
		t.Error("ApprovedAt not set")
	}

	after := f.distributionPart(t, part.ID)
	if after.Quantity != 2 {
		t.Errorf("stock after approval = %d, want 2", after.Quantity)
	}
	if !after.LowStock() {
		t.Error("part at threshold should report low stock")
	}
}

func TestOrderDeclineLeavesStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	part := f.addStockedPart(t, "1K0615301", 5, 0)

	order, err := f.orders.PlaceOrder(ctx, f.staff, part.ID, 2)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	declined, err := f.orders.Decline(ctx, f.admin, order.ID)
	if err != nil {
		t.Fatalf("Decline: %v", err)
	}
	if declined.Status != core.OrderDeclined {
		t.Errorf("status = %s, want Declined", declined.Status)
	}
	if declined.DecidedAt == nil {
		t.Error("DecidedAt not set")
	}
	if got := f.distributionPart(t, part.ID).Quantity; got != 5 {
		t.Errorf("stock after decline = %d, want 5", got)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	part := f.addStockedPart(t, "5Q0201051", 4, 0)

	if _, err := f.orders.PlaceOrder(ctx, f.staff, "no-such-part", 1); !errors.Is(err, core.ErrPartNotSelected) {
		t.Errorf("unknown part: err = %v, want ErrPartNotSelected", err)
	}
	if _, err := f.orders.PlaceOrder(ctx, f.staff, part.ID, 0); !errors.Is(err, core.ErrInvalidQuantity) {
		t.Errorf("zero qty: err = %v, want ErrInvalidQuantity", err)
	}
	if _, err := f.orders.PlaceOrder(ctx, f.staff, part.ID, -3); !errors.Is(err, core.ErrInvalidQuantity) {
		t.Errorf("negative qty: err = %v, want ErrInvalidQuantity", err)
	}
	if _, err := f.orders.PlaceOrder(ctx, f.staff, part.ID, 5); !errors.Is(err, core.ErrInsufficientStock) {
		t.Errorf("over stock: err = %v, want ErrInsufficientStock", err)
	}

	// None of the rejected attempts may reach the ledger.
	orders, err := f.orders.ListOrders(ctx)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("ledger has %d orders after rejections, want 0", len(orders))
	}
	if len(f.notifier.placed) != 0 {
		t.Errorf("notifier fired %d times after rejections, want 0", len(f.notifier.placed))
	}
}

func TestPlaceOrderNotifiesAndPrepends(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	part := f.addStockedPart(t, "N90813202", 10, 0)

	first, err := f.orders.PlaceOrder(ctx, f.staff, part.ID, 1)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	second, err := f.orders.PlaceOrder(ctx, f.admin, part.ID, 2)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	orders, err := f.orders.ListOrders(ctx)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != second.ID || orders[1].ID != first.ID {
		t.Errorf("ledger not most-recent-first: %+v", orders)
	}
	if len(f.notifier.placed) != 2 {
		t.Fatalf("notifier fired %d times, want 2", len(f.notifier.placed))
	}
	if f.notifier.placed[0].ID != first.ID {
		t.Errorf("first notification for %s, want %s", f.notifier.placed[0].ID, first.ID)
	}
}

func TestDecidedOrderIsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	part := f.addStockedPart(t, "04E115561H", 9, 0)

	order, err := f.orders.PlaceOrder(ctx, f.staff, part.ID, 4)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if _, err := f.orders.Approve(ctx, f.admin, order.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	if _, err := f.orders.Approve(ctx, f.admin, order.ID); !errors.Is(err, core.ErrInvalidTransition) {
		t.Errorf("re-approve: err = %v, want ErrInvalidTransition", err)
	}
	if _, err := f.orders.Decline(ctx, f.admin, order.ID); !errors.Is(err, core.ErrInvalidTransition) {
		t.Errorf("decline after approve: err = %v, want ErrInvalidTransition", err)
	}
	if _, err := f.orders.EditPendingQuantity(ctx, f.admin, order.ID, 1); !errors.Is(err, core.ErrInvalidTransition) {
		t.Errorf("edit after approve: err = %v, want ErrInvalidTransition", err)
	}

	// The double approval must not deduct twice.
	if got := f.distributionPart(t, part.ID).Quantity; got != 5 {
		t.Errorf("stock = %d, want 5", got)
	}
}

func TestApproveDeletedPartKeepsOrderPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	part := f.addStockedPart(t, "03L130277B", 6, 0)

	order, err := f.orders.PlaceOrder(ctx, f.staff, part.ID, 2)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if err := f.inventory.DeletePart(ctx, f.admin, core.DistributionLocation, part.ID); err != nil {
		t.Fatalf("DeletePart: %v", err)
	}

	if _, err := f.orders.Approve(ctx, f.admin, order.ID); !errors.Is(err, core.ErrStaleReference) {
		t.Fatalf("err = %v, want ErrStaleReference", err)
	}

	orders, err := f.orders.ListOrders(ctx)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if orders[0].Status != core.OrderPending {
		t.Errorf("order status = %s, want Pending after failed approval", orders[0].Status)
	}

	// Declining the stranded order still works.
	if _, err := f.orders.Decline(ctx, f.admin, order.ID); err != nil {
		t.Errorf("Decline stranded order: %v", err)
	}
}

func TestApproveClampsStockAtZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	part := f.addStockedPart(t, "7P6907521", 5, 0)

	order, err := f.orders.PlaceOrder(ctx, f.staff, part.ID, 5)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	// Stock shrinks between placement and approval.
	two := 2
	if _, err := f.inventory.UpdatePart(ctx, f.admin, core.DistributionLocation, part.ID, core.PartPatch{Quantity: &two}); err != nil {
		t.Fatalf("UpdatePart: %v", err)
	}

	if _, err := f.orders.Approve(ctx, f.admin, order.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if got := f.distributionPart(t, part.ID).Quantity; got != 0 {
		t.Errorf("stock = %d, want 0 (clamped)", got)
	}
}

// brokenOrders wraps an OrderRepository and fails every write.
type brokenOrders struct {
	core.OrderRepository
}

func (brokenOrders) Replace(context.Context, []core.Order) error {
	return errors.New("disk full")
}

func TestApproveFailedLedgerWriteLeavesStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	part := f.addStockedPart(t, "5G0121251", 5, 0)

	order, err := f.orders.PlaceOrder(ctx, f.staff, part.ID, 3)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	broken := core.NewOrderService(brokenOrders{store.NewOrders(f.store)}, store.NewInventories(f.store), f.notifier)
	if _, err := broken.Approve(ctx, f.admin, order.ID); err == nil {
		t.Fatal("Approve succeeded despite failing ledger write")
	}

	// A rejected approval deducts nothing and decides nothing.
	if got := f.distributionPart(t, part.ID).Quantity; got != 5 {
		t.Errorf("stock = %d, want 5 after failed approval", got)
	}
	orders, err := f.orders.ListOrders(ctx)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if orders[0].Status != core.OrderPending {
		t.Errorf("order status = %s, want Pending after failed approval", orders[0].Status)
	}
}

func TestEditPendingQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	part := f.addStockedPart(t, "8W0599257D", 3, 0)

	order, err := f.orders.PlaceOrder(ctx, f.staff, part.ID, 2)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	// Raising past current stock is allowed; the deduction clamps later.
	edited, err := f.orders.EditPendingQuantity(ctx, f.admin, order.ID, 7)
	if err != nil {
		t.Fatalf("EditPendingQuantity: %v", err)
	}
	if edited.Quantity != 7 {
		t.Errorf("quantity = %d, want 7", edited.Quantity)
	}

	edited, err = f.orders.EditPendingQuantity(ctx, f.admin, order.ID, -4)
	if err != nil {
		t.Fatalf("EditPendingQuantity: %v", err)
	}
	if edited.Quantity != 0 {
		t.Errorf("quantity = %d, want 0 (clamped)", edited.Quantity)
	}
}

func TestOrderDecisionsAreAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	part := f.addStockedPart(t, "06H121026CF", 8, 0)

	order, err := f.orders.PlaceOrder(ctx, f.staff, part.ID, 1)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if _, err := f.orders.Approve(ctx, f.staff, order.ID); !errors.Is(err, core.ErrPermissionDenied) {
		t.Errorf("staff approve: err = %v, want ErrPermissionDenied", err)
	}
	if _, err := f.orders.Decline(ctx, f.staff, order.ID); !errors.Is(err, core.ErrPermissionDenied) {
		t.Errorf("staff decline: err = %v, want ErrPermissionDenied", err)
	}
	if _, err := f.orders.EditPendingQuantity(ctx, f.staff, order.ID, 2); !errors.Is(err, core.ErrPermissionDenied) {
		t.Errorf("staff edit: err = %v, want ErrPermissionDenied", err)
	}
}

func TestSearchOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	brake := f.addStockedPart(t, "BRAKE-100", 5, 0)
	oil := f.addStockedPart(t, "OIL-200", 5, 0)

	ordBrake, err := f.orders.PlaceOrder(ctx, f.staff, brake.ID, 1)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if _, err := f.orders.PlaceOrder(ctx, f.admin, oil.ID, 1); err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	matched, err := f.orders.SearchOrders(ctx, "brake")
	if err != nil {
		t.Fatalf("SearchOrders: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != ordBrake.ID {
		t.Errorf("search brake = %+v, want just the brake order", matched)
	}

	// Status and requester are searchable too.
	matched, err = f.orders.SearchOrders(ctx, "pending")
	if err != nil {
		t.Fatalf("SearchOrders: %v", err)
	}
	if len(matched) != 2 {
		t.Errorf("search pending matched %d, want 2", len(matched))
	}
	matched, err = f.orders.SearchOrders(ctx, f.staff.Email)
	if err != nil {
		t.Fatalf("SearchOrders: %v", err)
	}
	if len(matched) != 1 {
		t.Errorf("search by requester matched %d, want 1", len(matched))
	}
}
