package portal

import (
	"context"
	"sort"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
)

// OrderLister is the order-list collaborator. The server scopes the result
// to the caller's visible orders.
type OrderLister interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

// History shows the actor's past orders, newest first, with at most one
// order's line items expanded at a time.
type History struct {
	lister OrderLister

	orders     []domain.Order
	expandedID string
}

func NewHistory(lister OrderLister) *History {
	return &History{lister: lister}
}

// Load refreshes the list. On failure the previous list is kept; stale data
// beats a blank view.
func (h *History) Load(ctx context.Context) error {
	orders, err := h.lister.ListOrders(ctx)
	if err != nil {
		return err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	h.orders = orders
	return nil
}

// Orders returns the loaded list, sorted by creation time descending.
func (h *History) Orders() []domain.Order {
	return h.orders
}

// ToggleExpand expands one order's line items, collapsing any other. A
// second toggle on the same order collapses it.
func (h *History) ToggleExpand(orderID string) {
	if h.expandedID == orderID {
		h.expandedID = ""
		return
	}
	h.expandedID = orderID
}

// Expanded returns the id of the expanded order, or "".
func (h *History) Expanded() string {
	return h.expandedID
}
