package portal

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
	"github.com/khsakib1010-art/b2b-store/internal/export"
)

// StatusUpdater is the status-update collaborator.
type StatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
}

// AdminOrders is the admin's order lifecycle view: the full order list plus
// an optional open detail view, kept consistent on status changes without a
// second fetch.
type AdminOrders struct {
	lister  OrderLister
	updater StatusUpdater

	orders []domain.Order
	detail *domain.Order
}

func NewAdminOrders(lister OrderLister, updater StatusUpdater) *AdminOrders {
	return &AdminOrders{lister: lister, updater: updater}
}

// Load refreshes the order list, newest first. On failure the previous list
// and any open detail are kept.
func (a *AdminOrders) Load(ctx context.Context) error {
	orders, err := a.lister.ListOrders(ctx)
	if err != nil {
		return err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	a.orders = orders
	return nil
}

// Orders returns the loaded list.
func (a *AdminOrders) Orders() []domain.Order {
	return a.orders
}

// OpenDetail opens the detail view for an order already in the list.
func (a *AdminOrders) OpenDetail(orderID string) bool {
	for i := range a.orders {
		if a.orders[i].ID == orderID {
			o := a.orders[i]
			a.detail = &o
			return true
		}
	}
	return false
}

// CloseDetail closes any open detail view.
func (a *AdminOrders) CloseDetail() {
	a.detail = nil
}

// Detail returns the open detail view, or nil.
func (a *AdminOrders) Detail() *domain.Order {
	return a.detail
}

// SetStatus moves an order to a new status through the collaborator. The
// local list and an open detail of the same order are updated only after
// the collaborator confirms; a failed update changes nothing.
func (a *AdminOrders) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	updated, err := a.updater.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return err
	}
	for i := range a.orders {
		if a.orders[i].ID == updated.ID {
			a.orders[i] = *updated
			break
		}
	}
	if a.detail != nil && a.detail.ID == updated.ID {
		o := *updated
		a.detail = &o
	}
	return nil
}

// ExportCSV writes the current list as CSV.
func (a *AdminOrders) ExportCSV(w io.Writer) error {
	return export.Orders(w, a.orders)
}

// ExportFilename names the download artifact for the given day.
func (a *AdminOrders) ExportFilename(now time.Time) string {
	return export.Filename(now)
}
