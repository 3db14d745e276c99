// Package portal holds the client-side view models of the ordering portal:
// the in-progress cart, the submission workflow, the order history view, and
// the admin order lifecycle view. All of them are plain single-session state
// machines; network access happens only through the small collaborator
// interfaces they declare.
package portal

import (
	"strconv"
	"strings"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
)

// selection is one product's in-progress cart entry: a color plus per-size
// quantities. Name and style number are captured at selection time.
type selection struct {
	productID   string
	productName string
	styleNumber string
	color       string
	sizeOrder   []string
	quantities  map[string]int
}

// Cart maps product ids to selections, built over a fetched catalog. It is
// never persisted; a submitted cart is consumed by Checkout.
type Cart struct {
	products   map[string]domain.Product
	order      []string
	selections map[string]*selection
}

// NewCart builds an empty cart over the fetched product list.
func NewCart(products []domain.Product) *Cart {
	index := make(map[string]domain.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return &Cart{
		products:   index,
		selections: make(map[string]*selection),
	}
}

// SetColor sets the selected color for a product, creating the selection if
// absent. Quantities already entered are preserved. Edits for products not
// in the catalog, or colors the product does not offer, are ignored.
func (c *Cart) SetColor(productID, color string) {
	product, ok := c.products[productID]
	if !ok || !product.HasColor(color) {
		return
	}
	sel := c.selectionFor(product)
	sel.color = color
}

// SetQuantity records the quantity for one size of a product from raw user
// input. Empty or non-numeric input coerces to 0; negative numbers clamp to
// 0. It never fails.
func (c *Cart) SetQuantity(productID, size, raw string) {
	product, ok := c.products[productID]
	if !ok {
		return
	}
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty < 0 {
		qty = 0
	}
	sel := c.selectionFor(product)
	key := domain.NormalizeSize(size)
	if _, seen := sel.quantities[key]; !seen {
		sel.sizeOrder = append(sel.sizeOrder, key)
	}
	sel.quantities[key] = qty
}

// Remove drops a product's selection entirely.
func (c *Cart) Remove(productID string) {
	if _, ok := c.selections[productID]; !ok {
		return
	}
	delete(c.selections, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear discards all selections.
func (c *Cart) Clear() {
	c.selections = make(map[string]*selection)
	c.order = nil
}

// Items projects the cart into order line items, one per (size, quantity>0)
// pair, in selection insertion order then size entry order. The style
// number falls back to the live product's when the captured one is blank.
func (c *Cart) Items() []domain.OrderItem {
	var items []domain.OrderItem
	for _, productID := range c.order {
		sel := c.selections[productID]
		style := sel.styleNumber
		if style == "" {
			if live, ok := c.products[productID]; ok {
				style = live.StyleNumber
			}
		}
		for _, size := range sel.sizeOrder {
			qty := sel.quantities[size]
			if qty <= 0 {
				continue
			}
			items = append(items, domain.OrderItem{
				ProductID:   sel.productID,
				ProductName: sel.productName,
				StyleNumber: style,
				Color:       sel.color,
				Size:        size,
				Quantity:    qty,
			})
		}
	}
	return items
}

// TotalQuantity sums the quantities across Items.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items() {
		total += item.Quantity
	}
	return total
}

// IsEmpty reports whether no product has a selection.
func (c *Cart) IsEmpty() bool {
	return len(c.selections) == 0
}

func (c *Cart) selectionFor(product domain.Product) *selection {
	if sel, ok := c.selections[product.ID]; ok {
		return sel
	}
	sel := &selection{
		productID:   product.ID,
		productName: product.Name,
		styleNumber: product.StyleNumber,
		color:       product.DefaultColor(),
		quantities:  make(map[string]int),
	}
	c.selections[product.ID] = sel
	c.order = append(c.order, product.ID)
	return sel
}
