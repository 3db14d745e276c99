package portal

import (
	"testing"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
)

func testProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "p1",
			StyleNumber: "TS-1001",
			Name:        "Classic Crew Tee",
			Colors:      []string{"navy", "black"},
			Sizes:       []string{"S", "M", "L"},
		},
		{
			ID:          "p2",
			StyleNumber: "HD-2040",
			Name:        "Zip Hoodie",
			Colors:      []string{"charcoal"},
			Sizes:       []string{"M", "L"},
		},
	}
}

func TestCartSetQuantityProjectsItems(t *testing.T) {
	cart := NewCart(testProducts())
	cart.SetQuantity("p1", "M", "5")
	cart.SetQuantity("p1", "L", "0")

	items := cart.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d: %+v", len(items), items)
	}
	item := items[0]
	if item.ProductID != "p1" || item.Size != "M" || item.Quantity != 5 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.Color != "navy" {
		t.Fatalf("expected default first color navy, got %q", item.Color)
	}
	if item.ProductName != "Classic Crew Tee" || item.StyleNumber != "TS-1001" {
		t.Fatalf("expected captured name/style, got %+v", item)
	}
}

func TestCartZeroedSizesContributeNothing(t *testing.T) {
	cart := NewCart(testProducts())
	cart.SetQuantity("p1", "S", "3")
	cart.SetQuantity("p1", "M", "7")
	cart.SetQuantity("p1", "S", "0")
	cart.SetQuantity("p1", "M", "0")

	if items := cart.Items(); len(items) != 0 {
		t.Fatalf("expected no items after zeroing, got %+v", items)
	}
	if total := cart.TotalQuantity(); total != 0 {
		t.Fatalf("expected total 0, got %d", total)
	}
}

func TestCartTotalQuantityMatchesItems(t *testing.T) {
	cart := NewCart(testProducts())
	cart.SetQuantity("p1", "S", "2")
	cart.SetQuantity("p1", "M", "3")
	cart.SetQuantity("p2", "L", "4")

	sum := 0
	for _, item := range cart.Items() {
		sum += item.Quantity
	}
	if total := cart.TotalQuantity(); total != sum || total != 9 {
		t.Fatalf("expected total %d == 9, got %d", sum, total)
	}
}

func TestCartInputCoercion(t *testing.T) {
	cart := NewCart(testProducts())
	cart.SetQuantity("p1", "S", "abc")
	cart.SetQuantity("p1", "M", "")
	cart.SetQuantity("p1", "L", "-4")

	if total := cart.TotalQuantity(); total != 0 {
		t.Fatalf("expected bad input to coerce to 0, got total %d", total)
	}

	cart.SetQuantity("p1", "S", " 6 ")
	if total := cart.TotalQuantity(); total != 6 {
		t.Fatalf("expected trimmed numeric input to parse, got total %d", total)
	}
}

func TestCartSetColorPreservesQuantities(t *testing.T) {
	cart := NewCart(testProducts())
	cart.SetQuantity("p1", "M", "5")
	cart.SetColor("p1", "black")

	items := cart.Items()
	if len(items) != 1 || items[0].Color != "black" || items[0].Quantity != 5 {
		t.Fatalf("expected color change with quantities intact, got %+v", items)
	}
}

func TestCartRejectsUnknownColorAndProduct(t *testing.T) {
	cart := NewCart(testProducts())
	cart.SetColor("p1", "chartreuse")
	cart.SetQuantity("ghost", "M", "5")

	if !cart.IsEmpty() {
		t.Fatalf("expected edits to be ignored, cart has selections")
	}

	cart.SetQuantity("p1", "M", "1")
	cart.SetColor("p1", "chartreuse")
	if items := cart.Items(); items[0].Color != "navy" {
		t.Fatalf("expected off-catalog color ignored, got %q", items[0].Color)
	}
}

func TestCartProjectionOrderIsDeterministic(t *testing.T) {
	cart := NewCart(testProducts())
	cart.SetQuantity("p2", "L", "1")
	cart.SetQuantity("p1", "M", "2")
	cart.SetQuantity("p1", "S", "3")

	items := cart.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	// Selection insertion order (p2 first), then size entry order.
	if items[0].ProductID != "p2" || items[1].Size != "M" || items[2].Size != "S" {
		t.Fatalf("unexpected projection order: %+v", items)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := NewCart(testProducts())
	cart.SetQuantity("p1", "M", "2")
	cart.SetQuantity("p2", "L", "3")

	cart.Remove("p1")
	items := cart.Items()
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Fatalf("expected only p2 after remove, got %+v", items)
	}

	cart.Clear()
	if !cart.IsEmpty() || cart.TotalQuantity() != 0 {
		t.Fatalf("expected empty cart after clear")
	}
}

func TestCartNumericSizeKeysCollapse(t *testing.T) {
	products := []domain.Product{{
		ID:          "p3",
		StyleNumber: "SH-77",
		Name:        "Trail Shoe",
		Colors:      []string{"brown"},
		Sizes:       []string{"10", "10.5"},
	}}
	cart := NewCart(products)
	cart.SetQuantity("p3", "10", "2")
	cart.SetQuantity("p3", "10.0", "4")

	items := cart.Items()
	if len(items) != 1 || items[0].Size != "10" || items[0].Quantity != 4 {
		t.Fatalf("expected numeric labels to share one key, got %+v", items)
	}
}

func TestCartStyleNumberFallback(t *testing.T) {
	products := []domain.Product{{
		ID:     "p4",
		Name:   "No Style",
		Colors: []string{"red"},
		Sizes:  []string{"M"},
	}}
	cart := NewCart(products)
	cart.SetQuantity("p4", "M", "1")

	// Captured style is blank; the projection falls back to the live
	// product's, which is also blank here.
	if items := cart.Items(); items[0].StyleNumber != "" {
		t.Fatalf("unexpected style: %+v", items[0])
	}

	cart.products["p4"] = domain.Product{ID: "p4", StyleNumber: "NS-9", Colors: []string{"red"}, Sizes: []string{"M"}}
	if items := cart.Items(); items[0].StyleNumber != "NS-9" {
		t.Fatalf("expected live style fallback, got %+v", items[0])
	}
}
