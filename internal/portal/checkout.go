package portal

import (
	"context"
	"errors"
	"strings"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
)

// SubmitState tracks where the submission workflow sits.
type SubmitState string

const (
	StateIdle       SubmitState = "idle"
	StateSubmitting SubmitState = "submitting"
	StateSucceeded  SubmitState = "succeeded"
	StateFailed     SubmitState = "failed"
)

var (
	// ErrNoItems means the cart projects to zero line items.
	ErrNoItems = errors.New("no items selected")
	// ErrPONumberRequired means the trimmed PO number is empty.
	ErrPONumberRequired = errors.New("po number required")
	// ErrSubmitInProgress blocks re-entrant submission.
	ErrSubmitInProgress = errors.New("submission already in progress")
)

// CreateOrderInput is the payload handed to the order-creation collaborator.
// No total is sent; the server derives it from the items.
type CreateOrderInput struct {
	PONumber string             `json:"poNumber"`
	Items    []domain.OrderItem `json:"items"`
}

// OrderCreator is the order-creation collaborator.
type OrderCreator interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
}

// Checkout drives one cart through submission. A failed attempt leaves the
// cart and PO number exactly as they were, so the user can retry.
type Checkout struct {
	cart    *Cart
	creator OrderCreator

	state    SubmitState
	poNumber string

	lastOrderID  string
	lastPONumber string
	lastErr      string
}

func NewCheckout(cart *Cart, creator OrderCreator) *Checkout {
	return &Checkout{cart: cart, creator: creator, state: StateIdle}
}

func (ck *Checkout) State() SubmitState { return ck.state }

// SetPONumber records the purchase-order reference as typed.
func (ck *Checkout) SetPONumber(po string) {
	ck.poNumber = po
}

func (ck *Checkout) PONumber() string { return ck.poNumber }

// LastOrder returns the id and PO number of the most recent successful
// submission, for display.
func (ck *Checkout) LastOrder() (orderID, poNumber string) {
	return ck.lastOrderID, ck.lastPONumber
}

// LastError returns the failure message of the most recent failed attempt.
func (ck *Checkout) LastError() string { return ck.lastErr }

// Submit validates the cart and PO number, then issues exactly one creation
// call. Validation failures never reach the collaborator. On success the
// cart and PO field are cleared; on failure both stay intact.
func (ck *Checkout) Submit(ctx context.Context) error {
	if ck.state == StateSubmitting {
		return ErrSubmitInProgress
	}
	if ck.cart.TotalQuantity() == 0 {
		ck.state = StateIdle
		return ErrNoItems
	}
	po := strings.TrimSpace(ck.poNumber)
	if po == "" {
		ck.state = StateIdle
		return ErrPONumberRequired
	}

	ck.state = StateSubmitting
	order, err := ck.creator.CreateOrder(ctx, CreateOrderInput{
		PONumber: po,
		Items:    ck.cart.Items(),
	})
	if err != nil {
		ck.state = StateFailed
		ck.lastErr = err.Error()
		if ck.lastErr == "" {
			ck.lastErr = "order submission failed"
		}
		return err
	}

	ck.state = StateSucceeded
	ck.lastOrderID = order.ID
	ck.lastPONumber = po
	ck.lastErr = ""
	ck.cart.Clear()
	ck.poNumber = ""
	return nil
}
