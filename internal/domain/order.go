package domain

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus describes where an order sits in the fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// OrderStatuses lists every valid status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range OrderStatuses {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

// OrderItem is one (product, color, size, quantity) line of an order.
type OrderItem struct {
	ID          string `json:"id,omitempty"`
	OrderID     string `json:"-"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	StyleNumber string `json:"styleNumber"`
	Color       string `json:"color"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity"`
}

type Order struct {
	ID            string      `json:"id"`
	CustomerID    string      `json:"customerId"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	PONumber      string      `json:"poNumber"`
	Items         []OrderItem `json:"items"`
	Status        OrderStatus `json:"status"`
	TotalItems    int         `json:"totalItems"`
	CreatedAt     time.Time   `json:"createdAt"`
}
