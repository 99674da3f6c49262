// Package domain defines the entities referenced by the checkout handlers.
// Orders and products are owned by the store; this service only reads them
// or moves an order's status forward.
package domain

import "time"

// OrderStatus represents the current state of an order in its lifecycle
type OrderStatus string

const (
	StatusPending OrderStatus = "PENDING"
	StatusSuccess OrderStatus = "SUCCESS"
	StatusFailed  OrderStatus = "FAILED"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed:
		return true
	}
	return false
}

// Order is the store-owned order record as seen by this service.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id,omitempty"`
	Status     OrderStatus `json:"status"`
	TotalPrice int64       `json:"total_price,omitempty"`
	CreatedAt  time.Time   `json:"created_at,omitempty"`
}

// OrderItem is a single cart line. It only exists inside a request body;
// persistence is delegated to the store-side create_order procedure.
type OrderItem struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"quantity"`
}

// OrderReceipt is the payload returned by the create_order procedure.
// Status "error" signals a business-level rejection (out of stock, etc.)
// even though the call itself succeeded.
type OrderReceipt struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	OrderID string `json:"order_id"`
}

// Rejected reports whether the receipt carries a business-logic rejection.
func (r *OrderReceipt) Rejected() bool {
	return r != nil && r.Status == "error"
}

// PaymentIntent is the processor-side record created for an order. The
// client secret is handed to the frontend unchanged; the order id travels
// in the intent's metadata so the webhook can correlate the payment back.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// User is the resolved caller identity.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// OrderDetailRow is one flattened line of the user_order_details view,
// in export column order. Item and product columns are nullable because
// the view left-joins them.
type OrderDetailRow struct {
	OrderID         string   `json:"order_id"`
	OrderCreatedAt  string   `json:"order_created_at"`
	OrderStatus     string   `json:"order_status"`
	OrderTotalPrice int64    `json:"order_total_price"`
	ItemID          *string  `json:"item_id"`
	ItemQuantity    *int64   `json:"item_quantity"`
	ItemTotalPrice  *int64   `json:"item_total_price"`
	ProductID       *string  `json:"product_id"`
	ProductName     *string  `json:"product_name"`
	ProductPrice    *float64 `json:"product_unit_price"`
}
