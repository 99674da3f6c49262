// Package application holds the ports the checkout services depend on.
// Each port is one capability of an external collaborator, narrow enough
// to substitute with a test double.
package application

import (
	"context"
	"errors"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
)

// ErrOrderNotFound is returned by conditional updates that matched zero
// rows: the order does not exist or is no longer in the expected state.
var ErrOrderNotFound = errors.New("order not found")

// ErrNoUser is returned by identity lookups when the credential resolves
// to no user. Transport failures from the identity provider are reported
// the same way; identity fails closed.
var ErrNoUser = errors.New("no authenticated user")

// Identity resolves the caller from a bearer token. Implementations make
// at most one outbound call and never retry.
type Identity interface {
	GetCurrentUser(ctx context.Context, token string) (*domain.User, error)
}

// OrderStore is the caller-scoped slice of the data store. Every method
// forwards the caller's credential so row-level isolation stays with the
// store, whatever technology backs it.
type OrderStore interface {
	// CreateOrder invokes the store-side create_order procedure with the
	// cart items. A transport failure comes back as an error; a business
	// rejection comes back inside the receipt.
	CreateOrder(ctx context.Context, token string, items []domain.OrderItem) (*domain.OrderReceipt, error)

	// GetOrderTotal returns the total price of one of the caller's orders.
	// ErrOrderNotFound if the id matches nothing visible to the caller.
	GetOrderTotal(ctx context.Context, token string, orderID string) (int64, error)

	// ListOrderDetails returns the caller's flattened order history, one
	// row per order item, in the export column order.
	ListOrderDetails(ctx context.Context, token string) ([]domain.OrderDetailRow, error)
}

// AdminOrderStore is the service-credential slice of the data store, used
// by paths not acting on behalf of a caller (payment capture, webhooks).
type AdminOrderStore interface {
	// UpdateOrderStatus moves an order from expected to next and returns
	// the updated row. ErrOrderNotFound if no row matched both filters.
	UpdateOrderStatus(ctx context.Context, orderID string, expected, next domain.OrderStatus) (*domain.Order, error)

	// SetOrderStatus sets an absolute status keyed by id only. Zero rows
	// matched is not an error; repeated application is a no-op, which is
	// what makes webhook redelivery safe.
	SetOrderStatus(ctx context.Context, orderID string, next domain.OrderStatus) error
}

// PaymentProvider creates processor-side payment intents.
type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*domain.PaymentIntent, error)
}

// EventVerifier authenticates a webhook delivery against the configured
// signing secret and parses the event. The raw body bytes must be passed
// untouched; verification is over the literal payload.
type EventVerifier interface {
	VerifyEvent(payload []byte, sigHeader string) (*PaymentEvent, error)
}

// PaymentEvent is the slice of a processor event the dispatcher consumes.
type PaymentEvent struct {
	Type string      `json:"type"`
	Data PaymentData `json:"data"`
}

type PaymentData struct {
	Object PaymentObject `json:"object"`
}

// PaymentObject carries the intent id and the metadata written at intent
// creation, including the correlating order id.
type PaymentObject struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata"`
}

// EventPaymentSucceeded is the only event type that triggers a store
// update; everything else is acknowledged without side effects.
const EventPaymentSucceeded = "payment_intent.succeeded"

// MetadataOrderID is the metadata key the order id travels under.
const MetadataOrderID = "order_id"
