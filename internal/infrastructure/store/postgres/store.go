package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/application"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
	"github.com/jackc/pgx/v5"
)

// OrderStore implements both store ports over a direct connection. The
// token verifier stands in for the data API's row security: every
// caller-scoped query is filtered by the token's verified subject.
type OrderStore struct {
	db       *DB
	verifier application.Identity
}

func NewOrderStore(db *DB, verifier application.Identity) *OrderStore {
	return &OrderStore{
		db:       db,
		verifier: verifier,
	}
}

var _ application.OrderStore = (*OrderStore)(nil)
var _ application.AdminOrderStore = (*OrderStore)(nil)

// CreateOrder runs the create_order procedure as the token's user. Stock
// checks and totals live in the procedure; its jsonb receipt carries any
// business rejection.
func (s *OrderStore) CreateOrder(ctx context.Context, token string, items []domain.OrderItem) (*domain.OrderReceipt, error) {
	user, err := s.verifier.GetCurrentUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller: %w", err)
	}

	cartItems, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart items: %w", err)
	}

	var payload []byte
	query := `SELECT create_order($1::jsonb, $2::uuid)`
	if err := s.db.Pool.QueryRow(ctx, query, cartItems, user.ID).Scan(&payload); err != nil {
		return nil, fmt.Errorf("create_order procedure failed: %w", err)
	}

	var receipt domain.OrderReceipt
	if err := json.Unmarshal(payload, &receipt); err != nil {
		return nil, fmt.Errorf("failed to decode create_order receipt: %w", err)
	}

	return &receipt, nil
}

func (s *OrderStore) GetOrderTotal(ctx context.Context, token string, orderID string) (int64, error) {
	user, err := s.verifier.GetCurrentUser(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve caller: %w", err)
	}

	var total int64
	query := `SELECT total_price FROM orders WHERE id = $1 AND user_id = $2`
	err = s.db.Pool.QueryRow(ctx, query, orderID, user.ID).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, application.ErrOrderNotFound
		}
		return 0, fmt.Errorf("failed to query order total: %w", err)
	}

	return total, nil
}

func (s *OrderStore) ListOrderDetails(ctx context.Context, token string) ([]domain.OrderDetailRow, error) {
	user, err := s.verifier.GetCurrentUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller: %w", err)
	}

	query := `
		SELECT order_id, order_created_at, order_status, order_total_price,
		       item_id, item_quantity, item_total_price,
		       product_id, product_name, product_unit_price
		FROM user_order_details
		WHERE user_id = $1
		ORDER BY order_created_at, order_id
	`

	pgRows, err := s.db.Pool.Query(ctx, query, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order details: %w", err)
	}
	defer pgRows.Close()

	var rows []domain.OrderDetailRow
	for pgRows.Next() {
		var (
			row       domain.OrderDetailRow
			createdAt time.Time
		)
		err := pgRows.Scan(
			&row.OrderID,
			&createdAt,
			&row.OrderStatus,
			&row.OrderTotalPrice,
			&row.ItemID,
			&row.ItemQuantity,
			&row.ItemTotalPrice,
			&row.ProductID,
			&row.ProductName,
			&row.ProductPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order detail row: %w", err)
		}
		row.OrderCreatedAt = createdAt.UTC().Format(time.RFC3339)
		rows = append(rows, row)
	}
	if err := pgRows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading order details: %w", err)
	}

	return rows, nil
}

func (s *OrderStore) UpdateOrderStatus(ctx context.Context, orderID string, expected, next domain.OrderStatus) (*domain.Order, error) {
	var order domain.Order
	query := `
		UPDATE orders SET status = $2
		WHERE id = $1 AND status = $3
		RETURNING id, status
	`
	err := s.db.Pool.QueryRow(ctx, query, orderID, next, expected).Scan(&order.ID, &order.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return &order, nil
}

func (s *OrderStore) SetOrderStatus(ctx context.Context, orderID string, next domain.OrderStatus) error {
	query := `UPDATE orders SET status = $2 WHERE id = $1`
	if _, err := s.db.Pool.Exec(ctx, query, orderID, next); err != nil {
		return fmt.Errorf("failed to set order status: %w", err)
	}
	return nil
}
