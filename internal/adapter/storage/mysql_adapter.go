package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/quickbites/storefront/internal/core/domain"
)

var ErrAdminPINNotConfigured = errors.New("admin pin not configured")

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, price FROM menu_items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var it domain.MenuItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Price); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (m *MySQLAdapter) MenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	var it domain.MenuItem
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, price FROM menu_items WHERE id = ?`, id,
	).Scan(&it.ID, &it.Name, &it.Price)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query menu item: %w", err)
	}
	return &it, nil
}

func (m *MySQLAdapter) GenerateOrderID(ctx context.Context) (string, error) {
	return "ORD-" + uuid.NewString(), nil
}

// SaveOrder writes the order row and its item snapshot in one transaction so
// a partially persisted order can never be observed.
func (m *MySQLAdapter) SaveOrder(ctx context.Context, order domain.Order) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_name, customer_phone, customer_address,
			status, total_amount, payment_id, placed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserDetails.Name, order.UserDetails.Phone,
		order.UserDetails.Address, order.Status, order.TotalAmount,
		order.PaymentID, order.PlacedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, item_id, name, price, quantity)
			VALUES (?, ?, ?, ?, ?)`,
			order.ID, it.ID, it.Name, it.Price, it.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) AdminPIN(ctx context.Context) (string, error) {
	var pin string
	err := m.db.QueryRowContext(ctx, `
		SELECT value FROM settings WHERE name = 'admin_pin'`,
	).Scan(&pin)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrAdminPINNotConfigured
	}
	if err != nil {
		return "", fmt.Errorf("query admin pin: %w", err)
	}
	return pin, nil
}
