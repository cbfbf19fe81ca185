package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aydmirov/call-logging/internal/sqllog"
)

type Order struct {
	ID     int64   `json:"id"`
	UserID int64   `json:"user_id"`
	Total  float64 `json:"total"`
}

func (o Order) String() string {
	return fmt.Sprintf("Order{id=%d,user=%d,total=%.2f}", o.ID, o.UserID, o.Total)
}

// OrderStore persists orders in SQLite. Every method routes through the
// repository call interceptor.
type OrderStore struct {
	db    *sql.DB
	calls *sqllog.Interceptor
}

func NewOrderStore(db *sql.DB, calls *sqllog.Interceptor) *OrderStore {
	return &OrderStore{db: db, calls: calls}
}

// Save inserts the order and fills in its generated ID. Inserting for an
// unknown user fails the foreign key constraint.
func (s *OrderStore) Save(ctx context.Context, order *Order) error {
	return s.calls.Do(ctx, "OrderStore", "Save", []any{order.UserID, order.Total}, func() error {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO orders (user_id, total) VALUES (?, ?)`,
			order.UserID, order.Total)
		if err != nil {
			return err
		}

		order.ID, err = res.LastInsertId()
		return err
	})
}

func (s *OrderStore) FindByUser(ctx context.Context, userID int64) ([]*Order, error) {
	var orders []*Order
	err := s.calls.Do(ctx, "OrderStore", "FindByUser", []any{userID}, func() error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, user_id, total FROM orders WHERE user_id = ? ORDER BY id`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			o := &Order{}
			if err := rows.Scan(&o.ID, &o.UserID, &o.Total); err != nil {
				return err
			}
			orders = append(orders, o)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}
