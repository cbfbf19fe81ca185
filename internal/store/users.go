package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aydmirov/call-logging/internal/sqllog"
)

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) String() string {
	return fmt.Sprintf("User{id=%d,name=%s}", u.ID, u.Name)
}

// UserStore persists users in SQLite. Every method routes through the
// repository call interceptor.
type UserStore struct {
	db    *sql.DB
	calls *sqllog.Interceptor
}

func NewUserStore(db *sql.DB, calls *sqllog.Interceptor) *UserStore {
	return &UserStore{db: db, calls: calls}
}

// Save inserts the user and fills in its generated ID.
func (s *UserStore) Save(ctx context.Context, user *User) error {
	return s.calls.Do(ctx, "UserStore", "Save", []any{user.Name, user.Email}, func() error {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO users (name, email) VALUES (?, ?)`,
			user.Name, user.Email)
		if err != nil {
			return err
		}

		user.ID, err = res.LastInsertId()
		return err
	})
}

func (s *UserStore) FindByID(ctx context.Context, id int64) (*User, error) {
	var user *User
	err := s.calls.Do(ctx, "UserStore", "FindByID", []any{id}, func() error {
		u := &User{}
		err := s.db.QueryRowContext(ctx,
			`SELECT id, name, email FROM users WHERE id = ?`, id).
			Scan(&u.ID, &u.Name, &u.Email)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return err
		}

		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserStore) List(ctx context.Context, limit int) ([]*User, error) {
	var users []*User
	err := s.calls.Do(ctx, "UserStore", "List", []any{limit}, func() error {
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, name, email FROM users ORDER BY id LIMIT ?`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			u := &User{}
			if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
				return err
			}
			users = append(users, u)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (s *UserStore) Delete(ctx context.Context, id int64) error {
	return s.calls.Do(ctx, "UserStore", "Delete", []any{id}, func() error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		if err != nil {
			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil
	})
}
