package service

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/aydmirov/call-logging/internal/interceptor"
	"github.com/aydmirov/call-logging/internal/store"
)

const userServiceType = "service.UserService"

// UserService is the demo business layer. Every method passes through the
// method call interceptor under the type name "service.UserService", so it
// is subject to the configured base-package filter.
type UserService struct {
	users *store.UserStore
	calls *interceptor.Interceptor
}

func NewUserService(users *store.UserStore, calls *interceptor.Interceptor) *UserService {
	return &UserService{users: users, calls: calls}
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*store.User, error) {
	return interceptor.Do(ctx, s.calls, userServiceType, "FindByID", []any{id}, func() (*store.User, error) {
		if err := validation.Validate(id, validation.Required, validation.Min(int64(1))); err != nil {
			return nil, err
		}
		return s.users.FindByID(ctx, id)
	})
}

func (s *UserService) Register(ctx context.Context, name, email string) (*store.User, error) {
	return interceptor.Do(ctx, s.calls, userServiceType, "Register", []any{name, email}, func() (*store.User, error) {
		if err := validation.Validate(name, validation.Required, validation.Length(1, 100)); err != nil {
			return nil, err
		}
		if err := validation.Validate(email, validation.Required, is.Email); err != nil {
			return nil, err
		}

		user := &store.User{Name: name, Email: email}
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	})
}

func (s *UserService) List(ctx context.Context, limit int) ([]*store.User, error) {
	return interceptor.Do(ctx, s.calls, userServiceType, "List", []any{limit}, func() ([]*store.User, error) {
		if limit <= 0 {
			limit = 50
		}
		return s.users.List(ctx, limit)
	})
}

func (s *UserService) Remove(ctx context.Context, id int64) error {
	_, err := interceptor.Do(ctx, s.calls, userServiceType, "Remove", []any{id}, func() (any, error) {
		if err := validation.Validate(id, validation.Required, validation.Min(int64(1))); err != nil {
			return nil, err
		}
		return nil, s.users.Delete(ctx, id)
	})
	return err
}
