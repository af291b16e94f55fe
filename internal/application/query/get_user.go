// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
package query

import (
	"context"

	"github.com/filmhub/filmhub/internal/domain/shared"
	"github.com/filmhub/filmhub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET USER QUERY
// Возвращает одного пользователя по идентификатору.
// ══════════════════════════════════════════════════════════════════════════════

// GetUserQuery содержит параметры запроса пользователя.
type GetUserQuery struct {
	// ID - идентификатор пользователя.
	ID int64
}

// Validate проверяет корректность параметров запроса.
func (q GetUserQuery) Validate() error {
	if q.ID <= 0 {
		return shared.InvalidInput("user", "id", "must be positive")
	}
	return nil
}

// GetUserResult содержит результат запроса пользователя.
type GetUserResult struct {
	// User - найденный пользователь.
	User *user.User
}

// GetUserHandler обрабатывает GetUserQuery.
type GetUserHandler struct {
	userRepo user.Repository
}

// NewGetUserHandler создаёт новый GetUserHandler.
func NewGetUserHandler(userRepo user.Repository) *GetUserHandler {
	return &GetUserHandler{userRepo: userRepo}
}

// Handle выполняет запрос пользователя.
func (h *GetUserHandler) Handle(ctx context.Context, q GetUserQuery) (*GetUserResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	u, err := h.userRepo.GetByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return &GetUserResult{User: u}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LIST USERS QUERY
// Возвращает всех пользователей в порядке их регистрации.
// ══════════════════════════════════════════════════════════════════════════════

// ListUsersResult содержит результат запроса списка пользователей.
type ListUsersResult struct {
	// Users - все пользователи в порядке вставки.
	Users []*user.User

	// Total - общее количество.
	Total int
}

// ListUsersHandler обрабатывает запрос списка пользователей.
type ListUsersHandler struct {
	userRepo user.Repository
}

// NewListUsersHandler создаёт новый ListUsersHandler.
func NewListUsersHandler(userRepo user.Repository) *ListUsersHandler {
	return &ListUsersHandler{userRepo: userRepo}
}

// Handle выполняет запрос списка пользователей.
func (h *ListUsersHandler) Handle(ctx context.Context) (*ListUsersResult, error) {
	users, err := h.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*user.User{}
	}
	return &ListUsersResult{Users: users, Total: len(users)}, nil
}
