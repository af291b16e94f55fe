package query

import (
	"context"

	"github.com/filmhub/filmhub/internal/domain/relation"
	"github.com/filmhub/filmhub/internal/domain/shared"
	"github.com/filmhub/filmhub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET FRIENDS QUERY
// Возвращает друзей пользователя как полные записи, в порядке возрастания
// id. Дружба направленная: учитываются только рёбра от самого пользователя.
// ══════════════════════════════════════════════════════════════════════════════

// GetFriendsQuery содержит параметры запроса друзей.
type GetFriendsQuery struct {
	// UserID - идентификатор пользователя.
	UserID int64
}

// Validate проверяет корректность параметров запроса.
func (q GetFriendsQuery) Validate() error {
	if q.UserID <= 0 {
		return shared.InvalidInput("user", "id", "must be positive")
	}
	return nil
}

// GetFriendsResult содержит результат запроса друзей.
type GetFriendsResult struct {
	// Friends - друзья пользователя, отсортированные по возрастанию id.
	Friends []*user.User
}

// GetFriendsHandler обрабатывает GetFriendsQuery.
type GetFriendsHandler struct {
	ledger   *relation.Ledger
	userRepo user.Repository
}

// NewGetFriendsHandler создаёт новый GetFriendsHandler.
func NewGetFriendsHandler(ledger *relation.Ledger, userRepo user.Repository) *GetFriendsHandler {
	return &GetFriendsHandler{ledger: ledger, userRepo: userRepo}
}

// Handle выполняет запрос друзей.
func (h *GetFriendsHandler) Handle(ctx context.Context, q GetFriendsQuery) (*GetFriendsResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	ids, err := h.ledger.FriendsOf(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	friends, err := resolveUsers(ctx, h.userRepo, ids)
	if err != nil {
		return nil, err
	}
	return &GetFriendsResult{Friends: friends}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// GET COMMON FRIENDS QUERY
// Возвращает пересечение множеств друзей двух пользователей. Результат
// симметричен относительно порядка аргументов.
// ══════════════════════════════════════════════════════════════════════════════

// GetCommonFriendsQuery содержит параметры запроса общих друзей.
type GetCommonFriendsQuery struct {
	// UserID - идентификатор первого пользователя.
	UserID int64

	// OtherID - идентификатор второго пользователя.
	OtherID int64
}

// Validate проверяет корректность параметров запроса.
func (q GetCommonFriendsQuery) Validate() error {
	if q.UserID <= 0 {
		return shared.InvalidInput("user", "id", "must be positive")
	}
	if q.OtherID <= 0 {
		return shared.InvalidInput("user", "other_id", "must be positive")
	}
	return nil
}

// GetCommonFriendsResult содержит результат запроса общих друзей.
type GetCommonFriendsResult struct {
	// Friends - общие друзья, отсортированные по возрастанию id.
	Friends []*user.User
}

// GetCommonFriendsHandler обрабатывает GetCommonFriendsQuery.
type GetCommonFriendsHandler struct {
	ledger   *relation.Ledger
	userRepo user.Repository
}

// NewGetCommonFriendsHandler создаёт новый GetCommonFriendsHandler.
func NewGetCommonFriendsHandler(ledger *relation.Ledger, userRepo user.Repository) *GetCommonFriendsHandler {
	return &GetCommonFriendsHandler{ledger: ledger, userRepo: userRepo}
}

// Handle выполняет запрос общих друзей.
func (h *GetCommonFriendsHandler) Handle(ctx context.Context, q GetCommonFriendsQuery) (*GetCommonFriendsResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	ids, err := h.ledger.CommonFriends(ctx, q.UserID, q.OtherID)
	if err != nil {
		return nil, err
	}

	friends, err := resolveUsers(ctx, h.userRepo, ids)
	if err != nil {
		return nil, err
	}
	return &GetCommonFriendsResult{Friends: friends}, nil
}

// resolveUsers обменивает список id на полные записи, сохраняя порядок.
func resolveUsers(ctx context.Context, repo user.Repository, ids []int64) ([]*user.User, error) {
	users := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		u, err := repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
