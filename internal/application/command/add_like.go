package command

import (
	"context"

	"github.com/filmhub/filmhub/internal/domain/relation"
	"github.com/filmhub/filmhub/internal/domain/shared"
	"github.com/filmhub/filmhub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIKE COMMANDS
// Record and withdraw likes. Both operations are idempotent: repeating one
// leaves the ledger exactly as it was. Every successful write invalidates
// the popularity cache so rankings never serve stale counts.
// ══════════════════════════════════════════════════════════════════════════════

// PopularityInvalidator discards any cached popularity ranking. Implemented
// by the Redis cache; nil when caching is disabled.
type PopularityInvalidator interface {
	Invalidate(ctx context.Context) error
}

// invalidatePopularity drops the cached ranking after a write. A lost
// invalidation means stale rankings for the whole cache TTL, so the failure
// is logged; the write itself has already succeeded and is not rolled back.
func invalidatePopularity(ctx context.Context, cache PopularityInvalidator) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		logger.FromContext(ctx).Warn("popularity cache invalidation failed", logger.Err(err))
	}
}

// AddLikeCommand records that a user likes a film.
type AddLikeCommand struct {
	// FilmID is the film being liked.
	FilmID int64

	// UserID is the user expressing the like.
	UserID int64
}

// Validate validates the command.
func (c AddLikeCommand) Validate() error {
	if c.FilmID <= 0 {
		return shared.InvalidInput("like", "film_id", "must be positive")
	}
	if c.UserID <= 0 {
		return shared.InvalidInput("like", "user_id", "must be positive")
	}
	return nil
}

// AddLikeResult contains the result of recording a like.
type AddLikeResult struct {
	// FilmID is the liked film.
	FilmID int64

	// UserID is the liking user.
	UserID int64

	// LikeCount is the film's like count after the operation.
	LikeCount int
}

// AddLikeHandler handles the AddLikeCommand.
type AddLikeHandler struct {
	ledger *relation.Ledger
	cache  PopularityInvalidator
}

// NewAddLikeHandler creates a new AddLikeHandler. The cache may be nil when
// popularity caching is disabled.
func NewAddLikeHandler(ledger *relation.Ledger, cache PopularityInvalidator) *AddLikeHandler {
	return &AddLikeHandler{ledger: ledger, cache: cache}
}

// Handle executes the add like command.
func (h *AddLikeHandler) Handle(ctx context.Context, cmd AddLikeCommand) (*AddLikeResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.ledger.AddLike(ctx, cmd.FilmID, cmd.UserID); err != nil {
		return nil, err
	}

	invalidatePopularity(ctx, h.cache)

	count, err := h.ledger.LikeCount(ctx, cmd.FilmID)
	if err != nil {
		return nil, err
	}

	return &AddLikeResult{
		FilmID:    cmd.FilmID,
		UserID:    cmd.UserID,
		LikeCount: count,
	}, nil
}

// RemoveLikeCommand withdraws a user's like from a film.
type RemoveLikeCommand struct {
	// FilmID is the film the like is withdrawn from.
	FilmID int64

	// UserID is the user withdrawing the like.
	UserID int64
}

// Validate validates the command.
func (c RemoveLikeCommand) Validate() error {
	if c.FilmID <= 0 {
		return shared.InvalidInput("like", "film_id", "must be positive")
	}
	if c.UserID <= 0 {
		return shared.InvalidInput("like", "user_id", "must be positive")
	}
	return nil
}

// RemoveLikeResult contains the result of withdrawing a like.
type RemoveLikeResult struct {
	// FilmID is the film the like was withdrawn from.
	FilmID int64

	// UserID is the withdrawing user.
	UserID int64

	// LikeCount is the film's like count after the operation.
	LikeCount int
}

// RemoveLikeHandler handles the RemoveLikeCommand.
type RemoveLikeHandler struct {
	ledger *relation.Ledger
	cache  PopularityInvalidator
}

// NewRemoveLikeHandler creates a new RemoveLikeHandler. The cache may be nil
// when popularity caching is disabled.
func NewRemoveLikeHandler(ledger *relation.Ledger, cache PopularityInvalidator) *RemoveLikeHandler {
	return &RemoveLikeHandler{ledger: ledger, cache: cache}
}

// Handle executes the remove like command.
func (h *RemoveLikeHandler) Handle(ctx context.Context, cmd RemoveLikeCommand) (*RemoveLikeResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.ledger.RemoveLike(ctx, cmd.FilmID, cmd.UserID); err != nil {
		return nil, err
	}

	invalidatePopularity(ctx, h.cache)

	count, err := h.ledger.LikeCount(ctx, cmd.FilmID)
	if err != nil {
		return nil, err
	}

	return &RemoveLikeResult{
		FilmID:    cmd.FilmID,
		UserID:    cmd.UserID,
		LikeCount: count,
	}, nil
}
