package command

import (
	"context"

	"github.com/filmhub/filmhub/internal/domain/relation"
	"github.com/filmhub/filmhub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// FRIENDSHIP COMMANDS
// Friendship edges are directed: adding a friend records only the caller's
// side, and the other side appears only when the other user reciprocates.
// Both operations are idempotent.
// ══════════════════════════════════════════════════════════════════════════════

// AddFriendCommand records a directed friendship edge.
type AddFriendCommand struct {
	// UserID is the user initiating the friendship.
	UserID int64

	// FriendID is the user being added as a friend.
	FriendID int64
}

// Validate validates the command.
func (c AddFriendCommand) Validate() error {
	if c.UserID <= 0 {
		return shared.InvalidInput("friendship", "user_id", "must be positive")
	}
	if c.FriendID <= 0 {
		return shared.InvalidInput("friendship", "friend_id", "must be positive")
	}
	return nil
}

// AddFriendResult contains the result of recording a friendship.
type AddFriendResult struct {
	// UserID is the initiating user.
	UserID int64

	// FriendID is the added friend.
	FriendID int64

	// Mutual reports whether the friend has an edge back to the user.
	Mutual bool
}

// AddFriendHandler handles the AddFriendCommand.
type AddFriendHandler struct {
	ledger *relation.Ledger
}

// NewAddFriendHandler creates a new AddFriendHandler.
func NewAddFriendHandler(ledger *relation.Ledger) *AddFriendHandler {
	return &AddFriendHandler{ledger: ledger}
}

// Handle executes the add friend command.
func (h *AddFriendHandler) Handle(ctx context.Context, cmd AddFriendCommand) (*AddFriendResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.ledger.AddFriendship(ctx, cmd.UserID, cmd.FriendID); err != nil {
		return nil, err
	}

	mutual, err := h.ledger.AreFriends(ctx, cmd.FriendID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	return &AddFriendResult{
		UserID:   cmd.UserID,
		FriendID: cmd.FriendID,
		Mutual:   mutual,
	}, nil
}

// RemoveFriendCommand removes a directed friendship edge.
type RemoveFriendCommand struct {
	// UserID is the user removing the friend.
	UserID int64

	// FriendID is the friend being removed.
	FriendID int64
}

// Validate validates the command.
func (c RemoveFriendCommand) Validate() error {
	if c.UserID <= 0 {
		return shared.InvalidInput("friendship", "user_id", "must be positive")
	}
	if c.FriendID <= 0 {
		return shared.InvalidInput("friendship", "friend_id", "must be positive")
	}
	return nil
}

// RemoveFriendResult contains the result of removing a friendship.
type RemoveFriendResult struct {
	// UserID is the removing user.
	UserID int64

	// FriendID is the removed friend.
	FriendID int64
}

// RemoveFriendHandler handles the RemoveFriendCommand.
type RemoveFriendHandler struct {
	ledger *relation.Ledger
}

// NewRemoveFriendHandler creates a new RemoveFriendHandler.
func NewRemoveFriendHandler(ledger *relation.Ledger) *RemoveFriendHandler {
	return &RemoveFriendHandler{ledger: ledger}
}

// Handle executes the remove friend command.
func (h *RemoveFriendHandler) Handle(ctx context.Context, cmd RemoveFriendCommand) (*RemoveFriendResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.ledger.RemoveFriendship(ctx, cmd.UserID, cmd.FriendID); err != nil {
		return nil, err
	}

	return &RemoveFriendResult{
		UserID:   cmd.UserID,
		FriendID: cmd.FriendID,
	}, nil
}
