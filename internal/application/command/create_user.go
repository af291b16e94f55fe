// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/filmhub/filmhub/internal/domain/shared"
	"github.com/filmhub/filmhub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE USER COMMAND
// Registers a new user in the catalog. The store assigns the identifier;
// any identifier supplied by the caller is ignored.
// ══════════════════════════════════════════════════════════════════════════════

// CreateUserCommand contains the data to register a user.
type CreateUserCommand struct {
	// Email is the user's email address.
	Email string

	// Login is the user's unique login.
	Login string

	// Name is the display name. May be blank; the login is used instead.
	Name string

	// Birthday is the user's date of birth.
	Birthday shared.Date
}

// CreateUserResult contains the result of registering a user.
type CreateUserResult struct {
	// User is the stored user with its assigned identifier.
	User *user.User

	// CreatedAt is when the user was registered.
	CreatedAt time.Time
}

// CreateUserHandler handles the CreateUserCommand.
type CreateUserHandler struct {
	userRepo user.Repository
}

// NewCreateUserHandler creates a new CreateUserHandler.
func NewCreateUserHandler(userRepo user.Repository) *CreateUserHandler {
	return &CreateUserHandler{userRepo: userRepo}
}

// Handle executes the create user command.
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*CreateUserResult, error) {
	u := &user.User{
		Email:    cmd.Email,
		Login:    cmd.Login,
		Name:     cmd.Name,
		Birthday: cmd.Birthday,
	}
	if err := u.Validate(time.Now().UTC()); err != nil {
		return nil, err
	}

	created, err := h.userRepo.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("create_user: failed to save: %w", err)
	}

	return &CreateUserResult{
		User:      created,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE USER COMMAND
// Full replacement of every settable field of an existing user.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateUserCommand contains the full replacement state of a user.
type UpdateUserCommand struct {
	// ID identifies the user to update.
	ID int64

	// Email is the new email address.
	Email string

	// Login is the new login.
	Login string

	// Name is the new display name. May be blank; the login is used instead.
	Name string

	// Birthday is the new date of birth.
	Birthday shared.Date
}

// Validate validates the command.
func (c UpdateUserCommand) Validate() error {
	if c.ID <= 0 {
		return shared.InvalidInput("user", "id", "must be positive")
	}
	return nil
}

// UpdateUserResult contains the result of updating a user.
type UpdateUserResult struct {
	// User is the user after the update.
	User *user.User
}

// UpdateUserHandler handles the UpdateUserCommand.
type UpdateUserHandler struct {
	userRepo user.Repository
}

// NewUpdateUserHandler creates a new UpdateUserHandler.
func NewUpdateUserHandler(userRepo user.Repository) *UpdateUserHandler {
	return &UpdateUserHandler{userRepo: userRepo}
}

// Handle executes the update user command.
func (h *UpdateUserHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (*UpdateUserResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	u := &user.User{
		ID:       cmd.ID,
		Email:    cmd.Email,
		Login:    cmd.Login,
		Name:     cmd.Name,
		Birthday: cmd.Birthday,
	}
	if err := u.Validate(time.Now().UTC()); err != nil {
		return nil, err
	}

	updated, err := h.userRepo.Update(ctx, u)
	if err != nil {
		return nil, err
	}

	return &UpdateUserResult{User: updated}, nil
}
