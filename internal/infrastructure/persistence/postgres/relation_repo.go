package postgres

import (
	"context"
	"fmt"
)

// ══════════════════════════════════════════════════════════════════════════════
// RELATION REPOSITORIES
// Both edge sets ride on composite primary keys: ON CONFLICT DO NOTHING
// makes inserts idempotent, DELETE of an absent row is a natural no-op.
// ══════════════════════════════════════════════════════════════════════════════

// LikeRepository implements relation.LikeRepository for PostgreSQL.
type LikeRepository struct {
	db Querier
}

// NewLikeRepository creates a new LikeRepository.
func NewLikeRepository(db Querier) *LikeRepository {
	return &LikeRepository{db: db}
}

// Add inserts the (filmID, userID) edge. Re-adding is a no-op.
func (r *LikeRepository) Add(ctx context.Context, filmID, userID int64) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO likes (film_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		filmID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

// Remove deletes the edge if present.
func (r *LikeRepository) Remove(ctx context.Context, filmID, userID int64) error {
	_, err := r.db.Exec(ctx,
		"DELETE FROM likes WHERE film_id = $1 AND user_id = $2",
		filmID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

// Has reports whether the edge is in the set.
func (r *LikeRepository) Has(ctx context.Context, filmID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM likes WHERE film_id = $1 AND user_id = $2)",
		filmID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return exists, nil
}

// CountByFilm returns the number of likes recorded for the film.
func (r *LikeRepository) CountByFilm(ctx context.Context, filmID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM likes WHERE film_id = $1", filmID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// FriendshipRepository implements relation.FriendshipRepository for
// PostgreSQL. Edges are directed rows; the reverse direction is a separate
// row.
type FriendshipRepository struct {
	db Querier
}

// NewFriendshipRepository creates a new FriendshipRepository.
func NewFriendshipRepository(db Querier) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

// Add inserts the directed edge userID -> friendID with approved=false.
func (r *FriendshipRepository) Add(ctx context.Context, userID, friendID int64) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO friendships (user_id, friend_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		userID, friendID,
	)
	if err != nil {
		return fmt.Errorf("failed to add friendship: %w", err)
	}
	return nil
}

// Remove deletes only the userID -> friendID edge.
func (r *FriendshipRepository) Remove(ctx context.Context, userID, friendID int64) error {
	_, err := r.db.Exec(ctx,
		"DELETE FROM friendships WHERE user_id = $1 AND friend_id = $2",
		userID, friendID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove friendship: %w", err)
	}
	return nil
}

// Has reports whether the directed edge is in the set.
func (r *FriendshipRepository) Has(ctx context.Context, userID, friendID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM friendships WHERE user_id = $1 AND friend_id = $2)",
		userID, friendID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return exists, nil
}

// FriendsOf returns all friend ids of the user, sorted ascending.
func (r *FriendshipRepository) FriendsOf(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		"SELECT friend_id FROM friendships WHERE user_id = $1 ORDER BY friend_id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan friend id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
