package postgres

import (
	"context"
	"fmt"

	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG REPOSITORIES
// Genres and MPA ratings are reference data seeded by migration; both
// repositories are read-only.
// ══════════════════════════════════════════════════════════════════════════════

// GenreRepository implements film.GenreRepository for PostgreSQL.
type GenreRepository struct {
	db Querier
}

// NewGenreRepository creates a new GenreRepository.
func NewGenreRepository(db Querier) *GenreRepository {
	return &GenreRepository{db: db}
}

// GetByID returns a genre by id.
func (r *GenreRepository) GetByID(ctx context.Context, id int64) (*film.Genre, error) {
	var g film.Genre
	err := r.db.QueryRow(ctx,
		"SELECT id, name FROM genres WHERE id = $1", id,
	).Scan(&g.ID, &g.Name)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.NotFound("genre", id)
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}
	return &g, nil
}

// GetAll returns all genres ordered by id.
func (r *GenreRepository) GetAll(ctx context.Context) ([]*film.Genre, error) {
	rows, err := r.db.Query(ctx, "SELECT id, name FROM genres ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	genres := make([]*film.Genre, 0)
	for rows.Next() {
		var g film.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, &g)
	}
	return genres, rows.Err()
}

// Exists reports whether a genre with the given id exists.
func (r *GenreRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM genres WHERE id = $1)", id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check genre existence: %w", err)
	}
	return exists, nil
}

// MpaRepository implements film.MpaRepository for PostgreSQL.
type MpaRepository struct {
	db Querier
}

// NewMpaRepository creates a new MpaRepository.
func NewMpaRepository(db Querier) *MpaRepository {
	return &MpaRepository{db: db}
}

// GetByID returns an MPA rating by id.
func (r *MpaRepository) GetByID(ctx context.Context, id int64) (*film.Mpa, error) {
	var m film.Mpa
	err := r.db.QueryRow(ctx,
		"SELECT id, name FROM mpa_ratings WHERE id = $1", id,
	).Scan(&m.ID, &m.Name)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.NotFound("mpa", id)
		}
		return nil, fmt.Errorf("failed to get mpa rating: %w", err)
	}
	return &m, nil
}

// GetAll returns all MPA ratings ordered by id.
func (r *MpaRepository) GetAll(ctx context.Context) ([]*film.Mpa, error) {
	rows, err := r.db.Query(ctx, "SELECT id, name FROM mpa_ratings ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list mpa ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]*film.Mpa, 0)
	for rows.Next() {
		var m film.Mpa
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan mpa rating: %w", err)
		}
		ratings = append(ratings, &m)
	}
	return ratings, rows.Err()
}

// Exists reports whether an MPA rating with the given id exists.
func (r *MpaRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM mpa_ratings WHERE id = $1)", id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check mpa existence: %w", err)
	}
	return exists, nil
}
