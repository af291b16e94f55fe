package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// FILM REPOSITORY IMPLEMENTATION
// Films join mpa_ratings for the rating name; genres live in the
// film_genres link table and are loaded per film, ordered by genre id.
// ══════════════════════════════════════════════════════════════════════════════

// FilmRepository implements film.Repository for PostgreSQL.
type FilmRepository struct {
	db Querier
}

// NewFilmRepository creates a new FilmRepository.
func NewFilmRepository(db Querier) *FilmRepository {
	return &FilmRepository{db: db}
}

// Create inserts a new film with its genre links and returns it with the
// assigned id.
func (r *FilmRepository) Create(ctx context.Context, f *film.Film) (*film.Film, error) {
	query := `
		INSERT INTO films (name, description, release_date, duration, mpa_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	stored := *f
	err := r.db.QueryRow(ctx, query,
		f.Name,
		f.Description,
		f.ReleaseDate.Time,
		f.Duration,
		f.Mpa.ID,
	).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create film: %w", err)
	}

	if err := r.insertGenres(ctx, stored.ID, f.Genres); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Update replaces every settable field of an existing film, including its
// genre links.
func (r *FilmRepository) Update(ctx context.Context, f *film.Film) (*film.Film, error) {
	query := `
		UPDATE films
		SET name = $2, description = $3, release_date = $4, duration = $5, mpa_id = $6
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		f.ID,
		f.Name,
		f.Description,
		f.ReleaseDate.Time,
		f.Duration,
		f.Mpa.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update film: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, shared.NotFound("film", f.ID)
	}

	if _, err := r.db.Exec(ctx, "DELETE FROM film_genres WHERE film_id = $1", f.ID); err != nil {
		return nil, fmt.Errorf("failed to clear film genres: %w", err)
	}
	if err := r.insertGenres(ctx, f.ID, f.Genres); err != nil {
		return nil, err
	}

	stored := *f
	return &stored, nil
}

// GetByID returns a film by id with its rating and genres.
func (r *FilmRepository) GetByID(ctx context.Context, id int64) (*film.Film, error) {
	query := `
		SELECT f.id, f.name, f.description, f.release_date, f.duration,
		       m.id, m.name
		FROM films f
		JOIN mpa_ratings m ON m.id = f.mpa_id
		WHERE f.id = $1
	`

	f, err := scanFilm(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.NotFound("film", id)
		}
		return nil, fmt.Errorf("failed to get film: %w", err)
	}

	genres, err := r.loadGenres(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Genres = genres
	return f, nil
}

// GetAll returns all films ordered by id, which matches registration order.
func (r *FilmRepository) GetAll(ctx context.Context) ([]*film.Film, error) {
	query := `
		SELECT f.id, f.name, f.description, f.release_date, f.duration,
		       m.id, m.name
		FROM films f
		JOIN mpa_ratings m ON m.id = f.mpa_id
		ORDER BY f.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list films: %w", err)
	}
	defer rows.Close()

	films := make([]*film.Film, 0)
	byID := make(map[int64]*film.Film)
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan film: %w", err)
		}
		f.Genres = []film.Genre{}
		films = append(films, f)
		byID[f.ID] = f
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return films, nil
	}

	// One pass over the whole link table instead of a query per film.
	genreQuery := `
		SELECT fg.film_id, g.id, g.name
		FROM film_genres fg
		JOIN genres g ON g.id = fg.genre_id
		ORDER BY fg.film_id, g.id
	`
	genreRows, err := r.db.Query(ctx, genreQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list film genres: %w", err)
	}
	defer genreRows.Close()

	for genreRows.Next() {
		var filmID int64
		var g film.Genre
		if err := genreRows.Scan(&filmID, &g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan film genre: %w", err)
		}
		if f, ok := byID[filmID]; ok {
			f.Genres = append(f.Genres, g)
		}
	}
	return films, genreRows.Err()
}

// Exists reports whether a film with the given id is registered.
func (r *FilmRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM films WHERE id = $1)", id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check film existence: %w", err)
	}
	return exists, nil
}

// Count returns the number of registered films.
func (r *FilmRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM films").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count films: %w", err)
	}
	return count, nil
}

func (r *FilmRepository) insertGenres(ctx context.Context, filmID int64, genres []film.Genre) error {
	for _, g := range genres {
		_, err := r.db.Exec(ctx,
			"INSERT INTO film_genres (film_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			filmID, g.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to link genre %d: %w", g.ID, err)
		}
	}
	return nil
}

func (r *FilmRepository) loadGenres(ctx context.Context, filmID int64) ([]film.Genre, error) {
	query := `
		SELECT g.id, g.name
		FROM film_genres fg
		JOIN genres g ON g.id = fg.genre_id
		WHERE fg.film_id = $1
		ORDER BY g.id
	`

	rows, err := r.db.Query(ctx, query, filmID)
	if err != nil {
		return nil, fmt.Errorf("failed to load film genres: %w", err)
	}
	defer rows.Close()

	genres := make([]film.Genre, 0)
	for rows.Next() {
		var g film.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func scanFilm(row rowScanner) (*film.Film, error) {
	var f film.Film
	var releaseDate time.Time

	err := row.Scan(
		&f.ID, &f.Name, &f.Description, &releaseDate, &f.Duration,
		&f.Mpa.ID, &f.Mpa.Name,
	)
	if err != nil {
		return nil, err
	}
	f.ReleaseDate = shared.DateOf(releaseDate)
	return &f, nil
}
