package memory

import (
	"context"
	"sync"

	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/shared"
)

// Catalog seed data: the reference genre and MPA rating sets of the original
// catalog. Postgres storage seeds the same rows via migrations.
var (
	seedGenres = []film.Genre{
		{ID: 1, Name: "Комедия"},
		{ID: 2, Name: "Драма"},
		{ID: 3, Name: "Мультфильм"},
		{ID: 4, Name: "Триллер"},
		{ID: 5, Name: "Документальный"},
		{ID: 6, Name: "Боевик"},
	}

	seedMpa = []film.Mpa{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
)

// GenreStore implements film.GenreRepository in memory. The catalog is
// immutable after construction, so reads need no locking beyond the mutex
// kept for symmetry with the other stores.
type GenreStore struct {
	mu     sync.RWMutex
	byID   map[int64]*film.Genre
	sorted []film.Genre
}

// NewGenreStore creates a GenreStore seeded with the reference genres.
func NewGenreStore() *GenreStore {
	s := &GenreStore{byID: make(map[int64]*film.Genre, len(seedGenres))}
	for i := range seedGenres {
		g := seedGenres[i]
		s.byID[g.ID] = &g
		s.sorted = append(s.sorted, g)
	}
	return s
}

// GetByID returns the genre with the given id.
func (s *GenreStore) GetByID(ctx context.Context, id int64) (*film.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.byID[id]
	if !ok {
		return nil, shared.NotFound("genre", id)
	}
	out := *g
	return &out, nil
}

// GetAll returns all genres in ascending id order.
func (s *GenreStore) GetAll(ctx context.Context) ([]*film.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	genres := make([]*film.Genre, 0, len(s.sorted))
	for i := range s.sorted {
		out := s.sorted[i]
		genres = append(genres, &out)
	}
	return genres, nil
}

// Exists reports whether a genre with the given id is known.
func (s *GenreStore) Exists(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byID[id]
	return ok, nil
}

// MpaStore implements film.MpaRepository in memory.
type MpaStore struct {
	mu     sync.RWMutex
	byID   map[int64]*film.Mpa
	sorted []film.Mpa
}

// NewMpaStore creates an MpaStore seeded with the reference MPA ratings.
func NewMpaStore() *MpaStore {
	s := &MpaStore{byID: make(map[int64]*film.Mpa, len(seedMpa))}
	for i := range seedMpa {
		m := seedMpa[i]
		s.byID[m.ID] = &m
		s.sorted = append(s.sorted, m)
	}
	return s
}

// GetByID returns the MPA rating with the given id.
func (s *MpaStore) GetByID(ctx context.Context, id int64) (*film.Mpa, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byID[id]
	if !ok {
		return nil, shared.NotFound("mpa", id)
	}
	out := *m
	return &out, nil
}

// GetAll returns all MPA ratings in ascending id order.
func (s *MpaStore) GetAll(ctx context.Context) ([]*film.Mpa, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ratings := make([]*film.Mpa, 0, len(s.sorted))
	for i := range s.sorted {
		out := s.sorted[i]
		ratings = append(ratings, &out)
	}
	return ratings, nil
}

// Exists reports whether an MPA rating with the given id is known.
func (s *MpaStore) Exists(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byID[id]
	return ok, nil
}
