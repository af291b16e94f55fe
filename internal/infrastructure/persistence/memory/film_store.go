package memory

import (
	"context"
	"sync"

	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/shared"
)

// FilmStore implements film.Repository in memory.
type FilmStore struct {
	mu     sync.RWMutex
	byID   map[int64]*film.Film
	order  []int64
	nextID int64
}

// NewFilmStore creates an empty FilmStore. The id counter starts at 1 and is
// never reused.
func NewFilmStore() *FilmStore {
	return &FilmStore{
		byID:   make(map[int64]*film.Film),
		order:  make([]int64, 0),
		nextID: 1,
	}
}

// Create persists a new film and assigns a fresh id.
func (s *FilmStore) Create(ctx context.Context, f *film.Film) (*film.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneFilm(f)
	stored.ID = s.nextID
	s.nextID++

	s.byID[stored.ID] = stored
	s.order = append(s.order, stored.ID)

	return cloneFilm(stored), nil
}

// Update fully replaces the record with f.ID, including its genre set.
func (s *FilmStore) Update(ctx context.Context, f *film.Film) (*film.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[f.ID]; !ok {
		return nil, shared.NotFound("film", f.ID)
	}

	stored := cloneFilm(f)
	s.byID[f.ID] = stored

	return cloneFilm(stored), nil
}

// GetByID returns the film with the given id.
func (s *FilmStore) GetByID(ctx context.Context, id int64) (*film.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.byID[id]
	if !ok {
		return nil, shared.NotFound("film", id)
	}
	return cloneFilm(f), nil
}

// GetAll returns all films in insertion order.
func (s *FilmStore) GetAll(ctx context.Context) ([]*film.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]*film.Film, 0, len(s.order))
	for _, id := range s.order {
		films = append(films, cloneFilm(s.byID[id]))
	}
	return films, nil
}

// Exists reports whether a film with the given id is stored.
func (s *FilmStore) Exists(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byID[id]
	return ok, nil
}

// Count returns the number of stored films.
func (s *FilmStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byID), nil
}

// cloneFilm copies a film together with its genre slice, so callers can
// never mutate stored state through a shared slice header.
func cloneFilm(f *film.Film) *film.Film {
	out := *f
	if f.Genres != nil {
		out.Genres = make([]film.Genre, len(f.Genres))
		copy(out.Genres, f.Genres)
	}
	return &out
}
