package query

import (
	"context"

	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET FILM QUERY
// Возвращает один фильм по идентификатору, вместе с его жанрами и
// возрастным рейтингом.
// ══════════════════════════════════════════════════════════════════════════════

// GetFilmQuery содержит параметры запроса фильма.
type GetFilmQuery struct {
	// ID - идентификатор фильма.
	ID int64
}

// Validate проверяет корректность параметров запроса.
func (q GetFilmQuery) Validate() error {
	if q.ID <= 0 {
		return shared.InvalidInput("film", "id", "must be positive")
	}
	return nil
}

// GetFilmResult содержит результат запроса фильма.
type GetFilmResult struct {
	// Film - найденный фильм.
	Film *film.Film
}

// GetFilmHandler обрабатывает GetFilmQuery.
type GetFilmHandler struct {
	filmRepo film.Repository
}

// NewGetFilmHandler создаёт новый GetFilmHandler.
func NewGetFilmHandler(filmRepo film.Repository) *GetFilmHandler {
	return &GetFilmHandler{filmRepo: filmRepo}
}

// Handle выполняет запрос фильма.
func (h *GetFilmHandler) Handle(ctx context.Context, q GetFilmQuery) (*GetFilmResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	f, err := h.filmRepo.GetByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return &GetFilmResult{Film: f}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LIST FILMS QUERY
// Возвращает все фильмы в порядке их регистрации.
// ══════════════════════════════════════════════════════════════════════════════

// ListFilmsResult содержит результат запроса списка фильмов.
type ListFilmsResult struct {
	// Films - все фильмы в порядке вставки.
	Films []*film.Film

	// Total - общее количество.
	Total int
}

// ListFilmsHandler обрабатывает запрос списка фильмов.
type ListFilmsHandler struct {
	filmRepo film.Repository
}

// NewListFilmsHandler создаёт новый ListFilmsHandler.
func NewListFilmsHandler(filmRepo film.Repository) *ListFilmsHandler {
	return &ListFilmsHandler{filmRepo: filmRepo}
}

// Handle выполняет запрос списка фильмов.
func (h *ListFilmsHandler) Handle(ctx context.Context) (*ListFilmsResult, error) {
	films, err := h.filmRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if films == nil {
		films = []*film.Film{}
	}
	return &ListFilmsResult{Films: films, Total: len(films)}, nil
}
