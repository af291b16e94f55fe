package query

import (
	"context"

	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG QUERIES
// Справочники жанров и возрастных рейтингов. Оба набора фиксированы и
// отдаются в порядке возрастания id.
// ══════════════════════════════════════════════════════════════════════════════

// GetGenreQuery содержит параметры запроса жанра.
type GetGenreQuery struct {
	// ID - идентификатор жанра.
	ID int64
}

// GetGenreResult содержит результат запроса жанра.
type GetGenreResult struct {
	// Genre - найденный жанр.
	Genre *film.Genre
}

// ListGenresResult содержит результат запроса списка жанров.
type ListGenresResult struct {
	// Genres - все жанры по возрастанию id.
	Genres []*film.Genre
}

// CatalogHandler обрабатывает запросы справочников.
type CatalogHandler struct {
	genreRepo film.GenreRepository
	mpaRepo   film.MpaRepository
}

// NewCatalogHandler создаёт новый CatalogHandler.
func NewCatalogHandler(genreRepo film.GenreRepository, mpaRepo film.MpaRepository) *CatalogHandler {
	return &CatalogHandler{genreRepo: genreRepo, mpaRepo: mpaRepo}
}

// GetGenre возвращает жанр по идентификатору.
func (h *CatalogHandler) GetGenre(ctx context.Context, q GetGenreQuery) (*GetGenreResult, error) {
	if q.ID <= 0 {
		return nil, shared.InvalidInput("genre", "id", "must be positive")
	}
	genre, err := h.genreRepo.GetByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return &GetGenreResult{Genre: genre}, nil
}

// ListGenres возвращает все жанры.
func (h *CatalogHandler) ListGenres(ctx context.Context) (*ListGenresResult, error) {
	genres, err := h.genreRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ListGenresResult{Genres: genres}, nil
}

// GetMpaQuery содержит параметры запроса возрастного рейтинга.
type GetMpaQuery struct {
	// ID - идентификатор рейтинга.
	ID int64
}

// GetMpaResult содержит результат запроса возрастного рейтинга.
type GetMpaResult struct {
	// Mpa - найденный рейтинг.
	Mpa *film.Mpa
}

// ListMpaResult содержит результат запроса списка рейтингов.
type ListMpaResult struct {
	// Ratings - все рейтинги по возрастанию id.
	Ratings []*film.Mpa
}

// GetMpa возвращает возрастной рейтинг по идентификатору.
func (h *CatalogHandler) GetMpa(ctx context.Context, q GetMpaQuery) (*GetMpaResult, error) {
	if q.ID <= 0 {
		return nil, shared.InvalidInput("mpa", "id", "must be positive")
	}
	mpa, err := h.mpaRepo.GetByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return &GetMpaResult{Mpa: mpa}, nil
}

// ListMpa возвращает все возрастные рейтинги.
func (h *CatalogHandler) ListMpa(ctx context.Context) (*ListMpaResult, error) {
	ratings, err := h.mpaRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ListMpaResult{Ratings: ratings}, nil
}
