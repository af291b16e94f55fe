package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/shared"
)

func newFilm(name string) *film.Film {
	return &film.Film{
		Name:        name,
		Description: "description of " + name,
		ReleaseDate: shared.NewDate(1999, time.March, 31),
		Duration:    120,
		Genres:      []film.Genre{{ID: 1, Name: "Комедия"}},
		Mpa:         film.Mpa{ID: 1, Name: "G"},
	}
}

func TestFilmStore_CreateAssignsSequentialIDs(t *testing.T) {
	store := NewFilmStore()
	ctx := context.Background()

	first, err := store.Create(ctx, newFilm("Матрица"))
	require.NoError(t, err)
	second, err := store.Create(ctx, newFilm("Бойцовский клуб"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestFilmStore_GetAllPreservesInsertionOrder(t *testing.T) {
	store := NewFilmStore()
	ctx := context.Background()

	names := []string{"Третий", "Первый", "Второй"}
	for _, name := range names {
		_, err := store.Create(ctx, newFilm(name))
		require.NoError(t, err)
	}

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, name := range names {
		assert.Equal(t, name, all[i].Name)
	}
}

func TestFilmStore_UpdateUnknownID(t *testing.T) {
	store := NewFilmStore()

	absent := newFilm("ghost")
	absent.ID = 99
	_, err := store.Update(context.Background(), absent)
	assert.True(t, shared.IsNotFound(err))
}

func TestFilmStore_GenreSliceIsCloned(t *testing.T) {
	store := NewFilmStore()
	ctx := context.Background()

	created, err := store.Create(ctx, newFilm("Матрица"))
	require.NoError(t, err)

	// Mutating the returned slice must not leak into the store.
	created.Genres[0].Name = "mutated"

	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Genres, 1)
	assert.Equal(t, "Комедия", got.Genres[0].Name)
}

func TestFilmStore_Exists(t *testing.T) {
	store := NewFilmStore()
	ctx := context.Background()

	created, err := store.Create(ctx, newFilm("Матрица"))
	require.NoError(t, err)

	ok, err := store.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, created.ID+100)
	require.NoError(t, err)
	assert.False(t, ok)
}
