package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/relation"
	"github.com/filmhub/filmhub/internal/domain/shared"
)

func newTestCache(t *testing.T) (*PopularCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	cache, err := NewCacheFromAddr(srv.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	return NewPopularCache(cache), srv
}

func testFilm(id int64, name string) *film.Film {
	return &film.Film{
		ID:          id,
		Name:        name,
		Description: "описание",
		ReleaseDate: shared.NewDate(2000, time.May, 1),
		Duration:    90,
		Genres:      []film.Genre{},
		Mpa:         film.Mpa{ID: 1, Name: "G"},
	}
}

func TestPopularCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	ranked := []relation.Ranked{
		{Film: testFilm(2, "Второй"), LikeCount: 3},
		{Film: testFilm(1, "Первый"), LikeCount: 1},
		{Film: testFilm(3, "Третий"), LikeCount: 0},
	}
	require.NoError(t, cache.StoreTop(ctx, ranked))

	films, err := cache.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, films, 3)
	assert.Equal(t, int64(2), films[0].ID)
	assert.Equal(t, int64(1), films[1].ID)
	assert.Equal(t, int64(3), films[2].ID)
	assert.Equal(t, "Второй", films[0].Name)
}

func TestPopularCache_TieResolvedByAscendingID(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	// Ids chosen so the lexicographic member order disagrees with the
	// numeric order.
	ranked := []relation.Ranked{
		{Film: testFilm(9, "Девятый"), LikeCount: 2},
		{Film: testFilm(10, "Десятый"), LikeCount: 2},
		{Film: testFilm(100, "Сотый"), LikeCount: 2},
	}
	require.NoError(t, cache.StoreTop(ctx, ranked))

	films, err := cache.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, films, 3)
	assert.Equal(t, int64(9), films[0].ID)
	assert.Equal(t, int64(10), films[1].ID)
	assert.Equal(t, int64(100), films[2].ID)
}

func TestPopularCache_TopTruncates(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	ranked := []relation.Ranked{
		{Film: testFilm(1, "Первый"), LikeCount: 5},
		{Film: testFilm(2, "Второй"), LikeCount: 4},
		{Film: testFilm(3, "Третий"), LikeCount: 3},
	}
	require.NoError(t, cache.StoreTop(ctx, ranked))

	films, err := cache.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, films, 2)
	assert.Equal(t, int64(1), films[0].ID)
	assert.Equal(t, int64(2), films[1].ID)
}

func TestPopularCache_MissReturnsNil(t *testing.T) {
	cache, _ := newTestCache(t)

	films, err := cache.Top(context.Background(), 10)
	require.NoError(t, err)
	assert.Nil(t, films)
}

func TestPopularCache_InvalidateClearsBothKeys(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	ranked := []relation.Ranked{{Film: testFilm(1, "Первый"), LikeCount: 1}}
	require.NoError(t, cache.StoreTop(ctx, ranked))
	require.NoError(t, cache.Invalidate(ctx))

	assert.False(t, srv.Exists(keyPopularRanking))
	assert.False(t, srv.Exists(keyPopularInfo))

	films, err := cache.Top(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, films)
}

func TestPopularCache_TTLExpiry(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	ranked := []relation.Ranked{{Film: testFilm(1, "Первый"), LikeCount: 1}}
	require.NoError(t, cache.StoreTop(ctx, ranked))

	srv.FastForward(TTLPopularCache + time.Second)

	films, err := cache.Top(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, films)
}
