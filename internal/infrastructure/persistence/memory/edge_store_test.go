package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeStore_AddIsIdempotent(t *testing.T) {
	store := NewLikeStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 1, 10))
	require.NoError(t, store.Add(ctx, 1, 10))
	require.NoError(t, store.Add(ctx, 1, 10))

	count, err := store.CountByFilm(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLikeStore_RemoveAbsentIsNoOp(t *testing.T) {
	store := NewLikeStore()
	ctx := context.Background()

	require.NoError(t, store.Remove(ctx, 1, 10))

	count, err := store.CountByFilm(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestLikeStore_CountDistinguishesFilms(t *testing.T) {
	store := NewLikeStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 1, 10))
	require.NoError(t, store.Add(ctx, 1, 11))
	require.NoError(t, store.Add(ctx, 2, 10))

	count, err := store.CountByFilm(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = store.CountByFilm(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, store.Remove(ctx, 1, 10))
	count, err = store.CountByFilm(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFriendshipStore_EdgesAreDirected(t *testing.T) {
	store := NewFriendshipStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 1, 2))

	forward, err := store.Has(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, forward)

	reverse, err := store.Has(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, reverse)
}

func TestFriendshipStore_RemoveOnlyForward(t *testing.T) {
	store := NewFriendshipStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 1, 2))
	require.NoError(t, store.Add(ctx, 2, 1))

	require.NoError(t, store.Remove(ctx, 1, 2))

	forward, err := store.Has(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, forward)

	reverse, err := store.Has(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, reverse)
}

func TestFriendshipStore_FriendsOfSortedAscending(t *testing.T) {
	store := NewFriendshipStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, 1, 30))
	require.NoError(t, store.Add(ctx, 1, 5))
	require.NoError(t, store.Add(ctx, 1, 12))
	require.NoError(t, store.Add(ctx, 2, 99))

	friends, err := store.FriendsOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 12, 30}, friends)
}

func TestFriendshipStore_FriendsOfEmptyIsNotNil(t *testing.T) {
	store := NewFriendshipStore()

	friends, err := store.FriendsOf(context.Background(), 77)
	require.NoError(t, err)
	assert.NotNil(t, friends)
	assert.Empty(t, friends)
}

func TestCatalogStores_Seeded(t *testing.T) {
	ctx := context.Background()

	genres := NewGenreStore()
	all, err := genres.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, "Комедия", all[0].Name)
	assert.Equal(t, "Боевик", all[5].Name)

	mpa := NewMpaStore()
	ratings, err := mpa.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, ratings, 5)
	assert.Equal(t, "G", ratings[0].Name)
	assert.Equal(t, "NC-17", ratings[4].Name)

	ok, err := genres.Exists(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}
