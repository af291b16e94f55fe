package relation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/relation"
	"github.com/filmhub/filmhub/internal/domain/shared"
	"github.com/filmhub/filmhub/internal/domain/user"
	"github.com/filmhub/filmhub/internal/infrastructure/persistence/memory"
)

type world struct {
	users  *memory.UserStore
	films  *memory.FilmStore
	ledger *relation.Ledger
	ranker *relation.Ranker
}

func newWorld() *world {
	users := memory.NewUserStore()
	films := memory.NewFilmStore()
	ledger := relation.NewLedger(users, films, memory.NewLikeStore(), memory.NewFriendshipStore())
	return &world{
		users:  users,
		films:  films,
		ledger: ledger,
		ranker: relation.NewRanker(films, ledger),
	}
}

func (w *world) user(t *testing.T, login string) int64 {
	t.Helper()
	u, err := w.users.Create(context.Background(), &user.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: shared.NewDate(1990, time.January, 1),
	})
	require.NoError(t, err)
	return u.ID
}

func (w *world) film(t *testing.T, name string) int64 {
	t.Helper()
	f, err := w.films.Create(context.Background(), &film.Film{
		Name:        name,
		Description: "описание",
		ReleaseDate: shared.NewDate(2000, time.May, 1),
		Duration:    90,
		Mpa:         film.Mpa{ID: 1},
	})
	require.NoError(t, err)
	return f.ID
}

func TestLedger_AddLikeIdempotent(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	u := w.user(t, "alice")
	f := w.film(t, "Матрица")

	require.NoError(t, w.ledger.AddLike(ctx, f, u))
	require.NoError(t, w.ledger.AddLike(ctx, f, u))

	count, err := w.ledger.LikeCount(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLedger_AddLikeUnknownEndpoints(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	u := w.user(t, "alice")
	f := w.film(t, "Матрица")

	assert.True(t, shared.IsNotFound(w.ledger.AddLike(ctx, 999, u)))
	assert.True(t, shared.IsNotFound(w.ledger.AddLike(ctx, f, 999)))
}

func TestLedger_RemoveLikeRequiresEndpoints(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	u := w.user(t, "alice")
	f := w.film(t, "Матрица")

	// Absent edge between existing endpoints is fine.
	require.NoError(t, w.ledger.RemoveLike(ctx, f, u))

	// Unknown endpoints are not.
	assert.True(t, shared.IsNotFound(w.ledger.RemoveLike(ctx, f, 999)))
	assert.True(t, shared.IsNotFound(w.ledger.RemoveLike(ctx, 999, u)))
}

func TestLedger_FriendshipIsDirected(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	fet := w.user(t, "fet")
	bob := w.user(t, "bob")

	require.NoError(t, w.ledger.AddFriendship(ctx, fet, bob))

	fetFriends, err := w.ledger.FriendsOf(ctx, fet)
	require.NoError(t, err)
	assert.Equal(t, []int64{bob}, fetFriends)

	bobFriends, err := w.ledger.FriendsOf(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobFriends)

	// Reciprocation creates the second edge.
	require.NoError(t, w.ledger.AddFriendship(ctx, bob, fet))
	bobFriends, err = w.ledger.FriendsOf(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, []int64{fet}, bobFriends)
}

func TestLedger_SameIDBeatsExistence(t *testing.T) {
	w := newWorld()
	ctx := context.Background()

	// Neither user exists, yet the same-id rule fires first.
	err := w.ledger.AddFriendship(ctx, 7, 7)
	assert.True(t, shared.IsSameID(err))

	err = w.ledger.RemoveFriendship(ctx, 7, 7)
	assert.True(t, shared.IsSameID(err))
}

func TestLedger_RemoveFriendshipOnlyForward(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	alice := w.user(t, "alice")
	bob := w.user(t, "bob")

	require.NoError(t, w.ledger.AddFriendship(ctx, alice, bob))
	require.NoError(t, w.ledger.AddFriendship(ctx, bob, alice))
	require.NoError(t, w.ledger.RemoveFriendship(ctx, alice, bob))

	aliceFriends, err := w.ledger.FriendsOf(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, aliceFriends)

	bobFriends, err := w.ledger.FriendsOf(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, []int64{alice}, bobFriends)
}

func TestLedger_CommonFriendsSymmetric(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	alice := w.user(t, "alice")
	bob := w.user(t, "bob")
	carol := w.user(t, "carol")
	dave := w.user(t, "dave")

	require.NoError(t, w.ledger.AddFriendship(ctx, alice, carol))
	require.NoError(t, w.ledger.AddFriendship(ctx, alice, dave))
	require.NoError(t, w.ledger.AddFriendship(ctx, bob, carol))

	common, err := w.ledger.CommonFriends(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, []int64{carol}, common)

	reversed, err := w.ledger.CommonFriends(ctx, bob, alice)
	require.NoError(t, err)
	assert.Equal(t, common, reversed)
}

func TestLedger_CommonFriendsWithSelfQueryAllowed(t *testing.T) {
	// Common friends of a user with themselves is simply their friend set:
	// the same-id rule applies only to edge mutation.
	w := newWorld()
	ctx := context.Background()
	alice := w.user(t, "alice")
	bob := w.user(t, "bob")

	require.NoError(t, w.ledger.AddFriendship(ctx, alice, bob))

	common, err := w.ledger.CommonFriends(ctx, alice, alice)
	require.NoError(t, err)
	assert.Equal(t, []int64{bob}, common)
}

func TestLedger_FriendsOfUnknownUser(t *testing.T) {
	w := newWorld()
	_, err := w.ledger.FriendsOf(context.Background(), 404)
	assert.True(t, shared.IsNotFound(err))
}
