package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmhub/filmhub/internal/application/command"
	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/relation"
	"github.com/filmhub/filmhub/internal/domain/shared"
	"github.com/filmhub/filmhub/internal/domain/user"
	"github.com/filmhub/filmhub/internal/infrastructure/persistence/memory"
)

type fixture struct {
	users  *memory.UserStore
	films  *memory.FilmStore
	ledger *relation.Ledger
	ranker *relation.Ranker
}

func newFixture() *fixture {
	users := memory.NewUserStore()
	films := memory.NewFilmStore()
	ledger := relation.NewLedger(users, films, memory.NewLikeStore(), memory.NewFriendshipStore())
	return &fixture{
		users:  users,
		films:  films,
		ledger: ledger,
		ranker: relation.NewRanker(films, ledger),
	}
}

func (f *fixture) addUser(t *testing.T, login string) *user.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), &user.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: shared.NewDate(1990, time.January, 1),
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) addFilm(t *testing.T, name string) *film.Film {
	t.Helper()
	created, err := f.films.Create(context.Background(), &film.Film{
		Name:        name,
		Description: "описание",
		ReleaseDate: shared.NewDate(2000, time.May, 1),
		Duration:    90,
		Mpa:         film.Mpa{ID: 1, Name: "G"},
	})
	require.NoError(t, err)
	return created
}

func (f *fixture) like(t *testing.T, filmID, userID int64) {
	t.Helper()
	require.NoError(t, f.ledger.AddLike(context.Background(), filmID, userID))
}

func (f *fixture) befriend(t *testing.T, userID, friendID int64) {
	t.Helper()
	require.NoError(t, f.ledger.AddFriendship(context.Background(), userID, friendID))
}

func TestGetPopularFilms_OrderAndTieBreak(t *testing.T) {
	f := newFixture()
	u1 := f.addUser(t, "u1")
	u2 := f.addUser(t, "u2")
	u3 := f.addUser(t, "u3")

	f1 := f.addFilm(t, "Первый")
	f2 := f.addFilm(t, "Второй")
	f3 := f.addFilm(t, "Третий")

	// f2 leads with three likes, f1 and f3 tie at one apiece.
	f.like(t, f2.ID, u1.ID)
	f.like(t, f2.ID, u2.ID)
	f.like(t, f2.ID, u3.ID)
	f.like(t, f1.ID, u1.ID)
	f.like(t, f3.ID, u2.ID)

	h := NewGetPopularFilmsHandler(f.ranker, nil)
	result, err := h.Handle(context.Background(), GetPopularFilmsQuery{Count: 10})
	require.NoError(t, err)
	require.Len(t, result.Films, 3)
	assert.Equal(t, f2.ID, result.Films[0].ID)
	assert.Equal(t, f1.ID, result.Films[1].ID)
	assert.Equal(t, f3.ID, result.Films[2].ID)
}

func TestGetPopularFilms_CountSemantics(t *testing.T) {
	f := newFixture()
	f.addFilm(t, "Первый")
	f.addFilm(t, "Второй")

	h := NewGetPopularFilmsHandler(f.ranker, nil)

	result, err := h.Handle(context.Background(), GetPopularFilmsQuery{Count: 0})
	require.NoError(t, err)
	assert.Empty(t, result.Films)

	result, err = h.Handle(context.Background(), GetPopularFilmsQuery{Count: 100})
	require.NoError(t, err)
	assert.Len(t, result.Films, 2)

	_, err = h.Handle(context.Background(), GetPopularFilmsQuery{Count: -1})
	assert.True(t, shared.IsInvalidInput(err))
}

// stubCache serves a fixed ranking and records stores.
type stubCache struct {
	top    []*film.Film
	stored []relation.Ranked
}

func (c *stubCache) Top(ctx context.Context, count int) ([]*film.Film, error) {
	if c.top == nil {
		return nil, nil
	}
	if count > len(c.top) {
		count = len(c.top)
	}
	return c.top[:count], nil
}

func (c *stubCache) StoreTop(ctx context.Context, ranked []relation.Ranked) error {
	c.stored = ranked
	c.top = make([]*film.Film, len(ranked))
	for i, r := range ranked {
		c.top[i] = r.Film
	}
	return nil
}

func (c *stubCache) Invalidate(ctx context.Context) error {
	c.top = nil
	c.stored = nil
	return nil
}

func TestGetPopularFilms_CacheHitSkipsRanking(t *testing.T) {
	f := newFixture()
	cached := &film.Film{ID: 42, Name: "Из кэша"}
	cache := &stubCache{top: []*film.Film{cached}}

	h := NewGetPopularFilmsHandler(f.ranker, cache)
	result, err := h.Handle(context.Background(), GetPopularFilmsQuery{Count: 5})
	require.NoError(t, err)
	require.Len(t, result.Films, 1)
	assert.Equal(t, int64(42), result.Films[0].ID)
	assert.True(t, result.FromCache)
}

func TestGetPopularFilms_CacheMissRebuildsAndStores(t *testing.T) {
	f := newFixture()
	u := f.addUser(t, "u1")
	fl := f.addFilm(t, "Первый")
	f.like(t, fl.ID, u.ID)

	cache := &stubCache{}
	h := NewGetPopularFilmsHandler(f.ranker, cache)

	result, err := h.Handle(context.Background(), GetPopularFilmsQuery{Count: 5})
	require.NoError(t, err)
	require.Len(t, result.Films, 1)
	assert.False(t, result.FromCache)

	require.Len(t, cache.stored, 1)
	assert.Equal(t, fl.ID, cache.stored[0].Film.ID)
	assert.Equal(t, 1, cache.stored[0].LikeCount)
}

func TestGetPopularFilms_SeesFilmsCreatedAfterCacheWarmup(t *testing.T) {
	f := newFixture()
	cache := &stubCache{}

	create := command.NewCreateFilmHandler(f.films, memory.NewGenreStore(), memory.NewMpaStore(), cache)
	popular := NewGetPopularFilmsHandler(f.ranker, cache)
	ctx := context.Background()

	newFilm := func(name string) command.CreateFilmCommand {
		return command.CreateFilmCommand{
			Name:        name,
			Description: "описание",
			ReleaseDate: shared.NewDate(2000, time.May, 1),
			Duration:    90,
			Mpa:         film.Mpa{ID: 1},
		}
	}

	_, err := create.Handle(ctx, newFilm("Первый"))
	require.NoError(t, err)

	result, err := popular.Handle(ctx, GetPopularFilmsQuery{Count: 10})
	require.NoError(t, err)
	require.Len(t, result.Films, 1)

	warm, err := popular.Handle(ctx, GetPopularFilmsQuery{Count: 10})
	require.NoError(t, err)
	assert.True(t, warm.FromCache)

	// Второй фильм должен попасть в рейтинг, даже если кэш уже прогрет.
	_, err = create.Handle(ctx, newFilm("Второй"))
	require.NoError(t, err)

	result, err = popular.Handle(ctx, GetPopularFilmsQuery{Count: 10})
	require.NoError(t, err)
	require.Len(t, result.Films, 2)
	assert.False(t, result.FromCache)
}

func TestGetFriends_ReturnsFullRecordsSorted(t *testing.T) {
	f := newFixture()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	carol := f.addUser(t, "carol")

	f.befriend(t, alice.ID, carol.ID)
	f.befriend(t, alice.ID, bob.ID)

	h := NewGetFriendsHandler(f.ledger, f.users)
	result, err := h.Handle(context.Background(), GetFriendsQuery{UserID: alice.ID})
	require.NoError(t, err)
	require.Len(t, result.Friends, 2)
	assert.Equal(t, "bob", result.Friends[0].Login)
	assert.Equal(t, "carol", result.Friends[1].Login)
}

func TestGetFriends_DirectedOnly(t *testing.T) {
	f := newFixture()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	f.befriend(t, alice.ID, bob.ID)

	h := NewGetFriendsHandler(f.ledger, f.users)

	result, err := h.Handle(context.Background(), GetFriendsQuery{UserID: bob.ID})
	require.NoError(t, err)
	assert.Empty(t, result.Friends)
}

func TestGetFriends_UnknownUser(t *testing.T) {
	f := newFixture()

	h := NewGetFriendsHandler(f.ledger, f.users)
	_, err := h.Handle(context.Background(), GetFriendsQuery{UserID: 5})
	assert.True(t, shared.IsNotFound(err))
}

func TestGetCommonFriends_SymmetricIntersection(t *testing.T) {
	f := newFixture()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	carol := f.addUser(t, "carol")
	dave := f.addUser(t, "dave")

	f.befriend(t, alice.ID, carol.ID)
	f.befriend(t, alice.ID, dave.ID)
	f.befriend(t, bob.ID, carol.ID)

	h := NewGetCommonFriendsHandler(f.ledger, f.users)

	result, err := h.Handle(context.Background(), GetCommonFriendsQuery{UserID: alice.ID, OtherID: bob.ID})
	require.NoError(t, err)
	require.Len(t, result.Friends, 1)
	assert.Equal(t, "carol", result.Friends[0].Login)

	reversed, err := h.Handle(context.Background(), GetCommonFriendsQuery{UserID: bob.ID, OtherID: alice.ID})
	require.NoError(t, err)
	require.Len(t, reversed.Friends, 1)
	assert.Equal(t, "carol", reversed.Friends[0].Login)
}

func TestGetCommonFriends_NoOverlapIsEmpty(t *testing.T) {
	f := newFixture()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	h := NewGetCommonFriendsHandler(f.ledger, f.users)
	result, err := h.Handle(context.Background(), GetCommonFriendsQuery{UserID: alice.ID, OtherID: bob.ID})
	require.NoError(t, err)
	assert.NotNil(t, result.Friends)
	assert.Empty(t, result.Friends)
}

func TestCatalogHandler_Lookups(t *testing.T) {
	h := NewCatalogHandler(memory.NewGenreStore(), memory.NewMpaStore())
	ctx := context.Background()

	genres, err := h.ListGenres(ctx)
	require.NoError(t, err)
	assert.Len(t, genres.Genres, 6)

	genre, err := h.GetGenre(ctx, GetGenreQuery{ID: 2})
	require.NoError(t, err)
	assert.Equal(t, "Драма", genre.Genre.Name)

	_, err = h.GetGenre(ctx, GetGenreQuery{ID: 100})
	assert.True(t, shared.IsNotFound(err))

	ratings, err := h.ListMpa(ctx)
	require.NoError(t, err)
	assert.Len(t, ratings.Ratings, 5)

	mpa, err := h.GetMpa(ctx, GetMpaQuery{ID: 5})
	require.NoError(t, err)
	assert.Equal(t, "NC-17", mpa.Mpa.Name)
}
