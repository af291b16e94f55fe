package postgres_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmhub/filmhub/internal/domain/shared"
	"github.com/filmhub/filmhub/internal/infrastructure/persistence/postgres"
)

func TestLikeRepository_AddIdempotent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// The conflict clause turns the duplicate insert into a zero-row
	// command without an error.
	mock.ExpectExec("INSERT INTO likes").
		WithArgs(int64(1), int64(10)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO likes").
		WithArgs(int64(1), int64(10)).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	repo := postgres.NewLikeRepository(mock)
	require.NoError(t, repo.Add(context.Background(), 1, 10))
	require.NoError(t, repo.Add(context.Background(), 1, 10))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_CountByFilm(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	repo := postgres.NewLikeRepository(mock)
	count, err := repo.CountByFilm(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFriendshipRepository_FriendsOfSorted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT friend_id FROM friendships").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"friend_id"}).
			AddRow(int64(2)).
			AddRow(int64(5)).
			AddRow(int64(9)))

	repo := postgres.NewFriendshipRepository(mock)
	ids, err := repo.FriendsOf(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 5, 9}, ids)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFriendshipRepository_RemoveAbsentIsNoOp(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM friendships").
		WithArgs(int64(1), int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := postgres.NewFriendshipRepository(mock)
	require.NoError(t, repo.Remove(context.Background(), 1, 2))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGenreRepository_GetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, name FROM genres").
		WithArgs(int64(100)).
		WillReturnError(pgx.ErrNoRows)

	repo := postgres.NewGenreRepository(mock)
	_, err = repo.GetByID(context.Background(), 100)
	assert.True(t, shared.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMpaRepository_GetAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, name FROM mpa_ratings").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "G").
			AddRow(int64(2), "PG"))

	repo := postgres.NewMpaRepository(mock)
	ratings, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, "PG", ratings[1].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}
