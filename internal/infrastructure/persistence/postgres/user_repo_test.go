package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmhub/filmhub/internal/domain/shared"
	"github.com/filmhub/filmhub/internal/domain/user"
	"github.com/filmhub/filmhub/internal/infrastructure/persistence/postgres"
)

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	birthday := time.Date(1946, time.August, 20, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("dolore@mail.ru", "dolore", "Nick Name", birthday).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	repo := postgres.NewUserRepository(mock)
	created, err := repo.Create(context.Background(), &user.User{
		Email:    "dolore@mail.ru",
		Login:    "dolore",
		Name:     "Nick Name",
		Birthday: shared.DateOf(birthday),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateUnknownID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs(int64(99), "a@b.c", "ghost", "ghost", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := postgres.NewUserRepository(mock)
	_, err = repo.Update(context.Background(), &user.User{
		ID:       99,
		Email:    "a@b.c",
		Login:    "ghost",
		Name:     "ghost",
		Birthday: shared.NewDate(1990, time.January, 1),
	})
	assert.True(t, shared.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, email, login, name, birthday").
		WithArgs(int64(5)).
		WillReturnError(pgx.ErrNoRows)

	repo := postgres.NewUserRepository(mock)
	_, err = repo.GetByID(context.Background(), 5)
	assert.True(t, shared.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	b1 := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	b2 := time.Date(1985, time.June, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, email, login, name, birthday").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "login", "name", "birthday"}).
			AddRow(int64(1), "a@example.com", "alice", "Alice", b1).
			AddRow(int64(2), "b@example.com", "bob", "Bob", b2))

	repo := postgres.NewUserRepository(mock)
	users, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Login)
	assert.Equal(t, shared.DateOf(b2), users[1].Birthday)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Exists(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	repo := postgres.NewUserRepository(mock)
	ok, err := repo.Exists(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}
