package film

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/filmhub/filmhub/internal/domain/shared"
)

func validFilm() *Film {
	return &Film{
		Name:        "nisi eiusmod",
		Description: "adipisicing",
		ReleaseDate: shared.NewDate(1967, time.March, 25),
		Duration:    100,
	}
}

func TestFilmValidate_Valid(t *testing.T) {
	assert.NoError(t, validFilm().Validate())
}

func TestFilmValidate_Name(t *testing.T) {
	f := validFilm()
	f.Name = ""
	assert.True(t, shared.IsInvalidInput(f.Validate()))
}

func TestFilmValidate_DescriptionLength(t *testing.T) {
	f := validFilm()

	f.Description = strings.Repeat("a", 200)
	assert.NoError(t, f.Validate(), "exactly 200 characters is allowed")

	f.Description = strings.Repeat("a", 201)
	assert.True(t, shared.IsInvalidInput(f.Validate()))

	f.Description = ""
	assert.True(t, shared.IsInvalidInput(f.Validate()), "empty description rejected")
}

func TestFilmValidate_DescriptionCountsRunes(t *testing.T) {
	// 200 Cyrillic characters exceed 200 bytes but are still within the
	// limit.
	f := validFilm()
	f.Description = strings.Repeat("ы", 200)
	assert.NoError(t, f.Validate())
}

func TestFilmValidate_ReleaseDateBoundary(t *testing.T) {
	f := validFilm()

	f.ReleaseDate = shared.NewDate(1895, time.December, 28)
	assert.NoError(t, f.Validate(), "cinema's birthday itself is allowed")

	f.ReleaseDate = shared.NewDate(1895, time.December, 27)
	assert.True(t, shared.IsInvalidInput(f.Validate()))
}

func TestFilmValidate_Duration(t *testing.T) {
	f := validFilm()

	f.Duration = 0
	assert.True(t, shared.IsInvalidInput(f.Validate()))

	f.Duration = -10
	assert.True(t, shared.IsInvalidInput(f.Validate()))

	f.Duration = 1
	assert.NoError(t, f.Validate())
}

func TestFilmValidate_Order(t *testing.T) {
	f := &Film{
		Name:        "",
		Description: strings.Repeat("a", 500),
		ReleaseDate: shared.NewDate(1800, time.January, 1),
		Duration:    -1,
	}
	assert.ErrorContains(t, f.Validate(), "name")
}
