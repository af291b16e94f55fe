package command

import (
	"context"
	"fmt"
	"time"

	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE FILM COMMAND
// Registers a new film. Genre and MPA references arrive as bare ids and are
// resolved against the catalog: unknown references are rejected, known ones
// are enriched with their canonical names. Duplicate genre references
// collapse to one, first occurrence wins.
// ══════════════════════════════════════════════════════════════════════════════

// CreateFilmCommand contains the data to register a film.
type CreateFilmCommand struct {
	// Name is the film title.
	Name string

	// Description is the film synopsis, at most 200 characters.
	Description string

	// ReleaseDate is the film's release date.
	ReleaseDate shared.Date

	// Duration is the running time in minutes.
	Duration int

	// Genres are genre references; only the ids are read.
	Genres []film.Genre

	// Mpa is the age-rating reference; only the id is read.
	Mpa film.Mpa
}

// CreateFilmResult contains the result of registering a film.
type CreateFilmResult struct {
	// Film is the stored film with its assigned identifier and resolved
	// catalog references.
	Film *film.Film

	// CreatedAt is when the film was registered.
	CreatedAt time.Time
}

// CreateFilmHandler handles the CreateFilmCommand.
type CreateFilmHandler struct {
	filmRepo  film.Repository
	genreRepo film.GenreRepository
	mpaRepo   film.MpaRepository
	cache     PopularityInvalidator
}

// NewCreateFilmHandler creates a new CreateFilmHandler. The cache may be nil
// when popularity caching is disabled.
func NewCreateFilmHandler(
	filmRepo film.Repository,
	genreRepo film.GenreRepository,
	mpaRepo film.MpaRepository,
	cache PopularityInvalidator,
) *CreateFilmHandler {
	return &CreateFilmHandler{
		filmRepo:  filmRepo,
		genreRepo: genreRepo,
		mpaRepo:   mpaRepo,
		cache:     cache,
	}
}

// Handle executes the create film command.
func (h *CreateFilmHandler) Handle(ctx context.Context, cmd CreateFilmCommand) (*CreateFilmResult, error) {
	f := &film.Film{
		Name:        cmd.Name,
		Description: cmd.Description,
		ReleaseDate: cmd.ReleaseDate,
		Duration:    cmd.Duration,
		Genres:      cmd.Genres,
		Mpa:         cmd.Mpa,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if err := resolveCatalogRefs(ctx, f, h.genreRepo, h.mpaRepo); err != nil {
		return nil, err
	}

	created, err := h.filmRepo.Create(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("create_film: failed to save: %w", err)
	}

	// A new film belongs in full rankings at like count zero; a warm cache
	// would keep serving a catalog that no longer exists.
	invalidatePopularity(ctx, h.cache)

	return &CreateFilmResult{
		Film:      created,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE FILM COMMAND
// Full replacement of every settable field of an existing film, including
// the genre set and the MPA reference.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateFilmCommand contains the full replacement state of a film.
type UpdateFilmCommand struct {
	// ID identifies the film to update.
	ID int64

	// Name is the new title.
	Name string

	// Description is the new synopsis.
	Description string

	// ReleaseDate is the new release date.
	ReleaseDate shared.Date

	// Duration is the new running time in minutes.
	Duration int

	// Genres are the new genre references; only the ids are read.
	Genres []film.Genre

	// Mpa is the new age-rating reference; only the id is read.
	Mpa film.Mpa
}

// Validate validates the command.
func (c UpdateFilmCommand) Validate() error {
	if c.ID <= 0 {
		return shared.InvalidInput("film", "id", "must be positive")
	}
	return nil
}

// UpdateFilmResult contains the result of updating a film.
type UpdateFilmResult struct {
	// Film is the film after the update.
	Film *film.Film
}

// UpdateFilmHandler handles the UpdateFilmCommand.
type UpdateFilmHandler struct {
	filmRepo  film.Repository
	genreRepo film.GenreRepository
	mpaRepo   film.MpaRepository
	cache     PopularityInvalidator
}

// NewUpdateFilmHandler creates a new UpdateFilmHandler. The cache may be nil
// when popularity caching is disabled.
func NewUpdateFilmHandler(
	filmRepo film.Repository,
	genreRepo film.GenreRepository,
	mpaRepo film.MpaRepository,
	cache PopularityInvalidator,
) *UpdateFilmHandler {
	return &UpdateFilmHandler{
		filmRepo:  filmRepo,
		genreRepo: genreRepo,
		mpaRepo:   mpaRepo,
		cache:     cache,
	}
}

// Handle executes the update film command.
func (h *UpdateFilmHandler) Handle(ctx context.Context, cmd UpdateFilmCommand) (*UpdateFilmResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	f := &film.Film{
		ID:          cmd.ID,
		Name:        cmd.Name,
		Description: cmd.Description,
		ReleaseDate: cmd.ReleaseDate,
		Duration:    cmd.Duration,
		Genres:      cmd.Genres,
		Mpa:         cmd.Mpa,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if err := resolveCatalogRefs(ctx, f, h.genreRepo, h.mpaRepo); err != nil {
		return nil, err
	}

	updated, err := h.filmRepo.Update(ctx, f)
	if err != nil {
		return nil, err
	}

	// Title changes must not survive in cached rankings.
	invalidatePopularity(ctx, h.cache)

	return &UpdateFilmResult{Film: updated}, nil
}

// resolveCatalogRefs replaces the film's genre and MPA references with their
// canonical catalog entries. Unknown references fail the whole operation.
func resolveCatalogRefs(
	ctx context.Context,
	f *film.Film,
	genreRepo film.GenreRepository,
	mpaRepo film.MpaRepository,
) error {
	mpa, err := mpaRepo.GetByID(ctx, f.Mpa.ID)
	if err != nil {
		return err
	}
	f.Mpa = *mpa

	seen := make(map[int64]bool, len(f.Genres))
	resolved := make([]film.Genre, 0, len(f.Genres))
	for _, ref := range f.Genres {
		if seen[ref.ID] {
			continue
		}
		seen[ref.ID] = true

		genre, err := genreRepo.GetByID(ctx, ref.ID)
		if err != nil {
			return err
		}
		resolved = append(resolved, *genre)
	}
	f.Genres = resolved
	return nil
}
