// Package film содержит доменную модель фильма и справочников каталога
// (жанры и возрастные рейтинги MPA). Здесь нет внешних зависимостей.
package film

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/filmhub/filmhub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONSTANTS
// ══════════════════════════════════════════════════════════════════════════════

// MinReleaseDate - дата первого публичного кинопоказа (28 декабря 1895).
// Фильмы с более ранней датой выпуска не существуют и отклоняются валидацией.
var MinReleaseDate = shared.NewDate(1895, time.December, 28)

// MaxDescriptionLen - максимальная длина описания фильма.
const MaxDescriptionLen = 200

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG ENTITIES
// Неизменяемые справочные сущности. Заполняются миграциями (postgres) или
// конструктором хранилища (memory); ядру нужны только проверка существования
// и перечисление.
// ══════════════════════════════════════════════════════════════════════════════

// Genre представляет жанр фильма.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Mpa представляет возрастной рейтинг Motion Picture Association.
type Mpa struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// ══════════════════════════════════════════════════════════════════════════════
// FILM ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Film представляет фильм каталога.
// ID назначается хранилищем при создании. Genres может быть пустым,
// Mpa обязателен. Duration - продолжительность в минутах.
type Film struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ReleaseDate shared.Date `json:"releaseDate"`
	Duration    int         `json:"duration"`
	Genres      []Genre     `json:"genres"`
	Mpa         Mpa         `json:"mpa"`
}

// Validate проверяет фильм по правилам валидации в фиксированном порядке:
// название, описание, дата выпуска, продолжительность. Первое нарушенное
// правило определяет возвращаемую ошибку. Ссылки на жанры и рейтинг
// проверяются на уровне сервиса, где доступны справочники.
func (f *Film) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return shared.InvalidInput("film", "name", "must not be empty")
	}
	if n := utf8.RuneCountInString(f.Description); n < 1 || n > MaxDescriptionLen {
		return shared.InvalidInput("film", "description", "length must be between 1 and 200")
	}
	if f.ReleaseDate.Before(MinReleaseDate) {
		return shared.InvalidInput("film", "releaseDate", "must not precede 1895-12-28")
	}
	if f.Duration <= 0 {
		return shared.InvalidInput("film", "duration", "must be a positive number of minutes")
	}
	return nil
}
