package film

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Интерфейсы определяют контракт для работы с хранилищами фильмов и
// справочников. Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет операции хранилища фильмов.
type Repository interface {
	// Create сохраняет новый фильм, назначая ему свежий id
	// (монотонно возрастающий, начиная с 1, никогда не переиспользуется).
	// Возвращает сохранённую копию с заполненным id.
	Create(ctx context.Context, f *Film) (*Film, error)

	// Update полностью заменяет запись с f.ID (включая набор жанров).
	// Возвращает shared.ErrNotFound, если такого id нет.
	Update(ctx context.Context, f *Film) (*Film, error)

	// GetByID возвращает фильм по id.
	// Возвращает shared.ErrNotFound, если фильм не найден.
	GetByID(ctx context.Context, id int64) (*Film, error)

	// GetAll возвращает все фильмы в порядке вставки.
	// Порядок стабилен между чтениями.
	GetAll(ctx context.Context) ([]*Film, error)

	// Exists проверяет существование фильма, не материализуя запись.
	Exists(ctx context.Context, id int64) (bool, error)

	// Count возвращает количество фильмов.
	Count(ctx context.Context) (int, error)
}

// GenreRepository определяет операции справочника жанров (только чтение).
type GenreRepository interface {
	// GetByID возвращает жанр по id.
	// Возвращает shared.ErrNotFound, если жанр не найден.
	GetByID(ctx context.Context, id int64) (*Genre, error)

	// GetAll возвращает все жанры в порядке возрастания id.
	GetAll(ctx context.Context) ([]*Genre, error)

	// Exists проверяет существование жанра.
	Exists(ctx context.Context, id int64) (bool, error)
}

// MpaRepository определяет операции справочника рейтингов MPA (только чтение).
type MpaRepository interface {
	// GetByID возвращает рейтинг по id.
	// Возвращает shared.ErrNotFound, если рейтинг не найден.
	GetByID(ctx context.Context, id int64) (*Mpa, error)

	// GetAll возвращает все рейтинги в порядке возрастания id.
	GetAll(ctx context.Context) ([]*Mpa, error)

	// Exists проверяет существование рейтинга.
	Exists(ctx context.Context, id int64) (bool, error)
}
