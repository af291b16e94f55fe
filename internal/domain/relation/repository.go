package relation

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Интерфейсы определяют контракт для долговечных наборов рёбер.
// Реализации находятся в infrastructure/persistence. Для каждого набора
// требуются проверка принадлежности, вставка, удаление и подсчёт мощности.
// ══════════════════════════════════════════════════════════════════════════════

// LikeRepository определяет операции над набором рёбер лайков.
type LikeRepository interface {
	// Add вставляет ребро (filmID, userID). Повторная вставка того же
	// ребра не является ошибкой и не меняет набор (идемпотентность).
	Add(ctx context.Context, filmID, userID int64) error

	// Remove удаляет ребро, если оно есть. Отсутствующее ребро - не ошибка.
	Remove(ctx context.Context, filmID, userID int64) error

	// Has проверяет принадлежность ребра набору.
	Has(ctx context.Context, filmID, userID int64) (bool, error)

	// CountByFilm возвращает количество лайков фильма. Фильм без лайков
	// имеет счёт 0 - это не "отсутствующее" значение, а обычный ноль.
	CountByFilm(ctx context.Context, filmID int64) (int, error)
}

// FriendshipRepository определяет операции над набором направленных рёбер
// дружбы.
type FriendshipRepository interface {
	// Add вставляет направленное ребро userID -> friendID с approved=false,
	// если его ещё нет (идемпотентность). Обратное ребро не затрагивается.
	Add(ctx context.Context, userID, friendID int64) error

	// Remove удаляет только ребро userID -> friendID.
	// Отсутствующее ребро - не ошибка.
	Remove(ctx context.Context, userID, friendID int64) error

	// Has проверяет принадлежность направленного ребра набору.
	Has(ctx context.Context, userID, friendID int64) (bool, error)

	// FriendsOf возвращает все friendID, для которых существует ребро
	// userID -> friendID, независимо от approved. Результат отсортирован
	// по возрастанию id и никогда не nil.
	FriendsOf(ctx context.Context, userID int64) ([]int64, error)
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTITY INDEXES
// Узкие интерфейсы для проверок существования сущностей. Реализуются
// хранилищами пользователей и фильмов; реестру не нужны полные записи.
// ══════════════════════════════════════════════════════════════════════════════

// UserIndex проверяет существование пользователя.
type UserIndex interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// FilmIndex проверяет существование фильма.
type FilmIndex interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
