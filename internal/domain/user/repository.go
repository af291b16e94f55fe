package user

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACE
// Интерфейс определяет контракт для работы с хранилищем пользователей.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет операции хранилища пользователей.
type Repository interface {
	// Create сохраняет нового пользователя, назначая ему свежий id
	// (монотонно возрастающий, начиная с 1, никогда не переиспользуется).
	// Возвращает сохранённую копию с заполненным id.
	Create(ctx context.Context, u *User) (*User, error)

	// Update полностью заменяет запись с u.ID (без частичного слияния полей).
	// Возвращает shared.ErrNotFound, если такого id нет.
	Update(ctx context.Context, u *User) (*User, error)

	// GetByID возвращает пользователя по id.
	// Возвращает shared.ErrNotFound, если пользователь не найден.
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetAll возвращает всех пользователей в порядке вставки.
	// Порядок стабилен между чтениями.
	GetAll(ctx context.Context) ([]*User, error)

	// Exists проверяет существование пользователя, не материализуя запись.
	Exists(ctx context.Context, id int64) (bool, error)

	// Count возвращает количество пользователей.
	Count(ctx context.Context) (int, error)
}
