// Package user содержит доменную модель пользователя FilmHub.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package user

import (
	"strings"
	"time"

	"github.com/filmhub/filmhub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Email представляет адрес электронной почты пользователя.
type Email string

// IsValid проверяет, что email непустой и содержит символ '@'.
func (e Email) IsValid() bool {
	s := strings.TrimSpace(string(e))
	return len(s) > 0 && strings.Contains(s, "@")
}

// String возвращает строковое представление.
func (e Email) String() string {
	return string(e)
}

// Login представляет логин пользователя.
type Login string

// IsValid проверяет, что логин непустой и не содержит пробельных символов.
func (l Login) IsValid() bool {
	s := string(l)
	return len(s) > 0 && !strings.ContainsAny(s, " \t\n\r")
}

// String возвращает строковое представление.
func (l Login) String() string {
	return string(l)
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// User представляет зарегистрированного пользователя.
// ID назначается хранилищем при создании и не меняется.
type User struct {
	ID       int64       `json:"id"`
	Email    string      `json:"email"`
	Login    string      `json:"login"`
	Name     string      `json:"name"`
	Birthday shared.Date `json:"birthday"`
}

// Validate проверяет пользователя по правилам валидации в фиксированном
// порядке: email, login, имя, дата рождения. Первое нарушенное правило
// определяет возвращаемую ошибку. Пустое имя не является ошибкой - оно
// заменяется логином как побочный эффект валидации.
func (u *User) Validate(now time.Time) error {
	if !Email(u.Email).IsValid() {
		return shared.InvalidInput("user", "email", "must be non-empty and contain '@'")
	}
	if !Login(u.Login).IsValid() {
		return shared.InvalidInput("user", "login", "must be non-empty and contain no whitespace")
	}
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
	if u.Birthday.After(shared.DateOf(now)) {
		return shared.InvalidInput("user", "birthday", "must not be in the future")
	}
	return nil
}
