// Package relation содержит реестр связей FilmHub: рёбра лайков
// (фильм-пользователь) и дружбы (пользователь-пользователь), а также
// движок ранжирования, выводящий популярность фильмов из состояния рёбер.
// Реестр - единственный владелец наборов рёбер: сущности User и Film
// никогда не несут свои рёбра как изменяемое состояние.
package relation

// ══════════════════════════════════════════════════════════════════════════════
// EDGE TYPES
// ══════════════════════════════════════════════════════════════════════════════

// Like представляет ребро лайка. Пара (FilmID, UserID) уникальна:
// повторное добавление того же лайка не создаёт второго ребра.
type Like struct {
	FilmID int64 `json:"film_id"`
	UserID int64 `json:"user_id"`
}

// Friendship представляет направленное ребро дружбы UserID -> FriendID.
// Обратное направление - отдельное независимое ребро. Approved по умолчанию
// false; операции ядра флаг не переключают (состояния: absent -> pending ->
// removed).
type Friendship struct {
	UserID   int64 `json:"user_id"`
	FriendID int64 `json:"friend_id"`
	Approved bool  `json:"approved"`
}
