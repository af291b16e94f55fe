package relation

import (
	"context"

	"github.com/filmhub/filmhub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RELATIONSHIP LEDGER
// Реестр владеет обоими наборами рёбер и обеспечивает их инварианты:
// уникальность, идемпотентность добавления и удаления, запрет дружбы с
// самим собой. Проверки существования сущностей выполняются здесь повторно,
// даже если вызывающий слой уже проверил, - защита в глубину: входной
// валидации выше по стеку доверять нельзя.
// ══════════════════════════════════════════════════════════════════════════════

// Ledger управляет рёбрами лайков и дружбы.
type Ledger struct {
	users   UserIndex
	films   FilmIndex
	likes   LikeRepository
	friends FriendshipRepository
}

// NewLedger создаёт новый реестр связей.
func NewLedger(users UserIndex, films FilmIndex, likes LikeRepository, friends FriendshipRepository) *Ledger {
	return &Ledger{
		users:   users,
		films:   films,
		likes:   likes,
		friends: friends,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Likes
// ─────────────────────────────────────────────────────────────────────────────

// AddLike вставляет ребро лайка (filmID, userID). Возвращает
// shared.ErrNotFound, если фильм или пользователь не существуют.
// Повторный вызов с теми же аргументами не меняет набор.
func (l *Ledger) AddLike(ctx context.Context, filmID, userID int64) error {
	if err := l.requireFilm(ctx, filmID); err != nil {
		return err
	}
	if err := l.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := l.likes.Add(ctx, filmID, userID); err != nil {
		return shared.WrapError("relation", "AddLike", err, "failed to add like", err)
	}
	return nil
}

// RemoveLike удаляет ребро лайка, если оно есть. Отсутствующее ребро -
// не ошибка; несуществующие фильм или пользователь - ошибка.
func (l *Ledger) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if err := l.requireFilm(ctx, filmID); err != nil {
		return err
	}
	if err := l.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := l.likes.Remove(ctx, filmID, userID); err != nil {
		return shared.WrapError("relation", "RemoveLike", err, "failed to remove like", err)
	}
	return nil
}

// LikeCount возвращает количество лайков фильма. Ноль для фильма без
// лайков - обычное значение, а не признак отсутствия.
func (l *Ledger) LikeCount(ctx context.Context, filmID int64) (int, error) {
	count, err := l.likes.CountByFilm(ctx, filmID)
	if err != nil {
		return 0, shared.WrapError("relation", "LikeCount", err, "failed to count likes", err)
	}
	return count, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Friendships
// ─────────────────────────────────────────────────────────────────────────────

// AddFriendship вставляет направленное ребро userID -> friendID с
// approved=false. Возвращает shared.ErrSameID при userID == friendID
// (проверяется до существования: дружба с собой отклоняется даже для
// несуществующего пользователя) и shared.ErrNotFound, если один из
// пользователей не существует. Повторный вызов не меняет набор.
func (l *Ledger) AddFriendship(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return shared.NewDomainError("relation", "AddFriendship", shared.ErrSameID,
			"user cannot befriend themselves")
	}
	if err := l.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := l.requireUser(ctx, friendID); err != nil {
		return err
	}
	if err := l.friends.Add(ctx, userID, friendID); err != nil {
		return shared.WrapError("relation", "AddFriendship", err, "failed to add friendship", err)
	}
	return nil
}

// RemoveFriendship удаляет только ребро userID -> friendID; обратное ребро
// не затрагивается. Отсутствующее ребро - не ошибка.
func (l *Ledger) RemoveFriendship(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return shared.NewDomainError("relation", "RemoveFriendship", shared.ErrSameID,
			"user cannot unfriend themselves")
	}
	if err := l.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := l.requireUser(ctx, friendID); err != nil {
		return err
	}
	if err := l.friends.Remove(ctx, userID, friendID); err != nil {
		return shared.WrapError("relation", "RemoveFriendship", err, "failed to remove friendship", err)
	}
	return nil
}

// AreFriends сообщает, есть ли направленное ребро userID -> friendID.
// Обратное ребро не учитывается.
func (l *Ledger) AreFriends(ctx context.Context, userID, friendID int64) (bool, error) {
	ok, err := l.friends.Has(ctx, userID, friendID)
	if err != nil {
		return false, shared.WrapError("relation", "AreFriends", err, "failed to check friendship", err)
	}
	return ok, nil
}

// FriendsOf возвращает id всех друзей пользователя (все friendID, для
// которых есть ребро userID -> friendID), отсортированные по возрастанию.
// Пустой результат - пустой срез, не nil и не ошибка.
func (l *Ledger) FriendsOf(ctx context.Context, userID int64) ([]int64, error) {
	if err := l.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := l.friends.FriendsOf(ctx, userID)
	if err != nil {
		return nil, shared.WrapError("relation", "FriendsOf", err, "failed to list friends", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// CommonFriends возвращает пересечение множеств друзей двух пользователей,
// отсортированное по возрастанию id. Результат симметричен относительно
// порядка аргументов, хотя FriendsOf направленный. Отсутствие пересечения -
// пустой срез, не ошибка.
func (l *Ledger) CommonFriends(ctx context.Context, userID, otherID int64) ([]int64, error) {
	if err := l.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := l.requireUser(ctx, otherID); err != nil {
		return nil, err
	}

	first, err := l.friends.FriendsOf(ctx, userID)
	if err != nil {
		return nil, shared.WrapError("relation", "CommonFriends", err, "failed to list friends", err)
	}
	second, err := l.friends.FriendsOf(ctx, otherID)
	if err != nil {
		return nil, shared.WrapError("relation", "CommonFriends", err, "failed to list friends", err)
	}

	inSecond := make(map[int64]struct{}, len(second))
	for _, id := range second {
		inSecond[id] = struct{}{}
	}

	common := make([]int64, 0)
	for _, id := range first {
		if _, ok := inSecond[id]; ok {
			common = append(common, id)
		}
	}
	return common, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Existence checks
// ─────────────────────────────────────────────────────────────────────────────

func (l *Ledger) requireUser(ctx context.Context, id int64) error {
	ok, err := l.users.Exists(ctx, id)
	if err != nil {
		return shared.WrapError("relation", "Exists", err, "failed to check user", err)
	}
	if !ok {
		return shared.NotFound("user", id)
	}
	return nil
}

func (l *Ledger) requireFilm(ctx context.Context, id int64) error {
	ok, err := l.films.Exists(ctx, id)
	if err != nil {
		return shared.WrapError("relation", "Exists", err, "failed to check film", err)
	}
	if !ok {
		return shared.NotFound("film", id)
	}
	return nil
}
