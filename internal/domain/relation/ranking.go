package relation

import (
	"context"
	"sort"

	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RANKING ENGINE
// Выводит топ-N фильмов по мощности набора лайков, только из состояния
// реестра. Порядок детерминирован: убывание числа лайков, при равенстве -
// возрастание id фильма. Порядок итерации hash-контейнеров никогда не
// используется для ранжирования.
// ══════════════════════════════════════════════════════════════════════════════

// FilmLister перечисляет фильмы каталога.
type FilmLister interface {
	GetAll(ctx context.Context) ([]*film.Film, error)
}

// Ranked связывает фильм с его счётом лайков на момент ранжирования.
type Ranked struct {
	Film      *film.Film
	LikeCount int
}

// Ranker вычисляет рейтинг популярности фильмов.
type Ranker struct {
	films  FilmLister
	ledger *Ledger
}

// NewRanker создаёт новый движок ранжирования.
func NewRanker(films FilmLister, ledger *Ledger) *Ranker {
	return &Ranker{
		films:  films,
		ledger: ledger,
	}
}

// TopFilms возвращает count самых популярных фильмов (меньше, если фильмов
// в каталоге меньше). count == 0 - корректный запрос с пустым результатом,
// а не "использовать значение по умолчанию"; отрицательный count - ошибка
// валидации. Значение по умолчанию применяет транспортный слой, и только
// когда параметр вовсе не передан.
func (r *Ranker) TopFilms(ctx context.Context, count int) ([]*film.Film, error) {
	if count < 0 {
		return nil, shared.InvalidInput("film", "count", "must not be negative")
	}
	ranked, err := r.RankAll(ctx)
	if err != nil {
		return nil, err
	}
	if count > len(ranked) {
		count = len(ranked)
	}

	top := make([]*film.Film, 0, count)
	for _, entry := range ranked[:count] {
		top = append(top, entry.Film)
	}
	return top, nil
}

// RankAll возвращает все фильмы каталога с их счётом лайков, в порядке
// ранжирования. Используется движком топ-N и прогревом кеша популярности.
func (r *Ranker) RankAll(ctx context.Context) ([]Ranked, error) {
	films, err := r.films.GetAll(ctx)
	if err != nil {
		return nil, shared.WrapError("relation", "RankAll", err, "failed to list films", err)
	}

	ranked := make([]Ranked, 0, len(films))
	for _, f := range films {
		count, err := r.ledger.LikeCount(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, Ranked{Film: f, LikeCount: count})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].LikeCount != ranked[j].LikeCount {
			return ranked[i].LikeCount > ranked[j].LikeCount
		}
		return ranked[i].Film.ID < ranked[j].Film.ID
	})
	return ranked, nil
}
