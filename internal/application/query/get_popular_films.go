package query

import (
	"context"

	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/relation"
	"github.com/filmhub/filmhub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET POPULAR FILMS QUERY
// Возвращает top-N фильмов по количеству лайков. Порядок: по убыванию
// лайков, при равенстве - по возрастанию id фильма. Запрос идёт через кэш
// (cache-aside): промах пересчитывает рейтинг по реестру и наполняет кэш.
// ══════════════════════════════════════════════════════════════════════════════

// PopularityCache хранит готовый рейтинг фильмов. Top возвращает (nil, nil)
// при промахе. Реализуется Redis-кэшем; nil, когда кэширование выключено.
type PopularityCache interface {
	// Top возвращает первые count фильмов кэшированного рейтинга.
	Top(ctx context.Context, count int) ([]*film.Film, error)

	// StoreTop замещает кэшированный рейтинг целиком.
	StoreTop(ctx context.Context, ranked []relation.Ranked) error
}

// GetPopularFilmsQuery содержит параметры запроса популярных фильмов.
type GetPopularFilmsQuery struct {
	// Count - сколько фильмов вернуть. Ноль - пустой результат; больше
	// общего количества - все фильмы. Значение по умолчанию подставляет
	// транспортный слой, не запрос.
	Count int
}

// Validate проверяет корректность параметров запроса.
func (q GetPopularFilmsQuery) Validate() error {
	if q.Count < 0 {
		return shared.InvalidInput("film", "count", "must not be negative")
	}
	return nil
}

// GetPopularFilmsResult содержит результат запроса популярных фильмов.
type GetPopularFilmsResult struct {
	// Films - фильмы в порядке убывания популярности.
	Films []*film.Film

	// FromCache - был ли результат отдан из кэша.
	FromCache bool
}

// GetPopularFilmsHandler обрабатывает GetPopularFilmsQuery.
type GetPopularFilmsHandler struct {
	ranker *relation.Ranker
	cache  PopularityCache
}

// NewGetPopularFilmsHandler создаёт новый GetPopularFilmsHandler. Кэш может
// быть nil, тогда каждый запрос пересчитывает рейтинг по реестру.
func NewGetPopularFilmsHandler(ranker *relation.Ranker, cache PopularityCache) *GetPopularFilmsHandler {
	return &GetPopularFilmsHandler{ranker: ranker, cache: cache}
}

// Handle выполняет запрос популярных фильмов.
func (h *GetPopularFilmsHandler) Handle(ctx context.Context, q GetPopularFilmsQuery) (*GetPopularFilmsResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if q.Count == 0 {
		return &GetPopularFilmsResult{Films: []*film.Film{}}, nil
	}

	// Ошибки кэша не фатальны: рейтинг всегда можно пересчитать.
	if h.cache != nil {
		cached, err := h.cache.Top(ctx, q.Count)
		if err == nil && cached != nil {
			return &GetPopularFilmsResult{Films: cached, FromCache: true}, nil
		}
	}

	ranked, err := h.ranker.RankAll(ctx)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		_ = h.cache.StoreTop(ctx, ranked)
	}

	count := q.Count
	if count > len(ranked) {
		count = len(ranked)
	}
	films := make([]*film.Film, 0, count)
	for _, entry := range ranked[:count] {
		films = append(films, entry.Film)
	}
	return &GetPopularFilmsResult{Films: films}, nil
}
