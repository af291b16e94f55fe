package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/relation"
)

// ══════════════════════════════════════════════════════════════════════════════
// POPULARITY CACHE
// Сохраняет готовый рейтинг фильмов целиком: zset держит счёт лайков по id
// фильма, hash - сериализованные записи фильмов. Оба ключа живут под одним
// TTL и удаляются вместе при инвалидации, так что рейтинг и записи не
// расходятся. Redis упорядочивает равные счёты лексикографически по члену,
// поэтому ничья перерешается на клиенте: по убыванию счёта, затем по
// возрастанию id.
// ══════════════════════════════════════════════════════════════════════════════

const (
	// keyPopularRanking - zset id фильма -> счёт лайков.
	keyPopularRanking = "films:popular"

	// keyPopularInfo - hash id фильма -> JSON записи фильма.
	keyPopularInfo = "films:info"

	// TTLPopularCache - срок жизни кэшированного рейтинга. Страховка на
	// случай пропущенной инвалидации.
	TTLPopularCache = 5 * time.Minute
)

// PopularCache хранит рейтинг популярности фильмов в Redis.
type PopularCache struct {
	cache *Cache
}

// NewPopularCache создаёт новый PopularCache.
func NewPopularCache(cache *Cache) *PopularCache {
	return &PopularCache{cache: cache}
}

// StoreTop замещает кэшированный рейтинг целиком.
func (p *PopularCache) StoreTop(ctx context.Context, ranked []relation.Ranked) error {
	client := p.cache.Client()

	pipe := client.TxPipeline()
	pipe.Del(ctx, keyPopularRanking, keyPopularInfo)

	for _, entry := range ranked {
		member := strconv.FormatInt(entry.Film.ID, 10)
		payload, err := json.Marshal(entry.Film)
		if err != nil {
			return fmt.Errorf("popular_cache: failed to marshal film %d: %w", entry.Film.ID, err)
		}
		pipe.ZAdd(ctx, keyPopularRanking, redis.Z{Score: float64(entry.LikeCount), Member: member})
		pipe.HSet(ctx, keyPopularInfo, member, payload)
	}

	pipe.Expire(ctx, keyPopularRanking, TTLPopularCache)
	pipe.Expire(ctx, keyPopularInfo, TTLPopularCache)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("popular_cache: failed to store ranking: %w", err)
	}
	return nil
}

// Top возвращает первые count фильмов кэшированного рейтинга.
// Возвращает (nil, nil) при промахе; пустой кэшированный рейтинг - тоже
// промах, его пересчёт дешев.
func (p *PopularCache) Top(ctx context.Context, count int) ([]*film.Film, error) {
	client := p.cache.Client()

	entries, err := client.ZRevRangeWithScores(ctx, keyPopularRanking, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("popular_cache: failed to read ranking: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	type scored struct {
		id    int64
		count int
	}
	ranking := make([]scored, 0, len(entries))
	for _, z := range entries {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		ranking = append(ranking, scored{id: id, count: int(z.Score)})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].count != ranking[j].count {
			return ranking[i].count > ranking[j].count
		}
		return ranking[i].id < ranking[j].id
	})

	if count > len(ranking) {
		count = len(ranking)
	}
	ranking = ranking[:count]

	fields := make([]string, 0, len(ranking))
	for _, s := range ranking {
		fields = append(fields, strconv.FormatInt(s.id, 10))
	}
	payloads, err := client.HMGet(ctx, keyPopularInfo, fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("popular_cache: failed to read film records: %w", err)
	}

	films := make([]*film.Film, 0, len(payloads))
	for _, raw := range payloads {
		text, ok := raw.(string)
		if !ok {
			// Рейтинг и записи разошлись: считаем промахом, чтобы
			// вызывающий слой пересобрал кэш.
			return nil, nil
		}
		var f film.Film
		if err := json.Unmarshal([]byte(text), &f); err != nil {
			return nil, nil
		}
		films = append(films, &f)
	}
	return films, nil
}

// Invalidate удаляет кэшированный рейтинг. Отсутствие ключей - не ошибка.
func (p *PopularCache) Invalidate(ctx context.Context) error {
	if err := p.cache.Client().Del(ctx, keyPopularRanking, keyPopularInfo).Err(); err != nil {
		return fmt.Errorf("popular_cache: failed to invalidate: %w", err)
	}
	return nil
}
