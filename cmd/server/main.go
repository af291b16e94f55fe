// Package main - точка входа HTTP-сервиса FilmHub.
//
// FilmHub ведёт каталог фильмов и социальный граф вокруг него: лайки
// пользователей определяют рейтинг популярности, направленные рёбра
// дружбы - списки друзей и их пересечения.
//
// Архитектура следует принципам Clean Architecture и CQRS:
// - Domain: чистая бизнес-логика без внешних зависимостей
// - Application: оркестрация use cases (Commands/Queries)
// - Infrastructure: реализации репозиториев, PostgreSQL, Redis
// - Interface: HTTP endpoints
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/filmhub/filmhub/config"
	"github.com/filmhub/filmhub/internal/application/command"
	"github.com/filmhub/filmhub/internal/application/query"
	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/relation"
	"github.com/filmhub/filmhub/internal/domain/user"
	"github.com/filmhub/filmhub/internal/infrastructure/persistence/memory"
	"github.com/filmhub/filmhub/internal/infrastructure/persistence/postgres"
	"github.com/filmhub/filmhub/internal/infrastructure/persistence/redis"
	httpserver "github.com/filmhub/filmhub/internal/interface/http"
	"github.com/filmhub/filmhub/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

// repositories собирает все хранилища, независимо от выбранного бэкенда.
type repositories struct {
	users   user.Repository
	films   film.Repository
	genres  film.GenreRepository
	mpa     film.MpaRepository
	userIdx relation.UserIndex
	filmIdx relation.FilmIndex
	likes   relation.LikeRepository
	friends relation.FriendshipRepository
	lister  relation.FilmLister
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(os.Stdout, logger.ParseLevel(cfg.Observability.LogLevel))
	log.Info("starting FilmHub",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
	)

	healthCheckers := make(map[string]httpserver.HealthChecker)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ВЫБОР БЭКЕНДА ХРАНЕНИЯ
	// Пустой DATABASE_URL означает хранение в памяти: удобно для
	// разработки и интеграционных тестов, данные живут до перезапуска.
	// ─────────────────────────────────────────────────────────────────────────
	var repos repositories

	if cfg.Database.URL != "" {
		log.Info("connecting to database...")
		conn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			log.Info("closing database connection...")
			conn.Close()
		}()

		if err := conn.Ping(ctx); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		log.Info("database connection established")

		log.Info("running database migrations...")
		migrator := postgres.NewMigrator(conn)
		if err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("migrations completed")

		users := postgres.NewUserRepository(conn)
		films := postgres.NewFilmRepository(conn)
		repos = repositories{
			users:   users,
			films:   films,
			genres:  postgres.NewGenreRepository(conn),
			mpa:     postgres.NewMpaRepository(conn),
			userIdx: users,
			filmIdx: films,
			likes:   postgres.NewLikeRepository(conn),
			friends: postgres.NewFriendshipRepository(conn),
			lister:  films,
		}
		healthCheckers["postgres"] = conn
	} else {
		log.Warn("DATABASE_URL is empty, using in-memory storage")
		users := memory.NewUserStore()
		films := memory.NewFilmStore()
		repos = repositories{
			users:   users,
			films:   films,
			genres:  memory.NewGenreStore(),
			mpa:     memory.NewMpaStore(),
			userIdx: users,
			filmIdx: films,
			likes:   memory.NewLikeStore(),
			friends: memory.NewFriendshipStore(),
			lister:  films,
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. ИНИЦИАЛИЗАЦИЯ REDIS (опционально)
	// Пустой REDIS_URL отключает кэш популярности; рейтинг тогда
	// пересчитывается на каждый запрос.
	// ─────────────────────────────────────────────────────────────────────────
	var popularCache *redis.PopularCache

	if cfg.Redis.URL != "" {
		log.Info("connecting to Redis...")
		cache, err := redis.NewCacheFromURL(cfg.Redis.URL)
		if err != nil {
			log.Warn("failed to connect to Redis, popularity cache disabled", logger.Err(err))
		} else {
			defer cache.Close()
			popularCache = redis.NewPopularCache(cache)
			healthCheckers["redis"] = cache
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ИНИЦИАЛИЗАЦИЯ DOMAIN-СЕРВИСОВ
	// ─────────────────────────────────────────────────────────────────────────
	ledger := relation.NewLedger(repos.userIdx, repos.filmIdx, repos.likes, repos.friends)
	ranker := relation.NewRanker(repos.lister, ledger)

	// ─────────────────────────────────────────────────────────────────────────
	// 6. ИНИЦИАЛИЗАЦИЯ APPLICATION LAYER (Commands, Queries)
	// nil-кэш допустим: обработчики пропускают работу с кэшем.
	// ─────────────────────────────────────────────────────────────────────────
	var invalidator command.PopularityInvalidator
	var topCache query.PopularityCache
	if popularCache != nil {
		invalidator = popularCache
		topCache = popularCache
	}

	deps := httpserver.Dependencies{
		CreateUser:   command.NewCreateUserHandler(repos.users),
		UpdateUser:   command.NewUpdateUserHandler(repos.users),
		CreateFilm:   command.NewCreateFilmHandler(repos.films, repos.genres, repos.mpa, invalidator),
		UpdateFilm:   command.NewUpdateFilmHandler(repos.films, repos.genres, repos.mpa, invalidator),
		AddLike:      command.NewAddLikeHandler(ledger, invalidator),
		RemoveLike:   command.NewRemoveLikeHandler(ledger, invalidator),
		AddFriend:    command.NewAddFriendHandler(ledger),
		RemoveFriend: command.NewRemoveFriendHandler(ledger),

		GetUser:          query.NewGetUserHandler(repos.users),
		ListUsers:        query.NewListUsersHandler(repos.users),
		GetFilm:          query.NewGetFilmHandler(repos.films),
		ListFilms:        query.NewListFilmsHandler(repos.films),
		GetPopularFilms:  query.NewGetPopularFilmsHandler(ranker, topCache),
		GetFriends:       query.NewGetFriendsHandler(ledger, repos.users),
		GetCommonFriends: query.NewGetCommonFriendsHandler(ledger, repos.users),
		Catalog:          query.NewCatalogHandler(repos.genres, repos.mpa),

		Logger:         log,
		HealthCheckers: healthCheckers,
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. СОЗДАНИЕ HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout

	server := httpserver.NewServer(httpConfig, deps)

	// ─────────────────────────────────────────────────────────────────────────
	// 8. ЗАПУСК И GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	errCh := server.StartAsync()

	log.Info("FilmHub is running", logger.String("address", server.Address()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("server error", logger.Err(err))
			return err
		}
	case <-ctx.Done():
		log.Info("context cancelled")
	}

	log.Info("starting graceful shutdown...", logger.Duration("timeout", cfg.App.ShutdownTimeout))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", logger.Err(err))
		return err
	}

	log.Info("shutdown completed successfully")
	return nil
}
