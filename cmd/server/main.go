// Package main - точка входа для API сервера Stratos.
//
// Stratos - бэкенд для изучения языков: прогресс и мастерство, очки
// опыта, серии занятий, достижения и лидерборд.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: чистая бизнес-логика без внешних зависимостей
// - Application: оркестрация use cases (Commands/Queries)
// - Infrastructure: реализация репозиториев, кеши, шина событий
// - Interface: HTTP endpoints
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/stratos-app/stratos-backend/config"

	// Application layer
	"github.com/stratos-app/stratos-backend/internal/application/command"
	"github.com/stratos-app/stratos-backend/internal/application/eventhandler"
	"github.com/stratos-app/stratos-backend/internal/application/query"

	// Domain layer
	"github.com/stratos-app/stratos-backend/internal/domain/catalog"
	"github.com/stratos-app/stratos-backend/internal/domain/learner"

	// Infrastructure layer
	"github.com/stratos-app/stratos-backend/internal/infrastructure/messaging"
	"github.com/stratos-app/stratos-backend/internal/infrastructure/persistence/postgres"
	"github.com/stratos-app/stratos-backend/internal/infrastructure/persistence/redis"
	"github.com/stratos-app/stratos-backend/internal/infrastructure/scheduler/jobs"

	// Interface layer
	httpserver "github.com/stratos-app/stratos-backend/internal/interface/http"
	"github.com/stratos-app/stratos-backend/internal/interface/http/handlers"

	// Packages
	"github.com/stratos-app/stratos-backend/pkg/logger"
	"github.com/stratos-app/stratos-backend/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	// Создаём корневой контекст с возможностью отмены
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запускаем приложение
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
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
	slogger := setupSlog(cfg)
	appLog := logger.New(logger.Options{
		Output: os.Stdout,
		Level:  logger.ParseLevel(cfg.Observability.LogLevel),
	})

	slogger.Info("starting Stratos API server",
		"env", string(cfg.App.Environment),
		"version", cfg.App.Version,
		"debug", cfg.App.Debug,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ПОДКЛЮЧЕНИЕ К БАЗЕ ДАННЫХ (PostgreSQL)
	// ─────────────────────────────────────────────────────────────────────────
	slogger.Info("connecting to database...")

	var dbConn *postgres.Connection
	if err := retry.StartupRetrier().Do(ctx, func(ctx context.Context) error {
		var connErr error
		dbConn, connErr = postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
		return connErr
	}); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		slogger.Info("closing database connection...")
		dbConn.Close()
	}()

	if err := dbConn.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	slogger.Info("database connection established")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. ЗАПУСК МИГРАЦИЙ
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Database.AutoMigrate {
		slogger.Info("running database migrations...")
		migrator := postgres.NewMigrator(dbConn)
		if err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		status, err := migrator.Status(ctx)
		if err != nil {
			slogger.Warn("failed to get migration status", "error", err)
		} else {
			appliedCount := 0
			for _, m := range status {
				if m.IsApplied {
					appliedCount++
				}
			}
			slogger.Info("migrations completed", "applied", appliedCount, "total", len(status))
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ИНИЦИАЛИЗАЦИЯ REDIS (опционально)
	// ─────────────────────────────────────────────────────────────────────────
	var (
		learnerCache     learner.Cache
		leaderboardCache learner.LeaderboardCache
		redisCache       *redis.Cache
	)

	if !cfg.Redis.Disabled {
		slogger.Info("connecting to Redis...")
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

		redisCache, err = redis.NewCache(redisCfg)
		if err != nil {
			slogger.Warn("failed to connect to Redis, caching disabled", "error", err)
		} else {
			defer redisCache.Close()
			learnerCache = redis.NewLearnerCache(redisCache)
			if cfg.Features.IsEnabled(config.FeatureLeaderboardCache, nil) {
				leaderboardCache = redis.NewLeaderboardCache(redisCache)
			}
			slogger.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. ЗАГРУЗКА КАТАЛОГА КУРСОВ
	// ─────────────────────────────────────────────────────────────────────────
	courseCatalog, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("failed to load course catalog: %w", err)
	}
	slogger.Info("course catalog loaded", "languages", len(courseCatalog.Languages()))

	// ─────────────────────────────────────────────────────────────────────────
	// 7. ИНИЦИАЛИЗАЦИЯ РЕПОЗИТОРИЕВ
	// ─────────────────────────────────────────────────────────────────────────
	slogger.Info("initializing repositories...")
	learnerRepo := postgres.NewLearnerRepository(dbConn)
	completionRepo := postgres.NewCompletionRepository(dbConn)
	achievementRepo := postgres.NewAchievementRepository(dbConn)
	unitOfWork := postgres.NewUnitOfWork(dbConn)

	// ─────────────────────────────────────────────────────────────────────────
	// 8. ИНИЦИАЛИЗАЦИЯ EVENT BUS И DISPATCHER
	// ─────────────────────────────────────────────────────────────────────────
	slogger.Info("initializing event bus...")
	eventBusConfig := messaging.DefaultInMemoryEventBusConfig()
	eventBusConfig.Logger = slogger
	eventBus := messaging.NewInMemoryEventBus(eventBusConfig)
	defer func() {
		slogger.Info("closing event bus...")
		_ = eventBus.Close()
	}()

	dispatcher := messaging.NewDispatcher(messaging.DispatcherConfig{
		EventBus:              eventBus,
		EnableDeadLetterQueue: true,
		Logger:                slogger,
	})
	dispatcher.Use(messaging.RecoveryMiddleware(slogger))
	dispatcher.Use(messaging.LoggingMiddleware(slogger))

	// ─────────────────────────────────────────────────────────────────────────
	// 9. РЕГИСТРАЦИЯ EVENT HANDLERS
	// ─────────────────────────────────────────────────────────────────────────
	slogger.Info("registering event handlers...")

	if leaderboardCache != nil {
		lessonCompleted := eventhandler.NewOnLessonCompletedHandler(learnerRepo, leaderboardCache, appLog)
		if err := dispatcher.Register(lessonCompleted.EventType(), "leaderboard-update", lessonCompleted.Handle); err != nil {
			return fmt.Errorf("failed to register lesson completed handler: %w", err)
		}
	}

	achievementUnlocked := eventhandler.NewOnAchievementUnlockedHandler(appLog)
	if err := dispatcher.Register(achievementUnlocked.EventType(), "achievement-log", achievementUnlocked.Handle); err != nil {
		return fmt.Errorf("failed to register achievement handler: %w", err)
	}

	if err := dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start dispatcher: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 10. ИНИЦИАЛИЗАЦИЯ APPLICATION LAYER (Commands, Queries)
	// ─────────────────────────────────────────────────────────────────────────
	slogger.Info("initializing application layer...")

	registerCmd := command.NewRegisterLearnerHandler(learnerRepo, eventBus, appLog)
	authenticateCmd := command.NewAuthenticateLearnerHandler(learnerRepo, appLog)
	completeLessonCmd := command.NewCompleteLessonHandler(courseCatalog, unitOfWork, learnerCache, eventBus, appLog)
	startLanguageCmd := command.NewStartLanguageHandler(courseCatalog, unitOfWork, learnerCache, eventBus, appLog)
	updateProfileCmd := command.NewUpdateProfileHandler(learnerRepo, learnerCache, appLog)
	refillHeartsCmd := command.NewRefillHeartsHandler(learnerRepo, learnerCache, appLog)

	listLanguagesQuery := query.NewListLanguagesHandler(courseCatalog, learnerRepo, completionRepo)
	listLessonsQuery := query.NewListLessonsHandler(courseCatalog, completionRepo)
	getLessonQuery := query.NewGetLessonHandler(courseCatalog)
	getFlashcardsQuery := query.NewGetFlashcardsHandler(courseCatalog)
	listAchievementsQuery := query.NewListAchievementsHandler(courseCatalog, achievementRepo)
	getProfileQuery := query.NewGetProfileHandler(learnerRepo, learnerCache, appLog)
	getLeaderboardQuery := query.NewGetLeaderboardHandler(leaderboardCache, learnerRepo, appLog)

	// ─────────────────────────────────────────────────────────────────────────
	// 11. TOKEN MANAGER И HEALTH CHECKS
	// ─────────────────────────────────────────────────────────────────────────
	tokens, err := httpserver.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}

	healthChecker := handlers.NewCompositeHealthChecker(cfg.App.Version)
	healthChecker.AddCheck("database", handlers.NewDatabaseCheck(dbConn))
	if redisCache != nil {
		healthChecker.AddOptionalCheck("cache", handlers.NewCacheCheck(redisCache))
	}

	// Admin rebuild: полная пересборка лидерборда из базы
	var rebuildLeaderboard func(ctx context.Context) error
	if leaderboardCache != nil {
		rebuildJob := jobs.NewRebuildLeaderboardJob(
			learnerRepo,
			leaderboardCache,
			cfg.Scheduler.LeaderboardMaxEntries,
			slogger,
		)
		rebuildLeaderboard = rebuildJob.Run
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 12. СОЗДАНИЕ HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	slogger.Info("initializing HTTP server...")

	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	httpConfig.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute
	httpConfig.AllowedOrigins = cfg.HTTP.AllowedOrigins
	httpConfig.AdminAPIKeys = cfg.Auth.AdminAPIKeys

	httpDeps := httpserver.Dependencies{
		RegisterLearnerHandler:     registerCmd,
		AuthenticateLearnerHandler: authenticateCmd,
		CompleteLessonHandler:      completeLessonCmd,
		StartLanguageHandler:       startLanguageCmd,
		UpdateProfileHandler:       updateProfileCmd,
		RefillHeartsHandler:        refillHeartsCmd,

		ListLanguagesHandler:    listLanguagesQuery,
		ListLessonsHandler:      listLessonsQuery,
		GetLessonHandler:        getLessonQuery,
		GetFlashcardsHandler:    getFlashcardsQuery,
		ListAchievementsHandler: listAchievementsQuery,
		GetProfileHandler:       getProfileQuery,
		GetLeaderboardHandler:   getLeaderboardQuery,

		Tokens:             tokens,
		RebuildLeaderboard: rebuildLeaderboard,
		Logger:             appLog,
		HealthChecker:      healthChecker,
	}

	httpServer := httpserver.NewServer(httpConfig, httpDeps)

	// ─────────────────────────────────────────────────────────────────────────
	// 13. ЗАПУСК И GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	errCh := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server", "address", httpServer.Address())
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	slogger.Info("Stratos API server is running", "address", httpServer.Address())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		slogger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		slogger.Error("service error", "error", err)
		return err
	}

	slogger.Info("starting graceful shutdown...", "timeout", cfg.App.ShutdownTimeout.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slogger.Error("failed to stop HTTP server gracefully", "error", err)
		return err
	}

	slogger.Info("shutdown completed successfully")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// setupSlog настраивает структурированное логирование для инфраструктуры.
func setupSlog(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.Observability.LogFormat == "json" {
		// JSON формат для production (лучше для агрегаторов логов)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		// Текстовый формат для development (лучше читается)
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}
