package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gokatarajesh/quiz-api/internal/config"
	"github.com/gokatarajesh/quiz-api/internal/feed"
	"github.com/gokatarajesh/quiz-api/internal/logging"
	"github.com/gokatarajesh/quiz-api/internal/quiz"
	"github.com/gokatarajesh/quiz-api/internal/server"
	ws "github.com/gokatarajesh/quiz-api/pkg/http/ws"
)

// Application aggregates the quiz store, the answer feed and the HTTP server.
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	store *quiz.Store
	redis *redis.Client
	http  *http.Server

	broadcaster *feed.Broadcaster
}

// New bootstraps logger, quiz store, optional Redis feed and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	store := quiz.NewStore(logger, quiz.StoreOptions{})
	if cfg.Quiz.SeedFile != "" {
		seeded, err := quiz.LoadSeed(ctx, store, cfg.Quiz.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("load quiz seed: %w", err)
		}
		logger.Info().Str("file", cfg.Quiz.SeedFile).Int("quizzes", len(seeded)).Msg("quiz seed loaded")
	}

	hub := ws.NewHub(logger)

	var (
		redisClient *redis.Client
		publisher   quiz.AnswerPublisher
		broadcaster *feed.Broadcaster
	)
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			_ = redisClient.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		publisher = feed.NewRedisPublisher(redisClient, cfg.Feed.Channel)
		broadcaster = feed.NewBroadcaster(redisClient, hub, cfg.Feed.Channel, logger)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("answer feed using redis pub/sub")
	} else {
		publisher = feed.NewHubPublisher(hub)
		logger.Warn().Msg("REDIS_ADDR not configured; answer feed limited to this instance")
	}

	quizHandlers := quiz.NewHTTPHandlers(store, publisher, logger)
	feedHandler := feed.NewHandler(store, hub, logger)
	apiServer := server.NewHTTPServer(cfg, logger, quizHandlers, feedHandler.HandleWebSocket)

	return &Application{
		cfg:         cfg,
		logger:      logger,
		store:       store,
		redis:       redisClient,
		http:        apiServer,
		broadcaster: broadcaster,
	}, nil
}

// Run starts the HTTP server and background workers and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Int("quizzes", a.store.Len()).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	if a.broadcaster != nil {
		g.Go(func() error {
			if err := a.broadcaster.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("answer broadcaster stopped")
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info().Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
		defer cancel()

		if err := a.http.Shutdown(shutdownCtx); err != nil {
			a.logger.Error().Err(err).Msg("http shutdown error")
		}
		return nil
	})

	err := g.Wait()

	if a.redis != nil {
		if cerr := a.redis.Close(); cerr != nil {
			a.logger.Error().Err(cerr).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return err
}
