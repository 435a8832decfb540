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
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hszk-dev/vidtube/internal/api/handler"
	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/api/response"
	"github.com/hszk-dev/vidtube/internal/config"
	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/infrastructure/cache"
	"github.com/hszk-dev/vidtube/internal/infrastructure/lock"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
	"github.com/hszk-dev/vidtube/internal/infrastructure/postgres"
	"github.com/hszk-dev/vidtube/internal/infrastructure/queue"
	"github.com/hszk-dev/vidtube/internal/infrastructure/storage"
	"github.com/hszk-dev/vidtube/internal/probe"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type handlers struct {
	health       *handler.HealthHandler
	video        *handler.VideoHandler
	comment      *handler.CommentHandler
	like         *handler.LikeHandler
	playlist     *handler.PlaylistHandler
	subscription *handler.SubscriptionHandler
	dashboard    *handler.DashboardHandler
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	tokens, err := middleware.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to configure auth: %w", err)
	}

	pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pgClient.Close()
	logger.Info("connected to PostgreSQL")

	if cfg.Database.AutoSchema {
		if err := pgClient.EnsureSchema(ctx); err != nil {
			return err
		}
	}
	metrics.RegisterPoolGauges(func() (int32, int32, int32) {
		s := pgClient.Stats()
		return s.AcquiredConns, s.IdleConns, s.TotalConns
	})

	redisClient, err := cache.NewClient(ctx, cache.ClientConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisClient.Close()
	logger.Info("connected to Redis")

	mediaStore, err := storage.NewMediaStore(ctx,
		storage.ClientConfig{
			Endpoint:      cfg.MinIO.Endpoint,
			AccessKey:     cfg.MinIO.AccessKey,
			SecretKey:     cfg.MinIO.SecretKey,
			Bucket:        cfg.MinIO.Bucket,
			UseSSL:        cfg.MinIO.UseSSL,
			PublicBaseURL: cfg.MinIO.PublicBaseURL,
		},
		probe.NewFFprobe(probe.FFprobeConfig{FFprobePath: cfg.Media.FFprobePath}),
		storage.BreakerConfig{
			Name:             "minio",
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         cfg.Breaker.Interval,
			Timeout:          cfg.Breaker.Timeout,
			FailureThreshold: cfg.Breaker.FailureThreshold,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	logger.Info("connected to MinIO", slog.String("bucket", mediaStore.Bucket()))

	queueClient, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.RabbitMQ.URL()))
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ")

	locker := lock.NewRedisLocker(redisClient, lock.Config{
		Expiry:     cfg.Lock.Expiry,
		Tries:      cfg.Lock.Tries,
		RetryDelay: cfg.Lock.RetryDelay,
	})

	pool := pgClient.Pool()
	videoRepo := postgres.NewVideoRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	tweetRepo := postgres.NewTweetRepository(pool)
	likeRepo := postgres.NewLikeRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	playlistRepo := postgres.NewPlaylistRepository(pool)

	videoSvc := usecase.NewCachedVideoService(
		usecase.NewVideoService(videoRepo, userRepo, mediaStore, queueClient, locker),
		cache.NewRedisVideoCache(redisClient),
		usecase.CachedVideoServiceConfig{CacheTTL: cfg.Cache.VideoTTL},
	)

	upload := handler.UploadConfig{TempDir: cfg.HTTP.UploadTempDir, MaxBytes: cfg.HTTP.MaxUploadBytes}
	h := handlers{
		health: handler.NewHealthHandler(map[string]handler.Checker{
			"postgres": pgClient.Ping,
			"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
			"minio":    mediaStore.Ping,
			"rabbitmq": func(context.Context) error {
				if !queueClient.Healthy() {
					return errors.New("connection closed")
				}
				return nil
			},
		}),
		video:        handler.NewVideoHandler(videoSvc, upload),
		comment:      handler.NewCommentHandler(usecase.NewCommentService(commentRepo, videoRepo)),
		like:         handler.NewLikeHandler(usecase.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo, locker)),
		playlist:     handler.NewPlaylistHandler(usecase.NewPlaylistService(playlistRepo, videoRepo)),
		subscription: handler.NewSubscriptionHandler(usecase.NewSubscriptionService(subRepo, userRepo, locker)),
		dashboard:    handler.NewDashboardHandler(usecase.NewDashboardService(videoRepo)),
	}

	r := setupRouter(logger, cfg, tokens, h)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupRouter(logger *slog.Logger, cfg *config.Config, tokens *middleware.TokenManager, h handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.HTTP.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Fail(w, http.StatusNotFound, apperr.KindNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Fail(w, http.StatusMethodNotAllowed, apperr.KindInvalidArgument, "method not allowed")
	})

	r.Get("/health", h.health.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.HTTP.RateLimitPerMinute > 0 {
			r.Use(httprate.Limit(cfg.HTTP.RateLimitPerMinute, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByRealIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					response.Fail(w, http.StatusTooManyRequests, apperr.KindInvalidArgument, "rate limit exceeded")
				}),
			))
		}
		r.Use(middleware.Authenticate(tokens))

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", h.video.List)
			r.Post("/", h.video.Publish)
			r.Get("/{videoID}", h.video.Get)
			r.Patch("/{videoID}", h.video.Update)
			r.Delete("/{videoID}", h.video.Delete)
			r.Patch("/{videoID}/publish", h.video.TogglePublish)
			r.Post("/{videoID}/watch", h.video.Watch)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/{videoID}", h.comment.List)
			r.Post("/{videoID}", h.comment.Add)
			// chi rejects {commentID} as a sibling wildcard of {videoID}.
			r.Patch("/c/{commentID}", h.comment.Update)
			r.Delete("/c/{commentID}", h.comment.Delete)
		})

		r.Route("/likes", func(r chi.Router) {
			r.Post("/video/{videoID}", h.like.ToggleVideo)
			r.Post("/comment/{commentID}", h.like.ToggleComment)
			r.Post("/tweet/{tweetID}", h.like.ToggleTweet)
			r.Get("/videos", h.like.LikedVideos)
		})

		r.Route("/playlists", func(r chi.Router) {
			r.Post("/", h.playlist.Create)
			r.Get("/user/{userID}", h.playlist.ListByUser)
			r.Get("/{playlistID}", h.playlist.Get)
			r.Patch("/{playlistID}", h.playlist.Update)
			r.Delete("/{playlistID}", h.playlist.Delete)
			r.Post("/{playlistID}/videos/{videoID}", h.playlist.AddVideo)
			r.Delete("/{playlistID}/videos/{videoID}", h.playlist.RemoveVideo)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Post("/c/{channelID}", h.subscription.Toggle)
			r.Get("/c/{channelID}", h.subscription.Subscribers)
			r.Get("/u/{subscriberID}", h.subscription.SubscribedChannels)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", h.dashboard.Stats)
			r.Get("/videos", h.dashboard.Videos)
		})
	})

	return r
}
