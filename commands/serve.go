package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"multimodel-api/config"
	"multimodel-api/logger"
	"multimodel-api/routes"
	"multimodel-api/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return err
	}

	if err := services.ValidateAPIKeys(cfg); err != nil {
		log.WithField("error", err.Error()).Warn("Provider configuration incomplete, chat requests will fail")
	}

	limiter, closeLimiter, err := newRateLimiter(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	pipeline := services.NewPipeline(cfg,
		services.NewChatCompletionCaller(cfg, services.DeepSeekProfile(cfg.Providers.DeepSeekModel)),
		services.NewChatCompletionCaller(cfg, services.QwenProfile(cfg.Providers.QwenModel)),
		services.NewGeminiCaller(cfg),
	)
	router := routes.SetupRouter(cfg, pipeline, limiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"port":        cfg.Server.Port,
			"environment": cfg.Server.Environment,
			"rate_limit":  cfg.RateLimit.Backend,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ProviderTimeout()+5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRateLimiter builds the configured limiter backend and its cleanup func.
func newRateLimiter(ctx context.Context, cfg *config.Config) (services.RateLimiter, func(), error) {
	switch cfg.RateLimit.Backend {
	case "", "memory":
		return services.NewMemoryRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimitWindow()), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.WithFields(log.Fields{
				"addr":  cfg.RedisAddr(),
				"error": err.Error(),
			}).Warn("Redis not reachable, rate limiting will fail open until it is")
		}
		limiter := services.NewRedisRateLimiter(client, cfg.RateLimit.MaxRequests, cfg.RateLimitWindow(), "multimodel:ratelimit:")
		return limiter, func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown RATE_LIMIT_BACKEND %q (want memory or redis)", cfg.RateLimit.Backend)
	}
}
