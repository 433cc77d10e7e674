package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/gin-gonic/gin"
	"github.com/layer-3/goplus"
	"github.com/layer-3/goplus/adapters/events"
	"github.com/layer-3/goplus/adapters/store"
	"github.com/layer-3/goplus/adapters/tokenizer"
	"github.com/layer-3/goplus/core"
	"github.com/layer-3/goplus/ports"
	"github.com/layer-3/goplus/service"
	transport "github.com/layer-3/goplus/transport/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP gateway",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var (
		credStore   goplus.Store         = goplus.NewMemoryStore()
		cache       ports.ResultCache    = store.NewMemoryCache()
		revocations ports.ResultCache    = store.NewMemoryCache()
		eventPub    ports.EventPublisher
	)

	if cfg.RedisURL != "" {
		redisStore, err := goplus.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisStore.Close()

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client: redisStore.Client(),
			},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			return fmt.Errorf("create redis publisher: %w", err)
		}
		defer publisher.Close()

		credStore = redisStore
		cache = store.NewRedisCache(redisStore.Client(), store.PrefixResults)
		revocations = store.NewRedisCache(redisStore.Client(), store.PrefixAuth)
		eventPub = events.NewWatermillPublisher(publisher)
		logger.Info("using redis for credentials, results and events")
	}

	session := newSession(
		goplus.WithStore(credStore),
		goplus.WithMetrics(goplus.NewMetrics(registry)),
		goplus.WithUserAgent("goplus-gateway"),
	)

	riskService := service.NewRiskService(session, cache, eventPub, logger.Named("risk"), service.Options{
		AppKey:               cfg.AppKey,
		AppSecret:            cfg.AppSecret,
		CacheTTL:             cfg.CacheTTL,
		PartialRetryAttempts: cfg.PartialRetryAttempts,
		PartialRetryDelay:    cfg.PartialRetryDelay,
		ContractPollAttempts: cfg.ContractPollAttempts,
		ContractPollInterval: cfg.ContractPollInterval,
	})

	if riskService.HasKeys() {
		if err := riskService.Authenticate(ctx, core.RefreshStartup); err != nil {
			// the locally signed credential is still usable
			logger.Warn("startup token exchange failed", zap.Error(err))
		}
	} else {
		logger.Info("no app key configured, running anonymously")
	}

	var authService *service.AuthService
	if cfg.GatewayJWTSecret != "" {
		authService = service.NewAuthService(tokenizer.NewJWTTokenizer([]byte(cfg.GatewayJWTSecret)), revocations)
	} else {
		logger.Warn("GATEWAY_JWT_SECRET not set, gateway auth disabled")
	}

	gin.SetMode(gin.ReleaseMode)
	router := transport.SetupRouter(transport.RouterConfig{
		RiskService: riskService,
		AuthService: authService,
		Logger:      logger.Named("http"),
		Registry:    registry,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("gateway listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
