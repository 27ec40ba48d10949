package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	bhttp "github.com/radieske/sports-bet-clients/internal/admin-backoffice/http"
	"github.com/radieske/sports-bet-clients/internal/admin-backoffice/producer"
	"github.com/radieske/sports-bet-clients/internal/shared/apiclient"
	"github.com/radieske/sports-bet-clients/internal/shared/cache"
	"github.com/radieske/sports-bet-clients/internal/shared/config"
	"github.com/radieske/sports-bet-clients/internal/shared/i18n"
	"github.com/radieske/sports-bet-clients/internal/shared/kafka"
	"github.com/radieske/sports-bet-clients/internal/shared/logger"
	"github.com/radieske/sports-bet-clients/internal/shared/metrics"
	"github.com/radieske/sports-bet-clients/internal/shared/nav"
	"github.com/radieske/sports-bet-clients/internal/shared/session"
)

func main() {
	if os.Getenv("SERVICE_NAME") == "" {
		_ = os.Setenv("SERVICE_NAME", config.ServiceAdmin)
	}
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config: %w", err))
	}

	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting service", zap.String("api", cfg.APIBaseURL), zap.String("session", cfg.SessionBackend))

	// sessão do operador
	var (
		store session.Store
		rdb   *redis.Client
	)
	switch cfg.SessionBackend {
	case "redis":
		rdb, err = cache.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal("failed to connect redis", zap.Error(err))
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb)
		log.Info("redis connected", zap.String("addr", cfg.RedisAddr))
	case "file":
		store = session.NewFileStore(cfg.SessionFile)
	default:
		store = session.NewMemoryStore()
	}

	// métricas do client da API
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	clientMetrics := metrics.NewClientMetrics(reg)

	// eventos de revisão (opcional)
	var events producer.Publisher = producer.Nop{}
	if cfg.KafkaBrokers != "" {
		writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicReviewDecided)
		defer writer.Close()
		events = producer.Logged{Next: producer.NewKafkaPublisher(writer, cfg.TopicReviewDecided), Log: log}
		log.Info("kafka writer ready", zap.String("topic", cfg.TopicReviewDecided))
	}

	sh, err := nav.New(ctx, store, nav.Config{
		BaseURL:  cfg.APIBaseURL,
		Entry:    bhttp.ScreenDashboard,
		Screens:  bhttp.Screens,
		Identity: nav.RoleIdentity,
		Client: []apiclient.Option{
			apiclient.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
			apiclient.WithLogger(log),
			apiclient.WithMetrics(clientMetrics),
		},
		Log: log,
	})
	if err != nil {
		log.Fatal("session", zap.Error(err))
	}

	api, err := bhttp.New(bhttp.Options{Shell: sh, Tr: i18n.New(cfg.Locale), Events: events, Log: log})
	if err != nil {
		log.Fatal("templates", zap.Error(err))
	}

	// metrics/health
	metricsSrv := metrics.StartMetricsServer(log, cfg.MetricsPort, reg, func(ctx context.Context) error {
		if rdb == nil {
			return nil
		}
		return rdb.Ping(ctx).Err()
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
		_ = metricsSrv.Shutdown(sctx)
	}()

	log.Info("admin-backoffice listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("http", zap.Error(err))
	}
}
