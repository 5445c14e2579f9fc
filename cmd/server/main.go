package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"stepsurvey/internal/cache"
	"stepsurvey/internal/catalog"
	"stepsurvey/internal/config"
	"stepsurvey/internal/logger"
	"stepsurvey/internal/metrics"
	"stepsurvey/internal/model"
	"stepsurvey/internal/repository"
	"stepsurvey/internal/secrets"
	"stepsurvey/internal/service"
	"stepsurvey/internal/transport/rest"
	"stepsurvey/internal/wizard"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	questions, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatal("failed to load question catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}
	log.Info("question catalog loaded", zap.Int("questions", questions.Len()), zap.String("path", cfg.CatalogPath))

	if cfg.UsesDefaultSecret() {
		log.Warn("SESSION_SECRET not set, using development default")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	// Local submission store
	var store repository.SubmissionStore
	switch cfg.Store.Kind {
	case "mongo":
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Store.MongoURI))
		if err != nil {
			log.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			log.Fatal("failed to ping MongoDB", zap.Error(err))
		}
		store = repository.NewSubmissionRepo(mongoClient.Database(cfg.Store.MongoDB))
		log.Info("storing submissions in MongoDB", zap.String("db", cfg.Store.MongoDB))
	default:
		store = repository.NewCSVStore(cfg.Store.CSVPath)
		log.Info("storing submissions in CSV", zap.String("path", cfg.Store.CSVPath))
	}

	// Session cache
	var sessions cache.SessionCache
	if cfg.Session.RedisURI != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.Session.RedisURI,
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal("failed to ping Redis", zap.Error(err))
		}
		sessions = cache.NewSessionCache(rdb, cfg.Session.TTL)
		log.Info("sessions stored in Redis", zap.String("addr", cfg.Session.RedisURI))
	} else {
		sessions = cache.NewMemorySessionCache(cfg.Session.TTL)
		log.Info("REDIS_URI not set, sessions kept in memory")
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.Session.Secret, cfg.Session.TTL)
	webhook := service.NewWebhookClient(
		secrets.WebhookChain(log, cfg.SecretsPath),
		config.WebhookTimeout,
		m,
		log.Named("webhook"),
	)
	submitter := service.NewSubmitter(store, webhook, m, log.Named("submit"))
	surveySvc := service.NewSurveyService(
		wizard.New(questions, wizard.SystemClock{}),
		sessions,
		submitter,
		authSvc,
		model.Branding{
			LogoURL:    cfg.LogoURL,
			SenderName: cfg.SenderName,
			Footer:     cfg.Footer,
			BuildID:    config.BuildID,
		},
		m,
		log.Named("survey"),
	)

	router := rest.NewRouter(&rest.Container{
		AuthService:   authSvc,
		SurveyService: surveySvc,
		Gatherer:      registry,
		CORS:          cfg.CORS,
		Logger:        log.Named("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("build", config.BuildID))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe failed", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
