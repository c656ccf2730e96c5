package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/leadline/crm-system/internal/api"
	"github.com/leadline/crm-system/internal/core/ports"
	"github.com/leadline/crm-system/internal/core/service"
	"github.com/leadline/crm-system/internal/infrastructure/config"
	"github.com/leadline/crm-system/internal/infrastructure/db/mongo"
	"github.com/leadline/crm-system/internal/infrastructure/db/redis"
	"github.com/leadline/crm-system/internal/infrastructure/memory"
	"github.com/leadline/crm-system/internal/infrastructure/queue"
	"github.com/leadline/crm-system/internal/session"
	"github.com/leadline/crm-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		customerRepo ports.CustomerRepository
		leadRepo     ports.LeadRepository
		authRepo     ports.AuthRepository
		activityRepo ports.ActivityRepository
		mongoDB      *gomongo.Database
	)

	switch cfg.StorageBackend {
	case "mongo":
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()
		mongoDB = db

		customers := mongo.NewCustomerRepository(db)
		leads := mongo.NewLeadRepository(db)
		auth := mongo.NewAuthRepository(db)
		if err := customers.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("customer index creation failed")
		}
		if err := leads.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("lead index creation failed")
		}
		if err := auth.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("auth index creation failed")
		}
		customerRepo = customers
		leadRepo = leads
		authRepo = auth
		activityRepo = mongo.NewActivityRepository(db)

	default:
		store := memory.NewStore(memory.Options{
			Seed:    memory.DemoSeed(),
			Latency: time.Duration(cfg.SimulatedLatencyMS) * time.Millisecond,
		})
		customerRepo = memory.NewCustomerRepository(store)
		leadRepo = memory.NewLeadRepository(store)
		authRepo = memory.NewAuthRepository(store)
		activityRepo = memory.NewActivityRepository(store)
		log.Info().
			Dur("latency", time.Duration(cfg.SimulatedLatencyMS)*time.Millisecond).
			Msg("using seeded in-memory storage")
	}

	var (
		redisClient *goredis.Client
		sessionKV   session.KV = session.NewMemKV()
	)
	if cfg.SessionBackend == "redis" {
		kv, client, err := redis.ConnectSessions(ctx, redis.Config{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			SessionTTL: cfg.Redis.SessionTTL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = client.Close() }()
		redisClient = client
		sessionKV = kv
	}

	activityService := service.NewActivityService(activityRepo, logger.With("activity"))
	dispatcher := queue.NewDispatcher(0, activityService, logger.With("dispatcher"))
	dispatcher.Start(ctx)

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)
	customerService := service.NewCustomerService(customerRepo, leadRepo, dispatcher, logger.With("customers"))
	leadService := service.NewLeadService(leadRepo, customerRepo, dispatcher, logger.With("leads"))

	// The session store survives restarts when backed by Redis; a restored
	// session is picked up here so the holder stays signed in.
	sessions := session.NewStore(authService, sessionKV, logger.With("session"))
	sessions.Restore(ctx)
	if sessions.IsAuthenticated() {
		log.Info().Str("email", sessions.User().Email).Msg("restored persisted session")
	}

	e := api.NewRouter(api.Deps{
		Customers: customerService,
		Leads:     leadService,
		Auth:      authService,
		Activity:  activityService,
		JWTSecret: cfg.JWTSecret,
		Mongo:     mongoDB,
		Redis:     redisClient,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
