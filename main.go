package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rentauction/internal/config"
	"rentauction/internal/database/db_client"
	"rentauction/internal/http/http_server"
	"rentauction/internal/jobs"
	"rentauction/internal/keylock"
	"rentauction/internal/notify"
	"rentauction/internal/redis/redis_client"
	"rentauction/internal/redis/redis_functions"
	"rentauction/internal/redis/redislock"
	"rentauction/internal/redis/watcher/auctionwatcher"
	"rentauction/internal/repository"
	"rentauction/internal/services/auction"
)

var (
	Log, _ = zap.NewDevelopment()
)

type store interface {
	repository.AuctionStore
	repository.UserDirectory
}

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully",
		zap.String("store", cfg.StoreBackend),
		zap.String("lock", cfg.LockBackend),
		zap.String("notify", cfg.NotifyBackend),
	)

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	clock := clockwork.NewRealClock()

	// 3. Redis, when a backend needs it
	var redisClient *redis.Client
	if cfg.UsesRedis() {
		redisClient, err = redis_client.NewRedisClient(ctx, redis_client.Params{
			Host:     cfg.RedisAuctionsHost,
			Port:     int(cfg.RedisAuctionsPort),
			Password: cfg.RedisAuctionsPassword,
			DB:       cfg.RedisAuctionsDb,
		})
		if err != nil {
			Log.Fatal("Failed to create Redis client", zap.Error(err))
		}
		defer redisClient.Close()

		if _, err := redis_functions.LoadAll(ctx, redisClient); err != nil {
			Log.Fatal("load-redis-funcs", zap.Error(err))
		}
	}

	// 4. Store
	var st store
	switch cfg.StoreBackend {
	case "postgres":
		var pgDb *sql.DB
		pgDb, err = db_client.Open(ctx, db_client.Params{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPassword,
			Database: cfg.PostgresDb,
			SslMode:  cfg.PostgresSslMode,
		})
		if err != nil {
			Log.Fatal("pg-open", zap.Error(err))
		}
		defer pgDb.Close()

		pg := repository.NewPostgresStore(pgDb)
		if err := pg.EnsureSchema(ctx); err != nil {
			Log.Fatal("pg-schema", zap.Error(err))
		}
		st = pg
	default:
		Log.Warn("using in-memory store, state is lost on restart")
		st = repository.NewMemoryStore()
	}

	// 5. Per-auction lock
	var locker keylock.Locker = keylock.New()
	if cfg.LockBackend == "redis" {
		locker = redislock.New(redisClient, cfg.LockTtl)
	}

	// 6. Notifications, published off the request path
	var sink notify.Notifier
	switch cfg.NotifyBackend {
	case "redis":
		sink = notify.NewRedisPublisher(redisClient)
	case "amqp":
		amqpPub, err := notify.DialAMQP(cfg.AmqpUrl)
		if err != nil {
			Log.Fatal("amqp-dial", zap.Error(err))
		}
		defer amqpPub.Close()
		sink = amqpPub
	default:
		sink = notify.LogPublisher{}
	}
	dispatcher := notify.NewDispatcher(sink, cfg.NotifyWorkers)
	defer dispatcher.Close()

	// 7. Service
	opts := auction.Options{
		PaymentGrace:  cfg.PaymentGrace,
		FinePercent:   cfg.FinePercent,
		FineMinimum:   cfg.FineMinimum,
		OverdueAction: auction.OverdueAction(cfg.OverdueAction),
	}
	if redisClient != nil {
		opts.Timer = auctionwatcher.NewTimers(redisClient, clock)
	}
	auctionService := auction.NewAuctionService(st, st, locker, dispatcher, clock, opts)

	// 8. Background: key‑expiry watcher ➜ evaluate the auction
	if redisClient != nil {
		go auctionwatcher.Run(ctx, redisClient, auctionService)
	}

	// 9. Background: payment sweep and lifecycle tick
	runner, err := jobs.New(ctx, jobs.Config{
		PaymentSweepInterval:  cfg.PaymentSweepInterval,
		LifecycleTickInterval: cfg.LifecycleTickInterval,
	}, auctionService, st, clock)
	if err != nil {
		Log.Fatal("jobs", zap.Error(err))
	}
	runner.Start()
	defer func() {
		if err := runner.Shutdown(); err != nil {
			Log.Error("jobs_shutdown", zap.Error(err))
		}
	}()

	// 10. HTTP server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, auctionService)
	if err := httpServer.Listen(); err != nil {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
	go func() {
		<-ctx.Done()
		_ = httpServer.Dispose()
	}()
	if err := httpServer.Serve(); err != nil {
		Log.Error("http_serve", zap.Error(err))
	}
	Log.Info("shutdown complete")
}
