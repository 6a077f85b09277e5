package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"invoice-antifraud/internal/application/invoice"
	"invoice-antifraud/internal/domain/account"
	"invoice-antifraud/internal/domain/fraud"
	invoicedomain "invoice-antifraud/internal/domain/invoice"
	"invoice-antifraud/internal/infrastructure/cache/redis"
	"invoice-antifraud/internal/infrastructure/database/postgres"
	"invoice-antifraud/internal/infrastructure/http/router"
	"invoice-antifraud/internal/interfaces/http/handler"
	"invoice-antifraud/internal/pkg/config"
	"invoice-antifraud/internal/pkg/logger"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	log.Info().Str("version", version).Msg("starting invoice anti-fraud API")

	// Database connection. When Postgres is unreachable the service falls
	// back to in-memory stores so it can still run standalone.
	var (
		invoiceRepo invoicedomain.Repository
		accountRepo account.Repository
		history     fraud.History
		dbHealth    handler.HealthChecker
	)

	dbClient, err := postgres.NewClient(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		log.Warn().Err(err).Msg("database connection failed, running with in-memory stores")
		memInvoices := newMemoryInvoiceRepository()
		invoiceRepo = memInvoices
		history = memInvoices
		accountRepo = newMemoryAccountRepository()
	} else {
		log.Info().Str("host", cfg.Database.Host).Int("port", cfg.Database.Port).Msg("connected to PostgreSQL")
		if err := dbClient.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("database migration failed")
		}
		pgInvoices := postgres.NewInvoiceRepository(dbClient)
		invoiceRepo = pgInvoices
		history = pgInvoices
		accountRepo = postgres.NewAccountRepository(dbClient)
		dbHealth = dbClient
		defer dbClient.Close()
	}

	// Redis connection (optional): fronts the frequency count with a
	// velocity cache.
	var (
		velocityCache *redis.VelocityCache
		redisHealth   handler.HealthChecker
	)

	redisClient, err := redis.NewClient(redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis connection failed, velocity fast path disabled")
	} else {
		log.Info().Str("host", cfg.Redis.Host).Int("port", cfg.Redis.Port).Msg("connected to Redis")
		velocityCache = redis.NewVelocityCache(redisClient)
		history = redis.NewVelocityHistory(velocityCache, history, int64(cfg.Fraud.InvoiceCountLimit))
		redisHealth = redisClient
		defer redisClient.Close()
	}

	// Fraud specifications in priority order. The cheap account-flag check
	// runs first; rules that need history queries come after.
	aggregate := fraud.NewAggregate(
		fraud.NewSuspiciousAccountSpecification(),
		fraud.NewUnusualAmountSpecification(history, cfg.Fraud.HistoryCount, cfg.Fraud.Variation()),
		fraud.NewFrequentHighValueSpecification(history, cfg.Fraud.Timeframe(), int64(cfg.Fraud.InvoiceCountLimit)),
	)

	processor := invoicedomain.NewProcessor(invoiceRepo, accountRepo, aggregate)
	processInvoice := invoice.NewProcessInvoiceUseCase(processor, velocityCache, cfg.Fraud.AnalysisTimeout, log)

	invoiceHandler := handler.NewInvoiceHandler(processInvoice, invoiceRepo)
	healthHandler := handler.NewHealthHandler(dbHealth, redisHealth, version)

	r := router.NewRouter(invoiceHandler, healthHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped")
}
