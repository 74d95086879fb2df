package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	LogLevel             string
	DatabaseURI          string
	JWTSecret            string
	ReservationDelay     time.Duration
	DepositAmount        decimal.Decimal
	SweepInterval        time.Duration
	SweepBatchSize       int
	WorkerPoolSize       int
	ShutdownTimeout      time.Duration
	RedisAddress         string
	CatalogCacheTTL      time.Duration
	KafkaBrokers         []string
	KafkaOrdersTopic     string
	KafkaPaymentsTopic   string
	KafkaGroupID         string
	PaymentWebhookSecret string
}

const (
	defaultRunAddress           = ":8080"
	defaultLogLevel             = "info"
	defaultJWTSecret            = "change-me-in-production"
	defaultReservationDelayHrs  = 48
	defaultDepositAmount        = "500"
	defaultSweepInterval        = time.Minute
	defaultSweepBatchSize       = 100
	defaultWorkerPoolSize       = 4
	defaultShutdownTimeout      = 10 * time.Second
	defaultCatalogCacheTTL      = 5 * time.Minute
	defaultKafkaOrdersTopic     = "orders.events"
	defaultKafkaPaymentsTopic   = "payments.events"
	defaultKafkaGroupID         = "dealership"
	defaultPaymentWebhookSecret = "change-me-in-production"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		LogLevel:             getString(lookup, "LOG_LEVEL", defaultLogLevel),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		JWTSecret:            getString(lookup, "JWT_SECRET", defaultJWTSecret),
		SweepInterval:        getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		SweepBatchSize:       getInt(lookup, "SWEEP_BATCH_SIZE", defaultSweepBatchSize),
		WorkerPoolSize:       getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		RedisAddress:         getString(lookup, "REDIS_ADDRESS", ""),
		CatalogCacheTTL:      getDuration(lookup, "CATALOG_CACHE_TTL", defaultCatalogCacheTTL),
		KafkaOrdersTopic:     getString(lookup, "KAFKA_ORDERS_TOPIC", defaultKafkaOrdersTopic),
		KafkaPaymentsTopic:   getString(lookup, "KAFKA_PAYMENTS_TOPIC", defaultKafkaPaymentsTopic),
		KafkaGroupID:         getString(lookup, "KAFKA_GROUP_ID", defaultKafkaGroupID),
		PaymentWebhookSecret: getString(lookup, "PAYMENT_WEBHOOK_SECRET", defaultPaymentWebhookSecret),
	}

	fs := flag.NewFlagSet("dealership", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		reservationHours   = getInt(lookup, "RESERVATION_DELAY", defaultReservationDelayHrs)
		depositStr         = getString(lookup, "DEPOSIT_AMOUNT", defaultDepositAmount)
		brokersStr         = getString(lookup, "KAFKA_BROKERS", "")
		sweepIntervalStr   = cfg.SweepInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.IntVar(&reservationHours, "reservation-delay", reservationHours, "Reservation lifetime in hours")
	fs.StringVar(&depositStr, "deposit", depositStr, "Deposit amount for vehicle orders")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between reservation expiry sweeps")
	fs.IntVar(&cfg.SweepBatchSize, "sweep-batch", cfg.SweepBatchSize, "Maximum reservations expired per sweep")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sweep workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the catalog cache")
	fs.StringVar(&brokersStr, "kafka-brokers", brokersStr, "Comma separated Kafka brokers")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.DepositAmount, err = decimal.NewFromString(depositStr); err != nil {
		return nil, fmt.Errorf("invalid deposit amount: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if secretFile, ok := lookup("PAYMENT_WEBHOOK_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read webhook secret file: %w", err)
		}
		cfg.PaymentWebhookSecret = strings.TrimSpace(string(content))
	}

	cfg.KafkaBrokers = splitList(brokersStr)

	if reservationHours <= 0 {
		reservationHours = defaultReservationDelayHrs
	}
	cfg.ReservationDelay = time.Duration(reservationHours) * time.Hour

	if !cfg.DepositAmount.IsPositive() {
		return nil, fmt.Errorf("deposit amount must be positive")
	}

	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = defaultSweepBatchSize
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.CatalogCacheTTL <= 0 {
		cfg.CatalogCacheTTL = defaultCatalogCacheTTL
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
