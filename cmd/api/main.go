package main

import (
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"safar/internal/auth"
	"safar/internal/backoffice"
	"safar/internal/command"
	"safar/internal/db"
	"safar/internal/domain/pushtokens"
	"safar/internal/domain/tickets"
	"safar/internal/notifications"
	"safar/internal/ratelimiter"
	"safar/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig(logger *zap.SugaredLogger) ratelimiter.Config {
	defaultRequests := 200
	defaultEnabled := false

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil {
			requestsPerTimeFrame = parsedVal
		} else {
			logger.Warnf("invalid RATELIMITER_REQUESTS_COUNT %q, defaulting to %d", val, defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			logger.Warnf("invalid RATE_LIMITER_ENABLED %q, defaulting to %t", val, defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            5 * time.Second,
		Enabled:              enabled,
	}
}

func envInt(logger *zap.SugaredLogger, key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		logger.Warnf("invalid %s %q, defaulting to %d", key, val, fallback)
		return fallback
	}
	return n
}

func envString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	level := zapcore.InfoLevel

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	logger := zap.New(core)

	return logger.Sugar(), nil
}

var version = "0.3.0"

//	@title			Safar Back Office API
//	@description	Admin API for the Safar travel marketplace: listings, bookings, reviews, support tickets and analytics.

//	@contact.name	Safar Platform Team
//	@contact.email	platform@safar.travel

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer access token with the admin role

func main() {
	// Logger
	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Warnw("no .env file loaded, using the process environment", "error", err)
	}

	cfg := config{
		addr:   envString("ADDR", ":8080"),
		env:    envString("ENV", "development"),
		apiURL: os.Getenv("EXTERNAL_URL"),
		db: dbConfig{
			addr:        os.Getenv("DB_ADDR"),
			maxConns:    envInt(logger, "DB_MAX_OPEN_CONNS", 30),
			maxIdleTime: envString("DB_MAX_IDLE_TIME", "15m"),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			token: tokenConfig{
				secret: os.Getenv("AUTH_TOKEN_SECRET"),
				exp:    time.Hour * 24 * 3, // 3 days
				iss:    "Safar",
			},
		},
		tickets: ticketConfig{
			referenceSecret: os.Getenv("TICKET_REFERENCE_SECRET"),
		},
		expo: expoConfig{
			accessToken: os.Getenv("EXPO_ACCESS_TOKEN"),
		},
		rateLimiter: LoadRateLimiterConfig(logger),
	}

	if cfg.auth.token.secret == "" {
		log.Fatal("AUTH_TOKEN_SECRET must be set")
	}

	// Database
	pool, err := db.New(db.Config{
		Addr:        cfg.db.addr,
		MaxConns:    int32(cfg.db.maxConns),
		MaxIdleTime: cfg.db.maxIdleTime,
	})
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	// storage
	container := store.NewContainer(pool)

	// push notifications for booking status changes
	notifier := notifications.NewBookingNotifier(
		notifications.NewExpoSender(cfg.expo.accessToken),
		pushtokens.NewRepository(pool),
	)

	// Rate limiter
	rateLimiter := ratelimiter.New(cfg.rateLimiter)

	// Authenticator
	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
		cfg.auth.token.exp,
	)

	app := &application{
		config:        cfg,
		logger:        logger,
		store:         container,
		backoffice:    backoffice.New(container, logger),
		commands:      command.NewHandler(container, notifier, logger),
		tickets:       tickets.NewReferenceGenerator(cfg.tickets.referenceSecret),
		authenticator: jwtAuthenticator,
		rateLimiter:   rateLimiter,
	}

	// Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		s := pool.Stat()
		return map[string]any{
			"total_conns":    s.TotalConns(),
			"idle_conns":     s.IdleConns(),
			"acquired_conns": s.AcquiredConns(),
			"max_conns":      s.MaxConns(),
		}
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
