package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/docrender/internal/logging"
	loamstore "github.com/aretw0/docrender/pkg/adapters/loam"
	"github.com/aretw0/docrender/pkg/adapters/memory"
	redisstore "github.com/aretw0/docrender/pkg/adapters/redis"
	"github.com/aretw0/docrender/pkg/persistence/middleware"
	"github.com/aretw0/docrender/pkg/ports"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvStoreDir  = "DOCRENDER_DIR"
	EnvRedisAddr = "DOCRENDER_REDIS_ADDR"
	EnvRedisDB   = "DOCRENDER_REDIS_DB"
	EnvLogLevel  = "DOCRENDER_LOG_LEVEL"
	EnvMaskKeys  = "DOCRENDER_MASK_KEYS"
)

// Config holds the settings shared by the commands.
// Flags override the environment; an unset store selects memory.
type Config struct {
	// Dir selects the Loam store rooted at Dir.
	Dir string
	// RedisAddr selects the Redis store. It takes precedence over Dir.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// MaskKeys are patterns of prop and relationship data keys masked on save.
	MaskKeys []string

	LogLevel string
	Debug    bool
}

// ConfigFromEnv returns the configuration found in the environment.
func ConfigFromEnv() Config {
	cfg := Config{
		Dir:       os.Getenv(EnvStoreDir),
		RedisAddr: os.Getenv(EnvRedisAddr),
		LogLevel:  os.Getenv(EnvLogLevel),
	}
	if db, err := strconv.Atoi(os.Getenv(EnvRedisDB)); err == nil {
		cfg.RedisDB = db
	}
	for _, key := range strings.Split(os.Getenv(EnvMaskKeys), ",") {
		if key = strings.TrimSpace(key); key != "" {
			cfg.MaskKeys = append(cfg.MaskKeys, key)
		}
	}
	return cfg
}

// Logger builds the application logger. Debug forces the debug level.
func (c Config) Logger() (*slog.Logger, error) {
	if c.Debug {
		return logging.New(slog.LevelDebug), nil
	}
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// StoreKind names the store Config selects.
func (c Config) StoreKind() string {
	switch {
	case c.RedisAddr != "":
		return "redis"
	case c.Dir != "":
		return "loam"
	}
	return "memory"
}

// OpenStore opens the selected document store. Saved text is sanitized, keys
// matching MaskKeys are masked and writes to one document are serialized, across
// processes when the store is Redis. The returned function releases the store.
func OpenStore(ctx context.Context, c Config, logger *slog.Logger) (ports.DocumentStore, func() error, error) {
	store, closeFn, err := openBackend(ctx, c, logger)
	if err != nil {
		return nil, nil, err
	}
	mws := []middleware.Middleware{middleware.NewSanitizeMiddleware(0)}
	if len(c.MaskKeys) > 0 {
		mws = append(mws, middleware.NewPIIMiddleware(c.MaskKeys))
	}
	lockOpts := []middleware.LockOption{middleware.WithLockLogger(logger)}
	if rs, ok := store.(*redisstore.Store); ok {
		lockOpts = append(lockOpts, middleware.WithLocker(rs.Locker()))
	}
	mws = append(mws, middleware.NewLockMiddleware(lockOpts...))
	return middleware.Chain(store, mws...), closeFn, nil
}

func openBackend(ctx context.Context, c Config, logger *slog.Logger) (ports.DocumentStore, func() error, error) {
	noop := func() error { return nil }

	switch c.StoreKind() {
	case "redis":
		var opts []redisstore.Option
		if c.RedisPrefix != "" {
			opts = append(opts, redisstore.WithPrefix(c.RedisPrefix))
		}
		store := redisstore.New(c.RedisAddr, c.RedisPassword, c.RedisDB, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", c.RedisAddr, err)
		}
		logger.Info("Using Redis store", "addr", c.RedisAddr, "db", c.RedisDB)
		return store, store.Close, nil
	case "loam":
		if err := os.MkdirAll(c.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create store directory: %w", err)
		}
		// Versioning and the dev sandbox would write outside the directory the user named.
		store, err := loamstore.Open(c.Dir, loam.WithVersioning(false), loam.WithForceTemp(false))
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using Loam store", "dir", c.Dir)
		return store, noop, nil
	}
	logger.Debug("Using in-memory store")
	return memory.NewStore(), noop, nil
}
