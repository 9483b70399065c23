package jobsapp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"inclusive_jobs/internal/config"
	"inclusive_jobs/internal/database"
	"inclusive_jobs/internal/session"
	pgstore "inclusive_jobs/internal/store/postgres"
	redisstore "inclusive_jobs/internal/store/redis"
	sqlitestore "inclusive_jobs/internal/store/sqlite"
)

const storeConnectTimeout = 5 * time.Second

// openStore открывает бэкенд сессии, выбранный в cfg. Функция закрытия никогда не nil.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (session.Store, func() error, error) {
	noop := func() error { return nil }
	ctx, cancel := context.WithTimeout(ctx, storeConnectTimeout)
	defer cancel()

	switch cfg.SessionStore {
	case config.StoreMemory:
		logger.Warn("session store is in-memory; the session ends with the process")
		return session.NewMemoryStore(), noop, nil
	case config.StoreSQLite:
		store, err := sqlitestore.Open(ctx, cfg.SessionSQLitePath)
		if err != nil {
			return nil, noop, err
		}
		logger.Debug("session store opened", slog.String("backend", "sqlite"), slog.String("path", cfg.SessionSQLitePath))
		return store, store.Close, nil
	case config.StoreRedis:
		store, err := redisstore.Connect(ctx, cfg.RedisURL, cfg.SessionNamespace)
		if err != nil {
			return nil, noop, err
		}
		logger.Debug("session store opened", slog.String("backend", "redis"), slog.String("namespace", cfg.SessionNamespace))
		return store, store.Close, nil
	case config.StorePostgres:
		db, err := database.OpenPostgres(ctx, database.PostgresConfig{
			Driver:       cfg.DBDriver,
			DSN:          cfg.DatabaseURL,
			MaxOpenConns: 2,
			MaxIdleConns: 1,
			PingTimeout:  storeConnectTimeout,
		}, logger)
		if err != nil {
			return nil, noop, err
		}
		store := pgstore.NewSessionStore(db, cfg.SessionNamespace)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		logger.Debug("session store opened", slog.String("backend", "postgres"), slog.String("driver", cfg.DBDriver))
		return store, db.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}
