package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rdvdesk/core/internal/config"
)

// NewGormDB opens the store described by cfg. For postgres the connections
// come from a pgx pool; the returned closer releases it.
func NewGormDB(ctx context.Context, cfg *config.DBConfig) (*gorm.DB, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { closeSQL(db) }, nil
	case config.DriverPostgres, "":
		return newPostgres(ctx, cfg)
	default:
		return nil, nil, fmt.Errorf("unknown db driver %q", cfg.Driver)
	}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			// всегда в UTC, дальше уже сами конвертим в нужные таймзоны
			return time.Now().UTC()
		},
	}
}

func newPostgres(ctx context.Context, cfg *config.DBConfig) (*gorm.DB, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("pgx config: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifeTime > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeTime) * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("db ping: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig())
	if err != nil {
		_ = sqlDB.Close()
		pool.Close()
		return nil, nil, fmt.Errorf("gorm open: %w", err)
	}

	return db, func() {
		_ = sqlDB.Close()
		pool.Close()
	}, nil
}

// NewSQLite opens a sqlite store. ":memory:" is pinned to a single
// connection so every query sees the same database.
func NewSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}
	if path == ":memory:" {
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func closeSQL(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
