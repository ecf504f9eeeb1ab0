package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/imanage/imanage-api/internal/config"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Migrations holds the versioned schema, applied by Migrate and cmd/migrate
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that goose reads
const MigrationsDir = "migrations"

// ErrNotInitialized is returned when a nil handle is passed around
var ErrNotInitialized = errors.New("database is not initialized")

// Open opens the SQLite file described by cfg, creating its directory on
// first run. Foreign keys are enabled on every connection through the DSN.
func Open(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	path := cfg.FilePath()
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// One connection keeps writers serialized and an in-memory database alive
	maxOpen := cfg.MaxOpenConns
	if maxOpen < 1 {
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)
	sqlDB.SetConnMaxLifetime(0)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if log != nil {
		log.Info("Database opened", zap.String("path", path), zap.Int("max_open_conns", maxOpen))
	}
	return db, nil
}

// Migrate applies the embedded goose migrations and then the additive column
// migrations. Both steps are idempotent and run on every startup.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	if db == nil {
		return ErrNotInitialized
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	goose.SetBaseFS(Migrations)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(sqlDB, MigrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, c := range AdditiveColumns {
		added, err := EnsureColumn(db, c)
		if err != nil {
			return err
		}
		if added && log != nil {
			log.Info("Added column", zap.String("table", c.Table), zap.String("column", c.Name))
		}
	}
	return nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database answers a ping
func HealthCheck(db *gorm.DB) error {
	_, err := HealthCheckWithStats(db)
	return err
}

// HealthStats is the subset of sql.DBStats reported by /health/db
type HealthStats struct {
	MaxOpenConnections int
	OpenConnections    int
	InUse              int
	Idle               int
	WaitCount          int64
	WaitDuration       time.Duration
}

// HealthCheckWithStats pings the database and returns pool statistics
func HealthCheckWithStats(db *gorm.DB) (*HealthStats, error) {
	if db == nil {
		return nil, ErrNotInitialized
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	s := sqlDB.Stats()
	return &HealthStats{
		MaxOpenConnections: s.MaxOpenConnections,
		OpenConnections:    s.OpenConnections,
		InUse:              s.InUse,
		Idle:               s.Idle,
		WaitCount:          s.WaitCount,
		WaitDuration:       s.WaitDuration,
	}, nil
}

// Snapshot writes a consistent copy of the live database to dest using
// VACUUM INTO. dest must not exist yet.
func Snapshot(ctx context.Context, db *gorm.DB, dest string) error {
	if db == nil {
		return ErrNotInitialized
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	quoted := "'" + strings.ReplaceAll(dest, "'", "''") + "'"
	if err := db.WithContext(ctx).Exec("VACUUM INTO " + quoted).Error; err != nil {
		return fmt.Errorf("failed to snapshot database: %w", err)
	}
	return nil
}

type gooseLogger struct {
	log *zap.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	if g.log != nil {
		g.log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
	}
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprintf(format, v...))
	if g.log != nil {
		g.log.Error(msg)
	}
	panic(msg)
}
