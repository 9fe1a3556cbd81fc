package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	models "github.com/ERRORIK404/task_calculator/pkg/db_models"
)

type DB struct {
	DB *gorm.DB
}

// InitDB opens the SQLite store at dsn and migrates the schema. The pool is
// limited to one connection so that ":memory:" databases keep their data for
// the lifetime of the handle.
func InitDB(dsn string, log *slog.Logger) (*DB, error) {
	if log == nil {
		log = slog.Default()
	}
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(slogWriter{log}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		_ = closeHandle(gdb)
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	db := &DB{DB: gdb}
	if err := gdb.Exec(`PRAGMA foreign_keys = ON;`).Error; err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragma: %w", err)
	}
	if err := gdb.AutoMigrate(&models.Task{}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (h *DB) Ping(ctx context.Context) error {
	sqlDB, err := h.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (h *DB) Close() error {
	return closeHandle(h.DB)
}

// closeHandle closes the pool behind gdb, falling back to the raw ConnPool
// when gorm cannot hand out a *sql.DB.
func closeHandle(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err == nil {
		return sqlDB.Close()
	}
	if c, ok := gdb.ConnPool.(io.Closer); ok {
		return c.Close()
	}
	return err
}

// slogWriter routes gorm's printf-style logger into slog.
type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...interface{}) {
	w.log.Warn(fmt.Sprintf(format, args...), "component", "gorm")
}
