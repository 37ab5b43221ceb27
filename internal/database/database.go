// Package database управляет подключением к хранилищу студентов и миграциями схемы.
// Поддерживаются SQLite (по умолчанию) и PostgreSQL.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/Ultrahd-dev/student-roster/internal/config"
	"github.com/Ultrahd-dev/student-roster/internal/database/migrations"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrUnsupportedDriver возвращается для драйвера, отличного от sqlite и postgres
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Store владеет пулом соединений и знает диалект хранилища
type Store struct {
	db     *sql.DB
	driver string
}

// Open открывает хранилище и проверяет подключение
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	if cfg.Driver != DriverSQLite && cfg.Driver != DriverPostgres {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// одно соединение: SQLite сериализует запись, а :memory: живет только в нем
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db, driver: cfg.Driver}

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := store.Ping(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// DB возвращает пул соединений
func (s *Store) DB() *sql.DB {
	return s.db
}

// Driver возвращает имя драйвера
func (s *Store) Driver() string {
	return s.driver
}

// Placeholder возвращает формат плейсхолдеров для построителя запросов
func (s *Store) Placeholder() sq.PlaceholderFormat {
	if s.driver == DriverPostgres {
		return sq.Dollar
	}
	return sq.Question
}

// Session выделяет отдельное соединение на время запроса или запуска.
// Вызывающий обязан закрыть его.
func (s *Store) Session(ctx context.Context) (*sql.Conn, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return conn, nil
}

// Ping проверяет доступность хранилища
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close закрывает пул соединений
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) gooseDialect() string {
	if s.driver == DriverPostgres {
		return "postgres"
	}
	return "sqlite3"
}

func (s *Store) prepareGoose() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(s.gooseDialect()); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	return nil
}

// MigrateUp применяет все непримененные миграции
func (s *Store) MigrateUp() error {
	if err := s.prepareGoose(); err != nil {
		return err
	}
	if err := goose.Up(s.db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// MigrateDown откатывает последнюю миграцию
func (s *Store) MigrateDown() error {
	if err := s.prepareGoose(); err != nil {
		return err
	}
	if err := goose.Down(s.db, "."); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// MigrationStatus выводит статус миграций через логгер goose
func (s *Store) MigrationStatus() error {
	if err := s.prepareGoose(); err != nil {
		return err
	}
	if err := goose.Status(s.db, "."); err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	return nil
}
