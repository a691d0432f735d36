package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/misterclayt0n/ironlog/internal/config"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

var ErrTemplateNotFound = errors.New("template not found")

// Storage is the relational side of the app: the permanent record of finished
// workouts and the template catalog. It is either a remote libsql (Turso)
// database or a local SQLite file.
type Storage struct {
	DB *sql.DB
}

func Open(ctx context.Context, cfg config.DBConfig) (*Storage, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = config.DriverSQLite
	}

	db, err := sql.Open(driver, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("Failed to open db: %w", err)
	}
	if driver == config.DriverSQLite {
		// One writer at a time; also keeps ":memory:" on a single connection.
		db.SetMaxOpenConns(1)
	}

	st, err := New(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// New wraps an open database and creates the schema if needed.
func New(ctx context.Context, db *sql.DB) (*Storage, error) {
	if err := InitializeDB(ctx, db); err != nil {
		return nil, fmt.Errorf("Failed to initialize database: %w", err)
	}
	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS workouts (
        id TEXT PRIMARY KEY,
        template_id TEXT,            -- Weak reference, the template may be gone.
        start_time INTEGER NOT NULL, -- Unix ms.
        completed_at INTEGER NOT NULL,
        total_volume REAL NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS workout_exercises (
        id TEXT PRIMARY KEY,
        workout_id TEXT NOT NULL,
        position INTEGER NOT NULL,
        name TEXT NOT NULL,
        FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE
    )`,
	`CREATE INDEX IF NOT EXISTS workout_exercises_name ON workout_exercises (name COLLATE NOCASE)`,
	`CREATE TABLE IF NOT EXISTS workout_sets (
        id TEXT PRIMARY KEY,
        exercise_id TEXT NOT NULL,
        set_number INTEGER NOT NULL,
        reps REAL NOT NULL,
        weight REAL NOT NULL,
        completed INTEGER NOT NULL,
        completed_at INTEGER,
        FOREIGN KEY (exercise_id) REFERENCES workout_exercises(id) ON DELETE CASCADE
    )`,
	`CREATE TABLE IF NOT EXISTS templates (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL UNIQUE,
        created_at INTEGER NOT NULL,
        exercises TEXT NOT NULL -- JSON [{name, defaultSets}].
    )`,
}

func InitializeDB(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
