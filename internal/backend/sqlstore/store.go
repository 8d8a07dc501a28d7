// Package sqlstore implements service.Service on a SQL database.
// SQLite (pure Go, modernc.org/sqlite) is the default local store; MySQL is
// supported for a shared database.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"taskman/internal/service"
)

// Supported drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

const createSQLite = `CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    category TEXT NOT NULL,
    priority INTEGER NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT 0
)`

const createMySQL = `CREATE TABLE IF NOT EXISTS tasks (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    title VARCHAR(255) NOT NULL,
    category VARCHAR(64) NOT NULL,
    priority INT NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT FALSE
)`

// Store implements service.Service using database/sql.
type Store struct {
	db     *sql.DB
	driver string
}

var _ service.Service = (*Store)(nil)

// Open connects to the database and creates the tasks table if needed.
// For SQLite, dsn is a file path.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if driver != DriverSQLite && driver != DriverMySQL {
		return nil, fmt.Errorf("unsupported sql driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// One connection serializes writers and avoids "database is locked".
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	ddl := createSQLite
	if s.driver == DriverMySQL {
		ddl = createMySQL
	}
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// ListTasks returns all tasks ordered by ID.
func (s *Store) ListTasks(ctx context.Context) ([]service.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, category, priority, completed FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	result := []service.Task{}
	for rows.Next() {
		var t service.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Category, &t.Priority, &t.Completed); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return result, nil
}

// CreateTask inserts a new open task.
func (s *Store) CreateTask(ctx context.Context, task service.Task) error {
	task.Title = strings.TrimSpace(task.Title)
	if err := task.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (title, category, priority, completed) VALUES (?, ?, ?, 0)`,
		task.Title, task.Category, task.Priority)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// ToggleTask inverts the completed flag.
func (s *Store) ToggleTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET completed = NOT completed WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}
	if n == 0 {
		return service.NotFound(id)
	}
	return nil
}
