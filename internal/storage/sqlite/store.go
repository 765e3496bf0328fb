package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"todolists/internal/models"
	"todolists/internal/todo"
)

//go:embed migrations/*.sql
var migrations embed.FS

const maxTitleLength = 200

// Store wraps access to the SQLite database and implements todo.Service.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ todo.Service = (*Store)(nil)

// Open initializes a new SQLite store and runs the required migrations.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	s := &Store{db: conn, logger: logger}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) migrate() error {
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// ListAll returns every live list with its items in position order, plus the
// priority levels.
func (s *Store) ListAll(ctx context.Context) (todo.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title FROM lists WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return todo.Snapshot{}, fmt.Errorf("list lists: %w", err)
	}

	snap := todo.Snapshot{PriorityLevels: append([]models.PriorityLevel(nil), models.PriorityLevels...)}
	byID := map[int64]*models.List{}
	for rows.Next() {
		l := &models.List{Items: []*models.Item{}}
		if err := rows.Scan(&l.ID, &l.Title); err != nil {
			rows.Close()
			return todo.Snapshot{}, fmt.Errorf("scan list: %w", err)
		}
		snap.Lists = append(snap.Lists, l)
		byID[l.ID] = l
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return todo.Snapshot{}, err
	}
	// Close before the next query; a single connection is shared.
	rows.Close()

	items, err := s.db.QueryContext(ctx, `SELECT id, list_id, title, done, priority, note, color, tag
        FROM items ORDER BY list_id, position, id`)
	if err != nil {
		return todo.Snapshot{}, fmt.Errorf("list items: %w", err)
	}
	defer items.Close()

	for items.Next() {
		it := &models.Item{}
		if err := items.Scan(&it.ID, &it.ListID, &it.Title, &it.Done, &it.Priority, &it.Note, &it.Color, &it.Tag); err != nil {
			return todo.Snapshot{}, fmt.Errorf("scan item: %w", err)
		}
		if l, ok := byID[it.ListID]; ok {
			l.Items = append(l.Items, it)
		}
	}
	return snap, items.Err()
}

// CountLists counts lists, optionally including soft-deleted ones.
func (s *Store) CountLists(ctx context.Context, includeDeleted bool) (int, error) {
	query := `SELECT COUNT(*) FROM lists WHERE deleted_at IS NULL`
	if includeDeleted {
		query = `SELECT COUNT(*) FROM lists`
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count lists: %w", err)
	}
	return n, nil
}

func notFound(kind string, id int64) error {
	return &todo.NotFoundError{Kind: kind, ID: id}
}
