package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/Gdrag182/weather-bot/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string, log *zap.Logger) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// CreateReminder inserts a new active reminder row. The id is assigned
// by SQLite and never reused for the lifetime of the database.
func (r *SQLiteRepo) CreateReminder(ctx context.Context, userID, chatID int64, city, reminderTime, days string) error {
	if !domain.IsValidTime(reminderTime) {
		return fmt.Errorf("%w: %q", ErrInvalidTime, reminderTime)
	}
	// The dispatcher matches against two-digit HH:MM; a "9:05" row
	// would otherwise never fire.
	reminderTime = domain.NormalizeTime(reminderTime)
	if days == "" {
		days = domain.DaysEveryday
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (user_id, chat_id, city, reminder_time, days, is_active)
		VALUES (?, ?, ?, ?, ?, 1)`,
		userID, chatID, city, reminderTime, days,
	)
	return err
}

// ListActive returns every reminder with is_active=1, in id order.
func (r *SQLiteRepo) ListActive(ctx context.Context) ([]domain.Reminder, error) {
	return r.list(ctx, `
		SELECT id, user_id, chat_id, city, reminder_time, days, is_active
		FROM reminders
		WHERE is_active = 1`)
}

// ListByUser returns one user's active reminders, in id order.
func (r *SQLiteRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Reminder, error) {
	return r.list(ctx, `
		SELECT id, user_id, chat_id, city, reminder_time, days, is_active
		FROM reminders
		WHERE user_id = ? AND is_active = 1`,
		userID)
}

func (r *SQLiteRepo) list(ctx context.Context, query string, args ...any) ([]domain.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Reminder
	for rows.Next() {
		var (
			rem       domain.Reminder
			activeInt int
		)
		if err := rows.Scan(
			&rem.ID, &rem.UserID, &rem.ChatID, &rem.City, &rem.Time, &rem.Days, &activeInt,
		); err != nil {
			return nil, err
		}
		rem.IsActive = activeInt != 0
		res = append(res, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteReminder marks a reminder inactive. Rows are never physically
// removed; an already-inactive or unknown id is a no-op.
func (r *SQLiteRepo) DeleteReminder(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE reminders
		SET is_active = 0
		WHERE id = ?`,
		id,
	)
	return err
}
