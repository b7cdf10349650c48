package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/config"
)

// ErrNotFound indicates the referenced item does not exist.
var ErrNotFound = errors.New("item not found")

// timeLayout is RFC 3339 with a fixed nine-digit fraction. RFC3339Nano
// trims trailing fractional zeros, which makes lexicographic order of
// the stored text diverge from chronological order ("...00.5Z" sorts
// after "...00.52Z"); List orders by the raw column, so the stored
// width must be constant.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages item persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the item database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the backing database file.
func (s *Store) Path() string {
	return s.path
}

// Insert persists a new item with status "new" and returns it.
func (s *Store) Insert(ctx context.Context, draft Draft) (*Item, error) {
	if _, ok := typeSet[draft.Type]; !ok {
		return nil, fmt.Errorf("unknown item type %q", draft.Type)
	}
	if len(draft.Tags) == 0 {
		return nil, errors.New("item requires at least one tag")
	}

	timestamp := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO items (type, content, summary, tags, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(draft.Type),
		draft.Content,
		draft.Summary,
		JoinTags(draft.Tags),
		StatusNew,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches an item by identifier. Returns nil when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List returns items filtered by status set (or all items when no status
// is provided), most recently created first. The id tiebreak keeps the
// order stable when background ingestions land within the same instant.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Item, error) {
	var (
		rows *sql.Rows
		err  error
	)

	baseQuery := `SELECT ` + itemColumns + ` FROM items`
	orderClause := ` ORDER BY created_at DESC, id DESC`

	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := makePlaceholders(len(statuses))
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		query := baseQuery + ` WHERE status IN (` + placeholders + `)` + orderClause
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateStatus transitions an item to the given status. The store
// accepts any known status value; transition legality is not enforced
// here. Updating an item to its current status is a no-op state-wise.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status Status) error {
	if _, ok := statusSet[status]; !ok {
		return fmt.Errorf("unknown status %q", status)
	}
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE items SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		time.Now().UTC().Format(timeLayout),
		id,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ConvertToTask archives the source item and inserts the derived task
// item in a single transaction, so a failed insert never leaves an
// archived source without its task.
func (s *Store) ConvertToTask(ctx context.Context, sourceID int64, draft Draft) (*Item, error) {
	if len(draft.Tags) == 0 {
		return nil, errors.New("item requires at least one tag")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin convert tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	timestamp := time.Now().UTC().Format(timeLayout)

	res, err := tx.ExecContext(
		ctx,
		`UPDATE items SET status = ?, updated_at = ? WHERE id = ?`,
		StatusArchived,
		timestamp,
		sourceID,
	)
	if err != nil {
		return nil, fmt.Errorf("archive source item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	insertRes, err := tx.ExecContext(
		ctx,
		`INSERT INTO items (type, content, summary, tags, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(draft.Type),
		draft.Content,
		draft.Summary,
		JoinTags(draft.Tags),
		StatusNew,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task item: %w", err)
	}
	id, err := insertRes.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit convert: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Stats returns a count of items grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM items GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("item stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// Health aggregates item state for diagnostic output.
func (s *Store) Health(ctx context.Context) (HealthSummary, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return HealthSummary{}, err
	}
	health := HealthSummary{}
	for status, count := range stats {
		health.Total += count
		switch status {
		case StatusNew:
			health.New += count
		case StatusArchived:
			health.Archived += count
		case StatusDeleted:
			health.Deleted += count
		}
	}
	return health, nil
}

const itemColumns = "id, type, content, summary, tags, status, created_at, updated_at"

func scanItem(scanner interface{ Scan(dest ...any) error }) (*Item, error) {
	var (
		id         int64
		typeStr    string
		content    sql.NullString
		summary    sql.NullString
		tags       sql.NullString
		statusStr  string
		createdRaw string
		updatedRaw string
	)

	if err := scanner.Scan(
		&id,
		&typeStr,
		&content,
		&summary,
		&tags,
		&statusStr,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	item := &Item{
		ID:      id,
		Type:    ItemType(typeStr),
		Content: content.String,
		Summary: summary.String,
		Tags:    SplitTags(tags.String),
		Status:  Status(statusStr),
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		item.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		item.UpdatedAt = updated
	}
	return item, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
