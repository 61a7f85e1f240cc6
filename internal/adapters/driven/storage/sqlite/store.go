package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mukesh2006/medic/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/mukesh2006/medic/internal/adapters/driven/storage/views"
	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store is a SQLite-backed driven.DocumentStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.medic/data/medic.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".medic", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "medic.db")

	// WAL lets readers proceed while a batch is being written
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Get retrieves a document by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT rev, body FROM documents WHERE id = ?`, id)

	var rev, body string
	if err := row.Scan(&rev, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	return &domain.Document{ID: id, Rev: rev, Body: json.RawMessage(body)}, nil
}

// BulkWrite stores each document in its own transaction.
func (s *Store) BulkWrite(ctx context.Context, docs []domain.Document) ([]domain.WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]domain.WriteResult, 0, len(docs))
	for _, doc := range docs {
		res, err := s.write(ctx, doc)
		if err != nil {
			// Context errors abort the rest of the batch; earlier
			// documents stay written and are reported.
			if ctx.Err() != nil {
				return results, err
			}
			res = views.Failed(doc.ID, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *Store) write(ctx context.Context, doc domain.Document) (domain.WriteResult, error) {
	doc, err := views.Prepare(doc)
	if err != nil {
		return domain.WriteResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.WriteResult{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var stored string
	err = tx.QueryRowContext(ctx, `SELECT rev FROM documents WHERE id = ?`, doc.ID).Scan(&stored)
	exists := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.WriteResult{}, fmt.Errorf("reading revision: %w", err)
	}

	if res, ok := views.CheckRev(doc.ID, doc.Rev, stored, exists); !ok {
		return res, nil
	}

	saved, err := views.WithRev(doc, views.NextRev(stored))
	if err != nil {
		return domain.WriteResult{}, err
	}
	rows, err := views.Rows(saved)
	if err != nil {
		return domain.WriteResult{}, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, rev, type, body, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			rev = excluded.rev,
			type = excluded.type,
			body = excluded.body,
			updated_at = excluded.updated_at
	`, saved.ID, saved.Rev, docType(saved), string(saved.Body), time.Now().UTC())
	if err != nil {
		return domain.WriteResult{}, fmt.Errorf("saving document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM view_rows WHERE doc_id = ?`, saved.ID); err != nil {
		return domain.WriteResult{}, fmt.Errorf("clearing view rows: %w", err)
	}
	for _, row := range rows {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO view_rows (view, key, doc_id, value) VALUES (?, ?, ?, ?)
		`, row.Index, row.Key, saved.ID, string(row.Value))
		if err != nil {
			return domain.WriteResult{}, fmt.Errorf("saving view row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.WriteResult{}, fmt.Errorf("committing document: %w", err)
	}
	return domain.WriteResult{ID: saved.ID, Rev: saved.Rev, OK: true}, nil
}

// QueryByKey returns the rows of index matching key.
func (s *Store) QueryByKey(ctx context.Context, index, key string) ([]domain.IndexRow, error) {
	if !views.IsKnownIndex(index) {
		return nil, fmt.Errorf("%w: unknown index %q", domain.ErrInvalidInput, index)
	}

	query := `SELECT doc_id, key, value FROM view_rows WHERE view = ?`
	args := []any{index}
	if key != "" {
		query += ` AND key = ?`
		args = append(args, key)
	}
	query += ` ORDER BY key, doc_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", index, err)
	}
	defer rows.Close()

	var out []domain.IndexRow
	for rows.Next() {
		var r domain.IndexRow
		var value string
		if err := rows.Scan(&r.ID, &r.Key, &value); err != nil {
			return nil, fmt.Errorf("scanning view row: %w", err)
		}
		r.Value = json.RawMessage(value)
		out = append(out, r)
	}
	return out, rows.Err()
}

// docType reads the type key used for the documents.type column.
func docType(doc domain.Document) string {
	var probe struct {
		Type string `json:"type"`
	}
	_ = json.Unmarshal(doc.Body, &probe)
	return probe.Type
}
