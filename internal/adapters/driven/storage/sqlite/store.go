package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
	"github.com/custodia-labs/voxrag/internal/logger"
)

//go:embed schema/*.sql
var schemaFS embed.FS

var _ driven.ConversationStore = (*Store)(nil)

// DefaultFileName is used when NewStore gets an empty path.
const DefaultFileName = "conversation.db"

const dsnPragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// Store is the SQLite conversation log.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore opens (or creates) the database at path and brings its schema
// up to date.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = DefaultFileName
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path, now: func() time.Time { return time.Now().UTC() }}
	if err := s.upgrade(context.Background(), schemaFS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("upgrading schema: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SchemaVersion reports PRAGMA user_version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}

// upgrade applies every schema/NNN_*.sql file numbered above the current
// user_version, each in its own transaction.
func (s *Store) upgrade(ctx context.Context, fsys fs.FS) error {
	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	names, err := fs.Glob(fsys, "schema/*.sql")
	if err != nil {
		return err
	}
	slices.Sort(names)

	for _, name := range names {
		prefix, _, _ := strings.Cut(filepath.Base(name), "_")
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return fmt.Errorf("schema file %s: no numeric prefix", name)
		}
		if version <= current {
			continue
		}

		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if err := s.applyVersion(ctx, version, string(script)); err != nil {
			return fmt.Errorf("applying %s: %w", name, err)
		}
		logger.Debug("sqlite: schema now at version %d", version)
		current = version
	}
	return nil
}

func (s *Store) applyVersion(ctx context.Context, version int, script string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	// PRAGMA does not take bound parameters.
	if _, err := tx.ExecContext(ctx, "PRAGMA user_version = "+strconv.Itoa(version)); err != nil {
		return err
	}
	return tx.Commit()
}

// Append stores one turn stamped with the current UTC time.
func (s *Store) Append(ctx context.Context, sessionID string, role domain.Role, text string) error {
	if !role.IsValid() {
		return fmt.Errorf("%w: role %q", domain.ErrInvalidInput, role)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (session_id, role, text, timestamp) VALUES (?, ?, ?, ?)`,
		sessionID, string(role), text, s.now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting turn: %w", err)
	}
	return nil
}

// List returns the turns of a session in insertion order.
func (s *Store) List(ctx context.Context, sessionID string) ([]domain.ConversationTurn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, role, text, timestamp FROM conversations WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying turns: %w", err)
	}
	defer rows.Close()

	turns := []domain.ConversationTurn{}
	for rows.Next() {
		var (
			turn     domain.ConversationTurn
			role, ts string
		)
		if err := rows.Scan(&turn.ID, &turn.SessionID, &role, &turn.Text, &ts); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		if turn.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", ts, err)
		}
		turn.Role = domain.Role(role)
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}
