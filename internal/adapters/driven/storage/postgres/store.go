// Package postgres provides a PostgreSQL conversation log using pgx.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ConversationStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
    id BIGSERIAL PRIMARY KEY,
    session_id TEXT NOT NULL,
    role TEXT NOT NULL,
    text TEXT NOT NULL,
    timestamp TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversations_session ON conversations(session_id, id);
`

// Store is the PostgreSQL conversation log.
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewStore connects and ensures the conversations table exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL not set", domain.ErrInvalidInput)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &Store{
		pool: pool,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

// Append stores one turn stamped with the current UTC time.
func (s *Store) Append(ctx context.Context, sessionID string, role domain.Role, text string) error {
	if !role.IsValid() {
		return fmt.Errorf("%w: role %q", domain.ErrInvalidInput, role)
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO conversations (session_id, role, text, timestamp) VALUES ($1, $2, $3, $4)`,
		sessionID, string(role), text, s.now(),
	)
	if err != nil {
		return fmt.Errorf("inserting turn: %w", err)
	}
	return nil
}

// List returns every turn of a session ordered by id.
func (s *Store) List(ctx context.Context, sessionID string) ([]domain.ConversationTurn, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, session_id, role, text, timestamp FROM conversations WHERE session_id = $1 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying turns: %w", err)
	}
	defer rows.Close()

	turns := []domain.ConversationTurn{}
	for rows.Next() {
		var turn domain.ConversationTurn
		var role string
		if err := rows.Scan(&turn.ID, &turn.SessionID, &role, &turn.Text, &turn.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		turn.Role = domain.Role(role)
		turn.Timestamp = turn.Timestamp.UTC()
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating turns: %w", err)
	}
	return turns, nil
}

// Close closes the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
