// Package pgvector provides a vector store adapter backed by PostgreSQL
// with the pgvector extension.
package pgvector

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config holds configuration for the pgvector store.
type Config struct {
	// DSN is the PostgreSQL connection string (required).
	DSN string

	// Collection is the table name (default: sales_docs).
	Collection string

	// Dimensions is the vector size (default: 384).
	Dimensions int

	// MaxConns caps the pool size when positive.
	MaxConns int32
}

// Store keeps chunks in one table and ranks them by cosine distance.
type Store struct {
	pool       *pgxpool.Pool
	table      string
	dimensions int
}

// NewStore opens a connection pool. The pool connects lazily.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("%w: pgvector DSN not set", domain.ErrVectorStoreUnavailable)
	}
	if cfg.Collection == "" {
		cfg.Collection = domain.DefaultCollection
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = domain.DefaultDimensions
	}
	if !identPattern.MatchString(cfg.Collection) {
		return nil, fmt.Errorf("%w: collection name %q", domain.ErrInvalidInput, cfg.Collection)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrVectorStoreUnavailable, err)
	}

	return &Store{pool: pool, table: cfg.Collection, dimensions: cfg.Dimensions}, nil
}

// Recreate drops and recreates the chunk table.
func (s *Store) Recreate(ctx context.Context) error {
	stmts := recreateStatements(s.table, s.dimensions)
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("recreate %s: %w", s.table, err)
		}
	}
	return nil
}

// Upsert writes chunks in a single batch.
func (s *Store) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (id, embedding, text) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET embedding = EXCLUDED.embedding, text = EXCLUDED.text`,
		s.table)

	batch := &pgx.Batch{}
	for _, c := range chunks {
		if len(c.Vector) != s.dimensions {
			return fmt.Errorf("%w: chunk %s has %d values, want %d",
				domain.ErrDimensionMismatch, c.ID, len(c.Vector), s.dimensions)
		}
		batch.Queue(query, c.ID, pgvector.NewVector(c.Vector), c.Text)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert chunks: %w", err)
	}
	return nil
}

// Search returns the k nearest chunks with score 1 - cosine distance.
func (s *Store) Search(ctx context.Context, query []float32, k int) ([]domain.SearchHit, error) {
	sql := fmt.Sprintf(
		`SELECT id::text, text, 1 - (embedding <=> $1) AS score
		 FROM %s ORDER BY embedding <=> $1 LIMIT $2`,
		s.table)

	rows, err := s.pool.Query(ctx, sql, pgvector.NewVector(query), k)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()

	hits := []domain.SearchHit{}
	for rows.Next() {
		var hit domain.SearchHit
		if err := rows.Scan(&hit.ID, &hit.Text, &hit.Score); err != nil {
			return nil, fmt.Errorf("scan hit: %w", err)
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hits: %w", err)
	}
	return hits, nil
}

// Dimensions returns the vector size.
func (s *Store) Dimensions() int {
	return s.dimensions
}

// Close closes the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func recreateStatements(table string, dimensions int) []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table),
		fmt.Sprintf(`CREATE TABLE %s (
			id uuid PRIMARY KEY,
			embedding vector(%d) NOT NULL,
			text text NOT NULL
		)`, table, dimensions),
	}
}
