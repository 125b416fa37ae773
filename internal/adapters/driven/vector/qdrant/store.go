// Package qdrant provides the vector store adapter backed by Qdrant over gRPC.
package qdrant

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/qdrant/go-client/qdrant"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultHost = "localhost"
	DefaultPort = 6334

	// payloadText is the payload key holding chunk text.
	payloadText = "text"
)

// Config holds configuration for the Qdrant store.
type Config struct {
	// Host is the Qdrant host (default: localhost).
	Host string

	// Port is the gRPC port (default: 6334).
	Port int

	// APIKey is sent when set.
	APIKey string

	// UseTLS enables TLS on the gRPC connection.
	UseTLS bool

	// Collection is the collection name (default: sales_docs).
	Collection string

	// Dimensions is the vector size (default: 384).
	Dimensions int
}

// Store is a VectorStore over a single Qdrant collection.
type Store struct {
	client     *qdrant.Client
	collection string
	dimensions int
}

// ParseURL reads a QDRANT_URL style address. The scheme selects TLS and an
// explicit port is kept; REST port 6333 is mapped to the gRPC default.
func ParseURL(raw string) (Config, error) {
	cfg := Config{Host: DefaultHost, Port: DefaultPort}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return cfg, nil
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return cfg, fmt.Errorf("%w: qdrant url: %w", domain.ErrInvalidInput, err)
	}

	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		host = u.Host
		portStr = ""
	}
	if host != "" {
		cfg.Host = host
	}
	if portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return cfg, fmt.Errorf("%w: qdrant port %q", domain.ErrInvalidInput, portStr)
		}
		if port != 6333 {
			cfg.Port = port
		}
	}
	cfg.UseTLS = u.Scheme == "https"
	return cfg, nil
}

// NewStore connects to Qdrant. The connection is lazy; errors surface on first call.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Collection == "" {
		cfg.Collection = domain.DefaultCollection
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = domain.DefaultDimensions
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrVectorStoreUnavailable, err)
	}

	return &Store{
		client:     client,
		collection: cfg.Collection,
		dimensions: cfg.Dimensions,
	}, nil
}

// Recreate drops the collection if it exists and creates it with cosine distance.
func (s *Store) Recreate(ctx context.Context) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("check collection: %w", err)
	}
	if exists {
		if err := s.client.DeleteCollection(ctx, s.collection); err != nil {
			return fmt.Errorf("delete collection: %w", err)
		}
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(s.dimensions),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	return nil
}

// Upsert writes all chunks in one waited request.
func (s *Store) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	wait := true
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points:         toPoints(chunks),
	})
	if err != nil {
		return fmt.Errorf("upsert points: %w", err)
	}
	return nil
}

// Search returns the k nearest points with their text payload.
func (s *Store) Search(ctx context.Context, query []float32, k int) ([]domain.SearchHit, error) {
	limit := uint64(k)
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(query...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("query points: %w", err)
	}
	return toHits(points), nil
}

// Dimensions returns the collection vector size.
func (s *Store) Dimensions() int {
	return s.dimensions
}

// Close closes the gRPC connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// toPoints converts chunks to Qdrant points keyed by their UUID.
func toPoints(chunks []domain.Chunk) []*qdrant.PointStruct {
	points := make([]*qdrant.PointStruct, len(chunks))
	for i, c := range chunks {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(c.ID),
			Vectors: qdrant.NewVectors(c.Vector...),
			Payload: qdrant.NewValueMap(map[string]any{payloadText: c.Text}),
		}
	}
	return points
}

// toHits converts scored points, keeping server order.
func toHits(points []*qdrant.ScoredPoint) []domain.SearchHit {
	hits := make([]domain.SearchHit, 0, len(points))
	for _, p := range points {
		hit := domain.SearchHit{Score: float64(p.GetScore())}
		if id := p.GetId(); id != nil {
			hit.ID = id.GetUuid()
			if hit.ID == "" {
				hit.ID = strconv.FormatUint(id.GetNum(), 10)
			}
		}
		if v, ok := p.GetPayload()[payloadText]; ok {
			hit.Text = v.GetStringValue()
		}
		hits = append(hits, hit)
	}
	return hits
}
