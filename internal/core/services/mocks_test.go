package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	embedding []float32
	embedErr  error
	short     bool
	calls     []string
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls = append(m.calls, text)
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedding, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.calls = append(m.calls, texts...)
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	n := len(texts)
	if m.short {
		n--
	}
	result := make([][]float32, n)
	for i := range result {
		result[i] = m.embedding
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int   { return len(m.embedding) }
func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }
func (m *mockEmbeddingService) Close() error      { return nil }

// mockVectorStore implements driven.VectorStore for testing.
type mockVectorStore struct {
	hits        []domain.SearchHit
	recreateErr error
	upsertErr   error
	searchErr   error

	recreated int
	upserted  []domain.Chunk
	upserts   int
	lastK     int
}

func (m *mockVectorStore) Recreate(_ context.Context) error {
	m.recreated++
	return m.recreateErr
}

func (m *mockVectorStore) Upsert(_ context.Context, chunks []domain.Chunk) error {
	m.upserts++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, chunks...)
	return nil
}

func (m *mockVectorStore) Search(_ context.Context, _ []float32, k int) ([]domain.SearchHit, error) {
	m.lastK = k
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorStore) Dimensions() int { return domain.DefaultDimensions }
func (m *mockVectorStore) Close() error    { return nil }

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	response    string
	generateErr error
	prompts     []string
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.response, nil
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }
func (m *mockLLMService) Close() error      { return nil }

// mockConversationStore implements driven.ConversationStore for testing.
type mockConversationStore struct {
	mu        sync.Mutex
	turns     []domain.ConversationTurn
	appendErr error
	listErr   error
}

func (m *mockConversationStore) Append(_ context.Context, sessionID string, role domain.Role, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.turns = append(m.turns, domain.ConversationTurn{
		ID:        int64(len(m.turns) + 1),
		SessionID: sessionID,
		Role:      role,
		Text:      text,
	})
	return nil
}

func (m *mockConversationStore) List(_ context.Context, sessionID string) ([]domain.ConversationTurn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := []domain.ConversationTurn{}
	for _, t := range m.turns {
		if t.SessionID == sessionID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *mockConversationStore) Close() error { return nil }

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompt  string
	loadErr error
}

func (m *mockPromptStore) Load(_ string) (string, error) {
	return m.prompt, m.loadErr
}

func (m *mockPromptStore) Reload() {}

// mockTranscriber implements driven.Transcriber for testing.
type mockTranscriber struct {
	text     string
	err      error
	gotMime  string
	gotAudio []byte
}

func (m *mockTranscriber) Transcribe(_ context.Context, audio []byte, mimeType string) (string, error) {
	m.gotAudio = audio
	m.gotMime = mimeType
	return m.text, m.err
}

func (m *mockTranscriber) Name() string { return "mock-stt" }

// mockSynthesizer implements driven.Synthesizer for testing.
type mockSynthesizer struct {
	audio *domain.Audio
	err   error
	texts []string
}

func (m *mockSynthesizer) Synthesize(_ context.Context, text string) (*domain.Audio, error) {
	m.texts = append(m.texts, text)
	if m.err != nil {
		return nil, m.err
	}
	return m.audio, nil
}

func (m *mockSynthesizer) Name() string { return "mock-tts" }

// mockAudioConverter implements driven.AudioConverter for testing.
type mockAudioConverter struct {
	out []byte
	err error
}

func (m *mockAudioConverter) ToWAV(_ context.Context, _ []byte, _ string) ([]byte, error) {
	return m.out, m.err
}
