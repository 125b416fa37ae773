package cli

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/voxrag/internal/config"
	"github.com/custodia-labs/voxrag/internal/core/domain"
)

type mockIngestService struct {
	mu    sync.Mutex
	count int
	err   error
	paths []string
}

func (m *mockIngestService) Ingest(_ context.Context, path, _ string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths = append(m.paths, path)
	return m.count, m.err
}

func (m *mockIngestService) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.paths)
}

type mockRetrieverService struct {
	chunks []string
}

func (m *mockRetrieverService) Retrieve(_ context.Context, _ string, _ int) ([]string, error) {
	return m.chunks, nil
}

type mockAnswerService struct {
	answer    string
	err       error
	sessionID string
	text      string
}

func (m *mockAnswerService) Answer(_ context.Context, text, _ string) (string, error) {
	return m.answer, m.err
}

func (m *mockAnswerService) Ask(_ context.Context, sessionID, text string) (string, error) {
	m.sessionID = sessionID
	m.text = text
	return m.answer, m.err
}

type mockSpeechService struct {
	path string
	err  error
	text string
}

func (m *mockSpeechService) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return "", m.err
}

func (m *mockSpeechService) SynthesizeToFile(_ context.Context, text string) (string, string, error) {
	m.text = text
	return m.path, domain.MediaTypeWAV, m.err
}

type mockVoiceService struct{}

func (m *mockVoiceService) AskVoice(_ context.Context, _ string, _ []byte, _ string) (*domain.VoiceReply, error) {
	return &domain.VoiceReply{}, nil
}

type mockConversationService struct {
	turns []domain.ConversationTurn
	err   error
}

func (m *mockConversationService) History(_ context.Context, _ string) ([]domain.ConversationTurn, error) {
	return m.turns, m.err
}

func (m *mockConversationService) Export(_ context.Context, _ []domain.TranscriptLine) (string, error) {
	return "", m.err
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	ingest        *mockIngestService
	answers       *mockAnswerService
	speech        *mockSpeechService
	conversations *mockConversationService
}

var errBootstrapDisabled = errors.New("services not configured")

// setupTestServices installs mocks for every service and returns a cleanup.
func setupTestServices() (*testServices, func()) {
	oldSettings := settings
	oldIngest := ingestService
	oldRetriever := retrieverService
	oldAnswers := answerService
	oldSpeech := speechService
	oldVoice := voiceService
	oldConversations := conversationService
	oldBootstrap := bootstrap

	ts := &testServices{
		ingest:        &mockIngestService{count: 3},
		answers:       &mockAnswerService{answer: "Our Pro plan costs $40 per seat."},
		speech:        &mockSpeechService{path: "output/tts-1.wav"},
		conversations: &mockConversationService{},
	}

	settings = config.Defaults()
	ingestService = ts.ingest
	retrieverService = &mockRetrieverService{}
	answerService = ts.answers
	speechService = ts.speech
	voiceService = &mockVoiceService{}
	conversationService = ts.conversations
	bootstrap = func(context.Context) error { return errBootstrapDisabled }

	return ts, func() {
		settings = oldSettings
		ingestService = oldIngest
		retrieverService = oldRetriever
		answerService = oldAnswers
		speechService = oldSpeech
		voiceService = oldVoice
		conversationService = oldConversations
		bootstrap = oldBootstrap
	}
}

// disableServices clears every service so commands must bootstrap.
func disableServices() func() {
	_, cleanup := setupTestServices()
	answerService = nil
	return cleanup
}
