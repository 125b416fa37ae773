package httpapi

import (
	"context"
	"os"
	"sync"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driving"
)

var (
	_ driving.IngestService       = (*mockIngest)(nil)
	_ driving.AnswerService       = (*mockAnswers)(nil)
	_ driving.SpeechService       = (*mockSpeech)(nil)
	_ driving.VoiceService        = (*mockVoice)(nil)
	_ driving.ConversationService = (*mockConversations)(nil)
)

type mockIngest struct {
	count   int
	err     error
	content []byte
	ext     string
}

func (m *mockIngest) Ingest(_ context.Context, path, ext string) (int, error) {
	m.content, _ = os.ReadFile(path)
	m.ext = ext
	return m.count, m.err
}

type askCall struct {
	sessionID string
	text      string
}

type mockAnswers struct {
	mu     sync.Mutex
	answer string
	err    error
	calls  []askCall
}

func (m *mockAnswers) Answer(_ context.Context, text, _ string) (string, error) {
	return m.answer, m.err
}

func (m *mockAnswers) Ask(_ context.Context, sessionID, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, askCall{sessionID: sessionID, text: text})
	return m.answer, m.err
}

type mockSpeech struct {
	transcript    string
	transcribeErr error
	gotAudio      []byte
	gotMime       string

	dir        string
	audio      []byte
	mediaType  string
	synthErr   error
	synthTexts []string
}

func (m *mockSpeech) Transcribe(_ context.Context, audio []byte, mimeType string) (string, error) {
	m.gotAudio = audio
	m.gotMime = mimeType
	return m.transcript, m.transcribeErr
}

func (m *mockSpeech) SynthesizeToFile(_ context.Context, text string) (string, string, error) {
	m.synthTexts = append(m.synthTexts, text)
	if m.synthErr != nil {
		return "", "", m.synthErr
	}
	f, err := os.CreateTemp(m.dir, "tts-*.wav")
	if err != nil {
		return "", "", err
	}
	defer f.Close()
	if _, err := f.Write(m.audio); err != nil {
		return "", "", err
	}
	return f.Name(), m.mediaType, nil
}

type mockVoice struct {
	reply     *domain.VoiceReply
	err       error
	gotMedia  string
	gotAudio  []byte
	gotSessID string
}

func (m *mockVoice) AskVoice(_ context.Context, sessionID string, audio []byte, mediaType string) (*domain.VoiceReply, error) {
	m.gotSessID = sessionID
	m.gotAudio = audio
	m.gotMedia = mediaType
	return m.reply, m.err
}

type mockConversations struct {
	turns     []domain.ConversationTurn
	err       error
	exported  []domain.TranscriptLine
	exportOut string
}

func (m *mockConversations) History(_ context.Context, _ string) ([]domain.ConversationTurn, error) {
	return m.turns, m.err
}

func (m *mockConversations) Export(_ context.Context, lines []domain.TranscriptLine) (string, error) {
	m.exported = lines
	return m.exportOut, m.err
}
