package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/rest/pathvar"

	"github.com/custodia-labs/voxrag/internal/core/domain"
)

type upload struct {
	field    string
	filename string
	mime     string
	data     []byte
}

// multipartRequest builds a multipart POST with the given fields and files.
func multipartRequest(t *testing.T, target string, fields map[string]string, files ...upload) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		if f.mime != "" {
			h.Set("Content-Type", f.mime)
		}
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestIngest_Success(t *testing.T) {
	ingest := &mockIngest{count: 4}
	h := NewHandler(Services{Ingest: ingest}, t.TempDir())

	req := multipartRequest(t, "/ingest", nil, upload{
		field: "file", filename: "Pricing.PDF", data: []byte("%PDF"),
	})
	rec := httptest.NewRecorder()
	h.Ingest(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp ingestResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 4, resp.IngestedChunks)
	assert.Equal(t, []byte("%PDF"), ingest.content)
	assert.Equal(t, ".pdf", ingest.ext)
}

func TestIngest_Failure(t *testing.T) {
	h := NewHandler(Services{Ingest: &mockIngest{err: domain.ErrNoValidContent}}, t.TempDir())

	req := multipartRequest(t, "/ingest", nil, upload{field: "file", filename: "a.txt", data: []byte("x")})
	rec := httptest.NewRecorder()
	h.Ingest(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp errorResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, domain.ErrNoValidContent.Error(), resp.Error)
}

func TestIngest_MissingFile(t *testing.T) {
	h := NewHandler(Services{Ingest: &mockIngest{}}, t.TempDir())

	req := multipartRequest(t, "/ingest", map[string]string{"other": "x"})
	rec := httptest.NewRecorder()
	h.Ingest(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAsk_Text(t *testing.T) {
	answers := &mockAnswers{answer: "It costs $40."}
	h := NewHandler(Services{Answers: answers, Speech: &mockSpeech{}}, t.TempDir())

	req := multipartRequest(t, "/ask", map[string]string{"session_id": "s1", "text": "price?"})
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp textResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "It costs $40.", resp.Text)
	require.Len(t, answers.calls, 1)
	assert.Equal(t, askCall{sessionID: "s1", text: "price?"}, answers.calls[0])
}

func TestAsk_URLEncodedForm(t *testing.T) {
	answers := &mockAnswers{answer: "ok"}
	h := NewHandler(Services{Answers: answers, Speech: &mockSpeech{}}, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader("session_id=s2&text=hello"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, answers.calls, 1)
	assert.Equal(t, "hello", answers.calls[0].text)
}

func TestAsk_AudioReplacesText(t *testing.T) {
	answers := &mockAnswers{answer: "answer"}
	speech := &mockSpeech{transcript: "spoken question"}
	h := NewHandler(Services{Answers: answers, Speech: speech}, t.TempDir())

	req := multipartRequest(t, "/ask",
		map[string]string{"session_id": "s1", "text": "typed question"},
		upload{field: "audio", filename: "q.wav", mime: "audio/wav", data: []byte("RIFF")},
	)
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []byte("RIFF"), speech.gotAudio)
	assert.Equal(t, "audio/wav", speech.gotMime)
	require.Len(t, answers.calls, 1)
	assert.Equal(t, "spoken question", answers.calls[0].text)
}

func TestAsk_NoInput(t *testing.T) {
	answers := &mockAnswers{}
	h := NewHandler(Services{Answers: answers, Speech: &mockSpeech{}}, t.TempDir())

	req := multipartRequest(t, "/ask", map[string]string{"session_id": "s1"})
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "no input", resp.Error)
	assert.Empty(t, answers.calls)
}

func TestAsk_EmptyTranscriptIsNoInput(t *testing.T) {
	answers := &mockAnswers{}
	h := NewHandler(Services{Answers: answers, Speech: &mockSpeech{transcript: "  "}}, t.TempDir())

	req := multipartRequest(t, "/ask", map[string]string{"session_id": "s1"},
		upload{field: "audio", filename: "q.wav", data: []byte("RIFF")})
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, answers.calls)
}

func TestAsk_MissingSession(t *testing.T) {
	h := NewHandler(Services{Answers: &mockAnswers{}, Speech: &mockSpeech{}}, t.TempDir())

	req := multipartRequest(t, "/ask", map[string]string{"text": "hello"})
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorResponse
	decodeJSON(t, rec, &resp)
	assert.NotEmpty(t, resp.Error)
}

func TestAsk_TranscriptionFailure(t *testing.T) {
	speech := &mockSpeech{transcribeErr: errors.New("deepgram status 401")}
	h := NewHandler(Services{Answers: &mockAnswers{}, Speech: speech}, t.TempDir())

	req := multipartRequest(t, "/ask", map[string]string{"session_id": "s1"},
		upload{field: "audio", filename: "q.wav", data: []byte("RIFF")})
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTTS_StreamsAudio(t *testing.T) {
	audio := bytes.Repeat([]byte{1, 2, 3}, 5000)
	speech := &mockSpeech{dir: t.TempDir(), audio: audio, mediaType: domain.MediaTypeWAV}
	h := NewHandler(Services{Speech: speech}, speech.dir)
	h.chunkSize = 1000

	req := httptest.NewRequest(http.MethodGet, "/tts?text=hello+there", nil)
	rec := httptest.NewRecorder()
	h.TTS(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.MediaTypeWAV, rec.Header().Get("Content-Type"))
	assert.Equal(t, audio, rec.Body.Bytes())
	assert.Equal(t, []string{"hello there"}, speech.synthTexts)
}

func TestTTS_MissingText(t *testing.T) {
	h := NewHandler(Services{Speech: &mockSpeech{}}, t.TempDir())

	rec := httptest.NewRecorder()
	h.TTS(rec, httptest.NewRequest(http.MethodGet, "/tts", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTTS_SynthesisFailure(t *testing.T) {
	h := NewHandler(Services{Speech: &mockSpeech{synthErr: domain.ErrSynthesizerUnavailable}}, t.TempDir())

	rec := httptest.NewRecorder()
	h.TTS(rec, httptest.NewRequest(http.MethodGet, "/tts?text=hi", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSTT(t *testing.T) {
	tests := []struct {
		name  string
		field string
	}{
		{name: "audio field", field: "audio"},
		{name: "file field", field: "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			speech := &mockSpeech{transcript: "hello world"}
			h := NewHandler(Services{Speech: speech}, t.TempDir())

			req := multipartRequest(t, "/stt", nil,
				upload{field: tt.field, filename: "a.webm", mime: "audio/webm", data: []byte("webm")})
			rec := httptest.NewRecorder()
			h.STT(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			var resp textResponse
			decodeJSON(t, rec, &resp)
			assert.Equal(t, "hello world", resp.Text)
			assert.Equal(t, "audio/webm", speech.gotMime)
		})
	}
}

func TestSTT_Failure(t *testing.T) {
	h := NewHandler(Services{Speech: &mockSpeech{transcribeErr: domain.ErrEmptyTranscript}}, t.TempDir())

	req := multipartRequest(t, "/stt", nil, upload{field: "audio", filename: "a.wav", data: []byte("x")})
	rec := httptest.NewRecorder()
	h.STT(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestExport(t *testing.T) {
	conversations := &mockConversations{exportOut: "/tmp/transcript-1.txt"}
	h := NewHandler(Services{Conversations: conversations}, t.TempDir())

	body := `[{"role":"user","text":"hi"},{"role":"agent","text":"hello"}]`
	req := httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Export(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp exportResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "/tmp/transcript-1.txt", resp.File)
	assert.Equal(t, []domain.TranscriptLine{{Role: "user", Text: "hi"}, {Role: "agent", Text: "hello"}}, conversations.exported)
}

func TestExport_InvalidBody(t *testing.T) {
	h := NewHandler(Services{Conversations: &mockConversations{}}, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(`{"role":"user"}`))
	rec := httptest.NewRecorder()
	h.Export(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskVoice_JSON(t *testing.T) {
	dir := t.TempDir()
	voice := &mockVoice{reply: &domain.VoiceReply{
		UserText:  "what's the price",
		RespText:  "forty dollars",
		AudioPath: filepath.Join(dir, "tts-123.wav"),
		MediaType: domain.MediaTypeWAV,
	}}
	h := NewHandler(Services{Voice: voice}, dir)

	req := multipartRequest(t, "/ask-voice", map[string]string{"session_id": "s9"},
		upload{field: "audio", filename: "rec.webm", mime: "audio/webm", data: []byte("webm")})
	rec := httptest.NewRecorder()
	h.AskVoice(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp askVoiceResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "what's the price", resp.UserText)
	assert.Equal(t, "forty dollars", resp.RespText)
	assert.Equal(t, "/static/tts-123.wav", resp.AudioURL)
	assert.Equal(t, "s9", voice.gotSessID)
	assert.Equal(t, "audio/webm", voice.gotMedia)
}

func TestAskVoice_Stream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tts-1.mp3")
	require.NoError(t, os.WriteFile(path, []byte("mp3-bytes"), 0600))
	voice := &mockVoice{reply: &domain.VoiceReply{AudioPath: path, MediaType: domain.MediaTypeMPEG}}
	h := NewHandler(Services{Voice: voice}, dir)

	req := multipartRequest(t, "/ask-voice", map[string]string{"session_id": "s1", "stream": "true"},
		upload{field: "audio", filename: "rec.webm", data: []byte("webm")})
	rec := httptest.NewRecorder()
	h.AskVoice(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.MediaTypeMPEG, rec.Header().Get("Content-Type"))
	assert.Equal(t, "mp3-bytes", rec.Body.String())
}

func TestAskVoice_ConversionFailure(t *testing.T) {
	voice := &mockVoice{err: domain.ErrConversionFailed}
	h := NewHandler(Services{Voice: voice}, t.TempDir())

	req := multipartRequest(t, "/ask-voice", map[string]string{"session_id": "s1"},
		upload{field: "audio", filename: "rec.webm", data: []byte("bad")})
	rec := httptest.NewRecorder()
	h.AskVoice(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorResponse
	decodeJSON(t, rec, &resp)
	assert.Contains(t, resp.Error, "conversion failed")
}

func TestAskVoice_UpstreamFailure(t *testing.T) {
	h := NewHandler(Services{Voice: &mockVoice{err: domain.ErrTranscriberUnavailable}}, t.TempDir())

	req := multipartRequest(t, "/ask-voice", map[string]string{"session_id": "s1"},
		upload{field: "audio", filename: "rec.webm", data: []byte("x")})
	rec := httptest.NewRecorder()
	h.AskVoice(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAskVoice_SilentRecordingIsBadRequest(t *testing.T) {
	h := NewHandler(Services{Voice: &mockVoice{err: domain.ErrNoInput}}, t.TempDir())

	req := multipartRequest(t, "/ask-voice", map[string]string{"session_id": "s1"},
		upload{field: "audio", filename: "rec.webm", data: []byte("x")})
	rec := httptest.NewRecorder()
	h.AskVoice(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskVoice_MissingAudio(t *testing.T) {
	voice := &mockVoice{}
	h := NewHandler(Services{Voice: voice}, t.TempDir())

	req := multipartRequest(t, "/ask-voice", map[string]string{"session_id": "s1"})
	rec := httptest.NewRecorder()
	h.AskVoice(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, voice.gotSessID)
}

func TestHistory(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	conversations := &mockConversations{turns: []domain.ConversationTurn{
		{ID: 1, SessionID: "s1", Role: domain.RoleUser, Text: "hi", Timestamp: ts},
		{ID: 2, SessionID: "s1", Role: domain.RoleAgent, Text: "hello", Timestamp: ts.Add(time.Second)},
	}}
	h := NewHandler(Services{Conversations: conversations}, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/history/s1", nil)
	req = pathvar.WithVars(req, map[string]string{"session_id": "s1"})
	rec := httptest.NewRecorder()
	h.History(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var entries []historyEntry
	decodeJSON(t, rec, &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, "user", entries[0].Role)
	assert.Equal(t, "agent", entries[1].Role)
	assert.True(t, ts.Equal(entries[0].Time))
}

func TestHistory_UnknownSessionIsEmptyArray(t *testing.T) {
	h := NewHandler(Services{Conversations: &mockConversations{}}, t.TempDir())

	req := pathvar.WithVars(httptest.NewRequest(http.MethodGet, "/history/none", nil),
		map[string]string{"session_id": "none"})
	rec := httptest.NewRecorder()
	h.History(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tts-9.wav"), []byte("RIFFdata"), 0600))
	h := NewHandler(Services{}, dir)

	req := pathvar.WithVars(httptest.NewRequest(http.MethodGet, "/static/tts-9.wav", nil),
		map[string]string{"name": "tts-9.wav"})
	rec := httptest.NewRecorder()
	h.Static(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "RIFFdata", rec.Body.String())
}

func TestStatic_RejectsTraversal(t *testing.T) {
	h := NewHandler(Services{}, t.TempDir())

	for _, name := range []string{"../secret", "..", "missing.wav"} {
		req := pathvar.WithVars(httptest.NewRequest(http.MethodGet, "/static/x", nil),
			map[string]string{"name": name})
		rec := httptest.NewRecorder()
		h.Static(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code, name)
	}
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(Services{}, "").Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrNoInput))
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrConversionFailed))
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}
