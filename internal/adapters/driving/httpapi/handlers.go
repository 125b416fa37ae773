package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driving"
	"github.com/custodia-labs/voxrag/internal/core/services"
	"github.com/custodia-labs/voxrag/internal/logger"
)

// StaticPrefix is the URL prefix under which synthesised files are served.
const StaticPrefix = "/static/"

// Services are the core operations the HTTP layer exposes.
type Services struct {
	Ingest        driving.IngestService
	Answers       driving.AnswerService
	Speech        driving.SpeechService
	Voice         driving.VoiceService
	Conversations driving.ConversationService
}

// Handler serves every route. OutputDir must match the directory the
// speech service writes to so /static can find its files.
type Handler struct {
	svc       Services
	outputDir string
	chunkSize int
}

// NewHandler creates a handler set.
func NewHandler(svc Services, outputDir string) *Handler {
	return &Handler{svc: svc, outputDir: outputDir, chunkSize: domain.DefaultAudioChunkSize}
}

// Ingest stores the uploaded file and replaces the collection with its chunks.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(r.Context(), w, "missing file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	path, err := spool(file, "ingest-*"+ext)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	defer os.Remove(path)

	count, err := h.svc.Ingest.Ingest(r.Context(), path, ext)
	if err != nil {
		// Ingest failures, including empty documents, are server errors.
		logger.Error("ingest %s: %v", header.Filename, err)
		httpx.WriteJsonCtx(r.Context(), w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	httpx.OkJsonCtx(r.Context(), w, ingestResponse{Status: "ok", IngestedChunks: count})
}

// Ask answers a typed or spoken question and logs both turns.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := httpx.Parse(r, &req); err != nil {
		writeBadRequest(r.Context(), w, err.Error())
		return
	}

	text := req.Text
	audio, mimeType, err := readUpload(r, "audio")
	switch {
	case err == nil:
		text, err = h.svc.Speech.Transcribe(r.Context(), audio, mimeType)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
	case !errors.Is(err, http.ErrMissingFile):
		writeBadRequest(r.Context(), w, err.Error())
		return
	}

	if strings.TrimSpace(text) == "" {
		writeError(r.Context(), w, domain.ErrNoInput)
		return
	}

	answer, err := h.svc.Answers.Ask(r.Context(), req.SessionID, text)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	httpx.OkJsonCtx(r.Context(), w, textResponse{Text: answer})
}

// TTS synthesises the query text and streams the audio back.
func (h *Handler) TTS(w http.ResponseWriter, r *http.Request) {
	var req ttsRequest
	if err := httpx.Parse(r, &req); err != nil {
		writeBadRequest(r.Context(), w, err.Error())
		return
	}

	path, mediaType, err := h.svc.Speech.SynthesizeToFile(r.Context(), req.Text)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	h.streamFile(w, r, path, mediaType)
}

// STT transcribes an uploaded recording.
func (h *Handler) STT(w http.ResponseWriter, r *http.Request) {
	audio, mimeType, err := readUpload(r, "audio", "file")
	if err != nil {
		writeBadRequest(r.Context(), w, "missing audio")
		return
	}

	text, err := h.svc.Speech.Transcribe(r.Context(), audio, mimeType)
	if err != nil {
		httpx.WriteJsonCtx(r.Context(), w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	httpx.OkJsonCtx(r.Context(), w, textResponse{Text: text})
}

// Export writes the posted transcript to a server-local file.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var lines []domain.TranscriptLine
	if err := json.NewDecoder(r.Body).Decode(&lines); err != nil {
		writeBadRequest(r.Context(), w, fmt.Sprintf("decode transcript: %v", err))
		return
	}

	path, err := h.svc.Conversations.Export(r.Context(), lines)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	httpx.OkJsonCtx(r.Context(), w, exportResponse{Status: "ok", File: path})
}

// AskVoice runs the spoken question pipeline. The reply is a JSON document
// pointing at the synthesised file, or the audio itself when stream=true.
func (h *Handler) AskVoice(w http.ResponseWriter, r *http.Request) {
	var req askVoiceRequest
	if err := httpx.Parse(r, &req); err != nil {
		writeBadRequest(r.Context(), w, err.Error())
		return
	}

	audio, mimeType, err := readUpload(r, "audio")
	if err != nil {
		writeBadRequest(r.Context(), w, "missing audio")
		return
	}

	reply, err := h.svc.Voice.AskVoice(r.Context(), req.SessionID, audio, mimeType)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	if req.Stream {
		h.streamFile(w, r, reply.AudioPath, reply.MediaType)
		return
	}

	httpx.OkJsonCtx(r.Context(), w, askVoiceResponse{
		UserText: reply.UserText,
		RespText: reply.RespText,
		AudioURL: StaticPrefix + filepath.Base(reply.AudioPath),
	})
}

// History returns the session log in insertion order.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	var req historyRequest
	if err := httpx.Parse(r, &req); err != nil {
		writeBadRequest(r.Context(), w, err.Error())
		return
	}

	turns, err := h.svc.Conversations.History(r.Context(), req.SessionID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	entries := make([]historyEntry, len(turns))
	for i, t := range turns {
		entries[i] = historyEntry{Role: t.Role.String(), Text: t.Text, Time: t.Timestamp}
	}
	httpx.OkJsonCtx(r.Context(), w, entries)
}

// Static serves one file from the output directory.
func (h *Handler) Static(w http.ResponseWriter, r *http.Request) {
	var req staticRequest
	if err := httpx.Parse(r, &req); err != nil {
		writeBadRequest(r.Context(), w, err.Error())
		return
	}

	name := filepath.Base(req.Name)
	if name != req.Name || name == "." || name == ".." {
		httpx.WriteJsonCtx(r.Context(), w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}

	path := filepath.Join(h.outputDir, name)
	if _, err := os.Stat(path); err != nil {
		httpx.WriteJsonCtx(r.Context(), w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}
	http.ServeFile(w, r, path)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httpx.OkJsonCtx(r.Context(), w, statusResponse{Status: "ok"})
}

// streamFile writes the file in fixed-size chunks, flushing after each.
func (h *Handler) streamFile(w http.ResponseWriter, r *http.Request, path, mediaType string) {
	f, err := os.Open(path)
	if err != nil {
		writeError(r.Context(), w, fmt.Errorf("open audio: %w", err))
		return
	}
	defer f.Close()

	w.Header().Set(httpx.ContentType, mediaType)
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	for chunk, err := range services.Chunks(f, h.chunkSize) {
		if err != nil {
			logger.Error("stream %s: %v", path, err)
			return
		}
		if _, err := w.Write(chunk); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// readUpload returns the first present multipart file among fields.
// The result wraps http.ErrMissingFile when none is present.
func readUpload(r *http.Request, fields ...string) ([]byte, string, error) {
	for _, field := range fields {
		file, header, err := r.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		data, err := readAll(file, header)
		if err != nil {
			return nil, "", err
		}
		return data, header.Header.Get(httpx.ContentType), nil
	}
	return nil, "", http.ErrMissingFile
}

func readAll(file multipart.File, header *multipart.FileHeader) ([]byte, error) {
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", header.Filename, err)
	}
	return data, nil
}

// spool copies r into a new temp file and returns its path.
func spool(r io.Reader, pattern string) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}
	return f.Name(), nil
}
