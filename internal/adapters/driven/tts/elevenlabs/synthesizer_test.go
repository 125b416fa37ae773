package elevenlabs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/voxrag/internal/core/domain"
)

func TestNewSynthesizer_MissingKey(t *testing.T) {
	_, err := NewSynthesizer(Config{})

	require.Error(t, err)
	assert.Equal(t, "elevenlabs API key not set", err.Error())
}

func TestSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/voice-1", r.URL.Path)
		assert.Equal(t, "xi-key", r.Header.Get("xi-api-key"))
		assert.Equal(t, "audio/mpeg", r.Header.Get("Accept"))

		var req synthesizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Good morning", req.Text)
		assert.Equal(t, DefaultModel, req.ModelID)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3mp3"))
	}))
	defer srv.Close()

	s, err := NewSynthesizer(Config{APIKey: "xi-key", VoiceID: "voice-1", BaseURL: srv.URL})
	require.NoError(t, err)

	audio, err := s.Synthesize(context.Background(), "Good morning")

	require.NoError(t, err)
	assert.Equal(t, []byte("ID3mp3"), audio.Data)
	assert.Equal(t, domain.MediaTypeMPEG, audio.MediaType)
	assert.Equal(t, ".mp3", audio.Extension())
}

func TestSynthesize_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail":{"status":"invalid_api_key"}}`},
		{"empty body", http.StatusOK, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			s, err := NewSynthesizer(Config{APIKey: "k", BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = s.Synthesize(context.Background(), "x")
			assert.Error(t, err)
		})
	}
}
