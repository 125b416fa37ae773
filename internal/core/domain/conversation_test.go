package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAgent.IsValid())
	assert.False(t, Role("assistant").IsValid())
	assert.Equal(t, "agent", RoleAgent.String())
}

func TestTexts_PreservesOrder(t *testing.T) {
	hits := []SearchHit{
		{ID: "a", Text: "first", Score: 0.2},
		{ID: "b", Text: "second", Score: 0.9},
	}

	assert.Equal(t, []string{"first", "second"}, Texts(hits))
	assert.Empty(t, Texts(nil))
}

func TestAudio_Extension(t *testing.T) {
	assert.Equal(t, ".wav", Audio{MediaType: MediaTypeWAV}.Extension())
	assert.Equal(t, ".mp3", Audio{MediaType: MediaTypeMPEG}.Extension())
	assert.Equal(t, ".webm", Audio{MediaType: MediaTypeWebM}.Extension())
	assert.Equal(t, ".wav", Audio{}.Extension())
	assert.Equal(t, ".webm", Audio{MediaType: "audio/webm;codecs=opus"}.Extension())
	assert.Equal(t, ".mp3", Audio{MediaType: "Audio/MPEG; charset=binary"}.Extension())
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("deepgram: %w", ErrMissingAPIKey)

	assert.True(t, errors.Is(wrapped, ErrMissingAPIKey))
	assert.False(t, errors.Is(wrapped, ErrUnsupportedProvider))
	assert.Equal(t, "no valid content found", ErrNoValidContent.Error())
	assert.Equal(t, "no input", ErrNoInput.Error())
}

func TestBaseMediaType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"audio/webm", "audio/webm"},
		{"audio/webm;codecs=opus", "audio/webm"},
		{"AUDIO/WAV", "audio/wav"},
		{"audio/webm; codecs=", "audio/webm"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseMediaType(tt.in))
		})
	}
}
