package domain

import (
	"mime"
	"strings"
)

// Media types handled by the speech pipeline.
const (
	MediaTypeWAV  = "audio/wav"
	MediaTypeMPEG = "audio/mpeg"
	MediaTypeWebM = "audio/webm"
)

// DefaultAudioChunkSize is the block size used when streaming audio.
const DefaultAudioChunkSize = 4096

// Audio is a synthesised or uploaded audio payload.
type Audio struct {
	// Data is the encoded audio.
	Data []byte

	// MediaType is the container type, e.g. audio/wav.
	MediaType string
}

// Extension returns the file extension matching the media type.
// Parameters such as codecs are ignored.
func (a Audio) Extension() string {
	switch BaseMediaType(a.MediaType) {
	case MediaTypeMPEG:
		return ".mp3"
	case MediaTypeWebM:
		return ".webm"
	default:
		return ".wav"
	}
}

// BaseMediaType strips parameters from a media type and lowercases it, so
// "audio/webm;codecs=opus" becomes "audio/webm".
func BaseMediaType(mediaType string) string {
	base, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		base, _, _ = strings.Cut(mediaType, ";")
		return strings.ToLower(strings.TrimSpace(base))
	}
	return base
}
