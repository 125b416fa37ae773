package domain

const unknownDescription = "Unknown"

// LLMProvider identifies the backend that answers prompts.
type LLMProvider string

// Available LLM providers.
const (
	// LLMProviderOpenAI is the OpenAI chat completions API.
	LLMProviderOpenAI LLMProvider = "openai"

	// LLMProviderDeepSeek is DeepSeek's OpenAI-compatible chat API.
	LLMProviderDeepSeek LLMProvider = "deepseek"

	// LLMProviderGemini is Google's generateContent API.
	LLMProviderGemini LLMProvider = "gemini"

	// LLMProviderAnthropic is the Anthropic messages API.
	LLMProviderAnthropic LLMProvider = "anthropic"

	// LLMProviderOllama is a local Ollama instance.
	LLMProviderOllama LLMProvider = "ollama"
)

// IsValid returns true if the LLM provider is recognised.
func (p LLMProvider) IsValid() bool {
	switch p {
	case LLMProviderOpenAI, LLMProviderDeepSeek, LLMProviderGemini,
		LLMProviderAnthropic, LLMProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p LLMProvider) RequiresAPIKey() bool {
	return p.IsValid() && p != LLMProviderOllama
}

// String returns the string representation.
func (p LLMProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p LLMProvider) Description() string {
	switch p {
	case LLMProviderOpenAI:
		return "OpenAI (cloud)"
	case LLMProviderDeepSeek:
		return "DeepSeek (cloud)"
	case LLMProviderGemini:
		return "Google Gemini (cloud)"
	case LLMProviderAnthropic:
		return "Anthropic (cloud)"
	case LLMProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// EmbeddingProvider identifies the backend that embeds text.
type EmbeddingProvider string

// Available embedding providers.
const (
	// EmbeddingProviderOllama runs all-minilm locally.
	EmbeddingProviderOllama EmbeddingProvider = "ollama"

	// EmbeddingProviderOpenAI uses text-embedding-3 truncated to the collection dimension.
	EmbeddingProviderOpenAI EmbeddingProvider = "openai"
)

// IsValid returns true if the embedding provider is recognised.
func (p EmbeddingProvider) IsValid() bool {
	return p == EmbeddingProviderOllama || p == EmbeddingProviderOpenAI
}

// String returns the string representation.
func (p EmbeddingProvider) String() string {
	return string(p)
}

// STTProvider identifies the speech-to-text vendor.
type STTProvider string

// Available speech-to-text providers.
const (
	// STTProviderDeepgram is Deepgram's prerecorded listen API.
	STTProviderDeepgram STTProvider = "deepgram"

	// STTProviderWhisper is OpenAI's audio transcription API.
	STTProviderWhisper STTProvider = "whisper"
)

// IsValid returns true if the STT provider is recognised.
func (p STTProvider) IsValid() bool {
	return p == STTProviderDeepgram || p == STTProviderWhisper
}

// String returns the string representation.
func (p STTProvider) String() string {
	return string(p)
}

// TTSProvider identifies the text-to-speech vendor.
type TTSProvider string

// Available text-to-speech providers.
const (
	// TTSProviderGoogle is Google Cloud Text-to-Speech.
	TTSProviderGoogle TTSProvider = "google"

	// TTSProviderElevenLabs is the ElevenLabs text-to-speech API.
	TTSProviderElevenLabs TTSProvider = "elevenlabs"
)

// IsValid returns true if the TTS provider is recognised.
func (p TTSProvider) IsValid() bool {
	return p == TTSProviderGoogle || p == TTSProviderElevenLabs
}

// String returns the string representation.
func (p TTSProvider) String() string {
	return string(p)
}

// MediaType returns the audio container the provider produces.
func (p TTSProvider) MediaType() string {
	if p == TTSProviderElevenLabs {
		return MediaTypeMPEG
	}
	return MediaTypeWAV
}

// VectorBackend identifies where chunks are stored.
type VectorBackend string

// Available vector backends.
const (
	// VectorBackendQdrant is a Qdrant server over gRPC.
	VectorBackendQdrant VectorBackend = "qdrant"

	// VectorBackendPgvector is PostgreSQL with the pgvector extension.
	VectorBackendPgvector VectorBackend = "pgvector"

	// VectorBackendMemory keeps chunks in process memory.
	VectorBackendMemory VectorBackend = "memory"
)

// IsValid returns true if the vector backend is recognised.
func (b VectorBackend) IsValid() bool {
	switch b {
	case VectorBackendQdrant, VectorBackendPgvector, VectorBackendMemory:
		return true
	default:
		return false
	}
}

// StorageBackend identifies where the conversation log lives.
type StorageBackend string

// Available conversation log backends.
const (
	// StorageBackendSQLite is a local SQLite file.
	StorageBackendSQLite StorageBackend = "sqlite"

	// StorageBackendPostgres is a PostgreSQL database.
	StorageBackendPostgres StorageBackend = "postgres"

	// StorageBackendMemory keeps the log in process memory. Lost on exit.
	StorageBackendMemory StorageBackend = "memory"
)

// IsValid returns true if the storage backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendSQLite, StorageBackendPostgres, StorageBackendMemory:
		return true
	default:
		return false
	}
}
