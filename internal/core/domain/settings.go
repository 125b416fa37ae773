package domain

// Settings is the complete runtime configuration of one VoxRAG process.
// It is loaded once at startup and never mutated afterwards.
type Settings struct {
	Server       ServerSettings       `toml:"server"`
	Embedding    EmbeddingSettings    `toml:"embedding"`
	Vector       VectorSettings       `toml:"vector"`
	LLM          LLMSettings          `toml:"llm"`
	STT          STTSettings          `toml:"stt"`
	TTS          TTSSettings          `toml:"tts"`
	Conversation ConversationSettings `toml:"conversation"`

	// UpstreamRPS caps outbound requests per second to hosted providers.
	// Zero disables limiting.
	UpstreamRPS float64 `toml:"upstream_rps"`
}

// ServerSettings holds Request Layer configuration.
type ServerSettings struct {
	// Host is the bind address.
	Host string `toml:"host"`

	// Port is the listen port.
	Port int `toml:"port"`

	// OutputDir receives synthesised audio. It is served under /static.
	OutputDir string `toml:"output_dir"`

	// ExportDir receives exported transcripts. Empty selects the temp directory.
	// It is never served.
	ExportDir string `toml:"export_dir"`

	// TimeoutMillis bounds each request.
	TimeoutMillis int64 `toml:"timeout_ms"`

	// MaxUploadBytes bounds request bodies, audio included.
	MaxUploadBytes int64 `toml:"max_upload_bytes"`

	// PromptDir holds user-editable prompt templates.
	PromptDir string `toml:"prompt_dir"`
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider EmbeddingProvider `toml:"provider"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string `toml:"base_url"`

	// APIKey is the API key (for OpenAI).
	APIKey string `toml:"api_key"`
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider == EmbeddingProviderOpenAI && e.APIKey == "" {
		return false
	}
	return true
}

// VectorSettings holds vector store configuration.
type VectorSettings struct {
	// Backend selects qdrant, pgvector or memory.
	Backend VectorBackend `toml:"backend"`

	// URL locates the store: a Qdrant address or a PostgreSQL DSN.
	URL string `toml:"url"`

	// APIKey authenticates against Qdrant Cloud.
	APIKey string `toml:"api_key"`

	// Collection is the collection or table name.
	Collection string `toml:"collection"`

	// Dimensions is the fixed vector size of the collection.
	Dimensions int `toml:"dimensions"`
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider LLMProvider `toml:"provider"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// BaseURL overrides the provider's API endpoint.
	BaseURL string `toml:"base_url"`

	// APIKey is the provider credential.
	APIKey string `toml:"api_key"`
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// STTSettings holds speech-to-text configuration.
type STTSettings struct {
	// Provider is deepgram or whisper.
	Provider STTProvider `toml:"provider"`

	// APIKey is the vendor credential.
	APIKey string `toml:"api_key"`

	// Model overrides the vendor's default model.
	Model string `toml:"model"`

	// BaseURL overrides the vendor endpoint.
	BaseURL string `toml:"base_url"`
}

// TTSSettings holds text-to-speech configuration.
type TTSSettings struct {
	// Provider is google or elevenlabs.
	Provider TTSProvider `toml:"provider"`

	// CredentialsFile is the Google service account JSON path.
	CredentialsFile string `toml:"credentials_file"`

	// APIKey is the ElevenLabs credential.
	APIKey string `toml:"api_key"`

	// VoiceID selects the ElevenLabs voice.
	VoiceID string `toml:"voice_id"`

	// LanguageCode selects the Google voice language.
	LanguageCode string `toml:"language_code"`

	// VoiceName selects the Google voice.
	VoiceName string `toml:"voice_name"`

	// BaseURL overrides the vendor endpoint.
	BaseURL string `toml:"base_url"`
}

// ConversationSettings holds conversation log configuration.
type ConversationSettings struct {
	// Backend is sqlite or postgres.
	Backend StorageBackend `toml:"backend"`

	// DSN is the SQLite file path or PostgreSQL connection string.
	DSN string `toml:"dsn"`
}
