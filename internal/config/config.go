// Package config assembles domain.Settings from defaults, an optional TOML
// file, a .env file and the process environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/voxrag/internal/adapters/driven/config/file"
	"github.com/custodia-labs/voxrag/internal/core/domain"
)

// Server defaults.
const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8000
	DefaultOutputDir      = "output"
	DefaultTimeoutMillis  = 120_000
	DefaultMaxUploadBytes = 32 << 20
	DefaultQdrantURL      = "http://localhost:6333"
	DefaultConversationDB = "conversation.db"
	DefaultEnvFile        = ".env"
)

// Options controls where settings are read from.
type Options struct {
	// Path is an explicit settings file. It must exist when set.
	// Empty selects ~/.voxrag/config.toml, which may be absent.
	Path string

	// EnvFile is the dotenv file. Empty selects ./.env. A missing file is ignored.
	EnvFile string

	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() domain.Settings {
	return domain.Settings{
		Server: domain.ServerSettings{
			Host:           DefaultHost,
			Port:           DefaultPort,
			OutputDir:      DefaultOutputDir,
			TimeoutMillis:  DefaultTimeoutMillis,
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
		Embedding: domain.EmbeddingSettings{Provider: domain.EmbeddingProviderOllama},
		Vector: domain.VectorSettings{
			Backend:    domain.VectorBackendQdrant,
			URL:        DefaultQdrantURL,
			Collection: domain.DefaultCollection,
			Dimensions: domain.DefaultDimensions,
		},
		LLM:          domain.LLMSettings{Provider: domain.LLMProviderGemini},
		STT:          domain.STTSettings{Provider: domain.STTProviderDeepgram},
		TTS:          domain.TTSSettings{Provider: domain.TTSProviderGoogle},
		Conversation: domain.ConversationSettings{Backend: domain.StorageBackendSQLite, DSN: DefaultConversationDB},
	}
}

// Load resolves the settings for one process.
func Load(opts Options) (domain.Settings, error) {
	settings := Defaults()

	settingsFile, err := file.NewSettingsFile(opts.Path)
	if err != nil {
		if opts.Path != "" {
			return settings, err
		}
		// No home directory; run on defaults and environment only.
		settingsFile = nil
	}
	if settingsFile != nil {
		found, err := settingsFile.Load(&settings)
		if err != nil {
			return settings, err
		}
		if !found && opts.Path != "" {
			return settings, fmt.Errorf("%w: config file %s", domain.ErrNotFound, opts.Path)
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return settings, fmt.Errorf("read %s: %w", envFile, err)
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	env := func(key string) string {
		if v, ok := lookup(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(dotenv[key])
	}

	if err := applyEnv(&settings, env); err != nil {
		return settings, err
	}
	return settings, nil
}

// applyEnv overrides settings with every non-empty variable. Credentials are
// routed by the provider resolved at that point.
func applyEnv(s *domain.Settings, env func(string) string) error {
	setString(&s.Server.Host, env("HOST"))
	setString(&s.Server.OutputDir, env("OUTPUT_DIR"))
	setString(&s.Server.ExportDir, env("EXPORT_DIR"))
	setString(&s.Server.PromptDir, env("PROMPT_DIR"))
	if v := env("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("%w: PORT %q", domain.ErrInvalidInput, v)
		}
		s.Server.Port = port
	}
	if v := env("UPSTREAM_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			return fmt.Errorf("%w: UPSTREAM_RPS %q", domain.ErrInvalidInput, v)
		}
		s.UpstreamRPS = rps
	}

	// Embedding
	if v := env("EMBEDDING_PROVIDER"); v != "" {
		s.Embedding.Provider = domain.EmbeddingProvider(strings.ToLower(v))
	}
	setString(&s.Embedding.Model, env("EMBEDDING_MODEL"))
	switch s.Embedding.Provider {
	case domain.EmbeddingProviderOllama:
		setString(&s.Embedding.BaseURL, env("OLLAMA_HOST"))
	case domain.EmbeddingProviderOpenAI:
		setString(&s.Embedding.APIKey, env("OPENAI_API_KEY"))
	}

	// Vector store
	if v := env("VECTOR_BACKEND"); v != "" {
		s.Vector.Backend = domain.VectorBackend(strings.ToLower(v))
	}
	switch s.Vector.Backend {
	case domain.VectorBackendQdrant:
		setString(&s.Vector.URL, env("QDRANT_URL"))
		setString(&s.Vector.APIKey, env("QDRANT_API_KEY"))
	case domain.VectorBackendPgvector:
		if v := env("PGVECTOR_URL"); v != "" {
			s.Vector.URL = v
		} else if s.Vector.URL == DefaultQdrantURL {
			s.Vector.URL = env("DATABASE_URL")
		}
	}

	// LLM
	if v := env("LLM_PROVIDER"); v != "" {
		s.LLM.Provider = domain.LLMProvider(strings.ToLower(v))
	}
	setString(&s.LLM.Model, env("LLM_MODEL"))
	switch s.LLM.Provider {
	case domain.LLMProviderOpenAI:
		setString(&s.LLM.APIKey, env("OPENAI_API_KEY"))
	case domain.LLMProviderDeepSeek:
		setString(&s.LLM.APIKey, env("DEEPSEEK_API_KEY"))
	case domain.LLMProviderGemini:
		setString(&s.LLM.APIKey, env("GEMINI_API_KEY"))
	case domain.LLMProviderAnthropic:
		setString(&s.LLM.APIKey, env("ANTHROPIC_API_KEY"))
	case domain.LLMProviderOllama:
		setString(&s.LLM.BaseURL, env("OLLAMA_HOST"))
	}

	// Speech-to-text
	if v := env("STT_PROVIDER"); v != "" {
		s.STT.Provider = domain.STTProvider(strings.ToLower(v))
	}
	switch s.STT.Provider {
	case domain.STTProviderDeepgram:
		setString(&s.STT.APIKey, env("DEEPGRAM_API_KEY"))
	case domain.STTProviderWhisper:
		setString(&s.STT.APIKey, env("OPENAI_API_KEY"))
	}

	// Text-to-speech
	if v := env("TTS_PROVIDER"); v != "" {
		s.TTS.Provider = domain.TTSProvider(strings.ToLower(v))
	}
	setString(&s.TTS.CredentialsFile, env("GOOGLE_TTS_KEY_JSON_PATH"))
	setString(&s.TTS.APIKey, env("ELEVENLABS_API_KEY"))
	setString(&s.TTS.VoiceID, env("ELEVENLABS_VOICE_ID"))

	// Conversation log
	if v := env("STORAGE_BACKEND"); v != "" {
		s.Conversation.Backend = domain.StorageBackend(strings.ToLower(v))
	}
	switch s.Conversation.Backend {
	case domain.StorageBackendPostgres:
		if v := env("DATABASE_URL"); v != "" {
			s.Conversation.DSN = v
		} else if s.Conversation.DSN == DefaultConversationDB {
			s.Conversation.DSN = ""
		}
	case domain.StorageBackendSQLite:
		setString(&s.Conversation.DSN, env("CONVERSATION_DB"))
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
