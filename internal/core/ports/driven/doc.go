// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - EmbeddingService: Turns text into vectors (Ollama, OpenAI)
//   - VectorStore: Stores and searches chunk vectors (Qdrant, pgvector, memory)
//   - LLMService: Answers a single-turn prompt (OpenAI, DeepSeek, Gemini, Anthropic, Ollama)
//   - Transcriber: Speech-to-text (Deepgram, Whisper)
//   - Synthesizer: Text-to-speech (Google, ElevenLabs)
//   - AudioConverter: Container conversion (ffmpeg)
//   - ConversationStore: Append-only conversation log (SQLite, PostgreSQL)
//   - Normaliser: Extracts text from an uploaded document
//   - PostProcessor: Splits extracted text into chunks
//   - PromptStore: User-editable prompt templates
//   - SettingsStore: Optional TOML settings file
//
// Adapters that cannot be constructed from configuration are replaced by
// stand-ins that return the construction error on every call, so a missing
// key surfaces on first use rather than at startup.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
