package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/voxrag/internal/adapters/driven/config/file"
	"github.com/custodia-labs/voxrag/internal/config"
	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure providers, storage and server options.

Settings resolve from defaults, the settings file, .env and the environment,
in that order.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved settings",
	RunE:  runSettingsShow,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the defaults",
	RunE:  runSettingsInit,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Choose the LLM that answers questions and store its API key.`,
	RunE:  runSettingsLLM,
}

var settingsForce bool

// openSettingsStore is replaced in tests.
var openSettingsStore = func() (driven.SettingsStore, error) {
	return file.NewSettingsFile(cfgFile)
}

func init() {
	settingsInitCmd.Flags().BoolVar(&settingsForce, "force", false, "overwrite an existing file")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsInitCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s:%d\n", s.Server.Host, s.Server.Port)
	cmd.Printf("  Output Dir: %s\n", s.Server.OutputDir)
	cmd.Printf("  Export Dir: %s\n", orTempDir(s.Server.ExportDir))
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", s.Embedding.Provider)
	if s.Embedding.Model != "" {
		cmd.Printf("  Model: %s\n", s.Embedding.Model)
	}
	if s.Embedding.Provider == domain.EmbeddingProviderOpenAI {
		cmd.Printf("  API Key: %s\n", keyStatus(s.Embedding.APIKey))
	}
	cmd.Printf("  Status: %s\n", configuredStatus(s.Embedding.IsConfigured()))
	cmd.Println()

	cmd.Println("[Vector Store]")
	cmd.Printf("  Backend: %s\n", s.Vector.Backend)
	cmd.Printf("  Collection: %s (%d dimensions)\n", s.Vector.Collection, s.Vector.Dimensions)
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", s.LLM.Provider.Description())
	if s.LLM.Model != "" {
		cmd.Printf("  Model: %s\n", s.LLM.Model)
	}
	if s.LLM.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", keyStatus(s.LLM.APIKey))
	}
	cmd.Printf("  Status: %s\n", configuredStatus(s.LLM.IsConfigured()))
	cmd.Println()

	cmd.Println("[Speech]")
	cmd.Printf("  STT: %s (key %s)\n", s.STT.Provider, keyStatus(s.STT.APIKey))
	if s.TTS.Provider == domain.TTSProviderGoogle {
		cmd.Printf("  TTS: %s (credentials %s)\n", s.TTS.Provider, valueOrUnset(s.TTS.CredentialsFile))
	} else {
		cmd.Printf("  TTS: %s (key %s)\n", s.TTS.Provider, keyStatus(s.TTS.APIKey))
	}
	cmd.Println()

	cmd.Println("[Conversation Log]")
	cmd.Printf("  Backend: %s\n", s.Conversation.Backend)
	if s.Conversation.Backend == domain.StorageBackendSQLite {
		cmd.Printf("  File: %s\n", s.Conversation.DSN)
	}
	return nil
}

func runSettingsInit(cmd *cobra.Command, _ []string) error {
	store, err := openSettingsStore()
	if err != nil {
		return err
	}

	existing := config.Defaults()
	found, err := store.Load(&existing)
	if err != nil {
		return err
	}
	if found && !settingsForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", store.Path())
	}

	if err := store.Save(config.Defaults()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("Wrote %s\n", store.Path())
	return nil
}

var llmChoices = []domain.LLMProvider{
	domain.LLMProviderGemini,
	domain.LLMProviderOpenAI,
	domain.LLMProviderDeepSeek,
	domain.LLMProviderAnthropic,
	domain.LLMProviderOllama,
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	store, err := openSettingsStore()
	if err != nil {
		return err
	}

	s := config.Defaults()
	if _, err := store.Load(&s); err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select LLM provider:")
	current := 1
	for i, p := range llmChoices {
		marker := " "
		if p == s.LLM.Provider {
			marker = "*"
			current = i + 1
		}
		cmd.Printf("  %s %d) %s\n", marker, i+1, p.Description())
	}
	cmd.Printf("Choice [%d]: ", current)
	provider := llmChoices[parseChoice(readLine(reader), len(llmChoices), current)-1]

	if provider != s.LLM.Provider {
		s.LLM.Model = ""
		s.LLM.APIKey = ""
	}
	s.LLM.Provider = provider

	cmd.Printf("Model (blank for default%s): ", valueHint(s.LLM.Model))
	if model := readLine(reader); model != "" {
		s.LLM.Model = model
	}

	if provider.RequiresAPIKey() {
		cmd.Printf("API key (blank keeps %s): ", keyStatus(s.LLM.APIKey))
		if key := readPassword(reader); key != "" {
			s.LLM.APIKey = key
		}
		cmd.Println()
		if s.LLM.APIKey == "" {
			return errors.New("an API key is required for " + provider.String())
		}
	}

	if err := store.Save(s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("LLM set to %s in %s\n", provider.Description(), store.Path())
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo from a terminal, otherwise a plain line.
func readPassword(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func keyStatus(key string) string {
	if key == "" {
		return "(not set)"
	}
	return maskAPIKey(key)
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func valueHint(v string) string {
	if v == "" {
		return ""
	}
	return ", current " + v
}

func orTempDir(dir string) string {
	if dir == "" {
		return "(temp dir)"
	}
	return dir
}
