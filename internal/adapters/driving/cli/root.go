// Package cli provides the voxrag command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/voxrag/internal/app"
	"github.com/custodia-labs/voxrag/internal/config"
	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driving"
	"github.com/custodia-labs/voxrag/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var (
	cfgFile string
	envFile string
	verbose bool
)

// Wired services. Nil until a command that needs them runs.
var (
	settings            domain.Settings
	ingestService       driving.IngestService
	retrieverService    driving.RetrieverService
	answerService       driving.AnswerService
	speechService       driving.SpeechService
	voiceService        driving.VoiceService
	conversationService driving.ConversationService
	closeServices       func() error
)

// loadSettings resolves settings for the current flags.
var loadSettings = func() (domain.Settings, error) {
	return config.Load(config.Options{Path: cfgFile, EnvFile: envFile})
}

// bootstrap builds the application and publishes its services.
var bootstrap = func(ctx context.Context) error {
	s, err := loadSettings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	a, err := app.New(ctx, s)
	if err != nil {
		return err
	}

	settings = s
	ingestService = a.Ingest
	retrieverService = a.Retriever
	answerService = a.Answers
	speechService = a.Speech
	voiceService = a.Voice
	conversationService = a.Conversations
	closeServices = a.Close
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "voxrag",
	Short: "Voice-enabled question answering over sales documents",
	Long: `VoxRAG ingests sales documents into a vector store and answers typed or
spoken questions from them, replying in text or synthesised speech.

Run 'voxrag serve' to start the HTTP API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default ~/.voxrag/config.toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// ensureServices wires the application once. Services injected beforehand
// are kept.
func ensureServices(ctx context.Context) error {
	if answerService != nil {
		return nil
	}
	return bootstrap(ctx)
}

// shutdown releases whatever bootstrap opened.
func shutdown() {
	if closeServices == nil {
		return
	}
	if err := closeServices(); err != nil {
		logger.Warn("close: %v", err)
	}
	closeServices = nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	shutdown()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
