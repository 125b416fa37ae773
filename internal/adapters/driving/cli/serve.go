package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/voxrag/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/voxrag/internal/logger"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the REST server exposing /ingest, /ask, /tts, /stt, /export,
/ask-voice and /history/{session_id}.

Host and port default to the settings file or HOST and PORT from the
environment.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// startServer is replaced in tests to avoid binding a port.
var startServer = func(srv *httpapi.Server) { srv.Start() }

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides settings)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "bind address (overrides settings)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	cfg := httpapi.Config{
		Host:           settings.Server.Host,
		Port:           settings.Server.Port,
		TimeoutMillis:  settings.Server.TimeoutMillis,
		MaxUploadBytes: settings.Server.MaxUploadBytes,
		OutputDir:      settings.Server.OutputDir,
		Verbose:        verbose,
	}
	if servePort > 0 {
		cfg.Port = servePort
	}
	if serveHost != "" {
		cfg.Host = serveHost
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	srv, err := httpapi.NewServer(cfg, httpapi.Services{
		Ingest:        ingestService,
		Answers:       answerService,
		Speech:        speechService,
		Voice:         voiceService,
		Conversations: conversationService,
	})
	if err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-cmd.Context().Done():
			srv.Stop()
		case <-done:
		}
	}()

	logger.Info("listening on %s:%d", cfg.Host, cfg.Port)
	cmd.Printf("VoxRAG API listening on http://%s:%d\n", cfg.Host, cfg.Port)
	startServer(srv)
	return nil
}
