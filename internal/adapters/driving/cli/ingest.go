package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/voxrag/internal/connectors/filesystem"
	"github.com/custodia-labs/voxrag/internal/logger"
)

var ingestWatch bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a document into the vector store",
	Long: `Parses a .pdf, .docx, .json or text file, embeds every paragraph and
replaces the contents of the collection with it.

With --watch the file is re-ingested each time it changes until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "re-ingest when the file changes")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]

	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	if err := ingestOnce(cmd, path); err != nil {
		return err
	}
	if !ingestWatch {
		return nil
	}
	return watchAndIngest(cmd.Context(), cmd, path)
}

func ingestOnce(cmd *cobra.Command, path string) error {
	count, err := ingestService.Ingest(cmd.Context(), path, filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	cmd.Printf("Ingested %d chunks from %s\n", count, path)
	return nil
}

func watchAndIngest(ctx context.Context, cmd *cobra.Command, path string) error {
	w := filesystem.New(path)
	defer w.Close()

	changes, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s for changes...\n", path)
	for change := range changes {
		if change.Type == filesystem.ChangeDeleted {
			logger.Warn("%s was removed; keeping the last ingested contents", change.Path)
			continue
		}
		if err := ingestOnce(cmd, change.Path); err != nil {
			// Keep watching; the next save may fix the file.
			logger.Error("%v", err)
		}
	}
	return nil
}
