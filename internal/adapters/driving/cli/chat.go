package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/voxrag/internal/adapters/driving/tui"
)

var chatSession string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive terminal chat",
	Long: `Opens a terminal chat over the ingested documents. Earlier turns of the
session are shown first. Without --session a new session is started.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

// runTUI is replaced in tests.
var runTUI = tui.Run

func init() {
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "", "session ID to continue")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	session := chatSession
	if session == "" {
		session = uuid.NewString()
	}

	return runTUI(cmd.Context(), &tui.Ports{
		Answers:       answerService,
		Conversations: conversationService,
	}, session)
}
