package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/voxrag/internal/core/domain"
)

var (
	askSession string
	askJSON    bool
	askSpeak   bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the ingested documents",
	Long: `Retrieves the most relevant chunks, asks the configured LLM and logs
both turns under the session. Without --session a new session ID is generated.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

type askOutput struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
	AudioPath string `json:"audio_path,omitempty"`
}

func init() {
	askCmd.Flags().StringVarP(&askSession, "session", "s", "", "session ID to log the turns under")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVar(&askSpeak, "speak", false, "also synthesise the answer to a file")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(args[0])
	if question == "" {
		return domain.ErrNoInput
	}

	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	session := askSession
	if session == "" {
		session = uuid.NewString()
	}

	answer, err := answerService.Ask(cmd.Context(), session, question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	out := askOutput{SessionID: session, Text: answer}
	if askSpeak {
		path, _, err := speechService.SynthesizeToFile(cmd.Context(), answer)
		if err != nil {
			return fmt.Errorf("synthesise answer: %w", err)
		}
		out.AudioPath = path
	}

	if askJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer)
	if out.AudioPath != "" {
		cmd.Printf("Audio: %s\n", out.AudioPath)
	}
	if askSession == "" {
		cmd.Printf("Session: %s\n", session)
	}
	return nil
}
