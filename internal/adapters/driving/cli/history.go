package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/voxrag/internal/core/domain"
)

var historyJSON bool

var (
	userLabel  = color.New(color.FgGreen, color.Bold).SprintFunc()
	agentLabel = color.New(color.FgCyan, color.Bold).SprintFunc()
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Show the logged turns of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

type historyLine struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output turns as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	turns, err := conversationService.History(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("history failed: %w", err)
	}

	if historyJSON {
		lines := make([]historyLine, len(turns))
		for i, t := range turns {
			lines[i] = historyLine{Role: t.Role.String(), Text: t.Text, Time: t.Timestamp}
		}
		data, err := json.MarshalIndent(lines, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(turns) == 0 {
		cmd.Println("No turns recorded.")
		return nil
	}
	for _, t := range turns {
		cmd.Printf("[%s] %s: %s\n", t.Timestamp.Local().Format(time.DateTime), roleLabel(t.Role), t.Text)
	}
	return nil
}

func roleLabel(role domain.Role) string {
	if role == domain.RoleAgent {
		return agentLabel(role.String())
	}
	return userLabel(role.String())
}
