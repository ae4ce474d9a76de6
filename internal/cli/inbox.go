package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/northgate-labs/agenthq/internal/core"
)

var inboxFull bool

var inboxCmd = &cobra.Command{
	Use:   "inbox <agent>",
	Short: "List an agent's delegated-task result artifacts",
	Long: `List the result artifacts delivered to an agent's mailbox by completed
delegated tasks, in arrival order. With --full the artifact contents are
printed as well.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Agents == nil {
			return fmt.Errorf("agent store not initialized")
		}
		entries, err := core.ReadInbox(Agents, args[0])
		if err != nil {
			return fmt.Errorf("reading inbox: %w", err)
		}
		if len(entries) == 0 {
			fmt.Printf("No results in %s's inbox.\n", args[0])
			return nil
		}
		for _, entry := range entries {
			fmt.Println(entry.Filename)
			if inboxFull {
				fmt.Println(entry.Content)
			}
		}
		return nil
	},
}

func init() {
	inboxCmd.Flags().BoolVar(&inboxFull, "full", false, "print artifact contents")
	rootCmd.AddCommand(inboxCmd)
}
