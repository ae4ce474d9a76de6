package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/northgate-labs/agenthq/internal/core"
	"github.com/northgate-labs/agenthq/pkg/models"
)

var (
	completeResult   string
	completeCostUSD  float64
	completeDuration int64
	completeTurns    int
)

var spawnCmd = &cobra.Command{
	Use:   "spawn <agent> <task-id>",
	Short: "Start an agent on a pending task",
	Long: `Move a pending task to running and mark the agent as its occupant.

Spawning is gated by the configured concurrent agent limit; when the
limit is reached the command fails and must be retried after another
agent completes. Nothing is queued.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("engine not initialized")
		}
		if _, err := Engine.SpawnAgent(cmd.Context(), args[0], args[1]); err != nil {
			if errors.Is(err, core.ErrAgentLimit) {
				return fmt.Errorf("%w: retry after another agent completes", err)
			}
			return fmt.Errorf("spawning agent: %w", err)
		}
		fmt.Printf("Agent %s is running task %s (%d/%d slots in use)\n",
			args[0], args[1], Engine.RunningCount(), Engine.MaxAgents())
		return nil
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <agent> <status>",
	Short: "Record a terminal outcome for an agent's current task",
	Long: `Record the outcome of the agent's current task: completed, failed, or
blocked. The agent returns to idle and its concurrency slot is freed.
When the task was delegated, the result is written into the delegating
manager's mailbox.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("engine not initialized")
		}
		status := models.TaskStatus(args[1])
		if !status.IsTerminal() {
			return fmt.Errorf("status %q is not terminal (use completed, failed, or blocked)", args[1])
		}
		outcome := core.CompleteResult{Status: status}
		if completeResult != "" {
			outcome.Result = &completeResult
		}
		if completeCostUSD != 0 || completeDuration != 0 || completeTurns != 0 {
			outcome.Telemetry = &models.TaskTelemetry{
				CostUSD:    completeCostUSD,
				DurationMS: completeDuration,
				TurnCount:  completeTurns,
			}
		}
		if err := Engine.CompleteAgent(args[0], outcome); err != nil {
			return fmt.Errorf("completing agent: %w", err)
		}
		fmt.Printf("Agent %s completed with status %s\n", args[0], status)
		return nil
	},
}

var runningCmd = &cobra.Command{
	Use:   "running",
	Short: "List currently running agents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("engine not initialized")
		}
		running := Engine.RunningAgents()
		if len(running) == 0 {
			fmt.Println("No agents running.")
			return nil
		}
		for name, taskID := range running {
			fmt.Printf("%s -> %s\n", name, taskID)
		}
		return nil
	},
}

func init() {
	completeCmd.Flags().StringVar(&completeResult, "result", "", "result text (omit for no result)")
	completeCmd.Flags().Float64Var(&completeCostUSD, "cost", 0, "execution cost in USD")
	completeCmd.Flags().Int64Var(&completeDuration, "duration-ms", 0, "execution duration in milliseconds")
	completeCmd.Flags().IntVar(&completeTurns, "turns", 0, "conversation turn count")

	rootCmd.AddCommand(spawnCmd, completeCmd, runningCmd)
}
