package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	metricsJSON  bool
	metricsSince string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display workspace metrics",
	Long: `Display aggregated metrics derived from the event log: agents and
tasks created, tasks by terminal status, messages sent, board posts,
and delegation deliveries.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (observability may be disabled)")
		}

		sinceTime, err := parseSinceDuration(metricsSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}
		metrics, err := MetricsCalc.Calculate(sinceTime)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		if metricsJSON {
			data, err := json.MarshalIndent(metrics, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting metrics as JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Metrics (since %s)\n\n", sinceTime.Format("2006-01-02"))
		fmt.Printf("  %-24s %d\n", "Events recorded:", metrics.EventCount)
		fmt.Printf("  %-24s %d\n", "Agents created:", metrics.AgentsCreated)
		fmt.Printf("  %-24s %d\n", "Tasks created:", metrics.TasksCreated)
		fmt.Printf("  %-24s %d\n", "Messages sent:", metrics.MessagesSent)
		fmt.Printf("  %-24s %d\n", "Board posts:", metrics.BoardPosts)
		fmt.Printf("  %-24s %d\n", "Results delivered:", metrics.ResultsDelivered)

		if len(metrics.TasksByStatus) > 0 {
			fmt.Println("\n  Task transitions by status:")
			for status, count := range metrics.TasksByStatus {
				fmt.Printf("    %-20s %d\n", status+":", count)
			}
		}
		return nil
	},
}

func init() {
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "output metrics as JSON")
	metricsCmd.Flags().StringVar(&metricsSince, "since", "7d", "time window, e.g. 7d or 24h")
	rootCmd.AddCommand(metricsCmd)
}
