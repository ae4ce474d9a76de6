package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/northgate-labs/agenthq/internal/observability"
)

var (
	eventsKind  string
	eventsSince string
	eventsJSON  bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print recorded engine events",
	Long: `Print events from the workspace event log: agent and task state
changes, messages, board postings, org moves, and delegation deliveries.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if EventLog == nil {
			return fmt.Errorf("event log not initialized")
		}
		filter := observability.EventFilter{Kind: eventsKind}
		if eventsSince != "" {
			since, err := parseSinceDuration(eventsSince)
			if err != nil {
				return fmt.Errorf("parsing --since: %w", err)
			}
			filter.Since = &since
		}
		events, err := EventLog.Read(filter)
		if err != nil {
			return fmt.Errorf("reading event log: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No events recorded.")
			return nil
		}
		for _, event := range events {
			if eventsJSON {
				data, err := json.Marshal(event)
				if err != nil {
					return fmt.Errorf("formatting event: %w", err)
				}
				fmt.Println(string(data))
				continue
			}
			fmt.Printf("[%s] %-22s %v\n", event.Time.Format(time.RFC3339), event.Kind, event.Data)
		}
		return nil
	},
}

// parseSinceDuration parses a human-friendly duration like "7d" or "24h"
// into the corresponding time in the past.
func parseSinceDuration(s string) (time.Time, error) {
	now := time.Now().UTC()
	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}
	suffix := s[len(s)-1]
	var num int
	if _, err := fmt.Sscanf(s[:len(s)-1], "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", string(suffix))
	}
}

func init() {
	eventsCmd.Flags().StringVar(&eventsKind, "kind", "", "filter by event kind")
	eventsCmd.Flags().StringVar(&eventsSince, "since", "", "time window, e.g. 7d or 24h")
	eventsCmd.Flags().BoolVar(&eventsJSON, "json", false, "print events as JSON lines")
	rootCmd.AddCommand(eventsCmd)
}
