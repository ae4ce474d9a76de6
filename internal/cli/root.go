// Package cli implements the agenthq command-line driver. The CLI is the
// external caller of the orchestration engine: it creates agents and
// tasks, spawns and completes runs, and inspects the workspace. Every
// error is rendered as plain text on stderr.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "agenthq",
	Short: "agenthq - file-backed agent org orchestrator",
	Long: `agenthq coordinates a tree-shaped collective of autonomous agents that
execute tasks handed down a management hierarchy and reports results back
up that hierarchy.

All state lives in plain files under the workspace directory: agent
records, task records, message threads, the shared board, and the org
chart. Spawn and complete calls drive the task state machine; delegated
results land in the delegating manager's mailbox.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("agenthq %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
