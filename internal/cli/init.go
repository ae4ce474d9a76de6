package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/northgate-labs/agenthq/internal/core"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize an agenthq workspace in the current directory",
	Long: `Create the workspace skeleton: agents/, tasks/, messages/, board/,
an empty org.json, and a default .agenthq.yaml configuration file.

Running init on an existing workspace is safe and changes nothing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := core.InitWorkspace(BasePath); err != nil {
			return err
		}
		fmt.Printf("Initialized agenthq workspace in %s\n", BasePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
