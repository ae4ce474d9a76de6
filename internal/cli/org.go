package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/northgate-labs/agenthq/pkg/models"
)

var orgParentFlag string

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Manage the org chart",
}

var (
	orgNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	orgMetaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var orgChartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Print the org chart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if OrgMgr == nil {
			return fmt.Errorf("org manager not initialized")
		}
		doc, err := OrgMgr.Chart()
		if err != nil {
			return fmt.Errorf("loading org chart: %w", err)
		}
		if len(doc.Roots) == 0 {
			fmt.Println("Org chart is empty.")
			return nil
		}
		for _, root := range doc.Roots {
			printOrgNode(root, 0)
		}
		return nil
	},
}

func printOrgNode(node *models.OrgNode, depth int) {
	indent := strings.Repeat("  ", depth)
	meta := ""
	if agent, err := Agents.Get(node.AgentName); err == nil && agent != nil {
		meta = orgMetaStyle.Render(fmt.Sprintf("  %s, %s", agent.Role, agent.Status))
	}
	fmt.Printf("%s%s%s\n", indent, orgNameStyle.Render(node.AgentName), meta)
	for _, child := range node.Children {
		printOrgNode(child, depth+1)
	}
}

var orgSetParentCmd = &cobra.Command{
	Use:   "set-parent <agent>",
	Short: "Move an agent under a new manager",
	Long: `Move an agent, subtree intact, under the manager named by --parent, or
to the root of the org chart when --parent is omitted. Moves that would
make an agent its own ancestor are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("engine not initialized")
		}
		var parent *string
		if orgParentFlag != "" {
			parent = &orgParentFlag
		}
		if err := Engine.SetAgentParent(args[0], parent); err != nil {
			return fmt.Errorf("moving agent: %w", err)
		}
		if parent == nil {
			fmt.Printf("Agent %s is now a root\n", args[0])
		} else {
			fmt.Printf("Agent %s now reports to %s\n", args[0], *parent)
		}
		return nil
	},
}

var orgRemoveCmd = &cobra.Command{
	Use:   "remove <agent>",
	Short: "Remove an agent from the org chart",
	Long: `Remove an agent's org node only (the agent record is untouched). The
removed node's direct reports escalate to its own manager, or become
roots when the removed node was a root.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if OrgMgr == nil {
			return fmt.Errorf("org manager not initialized")
		}
		if err := OrgMgr.RemoveAgent(args[0]); err != nil {
			return fmt.Errorf("removing agent from org: %w", err)
		}
		fmt.Printf("Removed %s from the org chart\n", args[0])
		return nil
	},
}

func init() {
	orgSetParentCmd.Flags().StringVar(&orgParentFlag, "parent", "", "new manager's agent name")

	orgCmd.AddCommand(orgChartCmd, orgSetParentCmd, orgRemoveCmd)
	rootCmd.AddCommand(orgCmd)
}
