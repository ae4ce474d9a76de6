package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/northgate-labs/agenthq/internal/core"
	"github.com/northgate-labs/agenthq/pkg/models"
)

var (
	agentDisplayName string
	agentRole        string
	agentDepartment  string
	agentPersonality string
	agentLevel       string
	agentParent      string
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage agents",
}

var agentCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new agent",
	Long: `Create a new idle agent and place it in the org chart. With --parent
the agent reports to the named manager; otherwise it becomes a root.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("engine not initialized")
		}
		var parent *string
		if agentParent != "" {
			parent = &agentParent
		}
		agent, err := Engine.CreateAgent(core.CreateAgentParams{
			Name:            args[0],
			DisplayName:     agentDisplayName,
			Role:            agentRole,
			Department:      agentDepartment,
			Personality:     agentPersonality,
			Level:           models.AgentLevel(agentLevel),
			ParentAgentName: parent,
		})
		if err != nil {
			return fmt.Errorf("creating agent: %w", err)
		}
		fmt.Printf("Created agent %s (%s, %s)\n", agent.Name, agent.Role, agent.Level)
		return nil
	},
}

var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all agents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Agents == nil {
			return fmt.Errorf("agent store not initialized")
		}
		agents, err := Agents.List()
		if err != nil {
			return fmt.Errorf("listing agents: %w", err)
		}
		if len(agents) == 0 {
			fmt.Println("No agents found.")
			return nil
		}
		fmt.Printf("%-20s %-24s %-12s %-10s %s\n", "NAME", "ROLE", "LEVEL", "STATUS", "TASK")
		for _, a := range agents {
			task := "-"
			if a.CurrentTaskID != nil {
				task = *a.CurrentTaskID
			}
			fmt.Printf("%-20s %-24s %-12s %-10s %s\n", a.Name, a.Role, a.Level, a.Status, task)
		}
		return nil
	},
}

var agentShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one agent's record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Agents == nil {
			return fmt.Errorf("agent store not initialized")
		}
		agent, err := Agents.Get(args[0])
		if err != nil {
			return fmt.Errorf("getting agent: %w", err)
		}
		if agent == nil {
			return fmt.Errorf("agent %s not found", args[0])
		}
		fmt.Printf("Name:         %s\n", agent.Name)
		fmt.Printf("Display name: %s\n", agent.DisplayName)
		fmt.Printf("Role:         %s\n", agent.Role)
		fmt.Printf("Department:   %s\n", agent.Department)
		fmt.Printf("Level:        %s\n", agent.Level)
		fmt.Printf("Status:       %s\n", agent.Status)
		if agent.CurrentTaskID != nil {
			fmt.Printf("Current task: %s\n", *agent.CurrentTaskID)
		}
		if parent, err := OrgMgr.GetParent(agent.Name); err == nil && parent != nil {
			fmt.Printf("Reports to:   %s\n", *parent)
		}
		return nil
	},
}

var agentUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Update an agent's presentation fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("engine not initialized")
		}
		agent, err := Engine.UpdateAgent(args[0], core.UpdateAgentParams{
			DisplayName: agentDisplayName,
			Role:        agentRole,
			Department:  agentDepartment,
			Personality: agentPersonality,
			Level:       models.AgentLevel(agentLevel),
		})
		if err != nil {
			return fmt.Errorf("updating agent: %w", err)
		}
		fmt.Printf("Updated agent %s\n", agent.Name)
		return nil
	},
}

var agentDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a non-running agent",
	Long: `Delete an agent's record, mailbox included, and remove it from the org
chart. Its direct reports escalate to its own manager. A running agent
cannot be deleted; complete it first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("engine not initialized")
		}
		if err := Engine.DeleteAgent(args[0]); err != nil {
			return fmt.Errorf("deleting agent: %w", err)
		}
		fmt.Printf("Deleted agent %s\n", args[0])
		return nil
	},
}

func init() {
	agentCreateCmd.Flags().StringVar(&agentDisplayName, "display-name", "", "human-friendly name")
	agentCreateCmd.Flags().StringVar(&agentRole, "role", "", "job role")
	agentCreateCmd.Flags().StringVar(&agentDepartment, "department", "", "department name")
	agentCreateCmd.Flags().StringVar(&agentPersonality, "personality", "", "personality notes")
	agentCreateCmd.Flags().StringVar(&agentLevel, "level", "", "rank: intern, associate, manager, director, vp, executive")
	agentCreateCmd.Flags().StringVar(&agentParent, "parent", "", "manager's agent name")

	agentUpdateCmd.Flags().StringVar(&agentDisplayName, "display-name", "", "human-friendly name")
	agentUpdateCmd.Flags().StringVar(&agentRole, "role", "", "job role")
	agentUpdateCmd.Flags().StringVar(&agentDepartment, "department", "", "department name")
	agentUpdateCmd.Flags().StringVar(&agentPersonality, "personality", "", "personality notes")
	agentUpdateCmd.Flags().StringVar(&agentLevel, "level", "", "rank")

	agentCmd.AddCommand(agentCreateCmd, agentListCmd, agentShowCmd, agentUpdateCmd, agentDeleteCmd)
	rootCmd.AddCommand(agentCmd)
}
