package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/northgate-labs/agenthq/internal/core"
	"github.com/northgate-labs/agenthq/internal/storage"
	"github.com/northgate-labs/agenthq/pkg/models"
)

var (
	taskDelegator  string
	taskParent     string
	taskContext    string
	taskPriority   int
	taskStatusFlag string
	taskAssignee   string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskCreateCmd = &cobra.Command{
	Use:   "create <assignee> <prompt>",
	Short: "Create a pending task for an agent",
	Long: `Create a new pending task. With --delegator and --parent-task, the
task becomes a delegation: its outcome is routed back into the parent
task assignee's mailbox on completion.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("engine not initialized")
		}
		var delegator, parent *string
		if taskDelegator != "" {
			delegator = &taskDelegator
		}
		if taskParent != "" {
			parent = &taskParent
		}
		task, err := Engine.CreateTask(core.CreateTaskParams{
			AssigneeID:   args[0],
			DelegatorID:  delegator,
			ParentTaskID: parent,
			Prompt:       args[1],
			Context:      taskContext,
			Priority:     taskPriority,
		})
		if err != nil {
			return fmt.Errorf("creating task: %w", err)
		}
		fmt.Printf("Created task %s for %s\n", task.ID, task.AssigneeID)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Tasks == nil {
			return fmt.Errorf("task store not initialized")
		}
		tasks, err := Tasks.List(storage.TaskFilter{
			Status:     models.TaskStatus(taskStatusFlag),
			AssigneeID: taskAssignee,
		})
		if err != nil {
			return fmt.Errorf("listing tasks: %w", err)
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}
		fmt.Printf("%-38s %-16s %-10s %-4s %s\n", "ID", "ASSIGNEE", "STATUS", "PRI", "PROMPT")
		for _, t := range tasks {
			prompt := t.Prompt
			if len(prompt) > 48 {
				prompt = prompt[:45] + "..."
			}
			fmt.Printf("%-38s %-16s %-10s %-4d %s\n", t.ID, t.AssigneeID, t.Status, t.Priority, prompt)
		}
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task's record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Tasks == nil {
			return fmt.Errorf("task store not initialized")
		}
		task, err := Tasks.Get(args[0])
		if err != nil {
			return fmt.Errorf("getting task: %w", err)
		}
		if task == nil {
			return fmt.Errorf("task %s not found", args[0])
		}
		fmt.Printf("ID:        %s\n", task.ID)
		fmt.Printf("Assignee:  %s\n", task.AssigneeID)
		if task.DelegatorID != nil {
			fmt.Printf("Delegator: %s\n", *task.DelegatorID)
		}
		if task.ParentTaskID != nil {
			fmt.Printf("Parent:    %s\n", *task.ParentTaskID)
		}
		fmt.Printf("Status:    %s\n", task.Status)
		fmt.Printf("Priority:  %d\n", task.Priority)
		fmt.Printf("Prompt:    %s\n", task.Prompt)
		if task.Context != "" {
			fmt.Printf("Context:   %s\n", task.Context)
		}
		if task.StartedAt != nil {
			fmt.Printf("Started:   %s\n", task.StartedAt)
		}
		if task.CompletedAt != nil {
			fmt.Printf("Completed: %s\n", task.CompletedAt)
		}
		if task.Result != nil {
			fmt.Printf("Result:    %s\n", *task.Result)
		}
		if task.Telemetry != nil {
			fmt.Printf("Cost:      $%.4f, %d ms, %d turns\n",
				task.Telemetry.CostUSD, task.Telemetry.DurationMS, task.Telemetry.TurnCount)
		}
		return nil
	},
}

func init() {
	taskCreateCmd.Flags().StringVar(&taskDelegator, "delegator", "", "delegating agent name")
	taskCreateCmd.Flags().StringVar(&taskParent, "parent-task", "", "delegating parent task id")
	taskCreateCmd.Flags().StringVar(&taskContext, "context", "", "additional context")
	taskCreateCmd.Flags().IntVar(&taskPriority, "priority", 0, "advisory priority, higher is more urgent")

	taskListCmd.Flags().StringVar(&taskStatusFlag, "status", "", "filter by status")
	taskListCmd.Flags().StringVar(&taskAssignee, "assignee", "", "filter by assignee")

	taskCmd.AddCommand(taskCreateCmd, taskListCmd, taskShowCmd)
	rootCmd.AddCommand(taskCmd)
}
