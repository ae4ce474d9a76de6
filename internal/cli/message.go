package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/northgate-labs/agenthq/internal/core"
	"github.com/northgate-labs/agenthq/pkg/models"
)

var (
	msgFrom    string
	msgThread  string
	msgSubject string
	msgType    string
)

var messageCmd = &cobra.Command{
	Use:     "message",
	Aliases: []string{"msg"},
	Short:   "Send and read messages between agents",
}

var messageSendCmd = &cobra.Command{
	Use:   "send <to> <body>",
	Short: "Send a message to an agent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("engine not initialized")
		}
		var from *string
		if msgFrom != "" {
			from = &msgFrom
		}
		msg, err := Engine.SendMessage(core.SendMessageParams{
			ThreadID:    msgThread,
			FromAgentID: from,
			ToAgentID:   args[0],
			Subject:     msgSubject,
			Body:        args[1],
			Type:        models.MessageType(msgType),
		})
		if err != nil {
			return fmt.Errorf("sending message: %w", err)
		}
		fmt.Printf("Sent message %s in thread %s\n", msg.ID, msg.ThreadID)
		return nil
	},
}

var messageInboxCmd = &cobra.Command{
	Use:   "unread <agent>",
	Short: "List an agent's unread messages, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Messages == nil {
			return fmt.Errorf("message store not initialized")
		}
		msgs, err := Messages.ListUnread(args[0])
		if err != nil {
			return fmt.Errorf("listing unread messages: %w", err)
		}
		if len(msgs) == 0 {
			fmt.Printf("No unread messages for %s.\n", args[0])
			return nil
		}
		for _, m := range msgs {
			from := "system"
			if m.FromAgentID != nil {
				from = *m.FromAgentID
			}
			fmt.Printf("[%s] %s -> %s (%s/%s)\n", m.CreatedAt.Format("2006-01-02 15:04"), from, m.ToAgentID, m.ThreadID, m.ID)
			if m.Subject != "" {
				fmt.Printf("  Subject: %s\n", m.Subject)
			}
			fmt.Printf("  %s\n", m.Body)
		}
		return nil
	},
}

var messageThreadCmd = &cobra.Command{
	Use:   "thread <thread-id>",
	Short: "Print a thread in chronological order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Messages == nil {
			return fmt.Errorf("message store not initialized")
		}
		msgs, err := Messages.ListThread(args[0])
		if err != nil {
			return fmt.Errorf("listing thread: %w", err)
		}
		if len(msgs) == 0 {
			fmt.Printf("Thread %s is empty.\n", args[0])
			return nil
		}
		for _, m := range msgs {
			from := "system"
			if m.FromAgentID != nil {
				from = *m.FromAgentID
			}
			fmt.Printf("[%s] %s -> %s: %s\n", m.CreatedAt.Format("2006-01-02 15:04"), from, m.ToAgentID, m.Body)
		}
		return nil
	},
}

var messageReadCmd = &cobra.Command{
	Use:   "read <thread-id> <message-id>",
	Short: "Mark a message as read",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("engine not initialized")
		}
		msg, err := Engine.MarkMessageRead(args[0], args[1])
		if err != nil {
			return fmt.Errorf("marking message read: %w", err)
		}
		if msg == nil {
			return fmt.Errorf("message %s not found in thread %s", args[1], args[0])
		}
		fmt.Printf("Marked message %s read\n", msg.ID)
		return nil
	},
}

func init() {
	messageSendCmd.Flags().StringVar(&msgFrom, "from", "", "sender agent name (omit for system)")
	messageSendCmd.Flags().StringVar(&msgThread, "thread", "", "existing thread id (omit to open a new thread)")
	messageSendCmd.Flags().StringVar(&msgSubject, "subject", "", "message subject")
	messageSendCmd.Flags().StringVar(&msgType, "type", "", "message type: direct, system, or chat")

	messageCmd.AddCommand(messageSendCmd, messageInboxCmd, messageThreadCmd, messageReadCmd)
	rootCmd.AddCommand(messageCmd)
}
