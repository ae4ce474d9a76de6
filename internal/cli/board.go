package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/northgate-labs/agenthq/internal/core"
	"github.com/northgate-labs/agenthq/pkg/models"
)

var (
	boardBody     string
	boardTypeFlag string
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Post to and read the shared board",
}

var boardPostCmd = &cobra.Command{
	Use:   "post <type> <author> <summary>",
	Short: "Post an item to the shared board",
	Long: `Post a status_update, blocker, finding, or request to the shared
board. Items are append-only markdown documents humans can read in place.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("engine not initialized")
		}
		item, err := Engine.PostBoardItem(core.PostBoardItemParams{
			Type:    models.BoardItemType(args[0]),
			Author:  args[1],
			Summary: args[2],
			Body:    boardBody,
		})
		if err != nil {
			return fmt.Errorf("posting board item: %w", err)
		}
		fmt.Printf("Posted %s %s\n", item.Type, item.ID)
		return nil
	},
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List board items, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Board == nil {
			return fmt.Errorf("board store not initialized")
		}
		var items []*models.BoardItem
		var err error
		if boardTypeFlag != "" {
			itemType := models.BoardItemType(boardTypeFlag)
			if !itemType.Valid() {
				return fmt.Errorf("invalid type %q", boardTypeFlag)
			}
			items, err = Board.List(itemType)
		} else {
			items, err = Board.ListAll()
		}
		if err != nil {
			return fmt.Errorf("listing board items: %w", err)
		}
		if len(items) == 0 {
			fmt.Println("The board is empty.")
			return nil
		}
		for _, item := range items {
			fmt.Printf("[%s] %-14s %s: %s\n",
				item.CreatedAt.Format("2006-01-02 15:04"), item.Type, item.Author, item.Summary)
		}
		return nil
	},
}

func init() {
	boardPostCmd.Flags().StringVar(&boardBody, "body", "", "free-form body text")
	boardListCmd.Flags().StringVar(&boardTypeFlag, "type", "", "filter by item type")

	boardCmd.AddCommand(boardPostCmd, boardListCmd)
	rootCmd.AddCommand(boardCmd)
}
