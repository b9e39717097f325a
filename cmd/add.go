package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskkeep/taskkeep/internal/ops"
	"github.com/taskkeep/taskkeep/internal/ui"
)

var (
	addDescription string
	addPriority    string
	addDueDate     string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a new task to your list. The title is required; description,
priority and due date are optional.

Examples:
  taskkeep add "Buy groceries"
  taskkeep add "Ship the release" -d "Tag, build and publish" -p high
  taskkeep add "Renew passport" --due 2026-10-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "longer description of the task")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "task priority (high, medium or low; default medium)")
	addCmd.Flags().StringVar(&addDueDate, "due", "", "due date in YYYY-MM-DD format")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))

	svc, err := getService()
	if err != nil {
		return fmt.Errorf("failed to open task store: %w", err)
	}

	task, err := svc.CreateTask(ops.CreateInput{
		Title:       title,
		Description: addDescription,
		Priority:    addPriority,
		DueDate:     addDueDate,
	})
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(task)
	}

	fmt.Println(ui.StyleSuccess.Render("✓ Task created"))
	fmt.Print(ui.RenderTaskDetail(task))
	return nil
}
