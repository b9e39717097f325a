package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/taskkeep/taskkeep/internal/ops"
	"github.com/taskkeep/taskkeep/internal/ui"
)

var (
	editTitle       string
	editDescription string
	editPriority    string
	editDueDate     string
	editClearDue    bool
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:     "edit [task_id]",
	Aliases: []string{"update"},
	Short:   "Edit an existing task",
	Long: `Edit the fields of an existing task. Only the fields you pass flags
for are changed; everything else is left untouched. Passing an empty
--description removes the description.

If no task_id is provided, an interactive list is shown.

Examples:
  taskkeep edit abc123 --title "New title"
  taskkeep edit abc123 -p high --due 2026-12-01
  taskkeep edit abc123 --clear-due`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if editClearDue && cmd.Flags().Changed("due") {
			HandleFatalError("Error: --due and --clear-due cannot be combined.", nil)
		}

		changes := ops.EditInput{ClearDue: editClearDue}
		if cmd.Flags().Changed("title") {
			changes.Title = &editTitle
		}
		if cmd.Flags().Changed("description") {
			changes.Description = &editDescription
		}
		if cmd.Flags().Changed("priority") {
			changes.Priority = &editPriority
		}
		if cmd.Flags().Changed("due") {
			changes.DueDate = &editDueDate
		}
		if changes.Title == nil && changes.Description == nil && changes.Priority == nil &&
			changes.DueDate == nil && !changes.ClearDue {
			HandleFatalError("Error: nothing to change. Pass at least one of --title, --description, --priority, --due or --clear-due.", nil)
		}

		svc, err := getService()
		if err != nil {
			HandleFatalError("Error: could not open the task store.", err)
		}

		var ref string
		if len(args) > 0 {
			ref = args[0]
		} else {
			selected, err := selectTaskInteractive(svc, nil, "Select task to edit")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Operation cancelled.")
					return
				}
				if err == ErrNoTasksFound {
					fmt.Println("No tasks available to edit.")
					return
				}
				if err == ErrNoTerminal {
					HandleFatalError("Error: no terminal attached. Pass a task_id argument instead.", err)
				}
				HandleFatalError("Error: could not select a task.", err)
			}
			ref = selected.ID
		}

		task, err := svc.EditTask(ref, changes)
		if err != nil {
			HandleFatalError(fmt.Sprintf("Error: could not edit task '%s'.", ref), err)
		}

		if isJSON() {
			if err := printJSON(task); err != nil {
				HandleFatalError("Error: could not encode task.", err)
			}
			return
		}

		fmt.Println(ui.StyleSuccess.Render("✓ Task updated"))
		fmt.Print(ui.RenderTaskDetail(task))
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new task title")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "new description (empty string removes it)")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "new priority (high, medium or low)")
	editCmd.Flags().StringVar(&editDueDate, "due", "", "new due date in YYYY-MM-DD format")
	editCmd.Flags().BoolVar(&editClearDue, "clear-due", false, "remove the due date")
}
