package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskkeep/taskkeep/internal/ops"
	"github.com/taskkeep/taskkeep/models"
	"github.com/taskkeep/taskkeep/types"
)

// setupCmdEnv points the global configuration at a fresh temporary data
// directory so command handlers run against a throwaway store.
func setupCmdEnv(t *testing.T) {
	t.Helper()
	GlobalAppConfig = types.AppConfig{
		Data: types.DataConfig{
			Dir:  t.TempDir(),
			File: "tasks.json",
		},
	}
}

func resetAddFlags() {
	addDescription = ""
	addPriority = ""
	addDueDate = ""
}

func TestAddCommand_Structure(t *testing.T) {
	assert.Equal(t, "add <title>", addCmd.Use)
	for _, name := range []string{"description", "priority", "due"} {
		if addCmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %q not registered on add", name)
		}
	}
}

func TestRunAdd_CreatesTask(t *testing.T) {
	setupCmdEnv(t)
	resetAddFlags()
	addPriority = "high"
	addDescription = "Cover the command layer"

	err := runAdd(addCmd, []string{"Write", "tests"})
	require.NoError(t, err)

	svc, err := getService()
	require.NoError(t, err)
	tasks, err := svc.ListTasks(ops.ListFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, "Write tests", tasks[0].Title)
	assert.Equal(t, models.PriorityHigh, tasks[0].Priority)
	require.NotNil(t, tasks[0].Description)
	assert.Equal(t, "Cover the command layer", *tasks[0].Description)
}

func TestRunAdd_RejectsPastDueDate(t *testing.T) {
	setupCmdEnv(t)
	resetAddFlags()
	addDueDate = time.Now().AddDate(0, 0, -1).Format(models.DateLayout)

	err := runAdd(addCmd, []string{"Late task"})
	assert.Error(t, err)

	svc, err := getService()
	require.NoError(t, err)
	tasks, err := svc.ListTasks(ops.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestRunAdd_RejectsEmptyTitle(t *testing.T) {
	setupCmdEnv(t)
	resetAddFlags()

	err := runAdd(addCmd, []string{"   "})
	assert.Error(t, err)
}
