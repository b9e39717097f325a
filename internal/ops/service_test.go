package ops

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/taskkeep/taskkeep/models"
	"github.com/taskkeep/taskkeep/store"
)

// newTestService returns a Service backed by a real file store in a
// temporary directory, plus the store for direct seeding.
func newTestService(t *testing.T) (*Service, *store.FileTaskStore) {
	t.Helper()
	st, err := store.NewFileTaskStore(filepath.Join(t.TempDir(), "tasks.json"))
	if err != nil {
		t.Fatalf("NewFileTaskStore() error = %v", err)
	}
	return NewService(st), st
}

func mustCreate(t *testing.T, svc *Service, in CreateInput) models.Task {
	t.Helper()
	task, err := svc.CreateTask(in)
	if err != nil {
		t.Fatalf("CreateTask(%+v) error = %v", in, err)
	}
	return task
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(models.DateLayout)
}

func pastDate(days int) string {
	return time.Now().AddDate(0, 0, -days).Format(models.DateLayout)
}

func TestCreateTask(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateInput
		wantErr bool
	}{
		{"title only", CreateInput{Title: "Buy milk"}, false},
		{"all fields", CreateInput{Title: "Ship release", Description: "Tag and push", Priority: "high", DueDate: futureDate(7)}, false},
		{"due today", CreateInput{Title: "Stand-up notes", DueDate: time.Now().Format(models.DateLayout)}, false},
		{"empty title", CreateInput{Title: "   "}, true},
		{"invalid priority", CreateInput{Title: "Task", Priority: "urgent"}, true},
		{"malformed due date", CreateInput{Title: "Task", DueDate: "31-12-2030"}, true},
		{"past due date", CreateInput{Title: "Task", DueDate: pastDate(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			task, err := svc.CreateTask(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateTask() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if task.ID == "" {
				t.Error("expected a generated ID")
			}
			if task.Status != models.StatusActive {
				t.Errorf("Status = %q, want %q", task.Status, models.StatusActive)
			}
			got, err := svc.GetTask(task.ID)
			if err != nil {
				t.Fatalf("GetTask() after create error = %v", err)
			}
			if got.Title != task.Title {
				t.Errorf("persisted title = %q, want %q", got.Title, task.Title)
			}
		})
	}
}

func TestCreateTask_AppliesDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	task := mustCreate(t, svc, CreateInput{Title: "  Water plants  "})
	if task.Title != "Water plants" {
		t.Errorf("Title = %q, want trimmed", task.Title)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, want %q", task.Priority, models.PriorityMedium)
	}
	if task.Description != nil || task.DueDate != nil || task.CompletedAt != nil {
		t.Error("optional fields should start unset")
	}
}

func TestResolveTask(t *testing.T) {
	svc, st := newTestService(t)

	first := models.NewTask("First")
	first.ID = "aaaa1111-0000-0000-0000-000000000000"
	second := models.NewTask("Second")
	second.ID = "aaab2222-0000-0000-0000-000000000000"
	third := models.NewTask("Third")
	third.ID = "bbbb3333-0000-0000-0000-000000000000"
	for _, task := range []models.Task{first, second, third} {
		if err := st.Add(task); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	t.Run("exact ID", func(t *testing.T) {
		got, err := svc.ResolveTask(first.ID)
		if err != nil {
			t.Fatalf("ResolveTask() error = %v", err)
		}
		if got.Title != "First" {
			t.Errorf("Title = %q, want First", got.Title)
		}
	})

	t.Run("unique prefix", func(t *testing.T) {
		got, err := svc.ResolveTask("bbbb")
		if err != nil {
			t.Fatalf("ResolveTask() error = %v", err)
		}
		if got.Title != "Third" {
			t.Errorf("Title = %q, want Third", got.Title)
		}
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		_, err := svc.ResolveTask("aaa")
		if err == nil {
			t.Fatal("expected an error for an ambiguous prefix")
		}
		if !strings.Contains(err.Error(), "ambiguous") {
			t.Errorf("error = %v, want mention of ambiguity", err)
		}
		if !strings.Contains(err.Error(), first.ID) || !strings.Contains(err.Error(), second.ID) {
			t.Errorf("error = %v, want candidate IDs listed", err)
		}
	})

	t.Run("no match", func(t *testing.T) {
		_, err := svc.ResolveTask("ffff")
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("empty reference", func(t *testing.T) {
		if _, err := svc.ResolveTask(""); err == nil {
			t.Error("expected an error for an empty reference")
		}
	})
}

func TestListTasks_Filters(t *testing.T) {
	svc, _ := newTestService(t)

	mustCreate(t, svc, CreateInput{Title: "Active high", Priority: "high"})
	mustCreate(t, svc, CreateInput{Title: "Active low", Priority: "low"})
	done := mustCreate(t, svc, CreateInput{Title: "Done high", Priority: "high"})
	if _, err := svc.CompleteTask(done.ID); err != nil {
		t.Fatalf("CompleteTask() error = %v", err)
	}

	active := models.StatusActive
	completed := models.StatusCompleted
	high := models.PriorityHigh

	tests := []struct {
		name       string
		filter     ListFilter
		wantTitles []string
	}{
		{"no filter", ListFilter{}, []string{"Done high", "Active low", "Active high"}},
		{"active only", ListFilter{Status: &active}, []string{"Active low", "Active high"}},
		{"completed only", ListFilter{Status: &completed}, []string{"Done high"}},
		{"high priority", ListFilter{Priority: &high}, []string{"Done high", "Active high"}},
		{"active and high", ListFilter{Status: &active, Priority: &high}, []string{"Active high"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListTasks(tt.filter)
			if err != nil {
				t.Fatalf("ListTasks() error = %v", err)
			}
			if len(got) != len(tt.wantTitles) {
				t.Fatalf("got %d tasks, want %d", len(got), len(tt.wantTitles))
			}
			for i, want := range tt.wantTitles {
				if got[i].Title != want {
					t.Errorf("task %d = %q, want %q", i, got[i].Title, want)
				}
			}
		})
	}
}

func TestListTasks_SortByDueDate(t *testing.T) {
	svc, _ := newTestService(t)

	mustCreate(t, svc, CreateInput{Title: "No date"})
	mustCreate(t, svc, CreateInput{Title: "Later", DueDate: futureDate(14)})
	mustCreate(t, svc, CreateInput{Title: "Soon", DueDate: futureDate(2)})

	got, err := svc.ListTasks(ListFilter{SortBy: SortByDueDate})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	wantOrder := []string{"Soon", "Later", "No date"}
	for i, want := range wantOrder {
		if got[i].Title != want {
			t.Errorf("task %d = %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestListTasks_SortByPriority(t *testing.T) {
	svc, _ := newTestService(t)

	mustCreate(t, svc, CreateInput{Title: "Low", Priority: "low"})
	mustCreate(t, svc, CreateInput{Title: "Medium one"})
	mustCreate(t, svc, CreateInput{Title: "High", Priority: "high"})
	mustCreate(t, svc, CreateInput{Title: "Medium two"})

	got, err := svc.ListTasks(ListFilter{SortBy: SortByPriority})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	// Stable sort keeps the two medium tasks in file order.
	wantOrder := []string{"High", "Medium one", "Medium two", "Low"}
	for i, want := range wantOrder {
		if got[i].Title != want {
			t.Errorf("task %d = %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestListTasks_InvalidSortKey(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.ListTasks(ListFilter{SortBy: "title"}); err == nil {
		t.Error("expected an error for an unknown sort key")
	}
}

func TestCompleteAndReopenTask(t *testing.T) {
	svc, _ := newTestService(t)
	task := mustCreate(t, svc, CreateInput{Title: "Finish report"})

	completed, err := svc.CompleteTask(task.ID)
	if err != nil {
		t.Fatalf("CompleteTask() error = %v", err)
	}
	if completed.Status != models.StatusCompleted || completed.CompletedAt == nil {
		t.Fatalf("task not marked completed: %+v", completed)
	}
	firstStamp := *completed.CompletedAt

	// Completing again refreshes the stamp instead of failing.
	time.Sleep(5 * time.Millisecond)
	again, err := svc.CompleteTask(task.ID)
	if err != nil {
		t.Fatalf("CompleteTask() second call error = %v", err)
	}
	if !again.CompletedAt.After(firstStamp) {
		t.Error("expected the completion timestamp to be refreshed")
	}

	reopened, err := svc.ReopenTask(task.ID)
	if err != nil {
		t.Fatalf("ReopenTask() error = %v", err)
	}
	if reopened.Status != models.StatusActive || reopened.CompletedAt != nil {
		t.Fatalf("task not reopened: %+v", reopened)
	}

	got, err := svc.GetTask(task.ID)
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if got.Status != models.StatusActive {
		t.Errorf("persisted status = %q, want %q", got.Status, models.StatusActive)
	}
}

func TestEditTask(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("updates fields", func(t *testing.T) {
		svc, _ := newTestService(t)
		task := mustCreate(t, svc, CreateInput{Title: "Old title", Description: "Old text"})

		due := futureDate(3)
		got, err := svc.EditTask(task.ID, EditInput{
			Title:    strPtr("  New title  "),
			Priority: strPtr("high"),
			DueDate:  &due,
		})
		if err != nil {
			t.Fatalf("EditTask() error = %v", err)
		}
		if got.Title != "New title" {
			t.Errorf("Title = %q, want trimmed New title", got.Title)
		}
		if got.Priority != models.PriorityHigh {
			t.Errorf("Priority = %q, want high", got.Priority)
		}
		if got.DueDate == nil || *got.DueDate != due {
			t.Errorf("DueDate = %v, want %s", got.DueDate, due)
		}
		if got.Description == nil || *got.Description != "Old text" {
			t.Error("untouched description should survive the edit")
		}
	})

	t.Run("clears description", func(t *testing.T) {
		svc, _ := newTestService(t)
		task := mustCreate(t, svc, CreateInput{Title: "Task", Description: "Remove me"})

		got, err := svc.EditTask(task.ID, EditInput{Description: strPtr("")})
		if err != nil {
			t.Fatalf("EditTask() error = %v", err)
		}
		if got.Description != nil {
			t.Errorf("Description = %q, want nil", *got.Description)
		}
	})

	t.Run("clears due date", func(t *testing.T) {
		svc, _ := newTestService(t)
		task := mustCreate(t, svc, CreateInput{Title: "Task", DueDate: futureDate(5)})

		got, err := svc.EditTask(task.ID, EditInput{ClearDue: true})
		if err != nil {
			t.Fatalf("EditTask() error = %v", err)
		}
		if got.DueDate != nil {
			t.Errorf("DueDate = %q, want nil", *got.DueDate)
		}
	})

	t.Run("rejects past due date", func(t *testing.T) {
		svc, _ := newTestService(t)
		task := mustCreate(t, svc, CreateInput{Title: "Task"})

		past := pastDate(2)
		if _, err := svc.EditTask(task.ID, EditInput{DueDate: &past}); err == nil {
			t.Error("expected an error for a past due date")
		}
	})

	t.Run("rejects empty title", func(t *testing.T) {
		svc, _ := newTestService(t)
		task := mustCreate(t, svc, CreateInput{Title: "Task"})

		if _, err := svc.EditTask(task.ID, EditInput{Title: strPtr("  ")}); err == nil {
			t.Error("expected an error for an empty title")
		}
	})

	t.Run("keeps stored past date editable", func(t *testing.T) {
		svc, st := newTestService(t)
		stale := models.NewTask("Stale")
		overdue := pastDate(30)
		stale.DueDate = &overdue
		if err := st.Add(stale); err != nil {
			t.Fatalf("Add() error = %v", err)
		}

		got, err := svc.EditTask(stale.ID, EditInput{Title: strPtr("Still stale")})
		if err != nil {
			t.Fatalf("EditTask() error = %v", err)
		}
		if got.DueDate == nil || *got.DueDate != overdue {
			t.Error("existing due date should survive an unrelated edit")
		}
	})

	t.Run("unknown reference", func(t *testing.T) {
		svc, _ := newTestService(t)
		if _, err := svc.EditTask("missing", EditInput{Title: strPtr("x")}); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestDeleteTask(t *testing.T) {
	svc, _ := newTestService(t)
	task := mustCreate(t, svc, CreateInput{Title: "Remove me"})
	mustCreate(t, svc, CreateInput{Title: "Keep me"})

	deleted, err := svc.DeleteTask(task.ID[:8])
	if err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if deleted.Title != "Remove me" {
		t.Errorf("deleted title = %q, want Remove me", deleted.Title)
	}

	if _, err := svc.GetTask(task.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetTask() after delete error = %v, want ErrNotFound", err)
	}
	remaining, err := svc.ListTasks(ListFilter{})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(remaining) != 1 || remaining[0].Title != "Keep me" {
		t.Errorf("remaining tasks = %+v, want only Keep me", remaining)
	}
}

func TestClearCompleted(t *testing.T) {
	svc, _ := newTestService(t)

	keep := mustCreate(t, svc, CreateInput{Title: "Keep"})
	doneA := mustCreate(t, svc, CreateInput{Title: "Done A"})
	doneB := mustCreate(t, svc, CreateInput{Title: "Done B"})
	for _, id := range []string{doneA.ID, doneB.ID} {
		if _, err := svc.CompleteTask(id); err != nil {
			t.Fatalf("CompleteTask() error = %v", err)
		}
	}

	cleared, err := svc.ClearCompleted()
	if err != nil {
		t.Fatalf("ClearCompleted() error = %v", err)
	}
	if len(cleared) != 2 {
		t.Fatalf("cleared %d tasks, want 2", len(cleared))
	}
	if cleared[0].Title != "Done A" || cleared[1].Title != "Done B" {
		t.Errorf("cleared order = [%s, %s], want file order", cleared[0].Title, cleared[1].Title)
	}

	remaining, err := svc.ListTasks(ListFilter{})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != keep.ID {
		t.Errorf("remaining = %+v, want only the active task", remaining)
	}
}

func TestClearCompleted_NothingToDo(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreate(t, svc, CreateInput{Title: "Active"})

	cleared, err := svc.ClearCompleted()
	if err != nil {
		t.Fatalf("ClearCompleted() error = %v", err)
	}
	if len(cleared) != 0 {
		t.Errorf("cleared %d tasks, want 0", len(cleared))
	}
}
