package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"todo_webapp/internal/domain"
)

// run executes one CLI invocation against file-backed local storage in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--storage=local", "--local-backend=file", "--data-dir=" + dir}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func addJSON(t *testing.T, dir, title string) domain.Todo {
	t.Helper()
	out, err := run(t, dir, "--json", "add", title)
	if err != nil {
		t.Fatalf("add %q: %v", title, err)
	}
	var todo domain.Todo
	if err := json.Unmarshal([]byte(out), &todo); err != nil {
		t.Fatalf("decode add output %q: %v", out, err)
	}
	return todo
}

func TestAddAndList(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "add", "buy", "milk")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "buy milk") || !strings.Contains(out, "demo mode") {
		t.Fatalf("unexpected add output: %q", out)
	}

	out, err = run(t, dir, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "[ ]") || !strings.Contains(out, "buy milk") {
		t.Fatalf("unexpected list output: %q", out)
	}
}

func TestListEmpty(t *testing.T) {
	out, err := run(t, t.TempDir(), "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No todos yet.") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestDoneUndoRenameRemove(t *testing.T) {
	dir := t.TempDir()
	todo := addJSON(t, dir, "write report")
	id := strconv.FormatInt(todo.ID, 10)

	if _, err := run(t, dir, "done", id); err != nil {
		t.Fatalf("done: %v", err)
	}
	out, _ := run(t, dir, "list")
	if !strings.Contains(out, "[x]") {
		t.Fatalf("expected done mark, got %q", out)
	}

	if _, err := run(t, dir, "undo", id); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if _, err := run(t, dir, "rename", id, "write", "final", "report"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	out, err := run(t, dir, "--json", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var todos []domain.Todo
	if err := json.Unmarshal([]byte(out), &todos); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(todos) != 1 || todos[0].Title != "write final report" || todos[0].Done {
		t.Fatalf("unexpected todos: %+v", todos)
	}

	if _, err := run(t, dir, "rm", id); err != nil {
		t.Fatalf("rm: %v", err)
	}
	if _, err := run(t, dir, "rm", id); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("second rm: expected not found, got %v", err)
	}
}

func TestAddRejectsBlankTitle(t *testing.T) {
	_, err := run(t, t.TempDir(), "add", "   ")
	if err == nil || err.Error() != "Title is required" {
		t.Fatalf("expected title error, got %v", err)
	}
}

func TestInvalidID(t *testing.T) {
	_, err := run(t, t.TempDir(), "done", "abc")
	if err == nil || !strings.Contains(err.Error(), "invalid id") {
		t.Fatalf("expected invalid id error, got %v", err)
	}
}

func TestModeCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "mode")
	if err != nil {
		t.Fatalf("mode: %v", err)
	}
	if !strings.Contains(out, "storage: local") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestUnknownStorageMode(t *testing.T) {
	cmd := newRootCommand("test")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--storage=floppy", "list"})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected error for unknown storage mode")
	}
}

func TestHelpNeedsNoStorage(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	for _, args := range [][]string{{"help"}, {"completion", "bash"}, {"list", "--help"}} {
		cmd := newRootCommand("test")
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"--storage=database"}, args...))
		if err := cmd.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if out.Len() == 0 {
			t.Fatalf("%v: expected output", args)
		}
	}
}

func TestDatabaseModeWithoutURLFailsOnUse(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cmd := newRootCommand("test")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--storage=database", "list"})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected list to fail without DATABASE_URL")
	}
}

func TestRedisDBFromEnv(t *testing.T) {
	cases := map[string]int{"": 0, "3": 3, "abc": 0, "-1": 0}
	for v, want := range cases {
		t.Setenv("REDIS_DB", v)
		if got := redisDB(); got != want {
			t.Fatalf("REDIS_DB=%q: got %d; want %d", v, got, want)
		}
	}
}
