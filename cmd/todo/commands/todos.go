package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/logger"

	"github.com/spf13/cobra"
)

// Generic messages shown per operation; the detail goes to the log.
const (
	msgFetchFailed  = "Failed to fetch todos"
	msgCreateFailed = "Failed to create todo"
	msgUpdateFailed = "Failed to update todo"
	msgDeleteFailed = "Failed to delete todo"
)

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			todos, err := f.List(cmd.Context())
			if err != nil {
				return userError("list", 0, err, msgFetchFailed)
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), todos)
			}
			printTodos(cmd.OutOrStdout(), todos, f.IsLocalMode())
			return nil
		},
	}
}

func newAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			title := strings.TrimSpace(strings.Join(args, " "))
			todo, err := f.Create(cmd.Context(), title)
			if err != nil {
				return userError("create", 0, err, msgCreateFailed)
			}
			return a.printOne(cmd, "Added", todo)
		},
	}
}

// newDoneCommand builds "done" (mark finished) or "undo" (mark open).
func newDoneCommand(a *app, done bool) *cobra.Command {
	use, short, verb := "done <id>", "Mark a todo as done", "Completed"
	if !done {
		use, short, verb = "undo <id>", "Mark a todo as not done", "Reopened"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			todo, err := f.Update(cmd.Context(), id, domain.TodoPatch{Done: &done})
			if err != nil {
				return userError("update", id, err, msgUpdateFailed)
			}
			return a.printOne(cmd, verb, todo)
		},
	}
}

func newRenameCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title...>",
		Short: "Change a todo's title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			title := strings.TrimSpace(strings.Join(args[1:], " "))
			todo, err := f.Update(cmd.Context(), id, domain.TodoPatch{Title: &title})
			if err != nil {
				return userError("update", id, err, msgUpdateFailed)
			}
			return a.printOne(cmd, "Renamed", todo)
		},
	}
}

func newRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			if err := f.Delete(cmd.Context(), id); err != nil {
				return userError("delete", id, err, msgDeleteFailed)
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]bool{"success": true})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%d\n", id)
			return nil
		},
	}
}

func newModeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mode",
		Short: "Show which storage backend is in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"mode":       f.Mode(),
					"local_mode": f.IsLocalMode(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "storage: %s%s\n", f.Mode(), localSuffix(f.IsLocalMode()))
			return nil
		},
	}
}

func (a *app) printOne(cmd *cobra.Command, verb string, todo *domain.Todo) error {
	if a.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), todo)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s #%d: %s%s\n", verb, todo.ID, todo.Title, localSuffix(a.facade.IsLocalMode()))
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// userError logs err in full and returns what the user should see:
// the reason for bad input or a missing id, the generic message otherwise.
func userError(op string, id int64, err error, generic string) error {
	log := logger.With("op", op, "error", err)
	if id != 0 {
		log = log.With("id", id)
	}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Warn("todo operation rejected")
		return errors.New(verr.Reason)
	case domain.IsNotFound(err):
		log.Warn("todo operation rejected")
		return fmt.Errorf("todo #%d not found", id)
	default:
		log.Error("todo operation failed")
		return errors.New(generic)
	}
}
