package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"todo_webapp/internal/domain"
)

const localNote = " (demo mode: saved locally)"

func localSuffix(local bool) string {
	if local {
		return localNote
	}
	return ""
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTodos(w io.Writer, todos []domain.Todo, local bool) {
	if local {
		fmt.Fprintln(w, "Demo mode: todos are saved locally.")
	}
	if len(todos) == 0 {
		fmt.Fprintln(w, "No todos yet.")
		return
	}
	for _, t := range todos {
		mark := " "
		if t.Done {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s] #%-14d %s\n", mark, t.ID, t.Title)
	}
}
