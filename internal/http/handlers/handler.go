package handlers

import (
	"strconv"

	"todo_webapp/internal/service"
)

// Generic per-operation messages. Details stay in the server log.
const (
	msgFetchFailed  = "Failed to fetch todos"
	msgCreateFailed = "Failed to create todo"
	msgUpdateFailed = "Failed to update todo"
	msgDeleteFailed = "Failed to delete todo"

	msgTitleRequired   = "Title is required"
	msgInvalidID       = "Invalid id"
	msgInvalidBody     = "Invalid request body"
	msgNothingToUpdate = "Nothing to update"
	msgNotFound        = "Todo not found"
)

type Handler struct {
	Todos *service.TodoService
}

func NewHandler(todos *service.TodoService) *Handler {
	return &Handler{Todos: todos}
}

// parseID extracts the numeric :id path parameter
func parseID(c interface{ Param(string) string }) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
