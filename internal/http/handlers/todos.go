package handlers

import (
	"errors"
	"io"
	"net/http"

	"todo_webapp/internal/domain"

	"github.com/gin-gonic/gin"
)

// ListTodos returns every todo, newest first
func (h *Handler) ListTodos(c *gin.Context) {
	todos, err := h.Todos.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgFetchFailed})
		return
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	c.JSON(http.StatusOK, todos)
}

// CreateTodo expects {title:string}
func (h *Handler) CreateTodo(c *gin.Context) {
	var req struct {
		Title *string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgTitleRequired})
		return
	}

	todo, err := h.Todos.Create(c.Request.Context(), *req.Title)
	if err != nil {
		if domain.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgTitleRequired})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgCreateFailed})
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// UpdateTodo applies {title?, done?} to the todo with :id
func (h *Handler) UpdateTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidID})
		return
	}

	var patch domain.TodoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		if errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgNothingToUpdate})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNothingToUpdate})
		return
	}

	todo, err := h.Todos.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeStoreError(c, err, msgUpdateFailed)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// DeleteTodo removes the todo with :id
func (h *Handler) DeleteTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidID})
		return
	}

	if err := h.Todos.Delete(c.Request.Context(), id); err != nil {
		writeStoreError(c, err, msgDeleteFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func writeStoreError(c *gin.Context, err error, generic string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic})
	}
}
