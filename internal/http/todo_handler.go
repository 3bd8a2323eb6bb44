package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todo-api/internal/service"
)

// TodoHandler mantiene dependencias para endpoints de tareas.
type TodoHandler struct {
	logger   *zap.Logger
	todoServ *service.TodoService
}

// NewTodoHandler crea una instancia de TodoHandler con dependencias necesarias.
func NewTodoHandler(logger *zap.Logger, todoServ *service.TodoService) *TodoHandler {
	return &TodoHandler{
		logger:   logger,
		todoServ: todoServ,
	}
}

// Create maneja POST /todos. Los campos del body se persisten tal cual.
func (h *TodoHandler) Create(c *gin.Context) {
	var req struct {
		Text        string `json:"text"`
		Completed   bool   `json:"completed"`
		CompletedAt *int64 `json:"completedAt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create todo request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	todo, err := h.todoServ.Create(c.Request.Context(), service.CreateTodoInput{
		Text:        req.Text,
		Completed:   req.Completed,
		CompletedAt: req.CompletedAt,
	})
	if err != nil {
		h.logger.Warn("create todo failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not create todo"})
		return
	}

	c.JSON(http.StatusOK, todo)
}

// List maneja GET /todos.
func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.todoServ.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list todos failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not list todos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

// Get maneja GET /todos/:id. Un id con forma inválida se responde igual que
// uno inexistente: 404 con cuerpo vacío.
func (h *TodoHandler) Get(c *gin.Context) {
	todo, err := h.todoServ.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidTodoID) || errors.Is(err, service.ErrTodoNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("get todo failed", zap.Error(err))
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// Update maneja PATCH /todos/:id con una allow-list tipada: solo text y
// completed se leen del body, el resto se ignora.
func (h *TodoHandler) Update(c *gin.Context) {
	var req struct {
		Text      *string `json:"text"`
		Completed *bool   `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update todo request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	todo, err := h.todoServ.Update(c.Request.Context(), c.Param("id"), service.UpdateTodoInput{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidTodoID) || errors.Is(err, service.ErrTodoNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("update todo failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not update todo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// Delete maneja DELETE /todos/:id. El borrado es permanente e irreversible;
// se devuelve el registro eliminado.
func (h *TodoHandler) Delete(c *gin.Context) {
	todo, err := h.todoServ.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidTodoID) || errors.Is(err, service.ErrTodoNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("delete todo failed", zap.Error(err))
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}
