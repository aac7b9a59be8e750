package todos

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xyz-asif/todoapp/internal/pkg/logger"
	"github.com/xyz-asif/todoapp/internal/pkg/pagination"
	"github.com/xyz-asif/todoapp/internal/pkg/response"
	apperrors "github.com/xyz-asif/todoapp/pkg/errors"
)

type Handler struct {
	service   *Service
	validator *Validator
}

func NewHandler(service *Service, validator *Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

func notFoundDetail(id string) string {
	return fmt.Sprintf("Todo with ID '%s' was not found", id)
}

// todoID reads the id path parameter. Ids that are not UUIDs cannot name a
// todo, so they are answered with 404.
func (h *Handler) todoID(c *gin.Context) (string, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		h.fail(c, raw, fmt.Errorf("%w: %v", apperrors.ErrInvalidID, err))
		return "", false
	}
	return id.String(), true
}

func (h *Handler) fail(c *gin.Context, id string, err error) {
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrInvalidID) {
		response.NotFound(c, notFoundDetail(id))
		return
	}
	logger.Error("todo request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	response.InternalServerError(c)
}

// List godoc
// @Summary List todos
// @Description Filter, sort and optionally page the todo list
// @Tags todos
// @Produce json
// @Param status query string false "Status filter" Enums(all, active, completed)
// @Param priority query string false "Priority filter" Enums(all, low, medium, high)
// @Param search query string false "Case-insensitive match on title or description"
// @Param sortBy query string false "Sort field" Enums(title, priority, dueDate, createdAt, updatedAt)
// @Param sortDirection query string false "Sort direction" Enums(asc, desc)
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size (max 100)"
// @Success 200 {object} TodoListResponse
// @Failure 500 {object} response.ProblemDetails
// @Router /todos [get]
func (h *Handler) List(c *gin.Context) {
	params := ListParams{
		QueryParams: QueryParams{
			Status:        c.Query("status"),
			Priority:      c.Query("priority"),
			Search:        c.Query("search"),
			SortBy:        c.Query("sortBy"),
			SortDirection: c.Query("sortDirection"),
		},
		Page: pagination.FromQuery(c.Query("page"), c.Query("pageSize")),
	}

	result, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		h.fail(c, "", err)
		return
	}
	response.Success(c, result)
}

// Get godoc
// @Summary Get a todo by ID
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} TodoDTO
// @Failure 404 {object} response.ProblemDetails
// @Failure 500 {object} response.ProblemDetails
// @Router /todos/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.todoID(c)
	if !ok {
		return
	}

	todo, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, id, err)
		return
	}
	response.Success(c, todo)
}

// Create godoc
// @Summary Create a new todo
// @Description New todos start active; priority defaults to medium
// @Tags todos
// @Accept json
// @Produce json
// @Param request body CreateTodoRequest true "Todo creation data"
// @Success 201 {object} TodoDTO
// @Header 201 {string} Location "URL of the new todo"
// @Failure 400 {object} response.ProblemDetails
// @Failure 500 {object} response.ProblemDetails
// @Router /todos [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	errs, err := h.validator.ValidateCreate(&req)
	if err != nil {
		h.fail(c, "", err)
		return
	}
	if errs != nil {
		response.ValidationProblem(c, errs)
		return
	}

	todo, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "", err)
		return
	}

	location := strings.TrimSuffix(c.Request.URL.Path, "/") + "/" + todo.ID
	response.Created(c, location, todo)
}

// Update godoc
// @Summary Update a todo
// @Description Title and description are replaced; status, priority and dueDate only when supplied
// @Tags todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body UpdateTodoRequest true "Todo update data"
// @Success 200 {object} TodoDTO
// @Failure 400 {object} response.ProblemDetails
// @Failure 404 {object} response.ProblemDetails
// @Failure 500 {object} response.ProblemDetails
// @Router /todos/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.todoID(c)
	if !ok {
		return
	}

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	errs, err := h.validator.ValidateUpdate(&req)
	if err != nil {
		h.fail(c, id, err)
		return
	}
	if errs != nil {
		response.ValidationProblem(c, errs)
		return
	}

	todo, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, id, err)
		return
	}
	response.Success(c, todo)
}

// Delete godoc
// @Summary Delete a todo
// @Tags todos
// @Param id path string true "Todo ID"
// @Success 204
// @Failure 404 {object} response.ProblemDetails
// @Failure 500 {object} response.ProblemDetails
// @Router /todos/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.todoID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, id, err)
		return
	}
	response.NoContent(c)
}

// DeleteCompleted godoc
// @Summary Delete all completed todos
// @Tags todos
// @Produce json
// @Success 200 {object} BulkDeleteResponse
// @Failure 500 {object} response.ProblemDetails
// @Router /todos/completed [delete]
func (h *Handler) DeleteCompleted(c *gin.Context) {
	result, err := h.service.DeleteCompleted(c.Request.Context())
	if err != nil {
		h.fail(c, "", err)
		return
	}
	response.Success(c, result)
}
