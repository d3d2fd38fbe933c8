package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// TaskHandler handles the task routes. Access is scoped transitively through
// the owning project.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Assignee    string     `json:"assignee"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Assignee    *string    `json:"assignee"`
}

type taskListResponse struct {
	Tasks      []taskView     `json:"tasks"`
	Pagination paginationView `json:"pagination"`
}

// List returns tasks visible to the caller, optionally restricted to one
// project.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  query     string  false  "Restrict to one project"
// @Param        status      query     string  false  "Filter by status"
// @Param        priority    query     string  false  "Filter by priority"
// @Param        search      query     string  false  "Match title or description"
// @Param        page        query     int     false  "Page number"
// @Param        limit       query     int     false  "Page size"
// @Success      200         {object}  taskListResponse
// @Failure      401         {object}  map[string]string
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	f := ports.TaskFilter{
		ProjectID: c.QueryParam("project_id"),
		Status:    domain.TaskStatus(queryEnum(c, "status")),
		Priority:  domain.TaskPriority(queryEnum(c, "priority")),
		Search:    c.QueryParam("search"),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	}

	result, err := h.service.List(c.Request().Context(), identityFrom(c), f)
	if err != nil {
		return err
	}

	views := make([]taskView, 0, len(result.Items))
	for _, t := range result.Items {
		views = append(views, toTaskView(t))
	}
	return c.JSON(http.StatusOK, taskListResponse{Tasks: views, Pagination: toPagination(result)})
}

// Create adds a task to a project.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.Create(c.Request().Context(), identityFrom(c), ports.CreateTaskInput{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(enumValue(req.Status)),
		Priority:    domain.TaskPriority(enumValue(req.Priority)),
		DueDate:     req.DueDate,
		Assignee:    req.Assignee,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTaskView(task))
}

// Get fetches one task.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskView
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	task, err := h.service.Get(c.Request().Context(), identityFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskView(task))
}

// Update applies a partial update to a task.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  taskView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var status *domain.TaskStatus
	if req.Status != nil {
		s := domain.TaskStatus(enumValue(*req.Status))
		status = &s
	}
	var priority *domain.TaskPriority
	if req.Priority != nil {
		p := domain.TaskPriority(enumValue(*req.Priority))
		priority = &p
	}

	task, err := h.service.Update(c.Request().Context(), identityFrom(c), c.Param("id"), ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
		Assignee:    req.Assignee,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTaskView(task))
}

// Delete removes a task.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), identityFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
