package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// ProjectHandler handles the project routes. Customers see only their own
// projects; admins see everything and are the only ones who can write.
type ProjectHandler struct {
	service ports.ProjectService
	log     zerolog.Logger
}

func NewProjectHandler(service ports.ProjectService, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{service: service, log: log}
}

type createProjectRequest struct {
	ClientID    string     `json:"client_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Budget      float64    `json:"budget"`
}

type updateProjectRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Budget      *float64   `json:"budget"`
}

type projectListResponse struct {
	Projects   []projectView  `json:"projects"`
	Pagination paginationView `json:"pagination"`
}

// List returns projects visible to the caller.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        search  query     string  false  "Match name or description"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  projectListResponse
// @Failure      401     {object}  map[string]string
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	f := ports.ProjectFilter{
		Status: domain.ProjectStatus(queryEnum(c, "status")),
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}

	result, err := h.service.List(c.Request().Context(), identityFrom(c), f)
	if err != nil {
		return err
	}

	views := make([]projectView, 0, len(result.Items))
	for _, p := range result.Items {
		views = append(views, toProjectView(p, h.log))
	}
	return c.JSON(http.StatusOK, projectListResponse{Projects: views, Pagination: toPagination(result)})
}

// Create starts a new project for a customer.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  projectView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	project, err := h.service.Create(c.Request().Context(), identityFrom(c), ports.CreateProjectInput{
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ProjectStatus(enumValue(req.Status)),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toProjectView(project, h.log))
}

// Get fetches one project.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  projectView
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.Get(c.Request().Context(), identityFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectView(project, h.log))
}

// Update applies a partial update to a project.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  projectView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var status *domain.ProjectStatus
	if req.Status != nil {
		s := domain.ProjectStatus(enumValue(*req.Status))
		status = &s
	}

	project, err := h.service.Update(c.Request().Context(), identityFrom(c), c.Param("id"), ports.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProjectView(project, h.log))
}

// Delete removes a project together with its tasks and conversation.
//
// @Summary      Delete a project
// @Tags         projects
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), identityFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
