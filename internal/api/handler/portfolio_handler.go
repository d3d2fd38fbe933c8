package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// PortfolioHandler serves the public catalog; writes are admin only.
type PortfolioHandler struct {
	service ports.PortfolioService
}

func NewPortfolioHandler(service ports.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

type createPortfolioRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Tags        string `json:"tags"`
	ImageURL    string `json:"image_url"`
	LiveURL     string `json:"live_url"`
	RepoURL     string `json:"repo_url"`
	Featured    bool   `json:"featured"`
}

type updatePortfolioRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Tags        *string `json:"tags"`
	ImageURL    *string `json:"image_url"`
	LiveURL     *string `json:"live_url"`
	RepoURL     *string `json:"repo_url"`
	Featured    *bool   `json:"featured"`
}

type portfolioListResponse struct {
	Projects   []portfolioView `json:"projects"`
	Pagination paginationView  `json:"pagination"`
}

// List returns catalog entries. No authentication required.
//
// @Summary      List portfolio projects
// @Tags         portfolio
// @Produce      json
// @Param        category  query     string  false  "Filter by category"
// @Param        search    query     string  false  "Match title or tags"
// @Param        featured  query     bool    false  "Filter by featured flag"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  portfolioListResponse
// @Router       /api/portfolio [get]
func (h *PortfolioHandler) List(c echo.Context) error {
	f := ports.PortfolioFilter{
		Category: domain.PortfolioCategory(queryEnum(c, "category")),
		Search:   c.QueryParam("search"),
		Featured: queryBool(c, "featured"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}

	result, err := h.service.List(c.Request().Context(), f)
	if err != nil {
		return err
	}

	views := make([]portfolioView, 0, len(result.Items))
	for _, p := range result.Items {
		views = append(views, toPortfolioView(p))
	}
	return c.JSON(http.StatusOK, portfolioListResponse{Projects: views, Pagination: toPagination(result)})
}

// Get fetches one catalog entry. No authentication required.
//
// @Summary      Get a portfolio project
// @Tags         portfolio
// @Produce      json
// @Param        id   path      string  true  "Portfolio project id"
// @Success      200  {object}  portfolioView
// @Failure      404  {object}  map[string]string
// @Router       /api/portfolio/{id} [get]
func (h *PortfolioHandler) Get(c echo.Context) error {
	project, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPortfolioView(project))
}

// Create adds a catalog entry.
//
// @Summary      Create a portfolio project
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPortfolioRequest  true  "Entry details"
// @Success      201   {object}  portfolioView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/admin/portfolio [post]
func (h *PortfolioHandler) Create(c echo.Context) error {
	var req createPortfolioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	project, err := h.service.Create(c.Request().Context(), identityFrom(c), ports.CreatePortfolioInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
		LiveURL:     req.LiveURL,
		RepoURL:     req.RepoURL,
		Featured:    req.Featured,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toPortfolioView(project))
}

// Update applies a partial update to a catalog entry.
//
// @Summary      Update a portfolio project
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Portfolio project id"
// @Param        body  body      updatePortfolioRequest  true  "Fields to change"
// @Success      200   {object}  portfolioView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/portfolio/{id} [put]
func (h *PortfolioHandler) Update(c echo.Context) error {
	var req updatePortfolioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	project, err := h.service.Update(c.Request().Context(), identityFrom(c), c.Param("id"), ports.UpdatePortfolioInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
		LiveURL:     req.LiveURL,
		RepoURL:     req.RepoURL,
		Featured:    req.Featured,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPortfolioView(project))
}

// Delete removes a catalog entry.
//
// @Summary      Delete a portfolio project
// @Tags         portfolio
// @Security     BearerAuth
// @Param        id  path  string  true  "Portfolio project id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/portfolio/{id} [delete]
func (h *PortfolioHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), identityFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
