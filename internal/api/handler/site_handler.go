package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/httptim/clientportal/internal/api/metrics"
	"github.com/httptim/clientportal/internal/core/ports"
)

// SiteHandler serves the public site surface: the singleton configuration
// and the contact form.
type SiteHandler struct {
	config  ports.SiteConfigService
	contact ports.ContactService
}

func NewSiteHandler(config ports.SiteConfigService, contact ports.ContactService) *SiteHandler {
	return &SiteHandler{config: config, contact: contact}
}

type updateSiteConfigRequest struct {
	HeroTitle    *string `json:"hero_title"`
	HeroSubtitle *string `json:"hero_subtitle"`
	AboutText    *string `json:"about_text"`
	ContactEmail *string `json:"contact_email"`
	GithubURL    *string `json:"github_url"`
	LinkedinURL  *string `json:"linkedin_url"`
}

type submitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Message string `json:"message"`
}

type contactListResponse struct {
	Submissions []contactView  `json:"submissions"`
	Pagination  paginationView `json:"pagination"`
}

// GetConfig returns the site configuration. No authentication required.
//
// @Summary      Get site configuration
// @Tags         site
// @Produce      json
// @Success      200  {object}  siteConfigView
// @Router       /api/site-config [get]
func (h *SiteHandler) GetConfig(c echo.Context) error {
	cfg, err := h.config.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSiteConfigView(cfg))
}

// UpdateConfig applies a partial update to the site configuration.
//
// @Summary      Update site configuration
// @Tags         site
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateSiteConfigRequest  true  "Fields to change"
// @Success      200   {object}  siteConfigView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/admin/site-config [put]
func (h *SiteHandler) UpdateConfig(c echo.Context) error {
	var req updateSiteConfigRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	cfg, err := h.config.Update(c.Request().Context(), identityFrom(c), ports.UpdateSiteConfigInput{
		HeroTitle:    req.HeroTitle,
		HeroSubtitle: req.HeroSubtitle,
		AboutText:    req.AboutText,
		ContactEmail: req.ContactEmail,
		GithubURL:    req.GithubURL,
		LinkedinURL:  req.LinkedinURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSiteConfigView(cfg))
}

// SubmitContact accepts a public contact form submission.
//
// @Summary      Submit the contact form
// @Tags         site
// @Accept       json
// @Produce      json
// @Param        body  body      submitContactRequest  true  "Submission"
// @Success      201   {object}  contactView
// @Failure      400   {object}  map[string]string
// @Router       /api/contact [post]
func (h *SiteHandler) SubmitContact(c echo.Context) error {
	var req submitContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	submission, err := h.contact.Submit(c.Request().Context(), ports.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	metrics.ContactSubmissionsTotal.Inc()

	return c.JSON(http.StatusCreated, toContactView(submission))
}

// ListContact returns contact submissions for the admin inbox.
//
// @Summary      List contact submissions
// @Tags         site
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Match name or email"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  contactListResponse
// @Failure      401     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Router       /api/admin/contact [get]
func (h *SiteHandler) ListContact(c echo.Context) error {
	f := ports.ContactFilter{
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}

	result, err := h.contact.List(c.Request().Context(), identityFrom(c), f)
	if err != nil {
		return err
	}

	views := make([]contactView, 0, len(result.Items))
	for _, s := range result.Items {
		views = append(views, toContactView(s))
	}
	return c.JSON(http.StatusOK, contactListResponse{Submissions: views, Pagination: toPagination(result)})
}

// DeleteContact removes a contact submission.
//
// @Summary      Delete a contact submission
// @Tags         site
// @Security     BearerAuth
// @Param        id  path  string  true  "Submission id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/contact/{id} [delete]
func (h *SiteHandler) DeleteContact(c echo.Context) error {
	if err := h.contact.Delete(c.Request().Context(), identityFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
