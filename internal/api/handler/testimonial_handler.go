package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// TestimonialHandler serves the public testimonial listing and the admin
// management routes.
type TestimonialHandler struct {
	service ports.TestimonialService
	log     zerolog.Logger
}

func NewTestimonialHandler(service ports.TestimonialService, log zerolog.Logger) *TestimonialHandler {
	return &TestimonialHandler{service: service, log: log}
}

type createTestimonialRequest struct {
	ClientID string `json:"client_id"`
	Quote    string `json:"quote"`
	Rating   int    `json:"rating"`
	IsActive *bool  `json:"is_active"`
}

type updateTestimonialRequest struct {
	Quote    *string `json:"quote"`
	Rating   *int    `json:"rating"`
	IsActive *bool   `json:"is_active"`
}

type testimonialListResponse struct {
	Testimonials []testimonialView `json:"testimonials"`
	Pagination   paginationView    `json:"pagination"`
}

// ListPublic returns active testimonials only. No authentication required.
//
// @Summary      List public testimonials
// @Tags         testimonials
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  testimonialListResponse
// @Router       /api/testimonials [get]
func (h *TestimonialHandler) ListPublic(c echo.Context) error {
	f := ports.TestimonialFilter{
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	}

	result, err := h.service.ListPublic(c.Request().Context(), f)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.toListResponse(result))
}

// ListAll returns every testimonial, active or not.
//
// @Summary      List all testimonials
// @Tags         testimonials
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  testimonialListResponse
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /api/admin/testimonials [get]
func (h *TestimonialHandler) ListAll(c echo.Context) error {
	f := ports.TestimonialFilter{
		ClientID: c.QueryParam("client_id"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}

	result, err := h.service.ListAll(c.Request().Context(), identityFrom(c), f)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.toListResponse(result))
}

// Create records a testimonial for a customer.
//
// @Summary      Create a testimonial
// @Tags         testimonials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTestimonialRequest  true  "Testimonial details"
// @Success      201   {object}  testimonialView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/testimonials [post]
func (h *TestimonialHandler) Create(c echo.Context) error {
	var req createTestimonialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	testimonial, err := h.service.Create(c.Request().Context(), identityFrom(c), ports.CreateTestimonialInput{
		ClientID: req.ClientID,
		Quote:    req.Quote,
		Rating:   req.Rating,
		IsActive: active,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTestimonialView(testimonial, h.log))
}

// Update applies a partial update to a testimonial.
//
// @Summary      Update a testimonial
// @Tags         testimonials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Testimonial id"
// @Param        body  body      updateTestimonialRequest  true  "Fields to change"
// @Success      200   {object}  testimonialView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/testimonials/{id} [put]
func (h *TestimonialHandler) Update(c echo.Context) error {
	var req updateTestimonialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	testimonial, err := h.service.Update(c.Request().Context(), identityFrom(c), c.Param("id"), ports.UpdateTestimonialInput{
		Quote:    req.Quote,
		Rating:   req.Rating,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTestimonialView(testimonial, h.log))
}

// Delete removes a testimonial.
//
// @Summary      Delete a testimonial
// @Tags         testimonials
// @Security     BearerAuth
// @Param        id  path  string  true  "Testimonial id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/testimonials/{id} [delete]
func (h *TestimonialHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), identityFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TestimonialHandler) toListResponse(result *ports.ListResult[*domain.Testimonial]) testimonialListResponse {
	views := make([]testimonialView, 0, len(result.Items))
	for _, t := range result.Items {
		views = append(views, toTestimonialView(t, h.log))
	}
	return testimonialListResponse{Testimonials: views, Pagination: toPagination(result)}
}
