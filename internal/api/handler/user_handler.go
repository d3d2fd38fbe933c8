package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// UserHandler handles the account management routes. Listing, creating,
// updating and deleting are admin operations; a customer can fetch themselves.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Company *string `json:"company"`
	Phone   *string `json:"phone"`
}

type userListResponse struct {
	Users      []userView     `json:"users"`
	Pagination paginationView `json:"pagination"`
}

// List returns accounts, paged and optionally filtered by role or search.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role    query     string  false  "Filter by role (admin/customer)"
// @Param        search  query     string  false  "Match name, email or company"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  userListResponse
// @Failure      401     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	f := ports.UserFilter{
		Role:   domain.Role(queryEnum(c, "role")),
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}

	result, err := h.service.List(c.Request().Context(), identityFrom(c), f)
	if err != nil {
		return err
	}

	views := make([]userView, 0, len(result.Items))
	for _, u := range result.Items {
		views = append(views, toUserView(u))
	}
	return c.JSON(http.StatusOK, userListResponse{Users: views, Pagination: toPagination(result)})
}

// Create registers a new account.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  userView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Create(c.Request().Context(), identityFrom(c), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Company:  req.Company,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     domain.Role(enumValue(req.Role)),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUserView(user))
}

// Get fetches one account. Admins read anyone; customers only themselves.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userView
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), identityFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserView(user))
}

// Update applies a partial update to an account.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Update(c.Request().Context(), identityFrom(c), c.Param("id"), ports.UpdateUserInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserView(user))
}

// Delete removes an account.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), identityFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
