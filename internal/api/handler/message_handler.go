package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/httptim/clientportal/internal/core/ports"
)

// MessageHandler handles the per-project conversation routes.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type postMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

type messageListResponse struct {
	Messages   []messageView  `json:"messages"`
	Pagination paginationView `json:"pagination"`
}

// List returns the messages of a project's conversation, oldest first.
//
// @Summary      List project messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "Project id"
// @Param        read   query     bool    false  "Filter by read flag"
// @Param        page   query     int     false  "Page number"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  messageListResponse
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /api/projects/{id}/messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	f := ports.MessageFilter{
		Read:  queryBool(c, "read"),
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	}

	result, err := h.service.ListMessages(c.Request().Context(), identityFrom(c), c.Param("id"), f)
	if err != nil {
		return err
	}

	views := make([]messageView, 0, len(result.Items))
	for _, m := range result.Items {
		views = append(views, toMessageView(m))
	}
	return c.JSON(http.StatusOK, messageListResponse{Messages: views, Pagination: toPagination(result)})
}

// Post appends a message to a project's conversation, creating the thread on
// first use.
//
// @Summary      Post a project message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Project id"
// @Param        body  body      postMessageRequest  true  "Message body"
// @Success      201   {object}  messageView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/projects/{id}/messages [post]
func (h *MessageHandler) Post(c echo.Context) error {
	var req postMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.service.Post(c.Request().Context(), identityFrom(c), c.Param("id"), req.Body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toMessageView(message))
}

// MarkRead flags a message as read. Re-reading an already-read message is a
// no-op.
//
// @Summary      Mark a message read
// @Tags         messages
// @Security     BearerAuth
// @Param        id  path  string  true  "Message id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/messages/{id}/read [post]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	if err := h.service.MarkRead(c.Request().Context(), identityFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
