package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/httptim/clientportal/internal/api/metrics"
	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// InvoiceHandler handles invoice CRUD plus the payment flow: a manual
// mark-paid for admins and the provider order/capture pair for customers.
type InvoiceHandler struct {
	service ports.InvoiceService
}

func NewInvoiceHandler(service ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

type lineItemRequest struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type createInvoiceRequest struct {
	ProjectID string            `json:"project_id"`
	Number    string            `json:"number"`
	Amount    float64           `json:"amount"`
	DueDate   *time.Time        `json:"due_date"`
	LineItems []lineItemRequest `json:"line_items"`
}

type updateInvoiceRequest struct {
	Number  *string    `json:"number"`
	Amount  *float64   `json:"amount"`
	DueDate *time.Time `json:"due_date"`
}

type invoiceListResponse struct {
	Invoices   []invoiceView  `json:"invoices"`
	Pagination paginationView `json:"pagination"`
}

type paymentOrderResponse struct {
	OrderID    string `json:"order_id"`
	ApproveURL string `json:"approve_url"`
}

type capturePaymentRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// List returns invoices visible to the caller.
//
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  query     string  false  "Restrict to one project"
// @Param        status      query     string  false  "Filter by status"
// @Param        search      query     string  false  "Match invoice number"
// @Param        page        query     int     false  "Page number"
// @Param        limit       query     int     false  "Page size"
// @Success      200         {object}  invoiceListResponse
// @Failure      401         {object}  map[string]string
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	f := ports.InvoiceFilter{
		ProjectID: c.QueryParam("project_id"),
		Status:    domain.InvoiceStatus(queryEnum(c, "status")),
		Search:    c.QueryParam("search"),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	}

	result, err := h.service.List(c.Request().Context(), identityFrom(c), f)
	if err != nil {
		return err
	}

	now := time.Now()
	views := make([]invoiceView, 0, len(result.Items))
	for _, inv := range result.Items {
		views = append(views, toInvoiceView(inv, now))
	}
	return c.JSON(http.StatusOK, invoiceListResponse{Invoices: views, Pagination: toPagination(result)})
}

// Create issues a new invoice against a project.
//
// @Summary      Create an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createInvoiceRequest  true  "Invoice details"
// @Success      201   {object}  invoiceView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	items := make([]ports.LineItemInput, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		items = append(items, ports.LineItemInput{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		})
	}

	invoice, err := h.service.Create(c.Request().Context(), identityFrom(c), ports.CreateInvoiceInput{
		ProjectID: req.ProjectID,
		Number:    req.Number,
		Amount:    req.Amount,
		DueDate:   req.DueDate,
		LineItems: items,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toInvoiceView(invoice, time.Now()))
}

// Get fetches one invoice.
//
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice id"
// @Success      200  {object}  invoiceView
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) Get(c echo.Context) error {
	invoice, err := h.service.Get(c.Request().Context(), identityFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInvoiceView(invoice, time.Now()))
}

// Update applies a partial update to an invoice.
//
// @Summary      Update an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Invoice id"
// @Param        body  body      updateInvoiceRequest  true  "Fields to change"
// @Success      200   {object}  invoiceView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c echo.Context) error {
	var req updateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	invoice, err := h.service.Update(c.Request().Context(), identityFrom(c), c.Param("id"), ports.UpdateInvoiceInput{
		Number:  req.Number,
		Amount:  req.Amount,
		DueDate: req.DueDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toInvoiceView(invoice, time.Now()))
}

// Delete removes an invoice together with its payments and line items.
//
// @Summary      Delete an invoice
// @Tags         invoices
// @Security     BearerAuth
// @Param        id  path  string  true  "Invoice id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), identityFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Pay records a manual payment against an invoice. Paying an already-paid
// invoice is accepted and returns the unchanged record.
//
// @Summary      Mark an invoice paid
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice id"
// @Success      200  {object}  invoiceView
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/invoices/{id}/pay [post]
func (h *InvoiceHandler) Pay(c echo.Context) error {
	invoice, err := h.service.MarkPaid(c.Request().Context(), identityFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.PaymentsRecordedTotal.WithLabelValues("manual").Inc()
	return c.JSON(http.StatusOK, toInvoiceView(invoice, time.Now()))
}

// CreatePayPalOrder opens a provider order for an unpaid invoice and returns
// the approval link the customer is redirected to.
//
// @Summary      Create a PayPal order for an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice id"
// @Success      200  {object}  paymentOrderResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/invoices/{id}/paypal/order [post]
func (h *InvoiceHandler) CreatePayPalOrder(c echo.Context) error {
	order, err := h.service.CreatePaymentOrder(c.Request().Context(), identityFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentOrderResponse{OrderID: order.OrderID, ApproveURL: order.ApproveURL})
}

// CapturePayPal captures an approved provider order and records the payment.
//
// @Summary      Capture a PayPal order
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Invoice id"
// @Param        body  body      capturePaymentRequest  true  "Approved order id"
// @Success      200   {object}  invoiceView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/invoices/{id}/paypal/capture [post]
func (h *InvoiceHandler) CapturePayPal(c echo.Context) error {
	var req capturePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	invoice, err := h.service.CapturePayment(c.Request().Context(), identityFrom(c), c.Param("id"), req.OrderID)
	if err != nil {
		return err
	}
	metrics.PaymentsRecordedTotal.WithLabelValues("paypal").Inc()
	return c.JSON(http.StatusOK, toInvoiceView(invoice, time.Now()))
}
