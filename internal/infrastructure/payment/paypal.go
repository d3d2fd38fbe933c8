// Package payment implements the ports.PaymentProvider contract against the
// PayPal Orders v2 REST API.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

const requestTimeout = 15 * time.Second

// PayPalClient talks to the PayPal sandbox or live API. It performs exactly
// two operations per invoice — create order, capture order — with no retry or
// reconciliation on top; provider failures surface as domain.ErrUpstream.
type PayPalClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       zerolog.Logger
}

func NewPayPalClient(baseURL, clientID, clientSecret string, logger zerolog.Logger) *PayPalClient {
	return &PayPalClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: requestTimeout},
		logger:       logger,
	}
}

// CreateOrder creates a PayPal order for the invoice amount and returns the
// approval link the customer must visit.
func (c *PayPalClient) CreateOrder(ctx context.Context, inv *domain.Invoice) (*ports.PaymentOrder, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"reference_id": inv.ID,
			"description":  "Invoice " + inv.Number,
			"amount": map[string]string{
				"currency_code": "USD",
				"value":         strconv.FormatFloat(inv.Amount, 'f', 2, 64),
			},
		}},
	}

	var resp struct {
		ID    string `json:"id"`
		Links []struct {
			Href string `json:"href"`
			Rel  string `json:"rel"`
		} `json:"links"`
	}
	if err := c.postJSON(ctx, "/v2/checkout/orders", token, body, &resp); err != nil {
		return nil, err
	}

	order := &ports.PaymentOrder{OrderID: resp.ID}
	for _, l := range resp.Links {
		if l.Rel == "approve" {
			order.ApproveURL = l.Href
		}
	}

	c.logger.Info().Str("invoice_id", inv.ID).Str("order_id", order.OrderID).Msg("paypal order created")
	return order, nil
}

// CaptureOrder captures an approved order and reports the provider status.
func (c *PayPalClient) CaptureOrder(ctx context.Context, orderID string) (*ports.CaptureResult, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Status string `json:"status"`
	}
	path := "/v2/checkout/orders/" + url.PathEscape(orderID) + "/capture"
	if err := c.postJSON(ctx, path, token, map[string]any{}, &resp); err != nil {
		return nil, err
	}

	c.logger.Info().Str("order_id", orderID).Str("status", resp.Status).Msg("paypal order captured")
	return &ports.CaptureResult{Status: resp.Status}, nil
}

// accessToken fetches a client-credentials token. Tokens are not cached; the
// provider's own rate limits are generous relative to portal traffic.
func (c *PayPalClient) accessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token request: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token request returned %d", domain.ErrUpstream, resp.StatusCode)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("%w: decode token: %v", domain.ErrUpstream, err)
	}
	return tok.AccessToken, nil
}

func (c *PayPalClient) postJSON(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error().Int("status", resp.StatusCode).Str("path", path).Str("body", string(detail)).Msg("paypal request failed")
		return fmt.Errorf("%w: %s returned %d", domain.ErrUpstream, path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
