// Package stripe is a minimal client for the slices of the Stripe API the
// checkout flow uses: creating payment intents and verifying webhook
// deliveries. The API is spoken natively over its form-encoded REST
// surface; nothing else of the processor is wrapped.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/config"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
)

const apiVersion = "2023-08-16"

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(cfg config.StripeConfig) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

type paymentIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// CreatePaymentIntent prepares a charge for the given amount without
// collecting it. Payment method selection is left to the processor, with
// redirects disabled because the frontend drives the flow.
func (c *Client) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*domain.PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	form.Set("automatic_payment_methods[allow_redirects]", "never")
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	intent, err := postForm[paymentIntentResponse](c, ctx, "/v1/payment_intents", form)
	if err != nil {
		return nil, err
	}

	return &domain.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func postForm[Resp any](c *Client, ctx context.Context, path string, form url.Values) (*Resp, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Stripe-Version", apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Err.Message == "" {
			return nil, fmt.Errorf("stripe returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, &Error{
			Type:       errResp.Err.Type,
			Code:       errResp.Err.Code,
			Message:    errResp.Err.Message,
			StatusCode: resp.StatusCode,
		}
	}

	var apiResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &apiResp, nil
}
