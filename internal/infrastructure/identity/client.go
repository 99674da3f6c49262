// Package identity resolves bearer tokens to users. Two adapters exist:
// an HTTP client delegating to the auth provider's user endpoint, and a
// local verifier for deployments sharing the token signing secret. Both
// fail closed: any failure reads as "no user".
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/application"
	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
)

// Client looks the caller up against a GoTrue-style auth endpoint. One
// call per request, no retries; a transport failure reads the same as an
// unauthenticated caller.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) GetCurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, application.ErrNoUser
	}

	url := fmt.Sprintf("%s/auth/v1/user", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, application.ErrNoUser
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, application.ErrNoUser
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, application.ErrNoUser
	}
	if user.ID == "" {
		return nil, application.ErrNoUser
	}

	return &user, nil
}
