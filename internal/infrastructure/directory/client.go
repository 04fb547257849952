// Package directory implements the REST client for the upstream user service,
// the sole authority on managed users, roles, and credit balances.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/routeai/admin-console/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

type tokenKey struct{}

// WithToken returns a context carrying the operator's bearer token. Requests
// made with it authenticate as the operator rather than the service account.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client talks JSON over HTTPS to the user service. Every call either
// succeeds, fails with a structured error body (*domain.RemoteError, kind
// mutation), or fails at the transport level (kind transport, generic
// message, no body to show).
type Client struct {
	baseURL      string
	serviceToken string
	http         *http.Client
	log          zerolog.Logger
}

func NewClient(baseURL, serviceToken string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		serviceToken: serviceToken,
		http:         &http.Client{Timeout: timeout},
		log:          log,
	}
}

// userRecord is the wire shape of a managed user as the service returns it.
type userRecord struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"displayName,omitempty"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	BalanceCents *int64     `json:"balanceCents,omitempty"`
}

type roleUpdateRequest struct {
	Role    string `json:"role"`
	Summary string `json:"summary,omitempty"`
}

type adjustCreditsRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Reason      string `json:"reason"`
}

type adjustCreditsResponse struct {
	NewBalanceCents int64 `json:"new_balance_cents"`
}

type errorBody struct {
	Error string `json:"error"`
}

// ListUsers retrieves the full managed-user list in server order.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var records []userRecord
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &records); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(records))
	for _, r := range records {
		role := domain.Role(r.Role)
		if !role.Valid() {
			// Never render a role outside the closed set.
			c.log.Warn().Str("user_id", r.ID).Str("role", r.Role).Msg("unknown role from user service, skipping row")
			continue
		}
		users = append(users, domain.User{
			ID:           r.ID,
			Email:        r.Email,
			DisplayName:  r.DisplayName,
			Role:         role,
			CreatedAt:    r.CreatedAt,
			LastLogin:    r.LastLogin,
			BalanceCents: r.BalanceCents,
		})
	}
	return users, nil
}

// UpdateRole sets the user's role. The response body is only an acknowledgment.
func (c *Client) UpdateRole(ctx context.Context, userID string, role domain.Role, summary string) error {
	path := fmt.Sprintf("/admin/users/%s/role", userID)
	return c.do(ctx, http.MethodPut, path, roleUpdateRequest{Role: string(role), Summary: summary}, nil)
}

// AdjustCredits applies a signed credit mutation and returns the new
// authoritative balance.
func (c *Client) AdjustCredits(ctx context.Context, userID string, amountCents int64, reason string) (int64, error) {
	path := fmt.Sprintf("/admin/users/%s/adjust-credits", userID)
	var resp adjustCreditsResponse
	if err := c.do(ctx, http.MethodPost, path, adjustCreditsRequest{AmountCents: amountCents, Reason: reason}, &resp); err != nil {
		return 0, err
	}
	return resp.NewBalanceCents, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := tokenFrom(ctx)
	if token == "" {
		token = c.serviceToken
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("user service unreachable")
		return &domain.RemoteError{Kind: domain.RemoteTransport, Message: "no response from user service"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.remoteError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &domain.RemoteError{Kind: domain.RemoteTransport, Message: "malformed response from user service"}
		}
	}
	return nil
}

// remoteError maps a non-2xx response to a mutation error, preferring the
// structured {"error": ...} body and falling back to a generic message.
func (c *Client) remoteError(resp *http.Response) error {
	var eb errorBody
	msg := fmt.Sprintf("request failed with status %d", resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Error != "" {
		msg = eb.Error
	}
	return &domain.RemoteError{
		Kind:       domain.RemoteMutation,
		StatusCode: resp.StatusCode,
		Message:    msg,
	}
}
