package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keydesk/keydesk/internal/errors"
	"github.com/keydesk/keydesk/internal/logging"
)

// TokenSource supplies the current session credential for outbound calls.
// An empty token means unauthenticated; the request is sent without an
// Authorization header and the server is expected to reject it.
type TokenSource interface {
	Token() string
}

// Client talks to the key assignment service. All methods are safe for
// concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	log     *logging.Logger
}

// NewClient creates a Client for the service at baseURL. Every request uses
// the given timeout and carries the credential from tokens.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log *logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log.With("component", "api"),
	}
}

// List retrieves the entire collection of key assignments. No query
// parameters are sent; the caller consumes the collection wholesale.
func (c *Client) List(ctx context.Context) ([]KeyAssignment, error) {
	var assignments []KeyAssignment
	if err := c.do(ctx, errors.OpList, http.MethodGet, "/api/key-assignments/", nil, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

type issueRequest struct {
	StaffID string `json:"staff_id"`
	KeyID   string `json:"key_id"`
	Status  Status `json:"status"`
}

// Issue creates a new assignment in Issued state. The server assigns the
// record ID and issue time.
func (c *Client) Issue(ctx context.Context, staffID, keyID string) (*KeyAssignment, error) {
	if staffID == "" {
		return nil, errors.NewValidationError("Staff ID")
	}
	if keyID == "" {
		return nil, errors.NewValidationError("Key ID")
	}

	body := issueRequest{StaffID: staffID, KeyID: keyID, Status: StatusIssued}
	var created KeyAssignment
	if err := c.do(ctx, errors.OpIssue, http.MethodPost, "/api/key-assignments/", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

type returnRequest struct {
	Status     Status `json:"status"`
	ReturnTime string `json:"return_time"`
}

// Return marks the assignment with the given id as returned, stamping the
// provided return time. This is a partial update; the server merges it into
// the existing record.
func (c *Client) Return(ctx context.Context, id int, returnTime time.Time) (*KeyAssignment, error) {
	body := returnRequest{
		Status:     StatusReturned,
		ReturnTime: returnTime.UTC().Format(time.RFC3339),
	}
	path := fmt.Sprintf("/api/key-assignments/%d/", id)
	var updated KeyAssignment
	if err := c.do(ctx, errors.OpReturn, http.MethodPatch, path, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a session token at the token endpoint.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" {
		return "", errors.NewValidationError("Username")
	}
	if password == "" {
		return "", errors.NewValidationError("Password")
	}

	body := loginRequest{Username: username, Password: password}
	var resp loginResponse
	if err := c.do(ctx, errors.OpLogin, http.MethodPost, "/api-token-auth/", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// do performs one request against the service. A non-2xx response or a
// transport failure becomes an APIError tagged with op.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.NewAPIError(op, 0, fmt.Errorf("encoding request: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.NewAPIError(op, 0, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Error("request failed", "op", op, "request_id", requestID, "error", err)
		return errors.NewAPIError(op, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		c.log.Error("request rejected", "op", op, "request_id", requestID, "status", resp.StatusCode)
		return errors.NewAPIError(op, resp.StatusCode, fmt.Errorf("server returned %s", resp.Status))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.log.Error("decoding response failed", "op", op, "request_id", requestID, "error", err)
			return errors.NewAPIError(op, 0, fmt.Errorf("decoding response: %w", err))
		}
	}

	c.log.Debug("request complete", "op", op, "request_id", requestID, "status", resp.StatusCode)
	return nil
}
