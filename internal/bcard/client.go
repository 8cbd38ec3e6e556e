package bcard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/bcard-portal/internal/config"
	"github.com/spec-kit/bcard-portal/internal/domain"
	"github.com/spec-kit/bcard-portal/internal/observability"
	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

// Client talks to the remote card directory. It is the only component that
// touches the wire; everything above it sees domain types and the client
// error taxonomy.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewClient builds a directory client.
func NewClient(cfg config.RemoteConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
		metrics: metrics,
	}
}

// ListCards fetches the full card collection. The endpoint is public and
// serves no pagination.
func (c *Client) ListCards(ctx context.Context) ([]domain.Card, error) {
	var cards []domain.Card
	if err := c.do(ctx, http.MethodGet, "/cards", "", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// GetCard fetches a single card. A missing record, or a response without a
// usable title, are both reported as NotFound: downstream views treat them
// as "card unavailable".
func (c *Client) GetCard(ctx context.Context, id string) (*domain.Card, error) {
	var card domain.Card
	if err := c.do(ctx, http.MethodGet, "/cards/"+id, "", nil, &card); err != nil {
		return nil, err
	}
	if card.Title == "" {
		return nil, apperrors.NewNotFound("card")
	}
	return &card, nil
}

// CreateCard registers a new card; the directory echoes the created record.
func (c *Client) CreateCard(ctx context.Context, token string, input CardInput) (*domain.Card, error) {
	var card domain.Card
	if err := c.do(ctx, http.MethodPost, "/cards", token, input, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// DeleteCard removes a card.
func (c *Client) DeleteCard(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+id, token, nil, nil)
}

// ToggleLike flips the caller's like membership server-side and returns the
// updated card. The returned like list is authoritative.
func (c *Client) ToggleLike(ctx context.Context, token, id string) (*domain.Card, error) {
	var card domain.Card
	if err := c.do(ctx, http.MethodPatch, "/cards/"+id, token, struct{}{}, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// Register creates a directory account.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/users", "", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token. Depending on the directory
// version the body is either a bare token string or {token, user}; both are
// accepted.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	body, err := c.doRaw(ctx, http.MethodPost, "/users/login", "", creds)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Token != "" {
		return &LoginResult{Token: envelope.Token, User: envelope.User}, nil
	}

	var bare string
	if err := json.Unmarshal(body, &bare); err == nil && bare != "" {
		return &LoginResult{Token: bare}, nil
	}

	token := strings.TrimSpace(string(body))
	if token == "" {
		return nil, apperrors.NewTransient("login response carried no token", nil)
	}
	return &LoginResult{Token: token}, nil
}

// do performs a request and decodes a JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path, token string, payload, out any) error {
	body, err := c.doRaw(ctx, method, path, token, payload)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewTransient("malformed response from directory", err)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path, token string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, apperrors.NewInternal(err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		// The directory accepts both header conventions; send both the way
		// the reference client does.
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("x-auth-token", token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordError(path, method, apperrors.CodeTransient)
		return nil, apperrors.NewTransient("directory unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordError(path, method, apperrors.CodeTransient)
		return nil, apperrors.NewTransient("reading directory response", err)
	}

	c.metrics.RecordRemoteCall(path, method, resp.StatusCode, time.Since(start))
	c.logger.Debug("directory call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	mapped := mapStatus(resp.StatusCode, body)
	c.metrics.RecordError(path, method, apperrors.ToClientError(mapped).Code)
	return nil, mapped
}

// mapStatus converts a non-2xx directory response into the taxonomy.
func mapStatus(status int, body []byte) error {
	message, details := parseErrorBody(body)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if message == "" {
			message = "not authorized by the directory"
		}
		return apperrors.NewUnauthenticated(message)
	case status == http.StatusNotFound:
		return apperrors.NewNotFound("card or user")
	case status == http.StatusConflict:
		if message == "" {
			message = "record already exists"
		}
		return apperrors.NewConflict(message)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		if message == "" {
			message = "directory rejected the request body"
		}
		return apperrors.NewValidationFailed(message, details)
	default:
		return apperrors.NewTransient(fmt.Sprintf("directory returned %d", status), nil)
	}
}

func parseErrorBody(body []byte) (string, map[string]any) {
	if len(body) == 0 {
		return "", nil
	}
	var parsed struct {
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		// Some directory errors are plain text.
		return strings.TrimSpace(string(body)), nil
	}
	if parsed.Message == "" {
		return strings.TrimSpace(string(body)), parsed.Details
	}
	return parsed.Message, parsed.Details
}
