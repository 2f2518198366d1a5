package portalclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"jobportal_backend/internal/apperrors"
)

const apiPrefix = "/api/v1"

// TokenSource supplies the bearer token for authenticated calls. An
// empty token means the request goes out anonymous.
type TokenSource interface {
	Token() string
}

// Client talks to the portal HTTP API. All methods return *APIError on
// failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource

	// OnUnauthorized runs after any 401 response, before the error is
	// returned. Used to drop a stale session.
	OnUnauthorized func()
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.OnUnauthorized = fn }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do runs one JSON request. body is encoded when non-nil, the response
// is decoded into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return networkError(err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reqBody)
	if err != nil {
		return networkError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// filePart is one file attachment in a multipart form.
type filePart struct {
	Field       string
	Filename    string
	ContentType string
	Reader      io.Reader
}

// doMultipart posts a multipart form with fields and file parts.
func (c *Client) doMultipart(ctx context.Context, path string, fields map[string]string, files []filePart, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return networkError(err)
		}
	}

	for _, f := range files {
		partHeader := make(textproto.MIMEHeader)
		partHeader.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename))
		partHeader.Set("Content-Type", f.ContentType)

		part, err := writer.CreatePart(partHeader)
		if err != nil {
			return networkError(err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return networkError(err)
		}
	}
	if err := writer.Close(); err != nil {
		return networkError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPrefix+path, &buf)
	if err != nil {
		return networkError(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := c.decodeError(resp)
		if apiErr.Kind == KindUnauthorized && c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{
			Kind:       KindServer,
			StatusCode: resp.StatusCode,
			Message:    "failed to decode response",
			Err:        err,
		}
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{
		Kind:       kindForStatus(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Message:    resp.Status,
	}

	var envelope apperrors.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != nil {
		apiErr.Code = string(envelope.Error.Code)
		apiErr.Message = envelope.Error.Message
		apiErr.Details = envelope.Error.Details
	}

	return apiErr
}
