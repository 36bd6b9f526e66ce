package feishu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/wagiedev/feishu-mcp-go/internal/errors"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// TransportOptions configures a Transport.
type TransportOptions struct {
	BaseURL string

	// HTTPClient is used as-is when set; Timeout is then ignored.
	HTTPClient *http.Client
	Timeout    time.Duration

	// RateLimit caps requests per second. Zero disables limiting.
	RateLimit float64
	RateBurst int

	Logger *slog.Logger
}

// Transport performs raw Open API calls and checks the response envelope.
// It is safe for concurrent use.
type Transport struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewTransport creates a Transport.
func NewTransport(opts TransportOptions) *Transport {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := max(opts.RateBurst, 1)
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Transport{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		client:  client,
		limiter: limiter,
		log:     log.With("component", "feishu_transport"),
	}
}

// Do sends req, attaching token as a bearer credential when non-empty.
//
// A response whose code field is non-zero fails with *errors.RemoteAPIError
// carrying the remote msg verbatim, regardless of the HTTP status.
func (t *Transport) Do(ctx context.Context, req *Request, token string) (*Envelope, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	httpReq, err := t.newHTTPRequest(ctx, req, token)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", req.Method, req.Path, err)
	}

	t.log.Debug("Open API call",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &errors.RemoteAPIError{
			Code:    resp.StatusCode,
			Message: fmt.Sprintf("unexpected %s response from %s", resp.Status, req.Path),
		}
	}

	if env.Code != 0 {
		return nil, &errors.RemoteAPIError{Code: env.Code, Message: env.Msg}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &errors.RemoteAPIError{Code: resp.StatusCode, Message: resp.Status}
	}

	return &env, nil
}

func (t *Transport) newHTTPRequest(ctx context.Context, req *Request, token string) (*http.Request, error) {
	target := t.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)

	switch {
	case req.Form != nil:
		body = strings.NewReader(req.Form.Encode())
		contentType = contentTypeForm
	case req.JSON != nil:
		data, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", req.Path, err)
		}

		body = bytes.NewReader(data)
		contentType = contentTypeJSON
	case hasBody(req.Method):
		body = strings.NewReader("{}")
		contentType = contentTypeJSON
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", req.Method, req.Path, err)
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return httpReq, nil
}
