// Package gateway talks to the government compliance portal over its JSON API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/pkg/clock"
	"gst-lifecycle/internal/pkg/config"
	"gst-lifecycle/internal/pkg/errs"
	"gst-lifecycle/internal/usecase/shared"
)

const (
	headerCorrelationID = "X-Correlation-ID"
	headerGSTIN         = "Gstin"

	// Portal error bodies can be large HTML pages.
	maxResponseBytes = 1 << 20
)

// GatewayError reports a response the client could not make sense of. Well-formed rejections
// are not errors; they come back as a GatewayResponse with a non-success status code.
type GatewayError struct {
	Op         string
	HTTPStatus int
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("gateway %s: http %d", e.Op, e.HTTPStatus)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

type Client struct {
	baseURL    *url.URL
	gstin      string
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger
}

// NewClient leaves per-call deadlines to the caller's context; cfg.Timeout only bounds the
// transport as a backstop.
func NewClient(cfg config.GatewayConfig, clk clock.Clock, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errs.Wrapf(err, "parse gateway base url %q", cfg.BaseURL)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errs.Newf("gateway base url %q must be absolute", cfg.BaseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    base,
		gstin:      cfg.GSTIN,
		httpClient: &http.Client{Timeout: 2 * cfg.Timeout},
		clock:      clk,
		logger:     logger,
	}, nil
}

func (c *Client) Authenticate(ctx context.Context, creds shared.Credentials) (shared.Token, error) {
	body := authRequest{
		Username:     creds.Username,
		Password:     creds.Password,
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		GSTIN:        creds.GSTIN,
	}

	status, raw, _, err := c.do(ctx, http.MethodPost, "/auth", nil, body)
	if err != nil {
		return shared.Token{}, err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return shared.Token{}, errs.Mark(errs.Newf("gateway refused credentials: http %d", status), shared.ErrAuthFailed)
	}
	if status >= http.StatusInternalServerError {
		return shared.Token{}, &GatewayError{Op: "auth", HTTPStatus: status, Body: truncate(raw)}
	}

	var resp authResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return shared.Token{}, &GatewayError{Op: "auth", HTTPStatus: status, Body: truncate(raw), Err: err}
	}
	if resp.Token == "" {
		return shared.Token{}, errs.Mark(
			errs.Newf("gateway auth status %s: %s", resp.StatusCode, resp.Description),
			shared.ErrAuthFailed,
		)
	}

	return shared.Token{
		Value:     resp.Token,
		ExpiresAt: tokenExpiry(c.clock.Now(), resp.ExpiresIn),
	}, nil
}

func (c *Client) AcceptDocument(ctx context.Context, number string, token shared.Token) (shared.GatewayResponse, error) {
	env, err := c.call(ctx, "accept", http.MethodPost, documentPath(number, "accept"), token, struct{}{})
	if err != nil {
		return shared.GatewayResponse{}, err
	}
	return env.resp, nil
}

func (c *Client) RejectDocument(ctx context.Context, number, reason string, token shared.Token) (shared.GatewayResponse, error) {
	env, err := c.call(ctx, "reject", http.MethodPost, documentPath(number, "reject"), token, rejectRequest{Reason: reason})
	if err != nil {
		return shared.GatewayResponse{}, err
	}
	return env.resp, nil
}

func (c *Client) UpdateVehicle(ctx context.Context, number string, v shared.VehiclePayload, token shared.Token) (shared.GatewayResponse, error) {
	env, err := c.call(ctx, "update-vehicle", http.MethodPost, documentPath(number, "vehicle"), token, newVehicleRequest(v))
	if err != nil {
		return shared.GatewayResponse{}, err
	}
	return env.resp, nil
}

func (c *Client) CancelDocument(ctx context.Context, kind document.Kind, number string, cp shared.CancelPayload, token shared.Token) (shared.GatewayResponse, error) {
	body := cancelRequest{Kind: kind.String(), ReasonCode: cp.ReasonCode, Remarks: cp.Remarks}
	env, err := c.call(ctx, "cancel", http.MethodPost, documentPath(number, "cancel"), token, body)
	if err != nil {
		return shared.GatewayResponse{}, err
	}
	return env.resp, nil
}

func (c *Client) GenerateDocument(ctx context.Context, p shared.GeneratePayload, token shared.Token) (shared.GatewayResponse, error) {
	body := generateRequest{Kind: p.Kind.String(), Payload: p.Payload}
	env, err := c.call(ctx, "generate", http.MethodPost, "/documents", token, body)
	if err != nil {
		return shared.GatewayResponse{}, err
	}
	return env.resp, nil
}

// FetchDocument returns the response alone when the portal declines the lookup.
func (c *Client) FetchDocument(ctx context.Context, number string, token shared.Token) (*shared.FetchedDocument, error) {
	env, err := c.call(ctx, "fetch", http.MethodGet, documentPath(number, ""), token, nil)
	if err != nil {
		return nil, err
	}

	fetched := &shared.FetchedDocument{Response: env.resp, ValidUntil: env.resp.ValidUntil}
	if env.document != nil {
		fetched.Kind = env.document.Kind
		fetched.Payload = env.document.Payload
	}
	return fetched, nil
}

type result struct {
	resp     shared.GatewayResponse
	document *fetchedDocument
}

// call decodes the portal envelope. 4xx bodies still carry a status code and are handed back
// as responses; 5xx and undecodable bodies become GatewayError.
func (c *Client) call(ctx context.Context, op, method, path string, token shared.Token, body any) (*result, error) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+token.Value)

	status, raw, header, err := c.do(ctx, method, path, headers, body)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusInternalServerError {
		return nil, &GatewayError{Op: op, HTTPStatus: status, Body: truncate(raw)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &GatewayError{Op: op, HTTPStatus: status, Body: truncate(raw), Err: err}
	}
	if env.StatusCode == "" {
		return nil, &GatewayError{Op: op, HTTPStatus: status, Body: truncate(raw), Err: errs.New("missing status_code")}
	}

	resp := env.response(header.Get(headerCorrelationID))
	c.logger.Debug("Gateway responded",
		slog.String("op", op),
		slog.Int("http_status", status),
		slog.String("status_code", resp.StatusCode),
		slog.String("correlation_id", resp.CorrelationID),
	)
	return &result{resp: resp, document: env.Document}, nil
}

func (c *Client) do(ctx context.Context, method, path string, headers http.Header, body any) (int, []byte, http.Header, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, nil, errs.Wrap(err, "encode gateway request")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return 0, nil, nil, errs.Wrap(err, "build gateway request")
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	if c.gstin != "" {
		req.Header.Set(headerGSTIN, c.gstin)
	}

	start := c.clock.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Gateway request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return 0, nil, nil, errs.Wrapf(err, "%s %s", method, path)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, nil, errs.Wrapf(err, "read %s %s", method, path)
	}

	c.logger.Debug("Gateway request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", res.StatusCode),
		slog.Duration("elapsed", c.clock.Now().Sub(start)),
	)
	return res.StatusCode, raw, res.Header, nil
}

func documentPath(number, action string) string {
	p := "/documents/" + url.PathEscape(number)
	if action != "" {
		p += "/" + action
	}
	return p
}

func truncate(raw []byte) string {
	const limit = 512
	if len(raw) > limit {
		return string(raw[:limit]) + "..."
	}
	return string(raw)
}

var _ shared.ComplianceGateway = (*Client)(nil)
