// Package apiclient fala com a API remota de carteira e apostas.
//
// Um Client é imutável: fica preso a uma base URL e a uma sessão. Login e logout
// criam um Client novo em vez de alterar o existente.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/sports-bet-clients/internal/shared/metrics"
	"github.com/radieske/sports-bet-clients/internal/shared/session"
	"github.com/radieske/sports-bet-clients/pkg/contracts/routes"
)

const HeaderRequestID = "X-Request-ID"

type Client struct {
	baseURL string
	sess    *session.Session
	http    *http.Client
	log     *zap.Logger
	metrics *metrics.ClientMetrics
}

type Option func(*Client)

// WithHTTPClient troca o transporte. Sem ele vale o http.Client padrão, sem timeout próprio.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithLogger(l *zap.Logger) Option { return func(c *Client) { c.log = l } }

func WithMetrics(m *metrics.ClientMetrics) Option { return func(c *Client) { c.metrics = m } }

// New cria um client para baseURL. sess nil (ou sem token) = client anônimo.
// A sessão é copiada; mudanças posteriores no chamador não afetam este client.
func New(baseURL string, sess *session.Session, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     zap.NewNop(),
	}
	if sess != nil {
		s := *sess
		c.sess = &s
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Authenticated informa se os requests deste client levam Authorization.
func (c *Client) Authenticated() bool { return c.sess != nil && c.sess.Present() }

// authorize é o interceptor de request: injeta o bearer quando existe token.
func (c *Client) authorize(req *http.Request) {
	if c.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+c.sess.Token)
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())
	c.authorize(req)
	return req, nil
}

// doJSON serializa in (se houver), executa e decodifica a resposta em out (se houver).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, path, query, body, contentType)
	if err != nil {
		return err
	}
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	route := routes.Label(path)
	start := time.Now()

	res, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.Observe(req.Method, route, 0, elapsed)
		c.log.Debug("api request failed",
			zap.String("method", req.Method),
			zap.String("route", route),
			zap.String("request_id", req.Header.Get(HeaderRequestID)),
			zap.Error(err))
		return &TransportError{Method: req.Method, Path: path, Err: err}
	}
	defer res.Body.Close()

	c.metrics.Observe(req.Method, route, res.StatusCode, elapsed)
	c.log.Debug("api request",
		zap.String("method", req.Method),
		zap.String("route", route),
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", elapsed),
		zap.String("request_id", req.Header.Get(HeaderRequestID)))

	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
		return &APIError{Method: req.Method, Path: path, Status: res.StatusCode, Detail: parseDetail(b)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &TransportError{Method: req.Method, Path: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
