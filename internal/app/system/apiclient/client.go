// Package apiclient is the typed access layer over the Raízes REST backend.
//
// Each entity lives in its own collection resource (/saberes, /comunidades,
// /comunidades_virtuais, /cartas, /usuarios) and is reached through a
// Collection. Calls are single-attempt: there are no retries and no backoff.
// Callers decide how a failure is shown.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/raizes/internal/app/system/timeouts"
	"github.com/dalemusser/raizes/internal/domain/models"
	"go.uber.org/zap"
)

// Resource paths.
const (
	PathSaberes             = "/saberes"
	PathComunidades         = "/comunidades"
	PathComunidadesVirtuais = "/comunidades_virtuais"
	PathCartas              = "/cartas"
	PathUsuarios            = "/usuarios"
	PathStatus              = "/api/status"
)

// DefaultBaseURL is where the mock backend listens in development.
const DefaultBaseURL = "http://localhost:3000"

// DefaultCurrentUser is the fixed id of the record served as the current user.
const DefaultCurrentUser = "1"

// Client holds one Collection per entity plus the current-user accessor.
// The fields are interfaces so a page can be handed a fake in tests.
type Client struct {
	Saberes             Collection[models.Saber]
	Comunidades         Collection[models.Comunidade]
	ComunidadesVirtuais Collection[models.ComunidadeVirtual]
	Cartas              Collection[models.CartaAberta]
	Usuarios            Collection[models.User]
	Auth                Identity

	baseURL     string
	http        *http.Client
	log         *zap.Logger
	currentUser string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for degraded calls.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithCurrentUser sets the id of the record served by Auth.Me.
func WithCurrentUser(id string) Option {
	return func(c *Client) { c.currentUser = id }
}

// WithTimeout bounds every request at the transport level.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New builds a Client against baseURL. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        &http.Client{Timeout: 30 * time.Second},
		log:         zap.NewNop(),
		currentUser: DefaultCurrentUser,
	}
	for _, o := range opts {
		o(c)
	}
	c.Saberes = NewResource[models.Saber](c, PathSaberes)
	c.Comunidades = NewResource[models.Comunidade](c, PathComunidades)
	c.ComunidadesVirtuais = NewResource[models.ComunidadeVirtual](c, PathComunidadesVirtuais)
	c.Cartas = NewResource[models.CartaAberta](c, PathCartas)
	c.Usuarios = NewResource[models.User](c, PathUsuarios)
	c.Auth = &Auth{users: c.Usuarios, userID: models.ID(c.currentUser), log: c.log}
	return c
}

// BaseURL returns the backend address the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// CloseIdleConnections releases keep-alive connections held by the transport.
func (c *Client) CloseIdleConnections() { c.http.CloseIdleConnections() }

// StatusMessage is the body of the backend liveness endpoint.
type StatusMessage struct {
	Message string `json:"message"`
}

// Status reads the backend liveness message.
func (c *Client) Status(ctx context.Context) (StatusMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()

	var out StatusMessage
	if err := c.do(ctx, http.MethodGet, PathStatus, nil, &out); err != nil {
		return StatusMessage{}, fmt.Errorf("status: %w", err)
	}
	return out, nil
}

// do sends one request and decodes a 2xx body into target (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if target == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
