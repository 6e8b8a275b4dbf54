package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"tally/internal/api"
	"tally/internal/config"
	"tally/internal/errkit"
	"tally/internal/ledger"
)

// HTTP talks to a running tallyd.
type HTTP struct {
	baseURL  string
	username string
	password string
	client   *http.Client
}

// NewHTTP wires an HTTP client against the configured tallyd address.
func NewHTTP(cfg *config.Config) *HTTP {
	return &HTTP{
		baseURL:  cfg.ServiceBaseURL(),
		username: cfg.HTTP.Username,
		password: cfg.HTTP.Password,
		client:   &http.Client{Timeout: cfg.RequestTimeout()},
	}
}

func (h *HTTP) Add(ctx context.Context, period string, req api.AddRequest) (int64, error) {
	var resp api.IDResponse
	if err := h.do(ctx, http.MethodPost, periodPath(period), req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (h *HTTP) Get(ctx context.Context, period, table string, id int64) (api.Element, error) {
	var resp api.ElementResponse
	if err := h.do(ctx, http.MethodGet, elementPath(period, table, id), nil, &resp); err != nil {
		return api.Element{}, err
	}
	return resp.Element, nil
}

func (h *HTTP) Update(ctx context.Context, period, table string, id int64, req api.UpdateRequest) error {
	var resp api.IDResponse
	return h.do(ctx, http.MethodPatch, elementPath(period, table, id), req, &resp)
}

func (h *HTTP) Remove(ctx context.Context, period, table string, id int64) error {
	var resp api.IDResponse
	return h.do(ctx, http.MethodDelete, elementPath(period, table, id), nil, &resp)
}

func (h *HTTP) Copy(ctx context.Context, req api.CopyRequest) (int64, error) {
	var resp api.IDResponse
	if err := h.do(ctx, http.MethodPost, "/copy", req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (h *HTTP) List(ctx context.Context, period string, filters []string) (api.Elements, error) {
	var payload any
	if len(filters) > 0 {
		payload = api.ListRequest{Filters: filters}
	}
	var resp api.ElementsResponse
	if err := h.do(ctx, http.MethodGet, periodPath(period), payload, &resp); err != nil {
		return api.Elements{}, err
	}
	return resp.Elements, nil
}

func (h *HTTP) Periods(ctx context.Context) ([]string, error) {
	var resp api.PeriodsResponse
	if err := h.do(ctx, http.MethodGet, "/periods", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Periods, nil
}

// Close satisfies Client; the HTTP transport holds no resources.
func (h *HTTP) Close() error {
	return nil
}

func periodPath(period string) string {
	if period == "" {
		period = ledger.DefaultPeriod(time.Now())
	}
	return "/periods/" + url.PathEscape(period)
}

func elementPath(period, table string, id int64) string {
	if table == "" {
		table = string(ledger.TableStandard)
	}
	return periodPath(period) + "/" + url.PathEscape(table) + "/" + strconv.FormatInt(id, 10)
}

func (h *HTTP) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if h.username != "" {
		req.SetBasicAuth(h.username, h.password)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return errkit.Wrap(errkit.ErrUnreachable, "client", method+" "+path, "service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return responseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// responseError converts an API error body into a classified error. The
// server's message is kept verbatim so the CLI prints the same detail a local
// run would.
func responseError(resp *http.Response) error {
	marker := errkit.ErrExternalTool
	switch resp.StatusCode {
	case http.StatusBadRequest:
		marker = errkit.ErrValidation
	case http.StatusUnauthorized:
		marker = errkit.ErrConfiguration
	case http.StatusNotFound:
		marker = errkit.ErrNotFound
	}

	var payload api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return errkit.Wrap(marker, "", "", payload.Error, nil)
	}
	return errkit.Wrap(marker, "client", "request", fmt.Sprintf("service returned status %d", resp.StatusCode), nil)
}
