// Package vtex содержит HTTP-клиент API VTEX (OMS и Masterdata)
package vtex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Заголовки аутентификации VTEX
const (
	HeaderAppKey   = "X-VTEX-API-AppKey"
	HeaderAppToken = "X-VTEX-API-AppToken"
)

// Ограничение на размер тела ошибки, сохраняемого в RemoteAPIError
const maxErrorBody = 64 << 10

// RemoteAPIError ответ VTEX со статусом вне диапазона 2xx
type RemoteAPIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("VTEX %d %s - %s", e.StatusCode, e.Status, e.Body)
}

// Options параметры клиента
type Options struct {
	Account    string
	AppKey     string
	AppToken   string
	BaseDomain string        // vtexcommercestable.com.br
	BaseURL    string        // Необязательно: заменяет https://{account}.{domain}
	Timeout    time.Duration // Таймаут одного запроса, 0 = без таймаута
	HTTPClient *http.Client
}

// Client клиент API VTEX. Повторных попыток на этом уровне нет.
type Client struct {
	base     *url.URL
	appKey   string
	appToken string
	timeout  time.Duration
	http     *http.Client
	log      *zap.Logger
	metrics  *ClientMetrics
}

// NewClient создает клиента VTEX
func NewClient(opts Options, log *zap.Logger) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		if opts.Account == "" || opts.BaseDomain == "" {
			return nil, errors.New("vtex: account and base domain are required")
		}
		raw = fmt.Sprintf("https://%s.%s", opts.Account, opts.BaseDomain)
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("vtex: invalid base url %q: %w", raw, err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		base:     base,
		appKey:   opts.AppKey,
		appToken: opts.AppToken,
		timeout:  opts.Timeout,
		http:     httpClient,
		log:      log.Named("vtex"),
		metrics:  NewClientMetrics(),
	}, nil
}

// URL строит абсолютный адрес запроса. path передается уже экранированным,
// пустые значения query пропускаются.
func (c *Client) URL(path string, query map[string]string) string {
	u := *c.base
	raw := strings.TrimRight(c.base.EscapedPath(), "/") + "/" + strings.TrimLeft(path, "/")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		u.Path, u.RawPath = unescaped, raw
	} else {
		u.Path, u.RawPath = raw, ""
	}
	values := url.Values{}
	for k, v := range query {
		if v != "" {
			values.Set(k, v)
		}
	}
	u.RawQuery = values.Encode()
	return u.String()
}

// GetJSON выполняет GET и декодирует JSON-ответ в out
func (c *Client) GetJSON(ctx context.Context, operation, path string, query map[string]string, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path, query), nil)
	if err != nil {
		return fmt.Errorf("vtex: build request: %w", err)
	}
	req.Header.Set(HeaderAppKey, c.appKey)
	req.Header.Set(HeaderAppToken, c.appToken)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.RequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.RequestsTotal.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("vtex %s: %w", operation, err)
	}
	defer resp.Body.Close()
	c.metrics.RequestsTotal.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Debug("VTEX вернул ошибку",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode))
		return &RemoteAPIError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("vtex %s: decode response: %w", operation, err)
	}
	return nil
}
