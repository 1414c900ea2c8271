package stractclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-report-api/internal/config"
	"github.com/vfg2006/ads-report-api/pkg/metrics"
)

// Client faz GETs autenticados na API agregadora e devolve o JSON decodificado
type Client interface {
	// Get busca path (relativo à URL base) com os parâmetros de query
	Get(ctx context.Context, path string, params url.Values) (any, error)
	// GetURL busca uma URL de continuação devolvida pela própria API
	GetURL(ctx context.Context, rawURL string) (any, error)
}

// StatusError é devolvido quando a API responde com status fora de 2xx
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("stract: GET %s: status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// status transitórios que merecem nova tentativa
var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

type StractClient struct {
	httpClient *http.Client
	cfg        config.Stract
	metrics    *metrics.UpstreamMetrics
}

func NewClient(cfg *config.Config, m *metrics.UpstreamMetrics) Client {
	return &StractClient{
		httpClient: &http.Client{
			Timeout: cfg.Stract.Timeout(),
		},
		cfg:     cfg.Stract,
		metrics: m,
	}
}

func (c *StractClient) Get(ctx context.Context, path string, params url.Values) (any, error) {
	endpoint := c.cfg.BaseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	logrus.WithFields(logrus.Fields{
		"url":    c.cfg.BaseURL + path,
		"params": safeParams(params),
	}).Info("stract: GET")

	return c.do(ctx, path, endpoint)
}

func (c *StractClient) GetURL(ctx context.Context, rawURL string) (any, error) {
	endpoint, label := c.resolve(rawURL)

	logrus.WithField("url", redactURL(endpoint)).Info("stract: GET continuation")

	return c.do(ctx, label, endpoint)
}

// resolve trata URLs relativas e as que começam pela URL base como caminhos
// da própria API; as demais são usadas como vieram
func (c *StractClient) resolve(rawURL string) (endpoint string, label string) {
	if strings.HasPrefix(rawURL, c.cfg.BaseURL) {
		rel := strings.TrimPrefix(rawURL, c.cfg.BaseURL)
		return rawURL, pathLabel(rel)
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.IsAbs() {
		return rawURL, "external"
	}

	if !strings.HasPrefix(rawURL, "/") {
		rawURL = "/" + rawURL
	}
	return c.cfg.BaseURL + rawURL, pathLabel(rawURL)
}

func (c *StractClient) do(ctx context.Context, label, endpoint string) (any, error) {
	var body []byte
	startTime := time.Now()

	backoff := retry.WithMaxRetries(uint64(c.cfg.RetryAttempts), retry.NewExponential(c.backoffBase()))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		b, err := c.fetch(ctx, endpoint)
		if err != nil {
			if isRetryable(err) {
				logrus.WithFields(logrus.Fields{
					"url":   redactURL(endpoint),
					"error": err.Error(),
				}).Warn("stract: transient failure, retrying")
				return retry.RetryableError(err)
			}
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		outcome := metrics.OutcomeTransport
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			outcome = metrics.OutcomeHTTPError
		}
		c.metrics.ObserveRequest(label, outcome, time.Since(startTime))
		return nil, err
	}

	data, err := Decode(body)
	if err != nil {
		c.metrics.ObserveRequest(label, metrics.OutcomeInvalidBody, time.Since(startTime))
		return nil, errors.Wrapf(err, "stract: GET %s", redactURL(endpoint))
	}

	c.metrics.ObserveRequest(label, metrics.OutcomeSuccess, time.Since(startTime))
	return data, nil
}

func (c *StractClient) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "stract: error creating request")
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.AuthToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "stract: GET %s", redactURL(endpoint))
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"url":         redactURL(endpoint),
		"status_code": resp.StatusCode,
	}).Debug("stract: response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drena o corpo para reaproveitar a conexão
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: redactURL(endpoint)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "stract: reading body of %s", redactURL(endpoint))
	}

	return body, nil
}

func (c *StractClient) backoffBase() time.Duration {
	if c.cfg.RetryBackoff <= 0 {
		return time.Millisecond
	}
	return c.cfg.RetryBackoff
}

func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return retryableStatus[statusErr.StatusCode]
	}
	// erros de transporte (timeout, conexão recusada) são sempre transitórios,
	// exceto o cancelamento pelo chamador
	return !errors.Is(err, context.Canceled)
}

// safeParams remove o token da conta antes de registrar os parâmetros
func safeParams(params url.Values) url.Values {
	out := url.Values{}
	for k, v := range params {
		if k == "token" {
			continue
		}
		out[k] = v
	}
	return out
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if !q.Has("token") {
		return raw
	}
	q.Set("token", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}

func pathLabel(rel string) string {
	if i := strings.IndexAny(rel, "?#"); i >= 0 {
		rel = rel[:i]
	}
	if rel == "" {
		return "/"
	}
	return rel
}
