package googleads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultAPIBase = "https://googleads.googleapis.com"
	apiVersion     = "v16"

	// Rate limits conservadores: la cuota básica de la API es generosa por
	// día pero castiga ráfagas de searchStream.
	searchRatePerSec = 5
	mutateRatePerSec = 2

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Credentials agrupa lo necesario para autenticar contra la Google Ads API.
// El access token llega ya emitido — el flujo OAuth no es problema de este cliente.
type Credentials struct {
	CustomerID      string // cuenta sobre la que se consulta y muta
	LoginCustomerID string // cuenta manager, si aplica
	DeveloperToken  string
	AccessToken     string
}

// Client es el HTTP client de la Google Ads API con rate limiting y retries.
type Client struct {
	http          *http.Client
	base          string
	creds         Credentials
	searchLimiter *rate.Limiter
	mutateLimiter *rate.Limiter
}

// NewClient crea un Client. Si base está vacío usa el endpoint de producción.
func NewClient(base string, creds Credentials) *Client {
	if base == "" {
		base = defaultAPIBase
	}
	return &Client{
		http:          &http.Client{Timeout: 30 * time.Second},
		base:          base,
		creds:         creds,
		searchLimiter: rate.NewLimiter(searchRatePerSec, 5),
		mutateLimiter: rate.NewLimiter(mutateRatePerSec, 2),
	}
}

// searchStream ejecuta una consulta GAQL y devuelve las filas de todos los
// chunks de la respuesta concatenadas.
func (c *Client) searchStream(ctx context.Context, query string) ([]searchRow, error) {
	url := fmt.Sprintf("%s/%s/customers/%s/googleAds:searchStream",
		c.base, apiVersion, c.creds.CustomerID)

	var chunks []searchChunk
	if err := c.post(ctx, c.searchLimiter, url, searchRequest{Query: query}, &chunks); err != nil {
		return nil, fmt.Errorf("googleads.searchStream: %w", err)
	}

	var rows []searchRow
	for _, ch := range chunks {
		rows = append(rows, ch.Results...)
	}
	return rows, nil
}

// post hace un POST JSON con rate limiting y retries.
func (c *Client) post(ctx context.Context, limiter *rate.Limiter, url string, body, out any) error {
	return c.doWithRetry(ctx, limiter, func() (*http.Response, error) {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.creds.AccessToken)
		req.Header.Set("developer-token", c.creds.DeveloperToken)
		if c.creds.LoginCustomerID != "" {
			req.Header.Set("login-customer-id", c.creds.LoginCustomerID)
		}
		return c.http.Do(req)
	}, out)
}

// doWithRetry ejecuta la función con backoff exponencial y jitter.
func (c *Client) doWithRetry(ctx context.Context, limiter *rate.Limiter, fn func() (*http.Response, error), out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		resp, err := fn()
		if err != nil {
			if attempt == maxRetries {
				return fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			slog.Warn("rate limited by Google Ads API", "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("server error %d after %d retries", resp.StatusCode, maxRetries)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("client error %d: %s", resp.StatusCode, string(body))
		}

		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("exhausted %d retries", maxRetries)
}

// sleep espera con backoff exponencial, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
