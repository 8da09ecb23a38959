package nba

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"nba_standings/internal/app"
	"nba_standings/internal/config"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// StatusError is a non-200 response from the data server
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the request may succeed if repeated
func (e *StatusError) Retryable() bool {
	return config.RetryableStatus(e.StatusCode)
}

type Client struct {
	baseURL      string
	client       *http.Client
	retry        config.RetryConfig
	apiCallCount int64
	apiCallMutex sync.Mutex
}

func NewClient(baseURL string) *Client {
	retry := config.DefaultResilienceConfig.APIRequest
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: retry.Timeout,
		},
		retry: retry,
	}
}

// WithRetry replaces the retry policy
func (c *Client) WithRetry(retry config.RetryConfig) *Client {
	c.retry = retry
	return c
}

// IncrementAPICall safely increments the API call counter
func (c *Client) IncrementAPICall() {
	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()
}

// GetAPICallCount returns the current API call count
func (c *Client) GetAPICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// ResetAPICallCount resets the API call counter to zero
func (c *Client) ResetAPICallCount() {
	c.apiCallMutex.Lock()
	c.apiCallCount = 0
	c.apiCallMutex.Unlock()
}

// makeAPIRequest creates and executes an HTTP GET request to the data server
func (c *Client) makeAPIRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().
			Err(err).
			Str("url", url).
			Msg("API request failed")
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	c.IncrementAPICall()
	return resp, nil
}

// handleAPIResponse processes the HTTP response and returns the body bytes
func (c *Client) handleAPIResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// fetch GETs url, retrying network failures and 5xx/429 responses with backoff
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	attempts := c.retry.Attempts()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			wait := c.retry.Backoff(attempt - 1)
			log.Warn().
				Err(lastErr).
				Str("url", url).
				Int("attempt", attempt).
				Dur("wait", wait).
				Msg("Retrying standings API request")

			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
			case <-time.After(wait):
			}
		}

		resp, err := c.makeAPIRequest(ctx, url)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, err
			}
			continue
		}

		body, err := c.handleAPIResponse(resp)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.Retryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}

// GetSeasonPayload fetches the raw JSON team array for a season
func (c *Client) GetSeasonPayload(ctx context.Context, season string) ([]byte, error) {
	if !app.IsSeasonID(season) {
		return nil, fmt.Errorf("invalid season %q: expected YYYY-YY", season)
	}

	url := fmt.Sprintf("%s/nba/%s", c.baseURL, season)

	log.Debug().Str("url", url).Str("season", season).Msg("Fetching season teams")

	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch season %s: %w", season, err)
	}
	return body, nil
}

// GetSeasonTeams fetches and decodes every team of a season
func (c *Client) GetSeasonTeams(ctx context.Context, season string) ([]app.Team, error) {
	body, err := c.GetSeasonPayload(ctx, season)
	if err != nil {
		return nil, err
	}

	teams, err := DecodeTeams(body)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("season", season).
		Int("teams", len(teams)).
		Msg("Successfully fetched season teams")

	return teams, nil
}

// DecodeTeams parses a season payload
func DecodeTeams(body []byte) ([]app.Team, error) {
	var teams []app.Team
	if err := json.Unmarshal(body, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode season response: %w", err)
	}
	return teams, nil
}
