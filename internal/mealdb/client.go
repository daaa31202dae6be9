package mealdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/windoze95/mealfinder/internal/logger"
	"github.com/windoze95/mealfinder/internal/models"
	"go.uber.org/zap"
)

// DefaultBaseURL is the free v1 TheMealDB API.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// maxErrorBody caps how much of a failed response ends up in a StatusError.
const maxErrorBody = 512

// maxResponseBody caps how much of any response is read.
const maxResponseBody = 2 * 1024 * 1024

// Client talks to TheMealDB search and lookup endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL and a
// non-positive timeout selects 10 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchMeals returns every meal whose name matches query. No match is an
// empty slice, not an error.
func (c *Client) SearchMeals(ctx context.Context, query string) ([]models.Meal, error) {
	params := url.Values{}
	params.Set("s", query)
	return c.get(ctx, "search", "search.php", params)
}

// LookupMeal returns the meal with the given ID, or NotFoundError.
func (c *Client) LookupMeal(ctx context.Context, id string) (*models.Meal, error) {
	params := url.Values{}
	params.Set("i", id)
	meals, err := c.get(ctx, "lookup", "lookup.php", params)
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, NotFoundError{message: fmt.Sprintf("meal %s not found", id)}
	}
	return &meals[0], nil
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values) ([]models.Meal, error) {
	start := time.Now()
	defer func() {
		upstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mealdb %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		upstreamRequestsTotal.WithLabelValues(op, outcomeNetwork).Inc()
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody)) // 2MB limit
	if err != nil {
		upstreamRequestsTotal.WithLabelValues(op, outcomeNetwork).Inc()
		return nil, &NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		upstreamRequestsTotal.WithLabelValues(op, outcomeStatus).Inc()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}

	meals, err := decodeMeals(body)
	if err != nil {
		upstreamRequestsTotal.WithLabelValues(op, outcomeMalformed).Inc()
		return nil, &MalformedResponseError{Op: op, Err: err}
	}

	upstreamRequestsTotal.WithLabelValues(op, outcomeOK).Inc()
	logger.Get().Debug("mealdb request done",
		zap.String("op", op),
		zap.Int("meals", len(meals)),
		zap.Duration("took", time.Since(start)),
	)
	return meals, nil
}
