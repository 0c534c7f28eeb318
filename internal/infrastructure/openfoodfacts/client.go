package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/safescan/backend/internal/domain"
)

const maxAttempts = 3

// Config holds Open Food Facts client settings
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
	UserAgent         string
}

// Client fetches product records from the Open Food Facts API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
	parser      IngredientParser
	logger      *zap.Logger
}

// IngredientParser splits raw ingredient text into an ingredient list
type IngredientParser interface {
	Parse(text string) []string
}

// productResponse is the subset of the product endpoint payload we read
type productResponse struct {
	Status  int         `json:"status"`
	Product *offProduct `json:"product"`
}

type offProduct struct {
	ProductName     string   `json:"product_name"`
	Brands          string   `json:"brands"`
	IngredientsText string   `json:"ingredients_text"`
	CategoriesTags  []string `json:"categories_tags"`
	PackagingTags   []string `json:"packaging_tags"`
	AllergensTags   []string `json:"allergens_tags"`
	AdditivesTags   []string `json:"additives_tags"`
	LabelsTags      []string `json:"labels_tags"`
}

// NewClient creates a new Open Food Facts client
func NewClient(config Config, parser IngredientParser, logger *zap.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	perMinute := config.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 100
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = "SafeScan/1.0"
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 10), // burst of 10 requests
		parser:      parser,
		logger:      logger,
	}
}

// exponentialBackoff returns the wait before retrying after attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// doRequest executes an HTTP GET request with proper headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProductSourceFailure, err)
	}
	return resp, nil
}

// FetchProduct looks up a product by barcode
func (c *Client) FetchProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}
	reqURL := fmt.Sprintf("%s/product/%s.json", c.baseURL, url.PathEscape(barcode))

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(exponentialBackoff(attempt - 1)):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			c.logger.Warn("open food facts request failed",
				zap.String("barcode", barcode),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrProductNotFound
		case resp.StatusCode >= http.StatusInternalServerError:
			c.logger.Warn("open food facts server error",
				zap.String("barcode", barcode),
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode),
			)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrProductSourceFailure, resp.StatusCode)
			continue
		case resp.StatusCode != http.StatusOK:
			return nil, fmt.Errorf("%w: status %d", domain.ErrProductSourceFailure, resp.StatusCode)
		}
		if readErr != nil {
			lastErr = fmt.Errorf("%w: reading body: %v", domain.ErrProductSourceFailure, readErr)
			continue
		}

		var payload productResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrProductSourceFailure, err)
		}
		if payload.Status != 1 || payload.Product == nil {
			return nil, domain.ErrProductNotFound
		}

		product := MapToProduct(payload.Product, barcode, c.parser)
		c.logger.Debug("open food facts product mapped",
			zap.String("barcode", barcode),
			zap.String("category", string(product.Category)),
		)
		return product, nil
	}

	c.logger.Error("open food facts retries exhausted", zap.String("barcode", barcode), zap.Error(lastErr))
	return nil, lastErr
}
