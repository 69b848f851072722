// Package kakao talks to the Kakao Local REST API: keyword and category
// place search, address geocoding, and map/directions deep links. Every
// public method returns a structured result instead of a raw transport
// error, so the dialogue layer can always degrade to a fallback message.
package kakao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/medimatch/medimatch-agent/logger"
	"github.com/medimatch/medimatch-agent/resilience"
	"github.com/medimatch/medimatch-agent/types"
)

const (
	defaultBaseURL     = "https://dapi.kakao.com"
	keywordSearchPath  = "/v2/local/search/keyword.json"
	categorySearchPath = "/v2/local/search/category.json"
	addressSearchPath  = "/v2/local/search/address.json"

	defaultTimeout = 30 * time.Second

	// Kakao-side limits, enforced on our side regardless of caller input.
	maxRadiusMeters = 20000
	maxPageSize     = 15
)

// CategoryCodes maps the user-facing category to Kakao's group code.
var CategoryCodes = map[string]string{
	"병원": "HP8",
	"약국": "PM9",
}

// Client is a Kakao Local API client with retry and circuit breaking on
// the outbound path.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	breaker *resilience.CircuitBreaker
	retry   *resilience.RetryConfig
	log     *logger.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different endpoint, used by tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.httpc = h }
}

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpc.Timeout = d }
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
		breaker: resilience.NewCircuitBreaker(5, 30*time.Second),
		retry: &resilience.RetryConfig{
			MaxAttempts:     3,
			InitialDelay:    200 * time.Millisecond,
			MaxDelay:        2 * time.Second,
			Multiplier:      2.0,
			RandomizeFactor: 0.1,
			RetryIf:         isRetryable,
		},
		log: logger.GetLogger().WithField("component", "kakao"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker.SetOnStateChange(func(from, to resilience.State) {
		c.log.WithFields(map[string]interface{}{
			"from": from.String(),
			"to":   to.String(),
		}).Warn("upstream breaker changed state")
	})
	return c
}

// SearchOptions narrows a place search. Zero values mean "no constraint"
// except Size, which defaults to a full page.
type SearchOptions struct {
	X      string
	Y      string
	Radius int
	Size   int
	Page   int
	Sort   string
}

func (o SearchOptions) normalize() SearchOptions {
	if o.Size <= 0 || o.Size > maxPageSize {
		o.Size = maxPageSize
	}
	if o.Radius <= 0 || o.Radius > maxRadiusMeters {
		o.Radius = maxRadiusMeters
	}
	if o.Page <= 0 {
		o.Page = 1
	}
	return o
}

// SearchKeyword searches places by free-text query, optionally biased
// around coordinates.
func (c *Client) SearchKeyword(ctx context.Context, query string, opt SearchOptions) *types.SearchResult {
	opt = opt.normalize()
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(opt.Page))
	params.Set("size", strconv.Itoa(opt.Size))
	if opt.Sort != "" {
		params.Set("sort", opt.Sort)
	}
	if opt.X != "" && opt.Y != "" {
		params.Set("x", opt.X)
		params.Set("y", opt.Y)
		params.Set("radius", strconv.Itoa(opt.Radius))
	}
	return c.searchPlaces(ctx, keywordSearchPath, params)
}

// SearchCategory searches places by category group around coordinates.
// Coordinates are mandatory for category search.
func (c *Client) SearchCategory(ctx context.Context, category string, opt SearchOptions) *types.SearchResult {
	if opt.X == "" || opt.Y == "" {
		return &types.SearchResult{
			Success: false,
			Error:   "카테고리 검색은 좌표(x, y)가 필요합니다.",
			Places:  []types.Place{},
		}
	}
	code, ok := CategoryCodes[category]
	if !ok {
		code = CategoryCodes["병원"]
	}
	opt = opt.normalize()
	if opt.Sort == "" {
		opt.Sort = "distance"
	}
	params := url.Values{}
	params.Set("category_group_code", code)
	params.Set("x", opt.X)
	params.Set("y", opt.Y)
	params.Set("radius", strconv.Itoa(opt.Radius))
	params.Set("page", strconv.Itoa(opt.Page))
	params.Set("size", strconv.Itoa(opt.Size))
	params.Set("sort", opt.Sort)
	return c.searchPlaces(ctx, categorySearchPath, params)
}

func (c *Client) searchPlaces(ctx context.Context, path string, params url.Values) *types.SearchResult {
	body, err := c.get(ctx, path, params)
	if err != nil {
		c.log.Error("place search failed", err)
		return &types.SearchResult{
			Success: false,
			Error:   fmt.Sprintf("장소 검색에 실패했습니다: %v", rootError(err)),
			Places:  []types.Place{},
		}
	}

	var resp placeSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.log.Error("place search returned malformed payload", err)
		return &types.SearchResult{
			Success: false,
			Error:   "장소 검색 응답을 해석하지 못했습니다.",
			Places:  []types.Place{},
		}
	}

	places := make([]types.Place, 0, len(resp.Documents))
	for _, doc := range resp.Documents {
		places = append(places, doc.toPlace())
	}
	return &types.SearchResult{
		Success:    true,
		TotalCount: resp.Meta.TotalCount,
		IsEnd:      resp.Meta.IsEnd,
		Places:     places,
	}
}

// get performs one authenticated GET with retry and circuit breaking.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path + "?" + params.Encode()

	var body []byte
	err := resilience.RetryWithConfig(ctx, c.retry, func() error {
		return c.breaker.Execute(func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", "KakaoAK "+c.apiKey)

			resp, err := c.httpc.Do(req)
			if err != nil {
				return fmt.Errorf("kakao request: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				io.Copy(io.Discard, resp.Body)
				return &statusError{Code: resp.StatusCode}
			}
			body, err = io.ReadAll(resp.Body)
			return err
		})
	})
	return body, err
}

// statusError marks a non-200 upstream response.
type statusError struct {
	Code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("kakao responded with HTTP %d", e.Code)
}

// isRetryable retries transport failures, rate limits and upstream 5xx.
// Client-side 4xx (bad key, bad params) and an open breaker never retry.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	return true
}

// rootError unwraps to the innermost cause for user-facing messages.
func rootError(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

type placeSearchResponse struct {
	Documents []placeDocument `json:"documents"`
	Meta      struct {
		TotalCount int  `json:"total_count"`
		IsEnd      bool `json:"is_end"`
	} `json:"meta"`
}

type placeDocument struct {
	ID              string `json:"id"`
	PlaceName       string `json:"place_name"`
	CategoryName    string `json:"category_name"`
	Phone           string `json:"phone"`
	AddressName     string `json:"address_name"`
	RoadAddressName string `json:"road_address_name"`
	X               string `json:"x"`
	Y               string `json:"y"`
	Distance        string `json:"distance"`
	PlaceURL        string `json:"place_url"`
}

func (d placeDocument) toPlace() types.Place {
	return types.Place{
		ID:          d.ID,
		Name:        d.PlaceName,
		Category:    d.CategoryName,
		Phone:       d.Phone,
		Address:     d.AddressName,
		RoadAddress: d.RoadAddressName,
		Coordinates: types.Coordinates{X: d.X, Y: d.Y},
		Distance:    d.Distance,
		MapURL:      d.PlaceURL,
	}
}
