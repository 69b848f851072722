// Package registry queries the public hospital registry (the HIRA
// hospital information service) as a fallback source when place search
// comes up empty. Like the place search client, every public method
// returns a structured result instead of a raw transport error.
package registry

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

	"github.com/medimatch/medimatch-agent/kakao"
	"github.com/medimatch/medimatch-agent/lexicon"
	"github.com/medimatch/medimatch-agent/logger"
	"github.com/medimatch/medimatch-agent/resilience"
	"github.com/medimatch/medimatch-agent/types"
)

const (
	defaultBaseURL = "https://apis.data.go.kr/B551182/hospInfoServicev2"
	basisListPath  = "/getHospBasisList"

	defaultTimeout = 30 * time.Second

	defaultRows = 10
	maxRows     = 50
)

// Client is a hospital registry client with retry and circuit breaking
// on the outbound path.
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
		log: logger.GetLogger().WithField("component", "registry"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query narrows a registry lookup. Department and Region are mapped to
// the registry's subject and area codes; unknown names are simply left
// out of the query rather than failing it.
type Query struct {
	Department   string
	Region       string
	HospitalName string
	Page         int
	Rows         int
}

func (q Query) normalize() Query {
	if q.Rows <= 0 {
		q.Rows = defaultRows
	}
	if q.Rows > maxRows {
		q.Rows = maxRows
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return q
}

// Hospital is one registry record.
type Hospital struct {
	Name            string      `json:"yadmNm"`
	Address         string      `json:"addr"`
	Phone           string      `json:"telno"`
	Type            string      `json:"clCdNm"`
	Departments     string      `json:"dgsbjtCdNm"`
	DoctorCount     json.Number `json:"drTotCnt"`
	SpecialistCount json.Number `json:"sdrCnt"`
	X               json.Number `json:"XPos"`
	Y               json.Number `json:"YPos"`
	Sido            string      `json:"sidoCdNm"`
	Sigungu         string      `json:"sgguCdNm"`
	Code            string      `json:"ykiho"`
}

// Result is the uniform shape of a registry lookup.
type Result struct {
	Success    bool       `json:"success"`
	TotalCount int        `json:"total_count"`
	Hospitals  []Hospital `json:"hospitals"`
	Error      string     `json:"error,omitempty"`
}

// Places converts registry records into the place shape the rest of the
// engine speaks, attaching map links where coordinates exist.
func (r *Result) Places() []types.Place {
	out := make([]types.Place, 0, len(r.Hospitals))
	for _, h := range r.Hospitals {
		x, y := h.X.String(), h.Y.String()
		p := types.Place{
			ID:          h.Code,
			Name:        h.Name,
			Category:    h.Type,
			Phone:       h.Phone,
			Address:     h.Address,
			Coordinates: types.Coordinates{X: x, Y: y},
		}
		if h.Name != "" && x != "" && y != "" {
			p.MapURL = kakao.MapURL(h.Name, x, y)
		}
		out = append(out, p)
	}
	return out
}

// Search looks hospitals up in the registry.
func (c *Client) Search(ctx context.Context, q Query) *Result {
	q = q.normalize()

	params := url.Values{}
	params.Set("serviceKey", c.apiKey)
	params.Set("pageNo", strconv.Itoa(q.Page))
	params.Set("numOfRows", strconv.Itoa(q.Rows))
	params.Set("_type", "json")
	if code, ok := lexicon.DepartmentCodes[q.Department]; ok {
		params.Set("dgsbjtCd", code)
	}
	if code, ok := lexicon.SidoCodes[topRegion(q.Region)]; ok {
		params.Set("sidoCd", code)
	}
	if q.HospitalName != "" {
		params.Set("yadmNm", q.HospitalName)
	}

	body, err := c.get(ctx, basisListPath+"?"+params.Encode())
	if err != nil {
		c.log.WithField("error", err.Error()).Warn("registry lookup failed")
		return &Result{Error: fmt.Sprintf("병원 정보 조회에 실패했습니다: %v", rootError(err))}
	}

	var envelope basisListResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &Result{Error: "병원 정보 응답 형식이 올바르지 않습니다"}
	}

	hospitals, err := decodeItems(envelope.Response.Body.Items)
	if err != nil {
		return &Result{Error: "병원 정보 응답 형식이 올바르지 않습니다"}
	}
	return &Result{
		Success:    true,
		TotalCount: envelope.Response.Body.TotalCount,
		Hospitals:  hospitals,
	}
}

type basisListResponse struct {
	Response struct {
		Body struct {
			Items      json.RawMessage `json:"items"`
			TotalCount int             `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

// decodeItems unpacks the registry's items field, which is an empty
// string when there are no rows, and whose item member is an object for
// a single row but an array otherwise.
func decodeItems(raw json.RawMessage) ([]Hospital, error) {
	if len(raw) == 0 || string(raw) == `""` || string(raw) == "null" {
		return nil, nil
	}

	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}
	if len(wrapper.Item) == 0 {
		return nil, nil
	}

	var list []Hospital
	if err := json.Unmarshal(wrapper.Item, &list); err == nil {
		return list, nil
	}
	var single Hospital
	if err := json.Unmarshal(wrapper.Item, &single); err != nil {
		return nil, err
	}
	return []Hospital{single}, nil
}

// topRegion reduces a region phrase to its leading sido token, so both
// "서울" and "서울 강남" hit the 서울 area code.
func topRegion(region string) string {
	for name := range lexicon.SidoCodes {
		if strings.HasPrefix(region, name) {
			return name
		}
	}
	return region
}

// get performs one GET with retry and circuit breaking. The service key
// rides in the query string, as the registry requires.
func (c *Client) get(ctx context.Context, pathAndQuery string) ([]byte, error) {
	endpoint := c.baseURL + pathAndQuery

	var body []byte
	err := resilience.RetryWithConfig(ctx, c.retry, func() error {
		return c.breaker.Execute(func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return err
			}
			resp, err := c.httpc.Do(req)
			if err != nil {
				return fmt.Errorf("registry request: %w", err)
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

type statusError struct {
	Code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("registry responded with HTTP %d", e.Code)
}

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

func rootError(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}
