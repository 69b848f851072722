package kakao

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleKeywordResponse = `{
	"documents": [
		{
			"id": "123",
			"place_name": "서울피부과의원",
			"category_name": "의료,건강 > 피부과",
			"phone": "02-123-4567",
			"address_name": "서울 강남구 역삼동 1",
			"road_address_name": "서울 강남구 테헤란로 1",
			"x": "127.02",
			"y": "37.49",
			"distance": "350",
			"place_url": "http://place.map.kakao.com/123"
		}
	],
	"meta": {"total_count": 42, "is_end": false}
}`

// TestSearchKeyword tests response parsing and auth header
func TestSearchKeyword(t *testing.T) {
	var gotAuth, gotQuery, gotRadius string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")
		gotRadius = r.URL.Query().Get("radius")
		w.Write([]byte(sampleKeywordResponse))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	result := c.SearchKeyword(context.Background(), "강남 피부과", SearchOptions{
		X: "127.0", Y: "37.5", Radius: 99999, Size: 5,
	})

	if !result.Success {
		t.Fatalf("Expected success, got error: %s", result.Error)
	}
	if gotAuth != "KakaoAK test-key" {
		t.Errorf("Expected KakaoAK auth header, got %q", gotAuth)
	}
	if gotQuery != "강남 피부과" {
		t.Errorf("Expected query passthrough, got %q", gotQuery)
	}
	// Radius beyond the Kakao limit must be clamped
	if gotRadius != "20000" {
		t.Errorf("Expected radius clamped to 20000, got %s", gotRadius)
	}
	if result.TotalCount != 42 || result.IsEnd {
		t.Errorf("Expected meta total=42 is_end=false, got %d/%v", result.TotalCount, result.IsEnd)
	}
	if len(result.Places) != 1 {
		t.Fatalf("Expected 1 place, got %d", len(result.Places))
	}
	p := result.Places[0]
	if p.ID != "123" || p.Name != "서울피부과의원" || p.Coordinates.X != "127.02" {
		t.Errorf("Place parsed incorrectly: %+v", p)
	}
}

// TestSearchCategoryRequiresCoordinates tests the structured failure shape
func TestSearchCategoryRequiresCoordinates(t *testing.T) {
	c := NewClient("test-key")
	result := c.SearchCategory(context.Background(), "약국", SearchOptions{})
	if result.Success {
		t.Errorf("Expected failure without coordinates")
	}
	if result.Error == "" {
		t.Errorf("Expected a user-facing error message")
	}
	if result.Places == nil {
		t.Errorf("Expected an empty non-nil place list")
	}
}

// TestSearchStructuredFailure tests that upstream errors never surface as
// raw transport failures
func TestSearchStructuredFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("wrong-key", WithBaseURL(srv.URL))
	result := c.SearchKeyword(context.Background(), "병원", SearchOptions{})
	if result.Success {
		t.Fatalf("Expected failure on HTTP 401")
	}
	if result.Error == "" {
		t.Errorf("Expected an error message")
	}
}

// TestSearchRetriesServerErrors tests that transient 5xx responses retry
func TestSearchRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		w.Write([]byte(sampleKeywordResponse))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	result := c.SearchKeyword(context.Background(), "병원", SearchOptions{})
	if !result.Success {
		t.Fatalf("Expected eventual success after retries, got %s", result.Error)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

// TestSearchNoRetryOnClientError tests that 4xx fails fast
func TestSearchNoRetryOnClientError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	result := c.SearchKeyword(context.Background(), "병원", SearchOptions{})
	if result.Success {
		t.Fatalf("Expected failure")
	}
	if attempts != 1 {
		t.Errorf("Expected exactly 1 attempt on a 4xx, got %d", attempts)
	}
}
