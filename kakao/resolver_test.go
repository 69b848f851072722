package kakao

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestResolvePlaceKeywordHit tests the happy path through keyword search
func TestResolvePlaceKeywordHit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "keyword") {
			t.Errorf("Expected keyword search, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"documents":[{"place_name":"강남역","address_name":"서울 강남구","x":"127.027","y":"37.497"}],"meta":{"total_count":1,"is_end":true}}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	loc := c.ResolvePlace(context.Background(), "강남역")
	if !loc.Success {
		t.Fatalf("Expected success, got %s", loc.Error)
	}
	if loc.X != "127.027" || loc.Y != "37.497" {
		t.Errorf("Expected coordinates from the first document, got %s/%s", loc.X, loc.Y)
	}
	if loc.PlaceName != "강남역" {
		t.Errorf("Expected resolved place name, got %s", loc.PlaceName)
	}
}

// TestResolvePlaceRewrites tests that landmark substitutions are attempted
func TestResolvePlaceRewrites(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "keyword") {
			q := r.URL.Query().Get("query")
			queries = append(queries, q)
			if q == "홍익대학교" {
				w.Write([]byte(`{"documents":[{"place_name":"홍익대학교","address_name":"서울 마포구","x":"126.925","y":"37.550"}],"meta":{"total_count":1,"is_end":true}}`))
				return
			}
		}
		w.Write([]byte(`{"documents":[],"meta":{"total_count":0,"is_end":true}}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	loc := c.ResolvePlace(context.Background(), "홍대")
	if !loc.Success {
		t.Fatalf("Expected success via rewrite, got %s", loc.Error)
	}
	if len(queries) < 2 || queries[0] != "홍대" || queries[1] != "홍익대학교" {
		t.Errorf("Expected raw query then landmark rewrite, got %v", queries)
	}
	if len(loc.TriedQueries) != 2 {
		t.Errorf("Expected tried queries recorded, got %v", loc.TriedQueries)
	}
}

// TestResolvePlaceAddressFallback tests the address search fallback
func TestResolvePlaceAddressFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "address") {
			w.Write([]byte(`{"documents":[{"address_name":"서울 강남구 역삼동 123","x":"127.03","y":"37.50"}]}`))
			return
		}
		w.Write([]byte(`{"documents":[],"meta":{"total_count":0,"is_end":true}}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	loc := c.ResolvePlace(context.Background(), "서울 강남구 역삼동 123")
	if !loc.Success {
		t.Fatalf("Expected address fallback to succeed, got %s", loc.Error)
	}
	if loc.Address != "서울 강남구 역삼동 123" {
		t.Errorf("Expected the resolved address, got %s", loc.Address)
	}
}

// TestResolvePlaceFailure tests the uniform failure shape with suggestion
func TestResolvePlaceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"documents":[],"meta":{"total_count":0,"is_end":true}}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	loc := c.ResolvePlace(context.Background(), "으악살")
	if loc.Success {
		t.Fatalf("Expected failure for an unresolvable name")
	}
	if loc.Suggestion == "" {
		t.Errorf("Expected a retry suggestion")
	}
	if len(loc.TriedQueries) == 0 {
		t.Errorf("Expected the tried queries to be reported")
	}
}

// TestResolvePlaceRegionalFallback tests hard-coded regional coordinates
func TestResolvePlaceRegionalFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"documents":[],"meta":{"total_count":0,"is_end":true}}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	loc := c.ResolvePlace(context.Background(), "부산 어딘가 모르는 곳")
	if !loc.Success {
		t.Fatalf("Expected regional fallback for 부산, got %s", loc.Error)
	}
	if loc.X != "129.0756416" {
		t.Errorf("Expected 부산 fallback coordinates, got %s", loc.X)
	}
}

// TestDefaultLocation tests the 서울시청 fallback
func TestDefaultLocation(t *testing.T) {
	loc := DefaultLocation()
	if !loc.Success || loc.X == "" || loc.Y == "" {
		t.Errorf("Expected populated default location, got %+v", loc)
	}
}
