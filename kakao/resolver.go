package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/medimatch/medimatch-agent/lexicon"
	"github.com/medimatch/medimatch-agent/types"
)

// landmarkRewrites substitutes colloquial place names that the keyword
// search resolves poorly on their own.
var landmarkRewrites = map[string]string{
	"홍대":  "홍익대학교",
	"건대":  "건국대학교",
	"이대":  "이화여자대학교",
	"강남":  "강남역",
	"서울대": "서울대학교",
	"교대":  "교대역",
}

// regionalFallbacks are last-resort coordinates for top-level regions when
// every query rewrite failed.
var regionalFallbacks = map[string]types.Coordinates{
	"서울": {X: "126.9779692", Y: "37.566535"},
	"부산": {X: "129.0756416", Y: "35.1795543"},
	"대구": {X: "128.601445", Y: "35.8714354"},
	"인천": {X: "126.7052062", Y: "37.4562557"},
	"광주": {X: "126.8526012", Y: "35.1595454"},
	"대전": {X: "127.3845475", Y: "36.3504119"},
	"울산": {X: "129.3113596", Y: "35.5383773"},
	"제주": {X: "126.5311884", Y: "33.4996213"},
}

// ResolvePlace turns a place name into coordinates. It tries the raw name,
// landmark substitutions and suffix variants through keyword search, then
// address search, then a hard-coded regional fallback. The returned shape
// is uniform regardless of which attempt succeeded.
func (c *Client) ResolvePlace(ctx context.Context, placeName string) *types.ResolvedLocation {
	name := strings.TrimSpace(placeName)
	if name == "" {
		return &types.ResolvedLocation{
			Success: false,
			Error:   "장소명이 비어 있습니다.",
		}
	}

	var tried []string
	for _, query := range queryRewrites(name) {
		tried = append(tried, query)
		result := c.SearchKeyword(ctx, query, SearchOptions{Size: 1})
		if result.Success && len(result.Places) > 0 {
			p := result.Places[0]
			return &types.ResolvedLocation{
				Success:      true,
				X:            p.Coordinates.X,
				Y:            p.Coordinates.Y,
				PlaceName:    p.Name,
				Address:      p.Address,
				TriedQueries: tried,
			}
		}
	}

	// Keyword search found nothing: the name may be an address.
	tried = append(tried, name+" (주소검색)")
	if loc := c.searchAddress(ctx, name); loc != nil {
		loc.TriedQueries = tried
		return loc
	}

	for region, coords := range regionalFallbacks {
		if strings.Contains(name, region) {
			return &types.ResolvedLocation{
				Success:      true,
				X:            coords.X,
				Y:            coords.Y,
				PlaceName:    region,
				Address:      region,
				TriedQueries: tried,
			}
		}
	}

	return &types.ResolvedLocation{
		Success:      false,
		Error:        fmt.Sprintf("'%s'의 위치를 찾을 수 없습니다.", name),
		TriedQueries: tried,
		Suggestion:   "동 이름이나 지하철역 이름으로 다시 말씀해 주세요. (예: 강남역, 서교동)",
	}
}

// DefaultLocation returns the fallback coordinates (서울시청).
func DefaultLocation() *types.ResolvedLocation {
	return &types.ResolvedLocation{
		Success:   true,
		X:         lexicon.DefaultLocation.X,
		Y:         lexicon.DefaultLocation.Y,
		PlaceName: "서울시청",
		Address:   "서울특별시 중구 세종대로 110",
	}
}

func queryRewrites(name string) []string {
	queries := []string{name}
	if sub, ok := landmarkRewrites[name]; ok {
		queries = append(queries, sub)
	}
	if !strings.HasSuffix(name, "역") && !strings.HasSuffix(name, "구") && !strings.HasSuffix(name, "동") {
		queries = append(queries, name+"역")
	}
	if !strings.HasPrefix(name, "서울") && len([]rune(name)) <= 4 {
		queries = append(queries, "서울 "+name)
	}
	return dedupe(queries)
}

func dedupe(queries []string) []string {
	out := queries[:0]
	seen := make(map[string]struct{}, len(queries))
	for _, q := range queries {
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}

func (c *Client) searchAddress(ctx context.Context, query string) *types.ResolvedLocation {
	params := url.Values{}
	params.Set("query", query)
	body, err := c.get(ctx, addressSearchPath, params)
	if err != nil {
		c.log.Error("address search failed", err)
		return nil
	}
	var resp struct {
		Documents []struct {
			AddressName string `json:"address_name"`
			X           string `json:"x"`
			Y           string `json:"y"`
		} `json:"documents"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Documents) == 0 {
		return nil
	}
	doc := resp.Documents[0]
	return &types.ResolvedLocation{
		Success:   true,
		X:         doc.X,
		Y:         doc.Y,
		PlaceName: query,
		Address:   doc.AddressName,
	}
}
