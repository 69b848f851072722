package types

// Coordinates are Kakao map coordinates. Kakao returns x (longitude) and
// y (latitude) as strings; they are carried as-is.
type Coordinates struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// Place is one hospital or pharmacy record from the place search source.
// The two underscore fields are attached by the specialty ranker and are
// never populated by the search layer itself.
type Place struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Category      string      `json:"category"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	RoadAddress   string      `json:"road_address"`
	Coordinates   Coordinates `json:"coordinates"`
	Distance      string      `json:"distance"`
	MapURL        string      `json:"kakao_map_url,omitempty"`
	DirectionsURL string      `json:"directions_url,omitempty"`

	SpecialtyScore   int  `json:"_specialtyScore,omitempty"`
	IsSpecialtyMatch bool `json:"_isSpecialtyMatch,omitempty"`
}

// ResolvedLocation is the uniform success shape of the place resolver,
// regardless of which query rewrite produced it.
type ResolvedLocation struct {
	Success      bool     `json:"success"`
	X            string   `json:"x,omitempty"`
	Y            string   `json:"y,omitempty"`
	PlaceName    string   `json:"place_name,omitempty"`
	Address      string   `json:"address,omitempty"`
	Error        string   `json:"error,omitempty"`
	TriedQueries []string `json:"tried_queries,omitempty"`
	Suggestion   string   `json:"suggestion,omitempty"`
}

// SearchResult is the uniform shape of keyword/category place search.
type SearchResult struct {
	Success    bool    `json:"success"`
	TotalCount int     `json:"total_count"`
	IsEnd      bool    `json:"is_end"`
	Places     []Place `json:"places"`
	Error      string  `json:"error,omitempty"`
}
