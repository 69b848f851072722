package types

import "time"

// Recommendation remembers what the last symptom analysis told the user,
// so later "왜 그 과를 추천했어?" turns can be answered from context.
type Recommendation struct {
	SymptomArea string   `json:"symptom_area"`
	Symptoms    string   `json:"symptoms"`
	Departments []string `json:"departments"`
	Diseases    []string `json:"diseases"`
}

// SessionState is the per-user conversational state. It is a snapshot type:
// the store hands out copies, never shared pointers into its map.
//
// Lifecycle: created lazily with zero values on first access, reset to zero
// values when now-LastUpdated exceeds the expiry window, mutated by the
// dialogue handler on every search or analysis turn.
type SessionState struct {
	Region             string              `json:"region,omitempty"`
	Department         string              `json:"department,omitempty"`
	ShownResultIDs     map[string]struct{} `json:"-"`
	Location           *Coordinates        `json:"location,omitempty"`
	LastUpdated        time.Time           `json:"last_updated"`
	LastRecommendation *Recommendation     `json:"last_recommendation,omitempty"`
}

// Fresh reports whether the session has no usable prior search.
func (s *SessionState) Fresh() bool {
	return s.Region == "" || s.Department == "" || s.Location == nil
}

// MarkShown records result IDs as already presented to the user.
func (s *SessionState) MarkShown(ids ...string) {
	if s.ShownResultIDs == nil {
		s.ShownResultIDs = make(map[string]struct{}, len(ids))
	}
	for _, id := range ids {
		if id != "" {
			s.ShownResultIDs[id] = struct{}{}
		}
	}
}

// Shown reports whether a result ID was already presented.
func (s *SessionState) Shown(id string) bool {
	_, ok := s.ShownResultIDs[id]
	return ok
}
