package analyzer

import "strings"

// Match confidences by strategy. Exact containment of the dictionary key
// beats the substring-set lookup, which beats the reverse partial match.
const (
	confExact   = 1.0
	confKeyword = 0.9
	confReverse = 0.7
)

// Reverse matching slides windows of this rune-length range over the
// dictionary key and looks for them in the input. Windows shorter than 4
// runes hit particle sequences shared across body parts (가아파 and the
// like) and cross-match unrelated keys.
const (
	minReverseWindow = 4
	maxReverseWindow = 6
)

// matchKey tests one dictionary key against normalized input. Returns the
// match confidence, whether it was an exact containment, and whether it
// matched at all.
func matchKey(normalized string, subs map[string]struct{}, key string) (float64, bool, bool) {
	kr := []rune(key)
	if len(kr) >= minSubstringLen && strings.Contains(normalized, key) {
		return confExact, true, true
	}
	if _, ok := subs[key]; ok {
		return confKeyword, false, true
	}
	// Reverse: a sizable piece of the key appears in the input even though
	// the full key does not (e.g. key 배가아프 vs input 배가아파요 already
	// handled above, but key 귀에서소리가남 vs input 귀에서소리 is not).
	for l := maxReverseWindow; l >= minReverseWindow; l-- {
		if l >= len(kr) {
			continue
		}
		for i := 0; i+l <= len(kr); i++ {
			if strings.Contains(normalized, string(kr[i:i+l])) {
				return confReverse, false, true
			}
		}
	}
	return 0, false, false
}

func containsAny(s string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return kw, true
		}
	}
	return "", false
}
