package text

import "github.com/hbollon/go-edlib"

// Tokens are words; anything longer than this is truncated before the edit
// distance pass so a hostile query cannot blow up the O(n*m) table.
const maxCompareRunes = 500

// Distance returns the Levenshtein distance between a and b, computed over
// at most the first 500 runes of each.
func Distance(a, b string) int {
	return edlib.LevenshteinDistance(clip(a), clip(b))
}

func clip(s string) string {
	n := 0
	for i := range s {
		if n == maxCompareRunes {
			return s[:i]
		}
		n++
	}
	return s
}
