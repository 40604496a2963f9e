package text

// sentinel pads tokens so that every non-empty token yields at least one
// trigram. A space cannot occur inside a normalized token.
const sentinel = ' '

// Trigrams returns every length-3 window over token bracketed by one
// sentinel on each side. A token of n runes yields n trigrams:
// "nowy" -> [" no" "now" "owy" "wy "].
func Trigrams(token string) []string {
	if token == "" {
		return nil
	}
	padded := make([]rune, 0, len(token)+2)
	padded = append(padded, sentinel)
	for _, r := range token {
		padded = append(padded, r)
	}
	padded = append(padded, sentinel)

	out := make([]string, 0, len(padded)-2)
	for i := 0; i+3 <= len(padded); i++ {
		out = append(out, string(padded[i:i+3]))
	}
	return out
}
