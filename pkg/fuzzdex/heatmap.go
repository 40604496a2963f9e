package fuzzdex

// phraseHeat accumulates trigram scores for one phrase, per token slot.
type phraseHeat struct {
	phraseIdx int
	// tokens maps token position -> summed trigram score.
	tokens map[int]float64
	total  float64
}

// heatmap is the Stage-1 result for a must token: every (phrase, token)
// pair sharing at least one trigram with the token, weighted by trigram
// rarity. Heatmaps are built once, cached, and never mutated afterwards.
type heatmap struct {
	phrases  map[int]*phraseHeat
	maxScore float64
}

func newHeatmap() *heatmap {
	return &heatmap{phrases: make(map[int]*phraseHeat, 8)}
}

func (h *heatmap) add(phraseIdx, tokenIdx int, score float64) {
	heat, ok := h.phrases[phraseIdx]
	if !ok {
		heat = &phraseHeat{phraseIdx: phraseIdx, tokens: make(map[int]float64, 2)}
		h.phrases[phraseIdx] = heat
	}
	heat.tokens[tokenIdx] += score
	heat.total += score
	if heat.total > h.maxScore {
		h.maxScore = heat.total
	}
}

func (h *heatmap) hasPhrase(phraseIdx int) bool {
	_, ok := h.phrases[phraseIdx]
	return ok
}
