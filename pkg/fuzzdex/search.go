package fuzzdex

import (
	"fmt"
	"math"
	"sort"

	"github.com/fuzzdex/fuzzdex/internal/text"
)

// Hit is one ranked search result. Score is the must-token trigram score of
// the matched token; ShouldScore is the bonus gathered from should tokens.
// Ranking uses their sum.
type Hit struct {
	// Origin is the phrase text as inserted, before normalization.
	Origin string
	// Index is the caller-supplied phrase index.
	Index int
	// Token is the canonical token that matched the must token.
	Token string
	// Distance is the Levenshtein distance between Token and the
	// normalized must token.
	Distance    int
	Score       float64
	ShouldScore float64
}

// candidate is one (phrase, token) pair surviving Stage 1, carrying its
// score decomposition through sorting and filtering.
type candidate struct {
	phraseIdx int
	tokenIdx  int
	base      float64
	should    float64
}

func (c candidate) total() float64 {
	return c.base + c.should
}

// Search runs the four-stage query pipeline: gather candidates from the
// must token's trigrams (cached), reweight them with should tokens, sort by
// total score, then walk the ranking applying the constraint and the edit
// distance bound until the limit is met. An empty result is not an error.
func (idx *Index) Search(q *Query) ([]Hit, error) {
	if !idx.sealed {
		return nil, ErrNotSealed
	}
	if q.limit <= 0 {
		return nil, fmt.Errorf("%w: limit %d", ErrInvalidArgument, q.limit)
	}
	if q.maxDistance != nil && *q.maxDistance < 0 {
		return nil, fmt.Errorf("%w: max distance %d", ErrInvalidArgument, *q.maxDistance)
	}

	mustTokens := text.Tokenize(q.must)
	if len(mustTokens) == 0 {
		return []Hit{}, nil
	}
	// Callers are expected to pre-split; if they did not, the first token
	// gates the search and the rest still contribute to the ranking.
	must := mustTokens[0]
	shouldTokens := make([]string, 0, len(q.should)+len(mustTokens)-1)
	shouldTokens = append(shouldTokens, mustTokens[1:]...)
	for _, raw := range q.should {
		shouldTokens = append(shouldTokens, text.Tokenize(raw)...)
	}

	hm := idx.cache.getOrBuild(must, idx.buildHeatmap)
	if len(hm.phrases) == 0 {
		return []Hit{}, nil
	}

	shouldScores := idx.shouldScores(hm, shouldTokens, q.constraint)
	candidates := rankCandidates(hm, shouldScores)
	return idx.filterCandidates(q, must, hm, candidates), nil
}

// buildHeatmap is Stage 1: walk the postings of every must trigram and
// accumulate the trigram's score per (phrase, token) pair.
func (idx *Index) buildHeatmap(must string) *heatmap {
	hm := newHeatmap()
	for _, trigram := range text.Trigrams(must) {
		entry, ok := idx.db[trigram]
		if !ok {
			continue
		}
		for _, p := range entry.postings {
			hm.add(p.phraseIdx, p.tokenIdx, entry.score)
		}
	}
	return hm
}

// shouldScores is Stage 2: per phrase already present in the heatmap, sum
// the weighted scores of should trigrams. Should tokens never add phrases,
// and phrases outside the query constraint collect nothing.
func (idx *Index) shouldScores(hm *heatmap, shouldTokens []string, constraint *int) map[int]float64 {
	if len(shouldTokens) == 0 {
		return nil
	}
	scores := make(map[int]float64, len(hm.phrases))
	for _, token := range shouldTokens {
		for _, trigram := range text.Trigrams(token) {
			entry, ok := idx.db[trigram]
			if !ok {
				continue
			}
			for _, p := range entry.postings {
				if !hm.hasPhrase(p.phraseIdx) {
					continue
				}
				if constraint != nil && !idx.phrases[p.phraseIdx].hasConstraint(*constraint) {
					continue
				}
				scores[p.phraseIdx] += entry.score * shouldWeight
			}
		}
	}
	return scores
}

// rankCandidates is Stage 3: flatten the heatmap into candidates and order
// them by total score descending, ties broken by phrase index then token
// position so results never depend on map iteration or insertion order.
func rankCandidates(hm *heatmap, shouldScores map[int]float64) []candidate {
	candidates := make([]candidate, 0, len(hm.phrases))
	for _, heat := range hm.phrases {
		should := shouldScores[heat.phraseIdx]
		for tokenIdx, score := range heat.tokens {
			candidates = append(candidates, candidate{
				phraseIdx: heat.phraseIdx,
				tokenIdx:  tokenIdx,
				base:      score,
				should:    should,
			})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.total() != b.total() {
			return a.total() > b.total()
		}
		if a.phraseIdx != b.phraseIdx {
			return a.phraseIdx < b.phraseIdx
		}
		return a.tokenIdx < b.tokenIdx
	})
	return candidates
}

// filterCandidates is Stage 4: walk the ranking, drop phrases outside the
// constraint, compute the edit distance lazily, and emit each phrase at
// most once until the quota is met.
func (idx *Index) filterCandidates(q *Query, must string, hm *heatmap, candidates []candidate) []Hit {
	maxDistance := math.MaxInt
	if q.maxDistance != nil {
		maxDistance = *q.maxDistance
	}

	hits := make([]Hit, 0, min(q.limit, len(candidates)))
	emitted := make(map[int]struct{}, q.limit)
	bestDistance := math.MaxInt

	for _, cand := range candidates {
		// The cutoff works on whole-phrase heat, not the per-token slice:
		// a multi-token phrase may spread its heat across candidates.
		if q.scanCutoff > 0 && bestDistance == 0 &&
			hm.phrases[cand.phraseIdx].total < q.scanCutoff*hm.maxScore {
			continue
		}
		phrase := idx.phrases[cand.phraseIdx]
		if q.constraint != nil && !phrase.hasConstraint(*q.constraint) {
			continue
		}
		if _, done := emitted[cand.phraseIdx]; done {
			continue
		}

		token := phrase.tokens[cand.tokenIdx]
		distance := text.Distance(must, token)
		if distance > maxDistance {
			continue
		}

		emitted[cand.phraseIdx] = struct{}{}
		hits = append(hits, Hit{
			Origin:      phrase.origin,
			Index:       phrase.idx,
			Token:       token,
			Distance:    distance,
			Score:       cand.base,
			ShouldScore: cand.should,
		})
		if distance < bestDistance {
			bestDistance = distance
		}
		if len(hits) >= q.limit {
			break
		}
	}
	return hits
}
