/*
Package fuzzdex implements an in-memory fuzzy dictionary: short phrases are
mapped to caller-supplied integer indices and later found by a single
possibly-misspelled token.

An Index starts open, accepts AddPhrase calls, and is sealed exactly once
with Finish. Sealing derives a score for every trigram from its document
frequency; after that the index is immutable and Search may be called from
any number of goroutines.
*/
package fuzzdex

import (
	"fmt"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/fuzzdex/fuzzdex/internal/text"
)

// DefaultCacheSize bounds the must-token heatmap cache.
const DefaultCacheSize = 4096

// posting locates one token occurrence: which phrase and which token slot
// within it.
type posting struct {
	phraseIdx int
	tokenIdx  int
}

// trigramEntry is the inverted-index row for one trigram. The score is zero
// while the index is open and becomes 1/df at seal.
type trigramEntry struct {
	postings []posting
	score    float64
}

type phraseEntry struct {
	idx         int
	origin      string
	tokens      []string
	constraints map[int]struct{}
}

func (p *phraseEntry) hasConstraint(c int) bool {
	_, ok := p.constraints[c]
	return ok
}

// Index is the fuzzy dictionary. The zero value is not usable; call New.
type Index struct {
	db          map[string]*trigramEntry
	phrases     map[int]*phraseEntry
	constraints map[int]map[int]struct{}

	// tokenTrie is built at seal and serves prefix suggestions.
	tokenTrie *patricia.Trie

	cache  *heatmapCache
	sealed bool
}

// New creates an empty open index with the default cache size.
func New() *Index {
	return NewWithCacheSize(DefaultCacheSize)
}

// NewWithCacheSize creates an empty open index. A size of zero or less
// disables the must-token cache entirely; hit lists do not change either way.
func NewWithCacheSize(cacheSize int) *Index {
	return &Index{
		db:          make(map[string]*trigramEntry, 32768),
		phrases:     make(map[int]*phraseEntry),
		constraints: make(map[int]map[int]struct{}),
		cache:       newHeatmapCache(cacheSize),
	}
}

// AddPhrase stores origin under the caller-supplied phrase index and fills
// the trigram and constraint indices from its canonical tokens. A phrase
// whose tokens all normalize away is stored but never matches.
func (idx *Index) AddPhrase(origin string, phraseIdx int, constraints []int) error {
	if idx.sealed {
		return ErrAlreadySealed
	}
	if phraseIdx < 0 {
		return fmt.Errorf("%w: negative phrase index %d", ErrInvalidArgument, phraseIdx)
	}
	if _, ok := idx.phrases[phraseIdx]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateIndex, phraseIdx)
	}
	for _, c := range constraints {
		if c < 0 {
			return fmt.Errorf("%w: negative constraint %d", ErrInvalidArgument, c)
		}
	}

	// Checks done; nothing below can fail, so a rejected call never leaves
	// postings or constraint entries behind.
	tokens := text.Tokenize(origin)
	for tokenIdx, token := range tokens {
		idx.addToken(token, phraseIdx, tokenIdx)
	}

	entry := &phraseEntry{
		idx:         phraseIdx,
		origin:      origin,
		tokens:      tokens,
		constraints: make(map[int]struct{}, len(constraints)),
	}
	for _, c := range constraints {
		entry.constraints[c] = struct{}{}
		set, ok := idx.constraints[c]
		if !ok {
			set = make(map[int]struct{})
			idx.constraints[c] = set
		}
		set[phraseIdx] = struct{}{}
	}
	idx.phrases[phraseIdx] = entry
	return nil
}

// addToken appends one posting per distinct trigram of token. A trigram
// repeating within the token still yields a single posting.
func (idx *Index) addToken(token string, phraseIdx, tokenIdx int) {
	seen := make(map[string]struct{}, len(token)+2)
	for _, trigram := range text.Trigrams(token) {
		if _, dup := seen[trigram]; dup {
			continue
		}
		seen[trigram] = struct{}{}

		entry, ok := idx.db[trigram]
		if !ok {
			entry = &trigramEntry{}
			idx.db[trigram] = entry
		}
		entry.postings = append(entry.postings, posting{phraseIdx: phraseIdx, tokenIdx: tokenIdx})
	}
}

// Finish seals the index: every trigram gets score 1/df where df is the
// number of distinct phrases it occurs in, and the token trie for prefix
// suggestions is built. Mutations and a second Finish fail afterwards.
func (idx *Index) Finish() error {
	if idx.sealed {
		return ErrAlreadySealed
	}

	for _, entry := range idx.db {
		df := countDistinctPhrases(entry.postings)
		entry.score = 1.0 / float64(df)
	}

	idx.tokenTrie = patricia.NewTrie()
	for _, phrase := range idx.phrases {
		for _, token := range phrase.tokens {
			count := 1
			if item := idx.tokenTrie.Get(patricia.Prefix(token)); item != nil {
				count = item.(int) + 1
			}
			idx.tokenTrie.Set(patricia.Prefix(token), count)
		}
	}

	idx.sealed = true
	return nil
}

func countDistinctPhrases(postings []posting) int {
	seen := make(map[int]struct{}, len(postings))
	for _, p := range postings {
		seen[p.phraseIdx] = struct{}{}
	}
	return len(seen)
}

// Sealed reports whether Finish has been called.
func (idx *Index) Sealed() bool {
	return idx.sealed
}

// Stats describes the index and its cache. Available in any state.
type Stats struct {
	Phrases  int
	Trigrams int
	Cache    CacheStats
}

// Stats returns phrase and trigram counts plus cache counters.
func (idx *Index) Stats() Stats {
	return Stats{
		Phrases:  len(idx.phrases),
		Trigrams: len(idx.db),
		Cache:    idx.cache.stats(),
	}
}
