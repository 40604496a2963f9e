package fuzzdex

// DefaultLimit is the hit quota used when a query does not set one.
const DefaultLimit = 10

// shouldWeight makes a should-trigram contribution rank slightly above a
// must contribution of equal rarity.
const shouldWeight = 1.25

// Query describes one search: a single must token that gates candidates,
// optional should tokens that only reweight them, and result filters.
// Build with NewQuery and the With* chain; a Query is not safe for
// concurrent mutation but may be reused between Search calls.
type Query struct {
	must        string
	should      []string
	constraint  *int
	maxDistance *int
	limit       int
	scanCutoff  float64
}

// NewQuery creates a query for the given raw must token. Both must and
// should values are normalized inside Search; if must normalizes into
// several tokens the first is the must and the rest join the should set.
func NewQuery(must string, should ...string) *Query {
	return &Query{
		must:   must,
		should: should,
		limit:  DefaultLimit,
	}
}

// WithConstraint restricts hits to phrases tagged with c.
func (q *Query) WithConstraint(c int) *Query {
	q.constraint = &c
	return q
}

// WithMaxDistance bounds the Levenshtein distance between the must token
// and the matched token. Unset means unbounded.
func (q *Query) WithMaxDistance(d int) *Query {
	q.maxDistance = &d
	return q
}

// WithLimit caps the number of hits returned.
func (q *Query) WithLimit(n int) *Query {
	q.limit = n
	return q
}

// WithScanCutoff skips candidates once an exact match exists and their
// phrase's summed heat falls below cutoff times the best phrase heat.
// Zero (the default) scans every candidate.
func (q *Query) WithScanCutoff(cutoff float64) *Query {
	q.scanCutoff = cutoff
	return q
}
