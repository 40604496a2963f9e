/*
Package server implements msgpack IPC for fuzzy dictionary services.

The server provides a minimal interface for phrase lookup using msgpack
serialization over stdin/stdout.

# IPC

The server operates on a request response model: clients send structured
messages via stdin and receive responses through stdout. Each message
carries an ID field, an op, and the fields that op needs.

Search requests use mainly this structure:

	{"id": "req_001", "op": "search", "m": "warszawa", "d": 2, "l": 10}

The server responds with hits ranked by trigram score:

	{"id": "req_001", "h": [{"o": "Warsaw", "i": 1, "t": "warsaw", "d": 2, ...}], "c": 1, "t": 145}

Suggest requests complete a token prefix over the indexed vocabulary:

	{"id": "sg_001", "op": "suggest", "p": "now", "l": 10}

Stats and health ops take no extra fields. Responses include status
information and error details when an op fails.

msgpack encoding has noticeably smaller message sizes compared to JSON and
parses faster on both ends of the pipe.
*/
package server

// Request is the envelope for every incoming message.
type Request struct {
	ID string `msgpack:"id"`
	// Op is one of "search", "suggest", "stats", "health".
	Op string `msgpack:"op"`

	// Search fields.
	Must        string   `msgpack:"m,omitempty"`
	Should      []string `msgpack:"s,omitempty"`
	Constraint  *int     `msgpack:"c,omitempty"`
	MaxDistance *int     `msgpack:"d,omitempty"`
	Limit       int      `msgpack:"l,omitempty"`

	// Suggest fields.
	Prefix string `msgpack:"p,omitempty"`
}

// HitMessage mirrors one engine hit on the wire.
type HitMessage struct {
	Origin      string  `msgpack:"o"`
	Index       int     `msgpack:"i"`
	Token       string  `msgpack:"t"`
	Distance    int     `msgpack:"d"`
	Score       float64 `msgpack:"sc"`
	ShouldScore float64 `msgpack:"ss"`
}

// SearchResponse carries ranked hits plus timing in microseconds.
type SearchResponse struct {
	ID        string       `msgpack:"id"`
	Hits      []HitMessage `msgpack:"h"`
	Count     int          `msgpack:"c"`
	TimeTaken int64        `msgpack:"t"`
}

// SuggestionMessage is one prefix completion on the wire.
type SuggestionMessage struct {
	Token string `msgpack:"t"`
	Count int    `msgpack:"n"`
}

// SuggestResponse carries prefix completions plus timing in microseconds.
type SuggestResponse struct {
	ID          string              `msgpack:"id"`
	Suggestions []SuggestionMessage `msgpack:"s"`
	Count       int                 `msgpack:"c"`
	TimeTaken   int64               `msgpack:"t"`
}

// StatsResponse reports index and cache counters.
type StatsResponse struct {
	ID           string `msgpack:"id"`
	Phrases      int    `msgpack:"phrases"`
	Trigrams     int    `msgpack:"trigrams"`
	CacheHits    int64  `msgpack:"cache_hits"`
	CacheMisses  int64  `msgpack:"cache_misses"`
	CacheInserts int64  `msgpack:"cache_inserts"`
	CacheSize    int    `msgpack:"cache_size"`
}

// StatusResponse signals readiness and health checks.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id,omitempty"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
