package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/fuzzdex/fuzzdex/pkg/config"
	"github.com/fuzzdex/fuzzdex/pkg/fuzzdex"
)

// Server handles the IPC for fuzzy phrase lookups against a sealed index.
type Server struct {
	index *fuzzdex.Index
	cfg   *config.Config

	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
}

// NewServer creates a lookup server using stdin/stdout for IPC.
func NewServer(index *fuzzdex.Index, cfg *config.Config) *Server {
	return NewServerWithIO(index, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a lookup server on arbitrary streams.
func NewServerWithIO(index *fuzzdex.Index, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		index:   index,
		cfg:     cfg,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests. It returns nil when the client
// closes its end of the pipe.
func (s *Server) Start() error {
	log.Debug("Starting server.")

	// Signal that the server is ready.
	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches one decoded request.
func (s *Server) handleRequest(request Request) {
	switch request.Op {
	case "search":
		s.handleSearch(request)
	case "suggest":
		s.handleSuggest(request)
	case "stats":
		s.handleStats(request)
	case "health":
		s.sendResponse(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown op: %s", request.Op), 400)
	}
}

func (s *Server) handleSearch(request Request) {
	if request.Must == "" {
		s.sendError(request.ID, "Missing 'm' (must token) parameter", 400)
		log.Debug("Must token is empty in request")
		return
	}
	if len(request.Must) > s.cfg.Server.MaxTokenLength {
		s.sendError(request.ID, fmt.Sprintf("Must token exceeds maximum length of %d", s.cfg.Server.MaxTokenLength), 400)
		return
	}

	limit := request.Limit
	if limit < 1 {
		limit = s.cfg.Server.DefaultLimit
	}
	if limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	query := fuzzdex.NewQuery(request.Must, request.Should...).WithLimit(limit)
	if request.Constraint != nil {
		query = query.WithConstraint(*request.Constraint)
	}
	if request.MaxDistance != nil {
		query = query.WithMaxDistance(*request.MaxDistance)
	} else {
		query = query.WithMaxDistance(s.cfg.Server.DefaultMaxDistance)
	}
	if s.cfg.Engine.ScanCutoff > 0 {
		query = query.WithScanCutoff(s.cfg.Engine.ScanCutoff)
	}

	start := time.Now()
	hits, err := s.index.Search(query)
	elapsed := time.Since(start)
	if err != nil {
		s.sendEngineError(request.ID, err)
		return
	}

	response := SearchResponse{
		ID:        request.ID,
		Hits:      make([]HitMessage, len(hits)),
		Count:     len(hits),
		TimeTaken: elapsed.Microseconds(),
	}
	for i, hit := range hits {
		response.Hits[i] = HitMessage{
			Origin:      hit.Origin,
			Index:       hit.Index,
			Token:       hit.Token,
			Distance:    hit.Distance,
			Score:       hit.Score,
			ShouldScore: hit.ShouldScore,
		}
	}
	s.sendResponse(response)
}

func (s *Server) handleSuggest(request Request) {
	if request.Prefix == "" {
		s.sendError(request.ID, "Missing 'p' (prefix) parameter", 400)
		return
	}

	limit := request.Limit
	if limit < 1 {
		limit = s.cfg.Server.DefaultLimit
	}
	if limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	suggestions, err := s.index.Suggest(request.Prefix, limit)
	elapsed := time.Since(start)
	if err != nil {
		s.sendEngineError(request.ID, err)
		return
	}

	response := SuggestResponse{
		ID:          request.ID,
		Suggestions: make([]SuggestionMessage, len(suggestions)),
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	}
	for i, suggestion := range suggestions {
		response.Suggestions[i] = SuggestionMessage{
			Token: suggestion.Token,
			Count: suggestion.Count,
		}
	}
	s.sendResponse(response)
}

func (s *Server) handleStats(request Request) {
	stats := s.index.Stats()
	s.sendResponse(StatsResponse{
		ID:           request.ID,
		Phrases:      stats.Phrases,
		Trigrams:     stats.Trigrams,
		CacheHits:    stats.Cache.Hits,
		CacheMisses:  stats.Cache.Misses,
		CacheInserts: stats.Cache.Inserts,
		CacheSize:    stats.Cache.Size,
	})
}

// sendEngineError maps engine sentinels to wire codes.
func (s *Server) sendEngineError(id string, err error) {
	code := 500
	switch {
	case errors.Is(err, fuzzdex.ErrInvalidArgument):
		code = 400
	case errors.Is(err, fuzzdex.ErrNotSealed):
		code = 409
	}
	s.sendError(id, err.Error(), code)
}

// sendResponse encodes one response onto the stream.
func (s *Server) sendResponse(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
