// Package cli handles cmd line input and searches for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fuzzdex/fuzzdex/internal/logger"
	"github.com/fuzzdex/fuzzdex/internal/utils"
	"github.com/fuzzdex/fuzzdex/pkg/fuzzdex"
)

// InputHandler processes user input from stdin and runs fuzzy searches.
// The first word of a line is the must token, every following word is a
// should token. Limit, max distance and constraint come from flags.
type InputHandler struct {
	index        *fuzzdex.Index
	printer      *log.Logger
	searchLimit  int
	maxDistance  int
	constraint   *int
	requestCount int
	noFilter     bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters.
// Prompt and hit output go through a dedicated printer so they stay visible
// when the global level is raised above info.
func NewInputHandler(index *fuzzdex.Index, limit, maxDistance int, constraint *int, noFilter bool) *InputHandler {
	return &InputHandler{
		index:       index,
		printer:     logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter),
		searchLimit: limit,
		maxDistance: maxDistance,
		constraint:  constraint,
		noFilter:    noFilter,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	h.printer.Print("FuzzDex CLI")
	reader := bufio.NewReader(os.Stdin)
	h.printer.Print("type a must token (optionally followed by should tokens) and press Enter (Ctrl+C to exit):")

	for {
		h.printer.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput runs a single search line and prints the ranked hits.
func (h *InputHandler) handleInput(line string) {
	h.requestCount++

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter {
		if !utils.IsValidQueryInput(line) {
			log.Infof("No results found for query: '%s'", line)
			return
		}
	} else {
		log.Debug("Input filtering disabled - raw query passed through")
	}

	words := strings.Fields(line)
	must := words[0]
	should := words[1:]

	query := fuzzdex.NewQuery(must, should...).
		WithLimit(h.searchLimit).
		WithMaxDistance(h.maxDistance)
	if h.constraint != nil {
		query = query.WithConstraint(*h.constraint)
	}

	start := time.Now()
	hits, err := h.index.Search(query)
	elapsed := time.Since(start)

	if err != nil {
		log.Errorf("Search failed for '%s': %v", line, err)
		return
	}
	log.Debugf("Took [ %v ] for query '%s'", elapsed, line)

	if len(hits) == 0 {
		log.Warnf("No hits found for query: '%s'", line)
		return
	}

	h.printer.Printf("Found %d hits for '%s':", len(hits), line)
	for i, hit := range hits {
		clOrigin := fmt.Sprintf("\033[38;5;75m%s\033[0m", hit.Origin)
		h.printer.Printf("%2d. %-40s (idx: %6d, token: %-16s dist: %d, score: %.3f)",
			i+1, clOrigin, hit.Index, hit.Token, hit.Distance, hit.Score+hit.ShouldScore)
	}
}
