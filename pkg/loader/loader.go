/*
Package loader fills an open index from a phrase file.

The format is line oriented, one phrase per line:

	index<TAB>phrase[<TAB>constraint,constraint,...]

Blank lines and lines starting with '#' are skipped. Malformed lines are
logged and skipped rather than aborting the load; a duplicate index is an
error because it signals a broken export, not a typo.
*/
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/fuzzdex/fuzzdex/pkg/fuzzdex"
)

// LoadFile reads phrases from path into idx and returns how many were added.
// The index stays open; the caller decides when to Finish.
func LoadFile(idx *fuzzdex.Index, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening phrase file: %w", err)
	}
	defer file.Close()

	return Load(idx, bufio.NewScanner(file))
}

// Load reads phrases from an already-open scanner. Split out so tests and
// alternative sources don't need a file on disk.
func Load(idx *fuzzdex.Index, scanner *bufio.Scanner) (int, error) {
	added := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		phraseIdx, origin, constraints, err := parseLine(line)
		if err != nil {
			log.Warnf("Skipping line %d: %v", lineNo, err)
			continue
		}

		if err := idx.AddPhrase(origin, phraseIdx, constraints); err != nil {
			if errors.Is(err, fuzzdex.ErrDuplicateIndex) {
				return added, fmt.Errorf("line %d: %w", lineNo, err)
			}
			log.Warnf("Skipping line %d: %v", lineNo, err)
			continue
		}
		added++
	}
	if err := scanner.Err(); err != nil {
		return added, fmt.Errorf("reading phrase file: %w", err)
	}
	log.Debugf("Loaded %d phrases", added)
	return added, nil
}

func parseLine(line string) (int, string, []int, error) {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) < 2 {
		return 0, "", nil, fmt.Errorf("expected index<TAB>phrase, got %q", line)
	}

	phraseIdx, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, "", nil, fmt.Errorf("bad phrase index %q: %w", fields[0], err)
	}

	origin := strings.TrimSpace(fields[1])
	if origin == "" {
		return 0, "", nil, fmt.Errorf("empty phrase for index %d", phraseIdx)
	}

	var constraints []int
	if len(fields) == 3 && strings.TrimSpace(fields[2]) != "" {
		for _, raw := range strings.Split(fields[2], ",") {
			c, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return 0, "", nil, fmt.Errorf("bad constraint %q: %w", raw, err)
			}
			constraints = append(constraints, c)
		}
	}
	return phraseIdx, origin, constraints, nil
}
