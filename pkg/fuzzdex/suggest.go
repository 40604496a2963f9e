package fuzzdex

import (
	"fmt"
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/fuzzdex/fuzzdex/internal/text"
)

// Suggestion is one prefix-completion result over the sealed vocabulary.
type Suggestion struct {
	// Token is a canonical token from the indexed phrases.
	Token string
	// Count is how many phrase tokens collapse to this canonical form.
	Count int
}

// Suggest returns up to limit canonical tokens starting with prefix, most
// frequent first. The prefix is folded the same way phrases were, so
// "Świ" finds "swiat".
func (idx *Index) Suggest(prefix string, limit int) ([]Suggestion, error) {
	if !idx.sealed {
		return nil, ErrNotSealed
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit %d", ErrInvalidArgument, limit)
	}

	folded := text.Fold(prefix)
	if folded == "" {
		return []Suggestion{}, nil
	}

	var suggestions []Suggestion
	err := idx.tokenTrie.VisitSubtree(patricia.Prefix(folded), func(p patricia.Prefix, item patricia.Item) error {
		suggestions = append(suggestions, Suggestion{
			Token: string(p),
			Count: item.(int),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("visiting token trie: %w", err)
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Count != suggestions[j].Count {
			return suggestions[i].Count > suggestions[j].Count
		}
		return suggestions[i].Token < suggestions[j].Token
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}
