package fuzzdex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCitiesIndex(t *testing.T) *Index {
	t.Helper()
	idx := New()
	require.NoError(t, idx.AddPhrase("Warsaw", 1, []int{1, 2, 3}))
	require.NoError(t, idx.AddPhrase("Wrocław", 2, []int{4}))
	require.NoError(t, idx.Finish())
	return idx
}

func newStreetsIndex(t *testing.T) *Index {
	t.Helper()
	idx := New()
	require.NoError(t, idx.AddPhrase("Czerniakowska", 1, []int{1}))
	require.NoError(t, idx.AddPhrase("Nowy Świat", 2, []int{1}))
	require.NoError(t, idx.AddPhrase("Wawelska", 3, []int{1}))
	require.NoError(t, idx.AddPhrase("Czerniawska", 4, []int{2}))
	require.NoError(t, idx.Finish())
	return idx
}

func TestLifecycle(t *testing.T) {
	idx := New()
	require.False(t, idx.Sealed())

	_, err := idx.Search(NewQuery("warszawa"))
	require.ErrorIs(t, err, ErrNotSealed)

	require.NoError(t, idx.AddPhrase("Warsaw", 1, nil))
	require.NoError(t, idx.Finish())
	require.True(t, idx.Sealed())

	require.ErrorIs(t, idx.AddPhrase("Kraków", 2, nil), ErrAlreadySealed)
	require.ErrorIs(t, idx.Finish(), ErrAlreadySealed)

	_, err = idx.Search(NewQuery("warsaw"))
	require.NoError(t, err)
}

func TestDuplicateIndexLeavesIndexUnchanged(t *testing.T) {
	idx := New()
	require.NoError(t, idx.AddPhrase("Warsaw", 1, nil))

	before := idx.Stats()
	err := idx.AddPhrase("Wrocław", 1, nil)
	require.ErrorIs(t, err, ErrDuplicateIndex)
	assert.Equal(t, before.Phrases, idx.Stats().Phrases)
	assert.Equal(t, before.Trigrams, idx.Stats().Trigrams)

	require.NoError(t, idx.Finish())
	hits, err := idx.Search(NewQuery("wroclaw").WithMaxDistance(1))
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestInvalidConstraintLeavesIndexUnchanged(t *testing.T) {
	idx := New()

	before := idx.Stats()
	err := idx.AddPhrase("Warsaw", 1, []int{0, -1})
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, before.Phrases, idx.Stats().Phrases)
	assert.Equal(t, before.Trigrams, idx.Stats().Trigrams)

	// The rejected phrase id must be free again, and a must token sharing
	// its trigrams must only find the retried insert.
	require.NoError(t, idx.AddPhrase("Warsaw", 1, []int{1}))
	require.NoError(t, idx.Finish())

	hits, err := idx.Search(NewQuery("warsaw").WithLimit(60))
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Index)
	assert.Len(t, idx.db["saw"].postings, 1)
}

func TestRejectedInsertNeverMatches(t *testing.T) {
	idx := New()
	require.NoError(t, idx.AddPhrase("Kraków", 2, nil))
	require.ErrorIs(t, idx.AddPhrase("Warsaw", 1, []int{-1}), ErrInvalidArgument)
	require.NoError(t, idx.Finish())

	hits, err := idx.Search(NewQuery("warsaw").WithLimit(60))
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestInvalidArguments(t *testing.T) {
	idx := New()
	require.ErrorIs(t, idx.AddPhrase("Warsaw", -1, nil), ErrInvalidArgument)
	require.NoError(t, idx.AddPhrase("Warsaw", 1, nil))
	require.NoError(t, idx.Finish())

	_, err := idx.Search(NewQuery("warsaw").WithLimit(0))
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = idx.Search(NewQuery("warsaw").WithMaxDistance(-1))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEmptyPhraseIsStoredButNeverMatches(t *testing.T) {
	idx := New()
	require.NoError(t, idx.AddPhrase("...", 7, nil))
	require.NoError(t, idx.AddPhrase("Warsaw", 1, nil))
	require.NoError(t, idx.Finish())

	assert.Equal(t, 2, idx.Stats().Phrases)

	hits, err := idx.Search(NewQuery("warsaw"))
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Index)
}

func TestSealScoring(t *testing.T) {
	// "saw" occurs in one phrase, " wa" in two: rarity must order the
	// scores as 1/df.
	idx := New()
	require.NoError(t, idx.AddPhrase("warsaw", 1, nil))
	require.NoError(t, idx.AddPhrase("warta", 2, nil))
	require.NoError(t, idx.Finish())

	assert.InDelta(t, 1.0, idx.db["saw"].score, 1e-9)
	assert.InDelta(t, 0.5, idx.db[" wa"].score, 1e-9)
	assert.InDelta(t, 0.5, idx.db["war"].score, 1e-9)
}

func TestDuplicateTrigramsWithinTokenCoalesce(t *testing.T) {
	// "barbar" repeats "bar", "arb", "rba": each must post once.
	idx := New()
	require.NoError(t, idx.AddPhrase("barbar", 1, nil))
	require.NoError(t, idx.Finish())

	entry := idx.db["bar"]
	require.NotNil(t, entry)
	assert.Len(t, entry.postings, 1)
	assert.InDelta(t, 1.0, entry.score, 1e-9)
}

func TestStats(t *testing.T) {
	idx := newCitiesIndex(t)
	stats := idx.Stats()
	assert.Equal(t, 2, stats.Phrases)
	assert.Positive(t, stats.Trigrams)
	assert.Zero(t, stats.Cache.Hits)

	_, err := idx.Search(NewQuery("warszawa"))
	require.NoError(t, err)
	_, err = idx.Search(NewQuery("warszawa"))
	require.NoError(t, err)

	stats = idx.Stats()
	assert.Equal(t, int64(1), stats.Cache.Misses)
	assert.Equal(t, int64(1), stats.Cache.Hits)
	assert.Equal(t, int64(1), stats.Cache.Inserts)
	assert.Equal(t, 1, stats.Cache.Size)
}
