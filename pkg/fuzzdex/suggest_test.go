package fuzzdex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	idx := New()
	require.NoError(t, idx.AddPhrase("Nowy Świat", 1, nil))
	require.NoError(t, idx.AddPhrase("Nowy Targ", 2, nil))
	require.NoError(t, idx.AddPhrase("Nowowiejska", 3, nil))
	require.NoError(t, idx.AddPhrase("Wawelska", 4, nil))
	require.NoError(t, idx.Finish())

	suggestions, err := idx.Suggest("now", 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	// "nowy" occurs in two phrases and outranks "nowowiejska".
	assert.Equal(t, Suggestion{Token: "nowy", Count: 2}, suggestions[0])
	assert.Equal(t, Suggestion{Token: "nowowiejska", Count: 1}, suggestions[1])
}

func TestSuggestFoldsPrefix(t *testing.T) {
	idx := New()
	require.NoError(t, idx.AddPhrase("Świętokrzyska", 1, nil))
	require.NoError(t, idx.Finish())

	suggestions, err := idx.Suggest("Świę", 5)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "swietokrzyska", suggestions[0].Token)
}

func TestSuggestLimitAndErrors(t *testing.T) {
	idx := New()
	require.NoError(t, idx.AddPhrase("Warsaw", 1, nil))

	_, err := idx.Suggest("wa", 5)
	require.ErrorIs(t, err, ErrNotSealed)

	require.NoError(t, idx.Finish())

	_, err = idx.Suggest("wa", 0)
	require.ErrorIs(t, err, ErrInvalidArgument)

	suggestions, err := idx.Suggest("zzz", 5)
	require.NoError(t, err)
	assert.Empty(t, suggestions)

	suggestions, err = idx.Suggest("", 5)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}
