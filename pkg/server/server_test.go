package server

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/fuzzdex/fuzzdex/pkg/config"
	"github.com/fuzzdex/fuzzdex/pkg/fuzzdex"
)

func newTestIndex(t *testing.T) *fuzzdex.Index {
	t.Helper()
	idx := fuzzdex.New()
	require.NoError(t, idx.AddPhrase("Warsaw", 1, []int{1}))
	require.NoError(t, idx.AddPhrase("Wrocław", 2, []int{2}))
	require.NoError(t, idx.AddPhrase("Nowy Świat", 3, []int{1}))
	require.NoError(t, idx.Finish())
	return idx
}

// run feeds encoded requests through a server and returns the decoder over
// everything it wrote, with the initial ready message already consumed.
func run(t *testing.T, idx *fuzzdex.Index, requests ...Request) *msgpack.Decoder {
	t.Helper()

	var input bytes.Buffer
	enc := msgpack.NewEncoder(&input)
	for _, request := range requests {
		require.NoError(t, enc.Encode(request))
	}

	var output bytes.Buffer
	srv := NewServerWithIO(idx, config.DefaultConfig(), &input, &output)
	require.NoError(t, srv.Start())

	dec := msgpack.NewDecoder(&output)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	require.Equal(t, "ready", ready.Status)
	return dec
}

func TestServerSearch(t *testing.T) {
	dec := run(t, newTestIndex(t), Request{
		ID:   "req_001",
		Op:   "search",
		Must: "warszawa",
	})

	var response SearchResponse
	require.NoError(t, dec.Decode(&response))
	assert.Equal(t, "req_001", response.ID)
	require.Equal(t, 1, response.Count)
	assert.Equal(t, "Warsaw", response.Hits[0].Origin)
	assert.Equal(t, 1, response.Hits[0].Index)
	assert.Equal(t, 2, response.Hits[0].Distance)
}

func TestServerSearchWithConstraint(t *testing.T) {
	constraint := 2
	dec := run(t, newTestIndex(t), Request{
		ID:         "req_002",
		Op:         "search",
		Must:       "wroclaw",
		Constraint: &constraint,
	})

	var response SearchResponse
	require.NoError(t, dec.Decode(&response))
	require.Equal(t, 1, response.Count)
	assert.Equal(t, 2, response.Hits[0].Index)
}

func TestServerSearchValidation(t *testing.T) {
	dec := run(t, newTestIndex(t), Request{ID: "bad_1", Op: "search"})

	var errResponse ErrorResponse
	require.NoError(t, dec.Decode(&errResponse))
	assert.Equal(t, "bad_1", errResponse.ID)
	assert.Equal(t, 400, errResponse.Code)
}

func TestServerSearchBeforeSeal(t *testing.T) {
	idx := fuzzdex.New()
	require.NoError(t, idx.AddPhrase("Warsaw", 1, nil))

	dec := run(t, idx, Request{ID: "req_003", Op: "search", Must: "warsaw"})

	var errResponse ErrorResponse
	require.NoError(t, dec.Decode(&errResponse))
	assert.Equal(t, 409, errResponse.Code)
}

func TestServerSuggest(t *testing.T) {
	dec := run(t, newTestIndex(t), Request{
		ID:     "sg_001",
		Op:     "suggest",
		Prefix: "now",
	})

	var response SuggestResponse
	require.NoError(t, dec.Decode(&response))
	require.Equal(t, 1, response.Count)
	assert.Equal(t, "nowy", response.Suggestions[0].Token)
}

func TestServerStatsAndHealth(t *testing.T) {
	dec := run(t, newTestIndex(t),
		Request{ID: "st_001", Op: "stats"},
		Request{ID: "hp_001", Op: "health"},
		Request{ID: "uk_001", Op: "frobnicate"},
	)

	var stats StatsResponse
	require.NoError(t, dec.Decode(&stats))
	assert.Equal(t, 3, stats.Phrases)
	assert.Positive(t, stats.Trigrams)

	var health StatusResponse
	require.NoError(t, dec.Decode(&health))
	assert.Equal(t, "ok", health.Status)

	var errResponse ErrorResponse
	require.NoError(t, dec.Decode(&errResponse))
	assert.Equal(t, 400, errResponse.Code)
}
