package gen

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flagerrors "github.com/reeflective/structcli/internal/errors"
)

func TestLevenshtein(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src, tgt string
		want     int
	}{
		{"", "abc", 3},
		{"abc", "", 3},
		{"verbose", "verbose", 0},
		{"verbos", "verbose", 1},
		{"kitten", "sitting", 3},
		{"b.y", "b.z", 1},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, levenshtein(test.src, test.tgt), "%s -> %s", test.src, test.tgt)
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	choices := []string{"max-retries", "output", "b.y"}

	closest, found := suggest("max-retry", choices)
	require.True(t, found)
	assert.Equal(t, "max-retries", closest)

	_, found = suggest("completely-different", choices)
	assert.False(t, found)

	_, found = suggest("x", choices)
	assert.False(t, found)
}

func TestParse_UnknownFlagSuggestion(t *testing.T) {
	t.Parallel()

	_, err := Parse(tree(t, reflect.TypeOf(nested{})), []string{"--b.z", "1"})
	require.ErrorIs(t, err, flagerrors.ErrUnknownArgument)
	assert.EqualError(t, err, "unknown flag: --b.z, did you mean --b.y?")
}
