package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	l, ok := Lookup("Hindi")
	require.True(t, ok)
	assert.Equal(t, "hindi", l.Code)
	assert.Equal(t, "Hindi", l.Name)
	assert.Equal(t, "हिन्दी", l.NativeName)

	l, ok = Lookup("kn")
	require.True(t, ok)
	assert.Equal(t, "kannada", l.Code)
	assert.Equal(t, "Kannada", l.Name)

	_, ok = Lookup("klingon")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	codes, unknown := Normalize([]string{"English", "en", " hindi ", "elvish"})
	assert.Equal(t, []string{"english", "hindi"}, codes)
	assert.Equal(t, []string{"elvish"}, unknown)
}

func TestAllIsSortedCopy(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Code, all[i].Code)
	}

	all[0].Code = "changed"
	assert.NotEqual(t, "changed", All()[0].Code)
}
