package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripsLeadingInitials(t *testing.T) {
	assert.Equal(t, "John Smith", Normalize("J. John Smith"))
	assert.Equal(t, "John Smith", Normalize("J John Smith"))
	assert.Equal(t, "John Smith", Normalize("JJohn Smith"))
}

func TestNormalizeStripsBullets(t *testing.T) {
	assert.Equal(t, "John Smith", Normalize("●J John Smith"))
	assert.Equal(t, "John Smith", Normalize("● J. John Smith"))
	assert.Equal(t, "John Smith", Normalize("•J John Smith"))
}

func TestNormalizeStripsMiddleInitial(t *testing.T) {
	assert.Equal(t, "John Smith", Normalize("John Q. Smith"))
	assert.Equal(t, "John Smith", Normalize("John Q Smith"))
}

func TestNormalizeCollapsesToFirstAndLast(t *testing.T) {
	assert.Equal(t, "Mary Wanjiku", Normalize("Mary Grace Atieno Wanjiku"))
}

func TestNormalizeLeavesCleanNamesAlone(t *testing.T) {
	assert.Equal(t, "John Smith", Normalize("John Smith"))
	assert.Equal(t, "Mary", Normalize("Mary"))
	assert.Equal(t, "", Normalize(""))
}

func TestNormalizeTrimsWhitespace(t *testing.T) {
	assert.Equal(t, "John Smith", Normalize("  John Smith  "))
}

func TestNormalizeUnicodeWhitespaceAfterInitial(t *testing.T) {
	assert.Equal(t, "John Smith", Normalize("J John Smith"))
	assert.Equal(t, "John Smith", Normalize("J John Smith"))
}

// Running the cleanup twice must not keep eating characters: stored names get
// re-normalized on every save.
func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"J. John Smith",
		"●J John Smith",
		"John Q. Smith",
		"Mary Grace Atieno Wanjiku",
		"John Smith",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
