package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhitespace_CollapsesRuns(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeWhitespace("  a \t b\n\n c  "))
	assert.Equal(t, "", NormalizeWhitespace("   \n\t  "))
}

func TestStripHTML_RemovesTagsAndDecodesEntities(t *testing.T) {
	in := "<p>Models &amp; <b>agents</b> are here</p>"
	assert.Equal(t, "Models & agents are here", StripHTML(in))
}

func TestStripHTML_PlainTextUnchanged(t *testing.T) {
	assert.Equal(t, "no markup here", StripHTML("no markup here"))
}

func TestSafeSentence_ShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "short text.", SafeSentence("short text.", 100))
}

func TestSafeSentence_CutsAtSentenceBoundary(t *testing.T) {
	first := strings.Repeat("a", 90) + "."
	in := first + " " + strings.Repeat("b", 100)
	got := SafeSentence(in, 120)

	assert.Equal(t, first, got)
}

func TestSafeSentence_NeverSplitsMultibyteRunes(t *testing.T) {
	in := strings.Repeat("é", 200)
	got := SafeSentence(in, 100)

	assert.True(t, utf8.ValidString(got), "truncation produced invalid UTF-8: %q", got)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, 99+3, utf8.RuneCountInString(got))
}

func TestSafeSentence_CapCountsRunesNotBytes(t *testing.T) {
	// 90 two-byte runes exceed 100 bytes but stay under the 100-rune cap
	in := strings.Repeat("ø", 90)
	assert.Equal(t, in, SafeSentence(in, 100))
}

func TestSafeSentence_FallsBackToEllipsis(t *testing.T) {
	in := strings.Repeat("x", 300)
	got := SafeSentence(in, 100)

	assert.Len(t, got, 102)
	assert.True(t, strings.HasSuffix(got, "..."))
}
