package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanContent_DropsJunkAndShortLines(t *testing.T) {
	in := strings.Join([]string{
		"This paragraph carries enough substance to be worth keeping around.",
		"Subscribe to our newsletter for more updates about everything we do!",
		"short",
		"Accept all cookie preferences to continue reading this article today.",
		"Another solid paragraph that describes the actual story in detail here.",
	}, "\n")

	got := CleanContent(in)

	assert.Contains(t, got, "worth keeping")
	assert.Contains(t, got, "actual story")
	assert.NotContains(t, got, "newsletter")
	assert.NotContains(t, got, "cookie")
	assert.NotContains(t, got, "short")
}

func TestCleanContent_CapsOnParagraphBoundary(t *testing.T) {
	paragraph := strings.Repeat("sentence with plenty of characters inside it ", 10)
	in := strings.Join([]string{paragraph, paragraph, paragraph, paragraph, paragraph, paragraph}, "\n")

	got := CleanContent(in)

	assert.LessOrEqual(t, len(got), maxContentChars)
	assert.False(t, strings.HasSuffix(got, " "))
	// the cap keeps whole paragraphs, never a cut-off one
	for _, kept := range strings.Split(got, "\n\n") {
		assert.Equal(t, strings.TrimSpace(paragraph), kept)
	}
}

func TestCleanContent_EmptyInput(t *testing.T) {
	assert.Equal(t, "", CleanContent(""))
}
