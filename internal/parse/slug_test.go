package parse_test

import (
	"strings"
	"testing"

	"github.com/bazaarline/importer/internal/parse"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Run("PersianName", func(t *testing.T) {
		assert.Equal(t, "کیف-دستی-رزگلد", parse.Slugify("کیف دستی رزگلد"))
	})

	t.Run("LatinNameLowercased", func(t *testing.T) {
		assert.Equal(t, "rose-gold-bag", parse.Slugify("Rose Gold Bag!"))
	})

	t.Run("AccentedLatinLettersKept", func(t *testing.T) {
		assert.Equal(t, "café-glacé", parse.Slugify("Café Glacé"))
	})

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, parse.Slugify("کیف دستی"), parse.Slugify("کیف دستی"))
	})

	t.Run("CollapsesSeparatorRuns", func(t *testing.T) {
		assert.Equal(t, "a-b-c", parse.Slugify("a  - b --- c"))
	})

	t.Run("NoEdgeHyphens", func(t *testing.T) {
		slug := parse.Slugify("- کیف -")
		assert.False(t, strings.HasPrefix(slug, "-"))
		assert.False(t, strings.HasSuffix(slug, "-"))
	})

	t.Run("MaxFiftyRunes", func(t *testing.T) {
		long := strings.Repeat("کیف ", 40)
		slug := parse.Slugify(long)
		assert.LessOrEqual(t, len([]rune(slug)), 50)
		assert.False(t, strings.HasSuffix(slug, "-"))
	})

	t.Run("PunctuationOnlyFallsBack", func(t *testing.T) {
		slug := parse.Slugify("!!! ... 💰💰")
		assert.True(t, strings.HasPrefix(slug, "product-"))
	})

	t.Run("EmptyFallsBack", func(t *testing.T) {
		slug := parse.Slugify("")
		assert.True(t, strings.HasPrefix(slug, "product-"))
		assert.NotEmpty(t, slug)
	})
}
