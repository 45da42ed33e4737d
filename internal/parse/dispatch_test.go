package parse_test

import (
	"testing"

	"github.com/bazaarline/importer/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageKeywordFormat(t *testing.T) {
	t.Run("NameAndPriceOnly", func(t *testing.T) {
		r, ok := parse.Message("نام محصول: ساعت\nقیمت: 500000")
		require.True(t, ok)

		assert.Equal(t, parse.StrategyKeyword, r.Strategy)
		assert.Equal(t, "ساعت", r.Name)
		assert.Equal(t, 500000, r.Price)
		assert.Equal(t, parse.CurrencyIRT, r.Currency)
		assert.Empty(t, r.Category)
		assert.Empty(t, r.Description)
	})

	t.Run("WithCategoryLabel", func(t *testing.T) {
		text := "نام محصول: کیف دستی رزگلد\nدسته‌بندی: کیف زنانه\nقیمت: 1250000"
		r, ok := parse.Message(text)
		require.True(t, ok)

		assert.Equal(t, parse.StrategyKeyword, r.Strategy)
		assert.Equal(t, "کیف دستی رزگلد", r.Name)
		assert.Equal(t, "کیف زنانه", r.Category)
		assert.Equal(t, 1250000, r.Price)
	})

	t.Run("PersianDigitsInPrice", func(t *testing.T) {
		r, ok := parse.Message("نام محصول: ساعت\nقیمت: ۵۰۰۰۰۰")
		require.True(t, ok)
		assert.Equal(t, 500000, r.Price)
	})
}

func TestMessageHashtagFormat(t *testing.T) {
	const text = "کیف دستی رزگلد\nچرم طبیعی، بند طلایی\n#کیف #زنانه\n1,250,000 تومان"

	t.Run("FullExample", func(t *testing.T) {
		r, ok := parse.Message(text)
		require.True(t, ok)

		assert.Equal(t, parse.StrategyHashtag, r.Strategy)
		assert.Equal(t, "کیف دستی رزگلد", r.Name)
		assert.Equal(t, "کیف زنانه", r.Category)
		assert.Equal(t, 1250000, r.Price)
		assert.Equal(t, parse.CurrencyIRT, r.Currency)
		assert.Equal(t, "چرم طبیعی، بند طلایی", r.Description)
	})

	t.Run("HashtagLinesExcludedFromDescription", func(t *testing.T) {
		r, ok := parse.Message(text)
		require.True(t, ok)
		assert.NotContains(t, r.Description, "#")
	})

	t.Run("ZeroPriceLastLineFallsThrough", func(t *testing.T) {
		// Last line carries no price, so the hashtag strategy must
		// report no match instead of a zero-priced product.
		r, ok := parse.Message("کیف دستی\nچرم طبیعی\n#کیف\nارسال رایگان")
		if ok {
			assert.NotEqual(t, parse.StrategyHashtag, r.Strategy)
		}
	})
}

func TestMessageCompressedFormat(t *testing.T) {
	t.Run("FourSegments", func(t *testing.T) {
		r, ok := parse.Message("کیف دستی رزگلد | کیف زنانه | 1250000 | چرم طبیعی")
		require.True(t, ok)

		assert.Equal(t, parse.StrategyCompressed, r.Strategy)
		assert.Equal(t, "کیف دستی رزگلد", r.Name)
		assert.Equal(t, "کیف زنانه", r.Category)
		assert.Equal(t, 1250000, r.Price)
		assert.Equal(t, "چرم طبیعی", r.Description)
	})

	t.Run("ThreeSegmentsNoDescription", func(t *testing.T) {
		r, ok := parse.Message("ساعت | اکسسوری | 500000")
		require.True(t, ok)
		assert.Equal(t, parse.StrategyCompressed, r.Strategy)
		assert.Empty(t, r.Description)
	})

	t.Run("TooFewSegments", func(t *testing.T) {
		_, ok := parse.Message("ساعت | 500000")
		assert.False(t, ok)
	})
}

func TestMessagePriority(t *testing.T) {
	t.Run("KeywordBeatsHashtag", func(t *testing.T) {
		text := "نام محصول: کیف دستی\nچرم طبیعی\n#کیف\n1,250,000 تومان"
		r, ok := parse.Message(text)
		require.True(t, ok)
		assert.Equal(t, parse.StrategyKeyword, r.Strategy)
	})

	t.Run("HashtagBeatsCompressed", func(t *testing.T) {
		// Text satisfies both the hashtag and the compressed formats;
		// the hashtag strategy is declared earlier, so its fields win.
		text := "کیف دستی | رزگلد | لوکس\nچرم طبیعی\n#کیف #زنانه\n1,250,000 تومان"
		r, ok := parse.Message(text)
		require.True(t, ok)

		assert.Equal(t, parse.StrategyHashtag, r.Strategy)
		assert.Equal(t, "کیف دستی | رزگلد | لوکس", r.Name)
		assert.Equal(t, "کیف زنانه", r.Category)
	})
}

func TestMessageFreeform(t *testing.T) {
	t.Run("HeuristicExtraction", func(t *testing.T) {
		// Price sits mid-message, so the hashtag strategy (which reads
		// the last line only) passes and the heuristics take over.
		text := "هدفون بی سیم\n750,000 تومان\nکیفیت صدای عالی"
		r, ok := parse.Message(text)
		require.True(t, ok)

		assert.Equal(t, parse.StrategyFreeform, r.Strategy)
		assert.Equal(t, "هدفون بی سیم", r.Name)
		assert.Equal(t, 750000, r.Price)
		assert.Equal(t, "لوازم جانبی", r.Category)
		assert.Equal(t, parse.CurrencyIRT, r.Currency)
		assert.Equal(t, "کیفیت صدای عالی", r.Description)
	})

	t.Run("NoPriceRejected", func(t *testing.T) {
		_, ok := parse.Message("فقط یک پیام متنی بدون قیمت")
		assert.False(t, ok)
	})

	t.Run("EmptyRejected", func(t *testing.T) {
		_, ok := parse.Message("   \n  ")
		assert.False(t, ok)
	})
}
