package parse_test

import (
	"strings"
	"testing"

	"github.com/bazaarline/importer/internal/parse"
	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	t.Run("FirstMeaningfulLine", func(t *testing.T) {
		text := "فروش ویژه\nکیف دستی رزگلد\nقیمت: 500,000 تومان"
		assert.Equal(t, "کیف دستی رزگلد", parse.Name(text))
	})

	t.Run("FallbackToFirstLine", func(t *testing.T) {
		text := "قیمت عالی\n500,000 تومان"
		assert.Equal(t, "قیمت عالی", parse.Name(text))
	})

	t.Run("SkipsEmojiLines", func(t *testing.T) {
		text := "💰 ارزانترین قیمت\nهدفون بی سیم"
		assert.Equal(t, "هدفون بی سیم", parse.Name(text))
	})

	t.Run("TruncatesLongNames", func(t *testing.T) {
		long := strings.Repeat("ن", 300)
		assert.Len(t, []rune(parse.Name(long)), 200)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		assert.Equal(t, "", parse.Name("  \n\t\n"))
	})
}

func TestCategory(t *testing.T) {
	t.Run("KeywordMatch", func(t *testing.T) {
		assert.Equal(t, "موبایل و تبلت", parse.Category("گوشی سامسونگ گلکسی"))
	})

	t.Run("LatinKeywordCaseInsensitive", func(t *testing.T) {
		assert.Equal(t, "لپ تاپ و کامپیوتر", parse.Category("Laptop ASUS"))
	})

	t.Run("FirstKeywordGroupWins", func(t *testing.T) {
		// Both phone and bag terms present; the phone group is
		// evaluated earlier.
		assert.Equal(t, "موبایل و تبلت", parse.Category("کیف مخصوص گوشی"))
	})

	t.Run("HashtagLookup", func(t *testing.T) {
		assert.Equal(t, "کتاب و مجله", parse.Category("رمان جدید #کتاب"))
	})

	t.Run("UnknownHashtagIgnored", func(t *testing.T) {
		assert.Equal(t, parse.DefaultCategory, parse.Category("چیز #ناشناخته"))
	})

	t.Run("Default", func(t *testing.T) {
		assert.Equal(t, "عمومی", parse.Category("یک محصول بدون دسته"))
	})
}

func TestHashtags(t *testing.T) {
	t.Run("PersianTags", func(t *testing.T) {
		tags := parse.Hashtags("کیف دستی\n#کیف #زنانه")
		assert.Equal(t, []string{"کیف", "زنانه"}, tags)
	})

	t.Run("NoTags", func(t *testing.T) {
		assert.Empty(t, parse.Hashtags("متن بدون هاشتگ"))
	})
}

func TestStock(t *testing.T) {
	t.Run("PersianAvailableLabel", func(t *testing.T) {
		assert.Equal(t, 3, parse.Stock("موجود: 3"))
	})

	t.Run("QuantityLabel", func(t *testing.T) {
		assert.Equal(t, 25, parse.Stock("تعداد: 25 عدد"))
	})

	t.Run("LatinStockLabel", func(t *testing.T) {
		assert.Equal(t, 7, parse.Stock("Stock: 7"))
	})

	t.Run("DefaultWhenUnspecified", func(t *testing.T) {
		assert.Equal(t, parse.DefaultStock, parse.Stock("کیف دستی رزگلد"))
	})
}

func TestDescription(t *testing.T) {
	t.Run("DropsPriceOnlyLines", func(t *testing.T) {
		text := "کیف دستی رزگلد\nچرم طبیعی\n500 تومان\nبند طلایی"
		assert.Equal(t, "چرم طبیعی\nبند طلایی", parse.Description(text))
	})

	t.Run("DropsContactAndAddressLines", func(t *testing.T) {
		text := "هدفون بی سیم\nکیفیت عالی\nتماس: 021\nآدرس: تهران\n09123456789"
		assert.Equal(t, "کیفیت عالی", parse.Description(text))
	})

	t.Run("KeepsAtMostFiveLines", func(t *testing.T) {
		text := "نام\nیک\nدو\nسه\nچهار\nپنج\nشش"
		assert.Equal(t, "یک\nدو\nسه\nچهار\nپنج", parse.Description(text))
	})

	t.Run("SingleLineInput", func(t *testing.T) {
		assert.Equal(t, "", parse.Description("فقط نام"))
	})
}
