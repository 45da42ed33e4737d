package parse

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	CurrencyIRT = "IRT"
	CurrencyUSD = "USD"
)

// Ordered by priority. The first matching pattern wins; downstream
// behavior depends on this exact order, do not reorder or replace
// with a longest-match heuristic.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,3}(?:[,،]\d{3})*)\s*تومان`),
	regexp.MustCompile(`(\d{1,3}(?:[,،]\d{3})*)\s*ت(?:\s|$)`),
	regexp.MustCompile(`قیمت[:\s]*(\d{1,3}(?:[,،]\d{3})*)`),
	regexp.MustCompile(`💰[:\s]*(\d{1,3}(?:[,،]\d{3})*)`),
	regexp.MustCompile(`قیمت[:\s]*(\d{1,3}(?:[,،]\d{3})*)\s*تومان`),
	regexp.MustCompile(`(\d{1,3}(?:[,،]\d{3})*)\s*هزار\s*تومان`),
}

var (
	amountCurrencyRe = regexp.MustCompile(`([\d\s,.]+)\s*(تومان|ت|ریال|\$)?`)
	amountStripRe    = regexp.MustCompile(`[,\s.]`)
)

const thousandWord = "هزار"

// Amount extracts a Toman amount from free-form text by trying the
// amount patterns in priority order. A pattern whose digits fail to
// parse is skipped, not fatal. Returns 0 when no pattern matches,
// meaning "not found".
func Amount(text string) int {
	text = Normalize(text)
	for _, re := range amountPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		digits := strings.NewReplacer(",", "", "،", "").Replace(m[1])
		v, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		if strings.Contains(m[0], thousandWord) {
			v *= 1000
		}
		return v
	}
	return 0
}

// AmountCurrency extracts an amount and its currency unit the way the
// labeled-format parsers do: the last numeric run in the text wins.
// Rial amounts are divided by 10 and reported as Toman; dollar-tagged
// amounts are USD; everything else defaults to Toman. Returns (0, IRT)
// when nothing parseable is found.
func AmountCurrency(text string) (int, string) {
	text = Normalize(text)

	ms := amountCurrencyRe.FindAllStringSubmatch(text, -1)
	if len(ms) == 0 {
		return 0, CurrencyIRT
	}

	last := ms[len(ms)-1]
	digits := amountStripRe.ReplaceAllString(last[1], "")
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, CurrencyIRT
	}

	switch last[2] {
	case "ریال":
		return v / 10, CurrencyIRT
	case "$":
		return v, CurrencyUSD
	default:
		return v, CurrencyIRT
	}
}
