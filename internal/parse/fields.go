package parse

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultCategory labels products no keyword or hashtag matched.
	DefaultCategory = "عمومی"

	// DefaultStock is assumed when a message does not state a quantity.
	DefaultStock = 10

	maxNameLen   = 200
	maxDescLines = 5
)

// Lines containing these never become the product name.
var nameStoplist = []string{"فروش", "قیمت", "تومان", "💰", "📱"}

type categoryKeyword struct {
	re    *regexp.Regexp
	label string
}

// Evaluated in order against the lower-cased text; first match wins.
var categoryKeywords = []categoryKeyword{
	{regexp.MustCompile(`گوشی|موبایل|phone`), "موبایل و تبلت"},
	{regexp.MustCompile(`لپ.?تاپ|laptop|نوت.?بوک`), "لپ تاپ و کامپیوتر"},
	{regexp.MustCompile(`هدفون|ایرپاد|headphone`), "لوازم جانبی"},
	{regexp.MustCompile(`لباس|پیراهن|شلوار|تی.?شرت`), "پوشاک"},
	{regexp.MustCompile(`کفش|کتونی|صندل`), "کفش"},
	{regexp.MustCompile(`کیف|کوله|bag`), "کیف و کوله"},
	{regexp.MustCompile(`کتاب|book`), "کتاب و مجله"},
	{regexp.MustCompile(`آشپزخانه|kitchen|قابلمه`), "خانه و آشپزخانه"},
	{regexp.MustCompile(`زیبایی|آرایش|cosmetic`), "زیبایی و سلامت"},
	{regexp.MustCompile(`ورزش|sport|fitness`), "ورزش و تناسب اندام"},
	{regexp.MustCompile(`کودک|baby|بچگانه`), "کودک و نوزاد"},
	{regexp.MustCompile(`ابزار|tool|آچار`), "ابزار و تجهیزات"},
	{regexp.MustCompile(`خودرو|car|ماشین`), "خودرو و وسایل نقلیه"},
}

var hashtagCategories = map[string]string{
	"گوشی":  "موبایل و تبلت",
	"لپتاپ": "لپ تاپ و کامپیوتر",
	"لباس":  "پوشاک",
	"کفش":   "کفش",
	"کتاب":  "کتاب و مجله",
}

var hashtagRe = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

var stockPatterns = []*regexp.Regexp{
	regexp.MustCompile(`موجود[:\s]*(\d+)`),
	regexp.MustCompile(`تعداد[:\s]*(\d+)`),
	regexp.MustCompile(`(?i)stock[:\s]*(\d+)`),
}

// Price-only, contact, address and bare phone-number lines never
// belong in a description.
var descSkipRe = regexp.MustCompile(`^\d+[,،]*\d*\s*تومان?$|^قیمت|^تماس|^آدرس|^\d{11}`)

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func truncateRunes(s string, n int) string {
	rs := []rune(s)
	if len(rs) > n {
		return string(rs[:n])
	}
	return s
}

// Name selects the first line that carries none of the stoplist words,
// falling back to the first non-empty line. Empty input yields "".
func Name(text string) string {
	lines := splitLines(text)
	if len(lines) == 0 {
		return ""
	}
	for _, line := range lines {
		lower := strings.ToLower(line)
		skip := false
		for _, w := range nameStoplist {
			if strings.Contains(lower, w) {
				skip = true
				break
			}
		}
		if !skip {
			return truncateRunes(line, maxNameLen)
		}
	}
	return truncateRunes(lines[0], maxNameLen)
}

// Category scans the ordered keyword groups against the lower-cased
// text, then the hashtag lookup, and finally falls back to the generic
// category. Exactly one category is ever assigned.
func Category(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range categoryKeywords {
		if kw.re.MatchString(lower) {
			return kw.label
		}
	}
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		if label, ok := hashtagCategories[m[1]]; ok {
			return label
		}
	}
	return DefaultCategory
}

// Hashtags returns the hashtag tokens in order of appearance.
func Hashtags(text string) []string {
	var tags []string
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		tags = append(tags, m[1])
	}
	return tags
}

// Stock extracts a stated quantity, defaulting to DefaultStock.
func Stock(text string) int {
	for _, re := range stockPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return v
	}
	return DefaultStock
}

// Description joins the lines after the first one, dropping price-only
// and contact lines, keeping at most the first five that survive.
func Description(text string) string {
	lines := splitLines(text)
	if len(lines) < 2 {
		return ""
	}
	var kept []string
	for _, line := range lines[1:] {
		if descSkipRe.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	if len(kept) > maxDescLines {
		kept = kept[:maxDescLines]
	}
	return strings.Join(kept, "\n")
}
