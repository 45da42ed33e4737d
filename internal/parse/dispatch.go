package parse

import (
	"regexp"
	"strings"
)

// Strategy identifies which message format produced a parse result.
type Strategy int

const (
	StrategyKeyword Strategy = iota + 1
	StrategyHashtag
	StrategyCompressed
	StrategyFreeform
)

func (s Strategy) String() string {
	switch s {
	case StrategyKeyword:
		return "keyword"
	case StrategyHashtag:
		return "hashtag"
	case StrategyCompressed:
		return "compressed"
	case StrategyFreeform:
		return "freeform"
	default:
		return "unknown"
	}
}

// Result is the structured outcome of parsing one message. Category
// and Description are empty when the matched format did not carry
// them; Price 0 means no price was found.
type Result struct {
	Strategy    Strategy
	Name        string
	Category    string
	Description string
	Price       int
	Currency    string
}

var (
	keywordNameRe = regexp.MustCompile(`نام\s*محصول\s*:\s*(.+)`)
	// Optional ZWNJ: the documented label is written دسته‌بندی.
	keywordCategoryRe = regexp.MustCompile(`دسته[\s\x{200c}]*بندی\s*:\s*(.+)`)
	keywordDescRe     = regexp.MustCompile(`(?s)توضیحات\s*:\s*(.+)`)
)

// Message parses a product message by trying the format strategies in
// a fixed priority order: keyword-labeled, hashtag-delimited,
// pipe-compressed, then the free-form heuristics. The first strategy
// to return a structured result wins. This is a priority chain, not a
// best-fit selection. Reports false when no strategy matches.
func Message(text string) (Result, bool) {
	if strings.TrimSpace(text) == "" {
		return Result{}, false
	}

	text = Normalize(text)

	strategies := []func(string) (Result, bool){
		parseKeywordFormat,
		parseHashtagFormat,
		parseCompressedFormat,
		parseFreeform,
	}
	for _, strategy := range strategies {
		if r, ok := strategy(text); ok {
			return r, true
		}
	}
	return Result{}, false
}

// parseKeywordFormat handles explicit Persian field labels. The name
// label is required; category and description are optional. The price
// is taken from the whole text.
func parseKeywordFormat(text string) (Result, bool) {
	nameM := keywordNameRe.FindStringSubmatch(text)
	if nameM == nil {
		return Result{}, false
	}

	r := Result{
		Strategy: StrategyKeyword,
		Name:     strings.TrimSpace(nameM[1]),
	}
	if m := keywordCategoryRe.FindStringSubmatch(text); m != nil {
		r.Category = strings.TrimSpace(m[1])
	}
	if m := keywordDescRe.FindStringSubmatch(text); m != nil {
		r.Description = strings.TrimSpace(m[1])
	}
	r.Price, r.Currency = AmountCurrency(text)
	return r, true
}

// parseHashtagFormat handles name / description / #tags / price
// messages: at least 3 lines, first line the name, hashtags anywhere
// form the category, and the last line must yield a nonzero price or
// the whole strategy reports no match.
func parseHashtagFormat(text string) (Result, bool) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 3 {
		return Result{}, false
	}

	price, currency := AmountCurrency(lines[len(lines)-1])
	if price == 0 {
		return Result{}, false
	}

	r := Result{
		Strategy: StrategyHashtag,
		Name:     strings.TrimSpace(lines[0]),
		Category: strings.Join(Hashtags(text), " "),
		Price:    price,
		Currency: currency,
	}

	var desc []string
	for _, line := range lines[1 : len(lines)-1] {
		if hashtagRe.MatchString(line) {
			continue
		}
		desc = append(desc, strings.TrimSpace(line))
	}
	r.Description = strings.Join(desc, " ")
	return r, true
}

// parseCompressedFormat handles name | category | price | description.
func parseCompressedFormat(text string) (Result, bool) {
	parts := strings.Split(text, "|")
	if len(parts) < 3 {
		return Result{}, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	r := Result{
		Strategy: StrategyCompressed,
		Name:     parts[0],
		Category: parts[1],
	}
	r.Price, r.Currency = AmountCurrency(parts[2])
	if len(parts) > 3 {
		r.Description = parts[3]
	}
	return r, true
}

// parseFreeform applies the field-extractor heuristics to messages
// with no recognizable structure. It only matches when the heuristics
// yield a usable name and a nonzero price, so garbage text still
// falls out of the dispatch chain.
func parseFreeform(text string) (Result, bool) {
	name := Name(text)
	price := Amount(text)
	if name == "" || price == 0 {
		return Result{}, false
	}

	return Result{
		Strategy:    StrategyFreeform,
		Name:        name,
		Category:    Category(text),
		Description: Description(text),
		Price:       price,
		Currency:    CurrencyIRT,
	}, true
}
