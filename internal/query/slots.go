package query

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"ledgerchat/internal/dateutils"
	"ledgerchat/internal/models"
)

// categoryMention maps question phrasing onto a ledger category. The table
// is ordered; the first matching keyword wins.
type categoryMention struct {
	keywords []string
	category string
}

var categoryMentions = []categoryMention{
	{[]string{"food", "dining", "restaurant", "swiggy", "zomato", "eating"}, models.CategoryFoodDining},
	{[]string{"healthcare", "health", "medical", "pharmacy", "hospital", "doctor"}, models.CategoryHealthcare},
	{[]string{"transportation", "transport", "travel", "uber", "ola", "cab", "fuel", "petrol"}, models.CategoryTransportation},
	{[]string{"financial", "finance", "emi", "loan", "insurance", "investment"}, models.CategoryFinancialServices},
	{[]string{"transfer", "transfers", "refund", "upi"}, models.CategoryTransferRefund},
	{[]string{"utilities", "utility", "electricity", "recharge", "bills"}, models.CategoryUtilitiesBills},
	{[]string{"shopping", "amazon", "flipkart", "myntra", "purchases"}, models.CategoryShopping},
	{[]string{"entertainment", "netflix", "movies", "subscription", "streaming"}, models.CategoryEntertainment},
	{[]string{"personal care", "personal", "grooming", "salon"}, models.CategoryPersonalCare},
	{[]string{"education", "course", "tuition", "school fees"}, models.CategoryEducation},
	{[]string{"miscellaneous", "misc", "other"}, models.CategoryMiscellaneous},
}

// extractCategory returns the first category whose keyword appears in the
// lowercased question, or "".
func extractCategory(q string) string {
	for _, m := range categoryMentions {
		for _, kw := range m.keywords {
			if strings.Contains(q, kw) {
				return m.category
			}
		}
	}
	return ""
}

var yearPattern = regexp.MustCompile(`\b(20\d{2})\b`)

// extractDate pulls a month name and/or a four-digit year out of the
// question. A bare month applies across all years of the ledger.
func extractDate(q string) DateFilter {
	var df DateFilter
	for _, tok := range dateutils.MonthTokens {
		if containsWord(q, tok.Name) {
			df.Month = tok.Number
			df.MonthName = dateutils.MonthName(tok.Number)
			break
		}
	}
	if m := yearPattern.FindStringSubmatch(q); m != nil {
		df.Year = m[1]
	}
	return df
}

// containsWord reports whether w appears in s on word boundaries, so that
// "may" does not match inside "payment".
func containsWord(s, w string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], w)
		if i < 0 {
			return false
		}
		i += idx
		before := i == 0 || !isWordChar(s[i-1])
		afterIdx := i + len(w)
		after := afterIdx >= len(s) || !isWordChar(s[afterIdx])
		if before && after {
			return true
		}
		idx = i + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

var (
	rangePattern = regexp.MustCompile(`between\s+(?:rs\.?\s*|₹\s*)?([\d,]+(?:\.\d+)?)\s+and\s+(?:rs\.?\s*|₹\s*)?([\d,]+(?:\.\d+)?)`)
	abovePattern = regexp.MustCompile(`(?:above|over|more than|greater than|exceeding)\s+(?:rs\.?\s*|₹\s*)?([\d,]+(?:\.\d+)?)`)
	belowPattern = regexp.MustCompile(`(?:below|under|less than|smaller than)\s+(?:rs\.?\s*|₹\s*)?([\d,]+(?:\.\d+)?)`)
	exactPattern = regexp.MustCompile(`(?:exactly|equal to|of exactly)\s+(?:rs\.?\s*|₹\s*)?([\d,]+(?:\.\d+)?)`)
)

// extractAmount recognizes above/below/between/exact amount conditions.
// Grouping commas in figures are ignored.
func extractAmount(q string) *AmountFilter {
	if m := rangePattern.FindStringSubmatch(q); m != nil {
		lo, err1 := parseFigure(m[1])
		hi, err2 := parseFigure(m[2])
		if err1 == nil && err2 == nil {
			if lo.GreaterThan(hi) {
				lo, hi = hi, lo
			}
			return &AmountFilter{Mode: AmountRange, Min: lo, Max: hi}
		}
	}
	if m := abovePattern.FindStringSubmatch(q); m != nil {
		if v, err := parseFigure(m[1]); err == nil {
			return &AmountFilter{Mode: AmountAbove, Min: v}
		}
	}
	if m := belowPattern.FindStringSubmatch(q); m != nil {
		if v, err := parseFigure(m[1]); err == nil {
			return &AmountFilter{Mode: AmountBelow, Max: v}
		}
	}
	if m := exactPattern.FindStringSubmatch(q); m != nil {
		if v, err := parseFigure(m[1]); err == nil {
			return &AmountFilter{Mode: AmountExact, Min: v, Max: v}
		}
	}
	return nil
}

func parseFigure(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
}

var (
	quotedPattern = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)
	searchPhrases = regexp.MustCompile(`(?:payments? to|transactions? (?:from|with)|containing|related to)\s+([a-z0-9][a-z0-9 ]*?)(?:\s+(?:in|during|for|above|below|between|over|under)\b|[?.!,]|$)`)
	searchVerbs   = regexp.MustCompile(`(?:find|search(?: for)?|look up)\s+([a-z0-9][a-z0-9 ]*?)(?:\s+(?:in|during|for|above|below|between|over|under)\b|[?.!,]|$)`)
)

// searchStopwords are filler words stripped from captured search phrases.
var searchStopwords = map[string]bool{
	"all": true, "my": true, "the": true, "transactions": true,
	"transaction": true, "payments": true, "payment": true, "a": true,
	"any": true, "me": true,
}

// extractSearchTerms pulls quoted strings and common search phrasings out
// of the question. Terms are matched case-insensitively as substrings of
// narrations.
func extractSearchTerms(q string) []string {
	var terms []string
	for _, m := range quotedPattern.FindAllStringSubmatch(q, -1) {
		term := m[1]
		if term == "" {
			term = m[2]
		}
		if term = strings.TrimSpace(term); term != "" {
			terms = append(terms, strings.ToLower(term))
		}
	}
	if len(terms) > 0 {
		return terms
	}
	for _, pat := range []*regexp.Regexp{searchPhrases, searchVerbs} {
		if m := pat.FindStringSubmatch(q); m != nil {
			if term := cleanSearchPhrase(m[1]); term != "" {
				return []string{term}
			}
		}
	}
	return nil
}

func cleanSearchPhrase(phrase string) string {
	var kept []string
	for _, w := range strings.Fields(phrase) {
		if !searchStopwords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
