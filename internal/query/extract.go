package query

import "strings"

// offTopicVetoes name subjects the engine refuses outright. The gate is
// otherwise permissive: anything not vetoed is attempted.
var offTopicVetoes = [][]string{
	{"weather", "temperature", "forecast", "rain", "sunny"},
	{"recipe", "cook", "ingredient", "bake"},
	{"movie", "film", "actor", "actress", "episode"},
	{"cricket", "football", "match score", "tournament", "ipl"},
	{"election", "politics", "minister", "government policy"},
	{"joke", "poem", "story", "song lyrics"},
}

// isRelevant applies the vetoes and accepts everything else. A veto wins
// even when the question also carries financial wording; anything not
// vetoed is attempted.
func isRelevant(q string) bool {
	for _, group := range offTopicVetoes {
		for _, word := range group {
			if containsWord(q, word) {
				return false
			}
		}
	}
	return true
}

// intentRule pairs trigger phrases with an intent. Rules are evaluated in
// order; the first hit decides the type, so the sequence is the tie-break
// between overlapping trigger sets and must not be reshuffled.
type intentRule struct {
	intent   IntentType
	triggers []string
}

var intentRules = []intentRule{
	{IntentGreeting, []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening", "namaste"}},
	{IntentHelp, []string{"help", "what can you do", "what can i ask", "how do i use"}},
	{IntentTrend, []string{"trend", "trends", "trending", "over time", "pattern", "increasing", "decreasing"}},
	{IntentComparison, []string{"compare", "comparison", " vs ", "versus", "difference between"}},
	{IntentSearch, []string{"find ", "search", "look up", "containing", "payments to", "payment to", "transactions from", "transactions with", "related to"}},
	{IntentThreshold, []string{"above", "over ", "more than", "greater than", "exceeding", "between"}},
	{IntentMinimum, []string{"smallest", "minimum", "lowest", "cheapest", "least expensive", "below", "under ", "less than"}},
	{IntentPercentage, []string{"percentage", "percent", "%", "share of", "proportion", "portion of"}},
	{IntentFrequency, []string{"how often", "how many times", "how frequently", "frequency"}},
	{IntentAverage, []string{"average", "avg ", "mean ", "typical", "per transaction"}},
	{IntentTotal, []string{"total", "how much did i spend", "how much have i spent", "did i receive", "have i received", "overall", "altogether", "sum of", "money received", "money spent", "income", "earned"}},
	{IntentCount, []string{"how many", "count of", "number of transactions"}},
	{IntentTop, []string{"top ", "biggest", "largest", "highest", "most expensive", "maximum"}},
	{IntentBalance, []string{"balance", "how much do i have", "how much money do i have", "current amount"}},
	{IntentCategoryBreakdown, []string{"breakdown", "break down", "by category", "across categories", "category wise", "category-wise", "distribution", "all categories", "each category"}},
}

// matchTrigger checks single-word triggers on word boundaries so that
// "hi" does not fire inside "this", while multi-word phrases match as
// substrings.
func matchTrigger(q, trigger string) bool {
	if strings.ContainsAny(trigger, " -%") {
		return strings.Contains(q, trigger)
	}
	return containsWord(q, trigger)
}

// ExtractIntent interprets one question. The question is lowercased and
// trimmed before any matching, so extraction is case-insensitive.
// Extraction never fails: an unrecognized question lands on the general
// intent with all slots empty.
func ExtractIntent(question string) Intent {
	q := strings.ToLower(strings.TrimSpace(question))

	in := Intent{Relevant: isRelevant(q), q: q}
	if !in.Relevant {
		return in
	}

	in.Category = extractCategory(q)
	in.Date = extractDate(q)
	in.Amount = extractAmount(q)

	for _, rule := range intentRules {
		for _, trigger := range rule.triggers {
			if matchTrigger(q, trigger) {
				in.Type = rule.intent
				break
			}
		}
		if in.Type != "" {
			break
		}
	}

	if in.Type == IntentSearch || len(quotedPattern.FindStringIndex(q)) > 0 {
		in.SearchTerms = extractSearchTerms(q)
		if len(in.SearchTerms) > 0 {
			in.Type = IntentSearch
		}
	}

	if in.Type == "" {
		switch {
		case in.Category != "":
			in.Type = IntentTotal
		case in.Amount != nil:
			in.Type = IntentThreshold
		default:
			in.Type = IntentGeneral
		}
	}

	return in
}

// wantsCredits reports whether the question asks about money coming in
// rather than going out.
func (in *Intent) wantsCredits() bool {
	for _, w := range []string{"credit", "credits", "credited", "deposit", "deposits", "received", "receive", "income", "earned"} {
		if containsWord(in.q, w) {
			return true
		}
	}
	return false
}

// mentionsMonths reports whether the question asks for a month-by-month
// view.
func (in *Intent) mentionsMonths() bool {
	return strings.Contains(in.q, "month") || strings.Contains(in.q, "monthly")
}
