// Package categorizer assigns spending categories to bank transactions
// using two methods:
// 1. Batch classification through the Gemini model
// 2. Deterministic keyword rules, used as the fallback and fast path
package categorizer

import (
	"strings"

	"ledgerchat/internal/models"
	"ledgerchat/internal/store"
)

// keywordRule pairs a category with its keyword set. Rules are evaluated in
// slice order and the first match wins: narrations often match several
// categories, so the order is the tie-break and must not be reshuffled.
type keywordRule struct {
	category string
	keywords []string
}

var defaultKeywordRules = []keywordRule{
	{models.CategoryFoodDining, []string{
		"super", "restaurant", "food", "zomato", "swiggy", "cafe", "hotel",
		"mess", "canteen", "dhaba", "bakery", "pizza", "burger", "grocery",
		"mart", "store", "fresh", "fruits", "vegetables", "milk", "bread", "mingos",
	}},
	{models.CategoryHealthcare, []string{
		"chemist", "pharmacy", "medical", "hospital", "clinic", "health",
		"doctor", "medicine", "pharma", "apollo", "care", "diagnostics",
		"pathology", "lab", "dental", "eye", "skin",
	}},
	{models.CategoryTransportation, []string{
		"uber", "ola", "petrol", "fuel", "metro", "bus", "taxi", "auto",
		"rickshaw", "transport", "travel", "booking", "irctc", "railway",
		"airlines", "flight", "cab", "bike", "scooter",
	}},
	{models.CategoryFinancialServices, []string{
		"groww", "mutual", "fund", "bank", "loan", "insurance", "invest",
		"sip", "rd", "fd", "policy", "premium", "emi", "interest",
		"zerodha", "upstox", "icicidirect", "hdfc", "axis", "kotak",
	}},
	{models.CategoryTransferRefund, []string{
		"transfer", "refund", "neft", "imps", "rtgs", "cashback",
		"reversal", "credited", "debited",
	}},
	{models.CategoryUtilitiesBills, []string{
		"electricity", "water", "gas", "bill", "recharge", "mobile",
		"broadband", "internet", "wifi", "jio", "airtel", "vodafone",
		"bsnl", "rent", "maintenance",
	}},
	{models.CategoryShopping, []string{
		"amazon", "flipkart", "myntra", "ajio", "shop", "store", "mall",
		"online", "purchase", "buy", "order", "delivery", "ecommerce",
		"fashion", "clothing", "electronics", "mobile", "laptop",
	}},
	{models.CategoryEntertainment, []string{
		"movie", "netflix", "prime", "hotstar", "spotify", "youtube",
		"game", "gaming", "cinema", "theatre", "show", "concert",
		"music", "subscription", "entertainment",
	}},
	{models.CategoryPersonalCare, []string{
		"salon", "spa", "parlour", "beauty", "cosmetic", "skincare",
		"haircut", "facial", "massage", "grooming",
	}},
	{models.CategoryEducation, []string{
		"school", "college", "university", "course", "training",
		"education", "tuition", "coaching", "book", "study",
	}},
}

// Person-to-person transfer indicators. UPI markers plus name fragments
// that show up in person narrations on the target statements.
var defaultPersonIndicators = []string{
	"upi/", "/upi", "aditya", "kalpana", "pushpa", "nagamma", "fathima",
	"suhara", "clive", "allen", "savitha", "debnat", "mohan", "kumar",
}

// A person indicator is ignored when the narration also looks like a
// business with a person's name in it.
var defaultBusinessKeywords = []string{
	"super", "store", "shop", "mart", "services", "pvt", "ltd",
}

// RuleCategorizer is the deterministic narration-to-category classifier.
// It is pure, makes no external calls, and never fails.
type RuleCategorizer struct {
	rules            []keywordRule
	personIndicators []string
	businessKeywords []string
}

// NewRuleCategorizer returns a categorizer using the built-in tables.
func NewRuleCategorizer() *RuleCategorizer {
	return &RuleCategorizer{
		rules:            defaultKeywordRules,
		personIndicators: defaultPersonIndicators,
		businessKeywords: defaultBusinessKeywords,
	}
}

// NewRuleCategorizerFromRules returns a categorizer whose tables are
// overridden by the non-empty sections of a loaded rule set. Category names
// outside the taxonomy are coerced to Miscellaneous at load time so the
// categorizer can never emit an invalid label.
func NewRuleCategorizerFromRules(rules *store.RuleSet) *RuleCategorizer {
	c := NewRuleCategorizer()
	if rules == nil {
		return c
	}
	if len(rules.Categories) > 0 {
		loaded := make([]keywordRule, 0, len(rules.Categories))
		for _, r := range rules.Categories {
			loaded = append(loaded, keywordRule{
				category: models.CoerceCategory(r.Name),
				keywords: r.Keywords,
			})
		}
		c.rules = loaded
	}
	if len(rules.PersonIndicators) > 0 {
		c.personIndicators = rules.PersonIndicators
	}
	if len(rules.BusinessKeywords) > 0 {
		c.businessKeywords = rules.BusinessKeywords
	}
	return c
}

// Categorize maps a narration to a category. The evaluation order is part
// of the contract: person indicators first, then the keyword tables in
// priority order, then residual special cases, then Miscellaneous.
func (c *RuleCategorizer) Categorize(narration string) string {
	lower := strings.ToLower(narration)

	if c.matchesAny(lower, c.personIndicators) && !c.matchesAny(lower, c.businessKeywords) {
		return models.CategoryTransferRefund
	}

	for _, rule := range c.rules {
		if c.matchesAny(lower, rule.keywords) {
			return rule.category
		}
	}

	if strings.Contains(lower, "cashback") || strings.Contains(lower, "earned") {
		return models.CategoryTransferRefund
	}
	if strings.Contains(lower, "int.pd") || strings.Contains(lower, "interest") {
		return models.CategoryFinancialServices
	}
	if strings.Contains(lower, "adidas") || strings.Contains(lower, "nike") {
		return models.CategoryShopping
	}

	return models.CategoryMiscellaneous
}

func (c *RuleCategorizer) matchesAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
