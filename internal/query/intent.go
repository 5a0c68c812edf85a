// Package query answers natural-language questions about a categorized
// ledger using a closed intent vocabulary. No free-text generation takes
// place; every response is assembled from ledger data and fixed templates.
package query

import "github.com/shopspring/decimal"

// IntentType names one of the recognized question shapes.
type IntentType string

const (
	IntentGreeting          IntentType = "greeting"
	IntentHelp              IntentType = "help"
	IntentTrend             IntentType = "trend"
	IntentComparison        IntentType = "comparison"
	IntentSearch            IntentType = "search"
	IntentThreshold         IntentType = "threshold"
	IntentMinimum           IntentType = "minimum"
	IntentPercentage        IntentType = "percentage"
	IntentFrequency         IntentType = "frequency"
	IntentAverage           IntentType = "average"
	IntentTotal             IntentType = "total"
	IntentCount             IntentType = "count"
	IntentTop               IntentType = "top"
	IntentBalance           IntentType = "balance"
	IntentCategoryBreakdown IntentType = "category_breakdown"
	IntentGeneral           IntentType = "general"
)

// AmountFilterMode selects how an amount constraint is applied.
type AmountFilterMode string

const (
	AmountAbove AmountFilterMode = "above"
	AmountBelow AmountFilterMode = "below"
	AmountRange AmountFilterMode = "range"
	AmountExact AmountFilterMode = "exact"
)

// DateFilter restricts a query to a year, a month, or a month of a year.
type DateFilter struct {
	Year      string // "2024", empty when unset
	Month     string // "03", empty when unset
	MonthName string // "March", for rendering
}

// IsZero reports whether no date constraint was extracted.
func (d DateFilter) IsZero() bool {
	return d.Year == "" && d.Month == ""
}

// Label renders the filter for response text, e.g. "March 2024".
func (d DateFilter) Label() string {
	switch {
	case d.MonthName != "" && d.Year != "":
		return d.MonthName + " " + d.Year
	case d.MonthName != "":
		return d.MonthName
	case d.Year != "":
		return d.Year
	}
	return "the selected period"
}

// AmountFilter restricts a query to an amount condition. Above and Below
// are strict comparisons; Range is inclusive on both ends.
type AmountFilter struct {
	Mode AmountFilterMode
	Min  decimal.Decimal
	Max  decimal.Decimal
}

// Intent is the structured interpretation of one question.
type Intent struct {
	Type        IntentType
	Category    string // resolved category name, empty when none mentioned
	Date        DateFilter
	Amount      *AmountFilter
	SearchTerms []string
	Relevant    bool

	// q is the normalized question, kept for handler sub-branching such
	// as spending vs credits phrasing.
	q string
}

// HasFilters reports whether any slot narrows the ledger. Filtered
// questions are answered from the matching subset, never from the
// precomputed snapshot.
func (in *Intent) HasFilters() bool {
	return in.Category != "" || !in.Date.IsZero() || in.Amount != nil || len(in.SearchTerms) > 0
}
