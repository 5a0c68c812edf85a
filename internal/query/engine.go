package query

import (
	"strings"

	"github.com/sirupsen/logrus"

	"ledgerchat/internal/analytics"
	"ledgerchat/internal/config"
	"ledgerchat/internal/models"
)

// RefusalMessage is returned for questions outside the ledger domain.
const RefusalMessage = "Sorry, I can only help with questions about your transaction data. " +
	"Try asking about your spending, categories, balances, or transaction trends."

// rephraseMessage is returned when answering a question fails internally.
const rephraseMessage = "Sorry, I couldn't work that one out. Could you rephrase your question?"

// Engine answers questions about one loaded ledger. Unfiltered aggregate
// questions are served from the precomputed snapshot; any question that
// carries a filter is computed from the matching transaction subset.
type Engine struct {
	ledger   []models.Transaction
	snapshot *analytics.Snapshot
	log      *logrus.Logger
}

// NewEngine builds an engine over a sorted ledger, computing its snapshot
// up front.
func NewEngine(ledger []models.Transaction) *Engine {
	return &Engine{
		ledger:   ledger,
		snapshot: analytics.Compute(ledger),
		log:      config.Logger,
	}
}

// Snapshot exposes the precomputed analytics.
func (e *Engine) Snapshot() *analytics.Snapshot {
	return e.snapshot
}

// Ask answers one question. It never panics and never returns an empty
// string; a failure inside a handler degrades to a rephrase prompt.
func (e *Engine) Ask(question string) (answer string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.WithFields(logrus.Fields{
				"question": question,
				"panic":    r,
			}).Error("Query handler failed")
			answer = rephraseMessage
		}
	}()

	if strings.TrimSpace(question) == "" {
		return rephraseMessage
	}

	intent := ExtractIntent(question)
	if !intent.Relevant {
		return RefusalMessage
	}

	e.log.WithFields(logrus.Fields{
		"intent":   intent.Type,
		"category": intent.Category,
		"filtered": intent.HasFilters(),
	}).Debug("Dispatching question")

	return e.dispatch(&intent)
}

func (e *Engine) dispatch(in *Intent) string {
	switch in.Type {
	case IntentGreeting:
		return e.handleGreeting()
	case IntentHelp:
		return e.handleHelp()
	case IntentTrend:
		return e.handleTrend(in)
	case IntentComparison:
		return e.handleComparison(in)
	case IntentSearch:
		return e.handleSearch(in)
	case IntentThreshold:
		return e.handleThreshold(in)
	case IntentMinimum:
		return e.handleMinimum(in)
	case IntentPercentage:
		return e.handlePercentage(in)
	case IntentFrequency:
		return e.handleFrequency(in)
	case IntentAverage:
		return e.handleAverage(in)
	case IntentTotal:
		return e.handleTotal(in)
	case IntentCount:
		return e.handleCount(in)
	case IntentTop:
		return e.handleTop(in)
	case IntentBalance:
		return e.handleBalance()
	case IntentCategoryBreakdown:
		return e.handleCategoryBreakdown(in)
	default:
		return e.handleGeneral(in)
	}
}

// filtered returns the transactions matching every slot of the intent.
func (e *Engine) filtered(in *Intent) []models.Transaction {
	if !in.HasFilters() {
		return e.ledger
	}
	var out []models.Transaction
	for _, tx := range e.ledger {
		if matchesIntent(&tx, in) {
			out = append(out, tx)
		}
	}
	return out
}

func matchesIntent(tx *models.Transaction, in *Intent) bool {
	if in.Category != "" && models.CoerceCategory(tx.Category) != in.Category {
		return false
	}
	if in.Date.Year != "" && !strings.HasPrefix(tx.Date, in.Date.Year) {
		return false
	}
	if in.Date.Month != "" && monthOf(tx.Date) != in.Date.Month {
		return false
	}
	if in.Amount != nil && !matchesAmount(tx, in.Amount) {
		return false
	}
	if len(in.SearchTerms) > 0 {
		narration := strings.ToLower(tx.Narration)
		for _, term := range in.SearchTerms {
			if !strings.Contains(narration, term) {
				return false
			}
		}
	}
	return true
}

func monthOf(isoDate string) string {
	if len(isoDate) >= 7 {
		return isoDate[5:7]
	}
	return ""
}

func matchesAmount(tx *models.Transaction, f *AmountFilter) bool {
	amt := tx.Amount()
	switch f.Mode {
	case AmountAbove:
		return amt.GreaterThan(f.Min)
	case AmountBelow:
		return amt.LessThan(f.Max)
	case AmountRange:
		return amt.GreaterThanOrEqual(f.Min) && amt.LessThanOrEqual(f.Max)
	case AmountExact:
		return amt.Equal(f.Min)
	}
	return false
}

// scopeLabel names the filtered scope for response text.
func scopeLabel(in *Intent) string {
	var parts []string
	if in.Category != "" {
		parts = append(parts, in.Category)
	}
	if !in.Date.IsZero() {
		parts = append(parts, in.Date.Label())
	}
	if len(in.SearchTerms) > 0 {
		parts = append(parts, "'"+strings.Join(in.SearchTerms, "', '")+"'")
	}
	if len(parts) == 0 {
		return "the selected filters"
	}
	return strings.Join(parts, " in ")
}

func noMatches(in *Intent) string {
	return "No transactions found for " + scopeLabel(in) + "."
}
