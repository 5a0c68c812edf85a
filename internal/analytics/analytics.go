// Package analytics derives the precomputed aggregate snapshot from a
// categorized ledger.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"ledgerchat/internal/models"
)

// Totals holds overall ledger statistics.
type Totals struct {
	TransactionCount int             `json:"total_transactions" yaml:"total_transactions"`
	TotalSpent       decimal.Decimal `json:"total_spent" yaml:"total_spent"`
	TotalReceived    decimal.Decimal `json:"total_received" yaml:"total_received"`
	CurrentBalance   decimal.Decimal `json:"current_balance" yaml:"current_balance"`
	StartDate        string          `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate          string          `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

// CategoryStats aggregates one category. Means are taken over every row of
// the category, counting absent amounts as zero.
type CategoryStats struct {
	TotalSpent       decimal.Decimal `json:"total_spent" yaml:"total_spent"`
	TotalReceived    decimal.Decimal `json:"total_received" yaml:"total_received"`
	AvgSpent         decimal.Decimal `json:"avg_spent" yaml:"avg_spent"`
	AvgReceived      decimal.Decimal `json:"avg_received" yaml:"avg_received"`
	TransactionCount int             `json:"transaction_count" yaml:"transaction_count"`
	DebitCount       int             `json:"spending_transactions" yaml:"spending_transactions"`
	CreditCount      int             `json:"credit_transactions" yaml:"credit_transactions"`
	MaxWithdrawal    decimal.Decimal `json:"max_transaction" yaml:"max_transaction"`
	MinWithdrawal    decimal.Decimal `json:"min_transaction" yaml:"min_transaction"`
}

// MonthStats aggregates one YYYY-MM bucket.
type MonthStats struct {
	TotalSpent       decimal.Decimal `json:"total_spent" yaml:"total_spent"`
	TotalReceived    decimal.Decimal `json:"total_received" yaml:"total_received"`
	AvgSpent         decimal.Decimal `json:"avg_spent" yaml:"avg_spent"`
	NetFlow          decimal.Decimal `json:"net_flow" yaml:"net_flow"`
	TransactionCount int             `json:"transaction_count" yaml:"transaction_count"`
}

// TopEntry is one row of a top-N list.
type TopEntry struct {
	Date      string          `json:"date" yaml:"date"`
	Narration string          `json:"narration" yaml:"narration"`
	Amount    decimal.Decimal `json:"amount" yaml:"amount"`
	Category  string          `json:"category" yaml:"category"`
}

// Snapshot is the precomputed, unfiltered analytics structure. It is
// rebuilt in full on every ledger (re)load and never partially mutated.
type Snapshot struct {
	Totals      Totals                   `json:"summary" yaml:"summary"`
	Categories  map[string]CategoryStats `json:"categories" yaml:"categories"`
	Monthly     map[string]MonthStats    `json:"monthly" yaml:"monthly"`
	MonthOrder  []string                 `json:"month_order" yaml:"month_order"`
	TopExpenses []TopEntry               `json:"top_expenses" yaml:"top_expenses"`
	TopCredits  []TopEntry               `json:"top_credits" yaml:"top_credits"`
}

const topN = 10

// Compute builds the snapshot in one pass per grouping dimension. An empty
// ledger yields zero totals, empty maps, and empty top lists, never an
// error. The ledger must already be sorted by date ascending.
func Compute(txs []models.Transaction) *Snapshot {
	snap := &Snapshot{
		Categories: make(map[string]CategoryStats),
		Monthly:    make(map[string]MonthStats),
	}

	if len(txs) == 0 {
		snap.MonthOrder = []string{}
		snap.TopExpenses = []TopEntry{}
		snap.TopCredits = []TopEntry{}
		return snap
	}

	snap.Totals.TransactionCount = len(txs)
	snap.Totals.StartDate = txs[0].Date
	snap.Totals.EndDate = txs[len(txs)-1].Date
	// Current balance is the balance field of the chronologically last
	// record, not a computed sum.
	snap.Totals.CurrentBalance = txs[len(txs)-1].Balance

	type catAccum struct {
		stats    CategoryStats
		minIsSet bool
	}
	catAccums := make(map[string]*catAccum)

	for i := range txs {
		tx := &txs[i]
		snap.Totals.TotalSpent = snap.Totals.TotalSpent.Add(tx.Withdrawal)
		snap.Totals.TotalReceived = snap.Totals.TotalReceived.Add(tx.Deposit)

		category := models.CoerceCategory(tx.Category)
		acc, ok := catAccums[category]
		if !ok {
			acc = &catAccum{}
			catAccums[category] = acc
		}
		acc.stats.TotalSpent = acc.stats.TotalSpent.Add(tx.Withdrawal)
		acc.stats.TotalReceived = acc.stats.TotalReceived.Add(tx.Deposit)
		acc.stats.TransactionCount++
		if tx.IsDebit() {
			acc.stats.DebitCount++
			if tx.Withdrawal.GreaterThan(acc.stats.MaxWithdrawal) {
				acc.stats.MaxWithdrawal = tx.Withdrawal
			}
			if !acc.minIsSet || tx.Withdrawal.LessThan(acc.stats.MinWithdrawal) {
				acc.stats.MinWithdrawal = tx.Withdrawal
				acc.minIsSet = true
			}
		}
		if tx.IsCredit() {
			acc.stats.CreditCount++
		}

		month := tx.YearMonth()
		stats, seen := snap.Monthly[month]
		if !seen {
			snap.MonthOrder = append(snap.MonthOrder, month)
		}
		stats.TotalSpent = stats.TotalSpent.Add(tx.Withdrawal)
		stats.TotalReceived = stats.TotalReceived.Add(tx.Deposit)
		stats.TransactionCount++
		snap.Monthly[month] = stats
	}

	for name, acc := range catAccums {
		count := decimal.NewFromInt(int64(acc.stats.TransactionCount))
		acc.stats.AvgSpent = acc.stats.TotalSpent.DivRound(count, 2)
		acc.stats.AvgReceived = acc.stats.TotalReceived.DivRound(count, 2)
		snap.Categories[name] = acc.stats
	}
	for month, stats := range snap.Monthly {
		count := decimal.NewFromInt(int64(stats.TransactionCount))
		stats.AvgSpent = stats.TotalSpent.DivRound(count, 2)
		stats.NetFlow = stats.TotalReceived.Sub(stats.TotalSpent)
		snap.Monthly[month] = stats
	}

	snap.TopExpenses = topEntries(txs, func(t *models.Transaction) decimal.Decimal { return t.Withdrawal })
	snap.TopCredits = topEntries(txs, func(t *models.Transaction) decimal.Decimal { return t.Deposit })

	return snap
}

// topEntries returns the topN largest positive amounts, breaking ties by
// original ledger order.
func topEntries(txs []models.Transaction, amount func(*models.Transaction) decimal.Decimal) []TopEntry {
	entries := make([]TopEntry, 0, len(txs))
	for i := range txs {
		amt := amount(&txs[i])
		if !amt.IsPositive() {
			continue
		}
		entries = append(entries, TopEntry{
			Date:      txs[i].Date,
			Narration: txs[i].Narration,
			Amount:    amt,
			Category:  txs[i].Category,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount.GreaterThan(entries[j].Amount)
	})

	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}
