// Package models provides the data structures used throughout the application.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction direction markers as seen by the classification service.
const (
	DirectionDebit  = "debit"
	DirectionCredit = "credit"
)

// Transaction represents a single bank-statement row. Dates use the ISO
// YYYY-MM-DD layout so lexical order matches chronological order. At most
// one of Withdrawal/Deposit is non-zero; an absent amount is decimal.Zero.
type Transaction struct {
	Date       string          `json:"Date" csv:"Date"`
	Narration  string          `json:"Narration" csv:"Narration"`
	Withdrawal decimal.Decimal `json:"Withdrawal(Dr)" csv:"Withdrawal(Dr)"`
	Deposit    decimal.Decimal `json:"Deposit(Cr)" csv:"Deposit(Cr)"`
	Balance    decimal.Decimal `json:"Balance" csv:"Balance"`
	Category   string          `json:"Category,omitempty" csv:"Category"`
}

// IsDebit returns true if the transaction withdrew money from the account.
func (t *Transaction) IsDebit() bool {
	return t.Withdrawal.IsPositive()
}

// IsCredit returns true if the transaction deposited money into the account.
func (t *Transaction) IsCredit() bool {
	return t.Deposit.IsPositive()
}

// Amount returns the single non-zero amount of the transaction as a
// non-negative magnitude. Direction is carried separately, see Direction.
func (t *Transaction) Amount() decimal.Decimal {
	if t.IsDebit() {
		return t.Withdrawal
	}
	return t.Deposit
}

// Direction returns DirectionDebit or DirectionCredit. A zero-amount row is
// reported as a credit, matching how the upstream extractor labels it.
func (t *Transaction) Direction() string {
	if t.IsDebit() {
		return DirectionDebit
	}
	return DirectionCredit
}

// YearMonth returns the YYYY-MM bucket key of the transaction date, or an
// empty string when the date is too short to carry one.
func (t *Transaction) YearMonth() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}

// ParseAmount converts a raw amount string to a decimal, tolerating currency
// markers and grouping separators. Unparsable input yields zero: upstream
// extractors emit blanks for absent amounts.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, "Rs.", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	dec, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return dec
}
