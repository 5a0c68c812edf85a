package models

import "github.com/shopspring/decimal"

// TxRef is the compact view of a transaction handed to the classification
// service: a dense zero-based id, the narration, the amount as a
// non-negative magnitude, and the debit/credit direction.
type TxRef struct {
	ID        int             `json:"id"`
	Narration string          `json:"narration"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
}

// NewTxRefs builds the classification view of a ledger. Ids are positional,
// so the same ledger always produces the same ids.
func NewTxRefs(txs []Transaction) []TxRef {
	refs := make([]TxRef, len(txs))
	for i := range txs {
		refs[i] = TxRef{
			ID:        i,
			Narration: txs[i].Narration,
			Amount:    txs[i].Amount(),
			Type:      txs[i].Direction(),
		}
	}
	return refs
}

// CategoryAssignment is one entry of a classification response.
type CategoryAssignment struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
}
