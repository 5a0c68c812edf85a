package models_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"ledgerchat/internal/models"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"plain", "100.50", "100.5"},
		{"grouped", "1,23,456.78", "123456.78"},
		{"rupee sign", "₹500.00", "500"},
		{"rs prefix", "Rs.250", "250"},
		{"whitespace", "  42.00  ", "42"},
		{"empty", "", "0"},
		{"garbage", "n/a", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, models.ParseAmount(tt.raw).String())
		})
	}
}

func TestTransaction_DirectionAndAmount(t *testing.T) {
	debit := models.Transaction{Withdrawal: decimal.NewFromInt(100)}
	credit := models.Transaction{Deposit: decimal.NewFromInt(250)}
	zero := models.Transaction{}

	assert.True(t, debit.IsDebit())
	assert.False(t, debit.IsCredit())
	assert.Equal(t, models.DirectionDebit, debit.Direction())
	assert.Equal(t, "100", debit.Amount().String())

	assert.True(t, credit.IsCredit())
	assert.Equal(t, models.DirectionCredit, credit.Direction())
	assert.Equal(t, "250", credit.Amount().String())

	assert.Equal(t, models.DirectionCredit, zero.Direction())
	assert.True(t, zero.Amount().IsZero())
}

func TestTransaction_YearMonth(t *testing.T) {
	tx := models.Transaction{Date: "2024-03-15"}
	assert.Equal(t, "2024-03", tx.YearMonth())

	short := models.Transaction{Date: "2024"}
	assert.Equal(t, "", short.YearMonth())
}

func TestCategoryTaxonomy(t *testing.T) {
	assert.Len(t, models.AllCategories, 11)

	for _, name := range models.AllCategories {
		assert.True(t, models.IsValidCategory(name), name)
		assert.Equal(t, name, models.CoerceCategory(name))
	}

	assert.False(t, models.IsValidCategory("Groceries"))
	assert.False(t, models.IsValidCategory("food & dining"), "matching is case sensitive")
	assert.Equal(t, models.CategoryMiscellaneous, models.CoerceCategory("Groceries"))
	assert.Equal(t, models.CategoryMiscellaneous, models.CoerceCategory(""))
}

func TestNewTxRefs(t *testing.T) {
	txs := []models.Transaction{
		{Date: "2024-01-01", Narration: "UPI-SWIGGY", Withdrawal: decimal.NewFromInt(250)},
		{Date: "2024-01-02", Narration: "SALARY", Deposit: decimal.NewFromInt(50000)},
	}

	refs := models.NewTxRefs(txs)

	assert.Equal(t, []models.TxRef{
		{ID: 0, Narration: "UPI-SWIGGY", Amount: decimal.NewFromInt(250), Type: models.DirectionDebit},
		{ID: 1, Narration: "SALARY", Amount: decimal.NewFromInt(50000), Type: models.DirectionCredit},
	}, refs)
}
