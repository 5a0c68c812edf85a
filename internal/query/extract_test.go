package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerchat/internal/models"
	"ledgerchat/internal/query"
)

func TestExtractIntent_RelevanceGate(t *testing.T) {
	tests := []struct {
		name     string
		question string
		relevant bool
	}{
		{"weather", "What's the weather today?", false},
		{"recipe", "give me a recipe for pasta", false},
		{"cricket", "who won the cricket yesterday", false},
		{"joke", "tell me a joke", false},
		{"plain balance", "what's my balance", true},
		{"veto wins over financial wording", "how much did I spend on movie tickets", false},
		{"unknown but not vetoed", "what about last week", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := query.ExtractIntent(tt.question)
			assert.Equal(t, tt.relevant, in.Relevant)
		})
	}
}

func TestExtractIntent_Cascade(t *testing.T) {
	tests := []struct {
		question string
		expected query.IntentType
	}{
		{"hello", query.IntentGreeting},
		{"Hi there!", query.IntentGreeting},
		{"what can you do", query.IntentHelp},
		{"help", query.IntentHelp},
		{"what's my current balance?", query.IntentBalance},
		{"how much did I spend in total", query.IntentTotal},
		{"how much money did I receive", query.IntentTotal},
		{"how much did I spend on food", query.IntentTotal},
		{"show my spending by category", query.IntentCategoryBreakdown},
		{"what were my top expenses", query.IntentTop},
		{"what were my biggest deposits", query.IntentTop},
		{"how is my spending trending", query.IntentTrend},
		{"compare my spending between months", query.IntentComparison},
		{"how often do I order from swiggy", query.IntentFrequency},
		{"how many times did I eat out", query.IntentFrequency},
		{"how many transactions do I have", query.IntentCount},
		{"what's my average transaction", query.IntentAverage},
		{"show transactions above 5000", query.IntentThreshold},
		{"what was my smallest transaction", query.IntentMinimum},
		{"what percentage of my spending is food", query.IntentPercentage},
		{"find transactions containing \"uber\"", query.IntentSearch},
		{"give me a monthly summary of my spending", query.IntentGeneral},
		{"give me an overview of my account", query.IntentGeneral},
		// Fallbacks: a bare category slot reads as a total, a bare
		// amount slot as a threshold.
		{"netflix payments", query.IntentTotal},
		{"any payment of exactly 1,299", query.IntentThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			in := query.ExtractIntent(tt.question)
			require.True(t, in.Relevant)
			assert.Equal(t, tt.expected, in.Type)
		})
	}
}

func TestExtractIntent_CategorySlot(t *testing.T) {
	tests := []struct {
		question string
		category string
	}{
		{"how much did I spend on food", models.CategoryFoodDining},
		{"my healthcare expenses", models.CategoryHealthcare},
		{"spending on travel", models.CategoryTransportation},
		{"uber costs this year", models.CategoryTransportation},
		{"what did shopping cost me", models.CategoryShopping},
		{"netflix payments", models.CategoryEntertainment},
		{"education spending", models.CategoryEducation},
		{"what's my balance", ""},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			in := query.ExtractIntent(tt.question)
			assert.Equal(t, tt.category, in.Category)
		})
	}
}

func TestExtractIntent_DateSlot(t *testing.T) {
	t.Run("month and year", func(t *testing.T) {
		in := query.ExtractIntent("how much did I spend in March 2024")
		assert.Equal(t, "2024", in.Date.Year)
		assert.Equal(t, "03", in.Date.Month)
		assert.Equal(t, "March", in.Date.MonthName)
		assert.Equal(t, "March 2024", in.Date.Label())
	})

	t.Run("bare year", func(t *testing.T) {
		in := query.ExtractIntent("total spending in 2023")
		assert.Equal(t, "2023", in.Date.Year)
		assert.Empty(t, in.Date.Month)
	})

	t.Run("bare month", func(t *testing.T) {
		in := query.ExtractIntent("how much did I spend in january")
		assert.Equal(t, "01", in.Date.Month)
		assert.Empty(t, in.Date.Year)
	})

	t.Run("earliest named month wins deterministically", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			in := query.ExtractIntent("compare march and april 2024")
			require.Equal(t, "03", in.Date.Month)
			require.Equal(t, "March", in.Date.MonthName)
		}
	})

	t.Run("may needs a word boundary", func(t *testing.T) {
		in := query.ExtractIntent("show all payments above 100")
		assert.True(t, in.Date.IsZero(), "the word 'payments' must not match the month 'may'")
	})

	t.Run("no date", func(t *testing.T) {
		in := query.ExtractIntent("what's my balance")
		assert.True(t, in.Date.IsZero())
		assert.Equal(t, "the selected period", in.Date.Label())
	})
}

func TestExtractIntent_AmountSlot(t *testing.T) {
	t.Run("above", func(t *testing.T) {
		in := query.ExtractIntent("show transactions above 5,000")
		require.NotNil(t, in.Amount)
		assert.Equal(t, query.AmountAbove, in.Amount.Mode)
		assert.Equal(t, "5000", in.Amount.Min.String())
	})

	t.Run("below", func(t *testing.T) {
		in := query.ExtractIntent("transactions under ₹250.50")
		require.NotNil(t, in.Amount)
		assert.Equal(t, query.AmountBelow, in.Amount.Mode)
		assert.Equal(t, "250.5", in.Amount.Max.String())
	})

	t.Run("range", func(t *testing.T) {
		in := query.ExtractIntent("transactions between 100 and 500")
		require.NotNil(t, in.Amount)
		assert.Equal(t, query.AmountRange, in.Amount.Mode)
		assert.Equal(t, "100", in.Amount.Min.String())
		assert.Equal(t, "500", in.Amount.Max.String())
	})

	t.Run("reversed range is normalized", func(t *testing.T) {
		in := query.ExtractIntent("transactions between 500 and 100")
		require.NotNil(t, in.Amount)
		assert.Equal(t, "100", in.Amount.Min.String())
		assert.Equal(t, "500", in.Amount.Max.String())
	})

	t.Run("exact", func(t *testing.T) {
		in := query.ExtractIntent("any payment of exactly 1,299")
		require.NotNil(t, in.Amount)
		assert.Equal(t, query.AmountExact, in.Amount.Mode)
		assert.Equal(t, "1299", in.Amount.Min.String())
	})

	t.Run("no amount", func(t *testing.T) {
		in := query.ExtractIntent("what's my balance")
		assert.Nil(t, in.Amount)
	})
}

func TestExtractIntent_SearchTerms(t *testing.T) {
	t.Run("double quoted", func(t *testing.T) {
		in := query.ExtractIntent(`find transactions containing "Swiggy Instamart"`)
		assert.Equal(t, query.IntentSearch, in.Type)
		assert.Equal(t, []string{"swiggy instamart"}, in.SearchTerms)
	})

	t.Run("payments to phrase", func(t *testing.T) {
		in := query.ExtractIntent("show payments to rahul in 2024")
		assert.Equal(t, query.IntentSearch, in.Type)
		assert.Equal(t, []string{"rahul"}, in.SearchTerms)
		assert.Equal(t, "2024", in.Date.Year)
	})

	t.Run("quoted term forces search intent", func(t *testing.T) {
		in := query.ExtractIntent(`anything with "IRCTC"?`)
		assert.Equal(t, query.IntentSearch, in.Type)
		assert.Equal(t, []string{"irctc"}, in.SearchTerms)
	})
}
