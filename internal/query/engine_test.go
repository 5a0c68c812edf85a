package query_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerchat/internal/models"
	"ledgerchat/internal/query"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testLedger() []models.Transaction {
	return []models.Transaction{
		{Date: "2024-01-05", Narration: "SALARY CREDIT", Deposit: dec("50000"), Balance: dec("50000"), Category: models.CategoryTransferRefund},
		{Date: "2024-01-10", Narration: "UPI-SWIGGY-ORDER", Withdrawal: dec("250.50"), Balance: dec("49749.50"), Category: models.CategoryFoodDining},
		{Date: "2024-01-20", Narration: "UPI-ZOMATO", Withdrawal: dec("149.50"), Balance: dec("49600"), Category: models.CategoryFoodDining},
		{Date: "2024-02-02", Narration: "RENT TRANSFER", Withdrawal: dec("15000"), Balance: dec("34600"), Category: models.CategoryUtilitiesBills},
		{Date: "2024-02-12", Narration: "UBER RIDES", Withdrawal: dec("5000"), Balance: dec("29600"), Category: models.CategoryTransportation},
		{Date: "2024-02-14", Narration: "IRCTC TICKET", Withdrawal: dec("5000.01"), Balance: dec("24599.99"), Category: models.CategoryTransportation},
	}
}

func newTestEngine() *query.Engine {
	return query.NewEngine(testLedger())
}

func TestEngine_Refusal(t *testing.T) {
	e := newTestEngine()
	assert.Equal(t, query.RefusalMessage, e.Ask("What's the weather today?"))
}

func TestEngine_EmptyQuestion(t *testing.T) {
	e := newTestEngine()
	answer := e.Ask("   ")
	assert.Contains(t, answer, "rephrase")
}

func TestEngine_GreetingAndHelp(t *testing.T) {
	e := newTestEngine()

	assert.Contains(t, e.Ask("hello"), "transaction assistant")
	assert.Contains(t, e.Ask("what can you do"), "current balance")
}

func TestEngine_Balance(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("what's my current balance?")
	assert.Contains(t, answer, "₹24,599.99")
	assert.Contains(t, answer, "2024-02-14")
}

func TestEngine_TotalSpending(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("how much did I spend in total?")
	assert.Contains(t, answer, "₹25,400.01")
	assert.Contains(t, answer, "6 transactions")
}

func TestEngine_TotalCredits(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("how much money did I receive?")
	assert.Contains(t, answer, "You received a total of ₹50,000.00")
}

func TestEngine_TotalSpendingWithYearFilter_NoMatches(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("how much did I spend in 2030")
	assert.Equal(t, "No transactions found for 2030.", answer)
}

func TestEngine_CategorySpending(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("how much did I spend on food?")
	assert.Contains(t, answer, models.CategoryFoodDining)
	assert.Contains(t, answer, "₹400.00")
	assert.Contains(t, answer, "2 transactions")
}

func TestEngine_CategorySpendingWithDateFilter(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("how much did I spend on food in February 2024?")
	assert.Equal(t, "No transactions found for Food & Dining in February 2024.", answer)
}

func TestEngine_CategoryBreakdown(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("show my spending by category")
	// Sorted by spent descending.
	utilities := strings.Index(answer, models.CategoryUtilitiesBills)
	transport := strings.Index(answer, models.CategoryTransportation)
	food := strings.Index(answer, models.CategoryFoodDining)
	require.True(t, utilities >= 0 && transport >= 0 && food >= 0, answer)
	assert.Less(t, utilities, transport)
	assert.Less(t, transport, food)
}

func TestEngine_TopExpenses(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("what were my top expenses?")
	assert.Contains(t, answer, "1. ₹15,000.00")
	assert.Contains(t, answer, "RENT TRANSFER")
	assert.Contains(t, answer, "2. ₹5,000.01")
}

func TestEngine_TopCredits(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("what were my biggest deposits?")
	assert.Contains(t, answer, "₹50,000.00")
	assert.Contains(t, answer, "SALARY CREDIT")
}

func TestEngine_MonthlySummary(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("give me a monthly summary")
	assert.Contains(t, answer, "January 2024")
	assert.Contains(t, answer, "February 2024")
	assert.Contains(t, answer, "₹25,000.01", "February spending")
}

func TestEngine_SpendingTrend(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("how is my spending trending?")
	assert.Contains(t, answer, "increasing", "February spends far more than January")
}

func TestEngine_TrendNeedsTwoMonths(t *testing.T) {
	e := query.NewEngine([]models.Transaction{
		{Date: "2024-01-05", Narration: "a", Withdrawal: dec("100"), Category: models.CategoryMiscellaneous},
	})

	answer := e.Ask("how is my spending trending?")
	assert.Contains(t, answer, "at least two months")
}

func TestEngine_Comparison(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("compare my spending between months")
	assert.Contains(t, answer, "January 2024")
	assert.Contains(t, answer, "February 2024")
	assert.Contains(t, answer, "more in February 2024")
	assert.Contains(t, answer, "significant", "a >20% jump gets called out")
}

func TestEngine_ComparisonOfNamedMonths(t *testing.T) {
	e := query.NewEngine([]models.Transaction{
		{Date: "2024-03-03", Narration: "GROCERIES", Withdrawal: dec("1000"), Balance: dec("9000"), Category: models.CategoryFoodDining},
		{Date: "2024-04-05", Narration: "GROCERIES", Withdrawal: dec("3000"), Balance: dec("6000"), Category: models.CategoryFoodDining},
	})

	answer := e.Ask("compare march and april 2024")
	assert.Contains(t, answer, "March: ₹1,000.00")
	assert.Contains(t, answer, "April: ₹3,000.00")
	assert.Contains(t, answer, "more in April")

	answer = e.Ask("compare march and december")
	assert.Equal(t, "No data available for comparison between March and December.", answer)
}

func TestEngine_Frequency(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("how often do I spend on transport?")
	assert.Contains(t, answer, "2 Transportation transactions")
	assert.Contains(t, answer, "per month")
	assert.NotContains(t, answer, "Most frequent categories", "the category breakdown only appears without a category")
}

func TestEngine_FrequencyMostFrequentCategories(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("how often do I make transactions?")
	assert.Contains(t, answer, "6 transactions")
	assert.Contains(t, answer, "Most frequent categories:")
	assert.Contains(t, answer, "Food & Dining: 2 transactions")
	assert.Contains(t, answer, "Transportation: 2 transactions")
}

func TestEngine_Average(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("what's my average transaction?")
	// 25400.01 spent over 6 transactions.
	assert.Contains(t, answer, "₹4,233.34")
}

func TestEngine_SearchByTerm(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask(`find transactions containing "zomato"`)
	assert.Contains(t, answer, "Found 1 transaction")
	assert.Contains(t, answer, "UPI-ZOMATO")
}

func TestEngine_ThresholdAboveIsStrict(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("show transactions above 5000")
	assert.Contains(t, answer, "IRCTC TICKET", "5000.01 is above 5000")
	assert.NotContains(t, answer, "UBER RIDES", "exactly 5000 is not above 5000")
	assert.Contains(t, answer, "RENT TRANSFER")
}

func TestEngine_ThresholdSummaryShape(t *testing.T) {
	e := newTestEngine()

	// Salary, rent, and the train ticket are above 5000.
	answer := e.Ask("show transactions above 5000")
	assert.Contains(t, answer, "Count: 3 transactions")
	assert.Contains(t, answer, "Total: ₹70,000.01")
	assert.Contains(t, answer, "Average: ₹23,333.34")
	assert.Contains(t, answer, "Largest of these:")
}

func TestEngine_ThresholdRangeIsInclusive(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("show transactions between 5000 and 15000")
	assert.Contains(t, answer, "UBER RIDES")
	assert.Contains(t, answer, "IRCTC TICKET")
	assert.Contains(t, answer, "RENT TRANSFER")
	assert.NotContains(t, answer, "ZOMATO")
}

func TestEngine_MinimumBelowCutoff(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("show transactions under 300")
	assert.Contains(t, answer, "Found 2 transactions")
	assert.Contains(t, answer, "UPI-SWIGGY-ORDER")
	assert.Contains(t, answer, "UPI-ZOMATO")
}

func TestEngine_MinimumWithoutCutoff(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("what was my smallest transaction?")
	assert.Contains(t, answer, "1. ₹149.50")
	assert.Contains(t, answer, "UPI-ZOMATO")
	assert.NotContains(t, answer, "SALARY CREDIT", "only the five smallest are listed")
}

func TestEngine_Count(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("how many transactions do I have?")
	assert.Contains(t, answer, "6 transactions")

	answer = e.Ask("how many food transactions in January 2024?")
	assert.Contains(t, answer, "2 transactions")
	assert.Contains(t, answer, "Food & Dining in January 2024")
}

func TestEngine_CategoryPercentage(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("what percentage of my spending is food?")
	// 400 of 25400.01.
	assert.Contains(t, answer, "1.57%")
	assert.Contains(t, answer, "₹400.00")
}

func TestEngine_PercentageWithinPeriod(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("what percentage of my spending in January 2024 was food?")
	// January spending is the two food orders, 400 of 400.
	assert.Contains(t, answer, "100%")
	assert.Contains(t, answer, "January 2024")
}

func TestEngine_PercentageBreakdown(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("show the percentage share of each category")
	assert.Contains(t, answer, "59.06%", "Utilities & Bills share")
	assert.Contains(t, answer, "39.37%", "Transportation share")
	assert.Contains(t, answer, "1.57%", "Food & Dining share")

	// Overall ratios precede the shares.
	assert.Contains(t, answer, "Savings rate: 49.2%")
	assert.Contains(t, answer, "Spending rate: 50.8%")
	assert.Contains(t, answer, "Total income: ₹50,000.00")
	assert.Contains(t, answer, "Net flow: ₹24,599.99")
}

func TestEngine_GeneralSummary(t *testing.T) {
	e := newTestEngine()

	answer := e.Ask("give me an overview of my account")
	assert.Contains(t, answer, "6 transactions")
	assert.Contains(t, answer, "₹25,400.01")
	assert.Contains(t, answer, "₹50,000.00")
	assert.Contains(t, answer, "₹24,599.99")
	assert.Contains(t, answer, models.CategoryUtilitiesBills, "biggest spending category")
}

func TestEngine_EmptyLedger(t *testing.T) {
	e := query.NewEngine(nil)

	answer := e.Ask("what's my balance")
	assert.Contains(t, answer, "no transactions loaded")
	assert.NotContains(t, answer, "₹", "an empty ledger never renders a zero figure")
}
