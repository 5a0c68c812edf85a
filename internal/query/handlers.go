package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"ledgerchat/internal/analytics"
	"ledgerchat/internal/dateutils"
	"ledgerchat/internal/models"
)

const greetingText = "Hello! I'm your transaction assistant. I can tell you about your " +
	"spending, balances, categories, top expenses, and trends. What would you like to know?"

const helpText = `Here are some things you can ask me:
  - What's my current balance?
  - How much did I spend in total?
  - How much did I spend on Food & Dining in March 2024?
  - Show me a category breakdown
  - What were my top expenses?
  - Give me a monthly summary
  - How is my spending trending?
  - Compare my last two months
  - How often do I pay for transportation?
  - What's my average transaction?
  - What percentage of my spending is food?
  - How many transactions do I have?
  - What was my smallest transaction?
  - Find transactions containing "swiggy"
  - Show transactions above 5000`

func (e *Engine) handleGreeting() string {
	return greetingText
}

func (e *Engine) handleHelp() string {
	return helpText
}

func (e *Engine) handleBalance() string {
	if e.snapshot.Totals.TransactionCount == 0 {
		return "I don't have any transactions loaded yet, so there is no balance to report."
	}
	return fmt.Sprintf("Your current balance is %s (as of %s).",
		FormatAmount(e.snapshot.Totals.CurrentBalance), e.snapshot.Totals.EndDate)
}

// handleTotal answers "how much" questions. The direction comes from the
// question wording and a category slot narrows the scope.
func (e *Engine) handleTotal(in *Intent) string {
	if in.wantsCredits() {
		return e.totalCredits(in)
	}
	if in.Category != "" {
		return e.categorySpending(in)
	}

	if !in.HasFilters() {
		t := e.snapshot.Totals
		if t.TransactionCount == 0 {
			return "I don't have any transactions loaded yet."
		}
		return fmt.Sprintf("You spent a total of %s across %d %s between %s and %s.",
			FormatAmount(t.TotalSpent), t.TransactionCount,
			pluralize(t.TransactionCount, "transaction"), t.StartDate, t.EndDate)
	}

	txs := e.filtered(in)
	if len(txs) == 0 {
		return noMatches(in)
	}
	spent, _ := sumDirections(txs)
	return fmt.Sprintf("You spent %s for %s across %d %s.",
		FormatAmount(spent), scopeLabel(in), len(txs), pluralize(len(txs), "transaction"))
}

func (e *Engine) totalCredits(in *Intent) string {
	if !in.HasFilters() {
		t := e.snapshot.Totals
		if t.TransactionCount == 0 {
			return "I don't have any transactions loaded yet."
		}
		return fmt.Sprintf("You received a total of %s between %s and %s.",
			FormatAmount(t.TotalReceived), t.StartDate, t.EndDate)
	}

	txs := e.filtered(in)
	if len(txs) == 0 {
		return noMatches(in)
	}
	_, received := sumDirections(txs)
	return fmt.Sprintf("You received %s for %s across %d %s.",
		FormatAmount(received), scopeLabel(in), len(txs), pluralize(len(txs), "transaction"))
}

func (e *Engine) categorySpending(in *Intent) string {
	if in.Date.IsZero() && in.Amount == nil && len(in.SearchTerms) == 0 {
		stats, ok := e.snapshot.Categories[in.Category]
		if !ok || stats.TransactionCount == 0 {
			return fmt.Sprintf("You have no transactions in %s.", in.Category)
		}
		answer := fmt.Sprintf("%s: you spent %s across %d %s (average %s per transaction).",
			in.Category, FormatAmount(stats.TotalSpent), stats.TransactionCount,
			pluralize(stats.TransactionCount, "transaction"), FormatAmount(stats.AvgSpent))
		if stats.TotalReceived.IsPositive() {
			answer += fmt.Sprintf(" You also received %s in this category.", FormatAmount(stats.TotalReceived))
		}
		return answer
	}

	txs := e.filtered(in)
	if len(txs) == 0 {
		return noMatches(in)
	}
	spent, received := sumDirections(txs)
	answer := fmt.Sprintf("%s for %s: you spent %s across %d %s.",
		in.Category, in.Date.Label(), FormatAmount(spent), len(txs), pluralize(len(txs), "transaction"))
	if received.IsPositive() {
		answer += fmt.Sprintf(" You also received %s.", FormatAmount(received))
	}
	return answer
}

func (e *Engine) handleCategoryBreakdown(in *Intent) string {
	type row struct {
		name  string
		spent decimal.Decimal
		count int
	}

	var rows []row
	if !in.HasFilters() {
		for name, stats := range e.snapshot.Categories {
			rows = append(rows, row{name, stats.TotalSpent, stats.TransactionCount})
		}
	} else {
		txs := e.filtered(in)
		if len(txs) == 0 {
			return noMatches(in)
		}
		byCat := make(map[string]*row)
		for _, tx := range txs {
			name := models.CoerceCategory(tx.Category)
			r, ok := byCat[name]
			if !ok {
				r = &row{name: name}
				byCat[name] = r
			}
			r.spent = r.spent.Add(tx.Withdrawal)
			r.count++
		}
		for _, r := range byCat {
			rows = append(rows, *r)
		}
	}

	if len(rows) == 0 {
		return "I don't have any transactions loaded yet."
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].spent.Equal(rows[j].spent) {
			return rows[i].spent.GreaterThan(rows[j].spent)
		}
		return rows[i].name < rows[j].name
	})

	var b strings.Builder
	b.WriteString("Here's your spending by category")
	if in.HasFilters() {
		b.WriteString(" for " + scopeLabel(in))
	}
	b.WriteString(":\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "  %s: %s (%d %s)\n", r.name, FormatAmount(r.spent), r.count, pluralize(r.count, "transaction"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// handleTop lists the largest withdrawals or deposits. Unfiltered
// questions read the precomputed top lists; filtered ones rank the subset.
func (e *Engine) handleTop(in *Intent) string {
	expenses := !in.wantsCredits()
	var entries []topLine
	if !in.HasFilters() {
		src := e.snapshot.TopExpenses
		if !expenses {
			src = e.snapshot.TopCredits
		}
		for _, t := range src {
			entries = append(entries, topLine{t.Date, t.Narration, t.Amount, t.Category})
		}
	} else {
		txs := e.filtered(in)
		if len(txs) == 0 {
			return noMatches(in)
		}
		entries = rankTransactions(txs, expenses)
	}

	if len(entries) == 0 {
		if expenses {
			return "I couldn't find any withdrawals to rank."
		}
		return "I couldn't find any deposits to rank."
	}

	noun := "expenses"
	if !expenses {
		noun = "credits"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Your top %s", noun)
	if in.HasFilters() {
		b.WriteString(" for " + scopeLabel(in))
	}
	b.WriteString(":\n")
	for i, t := range entries {
		fmt.Fprintf(&b, "  %d. %s on %s (%s) for %s\n",
			i+1, FormatAmount(t.amount), t.date, t.category, truncateNarration(t.narration))
	}
	return strings.TrimRight(b.String(), "\n")
}

type topLine struct {
	date      string
	narration string
	amount    decimal.Decimal
	category  string
}

func rankTransactions(txs []models.Transaction, expenses bool) []topLine {
	var lines []topLine
	for _, tx := range txs {
		amt := tx.Withdrawal
		if !expenses {
			amt = tx.Deposit
		}
		if !amt.IsPositive() {
			continue
		}
		lines = append(lines, topLine{tx.Date, tx.Narration, amt, models.CoerceCategory(tx.Category)})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].amount.GreaterThan(lines[j].amount)
	})
	if len(lines) > 10 {
		lines = lines[:10]
	}
	return lines
}

func truncateNarration(s string) string {
	const max = 48
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func (e *Engine) monthlySummary(in *Intent) string {
	months, stats := e.monthlyBuckets(in)
	if len(months) == 0 {
		if in.HasFilters() {
			return noMatches(in)
		}
		return "I don't have any transactions loaded yet."
	}

	var b strings.Builder
	b.WriteString("Here's your month-by-month summary")
	if in.HasFilters() {
		b.WriteString(" for " + scopeLabel(in))
	}
	b.WriteString(":\n")
	for _, m := range months {
		s := stats[m]
		fmt.Fprintf(&b, "  %s: spent %s, received %s, net %s (%d %s)\n",
			monthLabel(m), FormatAmount(s.spent), FormatAmount(s.received),
			FormatAmount(s.received.Sub(s.spent)), s.count, pluralize(s.count, "transaction"))
	}
	return strings.TrimRight(b.String(), "\n")
}

type monthBucket struct {
	spent    decimal.Decimal
	received decimal.Decimal
	count    int
}

// monthlyBuckets groups the intent's scope by YYYY-MM in sequence order.
func (e *Engine) monthlyBuckets(in *Intent) ([]string, map[string]monthBucket) {
	stats := make(map[string]monthBucket)
	var order []string

	if !in.HasFilters() {
		for _, m := range e.snapshot.MonthOrder {
			s := e.snapshot.Monthly[m]
			stats[m] = monthBucket{s.TotalSpent, s.TotalReceived, s.TransactionCount}
		}
		return e.snapshot.MonthOrder, stats
	}

	for _, tx := range e.filtered(in) {
		m := tx.YearMonth()
		b, seen := stats[m]
		if !seen {
			order = append(order, m)
		}
		b.spent = b.spent.Add(tx.Withdrawal)
		b.received = b.received.Add(tx.Deposit)
		b.count++
		stats[m] = b
	}
	return order, stats
}

// monthLabel turns "2024-03" into "March 2024".
func monthLabel(yearMonth string) string {
	if len(yearMonth) != 7 {
		return yearMonth
	}
	name := dateutils.MonthName(yearMonth[5:7])
	if name == "" {
		return yearMonth
	}
	return name + " " + yearMonth[:4]
}

// trendBand is the relative change within which month-over-month spending
// counts as stable.
var trendBand = decimal.NewFromFloat(0.05)

func (e *Engine) handleTrend(in *Intent) string {
	months, stats := e.monthlyBuckets(in)
	if len(months) == 0 {
		if in.HasFilters() {
			return noMatches(in)
		}
		return "I don't have any transactions loaded yet."
	}
	if len(months) < 2 {
		return fmt.Sprintf("I need at least two months of data to spot a trend. So far I only have %s.",
			monthLabel(months[0]))
	}

	var b strings.Builder
	b.WriteString("Your monthly spending")
	if in.HasFilters() {
		b.WriteString(" for " + scopeLabel(in))
	}
	b.WriteString(":\n")
	for _, m := range months {
		fmt.Fprintf(&b, "  %s: %s\n", monthLabel(m), FormatAmount(stats[m].spent))
	}

	last := stats[months[len(months)-1]].spent
	prev := stats[months[len(months)-2]].spent
	fmt.Fprintf(&b, "Overall, your spending is %s: %s went %s compared to %s.",
		trendWord(prev, last), monthLabel(months[len(months)-1]),
		directionWord(prev, last), monthLabel(months[len(months)-2]))
	return b.String()
}

// trendWord classifies the change from prev to cur with a 5% stability
// band on either side.
func trendWord(prev, cur decimal.Decimal) string {
	if prev.IsZero() {
		if cur.IsZero() {
			return "stable"
		}
		return "increasing"
	}
	change := cur.Sub(prev).Div(prev)
	switch {
	case change.GreaterThan(trendBand):
		return "increasing"
	case change.LessThan(trendBand.Neg()):
		return "decreasing"
	default:
		return "stable"
	}
}

func directionWord(prev, cur decimal.Decimal) string {
	switch trendWord(prev, cur) {
	case "increasing":
		return "up"
	case "decreasing":
		return "down"
	default:
		return "roughly sideways"
	}
}

// comparisonThreshold marks a month-over-month difference worth calling
// out.
var comparisonThreshold = decimal.NewFromFloat(0.20)

// handleComparison compares the two months the question names, falling
// back to the two most recent months in scope.
func (e *Engine) handleComparison(in *Intent) string {
	if m1, m2, ok := namedMonthPair(in.q); ok {
		return e.compareNamedMonths(in, m1, m2)
	}

	months, stats := e.monthlyBuckets(in)
	if len(months) < 2 {
		return "I need at least two months of data to compare."
	}

	prevMonth := months[len(months)-2]
	curMonth := months[len(months)-1]
	return renderComparison(in,
		monthLabel(prevMonth), monthLabel(curMonth),
		stats[prevMonth].spent, stats[curMonth].spent)
}

// namedMonthPair finds the first two distinct months the question names,
// in calendar order.
func namedMonthPair(q string) (first, second string, ok bool) {
	seen := make(map[string]bool)
	var found []string
	for _, tok := range dateutils.MonthTokens {
		if !seen[tok.Number] && containsWord(q, tok.Name) {
			seen[tok.Number] = true
			found = append(found, tok.Number)
		}
	}
	if len(found) < 2 {
		return "", "", false
	}
	sort.Strings(found)
	return found[0], found[1], true
}

// compareNamedMonths sums withdrawals per named month across every year
// in the ledger. The single-month date slot is ignored here, since the
// question names the pair itself; a category mention still narrows.
func (e *Engine) compareNamedMonths(in *Intent, m1, m2 string) string {
	pool := *in
	pool.Date = DateFilter{}

	var spent1, spent2 decimal.Decimal
	var seen1, seen2 bool
	for _, tx := range e.filtered(&pool) {
		switch monthOf(tx.Date) {
		case m1:
			spent1 = spent1.Add(tx.Withdrawal)
			seen1 = true
		case m2:
			spent2 = spent2.Add(tx.Withdrawal)
			seen2 = true
		}
	}

	name1 := dateutils.MonthName(m1)
	name2 := dateutils.MonthName(m2)
	if !seen1 || !seen2 {
		return fmt.Sprintf("No data available for comparison between %s and %s.", name1, name2)
	}
	return renderComparison(in, name1, name2, spent1, spent2)
}

func renderComparison(in *Intent, prevLabel, curLabel string, prev, cur decimal.Decimal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Comparing %s and %s", prevLabel, curLabel)
	if in.Category != "" {
		fmt.Fprintf(&b, " for %s", in.Category)
	}
	fmt.Fprintf(&b, ":\n  %s: %s\n  %s: %s\n",
		prevLabel, FormatAmount(prev), curLabel, FormatAmount(cur))

	diff := cur.Sub(prev)
	switch {
	case diff.IsZero():
		b.WriteString("You spent exactly the same in both months.")
	case diff.IsPositive():
		fmt.Fprintf(&b, "You spent %s more in %s.", FormatAmount(diff), curLabel)
	default:
		fmt.Fprintf(&b, "You spent %s less in %s.", FormatAmount(diff.Abs()), curLabel)
	}

	if !prev.IsZero() {
		relative := diff.Abs().Div(prev)
		if relative.GreaterThan(comparisonThreshold) {
			pct := relative.Mul(decimal.NewFromInt(100)).Round(1)
			fmt.Fprintf(&b, " That's a significant change of %s%%.", pct.String())
		}
	}
	return b.String()
}

// daysPerMonth is the average Gregorian month length used to normalize
// frequency figures.
var daysPerMonth = decimal.NewFromFloat(30.44)

func (e *Engine) handleFrequency(in *Intent) string {
	txs := e.filtered(in)
	if len(txs) == 0 {
		if in.HasFilters() {
			return noMatches(in)
		}
		return "I don't have any transactions loaded yet."
	}

	days := dateutils.ElapsedDays(txs[0].Date, txs[len(txs)-1].Date)
	perMonth := decimal.NewFromInt(int64(len(txs))).
		Div(decimal.NewFromInt(int64(days)).Div(daysPerMonth)).
		Round(1)

	subject := "transactions"
	if in.Category != "" {
		subject = in.Category + " transactions"
	} else if len(in.SearchTerms) > 0 {
		subject = "transactions matching " + scopeLabel(in)
	}
	answer := fmt.Sprintf("You have %d %s between %s and %s, which works out to about %s per month.",
		len(txs), subject, txs[0].Date, txs[len(txs)-1].Date, perMonth.String())
	if in.Category != "" {
		return answer
	}

	type catCount struct {
		name  string
		count int
	}
	counts := make(map[string]int)
	for _, tx := range txs {
		counts[models.CoerceCategory(tx.Category)]++
	}
	var ranked []catCount
	for name, n := range counts {
		ranked = append(ranked, catCount{name, n})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}

	var b strings.Builder
	b.WriteString(answer)
	b.WriteString("\nMost frequent categories:\n")
	for _, c := range ranked {
		fmt.Fprintf(&b, "  %s: %d %s\n", c.name, c.count, pluralize(c.count, "transaction"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (e *Engine) handleAverage(in *Intent) string {
	if !in.HasFilters() {
		t := e.snapshot.Totals
		if t.TransactionCount == 0 {
			return "I don't have any transactions loaded yet."
		}
		avg := t.TotalSpent.DivRound(decimal.NewFromInt(int64(t.TransactionCount)), 2)
		return fmt.Sprintf("Across all %d transactions, your average spend is %s per transaction.",
			t.TransactionCount, FormatAmount(avg))
	}

	if in.Category != "" && in.Date.IsZero() && in.Amount == nil && len(in.SearchTerms) == 0 {
		stats, ok := e.snapshot.Categories[in.Category]
		if !ok || stats.TransactionCount == 0 {
			return fmt.Sprintf("You have no transactions in %s.", in.Category)
		}
		return fmt.Sprintf("In %s, your average spend is %s per transaction over %d %s.",
			in.Category, FormatAmount(stats.AvgSpent), stats.TransactionCount,
			pluralize(stats.TransactionCount, "transaction"))
	}

	txs := e.filtered(in)
	if len(txs) == 0 {
		return noMatches(in)
	}
	spent, _ := sumDirections(txs)
	avg := spent.DivRound(decimal.NewFromInt(int64(len(txs))), 2)
	return fmt.Sprintf("For %s, your average spend is %s per transaction over %d %s.",
		scopeLabel(in), FormatAmount(avg), len(txs), pluralize(len(txs), "transaction"))
}

// maxSearchResults caps the rows listed in a search answer. The match
// count always reflects the full result set.
const maxSearchResults = 10

func (e *Engine) handleSearch(in *Intent) string {
	if !in.HasFilters() {
		return "Tell me what to look for, e.g. find transactions containing \"swiggy\" or show transactions above 5000."
	}
	return e.listMatches(in)
}

// handleThreshold summarizes the transactions above a cutoff or inside a
// range: count, total, average, and the largest few.
func (e *Engine) handleThreshold(in *Intent) string {
	if in.Amount == nil {
		return "Tell me an amount cutoff, e.g. show transactions above 5000 or between 1000 and 2000."
	}

	txs := e.filtered(in)
	if len(txs) == 0 {
		return noMatches(in)
	}

	var total decimal.Decimal
	for _, tx := range txs {
		total = total.Add(tx.Amount())
	}
	avg := total.DivRound(decimal.NewFromInt(int64(len(txs))), 2)

	var b strings.Builder
	b.WriteString("Transactions " + amountLabel(in.Amount))
	if in.Category != "" {
		b.WriteString(" in " + in.Category)
	}
	if !in.Date.IsZero() {
		b.WriteString(" in " + in.Date.Label())
	}
	b.WriteString(":\n")
	fmt.Fprintf(&b, "  Count: %d %s\n", len(txs), pluralize(len(txs), "transaction"))
	fmt.Fprintf(&b, "  Total: %s\n", FormatAmount(total))
	fmt.Fprintf(&b, "  Average: %s\n", FormatAmount(avg))

	largest := make([]models.Transaction, len(txs))
	copy(largest, txs)
	sort.SliceStable(largest, func(i, j int) bool {
		return largest[i].Amount().GreaterThan(largest[j].Amount())
	})
	if len(largest) > 5 {
		largest = largest[:5]
	}
	b.WriteString("Largest of these:\n")
	for _, tx := range largest {
		fmt.Fprintf(&b, "  %s  %s  %s (%s)\n",
			tx.Date, FormatAmount(tx.Amount()), truncateNarration(tx.Narration), tx.Direction())
	}
	return strings.TrimRight(b.String(), "\n")
}

// amountLabel names an amount condition for response text.
func amountLabel(f *AmountFilter) string {
	switch f.Mode {
	case AmountAbove:
		return "above " + FormatAmount(f.Min)
	case AmountBelow:
		return "below " + FormatAmount(f.Max)
	case AmountRange:
		return "between " + FormatAmount(f.Min) + " and " + FormatAmount(f.Max)
	default:
		return "of exactly " + FormatAmount(f.Min)
	}
}

// handleMinimum lists transactions below a cutoff when the question names
// one, otherwise the smallest transactions in scope.
func (e *Engine) handleMinimum(in *Intent) string {
	if in.Amount != nil {
		return e.listMatches(in)
	}

	txs := e.filtered(in)
	if len(txs) == 0 {
		if in.HasFilters() {
			return noMatches(in)
		}
		return "I don't have any transactions loaded yet."
	}

	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount().LessThan(sorted[j].Amount())
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}

	var b strings.Builder
	b.WriteString("Your smallest transactions")
	if in.HasFilters() {
		b.WriteString(" for " + scopeLabel(in))
	}
	b.WriteString(":\n")
	for i, tx := range sorted {
		fmt.Fprintf(&b, "  %d. %s on %s (%s) for %s\n",
			i+1, FormatAmount(tx.Amount()), tx.Date, tx.Direction(), truncateNarration(tx.Narration))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (e *Engine) handleCount(in *Intent) string {
	if !in.HasFilters() {
		t := e.snapshot.Totals
		if t.TransactionCount == 0 {
			return "I don't have any transactions loaded yet."
		}
		return fmt.Sprintf("You have %d %s between %s and %s.",
			t.TransactionCount, pluralize(t.TransactionCount, "transaction"), t.StartDate, t.EndDate)
	}

	txs := e.filtered(in)
	if len(txs) == 0 {
		return noMatches(in)
	}
	return fmt.Sprintf("You have %d %s for %s.",
		len(txs), pluralize(len(txs), "transaction"), scopeLabel(in))
}

// handlePercentage reports a category's share of total spending, or the
// share of every category when no category is named.
func (e *Engine) handlePercentage(in *Intent) string {
	if e.snapshot.Totals.TransactionCount == 0 {
		return "I don't have any transactions loaded yet."
	}
	total := e.snapshot.Totals.TotalSpent
	if total.IsZero() {
		return "You have no spending recorded, so there are no percentages to report."
	}

	hundred := decimal.NewFromInt(100)

	// A dated question measures the share within that period, not of
	// lifetime spending.
	if in.Category != "" && !in.Date.IsZero() {
		period := *in
		period.Category = ""
		total = decimal.Zero
		var catSpent decimal.Decimal
		for _, tx := range e.filtered(&period) {
			total = total.Add(tx.Withdrawal)
			if models.CoerceCategory(tx.Category) == in.Category {
				catSpent = catSpent.Add(tx.Withdrawal)
			}
		}
		if total.IsZero() {
			return noMatches(in)
		}
		pct := catSpent.Div(total).Mul(hundred).Round(2)
		return fmt.Sprintf("%s accounts for %s%% of your spending in %s (%s out of %s).",
			in.Category, pct.String(), in.Date.Label(), FormatAmount(catSpent), FormatAmount(total))
	}

	if in.Category != "" {
		stats := e.snapshot.Categories[in.Category]
		pct := stats.TotalSpent.Div(total).Mul(hundred).Round(2)
		return fmt.Sprintf("%s accounts for %s%% of your spending (%s out of %s).",
			in.Category, pct.String(), FormatAmount(stats.TotalSpent), FormatAmount(total))
	}

	type share struct {
		name  string
		spent decimal.Decimal
	}
	var shares []share
	for name, stats := range e.snapshot.Categories {
		if stats.TotalSpent.IsPositive() {
			shares = append(shares, share{name, stats.TotalSpent})
		}
	}
	sort.SliceStable(shares, func(i, j int) bool {
		if !shares[i].spent.Equal(shares[j].spent) {
			return shares[i].spent.GreaterThan(shares[j].spent)
		}
		return shares[i].name < shares[j].name
	})

	t := e.snapshot.Totals
	var b strings.Builder
	b.WriteString("Your financial ratios:\n")
	if t.TotalReceived.IsPositive() {
		savings := t.TotalReceived.Sub(t.TotalSpent).Div(t.TotalReceived).Mul(hundred).Round(1)
		fmt.Fprintf(&b, "  Savings rate: %s%%\n", savings.String())
		fmt.Fprintf(&b, "  Spending rate: %s%%\n", hundred.Sub(savings).String())
	}
	fmt.Fprintf(&b, "  Total income: %s\n", FormatAmount(t.TotalReceived))
	fmt.Fprintf(&b, "  Total spending: %s\n", FormatAmount(t.TotalSpent))
	fmt.Fprintf(&b, "  Net flow: %s\n", FormatAmount(t.TotalReceived.Sub(t.TotalSpent)))

	b.WriteString("Here's each category's share of your spending:\n")
	for _, s := range shares {
		pct := s.spent.Div(total).Mul(hundred).Round(2)
		fmt.Fprintf(&b, "  %s: %s%% (%s)\n", s.name, pct.String(), FormatAmount(s.spent))
	}
	return strings.TrimRight(b.String(), "\n")
}

// listMatches renders the intent's scope as a capped transaction listing.
func (e *Engine) listMatches(in *Intent) string {
	txs := e.filtered(in)
	if len(txs) == 0 {
		return noMatches(in)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d %s for %s:\n", len(txs), pluralize(len(txs), "transaction"), scopeLabel(in))
	shown := txs
	if len(shown) > maxSearchResults {
		shown = shown[:maxSearchResults]
	}
	for _, tx := range shown {
		fmt.Fprintf(&b, "  %s  %s  %s (%s)\n",
			tx.Date, FormatAmount(tx.Amount()), truncateNarration(tx.Narration), tx.Direction())
	}
	if len(txs) > maxSearchResults {
		fmt.Fprintf(&b, "  ... and %d more.\n", len(txs)-maxSearchResults)
	}
	return strings.TrimRight(b.String(), "\n")
}

// handleGeneral covers the fallback: an account overview, or a
// month-by-month summary when the question talks about months.
func (e *Engine) handleGeneral(in *Intent) string {
	if in.mentionsMonths() {
		return e.monthlySummary(in)
	}

	if in.HasFilters() {
		txs := e.filtered(in)
		if len(txs) == 0 {
			return noMatches(in)
		}
		spent, received := sumDirections(txs)
		return fmt.Sprintf("For %s: %d %s, %s spent, %s received.",
			scopeLabel(in), len(txs), pluralize(len(txs), "transaction"),
			FormatAmount(spent), FormatAmount(received))
	}

	t := e.snapshot.Totals
	if t.TransactionCount == 0 {
		return "I don't have any transactions loaded yet."
	}

	top := topCategory(e.snapshot.Categories)
	answer := fmt.Sprintf("Between %s and %s you made %d transactions, spending %s and receiving %s. Your current balance is %s.",
		t.StartDate, t.EndDate, t.TransactionCount,
		FormatAmount(t.TotalSpent), FormatAmount(t.TotalReceived), FormatAmount(t.CurrentBalance))
	if top != "" {
		answer += fmt.Sprintf(" Your biggest spending category is %s.", top)
	}
	return answer
}

func topCategory(categories map[string]analytics.CategoryStats) string {
	best := ""
	var bestSpent decimal.Decimal
	for name, stats := range categories {
		if best == "" || stats.TotalSpent.GreaterThan(bestSpent) ||
			(stats.TotalSpent.Equal(bestSpent) && name < best) {
			best = name
			bestSpent = stats.TotalSpent
		}
	}
	return best
}

func sumDirections(txs []models.Transaction) (spent, received decimal.Decimal) {
	for _, tx := range txs {
		spent = spent.Add(tx.Withdrawal)
		received = received.Add(tx.Deposit)
	}
	return spent, received
}
