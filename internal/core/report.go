package core

// RemainingIncomeSlice names the residual allocation slice shown when income
// exceeds everything spent or saved.
const RemainingIncomeSlice = "Remaining Income"

type (
	// CategoryTotal is one row of a per-category summary.
	CategoryTotal struct {
		Category Category `json:"category"`
		Total    Money    `json:"total"`
	}

	// Totals holds the derived figures shared by the daily and monthly views.
	Totals struct {
		TotalIncome   Money `json:"totalIncome"`
		TotalNeeds    Money `json:"totalNeeds"`
		TotalWants    Money `json:"totalWants"`
		TotalSaves    Money `json:"totalSaves"`
		TotalExpenses Money `json:"totalExpenses"`
		NetBalance    Money `json:"netBalance"`
	}

	// AllocationSlice is one wedge of the income-allocation breakdown.
	AllocationSlice struct {
		Name   string `json:"name"`
		Amount Money  `json:"value"`
	}

	DailyReport struct {
		Date Date `json:"date"`
		Totals
		Allocation []AllocationSlice `json:"allocation"`
	}

	MonthlyReport struct {
		Year  int `json:"year"`
		Month int `json:"month"`
		Totals
		NeedsPercentage float64 `json:"needsPercentage"`
		WantsPercentage float64 `json:"wantsPercentage"`
		SavesPercentage float64 `json:"savesPercentage"`
	}
)

// SummarizeByCategory groups transactions by category and sums their amounts.
// Categories without transactions are absent from the result, not zero-filled.
// Rows come back in the fixed category order.
func SummarizeByCategory(txs []Transaction) []CategoryTotal {
	sums := make(map[Category]int64)
	for _, t := range txs {
		sums[t.Category] += t.Amount.Cents
	}
	var out []CategoryTotal
	for _, c := range []Category{Income, Needs, Wants, Save} {
		if cents, ok := sums[c]; ok {
			out = append(out, CategoryTotal{Category: c, Total: Money{Cents: cents}})
		}
	}
	return out
}

// NewTotals computes the shared daily/monthly figures over a transaction set.
func NewTotals(txs []Transaction) Totals {
	var income, needs, wants, saves int64
	for _, t := range txs {
		switch t.Category {
		case Income:
			income += t.Amount.Cents
		case Needs:
			needs += t.Amount.Cents
		case Wants:
			wants += t.Amount.Cents
		case Save:
			saves += t.Amount.Cents
		}
	}
	expenses := needs + wants
	return Totals{
		TotalIncome:   Money{Cents: income},
		TotalNeeds:    Money{Cents: needs},
		TotalWants:    Money{Cents: wants},
		TotalSaves:    Money{Cents: saves},
		TotalExpenses: Money{Cents: expenses},
		NetBalance:    Money{Cents: income - expenses - saves},
	}
}

// Allocation builds the income-allocation breakdown for a pie-style view.
//
// When income covers needs+wants+save, each non-zero category gets a slice
// plus a positive "Remaining Income" residual; when the budget is
// over-allocated only the non-zero spending slices appear, so the breakdown
// never visually exceeds income. Income with nothing spent at all collapses
// to a single residual slice. The thresholding rule is a product contract;
// changing it needs a product decision, not a code cleanup.
func (t Totals) Allocation() []AllocationSlice {
	var slices []AllocationSlice
	appendNonZero := func(name string, m Money) {
		if m.Cents > 0 {
			slices = append(slices, AllocationSlice{Name: name, Amount: m})
		}
	}

	income := t.TotalIncome.Cents
	allocated := t.TotalNeeds.Cents + t.TotalWants.Cents + t.TotalSaves.Cents

	appendNonZero(string(Needs), t.TotalNeeds)
	appendNonZero(string(Wants), t.TotalWants)
	appendNonZero(string(Save), t.TotalSaves)
	if income > 0 && income >= allocated {
		appendNonZero(RemainingIncomeSlice, Money{Cents: income - allocated})
	}

	if len(slices) == 0 && income > 0 {
		slices = append(slices, AllocationSlice{Name: RemainingIncomeSlice, Amount: Money{Cents: income}})
	}
	return slices
}

// NewDailyReport filters transactions to the exact calendar date and derives
// the daily view.
func NewDailyReport(txs []Transaction, day Date) DailyReport {
	var filtered []Transaction
	for _, t := range txs {
		if t.Date == day {
			filtered = append(filtered, t)
		}
	}
	totals := NewTotals(filtered)
	return DailyReport{
		Date:       day,
		Totals:     totals,
		Allocation: totals.Allocation(),
	}
}

// NewMonthlyReport filters transactions to the calendar month (first through
// last day inclusive) and derives the monthly view. Percentages are exactly 0
// when there is no income; division by zero is special-cased, never an error.
func NewMonthlyReport(txs []Transaction, year, month int) MonthlyReport {
	var filtered []Transaction
	for _, t := range txs {
		if t.Date.Year == year && t.Date.Month == month {
			filtered = append(filtered, t)
		}
	}
	totals := NewTotals(filtered)

	percent := func(part Money) float64 {
		if totals.TotalIncome.Cents <= 0 {
			return 0
		}
		return float64(part.Cents) / float64(totals.TotalIncome.Cents) * 100
	}

	return MonthlyReport{
		Year:            year,
		Month:           month,
		Totals:          totals,
		NeedsPercentage: percent(totals.TotalNeeds),
		WantsPercentage: percent(totals.TotalWants),
		SavesPercentage: percent(totals.TotalSaves),
	}
}
