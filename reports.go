package finance

import (
	"cmp"
	"slices"
)

// Report sizes of the summary.
const (
	RecentExpensesCount = 5
	TopCategoriesCount  = 3
	PriorityGoalsCount  = 3
)

// CategoryTotal is the sum of the expenses of one category.
type CategoryTotal struct {
	Category Category
	Total    Amount
	Count    int
	Share    Percent // Share of the total of all expenses.
}

// GoalReport is a goal with its derived status.
type GoalReport struct {
	SavingGoal
	GoalStatus
}

// MarshalJSON writes the goal fields followed by the status fields.
func (r GoalReport) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(r.SavingGoal)
	w.EmbedFrom(r.GoalStatus)
	return w.MarshalJSON()
}

// Summary is the dashboard view of a document.
type Summary struct {
	Budget          Amount
	TotalExpenses   Amount
	ExpenseCount    int
	TotalTarget     Amount
	TotalCurrent    Amount
	RemainingSaving Amount  // TotalTarget - TotalCurrent
	SavingProgress  Percent // TotalCurrent over TotalTarget, 0 without goals
	RecentExpenses  []Expense
	TopCategories   []CategoryTotal
	PriorityGoals   []GoalReport
}

// NewSummary computes the dashboard view of doc.
func NewSummary(doc Document) Summary {
	s := Summary{
		Budget:       doc.Budget,
		ExpenseCount: len(doc.Expenses),
	}
	for _, e := range doc.Expenses {
		s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
	}
	for _, g := range doc.SavingGoals {
		s.TotalTarget = s.TotalTarget.Add(g.TargetAmount)
		s.TotalCurrent = s.TotalCurrent.Add(g.CurrentAmount)
	}
	s.RemainingSaving = s.TotalTarget.Sub(s.TotalCurrent)
	s.SavingProgress = PercentOf(s.TotalCurrent, s.TotalTarget)

	s.RecentExpenses = firstN(ExpensesByRecency(doc.Expenses, ""), RecentExpensesCount)
	s.TopCategories = firstN(CategoryTotals(doc.Expenses), TopCategoriesCount)
	s.PriorityGoals = firstN(GoalsByPriority(doc.SavingGoals, doc.Budget), PriorityGoalsCount)
	return s
}

func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// ExpensesByRecency returns the expenses most recent first.
//
// A non empty category keeps only the expenses of that category, compared
// after canonicalization. Expenses of the same day keep their insertion order.
func ExpensesByRecency(expenses []Expense, category string) []Expense {
	out := make([]Expense, 0, len(expenses))
	filter := Category("")
	if category != "" {
		filter = ParseCategory(category)
	}
	for _, e := range expenses {
		if filter == "" || e.Category == filter {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b Expense) int { return b.Date.Compare(a.Date) })
	return out
}

// CategoryTotals sums expenses per category, largest total first.
// Ties are ordered by category name.
func CategoryTotals(expenses []Expense) []CategoryTotal {
	index := make(map[Category]int)
	var totals []CategoryTotal
	grand := Zero
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryTotal{Category: e.Category})
		}
		totals[i].Total = totals[i].Total.Add(e.Amount)
		totals[i].Count++
		grand = grand.Add(e.Amount)
	}
	for i := range totals {
		totals[i].Share = PercentOf(totals[i].Total, grand)
	}
	slices.SortFunc(totals, func(a, b CategoryTotal) int {
		if c := b.Total.Decimal().Cmp(a.Total.Decimal()); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return totals
}

// GoalsByPriority returns the goals with their status, least progress first.
// Goals with the same progress keep their insertion order.
func GoalsByPriority(goals []SavingGoal, budget Amount) []GoalReport {
	out := make([]GoalReport, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalReport{SavingGoal: g, GoalStatus: g.Status(budget)})
	}
	slices.SortStableFunc(out, func(a, b GoalReport) int { return cmp.Compare(a.Progress, b.Progress) })
	return out
}
