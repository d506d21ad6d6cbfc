package renderer

import (
	"strings"

	"github.com/etnz/finance"
)

// Money is an amount bound to its display currency.
type Money struct {
	Amount   finance.Amount
	Currency string
}

func (m Money) String() string { return m.Amount.Format(m.Currency) }

// Dashboard holds the data of the summary report.
type Dashboard struct {
	Budget          Money
	TotalExpenses   Money
	ExpenseCount    int
	TotalTarget     Money
	TotalCurrent    Money
	RemainingSaving Money
	SavingProgress  finance.Percent
	RecentExpenses  []ExpenseRow
	TopCategories   []CategoryRow
	PriorityGoals   []GoalRow
}

// ExpenseRow is one line of an expense table.
type ExpenseRow struct {
	ID       string
	Name     string
	Category finance.Category
	Date     finance.Date
	Amount   Money
}

// CategoryRow is one line of a category breakdown.
type CategoryRow struct {
	Category finance.Category
	Total    Money
	Count    int
	Share    finance.Percent
}

// GoalRow is one line of a goal table.
type GoalRow struct {
	ID        string
	Name      string
	Target    Money
	Saved     Money
	Available Money
	Remaining Money
	Progress  finance.Percent
	Bar       string
	Deadline  string // empty without deadline
	Funded    bool
}

// ExpenseList holds the data of the expenses report.
type ExpenseList struct {
	Category   string // filter, empty for all
	Total      Money
	Expenses   []ExpenseRow
	Categories []CategoryRow
}

// GoalList holds the data of the goals report.
type GoalList struct {
	Budget Money
	Goals  []GoalRow
	Funded int
}

// Balance holds the data of the balance report.
type Balance struct {
	Available     Money
	Earmarked     Money
	TotalExpenses Money
	Goals         int
}

// NewDashboard prepares s for rendering.
func NewDashboard(s finance.Summary, currency string) Dashboard {
	m := func(a finance.Amount) Money { return Money{a, currency} }
	d := Dashboard{
		Budget:          m(s.Budget),
		TotalExpenses:   m(s.TotalExpenses),
		ExpenseCount:    s.ExpenseCount,
		TotalTarget:     m(s.TotalTarget),
		TotalCurrent:    m(s.TotalCurrent),
		RemainingSaving: m(s.RemainingSaving),
		SavingProgress:  s.SavingProgress,
	}
	for _, e := range s.RecentExpenses {
		d.RecentExpenses = append(d.RecentExpenses, newExpenseRow(e, currency))
	}
	for _, c := range s.TopCategories {
		d.TopCategories = append(d.TopCategories, newCategoryRow(c, currency))
	}
	for _, g := range s.PriorityGoals {
		d.PriorityGoals = append(d.PriorityGoals, newGoalRow(g, currency))
	}
	return d
}

// NewExpenseList prepares the expenses of a category, all of them if empty.
func NewExpenseList(expenses []finance.Expense, category, currency string) ExpenseList {
	selected := finance.ExpensesByRecency(expenses, category)
	l := ExpenseList{
		Total: Money{Currency: currency},
	}
	if category != "" {
		l.Category = finance.ParseCategory(category).String()
	}
	for _, e := range selected {
		l.Total.Amount = l.Total.Amount.Add(e.Amount)
		l.Expenses = append(l.Expenses, newExpenseRow(e, currency))
	}
	for _, c := range finance.CategoryTotals(selected) {
		l.Categories = append(l.Categories, newCategoryRow(c, currency))
	}
	return l
}

// NewGoalList prepares goals for rendering, least funded first.
func NewGoalList(goals []finance.SavingGoal, budget finance.Amount, currency string) GoalList {
	l := GoalList{Budget: Money{budget, currency}}
	for _, g := range finance.GoalsByPriority(goals, budget) {
		row := newGoalRow(g, currency)
		if row.Funded {
			l.Funded++
		}
		l.Goals = append(l.Goals, row)
	}
	return l
}

// NewBalance prepares the balance of doc.
func NewBalance(doc finance.Document, currency string) Balance {
	b := Balance{
		Available:     Money{doc.Budget, currency},
		Earmarked:     Money{Currency: currency},
		TotalExpenses: Money{Currency: currency},
		Goals:         len(doc.SavingGoals),
	}
	for _, g := range doc.SavingGoals {
		b.Earmarked.Amount = b.Earmarked.Amount.Add(g.CurrentAmount)
	}
	for _, e := range doc.Expenses {
		b.TotalExpenses.Amount = b.TotalExpenses.Amount.Add(e.Amount)
	}
	return b
}

func newExpenseRow(e finance.Expense, currency string) ExpenseRow {
	return ExpenseRow{
		ID:       e.ID,
		Name:     cell(e.Name),
		Category: finance.Category(cell(e.Category.String())),
		Date:     e.Date,
		Amount:   Money{e.Amount, currency},
	}
}

func newCategoryRow(c finance.CategoryTotal, currency string) CategoryRow {
	return CategoryRow{
		Category: finance.Category(cell(c.Category.String())),
		Total:    Money{c.Total, currency},
		Count:    c.Count,
		Share:    c.Share,
	}
}

func newGoalRow(g finance.GoalReport, currency string) GoalRow {
	row := GoalRow{
		ID:        g.ID,
		Name:      cell(g.Name),
		Target:    Money{g.TargetAmount, currency},
		Saved:     Money{g.CurrentAmount, currency},
		Available: Money{g.TotalAvailable, currency},
		Remaining: Money{g.Remaining, currency},
		Progress:  g.Progress,
		Bar:       progressBar(g.Progress),
		Funded:    g.FullyFunded,
	}
	if !g.Deadline.IsZero() {
		row.Deadline = g.Deadline.String()
	}
	return row
}

const barWidth = 10

// progressBar draws p as a bar of barWidth cells.
func progressBar(p finance.Percent) string {
	full := int(p) * barWidth / 100
	return strings.Repeat("█", full) + strings.Repeat("░", barWidth-full)
}

// cell escapes the characters that would break a markdown table.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
