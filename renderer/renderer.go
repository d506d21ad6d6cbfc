// Package renderer turns finance reports into markdown.
//
// Every report is a text/template stored next to this file. A main template
// includes partials, so that the same table is rendered the same way in every
// report.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/finance"
)

//go:embed *.md
var templates embed.FS

// Partials of each main template, keyed by the name used in {{template}}.
var (
	summaryPartials = map[string]string{
		"summary_balance":  "summary_balance.md",
		"summary_expenses": "summary_expenses.md",
		"summary_goals":    "summary_goals.md",
		"expense_rows":     "expense_rows.md",
		"category_rows":    "category_rows.md",
		"goal_rows":        "goal_rows.md",
	}
	expensesPartials = map[string]string{
		"expense_rows":  "expense_rows.md",
		"category_rows": "category_rows.md",
	}
	goalsPartials = map[string]string{
		"goal_rows": "goal_rows.md",
	}
	balancePartials = map[string]string{}
)

// RenderSummary renders the dashboard.
func RenderSummary(s finance.Summary, currency string) string {
	return renderTemplate("summary", "summary.md", summaryPartials, NewDashboard(s, currency))
}

// RenderExpenses renders the expense list, most recent first.
// A non empty category restricts the list to that category.
func RenderExpenses(expenses []finance.Expense, category, currency string) string {
	return renderTemplate("expenses", "expenses.md", expensesPartials, NewExpenseList(expenses, category, currency))
}

// RenderGoals renders the saving goals, least funded first.
func RenderGoals(goals []finance.SavingGoal, budget finance.Amount, currency string) string {
	return renderTemplate("goals", "goals.md", goalsPartials, NewGoalList(goals, budget, currency))
}

// RenderBalance renders the available balance and what is set aside.
func RenderBalance(doc finance.Document, currency string) string {
	return renderTemplate("balance", "balance.md", balancePartials, NewBalance(doc, currency))
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
