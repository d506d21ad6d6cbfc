package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
)

// --- Add Expense Command ---

type addExpenseCmd struct {
	name     string
	amount   amountFlag
	category string
	date     dateFlag
}

func (*addExpenseCmd) Name() string     { return "add-expense" }
func (*addExpenseCmd) Synopsis() string { return "record an expense and deduct it from the balance" }
func (*addExpenseCmd) Usage() string {
	return `fin add-expense -n <name> -a <amount> [-c <category>] [-d <date>]

  Records an expense. Its amount is deducted from the available balance, which
  never goes below zero.
`
}

func (c *addExpenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Name of the expense")
	f.Var(&c.amount, "a", "Amount of the expense")
	f.StringVar(&c.category, "c", string(finance.Other), "Category of the expense")
	f.Var(&c.date, "d", "Date of the expense, today by default. See 'fin topic dates'")
}

func (c *addExpenseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || !c.amount.set {
		return usage(f, "add-expense needs a name and an amount")
	}
	return withTracker(ctx, func(tr *finance.Tracker) error {
		e, err := tr.AddExpense(ctx, finance.NewExpense{
			Name:     c.name,
			Amount:   c.amount.Amount,
			Category: c.category,
			Date:     c.date.Date,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Recorded %q for %s on %s (id %s).\n", e.Name, money(e.Amount), e.Date, e.ID)
		return nil
	})
}

// --- Edit Expense Command ---

type editExpenseCmd struct {
	id       string
	name     string
	amount   amountFlag
	category string
	date     dateFlag
}

func (*editExpenseCmd) Name() string     { return "edit-expense" }
func (*editExpenseCmd) Synopsis() string { return "change an expense" }
func (*editExpenseCmd) Usage() string {
	return `fin edit-expense -id <id> [-n <name>] [-a <amount>] [-c <category>] [-d <date>]

  Changes the given fields of an expense. When the amount changes, only the
  difference is applied to the balance.
`
}

func (c *editExpenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the expense")
	f.StringVar(&c.name, "n", "", "New name")
	f.Var(&c.amount, "a", "New amount")
	f.StringVar(&c.category, "c", "", "New category")
	f.Var(&c.date, "d", "New date")
}

func (c *editExpenseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		return usage(f, "edit-expense needs the id of the expense")
	}
	set := visited(f)
	return withTracker(ctx, func(tr *finance.Tracker) error {
		e, ok := tr.Snapshot().Expense(c.id)
		if !ok {
			return fmt.Errorf("%w: %q", finance.ErrExpenseNotFound, c.id)
		}
		if set["n"] {
			e.Name = c.name
		}
		if set["a"] {
			e.Amount = c.amount.Amount
		}
		if set["c"] {
			e.Category = finance.ParseCategory(c.category)
		}
		if set["d"] {
			e.Date = c.date.Date
		}
		if err := tr.UpdateExpense(ctx, e); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Updated expense %s, available balance: %s.\n", e.ID, money(tr.Budget()))
		return nil
	})
}

// --- Remove Expense Command ---

type rmExpenseCmd struct {
	id string
}

func (*rmExpenseCmd) Name() string     { return "rm-expense" }
func (*rmExpenseCmd) Synopsis() string { return "delete an expense and refund the balance" }
func (*rmExpenseCmd) Usage() string {
	return `fin rm-expense -id <id>

  Deletes an expense. Its amount is given back to the available balance.
`
}

func (c *rmExpenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the expense")
}

func (c *rmExpenseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		return usage(f, "rm-expense needs the id of the expense")
	}
	return withTracker(ctx, func(tr *finance.Tracker) error {
		if err := tr.DeleteExpense(ctx, c.id); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Deleted expense %s, available balance: %s.\n", c.id, money(tr.Budget()))
		return nil
	})
}

// --- Expenses Command ---

type expensesCmd struct {
	category string
}

func (*expensesCmd) Name() string     { return "expenses" }
func (*expensesCmd) Synopsis() string { return "list expenses, most recent first" }
func (*expensesCmd) Usage() string {
	return `fin expenses [-c <category>]

  Lists the expenses, most recent first, with the total of each category.
`
}

func (c *expensesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Only list the expenses of this category")
}

func (c *expensesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withTracker(ctx, func(tr *finance.Tracker) error {
		printMarkdown(renderer.RenderExpenses(tr.Expenses(), c.category, currency()))
		return nil
	})
}
