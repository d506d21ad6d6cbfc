package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
)

// --- Deposit Command ---

type depositCmd struct {
	amount amountFlag
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "add money to the available balance" }
func (*depositCmd) Usage() string {
	return `fin deposit -a <amount>

  Adds money to the available balance.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.amount, "a", "Amount to deposit")
}

func (c *depositCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.amount.set {
		return usage(f, "deposit needs an amount")
	}
	return withTracker(ctx, func(tr *finance.Tracker) error {
		if err := tr.AddToBudget(ctx, c.amount.Amount); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Available balance: %s.\n", money(tr.Budget()))
		return nil
	})
}

// --- Set Budget Command ---

type setBudgetCmd struct {
	amount amountFlag
}

func (*setBudgetCmd) Name() string     { return "set-budget" }
func (*setBudgetCmd) Synopsis() string { return "replace the available balance" }
func (*setBudgetCmd) Usage() string {
	return `fin set-budget -a <amount>

  Replaces the available balance, for instance after counting your cash.
`
}

func (c *setBudgetCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.amount, "a", "New available balance")
}

func (c *setBudgetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.amount.set {
		return usage(f, "set-budget needs an amount")
	}
	return withTracker(ctx, func(tr *finance.Tracker) error {
		if err := tr.UpdateBudget(ctx, c.amount.Amount); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Available balance: %s.\n", money(tr.Budget()))
		return nil
	})
}

// --- Balance Command ---

type balanceCmd struct{}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "show the available balance" }
func (*balanceCmd) Usage() string {
	return `fin balance

  Shows the available balance, the money set aside in goals and the total spent.
`
}

func (*balanceCmd) SetFlags(*flag.FlagSet) {}

func (*balanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withTracker(ctx, func(tr *finance.Tracker) error {
		printMarkdown(renderer.RenderBalance(tr.Snapshot(), currency()))
		return nil
	})
}
