package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
)

// --- Add Goal Command ---

type addGoalCmd struct {
	name     string
	target   amountFlag
	deadline dateFlag
}

func (*addGoalCmd) Name() string     { return "add-goal" }
func (*addGoalCmd) Synopsis() string { return "create a saving goal" }
func (*addGoalCmd) Usage() string {
	return `fin add-goal -n <name> -t <target> [-deadline <date>]

  Creates a saving goal with nothing set aside yet.
`
}

func (c *addGoalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Name of the goal")
	f.Var(&c.target, "t", "Target amount")
	f.Var(&c.deadline, "deadline", "Optional deadline")
}

func (c *addGoalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || !c.target.set {
		return usage(f, "add-goal needs a name and a target")
	}
	return withTracker(ctx, func(tr *finance.Tracker) error {
		g, err := tr.AddSavingGoal(ctx, finance.NewSavingGoal{
			Name:         c.name,
			TargetAmount: c.target.Amount,
			Deadline:     c.deadline.Date,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Created goal %q of %s (id %s).\n", g.Name, money(g.TargetAmount), g.ID)
		return nil
	})
}

// --- Edit Goal Command ---

type editGoalCmd struct {
	ref        string
	name       string
	target     amountFlag
	deadline   dateFlag
	noDeadline bool
}

func (*editGoalCmd) Name() string     { return "edit-goal" }
func (*editGoalCmd) Synopsis() string { return "change a saving goal" }
func (*editGoalCmd) Usage() string {
	return `fin edit-goal -id <goal> [-n <name>] [-t <target>] [-deadline <date> | -no-deadline]

  Changes the given fields of a saving goal. The money set aside is unchanged,
  and the target cannot go below it.
`
}

func (c *editGoalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ref, "id", "", "Id or name of the goal")
	f.StringVar(&c.name, "n", "", "New name")
	f.Var(&c.target, "t", "New target amount")
	f.Var(&c.deadline, "deadline", "New deadline")
	f.BoolVar(&c.noDeadline, "no-deadline", false, "Remove the deadline")
}

func (c *editGoalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ref == "" {
		return usage(f, "edit-goal needs the goal")
	}
	set := visited(f)
	if set["deadline"] && c.noDeadline {
		return usage(f, "-deadline and -no-deadline cannot be used together")
	}
	return withTracker(ctx, func(tr *finance.Tracker) error {
		g, err := tr.Snapshot().LookupSavingGoal(c.ref)
		if err != nil {
			return err
		}
		if set["n"] {
			g.Name = c.name
		}
		if set["t"] {
			g.TargetAmount = c.target.Amount
		}
		if set["deadline"] {
			g.Deadline = c.deadline.Date
		}
		if c.noDeadline {
			g.Deadline = finance.Date{}
		}
		if err := tr.UpdateSavingGoal(ctx, g); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Updated goal %q.\n", g.Name)
		return nil
	})
}

// --- Remove Goal Command ---

type rmGoalCmd struct {
	ref string
}

func (*rmGoalCmd) Name() string     { return "rm-goal" }
func (*rmGoalCmd) Synopsis() string { return "delete a saving goal" }
func (*rmGoalCmd) Usage() string {
	return `fin rm-goal -id <goal>

  Deletes a saving goal. The money set aside for it is not returned to the balance.
`
}

func (c *rmGoalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ref, "id", "", "Id or name of the goal")
}

func (c *rmGoalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ref == "" {
		return usage(f, "rm-goal needs the goal")
	}
	return withTracker(ctx, func(tr *finance.Tracker) error {
		g, err := tr.Snapshot().LookupSavingGoal(c.ref)
		if err != nil {
			return err
		}
		if err := tr.DeleteSavingGoal(ctx, g.ID); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Deleted goal %q.\n", g.Name)
		return nil
	})
}

// --- Contribute Command ---

type contributeCmd struct {
	ref    string
	amount amountFlag
}

func (*contributeCmd) Name() string     { return "contribute" }
func (*contributeCmd) Synopsis() string { return "set money aside for a saving goal" }
func (*contributeCmd) Usage() string {
	return `fin contribute -id <goal> -a <amount>

  Sets money aside for a saving goal, up to its target. The available balance is
  not changed.
`
}

func (c *contributeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ref, "id", "", "Id or name of the goal")
	f.Var(&c.amount, "a", "Amount to set aside")
}

func (c *contributeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ref == "" || !c.amount.set {
		return usage(f, "contribute needs the goal and an amount")
	}
	return withTracker(ctx, func(tr *finance.Tracker) error {
		g, err := tr.Snapshot().LookupSavingGoal(c.ref)
		if err != nil {
			return err
		}
		if err := tr.ContributeToSavingGoal(ctx, g.ID, c.amount.Amount); err != nil {
			return err
		}
		g, _ = tr.Snapshot().SavingGoal(g.ID)
		fmt.Fprintf(stdout, "%s set aside for %q: %s of %s.\n",
			money(c.amount.Amount), g.Name, money(g.CurrentAmount), money(g.TargetAmount))
		return nil
	})
}

// --- Buy Goal Command ---

type buyGoalCmd struct {
	ref  string
	date dateFlag
}

func (*buyGoalCmd) Name() string     { return "buy-goal" }
func (*buyGoalCmd) Synopsis() string { return "purchase a fully funded saving goal" }
func (*buyGoalCmd) Usage() string {
	return `fin buy-goal -id <goal> [-d <date>]

  Purchases a fully funded goal: its savings return to the balance, then an
  expense of the full target is recorded in the Savings category.
`
}

func (c *buyGoalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ref, "id", "", "Id or name of the goal")
	f.Var(&c.date, "d", "Date of the purchase, today by default")
}

func (c *buyGoalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ref == "" {
		return usage(f, "buy-goal needs the goal")
	}
	return withTracker(ctx, func(tr *finance.Tracker) error {
		g, err := tr.Snapshot().LookupSavingGoal(c.ref)
		if err != nil {
			return err
		}
		e, err := tr.PurchaseSavingGoal(ctx, g.ID, c.date.Date)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Bought %q for %s.\n", e.Name, money(e.Amount))
		return nil
	})
}

// --- Goals Command ---

type goalsCmd struct{}

func (*goalsCmd) Name() string     { return "goals" }
func (*goalsCmd) Synopsis() string { return "list saving goals, least funded first" }
func (*goalsCmd) Usage() string {
	return `fin goals

  Lists the saving goals with their progress. The available balance counts for
  every goal.
`
}

func (*goalsCmd) SetFlags(*flag.FlagSet) {}

func (*goalsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withTracker(ctx, func(tr *finance.Tracker) error {
		doc := tr.Snapshot()
		printMarkdown(renderer.RenderGoals(doc.SavingGoals, doc.Budget, currency()))
		return nil
	})
}
