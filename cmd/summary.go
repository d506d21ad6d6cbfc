package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
)

// summaryCmd displays the dashboard.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the dashboard" }
func (*summaryCmd) Usage() string {
	return `fin summary

  Displays the balance, the totals, the recent expenses, the top categories and
  the least funded saving goals.
`
}

func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (*summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withTracker(ctx, func(tr *finance.Tracker) error {
		printMarkdown(renderer.RenderSummary(finance.NewSummary(tr.Snapshot()), currency()))
		return nil
	})
}
