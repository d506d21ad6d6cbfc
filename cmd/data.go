package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/finance"
	"github.com/etnz/finance/logger"
)

// --- Export Command ---

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the whole document as JSON" }
func (*exportCmd) Usage() string {
	return `fin export [-o <file>]

  Writes the expenses, the saving goals and the balance as a JSON document.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, the standard output by default")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withTracker(ctx, func(tr *finance.Tracker) error {
		if c.output == "" {
			return tr.Export(stdout)
		}
		f, err := os.Create(c.output)
		if err != nil {
			return fmt.Errorf("cannot create export file: %w", err)
		}
		if err := tr.Export(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Info("document exported", logger.FieldOperation, logger.OpExport, logger.FieldPath, c.output)
		fmt.Fprintf(stdout, "Exported to %s.\n", c.output)
		return nil
	})
}

// --- Import Command ---

type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the whole document with a JSON file" }
func (*importCmd) Usage() string {
	return `fin import -i <file>

  Replaces the expenses, the saving goals and the balance with the content of a
  JSON document, as written by 'fin export'. Nothing is written if any record is
  invalid.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Input file")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.input == "" {
		return usage(f, "import needs an input file")
	}
	in, err := os.Open(c.input)
	if err != nil {
		return fail(err)
	}
	defer in.Close()

	b, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer b.Close()

	doc, err := finance.ImportInto(ctx, b, in)
	if err != nil {
		return fail(err)
	}
	log.Info("document imported", logger.FieldOperation, logger.OpImport, logger.FieldBackend, b.Name())
	fmt.Fprintf(stdout, "Imported %d expenses and %d saving goals, available balance: %s.\n",
		len(doc.Expenses), len(doc.SavingGoals), money(doc.Budget))
	return subcommands.ExitSuccess
}
