// Package cmd implements the fin command line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"golang.org/x/term"

	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/etnz/finance/logger"
	"github.com/etnz/finance/store"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	settings config.Config
	log      = logger.Discard()

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

// group lists the subcommands of a help section.
type group struct {
	name     string
	commands []subcommands.Command
}

func groups() []group {
	return []group{
		{"expenses", []subcommands.Command{&addExpenseCmd{}, &editExpenseCmd{}, &rmExpenseCmd{}, &expensesCmd{}}},
		{"goals", []subcommands.Command{&addGoalCmd{}, &editGoalCmd{}, &rmGoalCmd{}, &contributeCmd{}, &buyGoalCmd{}, &goalsCmd{}}},
		{"budget", []subcommands.Command{&depositCmd{}, &setBudgetCmd{}, &balanceCmd{}}},
		{"reports", []subcommands.Command{&summaryCmd{}}},
		{"data", []subcommands.Command{&exportCmd{}, &importCmd{}}},
		{"help", []subcommands.Command{&topicCmd{}, &assistCmd{}}},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups() {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
}

// Init binds the global flags to fs, with cfg as defaults: flags override the environment.
func Init(fs *flag.FlagSet, cfg config.Config) {
	settings = cfg
	fs.StringVar(&settings.DataFile, "data-file", cfg.DataFile, "Path to the JSON data file of the file backend")
	fs.StringVar(&settings.Backend, "backend", cfg.Backend, "Storage backend: auto, file or kv")
	fs.StringVar(&settings.Currency, "currency", cfg.Currency, "Currency used to display amounts")
}

// Settings returns the configuration once the global flags are parsed.
func Settings() config.Config { return settings }

// SetLogger sets the logger used by the commands.
func SetLogger(l *logger.Logger) { log = l.WithComponent(logger.ComponentCLI) }

func currency() string { return strings.ToUpper(settings.Currency) }

func money(a finance.Amount) string { return a.Format(currency()) }

// openStore opens the configured backend. The caller must close it.
func openStore(ctx context.Context) (store.Backend, error) {
	b, err := store.Open(ctx, settings, log)
	if err != nil {
		return nil, fmt.Errorf("cannot open storage: %w", err)
	}
	return b, nil
}

// withTracker runs f on a tracker over the configured backend.
func withTracker(ctx context.Context, f func(*finance.Tracker) error) subcommands.ExitStatus {
	b, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer b.Close()

	tr, err := finance.Open(ctx, b,
		finance.WithWriteTimeout(settings.WriteTimeout),
		finance.WithLogger(log.WithComponent(logger.ComponentTracker).Logger),
	)
	if err != nil {
		return fail(fmt.Errorf("cannot load %s: %w", b.Name(), err))
	}
	if err := f(tr); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// usage prints the usage of the command and fails.
func usage(f *flag.FlagSet, format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(stderr, format+"\n", args...)
	f.Usage()
	return subcommands.ExitUsageError
}

// printMarkdown renders md for the terminal, or prints it raw when the output is not one.
func printMarkdown(md string) {
	renderMarkdown(stdout, md)
}

func renderMarkdown(w io.Writer, md string) {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		out, err := glamour.Render(md, "auto")
		if err == nil {
			fmt.Fprint(w, out)
			return
		}
		log.Warn("cannot render markdown", logger.FieldError, err)
	}
	fmt.Fprint(w, md)
}
