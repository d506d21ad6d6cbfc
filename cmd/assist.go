package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/etnz/finance"
	"github.com/etnz/finance/agent"
	"github.com/etnz/finance/logger"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat with the AI assistant about your budget" }
func (*assistCmd) Usage() string {
	return `fin assist [<question>]

  Starts an interactive session with the AI assistant. It reads your expenses,
  balance and goals but never changes them. Needs Gemini credentials, see
  'fin topic config'.
`
}

func (*assistCmd) SetFlags(*flag.FlagSet) {}

func (*assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	return withTracker(ctx, func(tr *finance.Tracker) error {
		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			return fmt.Errorf("cannot initialize Gemini's client: %w", err)
		}

		model := settings.GeminiModel
		log.Debug("starting assistant", logger.FieldModel, model)
		a := agent.New(stdout, stdin, model, log,
			agent.NewAdvisor(tr, currency(), model),
			agent.NewShopper(model),
		)
		a.Print = func(w io.Writer, answer string) { renderMarkdown(w, answer+"\n") }

		if err := a.Run(ctx, client, prompts...); err != nil {
			return fmt.Errorf("agent failed: %w", err)
		}
		return nil
	})
}
