// Command fin tracks expenses, an available balance and saving goals.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"

	"github.com/etnz/finance/cmd"
	"github.com/etnz/finance/config"
	"github.com/etnz/finance/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	cmd.Init(flag.CommandLine, cfg)

	// exits when the shell asks for completions.
	complete.Complete("fin", cmd.Completion())

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)
	flag.Parse()

	cfg = cmd.Settings()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	log := logger.New(logger.Config{Level: level, Format: cfg.LogFormat, Component: logger.ComponentApp})
	logger.SetDefault(log)
	cmd.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
