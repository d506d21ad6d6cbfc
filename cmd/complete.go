package cmd

import (
	"context"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/etnz/finance"
	"github.com/etnz/finance/docs"
)

// Completion describes the fin command line for shell completion.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub: make(map[string]*complete.Command),
		Flags: map[string]complete.Predictor{
			"data-file": predict.Files("*.json"),
			"backend":   predict.Set{"auto", "file", "kv"},
			"currency":  predict.Something,
		},
	}
	for _, g := range groups() {
		for _, c := range g.commands {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			c.SetFlags(fs)

			sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
			fs.VisitAll(func(f *flag.Flag) {
				sub.Flags[f.Name] = predictFlag(c.Name(), f)
			})
			if c.Name() == "topic" {
				sub.Args = predict.Set(topicNames())
			}
			root.Sub[c.Name()] = sub
		}
	}
	return root
}

func predictFlag(command string, f *flag.Flag) complete.Predictor {
	if _, ok := f.Value.(interface{ IsBoolFlag() bool }); ok {
		return nil
	}
	switch {
	case f.Name == "c":
		return predict.Set(categoryNames())
	case f.Name == "id" && (strings.Contains(command, "goal") || command == "contribute"):
		return complete.PredictFunc(goalNames)
	case f.Name == "i" || f.Name == "o":
		return predict.Files("*.json")
	default:
		return predict.Something
	}
}

func categoryNames() []string {
	var names []string
	for _, c := range finance.Categories() {
		names = append(names, c.String())
	}
	return names
}

func topicNames() []string {
	topics, _ := docs.GetAllTopics()
	return append(topics, "*")
}

// goalNames predicts the names of the stored goals.
func goalNames(prefix string) []string {
	// completion must not create the storage.
	if !exists(settings.DataFile) && !exists(settings.KVPath) {
		return nil
	}
	b, err := openStore(context.Background())
	if err != nil {
		return nil
	}
	defer b.Close()
	doc, err := b.Load(context.Background())
	if err != nil {
		return nil
	}
	var names []string
	for _, g := range doc.SavingGoals {
		if strings.HasPrefix(strings.ToLower(g.Name), strings.ToLower(prefix)) {
			names = append(names, g.Name)
		}
	}
	return names
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
