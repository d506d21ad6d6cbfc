package cmd

import (
	"flag"

	"github.com/etnz/finance"
)

// amountFlag is a flag.Value holding an exact amount.
type amountFlag struct {
	finance.Amount
	set bool
}

func (a *amountFlag) String() string {
	if a == nil || !a.set {
		return ""
	}
	return a.Amount.String()
}

func (a *amountFlag) Set(s string) error {
	v, err := finance.ParseAmount(s)
	if err != nil {
		return err
	}
	a.Amount, a.set = v, true
	return nil
}

// dateFlag is a flag.Value holding a day, in any format accepted by finance.ParseDate.
type dateFlag struct {
	finance.Date
}

func (d *dateFlag) String() string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.Date.String()
}

func (d *dateFlag) Set(s string) error {
	v, err := finance.ParseDate(s)
	if err != nil {
		return err
	}
	d.Date = v
	return nil
}

// visited returns the names of the flags set on the command line.
func visited(f *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return set
}
