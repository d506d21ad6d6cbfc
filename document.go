package finance

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Document is the whole persisted state of the tracker.
//
// It is always read and written as a single JSON object:
//
//	{"expenses": [...], "savingGoals": [...], "budget": 0}
type Document struct {
	Expenses    []Expense
	SavingGoals []SavingGoal
	Budget      Amount
}

// DefaultDocument returns the document of an empty store.
func DefaultDocument() Document {
	return Document{
		Expenses:    []Expense{},
		SavingGoals: []SavingGoal{},
		Budget:      Zero,
	}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	c := Document{
		Expenses:    slices.Clone(d.Expenses),
		SavingGoals: slices.Clone(d.SavingGoals),
		Budget:      d.Budget,
	}
	if c.Expenses == nil {
		c.Expenses = []Expense{}
	}
	if c.SavingGoals == nil {
		c.SavingGoals = []SavingGoal{}
	}
	return c
}

// Validate checks every record and the document wide invariants.
func (d Document) Validate() error {
	seen := make(map[string]bool, len(d.Expenses))
	for i, e := range d.Expenses {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("expense #%d: %w", i, err)
		}
		if seen[e.ID] {
			return fmt.Errorf("expense #%d: %w", i, invalid("id", fmt.Errorf("%w %q", ErrDuplicateID, e.ID)))
		}
		seen[e.ID] = true
	}
	clear(seen)
	for i, g := range d.SavingGoals {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("saving goal #%d: %w", i, err)
		}
		if seen[g.ID] {
			return fmt.Errorf("saving goal #%d: %w", i, invalid("id", fmt.Errorf("%w %q", ErrDuplicateID, g.ID)))
		}
		seen[g.ID] = true
	}
	if d.Budget.IsNegative() {
		return invalid("budget", ErrNegativeAmount)
	}
	return nil
}

func (d *Document) expenseIndex(id string) int {
	return slices.IndexFunc(d.Expenses, func(e Expense) bool { return e.ID == id })
}

func (d *Document) goalIndex(id string) int {
	return slices.IndexFunc(d.SavingGoals, func(g SavingGoal) bool { return g.ID == id })
}

// Expense returns the expense with the given id.
func (d Document) Expense(id string) (Expense, bool) {
	i := d.expenseIndex(id)
	if i < 0 {
		return Expense{}, false
	}
	return d.Expenses[i], true
}

// SavingGoal returns the goal with the given id.
func (d Document) SavingGoal(id string) (SavingGoal, bool) {
	i := d.goalIndex(id)
	if i < 0 {
		return SavingGoal{}, false
	}
	return d.SavingGoals[i], true
}

// LookupSavingGoal finds a goal by id, or by name when no goal has that id.
// A name must match a single goal, case insensitive.
func (d Document) LookupSavingGoal(ref string) (SavingGoal, error) {
	if g, ok := d.SavingGoal(ref); ok {
		return g, nil
	}
	var found []SavingGoal
	for _, g := range d.SavingGoals {
		if strings.EqualFold(g.Name, strings.TrimSpace(ref)) {
			found = append(found, g)
		}
	}
	switch len(found) {
	case 0:
		return SavingGoal{}, fmt.Errorf("%w: %q", ErrGoalNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return SavingGoal{}, fmt.Errorf("%w: %d goals are named %q, use an id", ErrGoalNotFound, len(found), ref)
	}
}

// deduct removes amount from the budget, never below zero.
func (d *Document) deduct(amount Amount) {
	d.Budget = d.Budget.Sub(amount).Floor0()
}

// MarshalJSON implements json.Marshaler. Empty collections are written as [].
func (d Document) MarshalJSON() ([]byte, error) {
	d = d.Clone()
	var w jsonObjectWriter
	w.Append("expenses", d.Expenses)
	w.Append("savingGoals", d.SavingGoals)
	w.Append("budget", d.Budget)
	return w.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler.
//
// Missing collections read as empty and a missing budget reads as 0.
func (d *Document) UnmarshalJSON(data []byte) error {
	var j struct {
		Expenses    []Expense    `json:"expenses"`
		SavingGoals []SavingGoal `json:"savingGoals"`
		Budget      *Amount      `json:"budget"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	doc := Document{Expenses: j.Expenses, SavingGoals: j.SavingGoals}
	if j.Budget != nil {
		doc.Budget = *j.Budget
	}
	*d = doc.Clone()
	return nil
}
