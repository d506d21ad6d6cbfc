package finance

import (
	"encoding/json"
	"strings"
)

// SavingGoal is a named target amount with the money earmarked for it so far.
type SavingGoal struct {
	ID            string
	Name          string
	TargetAmount  Amount // TargetAmount is strictly positive.
	CurrentAmount Amount // CurrentAmount is in [0, TargetAmount].
	Deadline      Date   // Deadline is optional, the zero Date means none.
}

// NewSavingGoal holds the caller provided fields of a goal to be created.
type NewSavingGoal struct {
	Name         string
	TargetAmount Amount
	// CurrentAmount is ignored: a new goal always starts unfunded.
	CurrentAmount Amount
	Deadline      Date
}

// Validate checks the fields a user can enter.
func (g NewSavingGoal) Validate() error {
	if err := validateName(g.Name); err != nil {
		return err
	}
	if !g.TargetAmount.IsPositive() {
		return invalid("targetAmount", ErrInvalidTarget)
	}
	return nil
}

// Validate checks a stored goal.
func (g SavingGoal) Validate() error {
	if g.ID == "" {
		return invalid("id", ErrMissingID)
	}
	if err := validateName(g.Name); err != nil {
		return err
	}
	if !g.TargetAmount.IsPositive() {
		return invalid("targetAmount", ErrInvalidTarget)
	}
	if g.CurrentAmount.IsNegative() {
		return invalid("currentAmount", ErrNegativeAmount)
	}
	if g.CurrentAmount.GreaterThan(g.TargetAmount) {
		return invalid("currentAmount", ErrCurrentExceedsTarget)
	}
	return nil
}

// GoalStatus holds the values derived from a goal and the shared budget.
type GoalStatus struct {
	TotalAvailable Amount  // current amount plus the whole budget
	Progress       Percent // min(100, round(TotalAvailable/Target*100))
	Remaining      Amount  // max(0, Target-TotalAvailable)
	FullyFunded    bool
}

// Status computes the goal status given the shared budget.
//
// The whole budget is counted as available to every goal, it is not
// partitioned between them.
func (g SavingGoal) Status(budget Amount) GoalStatus {
	total := g.CurrentAmount.Add(budget)
	return GoalStatus{
		TotalAvailable: total,
		Progress:       PercentOf(total, g.TargetAmount),
		Remaining:      g.TargetAmount.Sub(total).Floor0(),
		FullyFunded:    g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) || total.GreaterThanOrEqual(g.TargetAmount),
	}
}

func (g SavingGoal) normalize() SavingGoal {
	g.Name = strings.TrimSpace(g.Name)
	return g
}

// MarshalJSON implements json.Marshaler, the deadline is omitted when unset.
func (g SavingGoal) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", g.ID)
	w.Append("name", g.Name)
	w.Append("targetAmount", g.TargetAmount)
	w.Append("currentAmount", g.CurrentAmount)
	w.Optional("deadline", g.Deadline)
	return w.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *SavingGoal) UnmarshalJSON(data []byte) error {
	var j struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		TargetAmount  Amount `json:"targetAmount"`
		CurrentAmount Amount `json:"currentAmount"`
		Deadline      Date   `json:"deadline"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*g = SavingGoal{
		ID:            j.ID,
		Name:          j.Name,
		TargetAmount:  j.TargetAmount,
		CurrentAmount: j.CurrentAmount,
		Deadline:      j.Deadline,
	}
	return nil
}

// MarshalJSON writes the status fields, used when reports are exported.
func (s GoalStatus) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("totalAvailable", s.TotalAvailable)
	w.Append("progress", int(s.Progress))
	w.Append("remaining", s.Remaining)
	w.Append("fullyFunded", s.FullyFunded)
	return w.MarshalJSON()
}
