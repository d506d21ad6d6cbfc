package finance

import (
	"fmt"

	"github.com/google/uuid"
)

// CommandType identifies a mutation of the tracker.
type CommandType string

// Command types, one per mutation.
const (
	CmdAddExpense       CommandType = "add-expense"
	CmdUpdateExpense    CommandType = "update-expense"
	CmdDeleteExpense    CommandType = "delete-expense"
	CmdAddSavingGoal    CommandType = "add-saving-goal"
	CmdUpdateSavingGoal CommandType = "update-saving-goal"
	CmdDeleteSavingGoal CommandType = "delete-saving-goal"
	CmdDeposit          CommandType = "deposit"
	CmdSetBudget        CommandType = "set-budget"
	CmdContribute       CommandType = "contribute"
	CmdPurchase         CommandType = "purchase-saving-goal"
)

// Command is a mutation of the tracker document.
//
// Commands are executed by [Tracker.Execute]. The set of commands is closed.
type Command interface {
	What() CommandType
	// Validate checks the command on its own, without looking at the document.
	Validate() error
	// apply mutates the document in place.
	apply(d *Document) error
}

// newID generates record identifiers.
var newID = uuid.NewString

// AddExpense records a new expense and deducts it from the budget.
type AddExpense struct {
	ID      string // ID of the new expense, generated when empty.
	Expense NewExpense
}

func (c AddExpense) What() CommandType { return CmdAddExpense }
func (c AddExpense) Validate() error   { return c.Expense.normalize().Validate() }

func (c AddExpense) apply(d *Document) error {
	e := c.Expense.normalize()
	id := c.ID
	if id == "" {
		id = newID()
	}
	if d.expenseIndex(id) >= 0 {
		return invalid("id", fmt.Errorf("%w %q", ErrDuplicateID, id))
	}
	d.Expenses = append(d.Expenses, Expense{
		ID:       id,
		Name:     e.Name,
		Amount:   e.Amount,
		Category: Category(e.Category),
		Date:     e.Date,
	})
	d.deduct(e.Amount)
	return nil
}

// UpdateExpense replaces an expense and moves the amount difference to or
// from the budget.
type UpdateExpense struct {
	Expense Expense
}

func (c UpdateExpense) What() CommandType { return CmdUpdateExpense }

func (c UpdateExpense) Validate() error {
	e := c.Expense.normalize()
	if e.ID == "" {
		return invalid("id", ErrMissingID)
	}
	return validateExpenseFields(e.Name, e.Amount)
}

func (c UpdateExpense) apply(d *Document) error {
	e := c.Expense.normalize()
	i := d.expenseIndex(e.ID)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrExpenseNotFound, e.ID)
	}
	delta := d.Expenses[i].Amount.Sub(e.Amount)
	if delta.IsPositive() {
		d.Budget = d.Budget.Add(delta)
	} else {
		d.deduct(delta.Neg())
	}
	d.Expenses[i] = e
	return nil
}

// DeleteExpense removes an expense and gives its amount back to the budget.
type DeleteExpense struct {
	ID string
}

func (c DeleteExpense) What() CommandType { return CmdDeleteExpense }

func (c DeleteExpense) Validate() error {
	if c.ID == "" {
		return invalid("id", ErrMissingID)
	}
	return nil
}

func (c DeleteExpense) apply(d *Document) error {
	i := d.expenseIndex(c.ID)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrExpenseNotFound, c.ID)
	}
	d.Budget = d.Budget.Add(d.Expenses[i].Amount)
	d.Expenses = append(d.Expenses[:i], d.Expenses[i+1:]...)
	return nil
}

// AddSavingGoal creates an unfunded saving goal.
type AddSavingGoal struct {
	ID   string // ID of the new goal, generated when empty.
	Goal NewSavingGoal
}

func (c AddSavingGoal) What() CommandType { return CmdAddSavingGoal }
func (c AddSavingGoal) Validate() error   { return c.Goal.Validate() }

func (c AddSavingGoal) apply(d *Document) error {
	id := c.ID
	if id == "" {
		id = newID()
	}
	if d.goalIndex(id) >= 0 {
		return invalid("id", fmt.Errorf("%w %q", ErrDuplicateID, id))
	}
	d.SavingGoals = append(d.SavingGoals, SavingGoal{
		ID:            id,
		Name:          c.Goal.Name,
		TargetAmount:  c.Goal.TargetAmount,
		CurrentAmount: Zero, // whatever the caller asked for
		Deadline:      c.Goal.Deadline,
	}.normalize())
	return nil
}

// UpdateSavingGoal edits the name, target and deadline of a goal.
//
// The current amount of the goal is kept, whatever value the command holds:
// it only changes through Contribute and PurchaseSavingGoal.
type UpdateSavingGoal struct {
	Goal SavingGoal
}

func (c UpdateSavingGoal) What() CommandType { return CmdUpdateSavingGoal }

func (c UpdateSavingGoal) Validate() error {
	if c.Goal.ID == "" {
		return invalid("id", ErrMissingID)
	}
	if err := validateName(c.Goal.Name); err != nil {
		return err
	}
	if !c.Goal.TargetAmount.IsPositive() {
		return invalid("targetAmount", ErrInvalidTarget)
	}
	return nil
}

func (c UpdateSavingGoal) apply(d *Document) error {
	i := d.goalIndex(c.Goal.ID)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrGoalNotFound, c.Goal.ID)
	}
	g := c.Goal.normalize()
	g.CurrentAmount = d.SavingGoals[i].CurrentAmount
	if g.TargetAmount.LessThan(g.CurrentAmount) {
		return invalid("targetAmount", ErrTargetBelowCurrent)
	}
	d.SavingGoals[i] = g
	return nil
}

// DeleteSavingGoal removes a goal. The budget is untouched.
type DeleteSavingGoal struct {
	ID string
}

func (c DeleteSavingGoal) What() CommandType { return CmdDeleteSavingGoal }

func (c DeleteSavingGoal) Validate() error {
	if c.ID == "" {
		return invalid("id", ErrMissingID)
	}
	return nil
}

func (c DeleteSavingGoal) apply(d *Document) error {
	i := d.goalIndex(c.ID)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrGoalNotFound, c.ID)
	}
	d.SavingGoals = append(d.SavingGoals[:i], d.SavingGoals[i+1:]...)
	return nil
}

// Deposit adds money to the budget.
type Deposit struct {
	Amount Amount
}

func (c Deposit) What() CommandType { return CmdDeposit }

func (c Deposit) Validate() error {
	if !c.Amount.IsPositive() {
		return invalid("amount", ErrInvalidAmount)
	}
	return nil
}

func (c Deposit) apply(d *Document) error {
	d.Budget = d.Budget.Add(c.Amount)
	return nil
}

// SetBudget sets the budget to an absolute value.
type SetBudget struct {
	Amount Amount
}

func (c SetBudget) What() CommandType { return CmdSetBudget }

func (c SetBudget) Validate() error {
	if c.Amount.IsNegative() {
		return invalid("amount", ErrNegativeAmount)
	}
	return nil
}

func (c SetBudget) apply(d *Document) error {
	d.Budget = c.Amount
	return nil
}

// Contribute earmarks money for a goal. The budget is untouched.
type Contribute struct {
	GoalID string
	Amount Amount
}

func (c Contribute) What() CommandType { return CmdContribute }

func (c Contribute) Validate() error {
	if c.GoalID == "" {
		return invalid("id", ErrMissingID)
	}
	if !c.Amount.IsPositive() {
		return invalid("amount", ErrInvalidAmount)
	}
	return nil
}

func (c Contribute) apply(d *Document) error {
	i := d.goalIndex(c.GoalID)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrGoalNotFound, c.GoalID)
	}
	g := &d.SavingGoals[i]
	current := g.CurrentAmount.Add(c.Amount)
	if current.GreaterThan(g.TargetAmount) {
		return fmt.Errorf("%w: %s saved out of %s", ErrContributionExceedsTarget, current, g.TargetAmount)
	}
	g.CurrentAmount = current
	return nil
}

// PurchaseSavingGoal spends a fully funded goal.
//
// The money earmarked for the goal goes back to the budget, then an expense of
// the goal's target amount is recorded in the Savings category and the goal
// starts over from zero.
type PurchaseSavingGoal struct {
	GoalID    string
	ExpenseID string // ID of the recorded expense, generated when empty.
	Date      Date   // Date of the recorded expense, today when zero.
}

func (c PurchaseSavingGoal) What() CommandType { return CmdPurchase }

func (c PurchaseSavingGoal) Validate() error {
	if c.GoalID == "" {
		return invalid("id", ErrMissingID)
	}
	return nil
}

func (c PurchaseSavingGoal) apply(d *Document) error {
	i := d.goalIndex(c.GoalID)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrGoalNotFound, c.GoalID)
	}
	g := &d.SavingGoals[i]
	if !g.Status(d.Budget).FullyFunded {
		return fmt.Errorf("%w: %q", ErrGoalNotFunded, g.Name)
	}
	d.Budget = d.Budget.Add(g.CurrentAmount)
	g.CurrentAmount = Zero

	return AddExpense{
		ID: c.ExpenseID,
		Expense: NewExpense{
			Name:     g.Name,
			Amount:   g.TargetAmount,
			Category: Savings.String(),
			Date:     c.Date,
		},
	}.apply(d)
}
