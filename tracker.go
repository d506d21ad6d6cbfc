package finance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// DefaultWriteTimeout bounds every Store call made by a Tracker.
const DefaultWriteTimeout = 10 * time.Second

// Tracker owns the finance document.
//
// Readers get copies, and the only way to change the document is to execute a
// [Command]. Every command is written through the Store before it becomes
// visible: if the write fails the in-memory document is left unchanged.
type Tracker struct {
	mu      sync.Mutex
	store   Store
	doc     Document
	timeout time.Duration
	log     *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithWriteTimeout sets the timeout applied to each Store call.
func WithWriteTimeout(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithLogger sets the logger of the tracker.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// Open loads the document from store and returns a Tracker serving it.
func Open(ctx context.Context, store Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store:   store,
		timeout: DefaultWriteTimeout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	doc, err := store.Load(ctx)
	if err != nil {
		t.log.Error("cannot load document", "error", err)
		return nil, fmt.Errorf("%w: loading document: %w", ErrPersistence, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: stored document is invalid: %w", ErrPersistence, err)
	}
	t.doc = doc.Clone()
	return t, nil
}

// Execute validates cmd, applies it to a copy of the document, saves that copy
// and only then makes it the current document.
func (t *Tracker) Execute(ctx context.Context, cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.doc.Clone()
	if err := cmd.apply(&next); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		// commands are expected to keep the document valid.
		return fmt.Errorf("%s would corrupt the document: %w", cmd.What(), err)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	if err := t.store.Save(ctx, next); err != nil {
		t.log.Error("cannot save document", "command", cmd.What(), "error", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s: store did not answer within %v: %w", ErrPersistence, cmd.What(), t.timeout, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrPersistence, cmd.What(), err)
	}
	t.doc = next
	t.log.Debug("command committed", "command", cmd.What(), "budget", next.Budget.String())
	return nil
}

// Snapshot returns a copy of the current document.
func (t *Tracker) Snapshot() Document {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.doc.Clone()
}

// Expenses returns a copy of the expenses, in insertion order.
func (t *Tracker) Expenses() []Expense { return t.Snapshot().Expenses }

// SavingGoals returns a copy of the saving goals, in insertion order.
func (t *Tracker) SavingGoals() []SavingGoal { return t.Snapshot().SavingGoals }

// Budget returns the shared pool of unassigned funds.
func (t *Tracker) Budget() Amount {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.doc.Budget
}

// AvailableBalance is the budget, a pure read.
func (t *Tracker) AvailableBalance() Amount { return t.Budget() }

// Export writes the current document as JSON.
func (t *Tracker) Export(w io.Writer) error { return Export(w, t.Snapshot()) }

// AddExpense records an expense and returns it.
func (t *Tracker) AddExpense(ctx context.Context, e NewExpense) (Expense, error) {
	cmd := AddExpense{ID: newID(), Expense: e}
	if err := t.Execute(ctx, cmd); err != nil {
		return Expense{}, err
	}
	created, _ := t.Snapshot().Expense(cmd.ID)
	return created, nil
}

// UpdateExpense replaces an existing expense.
func (t *Tracker) UpdateExpense(ctx context.Context, e Expense) error {
	return t.Execute(ctx, UpdateExpense{Expense: e})
}

// DeleteExpense removes an expense.
func (t *Tracker) DeleteExpense(ctx context.Context, id string) error {
	return t.Execute(ctx, DeleteExpense{ID: id})
}

// AddSavingGoal creates a goal and returns it.
func (t *Tracker) AddSavingGoal(ctx context.Context, g NewSavingGoal) (SavingGoal, error) {
	cmd := AddSavingGoal{ID: newID(), Goal: g}
	if err := t.Execute(ctx, cmd); err != nil {
		return SavingGoal{}, err
	}
	created, _ := t.Snapshot().SavingGoal(cmd.ID)
	return created, nil
}

// UpdateSavingGoal edits the name, target and deadline of a goal.
func (t *Tracker) UpdateSavingGoal(ctx context.Context, g SavingGoal) error {
	return t.Execute(ctx, UpdateSavingGoal{Goal: g})
}

// DeleteSavingGoal removes a goal.
func (t *Tracker) DeleteSavingGoal(ctx context.Context, id string) error {
	return t.Execute(ctx, DeleteSavingGoal{ID: id})
}

// AddToBudget deposits money into the budget.
func (t *Tracker) AddToBudget(ctx context.Context, amount Amount) error {
	return t.Execute(ctx, Deposit{Amount: amount})
}

// UpdateBudget sets the budget.
func (t *Tracker) UpdateBudget(ctx context.Context, amount Amount) error {
	return t.Execute(ctx, SetBudget{Amount: amount})
}

// ContributeToSavingGoal earmarks amount for a goal.
func (t *Tracker) ContributeToSavingGoal(ctx context.Context, goalID string, amount Amount) error {
	return t.Execute(ctx, Contribute{GoalID: goalID, Amount: amount})
}

// PurchaseSavingGoal spends a fully funded goal and returns the recorded expense.
func (t *Tracker) PurchaseSavingGoal(ctx context.Context, goalID string, on Date) (Expense, error) {
	cmd := PurchaseSavingGoal{GoalID: goalID, ExpenseID: newID(), Date: on}
	if err := t.Execute(ctx, cmd); err != nil {
		return Expense{}, err
	}
	created, _ := t.Snapshot().Expense(cmd.ExpenseID)
	return created, nil
}
