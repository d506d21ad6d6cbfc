package finance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestTracker_AddExpense_Budget(t *testing.T) {
	tests := []struct {
		budget, amount, want float64
	}{
		{100, 30, 70},
		{100, 100, 0},
		{100, 150, 0}, // clamped, never negative
		{0, 12.5, 0},
		{10.25, 0.25, 10},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v-%v", tt.budget, tt.amount), func(t *testing.T) {
			tr, _ := newTracker(t, tt.budget)
			mustAddExpense(t, tr, "coffee", tt.amount, "food", NewDate(2025, 3, 1))
			assertAmount(t, "budget", tr.Budget(), tt.want)
		})
	}
}

func TestTracker_AddExpense_Record(t *testing.T) {
	tr, st := newTracker(t, 0)
	e := mustAddExpense(t, tr, "  Bus pass ", 40, "transport", Date{})

	if e.ID == "" {
		t.Error("AddExpense() did not assign an id")
	}
	if e.Name != "Bus pass" {
		t.Errorf("Name = %q, want %q", e.Name, "Bus pass")
	}
	if e.Category != Transport {
		t.Errorf("Category = %q, want %q", e.Category, Transport)
	}
	if e.Date != Today() {
		t.Errorf("Date = %v, want today %v", e.Date, Today())
	}
	if st.saves != 1 {
		t.Errorf("store saved %d times, want 1", st.saves)
	}
	if got := st.doc.Expenses; len(got) != 1 || got[0].ID != e.ID {
		t.Errorf("stored expenses = %v, want the new expense", got)
	}

	other := mustAddExpense(t, tr, "Bus pass", 40, "transport", Date{})
	if other.ID == e.ID {
		t.Errorf("two expenses share the id %q", e.ID)
	}
}

func TestTracker_DeleteExpense_RestoresBudget(t *testing.T) {
	tr, _ := newTracker(t, 20)
	e := mustAddExpense(t, tr, "rent", 500, "housing", NewDate(2025, 3, 1))
	assertAmount(t, "budget after add", tr.Budget(), 0)

	if err := tr.DeleteExpense(context.Background(), e.ID); err != nil {
		t.Fatalf("DeleteExpense() failed: %v", err)
	}
	// the amount is given back in full, the clamping on add is not undone.
	assertAmount(t, "budget after delete", tr.Budget(), 500)
	if n := len(tr.Expenses()); n != 0 {
		t.Errorf("got %d expenses after delete, want 0", n)
	}
}

func TestTracker_UpdateExpense_Budget(t *testing.T) {
	tests := []struct {
		name                   string
		budget, from, to, want float64
	}{
		{"cheaper", 100, 30, 10, 90}, // 70 + 20
		{"more expensive", 100, 30, 50, 50},
		{"unchanged", 100, 30, 30, 70},
		{"clamped", 40, 30, 100, 0}, // 10 - 70
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := newTracker(t, tt.budget)
			e := mustAddExpense(t, tr, "groceries", tt.from, "food", NewDate(2025, 3, 1))
			e.Amount = A(tt.to)
			if err := tr.UpdateExpense(context.Background(), e); err != nil {
				t.Fatalf("UpdateExpense() failed: %v", err)
			}
			assertAmount(t, "budget", tr.Budget(), tt.want)
			got, _ := tr.Snapshot().Expense(e.ID)
			assertAmount(t, "amount", got.Amount, tt.to)
		})
	}
}

// TestTracker_ExpenseScenario follows one expense through its life cycle.
func TestTracker_ExpenseScenario(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTracker(t, 100)

	e := mustAddExpense(t, tr, "dinner", 30, "food", NewDate(2025, 5, 2))
	assertAmount(t, "budget after add", tr.Budget(), 70)

	e.Amount = A(50)
	if err := tr.UpdateExpense(ctx, e); err != nil {
		t.Fatalf("UpdateExpense() failed: %v", err)
	}
	assertAmount(t, "budget after edit", tr.Budget(), 50)

	if err := tr.DeleteExpense(ctx, e.ID); err != nil {
		t.Fatalf("DeleteExpense() failed: %v", err)
	}
	assertAmount(t, "budget after delete", tr.Budget(), 100)
}

func TestTracker_NotFound(t *testing.T) {
	ctx := context.Background()
	tr, st := newTracker(t, 10)

	tests := []struct {
		name string
		cmd  Command
		want error
	}{
		{"update expense", UpdateExpense{Expense: Expense{ID: "nope", Name: "x", Amount: A(1)}}, ErrExpenseNotFound},
		{"delete expense", DeleteExpense{ID: "nope"}, ErrExpenseNotFound},
		{"update goal", UpdateSavingGoal{Goal: SavingGoal{ID: "nope", Name: "x", TargetAmount: A(1)}}, ErrGoalNotFound},
		{"delete goal", DeleteSavingGoal{ID: "nope"}, ErrGoalNotFound},
		{"contribute", Contribute{GoalID: "nope", Amount: A(1)}, ErrGoalNotFound},
		{"purchase", PurchaseSavingGoal{GoalID: "nope"}, ErrGoalNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tr.Execute(ctx, tt.cmd)
			if !errors.Is(err, tt.want) {
				t.Errorf("Execute(%s) error = %v, want %v", tt.cmd.What(), err, tt.want)
			}
		})
	}
	if st.saves != 0 {
		t.Errorf("store saved %d times, want no write", st.saves)
	}
	assertAmount(t, "budget", tr.Budget(), 10)
}

func TestTracker_Validation(t *testing.T) {
	tests := []struct {
		name  string
		cmd   Command
		field string
		want  error
	}{
		{"empty name", AddExpense{Expense: NewExpense{Name: "  ", Amount: A(1)}}, "name", ErrEmptyName},
		{"zero amount", AddExpense{Expense: NewExpense{Name: "x", Amount: Zero}}, "amount", ErrInvalidAmount},
		{"negative amount", AddExpense{Expense: NewExpense{Name: "x", Amount: A(-3)}}, "amount", ErrInvalidAmount},
		{"zero target", AddSavingGoal{Goal: NewSavingGoal{Name: "bike", TargetAmount: Zero}}, "targetAmount", ErrInvalidTarget},
		{"goal without name", AddSavingGoal{Goal: NewSavingGoal{TargetAmount: A(5)}}, "name", ErrEmptyName},
		{"zero deposit", Deposit{Amount: Zero}, "amount", ErrInvalidAmount},
		{"negative budget", SetBudget{Amount: A(-1)}, "amount", ErrNegativeAmount},
		{"zero contribution", Contribute{GoalID: "g", Amount: Zero}, "amount", ErrInvalidAmount},
		{"update without id", UpdateExpense{Expense: Expense{Name: "x", Amount: A(1)}}, "id", ErrMissingID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, st := newTracker(t, 10)
			err := tr.Execute(context.Background(), tt.cmd)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Execute() error = %v, want %v", err, tt.want)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Execute() error %v is not a *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.field)
			}
			if st.saves != 0 {
				t.Errorf("store saved %d times, want no write", st.saves)
			}
		})
	}

	t.Run("name too long", func(t *testing.T) {
		tr, _ := newTracker(t, 10)
		long := make([]byte, maxNameLength+1)
		for i := range long {
			long[i] = 'a'
		}
		_, err := tr.AddExpense(context.Background(), NewExpense{Name: string(long), Amount: A(1)})
		if !errors.Is(err, ErrNameTooLong) {
			t.Errorf("AddExpense() error = %v, want %v", err, ErrNameTooLong)
		}
	})
}

func TestTracker_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	tr, st := newTracker(t, 100)
	e := mustAddExpense(t, tr, "book", 20, "shopping", NewDate(2025, 1, 1))
	g := mustAddGoal(t, tr, "trip", 300)
	before := tr.Snapshot()

	st.failOn = errDiskFull
	cmds := []Command{
		AddExpense{Expense: NewExpense{Name: "x", Amount: A(5)}},
		UpdateExpense{Expense: Expense{ID: e.ID, Name: "book", Amount: A(1), Category: Shopping, Date: e.Date}},
		DeleteExpense{ID: e.ID},
		AddSavingGoal{Goal: NewSavingGoal{Name: "car", TargetAmount: A(1000)}},
		UpdateSavingGoal{Goal: SavingGoal{ID: g.ID, Name: "holidays", TargetAmount: A(400)}},
		DeleteSavingGoal{ID: g.ID},
		Deposit{Amount: A(10)},
		SetBudget{Amount: A(1)},
		Contribute{GoalID: g.ID, Amount: A(10)},
	}
	for _, cmd := range cmds {
		err := tr.Execute(ctx, cmd)
		if !errors.Is(err, ErrPersistence) || !errors.Is(err, errDiskFull) {
			t.Errorf("Execute(%s) error = %v, want a persistence failure", cmd.What(), err)
		}
	}

	after := tr.Snapshot()
	if len(after.Expenses) != len(before.Expenses) || len(after.SavingGoals) != len(before.SavingGoals) {
		t.Fatalf("document changed after failed writes: %v -> %v", before, after)
	}
	assertAmount(t, "budget", after.Budget, 80)
	if after.Expenses[0] != before.Expenses[0] {
		t.Errorf("expense changed after failed write: %v", after.Expenses[0])
	}
	if after.SavingGoals[0].Name != "trip" {
		t.Errorf("goal changed after failed write: %v", after.SavingGoals[0])
	}
}

func TestTracker_WriteTimeout(t *testing.T) {
	st := &memStore{}
	tr, err := Open(context.Background(), st, WithWriteTimeout(10*time.Millisecond))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	st.block = true

	err = tr.AddToBudget(context.Background(), A(10))
	if !errors.Is(err, ErrPersistence) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("AddToBudget() error = %v, want a persistence timeout", err)
	}
	assertAmount(t, "budget", tr.Budget(), 0)
}

func TestTracker_Open(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		st := &memStore{}
		tr, err := Open(context.Background(), st)
		if err != nil {
			t.Fatalf("Open() failed: %v", err)
		}
		doc := tr.Snapshot()
		if len(doc.Expenses) != 0 || len(doc.SavingGoals) != 0 || !doc.Budget.IsZero() {
			t.Errorf("Open() on an empty store = %v, want the default document", doc)
		}
		if st.doc == nil {
			t.Error("the default document was not persisted")
		}
	})

	t.Run("invalid stored document", func(t *testing.T) {
		doc := DefaultDocument()
		doc.Budget = A(-5)
		_, err := Open(context.Background(), &memStore{doc: &doc})
		if !errors.Is(err, ErrPersistence) {
			t.Errorf("Open() error = %v, want %v", err, ErrPersistence)
		}
	})
}

func TestTracker_AccessorsReturnCopies(t *testing.T) {
	tr, _ := newTracker(t, 0)
	mustAddExpense(t, tr, "tea", 3, "food", NewDate(2025, 1, 1))
	mustAddGoal(t, tr, "laptop", 900)

	expenses := tr.Expenses()
	expenses[0].Name = "changed"
	goals := tr.SavingGoals()
	goals[0].CurrentAmount = A(900)

	if got := tr.Expenses()[0].Name; got != "tea" {
		t.Errorf("expense name = %q, the tracker leaked its state", got)
	}
	if got := tr.SavingGoals()[0].CurrentAmount; !got.IsZero() {
		t.Errorf("goal current amount = %s, the tracker leaked its state", got)
	}
}

func TestTracker_Budget(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTracker(t, 5)

	if err := tr.AddToBudget(ctx, A(10)); err != nil {
		t.Fatalf("AddToBudget() failed: %v", err)
	}
	assertAmount(t, "budget after deposit", tr.AvailableBalance(), 15)

	if err := tr.UpdateBudget(ctx, A(2.5)); err != nil {
		t.Fatalf("UpdateBudget() failed: %v", err)
	}
	assertAmount(t, "budget after set", tr.AvailableBalance(), 2.5)

	if err := tr.UpdateBudget(ctx, Zero); err != nil {
		t.Fatalf("UpdateBudget(0) failed: %v", err)
	}
	assertAmount(t, "budget after reset", tr.AvailableBalance(), 0)
}
