package finance

import (
	"context"
	"errors"
	"testing"
)

// memStore is a Store for tests, the store package cannot be imported here.
type memStore struct {
	doc    *Document
	saves  int
	failOn error // returned by Save when set
	block  bool  // Save waits for the context to be done
}

func (s *memStore) Load(ctx context.Context) (Document, error) {
	if s.doc == nil {
		d := DefaultDocument()
		s.doc = &d
	}
	return s.doc.Clone(), nil
}

func (s *memStore) Save(ctx context.Context, doc Document) error {
	if s.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if s.failOn != nil {
		return s.failOn
	}
	d := doc.Clone()
	s.doc = &d
	s.saves++
	return nil
}

var errDiskFull = errors.New("disk full")

// newTracker opens a tracker on a fresh memStore with the given budget.
func newTracker(t *testing.T, budget float64) (*Tracker, *memStore) {
	t.Helper()
	doc := DefaultDocument()
	doc.Budget = A(budget)
	st := &memStore{doc: &doc}
	tr, err := Open(context.Background(), st)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return tr, st
}

// assertAmount fails the test if got is not want.
func assertAmount(t *testing.T, what string, got Amount, want float64) {
	t.Helper()
	if !got.Equal(A(want)) {
		t.Errorf("%s = %s, want %v", what, got, want)
	}
}

func mustAddExpense(t *testing.T, tr *Tracker, name string, amount float64, category string, on Date) Expense {
	t.Helper()
	e, err := tr.AddExpense(context.Background(), NewExpense{Name: name, Amount: A(amount), Category: category, Date: on})
	if err != nil {
		t.Fatalf("AddExpense(%q, %v) failed: %v", name, amount, err)
	}
	return e
}

func mustAddGoal(t *testing.T, tr *Tracker, name string, target float64) SavingGoal {
	t.Helper()
	g, err := tr.AddSavingGoal(context.Background(), NewSavingGoal{Name: name, TargetAmount: A(target)})
	if err != nil {
		t.Fatalf("AddSavingGoal(%q, %v) failed: %v", name, target, err)
	}
	return g
}
