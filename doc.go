// Package finance tracks personal expenses, saving goals and a shared budget.
//
// The whole state is a single [Document]:
//   - Expenses: money spent, each one deducted from the budget when recorded
//     and given back when deleted.
//   - Saving goals: named target amounts with money earmarked for them
//     through contributions.
//   - Budget: the pool of unassigned funds. It never goes below zero and it
//     counts as available to every goal at once.
//
// A [Tracker] owns the document. It is read through accessors returning copies
// and changed only by executing a [Command], which is written through a [Store]
// before it becomes visible.
//
// This package serves as the foundational logic for the `fin` command-line
// tool.
package finance
