package finance

import (
	"encoding/json"
	"strings"
)

const maxNameLength = 200

// Expense is money spent out of the budget.
type Expense struct {
	ID       string   // ID is generated on creation and never changes.
	Name     string   // Name is a non-empty display string.
	Amount   Amount   // Amount is strictly positive.
	Category Category // Category is one of [Categories] or a free-form label.
	Date     Date     // Date is the day the money was spent.
}

// NewExpense holds the caller provided fields of an expense to be created.
type NewExpense struct {
	Name     string
	Amount   Amount
	Category string
	Date     Date
}

// normalize trims the name, canonicalizes the category and defaults the date to today.
func (e NewExpense) normalize() NewExpense {
	e.Name = strings.TrimSpace(e.Name)
	e.Category = ParseCategory(e.Category).String()
	if e.Date.IsZero() {
		e.Date = Today()
	}
	return e
}

// Validate checks the fields a user can enter.
func (e NewExpense) Validate() error {
	return validateExpenseFields(e.Name, e.Amount)
}

func validateExpenseFields(name string, amount Amount) error {
	if err := validateName(name); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return invalid("amount", ErrInvalidAmount)
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("name", ErrEmptyName)
	}
	if len(name) > maxNameLength {
		return invalid("name", ErrNameTooLong)
	}
	return nil
}

// Validate checks a stored expense.
func (e Expense) Validate() error {
	if e.ID == "" {
		return invalid("id", ErrMissingID)
	}
	if err := validateExpenseFields(e.Name, e.Amount); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return invalid("date", ErrInvalidDate)
	}
	return nil
}

// normalize applies the same clean up as NewExpense to an edited expense.
func (e Expense) normalize() Expense {
	e.Name = strings.TrimSpace(e.Name)
	e.Category = ParseCategory(string(e.Category))
	if e.Date.IsZero() {
		e.Date = Today()
	}
	return e
}

// MarshalJSON implements json.Marshaler with a stable key order.
func (e Expense) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", e.ID)
	w.Append("name", e.Name)
	w.Append("amount", e.Amount)
	w.Append("category", e.Category)
	w.Append("date", e.Date)
	return w.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Expense) UnmarshalJSON(data []byte) error {
	var j struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Amount   Amount   `json:"amount"`
		Category Category `json:"category"`
		Date     Date     `json:"date"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*e = Expense{ID: j.ID, Name: j.Name, Amount: j.Amount, Category: j.Category, Date: j.Date}
	return nil
}
