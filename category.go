package finance

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category labels an expense.
type Category string

// Known categories, in display order.
const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Housing       Category = "Housing"
	Entertainment Category = "Entertainment"
	Utilities     Category = "Utilities"
	Healthcare    Category = "Healthcare"
	Shopping      Category = "Shopping"
	Other         Category = "Other"

	// Savings is the category of expenses recorded when a saving goal is purchased.
	Savings Category = "Savings"
)

// Categories returns the fixed set of categories offered to users.
func Categories() []Category {
	return []Category{Food, Transport, Housing, Entertainment, Utilities, Healthcare, Shopping, Other}
}

// ParseCategory canonicalizes a category label.
//
// Known categories match case-insensitively, any other label is kept free-form
// but title-cased. An empty label is Other.
func ParseCategory(label string) Category {
	label = strings.Join(strings.Fields(label), " ")
	if label == "" {
		return Other
	}
	for _, c := range append(Categories(), Savings) {
		if strings.EqualFold(label, string(c)) {
			return c
		}
	}
	// a Caser is stateful, it cannot be shared.
	return Category(cases.Title(language.Und).String(label))
}

func (c Category) String() string { return string(c) }
