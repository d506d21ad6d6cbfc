package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a whole percentage, as displayed on progress bars.
type Percent int

var hundred = decimal.NewFromInt(100)

// PercentOf returns round(part/whole*100) capped to 100.
//
// A non positive whole gives 0.
func PercentOf(part, whole Amount) Percent {
	if !whole.IsPositive() {
		return 0
	}
	p := part.value.Mul(hundred).Div(whole.value).Round(0)
	if p.GreaterThan(hundred) {
		return 100
	}
	if p.IsNegative() {
		return 0
	}
	return Percent(p.IntPart())
}

func (p Percent) String() string {
	return fmt.Sprintf("%d%%", int(p))
}
