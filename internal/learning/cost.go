package learning

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Cost is a module cost or course price. An author may type something that is not a
// number; that text is kept verbatim so the form can show it back with an error
// instead of a coerced 0.
type Cost struct {
	value   decimal.Decimal
	raw     string
	numeric bool
}

// NewCost returns a numeric cost.
func NewCost(amount float64) *Cost {
	d := decimal.NewFromFloat(amount)
	return &Cost{value: d, raw: d.String(), numeric: true}
}

// parseCost coerces raw input. Absent or blank input means no cost.
func parseCost(v any) *Cost {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if d, err := decimal.NewFromString(s); err == nil {
			return &Cost{value: d, raw: t, numeric: true}
		}
		return &Cost{raw: t}
	case json.Number:
		if d, err := decimal.NewFromString(t.String()); err == nil {
			return &Cost{value: d, raw: t.String(), numeric: true}
		}
		return &Cost{raw: t.String()}
	}
	if f, ok := toFloat(v); ok {
		return NewCost(f)
	}
	return &Cost{raw: fmt.Sprintf("%v", v)}
}

// Amount returns the numeric value, or false when the author's input was not a number.
func (c *Cost) Amount() (float64, bool) {
	if c == nil || !c.numeric {
		return 0, false
	}
	return c.value.InexactFloat64(), true
}

// Decimal returns the exact value, zero when absent or not numeric.
func (c *Cost) Decimal() decimal.Decimal {
	if c == nil || !c.numeric {
		return decimal.Zero
	}
	return c.value
}

// Numeric reports whether the cost holds a number.
func (c *Cost) Numeric() bool { return c != nil && c.numeric }

// String returns the text to show in a form field.
func (c *Cost) String() string {
	if c == nil {
		return ""
	}
	if c.numeric {
		return c.value.String()
	}
	return c.raw
}

// MarshalJSON writes a number, or the author's raw text when it is not one.
func (c Cost) MarshalJSON() ([]byte, error) {
	if c.numeric {
		return []byte(c.value.String()), nil
	}
	return json.Marshal(c.raw)
}
