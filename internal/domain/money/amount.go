// Package money holds the lenient decimal amount used by ledger records.
// Backend rows carry balances as numbers, numeric strings, garbage or null;
// all of them decode without error and unusable values count as zero.
package money

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a decimal value that remembers whether it was parseable.
type Amount struct {
	value decimal.Decimal
	valid bool
}

// NewAmount wraps a decimal as a valid amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{value: d, valid: true}
}

// MustParse parses s and panics on failure. Intended for tests and constants.
func MustParse(s string) Amount {
	return NewAmount(decimal.RequireFromString(s))
}

// ParseAmount converts a loosely typed value into an Amount.
// Strings are trimmed and thousands separators dropped; nil, empty and
// non-numeric inputs yield an invalid (zero) amount.
func ParseAmount(v any) Amount {
	switch x := v.(type) {
	case nil:
		return Amount{}
	case Amount:
		return x
	case *Amount:
		if x == nil {
			return Amount{}
		}
		return *x
	case decimal.Decimal:
		return NewAmount(x)
	case string:
		return parseString(x)
	case *string:
		if x == nil {
			return Amount{}
		}
		return parseString(*x)
	case json.Number:
		return parseString(x.String())
	case float64:
		return NewAmount(decimal.NewFromFloat(x))
	case float32:
		return NewAmount(decimal.NewFromFloat32(x))
	case int:
		return NewAmount(decimal.NewFromInt(int64(x)))
	case int64:
		return NewAmount(decimal.NewFromInt(x))
	case int32:
		return NewAmount(decimal.NewFromInt32(x))
	default:
		return Amount{}
	}
}

func parseString(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return NewAmount(d)
}

// Valid reports whether the source value was numeric.
func (a Amount) Valid() bool { return a.valid }

// Decimal returns the value, or zero when invalid.
func (a Amount) Decimal() decimal.Decimal {
	if !a.valid {
		return decimal.Zero
	}
	return a.value
}

// String renders the amount with two decimal places, or "" when invalid.
func (a Amount) String() string {
	if !a.valid {
		return ""
	}
	return a.value.StringFixed(2)
}

// Add returns a+b treating invalid operands as zero.
func (a Amount) Add(b Amount) Amount {
	return NewAmount(a.Decimal().Add(b.Decimal()))
}

// MarshalJSON encodes the amount as a string to keep precision; invalid is null.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.value.String())
}

// UnmarshalJSON never fails on content: unparseable values become invalid.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			*a = Amount{}
			return nil //nolint:nilerr // malformed strings are treated as missing
		}
		*a = parseString(s)
		return nil
	}
	*a = parseString(string(b))
	return nil
}

// Sum adds amounts; invalid entries contribute zero.
func Sum(amounts ...Amount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.Decimal())
	}
	return total
}
