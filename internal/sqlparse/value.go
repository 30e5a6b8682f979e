package sqlparse

import "strconv"

// Value is a sealed interface over the literal types the grammar produces:
// Null, String, Int, Float, and Bool. The marker method keeps the set
// closed so renderers can type-switch exhaustively.
type Value interface {
	literalValue()
}

// Null is the SQL NULL literal.
type Null struct{}

func (Null) literalValue() {}

// String is a quoted string literal with quotes stripped.
type String string

func (String) literalValue() {}

// Int is an integer literal. Always int64; a literal with a decimal point
// or exponent lexes as Float instead, never coerced.
type Int int64

func (Int) literalValue() {}

// Float is a floating-point literal.
type Float float64

func (Float) literalValue() {}

// Bool is a TRUE or FALSE literal.
type Bool bool

func (Bool) literalValue() {}

// IsNumeric reports whether v may appear with an ordering operator
// (<, <=, >, >=). Only Int and Float qualify.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case Int, Float:
		return true
	}
	return false
}

// Native converts v to the Go value a database driver expects:
// nil, string, int64, float64, or bool.
func Native(v Value) any {
	switch val := v.(type) {
	case Null:
		return nil
	case String:
		return string(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case Bool:
		return bool(val)
	}
	return nil
}

// FromNative converts a driver-side Go value back into a Value.
// Integral types collapse to Int and floating types to Float; unsupported
// types report ok=false.
func FromNative(v any) (Value, bool) {
	switch val := v.(type) {
	case nil:
		return Null{}, true
	case string:
		return String(val), true
	case bool:
		return Bool(val), true
	case int:
		return Int(val), true
	case int32:
		return Int(val), true
	case int64:
		return Int(val), true
	case float32:
		return Float(val), true
	case float64:
		return Float(val), true
	}
	return nil, false
}

// literalString renders v the way it would appear in SQL source. Used in
// error messages and Predicate.String output.
func literalString(v Value) string {
	switch val := v.(type) {
	case Null:
		return "NULL"
	case String:
		return "'" + string(val) + "'"
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case Bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	}
	return "?"
}
