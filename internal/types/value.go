package types

import "time"

// Value is the closed set of things a predicate, assignment or row cell can hold.
// Dialects switch over the concrete variants exhaustively.
type Value interface {
	isValue()
}

// Null is the SQL NULL literal.
type Null struct{}

// Int is an integer literal.
type Int int64

// Float is a floating point literal.
type Float float64

// Text is a string literal.
type Text string

// Bool is a boolean literal.
type Bool bool

// DateTime is a date/time literal.
type DateTime time.Time

// Enum is an enumerated label. It binds and renders as its label, never its ordinal.
type Enum struct {
	Label   string
	Ordinal int
}

// FieldRef compares against another field instead of a value.
type FieldRef struct {
	Field FieldSelector
}

// Subquery compares against a nested statement.
type Subquery struct {
	Statement *Statement
}

func (Null) isValue()     {}
func (Int) isValue()      {}
func (Float) isValue()    {}
func (Text) isValue()     {}
func (Bool) isValue()     {}
func (DateTime) isValue() {}
func (Enum) isValue()     {}
func (FieldRef) isValue() {}
func (Subquery) isValue() {}

// IsNull reports whether v is absent or the NULL literal.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}

// IsLiteral reports whether v is a bindable literal (not a reference or subquery).
func IsLiteral(v Value) bool {
	switch v.(type) {
	case Int, Float, Text, Bool, DateTime, Enum:
		return true
	default:
		return false
	}
}

// Driver converts a literal to the value handed to database/sql.
// Enums bind their label, not the ordinal.
func Driver(v Value) any {
	switch x := v.(type) {
	case Int:
		return int64(x)
	case Float:
		return float64(x)
	case Text:
		return string(x)
	case Bool:
		return bool(x)
	case DateTime:
		return time.Time(x)
	case Enum:
		return x.Label
	default:
		return nil
	}
}
