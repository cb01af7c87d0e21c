package fragql

import (
	"github.com/zoobzio/fragql/internal/types"
)

// TryC creates a bound comparison, returning an error if v is unsupported.
func TryC(f types.FieldSelector, cmp types.Comparator, v any) (types.Predicate, error) {
	value, err := TryV(v)
	if err != nil {
		return types.Predicate{}, err
	}
	return types.Predicate{
		Field:      f,
		Comparator: cmp,
		Value:      value,
		Escape:     true,
	}, nil
}

// C creates a bound comparison. A nil value renders as IS NULL.
// Panics if v is unsupported.
func C(f types.FieldSelector, cmp types.Comparator, v any) types.Predicate {
	p, err := TryC(f, cmp, v)
	if err != nil {
		panic(err)
	}
	return p
}

// CF creates a field-to-field comparison.
func CF(f types.FieldSelector, cmp types.Comparator, other types.FieldSelector) types.Predicate {
	return types.Predicate{
		Field:      f,
		Comparator: cmp,
		Value:      types.FieldRef{Field: other},
	}
}

// CSub compares a field against a subquery.
func CSub(f types.FieldSelector, cmp types.Comparator, sub *types.Statement) types.Predicate {
	return types.Predicate{
		Field:      f,
		Comparator: cmp,
		Value:      types.Subquery{Statement: sub},
	}
}

// Inline returns p with its literal emitted in the SQL text instead of bound.
func Inline(p types.Predicate) types.Predicate {
	p.Escape = false
	return p
}

// TryIn creates a bound IN list, returning an error if a value is unsupported.
func TryIn(f types.FieldSelector, values ...any) (types.PredicateInList, error) {
	converted, err := tryValues(values)
	if err != nil {
		return types.PredicateInList{}, err
	}
	return types.PredicateInList{Field: f, Values: converted, Escape: true}, nil
}

// In creates a bound IN list. An empty list is dropped from the WHERE chain.
// Panics if a value is unsupported.
func In(f types.FieldSelector, values ...any) types.PredicateInList {
	p, err := TryIn(f, values...)
	if err != nil {
		panic(err)
	}
	return p
}
