package fragql

import (
	"fmt"
	"reflect"
	"time"

	"github.com/zoobzio/fragql/internal/render"
	"github.com/zoobzio/fragql/internal/types"
)

// TryV converts a Go value to a Value, returning an error for unsupported types.
//
// Integers, floats, strings, byte slices, bools and time.Time map to their
// literal kinds; named types convert by their underlying kind. nil and nil
// pointers become Null. A FieldSelector becomes a field reference and a
// *Statement becomes a subquery.
func TryV(v any) (types.Value, error) {
	switch x := v.(type) {
	case nil:
		return types.Null{}, nil
	case types.Value:
		return x, nil
	case time.Time:
		return types.DateTime(x), nil
	case *time.Time:
		if x == nil {
			return types.Null{}, nil
		}
		return types.DateTime(*x), nil
	case []byte:
		if x == nil {
			return types.Null{}, nil
		}
		return types.Text(string(x)), nil
	case types.FieldSelector:
		return types.FieldRef{Field: x}, nil
	case *types.Statement:
		if x == nil {
			return types.Null{}, nil
		}
		return types.Subquery{Statement: x}, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return types.Null{}, nil
		}
		rv = rv.Elem()
	}
	if t, ok := rv.Interface().(time.Time); ok {
		return types.DateTime(t), nil
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return types.Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return types.Int(int64(rv.Uint())), nil
	case reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return nil, fmt.Errorf("%w: uint64 %d overflows int64", render.ErrUnsupportedValue, u)
		}
		return types.Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return types.Float(rv.Float()), nil
	case reflect.String:
		return types.Text(rv.String()), nil
	case reflect.Bool:
		return types.Bool(rv.Bool()), nil
	default:
		return nil, fmt.Errorf("%w: %T", render.ErrUnsupportedValue, v)
	}
}

// V converts a Go value to a Value.
// Panics if the type is unsupported.
func V(v any) types.Value {
	value, err := TryV(v)
	if err != nil {
		panic(err)
	}
	return value
}

// E creates an enumerated value. It binds and renders as label; ordinal is
// kept for callers that map back to their own enum constants.
func E(label string, ordinal int) types.Value {
	return types.Enum{Label: label, Ordinal: ordinal}
}

// tryValues converts a slice of Go values.
func tryValues(values []any) ([]types.Value, error) {
	out := make([]types.Value, len(values))
	for i, v := range values {
		converted, err := TryV(v)
		if err != nil {
			return nil, err
		}
		out[i] = converted
	}
	return out, nil
}
