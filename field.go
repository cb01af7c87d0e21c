package fragql

import (
	"github.com/zoobzio/fragql/internal/types"
)

// F creates a quoted field reference.
func F(name string) types.FieldSelector {
	return types.FieldSelector{Field: name, EscapeField: true}
}

// RawF creates a field reference emitted verbatim, for expressions like COUNT(*).
func RawF(expr string) types.FieldSelector {
	return types.FieldSelector{Field: expr}
}

// TF creates a quoted table.field reference. table may also be an alias.
func TF(table, name string) types.FieldSelector {
	return types.FieldSelector{Table: table, Field: name, EscapeTable: true, EscapeField: true}
}
