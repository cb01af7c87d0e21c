package types

// FieldSelector is a table + field pair. Each part is quoted independently.
// This is exported from the internal package so dialects can use it,
// but external users cannot import this package.
type FieldSelector struct {
	Table       string
	Field       string
	EscapeTable bool
	EscapeField bool
}

// GetTable returns the table/alias prefix.
func (f FieldSelector) GetTable() string {
	return f.Table
}

// GetField returns the field name.
func (f FieldSelector) GetField() string {
	return f.Field
}

// IsZero reports whether both parts are empty.
func (f FieldSelector) IsZero() bool {
	return f.Table == "" && f.Field == ""
}

// WithTable returns a copy of the selector prefixed with tableOrAlias.
func (f FieldSelector) WithTable(tableOrAlias string) FieldSelector {
	f.Table = tableOrAlias
	f.EscapeTable = f.EscapeField
	return f
}
