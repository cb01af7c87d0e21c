package render

// Quoting policy shared by the renderer and the DDL generator.
const (
	FieldDelimiter = "`"
	ValueDelimiter = "'"
	NullLiteral    = "NULL"
)

// Dialect names the quoting policy in error messages.
const Dialect = "MySQL"
