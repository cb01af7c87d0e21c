package types

// Source is a FROM entry: a table name or a subquery, plus an optional alias.
type Source struct {
	Table    string
	Escape   bool
	Alias    string
	Subquery *Statement
}

// GetName returns the table name.
func (s Source) GetName() string {
	return s.Table
}

// GetAlias returns the table alias.
func (s Source) GetAlias() string {
	return s.Alias
}

// Projection is a SELECT entry: a field or a subquery, plus an optional alias.
type Projection struct {
	Field    FieldSelector
	Subquery *Statement
	Alias    string
}

// Join is a joined source and its ON chain.
type Join struct {
	Source Source
	On     []Condition
}

// GroupBy is a GROUP BY key.
type GroupBy struct {
	Field FieldSelector
}

// OrderBy is an ORDER BY key.
type OrderBy struct {
	Field     FieldSelector
	Direction Direction
}

// Pagination is a LIMIT clause. Offset is emitted when >= 0, Count when > 0.
type Pagination struct {
	Offset int
	Count  int
}

// Row is one INSERT row keyed by column name.
type Row map[string]Value
