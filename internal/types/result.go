package types

import (
	"database/sql"
	"fmt"
	"slices"
	"strings"
)

// QueryResult contains the rendered SQL and the values its placeholders stand for.
// It is never modified after a renderer returns it.
type QueryResult struct {
	SQL    string
	Params *PreparedValues
	Kind   Kind
}

// NamedArgs returns the stored values as named driver arguments (p1, p2, ...).
func (r *QueryResult) NamedArgs() []any {
	items := r.Params.All()
	args := make([]any, len(items))
	for i, item := range items {
		args[i] = sql.Named(item.Name(), Driver(item.Value))
	}
	return args
}

// Positional rewrites every token to '?' and returns the arguments in
// textual order.
func (r *QueryResult) Positional() (string, []any, error) {
	args := make([]any, 0, r.Params.Len())
	query, err := r.Splice(func(pv PreparedValue) (string, error) {
		args = append(args, Driver(pv.Value))
		return "?", nil
	})
	if err != nil {
		return "", nil, err
	}
	return query, args, nil
}

// Splice rebuilds the SQL with each placeholder replaced by the text fn
// returns for it. Placeholders are located by their recorded offsets only,
// so identical text elsewhere in the SQL is left alone. fn is called in
// textual order.
func (r *QueryResult) Splice(fn func(PreparedValue) (string, error)) (string, error) {
	items := r.Params.All()
	if len(items) == 0 {
		return r.SQL, nil
	}
	slices.SortFunc(items, func(a, b PreparedValue) int { return a.Offset - b.Offset })

	var b strings.Builder
	b.Grow(len(r.SQL))
	cursor := 0
	for _, item := range items {
		end := item.Offset + len(item.Token)
		if item.Offset < cursor || end > len(r.SQL) || r.SQL[item.Offset:end] != item.Token {
			return "", fmt.Errorf("placeholder %s not found in rendered SQL", item.Token)
		}
		text, err := fn(item)
		if err != nil {
			return "", err
		}
		b.WriteString(r.SQL[cursor:item.Offset])
		b.WriteString(text)
		cursor = end
	}
	b.WriteString(r.SQL[cursor:])
	return b.String(), nil
}
