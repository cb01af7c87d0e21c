package fragql

import (
	"fmt"

	"github.com/zoobzio/fragql/internal/types"
)

// T creates a quoted table source with an optional alias.
func T(name string, alias ...string) types.Source {
	src := types.Source{Table: name, Escape: true}
	if len(alias) > 0 {
		src.Alias = alias[0]
	}
	return src
}

// RawT creates a table source emitted verbatim.
func RawT(name string, alias ...string) types.Source {
	src := types.Source{Table: name}
	if len(alias) > 0 {
		src.Alias = alias[0]
	}
	return src
}

// TrySub builds b for use as a subquery, returning its error if any.
// The subquery shares b's statement; later changes to b show up in every
// statement that embeds it.
func TrySub(b *Builder) (*types.Statement, error) {
	if b == nil {
		return nil, fmt.Errorf("subquery builder cannot be nil")
	}
	stmt, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid subquery: %w", err)
	}
	return stmt, nil
}

// Sub builds b for use as a subquery.
// Panics if b carries an error.
func Sub(b *Builder) *types.Statement {
	stmt, err := TrySub(b)
	if err != nil {
		panic(err)
	}
	return stmt
}

// SubAs creates a derived-table source from b.
// Panics if b carries an error.
func SubAs(b *Builder, alias string) types.Source {
	return types.Source{Subquery: Sub(b), Alias: alias}
}
