package fragql

import (
	"github.com/zoobzio/fragql/internal/types"
	"github.com/zoobzio/fragql/schema"
)

// Renderer defines the interface for SQL dialect-specific rendering.
type Renderer interface {
	// Render converts a statement to placeholder SQL and a fresh value store.
	Render(stmt *types.Statement) (*types.QueryResult, error)

	// RenderLiteral substitutes a result's stored values into its SQL.
	RenderLiteral(result *types.QueryResult) (string, error)

	// RenderCreateTable converts a table descriptor to CREATE TABLE.
	RenderCreateTable(table *schema.Table) (string, error)
}
