// Package fragql provides a MySQL query builder built on a typed fragment model.
//
// Callers assemble a statement from fragments (projections, sources, joins,
// predicates, grouping, ordering, pagination, mutation clauses) through
// fluent builder calls. A Renderer then turns the statement into placeholder
// SQL plus an ordered store of the literal values the placeholders stand for.
//
// # Basic Usage
//
//	import "github.com/zoobzio/fragql/mysql"
//
//	query := fragql.Select(fragql.T("users")).
//		Fields(fragql.F("name")).
//		Where(fragql.C(fragql.F("id"), fragql.EQ, 5))
//
//	result, err := query.Render(mysql.New())
//	// result.SQL: SELECT `name` FROM `users` WHERE `id`=@p1
//	// result.Params: @p1 -> 5
//
// # Binding
//
// Placeholders are named @p1, @p2, ... in textual order. QueryResult.NamedArgs
// binds them with sql.Named for drivers that accept @name parameters;
// QueryResult.Positional rewrites them to '?' for drivers that do not.
//
// # Literal Rendering
//
// RenderLiteral substitutes the stored values back into the SQL for logs and
// debugging. The literal string is never meant for execution.
//
//	prepared, _ := query.RenderPrepared(r, false)
//	literal, _ := query.RenderLiteral(r)
//	// literal: SELECT `name` FROM `users` WHERE `id`=5
//
// # Schema-Validated Usage
//
// An Instance created from a DBML project panics (or, with the Try variants,
// returns an error) when a table or field is not declared in the schema:
//
//	instance, err := fragql.NewFromDBML(project)
//	users := instance.T("users")
//	email := instance.F("email")
//
// # DDL
//
// CreateTable renders a schema.Table descriptor as CREATE TABLE.
package fragql

import (
	"github.com/zoobzio/fragql/internal/types"
)

// Statement is the fragment tree of one SQL operation.
type Statement = types.Statement

// QueryResult contains the rendered SQL and its prepared values.
type QueryResult = types.QueryResult

// PreparedValues is the ordered placeholder store of a QueryResult.
type PreparedValues = types.PreparedValues

// PreparedValue is one entry of PreparedValues.
type PreparedValue = types.PreparedValue

// Kind discriminates the statement being built.
type Kind = types.Kind

// Re-export statement kinds for public API.
const (
	KindSelect      = types.KindSelect
	KindSelectUnion = types.KindSelectUnion
	KindCount       = types.KindCount
	KindInsert      = types.KindInsert
	KindUpdate      = types.KindUpdate
	KindDelete      = types.KindDelete
	KindCreateTable = types.KindCreateTable
)

// FieldSelector is a table + field pair.
type FieldSelector = types.FieldSelector

// Source is a FROM entry.
type Source = types.Source

// Predicate is a single comparison.
type Predicate = types.Predicate

// PredicateInList is a set-membership test.
type PredicateInList = types.PredicateInList

// Value is the closed set of literal kinds a predicate can compare against.
type Value = types.Value

// Literal value kinds.
type (
	Null     = types.Null
	Int      = types.Int
	Float    = types.Float
	Text     = types.Text
	Bool     = types.Bool
	DateTime = types.DateTime
	Enum     = types.Enum
)

// Comparator represents SQL comparison operators.
type Comparator = types.Comparator

// Re-export comparator constants for public API.
const (
	EQ      = types.EQ
	NE      = types.NE
	GT      = types.GT
	GE      = types.GE
	LT      = types.LT
	LE      = types.LE
	LIKE    = types.LIKE
	NotLike = types.NotLike
	IS      = types.IS
	IsNot   = types.IsNot
)

// LogicOperator links a predicate to the previous one.
type LogicOperator = types.LogicOperator

// Re-export logic operators for public API.
const (
	AND = types.AND
	OR  = types.OR
)

// Direction represents sort direction.
type Direction = types.Direction

// Re-export direction constants for public API.
const (
	ASC  = types.ASC
	DESC = types.DESC
	NONE = types.NONE
)

// MaxSubqueryDepth bounds subquery nesting.
const MaxSubqueryDepth = types.MaxSubqueryDepth
