package fragql

import (
	"fmt"
	"maps"
	"slices"

	"github.com/zoobzio/fragql/internal/render"
	"github.com/zoobzio/fragql/internal/types"
	"github.com/zoobzio/fragql/schema"
)

// Builder provides a fluent API for constructing statements.
// The first error is kept and reported by Build; later calls are ignored.
// A Builder is not safe for concurrent use.
type Builder struct {
	stmt     *types.Statement
	err      error
	rendered *types.QueryResult
}

func newBuilder(kind types.Kind) *Builder {
	return &Builder{stmt: &types.Statement{Kind: kind}}
}

// GetStatement returns the internal statement.
func (b *Builder) GetStatement() *types.Statement {
	return b.stmt
}

// GetError returns the internal error.
func (b *Builder) GetError() error {
	return b.err
}

// edit reports whether b accepts changes and drops any cached render.
func (b *Builder) edit() bool {
	if b.err != nil {
		return false
	}
	b.rendered = nil
	return true
}

// requireKind records an error unless the statement is one of kinds.
func (b *Builder) requireKind(clause string, kinds ...types.Kind) bool {
	if slices.Contains(kinds, b.stmt.Kind) {
		return true
	}
	b.err = fmt.Errorf("%s cannot be used with %s statements", clause, b.stmt.Kind)
	return false
}

// adopt records ErrCyclicSubquery if any subquery nested in probe embeds b.
func (b *Builder) adopt(probe *types.Statement) bool {
	for _, sub := range probe.Subqueries() {
		if sub.Contains(b.stmt) {
			b.err = fmt.Errorf("%w: statement would contain itself", render.ErrCyclicSubquery)
			return false
		}
	}
	return true
}

// New creates an empty SELECT builder. It renders as SELECT *.
func New() *Builder {
	return newBuilder(types.KindSelect)
}

// Select creates a new SELECT builder over sources.
func Select(sources ...types.Source) *Builder {
	return New().From(sources...)
}

// Count creates a new SELECT COUNT(*) builder over sources.
func Count(sources ...types.Source) *Builder {
	b := newBuilder(types.KindCount)
	return b.From(sources...)
}

// newTargetBuilder creates a mutation builder on t.
func newTargetBuilder(kind types.Kind, t types.Source) *Builder {
	b := newBuilder(kind)
	if t.Table == "" && t.Subquery == nil {
		b.err = fmt.Errorf("%s: %w", kind, render.ErrMissingSource)
		return b
	}
	b.stmt.Sources = []types.Source{t}
	return b
}

// Insert creates a new INSERT builder.
func Insert(t types.Source) *Builder {
	return newTargetBuilder(types.KindInsert, t)
}

// Update creates a new UPDATE builder.
func Update(t types.Source) *Builder {
	return newTargetBuilder(types.KindUpdate, t)
}

// Delete creates a new DELETE builder.
func Delete(t types.Source) *Builder {
	return newTargetBuilder(types.KindDelete, t)
}

// Union combines queries with UNION.
func Union(queries ...*Builder) *Builder {
	return union(false, queries)
}

// UnionAll combines queries with UNION ALL.
func UnionAll(queries ...*Builder) *Builder {
	return union(true, queries)
}

func union(all bool, queries []*Builder) *Builder {
	b := newBuilder(types.KindSelectUnion)
	b.stmt.UnionAll = all
	if len(queries) < 2 {
		b.err = fmt.Errorf("UNION requires at least two queries, got %d", len(queries))
		return b
	}
	for i, q := range queries {
		stmt, err := TrySub(q)
		if err != nil {
			b.err = fmt.Errorf("UNION query %d: %w", i, err)
			return b
		}
		b.stmt.Unions = append(b.stmt.Unions, stmt)
	}
	return b
}

// CreateTable creates a builder that renders t as CREATE TABLE.
func CreateTable(t *schema.Table) *Builder {
	b := newBuilder(types.KindCreateTable)
	if t == nil {
		b.err = render.NewConfigurationError("table", render.ErrMissingTable)
		return b
	}
	b.stmt.Table = t
	return b
}

// Fields adds projections to a SELECT.
func (b *Builder) Fields(fields ...types.FieldSelector) *Builder {
	if !b.edit() || !b.requireKind("Fields()", types.KindSelect) {
		return b
	}
	for _, f := range fields {
		b.stmt.Projections = append(b.stmt.Projections, types.Projection{Field: f})
	}
	return b
}

// FieldAs adds an aliased projection to a SELECT.
func (b *Builder) FieldAs(f types.FieldSelector, alias string) *Builder {
	if !b.edit() || !b.requireKind("FieldAs()", types.KindSelect) {
		return b
	}
	b.stmt.Projections = append(b.stmt.Projections, types.Projection{Field: f, Alias: alias})
	return b
}

// FieldSub adds a scalar subquery projection to a SELECT.
func (b *Builder) FieldSub(sub *types.Statement, alias string) *Builder {
	if !b.edit() || !b.requireKind("FieldSub()", types.KindSelect) {
		return b
	}
	p := types.Projection{Subquery: sub, Alias: alias}
	if !b.adopt(&types.Statement{Projections: []types.Projection{p}}) {
		return b
	}
	b.stmt.Projections = append(b.stmt.Projections, p)
	return b
}

// From adds sources to a SELECT or COUNT.
func (b *Builder) From(sources ...types.Source) *Builder {
	if !b.edit() || !b.requireKind("From()", types.KindSelect, types.KindCount) {
		return b
	}
	if !b.adopt(&types.Statement{Sources: sources}) {
		return b
	}
	b.stmt.Sources = append(b.stmt.Sources, sources...)
	return b
}

// Join adds a joined source. All joins share a single JOIN keyword.
func (b *Builder) Join(src types.Source, on ...types.Condition) *Builder {
	if !b.edit() || !b.requireKind("Join()", types.KindSelect, types.KindCount) {
		return b
	}
	j := types.Join{Source: src, On: on}
	if !b.adopt(&types.Statement{Joins: []types.Join{j}}) {
		return b
	}
	b.stmt.Joins = append(b.stmt.Joins, j)
	return b
}

// Where appends conditions joined with AND, in declaration order.
func (b *Builder) Where(conds ...types.Condition) *Builder {
	return b.where(types.AND, conds)
}

// OrWhere appends conditions joined with OR, in declaration order.
func (b *Builder) OrWhere(conds ...types.Condition) *Builder {
	return b.where(types.OR, conds)
}

func (b *Builder) where(logic types.LogicOperator, conds []types.Condition) *Builder {
	if !b.edit() || !b.requireKind("Where()", types.KindSelect, types.KindCount, types.KindUpdate, types.KindDelete) {
		return b
	}
	if !b.adopt(&types.Statement{Where: conds}) {
		return b
	}
	for _, c := range conds {
		switch cond := c.(type) {
		case types.Predicate:
			cond.Logic = logic
			b.stmt.Where = append(b.stmt.Where, cond)
		case types.PredicateInList:
			cond.Logic = logic
			b.stmt.Where = append(b.stmt.Where, cond)
		default:
			b.err = fmt.Errorf("unknown condition type: %T", c)
			return b
		}
	}
	return b
}

// WhereIn appends a bound IN list joined with AND.
func (b *Builder) WhereIn(f types.FieldSelector, values ...any) *Builder {
	return b.whereIn(types.AND, false, f, values)
}

// OrWhereIn appends a bound IN list joined with OR.
func (b *Builder) OrWhereIn(f types.FieldSelector, values ...any) *Builder {
	return b.whereIn(types.OR, false, f, values)
}

// WhereNotIn appends a bound NOT IN list joined with AND.
func (b *Builder) WhereNotIn(f types.FieldSelector, values ...any) *Builder {
	return b.whereIn(types.AND, true, f, values)
}

func (b *Builder) whereIn(logic types.LogicOperator, not bool, f types.FieldSelector, values []any) *Builder {
	if b.err != nil {
		return b
	}
	p, err := TryIn(f, values...)
	if err != nil {
		b.err = err
		return b
	}
	p.Not = not
	return b.where(logic, []types.Condition{p})
}

// WhereInSub appends "<f> IN (<sub>)" joined with AND.
func (b *Builder) WhereInSub(f types.FieldSelector, sub *types.Statement) *Builder {
	if sub == nil {
		if b.err == nil {
			b.err = fmt.Errorf("WhereInSub() requires a subquery")
		}
		return b
	}
	return b.where(types.AND, []types.Condition{types.PredicateInList{Field: f, Subquery: sub}})
}

// GroupBy adds GROUP BY keys.
func (b *Builder) GroupBy(fields ...types.FieldSelector) *Builder {
	if !b.edit() || !b.requireKind("GroupBy()", types.KindSelect) {
		return b
	}
	for _, f := range fields {
		b.stmt.GroupBy = append(b.stmt.GroupBy, types.GroupBy{Field: f})
	}
	return b
}

// Having adds HAVING predicates. They are comma-separated when rendered.
func (b *Builder) Having(preds ...types.Predicate) *Builder {
	if !b.edit() || !b.requireKind("Having()", types.KindSelect) {
		return b
	}
	if !b.adopt(&types.Statement{Having: preds}) {
		return b
	}
	b.stmt.Having = append(b.stmt.Having, preds...)
	return b
}

// OrderBy adds an ORDER BY key. NONE omits the direction keyword.
func (b *Builder) OrderBy(f types.FieldSelector, direction types.Direction) *Builder {
	if !b.edit() || !b.requireKind("OrderBy()", types.KindSelect, types.KindSelectUnion, types.KindUpdate, types.KindDelete) {
		return b
	}
	b.stmt.OrderBy = append(b.stmt.OrderBy, types.OrderBy{Field: f, Direction: direction})
	return b
}

func (b *Builder) pagination() *types.Pagination {
	if b.stmt.Limit == nil {
		b.stmt.Limit = &types.Pagination{Offset: -1}
	}
	return b.stmt.Limit
}

// Limit sets the row count. Only counts > 0 are emitted.
func (b *Builder) Limit(count int) *Builder {
	if !b.edit() || !b.requireKind("Limit()", types.KindSelect, types.KindSelectUnion, types.KindUpdate, types.KindDelete) {
		return b
	}
	if count < 0 {
		b.err = fmt.Errorf("limit must not be negative, got %d", count)
		return b
	}
	b.pagination().Count = count
	return b
}

// Offset sets the row offset, emitted before the count as LIMIT offset,count.
func (b *Builder) Offset(offset int) *Builder {
	if !b.edit() || !b.requireKind("Offset()", types.KindSelect, types.KindSelectUnion) {
		return b
	}
	if offset < 0 {
		b.err = fmt.Errorf("offset must not be negative, got %d", offset)
		return b
	}
	b.pagination().Offset = offset
	return b
}

// Set adds an UPDATE assignment. A nil value assigns NULL.
func (b *Builder) Set(f types.FieldSelector, v any) *Builder {
	if !b.edit() || !b.requireKind("Set()", types.KindUpdate) {
		return b
	}
	value, err := TryV(v)
	if err != nil {
		b.err = err
		return b
	}
	if sq, ok := value.(types.Subquery); ok && !b.adopt(&types.Statement{Where: []types.Condition{types.Predicate{Value: sq}}}) {
		return b
	}
	b.stmt.Assignments = append(b.stmt.Assignments, types.Assignment{Field: f, Value: value, Escape: true})
	return b
}

// Columns declares the INSERT column order.
func (b *Builder) Columns(columns ...string) *Builder {
	if !b.edit() || !b.requireKind("Columns()", types.KindInsert) {
		return b
	}
	for _, c := range columns {
		if !slices.Contains(b.stmt.Columns, c) {
			b.stmt.Columns = append(b.stmt.Columns, c)
		}
	}
	return b
}

// Values adds an INSERT row. Keys missing from the declared columns are
// appended to the column list in sorted order; columns missing from the row
// are inserted as NULL.
func (b *Builder) Values(row map[string]any) *Builder {
	if !b.edit() || !b.requireKind("Values()", types.KindInsert) {
		return b
	}
	converted := make(types.Row, len(row))
	for _, k := range slices.Sorted(maps.Keys(row)) {
		v, err := TryV(row[k])
		if err != nil {
			b.err = fmt.Errorf("column %s: %w", k, err)
			return b
		}
		converted[k] = v
		if !slices.Contains(b.stmt.Columns, k) {
			b.stmt.Columns = append(b.stmt.Columns, k)
		}
	}
	b.stmt.Rows = append(b.stmt.Rows, converted)
	return b
}

// ForUpdate appends the FOR UPDATE row-locking hint to a SELECT.
func (b *Builder) ForUpdate() *Builder {
	if !b.edit() || !b.requireKind("ForUpdate()", types.KindSelect) {
		return b
	}
	b.stmt.ForUpdate = true
	return b
}

// Build returns the constructed statement or an error.
func (b *Builder) Build() (*types.Statement, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.stmt.Validate(); err != nil {
		return nil, err
	}
	return b.stmt, nil
}

// MustBuild returns the statement or panics on error.
func (b *Builder) MustBuild() *types.Statement {
	stmt, err := b.Build()
	if err != nil {
		panic(err)
	}
	return stmt
}

// Render builds the statement and renders it with r. Every call renders
// afresh and returns a new result.
func (b *Builder) Render(r Renderer) (*QueryResult, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer cannot be nil")
	}
	stmt, err := b.Build()
	if err != nil {
		return nil, err
	}
	return r.Render(stmt)
}

// RenderPrepared renders and caches the placeholder SQL and its values.
// Once rendered, further calls return the cached result unchanged unless
// force is set, in which case the result is recomputed from scratch. Any
// change made through b drops the cache.
//
// Subqueries share the statement of the builder they came from (see TrySub).
// Changing that inner builder does not reach b's cache, so the cached result
// keeps the subquery as it was; render with force to pick the change up.
func (b *Builder) RenderPrepared(r Renderer, force bool) (*QueryResult, error) {
	if b.rendered != nil && !force {
		return b.rendered, nil
	}
	result, err := b.Render(r)
	if err != nil {
		return nil, err
	}
	b.rendered = result
	return result, nil
}

// RenderLiteral returns the cached render with every value substituted.
// Returns ErrNotRendered unless RenderPrepared succeeded since the last change.
func (b *Builder) RenderLiteral(r Renderer) (string, error) {
	if b.rendered == nil {
		return "", render.ErrNotRendered
	}
	if r == nil {
		return "", fmt.Errorf("renderer cannot be nil")
	}
	return r.RenderLiteral(b.rendered)
}
