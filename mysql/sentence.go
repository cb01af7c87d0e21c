package mysql

import (
	"strconv"
	"strings"

	"github.com/zoobzio/fragql/internal/render"
	"github.com/zoobzio/fragql/internal/types"
)

// segmentFunc renders one clause of a statement, or "" to omit it.
type segmentFunc func(stmt *types.Statement, ctx *renderContext) (string, error)

// assemble runs the builders in order and joins the non-empty segments with
// single spaces. Builders run in textual order so token numbering matches
// the order tokens appear in the SQL.
func (r *Renderer) assemble(stmt *types.Statement, ctx *renderContext, builders []segmentFunc) (string, error) {
	segments := make([]string, 0, len(builders))
	for _, build := range builders {
		seg, err := build(stmt, ctx)
		if err != nil {
			return "", err
		}
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return strings.Join(segments, " "), nil
}

func (r *Renderer) selectSentence(stmt *types.Statement, ctx *renderContext) (string, error) {
	if len(stmt.Projections) == 0 {
		return "SELECT *", nil
	}
	parts := make([]string, 0, len(stmt.Projections))
	for _, p := range stmt.Projections {
		rendered, err := r.renderProjection(p, ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, rendered)
	}
	return "SELECT " + strings.Join(parts, ","), nil
}

func (r *Renderer) countSentence(_ *types.Statement, _ *renderContext) (string, error) {
	return "SELECT COUNT(*)", nil
}

func (r *Renderer) fromSentence(stmt *types.Statement, ctx *renderContext) (string, error) {
	if len(stmt.Sources) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(stmt.Sources))
	for _, src := range stmt.Sources {
		rendered, err := r.renderSource(src, ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, rendered)
	}
	return "FROM " + strings.Join(parts, ","), nil
}

// joinSentence emits a single JOIN keyword followed by comma-joined joins.
func (r *Renderer) joinSentence(stmt *types.Statement, ctx *renderContext) (string, error) {
	if len(stmt.Joins) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(stmt.Joins))
	for _, j := range stmt.Joins {
		rendered, err := r.renderJoin(j, ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, rendered)
	}
	return "JOIN " + strings.Join(parts, ","), nil
}

func (r *Renderer) whereSentence(stmt *types.Statement, ctx *renderContext) (string, error) {
	chain, err := r.renderChain(stmt.Where, ctx)
	if err != nil || chain == "" {
		return "", err
	}
	return "WHERE " + chain, nil
}

func (r *Renderer) groupSentence(stmt *types.Statement, _ *renderContext) (string, error) {
	if len(stmt.GroupBy) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(stmt.GroupBy))
	for _, g := range stmt.GroupBy {
		parts = append(parts, r.renderField(g.Field))
	}
	return "GROUP BY " + strings.Join(parts, ","), nil
}

// havingSentence separates predicates with commas and carries no logic operators.
func (r *Renderer) havingSentence(stmt *types.Statement, ctx *renderContext) (string, error) {
	if len(stmt.Having) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(stmt.Having))
	for _, h := range stmt.Having {
		rendered, err := r.renderPredicate(h, ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, rendered)
	}
	return "HAVING " + strings.Join(parts, ","), nil
}

func (r *Renderer) orderSentence(stmt *types.Statement, _ *renderContext) (string, error) {
	if len(stmt.OrderBy) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(stmt.OrderBy))
	for _, o := range stmt.OrderBy {
		part := r.renderField(o.Field)
		if o.Direction != types.NONE {
			part += " " + string(o.Direction)
		}
		parts = append(parts, part)
	}
	return "ORDER BY " + strings.Join(parts, ","), nil
}

// limitSentence emits the offset and count independently.
func (r *Renderer) limitSentence(stmt *types.Statement, _ *renderContext) (string, error) {
	if stmt.Limit == nil {
		return "", nil
	}
	parts := make([]string, 0, 2)
	if stmt.Limit.Offset >= 0 {
		parts = append(parts, strconv.Itoa(stmt.Limit.Offset))
	}
	if stmt.Limit.Count > 0 {
		parts = append(parts, strconv.Itoa(stmt.Limit.Count))
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "LIMIT " + strings.Join(parts, ","), nil
}

func (r *Renderer) selectExtraSentence(stmt *types.Statement, _ *renderContext) (string, error) {
	if stmt.ForUpdate {
		return "FOR UPDATE", nil
	}
	return "", nil
}

// unionSentence renders each member in parentheses joined by UNION or UNION ALL.
func (r *Renderer) unionSentence(stmt *types.Statement, ctx *renderContext) (string, error) {
	keyword := " UNION "
	if stmt.UnionAll {
		keyword = " UNION ALL "
	}
	parts := make([]string, 0, len(stmt.Unions))
	for _, q := range stmt.Unions {
		sub, err := r.renderSubquery(q, ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, "("+sub+")")
	}
	return strings.Join(parts, keyword), nil
}

func (r *Renderer) deleteSentence(stmt *types.Statement, _ *renderContext) (string, error) {
	src, ok := stmt.FirstSource()
	if !ok {
		return "", nil
	}
	rendered := "DELETE FROM " + r.renderTableName(src)
	if src.Alias != "" {
		rendered += " AS " + src.Alias
	}
	return rendered, nil
}

func (r *Renderer) updateSentence(stmt *types.Statement, ctx *renderContext) (string, error) {
	src, ok := stmt.FirstSource()
	if !ok {
		return "", nil
	}
	rendered, err := r.renderSource(src, ctx)
	if err != nil {
		return "", err
	}
	return "UPDATE " + rendered, nil
}

// setSentence always uses '=', and a null value assigns NULL.
func (r *Renderer) setSentence(stmt *types.Statement, ctx *renderContext) (string, error) {
	if len(stmt.Assignments) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(stmt.Assignments))
	for _, a := range stmt.Assignments {
		field := r.renderField(a.Field)
		switch v := a.Value.(type) {
		case types.FieldRef:
			parts = append(parts, field+"="+r.renderField(v.Field))
			continue
		case types.Subquery:
			if v.Statement == nil {
				return "", render.ErrUnsupportedValue
			}
			sub, err := r.renderSubquery(v.Statement, ctx)
			if err != nil {
				return "", err
			}
			parts = append(parts, field+"=("+sub+")")
			continue
		}
		if types.IsNull(a.Value) {
			parts = append(parts, field+"="+render.NullLiteral)
			continue
		}
		value, err := r.renderValue(a.Value, a.Escape, ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, field+"="+value)
	}
	return "SET " + strings.Join(parts, ","), nil
}

func (r *Renderer) insertIntoSentence(stmt *types.Statement, _ *renderContext) (string, error) {
	src, ok := stmt.FirstSource()
	if !ok {
		return "", nil
	}
	columns := make([]string, len(stmt.Columns))
	for i, c := range stmt.Columns {
		columns[i] = quoteIdentifier(c)
	}
	return "INSERT INTO " + r.renderTableName(src) + " (" + strings.Join(columns, ",") + ")", nil
}

// valuesSentence emits one group per row in declared column order. Missing
// and null cells render as NULL; every other cell is bound.
func (r *Renderer) valuesSentence(stmt *types.Statement, ctx *renderContext) (string, error) {
	if len(stmt.Rows) == 0 {
		return "", nil
	}
	groups := make([]string, 0, len(stmt.Rows))
	for _, row := range stmt.Rows {
		cells := make([]string, 0, len(stmt.Columns))
		for _, col := range stmt.Columns {
			v, ok := row[col]
			if !ok || types.IsNull(v) {
				cells = append(cells, render.NullLiteral)
				continue
			}
			switch v.(type) {
			case types.FieldRef, types.Subquery:
				return "", render.NewUnsupportedFeatureError("non-literal value in VALUES", "column "+col)
			}
			cells = append(cells, ctx.addParam(v))
		}
		groups = append(groups, "("+strings.Join(cells, ",")+")")
	}
	return "VALUES " + strings.Join(groups, ","), nil
}
