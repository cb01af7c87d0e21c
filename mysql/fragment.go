package mysql

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zoobzio/fragql/internal/render"
	"github.com/zoobzio/fragql/internal/types"
)

// dateTimeLayout is the MySQL DATETIME literal format.
const dateTimeLayout = "2006-01-02 15:04:05"

// quoteIdentifier wraps name in the field delimiter, doubling embedded delimiters.
func quoteIdentifier(name string) string {
	if strings.Contains(name, render.FieldDelimiter) {
		name = strings.ReplaceAll(name, render.FieldDelimiter, render.FieldDelimiter+render.FieldDelimiter)
	}
	return render.FieldDelimiter + name + render.FieldDelimiter
}

// quoteString wraps s in the value delimiter, doubling embedded quotes and backslashes.
func quoteString(s string) string {
	if strings.ContainsAny(s, `'\`) {
		s = strings.ReplaceAll(s, `\`, `\\`)
		s = strings.ReplaceAll(s, "'", "''")
	}
	return render.ValueDelimiter + s + render.ValueDelimiter
}

// renderField joins the non-empty table and field parts with '.'.
func (r *Renderer) renderField(f types.FieldSelector) string {
	parts := make([]string, 0, 2)
	if f.Table != "" {
		if f.EscapeTable {
			parts = append(parts, quoteIdentifier(f.Table))
		} else {
			parts = append(parts, f.Table)
		}
	}
	if f.Field != "" {
		if f.EscapeField && f.Field != "*" {
			parts = append(parts, quoteIdentifier(f.Field))
		} else {
			parts = append(parts, f.Field)
		}
	}
	return strings.Join(parts, ".")
}

// renderTableName renders a bare source table.
func (r *Renderer) renderTableName(src types.Source) string {
	if src.Escape {
		return quoteIdentifier(src.Table)
	}
	return src.Table
}

// renderSource renders a FROM/JOIN/UPDATE source with its alias.
func (r *Renderer) renderSource(src types.Source, ctx *renderContext) (string, error) {
	var rendered string
	if src.Subquery != nil {
		sub, err := r.renderSubquery(src.Subquery, ctx)
		if err != nil {
			return "", err
		}
		rendered = "(" + sub + ")"
	} else {
		rendered = r.renderTableName(src)
	}

	if src.Alias != "" {
		rendered += " " + src.Alias
	}
	return rendered, nil
}

// renderProjection renders one SELECT entry.
func (r *Renderer) renderProjection(p types.Projection, ctx *renderContext) (string, error) {
	var rendered string
	if p.Subquery != nil {
		sub, err := r.renderSubquery(p.Subquery, ctx)
		if err != nil {
			return "", err
		}
		rendered = "(" + sub + ")"
	} else {
		rendered = r.renderField(p.Field)
	}

	if p.Alias != "" {
		rendered += " AS " + p.Alias
	}
	return rendered, nil
}

// renderComparator pads word comparators with spaces.
func renderComparator(c types.Comparator) string {
	if c.IsWord() {
		return " " + string(c) + " "
	}
	return string(c)
}

// renderPredicate renders a single comparison.
func (r *Renderer) renderPredicate(p types.Predicate, ctx *renderContext) (string, error) {
	field := r.renderField(p.Field)

	switch v := p.Value.(type) {
	case types.Subquery:
		if v.Statement == nil {
			return "", fmt.Errorf("predicate on %s has an empty subquery", field)
		}
		sub, err := r.renderSubquery(v.Statement, ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s (%s)", field, p.Comparator, sub), nil
	case types.FieldRef:
		return field + renderComparator(p.Comparator) + r.renderField(v.Field), nil
	}

	if types.IsNull(p.Value) {
		return field + renderComparator(types.IS) + render.NullLiteral, nil
	}

	value, err := r.renderValue(p.Value, p.Escape, ctx)
	if err != nil {
		return "", err
	}
	return field + renderComparator(p.Comparator) + value, nil
}

// renderInList renders a set-membership test. An empty list renders as "".
func (r *Renderer) renderInList(p types.PredicateInList, ctx *renderContext) (string, error) {
	field := r.renderField(p.Field)
	keyword := types.IN
	if p.Not {
		keyword = types.NotIn
	}

	if p.Subquery != nil {
		sub, err := r.renderSubquery(p.Subquery, ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s (%s)", field, keyword, sub), nil
	}

	if len(p.Values) == 0 {
		return "", nil
	}

	values := make([]string, 0, len(p.Values))
	for _, v := range p.Values {
		if types.IsNull(v) {
			values = append(values, render.NullLiteral)
			continue
		}
		rendered, err := r.renderValue(v, p.Escape, ctx)
		if err != nil {
			return "", err
		}
		values = append(values, rendered)
	}
	return fmt.Sprintf("%s %s (%s)", field, keyword, strings.Join(values, ",")), nil
}

// renderCondition dispatches on the condition variant.
func (r *Renderer) renderCondition(c types.Condition, ctx *renderContext) (string, error) {
	switch cond := c.(type) {
	case types.Predicate:
		return r.renderPredicate(cond, ctx)
	case types.PredicateInList:
		return r.renderInList(cond, ctx)
	default:
		return "", fmt.Errorf("unknown condition type: %T", c)
	}
}

// renderChain joins conditions in declaration order, emitting each logic
// operator before every condition after the first. Conditions rendering to
// "" are dropped together with their operator.
func (r *Renderer) renderChain(conds []types.Condition, ctx *renderContext) (string, error) {
	parts := make([]string, 0, len(conds)*2)
	for _, c := range conds {
		rendered, err := r.renderCondition(c, ctx)
		if err != nil {
			return "", err
		}
		if rendered == "" {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, string(c.LogicOp()))
		}
		parts = append(parts, rendered)
	}
	return strings.Join(parts, " "), nil
}

// renderJoin renders "<source> ON <chain>".
func (r *Renderer) renderJoin(j types.Join, ctx *renderContext) (string, error) {
	src, err := r.renderSource(j.Source, ctx)
	if err != nil {
		return "", err
	}
	on, err := r.renderChain(j.On, ctx)
	if err != nil {
		return "", err
	}
	if on == "" {
		return src, nil
	}
	return src + " ON " + on, nil
}

// renderValue emits a placeholder when escape is set, otherwise an inline literal.
func (r *Renderer) renderValue(v types.Value, escape bool, ctx *renderContext) (string, error) {
	if !types.IsLiteral(v) {
		return "", fmt.Errorf("%w: %T", render.ErrUnsupportedValue, v)
	}
	if escape {
		return ctx.addParam(v), nil
	}
	return r.renderLiteral(v, false)
}

// renderLiteral formats a literal. Strings, dates and enum labels are
// quoted only when quote is set.
func (r *Renderer) renderLiteral(v types.Value, quote bool) (string, error) {
	var s string
	switch x := v.(type) {
	case types.Null:
		return render.NullLiteral, nil
	case types.Int:
		return strconv.FormatInt(int64(x), 10), nil
	case types.Float:
		return strconv.FormatFloat(float64(x), 'f', -1, 64), nil
	case types.Bool:
		if x {
			return "TRUE", nil
		}
		return "FALSE", nil
	case types.Text:
		s = string(x)
	case types.DateTime:
		s = formatDateTime(time.Time(x))
	case types.Enum:
		s = x.Label
	default:
		return "", fmt.Errorf("%w: %T", render.ErrUnsupportedValue, v)
	}

	if quote {
		return quoteString(s), nil
	}
	return s, nil
}

// formatDateTime keeps fractional seconds only when present.
func formatDateTime(t time.Time) string {
	if t.Nanosecond() != 0 {
		return t.Format(dateTimeLayout + ".999999")
	}
	return t.Format(dateTimeLayout)
}
