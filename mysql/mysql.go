// Package mysql provides the MySQL/MariaDB renderer for fragql.
//
// Rendering happens in two phases. Render walks a statement and emits
// placeholder SQL, registering every bound literal in a fresh
// PreparedValues store. RenderLiteral substitutes those values back into the
// placeholder SQL to produce a debug string that is never used for execution.
package mysql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zoobzio/fragql/internal/render"
	"github.com/zoobzio/fragql/internal/types"
)

// maxMarkerAttempts bounds how many placeholder markers Render tries before
// giving up on a statement whose text contains all of them.
const maxMarkerAttempts = 8

// placeholderMarker brackets each token while a statement renders. The
// opening and closing bytes occur once each, so two occurrences never overlap.
func placeholderMarker(attempt int) string {
	return "\x00fragql" + strconv.Itoa(attempt) + "\x01"
}

// renderContext tracks rendering state shared across nested subqueries.
type renderContext struct {
	params    *types.PreparedValues
	ancestors map[*types.Statement]bool
	depth     int
	marker    string
}

// newRenderContext creates a context rooted at stmt.
func newRenderContext(stmt *types.Statement) *renderContext {
	return &renderContext{
		params:    types.NewPreparedValues(),
		ancestors: map[*types.Statement]bool{stmt: true},
		marker:    placeholderMarker(0),
	}
}

// withSubquery creates a child context for rendering sub.
// The store is shared so tokens stay unique across the whole tree.
func (ctx *renderContext) withSubquery(sub *types.Statement) (*renderContext, error) {
	if ctx.depth >= types.MaxSubqueryDepth {
		return nil, fmt.Errorf("%w: maximum depth (%d)", render.ErrSubqueryDepth, types.MaxSubqueryDepth)
	}
	if ctx.ancestors[sub] {
		return nil, render.ErrCyclicSubquery
	}

	ancestors := make(map[*types.Statement]bool, len(ctx.ancestors)+1)
	for s := range ctx.ancestors {
		ancestors[s] = true
	}
	ancestors[sub] = true

	return &renderContext{
		params:    ctx.params,
		ancestors: ancestors,
		depth:     ctx.depth + 1,
		marker:    ctx.marker,
	}, nil
}

// addParam registers v and returns its token wrapped in the context marker.
func (ctx *renderContext) addParam(v types.Value) string {
	return ctx.marker + ctx.params.Add(v, true) + ctx.marker
}

// resolve strips the markers from s, leaving bare tokens, and records where
// each token lands. ok is false when s carries marker text that did not come
// from addParam; the caller must render again with another marker.
func (ctx *renderContext) resolve(s string) (out string, ok bool, err error) {
	m := ctx.marker
	if strings.Count(s, m) != 2*ctx.params.Len() {
		return "", false, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for {
		i := strings.Index(s, m)
		if i < 0 {
			break
		}
		b.WriteString(s[:i])
		s = s[i+len(m):]
		j := strings.Index(s, m)
		if j < 0 {
			return "", false, nil
		}
		if err := ctx.params.Place(s[:j], b.Len()); err != nil {
			return "", false, err
		}
		b.WriteString(s[:j])
		s = s[j+len(m):]
	}
	b.WriteString(s)
	return b.String(), true, nil
}

// Renderer implements the MySQL dialect renderer.
type Renderer struct{}

// New creates a new MySQL renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render converts a statement to placeholder SQL and its prepared values.
// Every call starts from an empty store, so repeated calls are byte-identical.
func (r *Renderer) Render(stmt *types.Statement) (*types.QueryResult, error) {
	if stmt == nil {
		return nil, fmt.Errorf("nil statement")
	}
	if stmt.Kind == types.KindCreateTable {
		sql, err := r.RenderCreateTable(stmt.Table)
		if err != nil {
			return nil, err
		}
		return &types.QueryResult{SQL: sql, Params: types.NewPreparedValues(), Kind: stmt.Kind}, nil
	}

	for attempt := 0; attempt < maxMarkerAttempts; attempt++ {
		ctx := newRenderContext(stmt)
		ctx.marker = placeholderMarker(attempt)
		marked, err := r.renderStatement(stmt, ctx)
		if err != nil {
			return nil, err
		}
		sql, ok, err := ctx.resolve(marked)
		if err != nil {
			return nil, err
		}
		if ok {
			return &types.QueryResult{
				SQL:    sql,
				Params: ctx.params,
				Kind:   stmt.Kind,
			}, nil
		}
	}
	return nil, fmt.Errorf("statement text collides with every placeholder marker")
}

// RenderLiteral substitutes every prepared value into the placeholder SQL.
// Values go where Render placed their tokens; matching text in identifiers
// or raw fragments is never touched.
func (r *Renderer) RenderLiteral(result *types.QueryResult) (string, error) {
	if result == nil {
		return "", render.ErrNotRendered
	}
	return result.Splice(func(pv types.PreparedValue) (string, error) {
		if types.IsNull(pv.Value) {
			return render.NullLiteral, nil
		}
		return r.renderLiteral(pv.Value, pv.Escape)
	})
}

// renderStatement validates stmt and assembles its segments.
func (r *Renderer) renderStatement(stmt *types.Statement, ctx *renderContext) (string, error) {
	if err := stmt.Validate(); err != nil {
		return "", fmt.Errorf("invalid statement: %w", err)
	}

	var builders []segmentFunc
	switch stmt.Kind {
	case types.KindSelect:
		builders = []segmentFunc{
			r.selectSentence, r.fromSentence, r.joinSentence, r.whereSentence,
			r.groupSentence, r.havingSentence, r.orderSentence, r.limitSentence,
			r.selectExtraSentence,
		}
	case types.KindSelectUnion:
		builders = []segmentFunc{r.unionSentence, r.orderSentence, r.limitSentence}
	case types.KindCount:
		builders = []segmentFunc{r.countSentence, r.fromSentence, r.joinSentence, r.whereSentence}
	case types.KindInsert:
		builders = []segmentFunc{r.insertIntoSentence, r.valuesSentence}
	case types.KindUpdate:
		builders = []segmentFunc{r.updateSentence, r.setSentence, r.whereSentence, r.orderSentence, r.limitSentence}
	case types.KindDelete:
		builders = []segmentFunc{r.deleteSentence, r.whereSentence, r.orderSentence, r.limitSentence}
	case types.KindCreateTable:
		return "", render.NewUnsupportedFeatureError("CREATE TABLE as a subquery")
	default:
		return "", fmt.Errorf("unsupported statement kind: %s", stmt.Kind)
	}

	return r.assemble(stmt, ctx, builders)
}

// renderSubquery renders sub as a nested statement sharing ctx's store.
func (r *Renderer) renderSubquery(sub *types.Statement, ctx *renderContext) (string, error) {
	child, err := ctx.withSubquery(sub)
	if err != nil {
		return "", err
	}
	return r.renderStatement(sub, child)
}
