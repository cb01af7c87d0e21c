package types

import (
	"fmt"

	"github.com/zoobzio/fragql/internal/render"
	"github.com/zoobzio/fragql/schema"
)

// Kind discriminates the statement being built.
type Kind string

const (
	KindSelect      Kind = "SELECT"
	KindSelectUnion Kind = "SELECT_UNION"
	KindCount       Kind = "COUNT"
	KindInsert      Kind = "INSERT"
	KindUpdate      Kind = "UPDATE"
	KindDelete      Kind = "DELETE"
	KindCreateTable Kind = "CREATE_TABLE"
)

// Constants for subquery handling.
const (
	MaxSubqueryDepth = 8
)

// Statement is the fragment tree of one SQL operation.
// This is exported from the internal package so the base package can use it,
// but external users cannot import this package.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type Statement struct {
	Kind        Kind
	Projections []Projection
	Sources     []Source
	Joins       []Join
	Where       []Condition
	GroupBy     []GroupBy
	Having      []Predicate
	OrderBy     []OrderBy
	Limit       *Pagination
	Assignments []Assignment // UPDATE
	Columns     []string     // INSERT
	Rows        []Row        // INSERT
	Unions      []*Statement // SELECT_UNION
	UnionAll    bool
	ForUpdate   bool
	Table       *schema.Table // CREATE_TABLE
}

// FirstSource returns the first declared source, if any.
func (s *Statement) FirstSource() (Source, bool) {
	if len(s.Sources) == 0 {
		return Source{}, false
	}
	return s.Sources[0], true
}

// Validate performs basic validation on the statement.
// Empty fragment lists are never an error; mutation kinds need a target.
func (s *Statement) Validate() error {
	switch s.Kind {
	case KindSelect, KindCount:
	case KindSelectUnion:
		if len(s.Unions) == 0 {
			return fmt.Errorf("UNION requires at least one query")
		}
	case KindInsert:
		if len(s.Sources) == 0 {
			return fmt.Errorf("INSERT: %w", render.ErrMissingSource)
		}
		if len(s.Columns) == 0 {
			return fmt.Errorf("INSERT requires at least one column")
		}
		if len(s.Rows) == 0 {
			return fmt.Errorf("INSERT requires at least one value row")
		}
	case KindUpdate:
		if len(s.Sources) == 0 {
			return fmt.Errorf("UPDATE: %w", render.ErrMissingSource)
		}
		if len(s.Assignments) == 0 {
			return fmt.Errorf("UPDATE requires at least one assignment")
		}
	case KindDelete:
		if len(s.Sources) == 0 {
			return fmt.Errorf("DELETE: %w", render.ErrMissingSource)
		}
	case KindCreateTable:
		if s.Table == nil {
			return render.NewConfigurationError("table", render.ErrMissingTable)
		}
	default:
		return fmt.Errorf("unsupported statement kind: %s", s.Kind)
	}

	if s.Limit != nil && s.Limit.Count < 0 {
		return fmt.Errorf("LIMIT count must not be negative, got %d", s.Limit.Count)
	}

	return nil
}

// Subqueries returns every statement nested directly inside s.
func (s *Statement) Subqueries() []*Statement {
	var subs []*Statement
	addCond := func(c Condition) {
		switch p := c.(type) {
		case Predicate:
			if sq, ok := p.Value.(Subquery); ok && sq.Statement != nil {
				subs = append(subs, sq.Statement)
			}
		case PredicateInList:
			if p.Subquery != nil {
				subs = append(subs, p.Subquery)
			}
		}
	}

	for _, p := range s.Projections {
		if p.Subquery != nil {
			subs = append(subs, p.Subquery)
		}
	}
	for _, src := range s.Sources {
		if src.Subquery != nil {
			subs = append(subs, src.Subquery)
		}
	}
	for _, j := range s.Joins {
		if j.Source.Subquery != nil {
			subs = append(subs, j.Source.Subquery)
		}
		for _, c := range j.On {
			addCond(c)
		}
	}
	for _, c := range s.Where {
		addCond(c)
	}
	for _, h := range s.Having {
		addCond(h)
	}
	subs = append(subs, s.Unions...)
	return subs
}

// Contains reports whether target is s or is nested anywhere inside s.
func (s *Statement) Contains(target *Statement) bool {
	return s.contains(target, make(map[*Statement]bool))
}

func (s *Statement) contains(target *Statement, visited map[*Statement]bool) bool {
	if s == target {
		return true
	}
	if visited[s] {
		return false
	}
	visited[s] = true
	for _, sub := range s.Subqueries() {
		if sub.contains(target, visited) {
			return true
		}
	}
	return false
}
