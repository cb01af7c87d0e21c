// Package executor runs rendered statements on a database/sql connection.
//
// The render core never performs I/O. An Executor renders a statement,
// binds its prepared values in the configured style, runs it and logs the
// outcome with log/slog. Statements slower than the configured threshold are
// reported at warn level.
//
//	exec := executor.New(db, mysql.New())
//	n, err := exec.Count(ctx, fragql.Count(fragql.T("users")).
//		Where(fragql.C(fragql.F("active"), fragql.EQ, true)))
package executor

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/zoobzio/fragql"
)

// Renderer renders statements for execution.
type Renderer interface {
	Render(stmt *fragql.Statement) (*fragql.QueryResult, error)
	RenderLiteral(result *fragql.QueryResult) (string, error)
}

// StatementBuilder produces a statement. *fragql.Builder implements it.
type StatementBuilder interface {
	Build() (*fragql.Statement, error)
}

// Querier is the subset of *sql.DB and *sql.Tx the executor uses.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Executor renders and runs statements.
type Executor struct {
	db            Querier
	owned         *sql.DB
	renderer      Renderer
	logger        *slog.Logger
	bind          BindStyle
	slowThreshold time.Duration
	logLiteral    bool
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithBindStyle sets how prepared values are passed to the driver.
func WithBindStyle(b BindStyle) Option {
	return func(e *Executor) {
		e.bind = b
	}
}

// WithSlowThreshold sets the duration above which a statement is logged as
// slow. Default is DefaultSlowThreshold.
func WithSlowThreshold(d time.Duration) Option {
	return func(e *Executor) {
		e.slowThreshold = d
	}
}

// WithLiteralLogging logs slow statements with values substituted.
func WithLiteralLogging(enabled bool) Option {
	return func(e *Executor) {
		e.logLiteral = enabled
	}
}

// New creates an executor on db, which may be a *sql.DB or a *sql.Tx.
func New(db Querier, r Renderer, opts ...Option) *Executor {
	e := &Executor{
		db:            db,
		renderer:      r,
		logger:        slog.Default(),
		bind:          BindPositional,
		slowThreshold: DefaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DB returns the connection pool opened by Open, or nil.
func (e *Executor) DB() *sql.DB {
	return e.owned
}

// Close closes the connection pool if the executor opened it.
func (e *Executor) Close() error {
	if e.owned == nil {
		return nil
	}
	return e.owned.Close()
}

// Result is the outcome of Run. Which fields are set depends on Kind.
type Result struct {
	Kind fragql.Kind

	// Rows is set for SELECT and UNION statements. The caller closes it.
	Rows *sql.Rows

	// Count is set for COUNT statements.
	Count int64

	// RowsAffected and LastInsertID are set for mutations and DDL.
	RowsAffected int64
	LastInsertID int64
}

// Run executes b, dispatching on its statement kind: COUNT returns a scalar,
// SELECT and UNION return rows, everything else returns affected rows.
func (e *Executor) Run(ctx context.Context, b StatementBuilder) (*Result, error) {
	stmt, err := b.Build()
	if err != nil {
		return nil, err
	}

	switch stmt.Kind {
	case fragql.KindCount:
		n, err := e.count(ctx, stmt)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: stmt.Kind, Count: n}, nil
	case fragql.KindSelect, fragql.KindSelectUnion:
		rows, err := e.query(ctx, stmt)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: stmt.Kind, Rows: rows}, nil
	default:
		res, err := e.exec(ctx, stmt)
		if err != nil {
			return nil, err
		}
		out := &Result{Kind: stmt.Kind}
		// Drivers that cannot report these return an error; the zero value stands.
		out.RowsAffected, _ = res.RowsAffected()
		out.LastInsertID, _ = res.LastInsertId()
		return out, nil
	}
}

// Query executes b and returns its rows. The caller closes them.
func (e *Executor) Query(ctx context.Context, b StatementBuilder) (*sql.Rows, error) {
	stmt, err := b.Build()
	if err != nil {
		return nil, err
	}
	return e.query(ctx, stmt)
}

// Exec executes b and returns the driver result.
func (e *Executor) Exec(ctx context.Context, b StatementBuilder) (sql.Result, error) {
	stmt, err := b.Build()
	if err != nil {
		return nil, err
	}
	return e.exec(ctx, stmt)
}

// Count executes b and scans a single integer.
func (e *Executor) Count(ctx context.Context, b StatementBuilder) (int64, error) {
	stmt, err := b.Build()
	if err != nil {
		return 0, err
	}
	return e.count(ctx, stmt)
}

func (e *Executor) query(ctx context.Context, stmt *fragql.Statement) (*sql.Rows, error) {
	result, query, args, err := e.prepare(stmt)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rows, err := e.db.QueryContext(ctx, query, args...)
	e.record(ctx, result, query, start, err)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", stmt.Kind, err)
	}
	return rows, nil
}

func (e *Executor) exec(ctx context.Context, stmt *fragql.Statement) (sql.Result, error) {
	result, query, args, err := e.prepare(stmt)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := e.db.ExecContext(ctx, query, args...)
	e.record(ctx, result, query, start, err)
	if err != nil {
		return nil, fmt.Errorf("exec %s: %w", stmt.Kind, err)
	}
	return res, nil
}

func (e *Executor) count(ctx context.Context, stmt *fragql.Statement) (int64, error) {
	result, query, args, err := e.prepare(stmt)
	if err != nil {
		return 0, err
	}
	var n int64
	start := time.Now()
	err = e.db.QueryRowContext(ctx, query, args...).Scan(&n)
	e.record(ctx, result, query, start, err)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// prepare renders stmt and shapes the SQL and arguments for the bind style.
func (e *Executor) prepare(stmt *fragql.Statement) (*fragql.QueryResult, string, []any, error) {
	if e.renderer == nil {
		return nil, "", nil, fmt.Errorf("renderer cannot be nil")
	}
	result, err := e.renderer.Render(stmt)
	if err != nil {
		return nil, "", nil, fmt.Errorf("render %s: %w", stmt.Kind, err)
	}
	switch e.bind {
	case BindNamed:
		return result, result.SQL, result.NamedArgs(), nil
	case BindPositional:
		query, args, err := result.Positional()
		if err != nil {
			return nil, "", nil, fmt.Errorf("bind %s: %w", stmt.Kind, err)
		}
		return result, query, args, nil
	default:
		return nil, "", nil, fmt.Errorf("unknown bind style: %s", e.bind)
	}
}

// record logs a finished statement.
func (e *Executor) record(ctx context.Context, result *fragql.QueryResult, query string, start time.Time, err error) {
	duration := time.Since(start)
	if err != nil {
		e.logger.ErrorContext(ctx, "statement failed",
			"kind", result.Kind, "duration", duration, "query", query, "error", err)
		return
	}
	if duration > e.slowThreshold {
		if e.logLiteral {
			if literal, lerr := e.renderer.RenderLiteral(result); lerr == nil {
				query = literal
			}
		}
		e.logger.WarnContext(ctx, "slow query detected",
			"kind", result.Kind, "duration", duration, "query", query, "params", result.Params.Len())
		return
	}
	e.logger.DebugContext(ctx, "statement executed",
		"kind", result.Kind, "duration", duration, "params", result.Params.Len())
}
