package executor

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/zoobzio/fragql/internal/render"
)

// BindStyle selects how placeholder tokens reach the driver.
type BindStyle int

const (
	// BindPositional rewrites @pN tokens to '?' and passes values in order.
	// go-sql-driver/mysql only accepts this style.
	BindPositional BindStyle = iota
	// BindNamed keeps the @pN tokens and passes sql.Named values.
	BindNamed
)

// String returns the bind style name.
func (b BindStyle) String() string {
	switch b {
	case BindPositional:
		return "positional"
	case BindNamed:
		return "named"
	default:
		return fmt.Sprintf("BindStyle(%d)", int(b))
	}
}

// DefaultSlowThreshold is the slow-query threshold when none is configured.
const DefaultSlowThreshold = 100 * time.Millisecond

// ErrNamedBindUnsupported is returned by Open when a MySQL connection is
// configured for named binding.
var ErrNamedBindUnsupported = errors.New("go-sql-driver/mysql does not support named parameters")

// Config describes a MySQL connection and how statements are executed on it.
type Config struct {
	// DSN in go-sql-driver/mysql format, e.g. "user:pass@tcp(host:3306)/db".
	DSN string

	Bind          BindStyle
	SlowThreshold time.Duration

	// LogLiteral logs slow statements with their values substituted
	// instead of the placeholder text.
	LogLiteral bool

	Logger *slog.Logger
}

// driverConfig parses the DSN and applies the settings the executor relies on.
func (c Config) driverConfig() (*mysql.Config, error) {
	if c.DSN == "" {
		return nil, render.NewConfigurationError("dsn", errors.New("DSN is required"))
	}
	cfg, err := mysql.ParseDSN(c.DSN)
	if err != nil {
		return nil, render.NewConfigurationError("dsn", err)
	}
	// DATETIME columns scan into time.Time, matching how DateTime values bind.
	cfg.ParseTime = true
	return cfg, nil
}

// NormalizedDSN returns the DSN as the driver will use it.
func (c Config) NormalizedDSN() (string, error) {
	cfg, err := c.driverConfig()
	if err != nil {
		return "", err
	}
	return cfg.FormatDSN(), nil
}

// Validate checks the configuration without connecting.
func (c Config) Validate() error {
	if _, err := c.driverConfig(); err != nil {
		return err
	}
	if c.Bind == BindNamed {
		return render.NewConfigurationError("bind", ErrNamedBindUnsupported)
	}
	if c.SlowThreshold < 0 {
		return render.NewConfigurationError("slow threshold", fmt.Errorf("must not be negative, got %s", c.SlowThreshold))
	}
	return nil
}

// options converts the configuration to executor options.
func (c Config) options() []Option {
	opts := []Option{WithBindStyle(c.Bind), WithLiteralLogging(c.LogLiteral)}
	if c.SlowThreshold > 0 {
		opts = append(opts, WithSlowThreshold(c.SlowThreshold))
	}
	if c.Logger != nil {
		opts = append(opts, WithLogger(c.Logger))
	}
	return opts
}

// Open connects to MySQL and returns an executor that owns the connection
// pool. Close releases it.
//
// Example:
//
//	exec, err := executor.Open(executor.Config{
//	    DSN:           "app:secret@tcp(localhost:3306)/shop",
//	    SlowThreshold: 200 * time.Millisecond,
//	}, mysql.New())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer exec.Close()
func Open(cfg Config, r Renderer, opts ...Option) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dcfg, err := cfg.driverConfig()
	if err != nil {
		return nil, err
	}
	connector, err := mysql.NewConnector(dcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}
	db := sql.OpenDB(connector)

	e := New(db, r, append(cfg.options(), opts...)...)
	e.owned = db
	e.logger.Debug("connection pool opened", "addr", dcfg.Addr, "database", dcfg.DBName)
	return e, nil
}
