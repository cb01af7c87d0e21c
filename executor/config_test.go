package executor_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/fragql"
	"github.com/zoobzio/fragql/executor"
	"github.com/zoobzio/fragql/mysql"
)

func TestConfig_NormalizedDSN(t *testing.T) {
	cfg := executor.Config{DSN: "app:secret@tcp(db.internal:3306)/shop"}

	dsn, err := cfg.NormalizedDSN()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dsn, "app:secret@tcp(db.internal:3306)/shop"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     executor.Config
		wantErr bool
	}{
		{"valid", executor.Config{DSN: "u:p@tcp(localhost:3306)/db"}, false},
		{"valid with threshold", executor.Config{DSN: "u:p@/db", SlowThreshold: time.Second}, false},
		{"empty dsn", executor.Config{}, true},
		{"malformed dsn", executor.Config{DSN: "u:p@tcp(localhost:3306"}, true},
		{"named binding", executor.Config{DSN: "u:p@/db", Bind: executor.BindNamed}, true},
		{"negative threshold", executor.Config{DSN: "u:p@/db", SlowThreshold: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var cfgErr *fragql.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "want *ConfigurationError, got %T", err)
		})
	}
}

func TestConfig_NamedBindRejected(t *testing.T) {
	err := executor.Config{DSN: "u:p@/db", Bind: executor.BindNamed}.Validate()
	assert.ErrorIs(t, err, executor.ErrNamedBindUnsupported)
}

func TestOpen(t *testing.T) {
	// sql.OpenDB does not dial; no server is needed.
	exec, err := executor.Open(executor.Config{DSN: "u:p@tcp(127.0.0.1:3306)/db"}, mysql.New())
	require.NoError(t, err)
	require.NotNil(t, exec.DB())
	require.NoError(t, exec.Close())
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := executor.Open(executor.Config{}, mysql.New())
	require.Error(t, err)
}

func TestBindStyle_String(t *testing.T) {
	assert.Equal(t, "positional", executor.BindPositional.String())
	assert.Equal(t, "named", executor.BindNamed.String())
	assert.Equal(t, "BindStyle(9)", executor.BindStyle(9).String())
}
