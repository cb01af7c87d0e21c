package fragql

import (
	"fmt"
	"strings"

	"github.com/zoobzio/dbml"
	"github.com/zoobzio/fragql/internal/types"
)

// Instance validates table and field references against a DBML schema.
type Instance struct {
	project *dbml.Project
	// Internal indexes for fast validation
	tables map[string]*dbml.Table
	fields map[string]map[string]*dbml.Column // table -> field -> column
}

// NewFromDBML creates a new Instance from a DBML project.
func NewFromDBML(project *dbml.Project) (*Instance, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	a := &Instance{
		project: project,
		tables:  make(map[string]*dbml.Table),
		fields:  make(map[string]map[string]*dbml.Column),
	}

	for _, table := range project.Tables {
		a.tables[table.Name] = table
		a.fields[table.Name] = make(map[string]*dbml.Column)
		for _, col := range table.Columns {
			a.fields[table.Name][col.Name] = col
		}
	}

	return a, nil
}

// Tables returns the declared table names.
func (a *Instance) Tables() []string {
	names := make([]string, 0, len(a.tables))
	for name := range a.tables {
		names = append(names, name)
	}
	return names
}

// validateTable checks if a table exists in the schema.
func (a *Instance) validateTable(name string) error {
	if _, ok := a.tables[name]; !ok {
		return fmt.Errorf("table '%s' not found in schema", name)
	}
	return nil
}

// validateField checks if a field exists in any table in the schema.
func (a *Instance) validateField(field string) error {
	if field == "*" {
		return nil
	}
	for _, tableFields := range a.fields {
		if _, ok := tableFields[field]; ok {
			return nil
		}
	}
	return fmt.Errorf("field '%s' not found in schema", field)
}

// validateTableField checks that field belongs to table.
func (a *Instance) validateTableField(table, field string) error {
	if err := a.validateTable(table); err != nil {
		return err
	}
	if field == "*" {
		return nil
	}
	if _, ok := a.fields[table][field]; !ok {
		return fmt.Errorf("field '%s' not found in table '%s'", field, table)
	}
	return nil
}

// isValidTableAlias checks if a string is a valid single-letter table alias.
func isValidTableAlias(alias string) bool {
	return len(alias) == 1 && alias[0] >= 'a' && alias[0] <= 'z'
}

// TryF creates a validated field reference, returning an error if invalid.
func (a *Instance) TryF(name string) (types.FieldSelector, error) {
	if err := a.validateField(name); err != nil {
		return types.FieldSelector{}, fmt.Errorf("invalid field: %w", err)
	}
	return F(name), nil
}

// F creates a validated field reference.
func (a *Instance) F(name string) types.FieldSelector {
	f, err := a.TryF(name)
	if err != nil {
		panic(err)
	}
	return f
}

// TryTF creates a validated table.field reference. tableOrAlias may be a
// declared table, or a single-letter alias in which case only the field is
// checked.
func (a *Instance) TryTF(tableOrAlias, name string) (types.FieldSelector, error) {
	var err error
	if isValidTableAlias(tableOrAlias) {
		err = a.validateField(name)
	} else {
		err = a.validateTableField(tableOrAlias, name)
	}
	if err != nil {
		return types.FieldSelector{}, fmt.Errorf("invalid field: %w", err)
	}
	return TF(tableOrAlias, name), nil
}

// TF creates a validated table.field reference.
func (a *Instance) TF(tableOrAlias, name string) types.FieldSelector {
	f, err := a.TryTF(tableOrAlias, name)
	if err != nil {
		panic(err)
	}
	return f
}

// TryT creates a validated table source, returning an error if invalid.
func (a *Instance) TryT(name string, alias ...string) (types.Source, error) {
	if err := a.validateTable(name); err != nil {
		return types.Source{}, fmt.Errorf("invalid table: %w", err)
	}

	if len(alias) > 1 {
		return types.Source{}, fmt.Errorf("only one alias allowed")
	}
	if len(alias) == 1 && !isValidTableAlias(alias[0]) {
		return types.Source{}, fmt.Errorf("alias must be single lowercase letter (a-z), got: %s", alias[0])
	}

	return T(name, alias...), nil
}

// T creates a validated table source.
func (a *Instance) T(name string, alias ...string) types.Source {
	t, err := a.TryT(name, alias...)
	if err != nil {
		panic(err)
	}
	return t
}

// TryColumns validates INSERT column names against table.
func (a *Instance) TryColumns(table string, columns ...string) ([]string, error) {
	var missing []string
	for _, c := range columns {
		if err := a.validateTableField(table, c); err != nil {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("invalid columns for table '%s': %s", table, strings.Join(missing, ", "))
	}
	return columns, nil
}
