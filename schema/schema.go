// Package schema describes tables for DDL generation.
//
// Descriptors are plain values built by the caller. The DDL generator in the
// dialect packages reads them and never mutates them.
//
//	users := &schema.Table{
//		Name: "users",
//		Columns: []schema.Column{
//			{Name: "id", DataType: "int", Length: 11, NotNull: true, AutoIncrement: true, PrimaryKey: true},
//			{Name: "name", DataType: "varchar", Length: 32, NotNull: true},
//		},
//		Keys:    []schema.Key{{Kind: schema.KeyPrimary, Name: "id", Fields: []string{"id"}}},
//		Options: []schema.Option{{Name: "ENGINE", Value: "InnoDB"}},
//	}
package schema

import (
	"fmt"
	"strings"
)

// KeyKind is the kind of a table key.
type KeyKind int

const (
	KeyIndex KeyKind = iota // plain KEY ... USING <type>
	KeyPrimary
	KeyUnique
	KeyForeign
)

// String returns the SQL keyword for primary and unique keys.
func (k KeyKind) String() string {
	switch k {
	case KeyPrimary:
		return "PRIMARY"
	case KeyUnique:
		return "UNIQUE"
	case KeyForeign:
		return "FOREIGN"
	default:
		return ""
	}
}

// Table describes one table.
type Table struct {
	Name        string   `json:"name" yaml:"name"`
	Temporary   bool     `json:"temporary,omitempty" yaml:"temporary,omitempty"`
	IfNotExists bool     `json:"if_not_exists,omitempty" yaml:"if_not_exists,omitempty"`
	Columns     []Column `json:"columns" yaml:"columns"`
	Keys        []Key    `json:"keys,omitempty" yaml:"keys,omitempty"`
	Options     []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// Column describes one column, in declaration order.
type Column struct {
	Name      string `json:"name" yaml:"name"`
	DataType  string `json:"type" yaml:"type"`
	Length    int    `json:"length,omitempty" yaml:"length,omitempty"`
	Precision int    `json:"precision,omitempty" yaml:"precision,omitempty"`

	NotNull       bool `json:"not_null,omitempty" yaml:"not_null,omitempty"`
	Unsigned      bool `json:"unsigned,omitempty" yaml:"unsigned,omitempty"`
	AutoIncrement bool `json:"auto_increment,omitempty" yaml:"auto_increment,omitempty"`
	Unique        bool `json:"unique,omitempty" yaml:"unique,omitempty"`
	PrimaryKey    bool `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`

	// Default is emitted verbatim after DEFAULT.
	Default *string `json:"default,omitempty" yaml:"default,omitempty"`
	Comment *string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// Enum holds the full ordered label set of an enumerated column. The
	// first label is the "unset" sentinel and is not emitted.
	Enum []string `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// Key describes an index or constraint.
type Key struct {
	Kind      KeyKind  `json:"kind" yaml:"kind"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Fields    []string `json:"fields" yaml:"fields"`
	IndexType string   `json:"index_type,omitempty" yaml:"index_type,omitempty"`

	// Foreign keys only.
	References *Reference `json:"references,omitempty" yaml:"references,omitempty"`
	OnDelete   string     `json:"on_delete,omitempty" yaml:"on_delete,omitempty"`
	OnUpdate   string     `json:"on_update,omitempty" yaml:"on_update,omitempty"`
}

// Reference is the target of a foreign key.
type Reference struct {
	Table string `json:"table" yaml:"table"`
	Field string `json:"field" yaml:"field"`
}

// Option is a trailing table option such as ENGINE=InnoDB.
type Option struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// KeyName returns the key name, falling back to its fields joined by '_'.
func (k Key) KeyName() string {
	if k.Name != "" {
		return k.Name
	}
	return strings.Join(k.Fields, "_")
}

// IsEnum reports whether the column is enumerated.
func (c Column) IsEnum() bool {
	return len(c.Enum) > 0
}

// EnumLabels returns the labels emitted in the column definition.
func (c Column) EnumLabels() []string {
	if len(c.Enum) < 2 {
		return nil
	}
	return c.Enum[1:]
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Validate checks the descriptor for structural problems.
func (t *Table) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("table name is required")
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("table %s has no columns", t.Name)
	}

	seen := make(map[string]bool, len(t.Columns))
	for i, c := range t.Columns {
		if c.Name == "" {
			return fmt.Errorf("table %s: column %d has no name", t.Name, i)
		}
		if c.DataType == "" {
			return fmt.Errorf("table %s: column %s has no data type", t.Name, c.Name)
		}
		if seen[c.Name] {
			return fmt.Errorf("table %s: duplicate column %s", t.Name, c.Name)
		}
		seen[c.Name] = true
	}

	for _, k := range t.Keys {
		for _, f := range k.Fields {
			if !seen[f] {
				return fmt.Errorf("table %s: key %s references unknown column %s", t.Name, k.KeyName(), f)
			}
		}
		if k.Kind == KeyForeign && k.References == nil {
			return fmt.Errorf("table %s: foreign key %s has no reference", t.Name, k.KeyName())
		}
	}

	return nil
}
