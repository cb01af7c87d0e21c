package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a set of table descriptors in declarative form.
//
//	tables:
//	  - name: users
//	    columns:
//	      - {name: id, type: int, length: 11, not_null: true, auto_increment: true}
//	    keys:
//	      - {kind: primary, name: id, fields: [id]}
//	    options:
//	      - {name: ENGINE, value: InnoDB}
type Document struct {
	Tables []*Table `json:"tables" yaml:"tables"`
}

var keyKindNames = map[string]KeyKind{
	"index":   KeyIndex,
	"key":     KeyIndex,
	"primary": KeyPrimary,
	"unique":  KeyUnique,
	"foreign": KeyForeign,
}

// ParseKeyKind converts a declarative key kind name.
func ParseKeyKind(s string) (KeyKind, error) {
	k, ok := keyKindNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return KeyIndex, fmt.Errorf("unknown key kind %q", s)
	}
	return k, nil
}

// MarshalYAML encodes the kind by name.
func (k KeyKind) MarshalYAML() (any, error) {
	if k == KeyIndex {
		return "index", nil
	}
	return strings.ToLower(k.String()), nil
}

// UnmarshalYAML decodes a kind name.
func (k *KeyKind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseKeyKind(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*k = parsed
	return nil
}

// ParseYAML decodes a Document and validates every table in it.
// Unknown fields are rejected.
func ParseYAML(data []byte) ([]*Table, error) {
	return DecodeYAML(bytes.NewReader(data))
}

// DecodeYAML is ParseYAML over a reader.
func DecodeYAML(r io.Reader) ([]*Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty schema document")
		}
		return nil, fmt.Errorf("invalid schema document: %w", err)
	}

	for i, t := range doc.Tables {
		if t == nil {
			return nil, fmt.Errorf("table %d is empty", i)
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	return doc.Tables, nil
}

// MarshalYAML encodes tables as a Document.
func MarshalYAML(tables ...*Table) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Tables: tables}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
