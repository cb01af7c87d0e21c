package schema

import (
	"strings"
	"testing"
)

const shopSchema = `
tables:
  - name: users
    if_not_exists: true
    columns:
      - {name: id, type: int, length: 11, not_null: true, auto_increment: true, primary_key: true}
      - {name: name, type: varchar, length: 32, not_null: true, comment: "login name"}
      - {name: status, type: enum, enum: [NONE, active, banned], default: "'active'"}
    keys:
      - {kind: primary, name: id, fields: [id]}
      - {kind: index, fields: [name], index_type: BTREE}
    options:
      - {name: ENGINE, value: InnoDB}
  - name: posts
    columns:
      - {name: id, type: int, not_null: true}
      - {name: user_id, type: int, not_null: true}
    keys:
      - kind: foreign
        name: posts_user
        fields: [user_id]
        references: {table: users, field: id}
        on_delete: CASCADE
`

func TestParseYAML(t *testing.T) {
	tables, err := ParseYAML([]byte(shopSchema))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("len(tables) = %d, want 2", len(tables))
	}

	users := tables[0]
	if !users.IfNotExists || len(users.Columns) != 3 || len(users.Keys) != 2 {
		t.Errorf("users = %+v", users)
	}
	if users.Keys[0].Kind != KeyPrimary || users.Keys[1].Kind != KeyIndex {
		t.Errorf("key kinds = %v, %v", users.Keys[0].Kind, users.Keys[1].Kind)
	}
	if users.Keys[1].KeyName() != "name" {
		t.Errorf("KeyName() = %q, want name", users.Keys[1].KeyName())
	}
	status, ok := users.Column("status")
	if !ok || status.Default == nil || *status.Default != "'active'" {
		t.Errorf("status column = %+v", status)
	}
	if got := status.EnumLabels(); len(got) != 2 || got[0] != "active" {
		t.Errorf("EnumLabels() = %v", got)
	}
	name, _ := users.Column("name")
	if name.Comment == nil || *name.Comment != "login name" {
		t.Errorf("name comment = %v", name.Comment)
	}

	fk := tables[1].Keys[0]
	if fk.Kind != KeyForeign || fk.References == nil || fk.References.Table != "users" || fk.OnDelete != "CASCADE" {
		t.Errorf("foreign key = %+v", fk)
	}
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", "empty schema document"},
		{"unknown field", "tables:\n  - name: t\n    colums: []\n", "invalid schema document"},
		{"unknown key kind", "tables:\n  - name: t\n    columns: [{name: id, type: int}]\n    keys: [{kind: spatial, fields: [id]}]\n", "unknown key kind"},
		{"invalid table", "tables:\n  - name: t\n", "has no columns"},
		{"null table", "tables:\n  - null\n", "table 0 is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestMarshalYAML_RoundTrip(t *testing.T) {
	in := usersTable()
	in.Keys = append(in.Keys, Key{Kind: KeyUnique, Name: "name", Fields: []string{"name"}})

	data, err := MarshalYAML(in)
	if err != nil {
		t.Fatalf("MarshalYAML() error = %v", err)
	}
	if !strings.Contains(string(data), "kind: unique") {
		t.Errorf("encoded document missing key kind name:\n%s", data)
	}

	out, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML() error = %v\n%s", err, data)
	}
	if len(out) != 1 || out[0].Name != "users" || len(out[0].Keys) != 2 || out[0].Keys[1].Kind != KeyUnique {
		t.Errorf("round trip = %+v", out[0])
	}
}

func TestParseKeyKind(t *testing.T) {
	for name, want := range map[string]KeyKind{"PRIMARY": KeyPrimary, " key ": KeyIndex, "foreign": KeyForeign} {
		got, err := ParseKeyKind(name)
		if err != nil || got != want {
			t.Errorf("ParseKeyKind(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
}
