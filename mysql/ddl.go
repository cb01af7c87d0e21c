package mysql

import (
	"strconv"
	"strings"

	"github.com/zoobzio/fragql/internal/render"
	"github.com/zoobzio/fragql/schema"
)

// RenderCreateTable converts a table descriptor to a CREATE TABLE statement.
func (r *Renderer) RenderCreateTable(table *schema.Table) (string, error) {
	if table == nil || table.Name == "" {
		return "", render.NewConfigurationError("table", render.ErrMissingTable)
	}

	var sql strings.Builder
	sql.WriteString("CREATE ")
	if table.Temporary {
		sql.WriteString("TEMPORARY ")
	}
	sql.WriteString("TABLE ")
	if table.IfNotExists {
		sql.WriteString("IF NOT EXISTS ")
	}
	sql.WriteString(quoteIdentifier(table.Name))
	sql.WriteString(" (")

	entries := make([]string, 0, len(table.Columns)+len(table.Keys))
	for i := range table.Columns {
		entries = append(entries, r.renderColumn(&table.Columns[i]))
	}
	for i := range table.Keys {
		entries = append(entries, r.renderKey(&table.Keys[i]))
	}
	sql.WriteString(strings.Join(entries, ","))
	sql.WriteString(")")

	for _, opt := range table.Options {
		sql.WriteString(" ")
		sql.WriteString(opt.Name)
		sql.WriteString("=")
		sql.WriteString(opt.Value)
	}

	return sql.String(), nil
}

// renderColumn emits the column clauses in their fixed order.
func (r *Renderer) renderColumn(c *schema.Column) string {
	var b strings.Builder
	b.WriteString(quoteIdentifier(c.Name))
	b.WriteString(" ")
	b.WriteString(c.DataType)

	if c.Length > 0 {
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(c.Length))
		if c.Precision > 0 {
			b.WriteString(",")
			b.WriteString(strconv.Itoa(c.Precision))
		}
		b.WriteString(")")
	}
	if c.IsEnum() {
		labels := c.EnumLabels()
		quoted := make([]string, len(labels))
		for i, l := range labels {
			quoted[i] = quoteString(l)
		}
		b.WriteString("(")
		b.WriteString(strings.Join(quoted, ","))
		b.WriteString(")")
	}
	if c.Unsigned {
		b.WriteString(" UNSIGNED")
	}
	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	if c.AutoIncrement {
		b.WriteString(" AUTO_INCREMENT")
	}
	if c.Unique && !c.PrimaryKey {
		b.WriteString(" UNIQUE")
	}
	if c.Default != nil {
		b.WriteString(" DEFAULT ")
		b.WriteString(*c.Default)
	}
	if c.Comment != nil {
		b.WriteString(" COMMENT ")
		b.WriteString(quoteString(*c.Comment))
	}
	return b.String()
}

func (r *Renderer) renderKey(k *schema.Key) string {
	fields := make([]string, len(k.Fields))
	for i, f := range k.Fields {
		fields[i] = quoteIdentifier(f)
	}
	fieldList := "(" + strings.Join(fields, ", ") + ")"

	switch k.Kind {
	case schema.KeyPrimary, schema.KeyUnique:
		return k.Kind.String() + " KEY " + quoteIdentifier("pk_"+k.KeyName()) + " " + fieldList
	case schema.KeyForeign:
		var b strings.Builder
		b.WriteString("CONSTRAINT ")
		b.WriteString(quoteIdentifier("fk_" + k.KeyName()))
		if len(fields) > 0 {
			b.WriteString(" FOREIGN KEY ")
			b.WriteString(fieldList)
		}
		if k.References != nil {
			b.WriteString(" REFERENCES ")
			b.WriteString(quoteIdentifier(k.References.Table))
			b.WriteString("(")
			b.WriteString(quoteIdentifier(k.References.Field))
			b.WriteString(")")
		}
		if k.OnDelete != "" {
			b.WriteString(" ON DELETE ")
			b.WriteString(k.OnDelete)
		}
		if k.OnUpdate != "" {
			b.WriteString(" ON UPDATE ")
			b.WriteString(k.OnUpdate)
		}
		return b.String()
	default:
		rendered := "KEY " + quoteIdentifier(k.KeyName()) + " " + fieldList
		if k.IndexType != "" {
			rendered += " USING " + k.IndexType
		}
		return rendered
	}
}
