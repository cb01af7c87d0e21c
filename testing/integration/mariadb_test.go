package integration

import (
	"context"
	"testing"
	"time"

	"github.com/zoobzio/dbml"
	"github.com/zoobzio/fragql"
	"github.com/zoobzio/fragql/executor"
	"github.com/zoobzio/fragql/mysql"
	"github.com/zoobzio/fragql/schema"
)

func usersTable() *schema.Table {
	return &schema.Table{
		Name:        "users",
		IfNotExists: true,
		Columns: []schema.Column{
			{Name: "id", DataType: "bigint", NotNull: true, AutoIncrement: true, PrimaryKey: true},
			{Name: "username", DataType: "varchar", Length: 64, NotNull: true},
			{Name: "age", DataType: "int"},
			{Name: "active", DataType: "boolean"},
			{Name: "status", DataType: "enum", Enum: []string{"NONE", "active", "banned"}},
			{Name: "created_at", DataType: "datetime"},
		},
		Keys: []schema.Key{
			{Kind: schema.KeyPrimary, Name: "id", Fields: []string{"id"}},
			{Kind: schema.KeyUnique, Name: "username", Fields: []string{"username"}},
			{Kind: schema.KeyIndex, Fields: []string{"age"}, IndexType: "BTREE"},
		},
		Options: []schema.Option{{Name: "ENGINE", Value: "InnoDB"}},
	}
}

func postsTable() *schema.Table {
	zero := "0"
	return &schema.Table{
		Name:        "posts",
		IfNotExists: true,
		Columns: []schema.Column{
			{Name: "id", DataType: "bigint", NotNull: true, AutoIncrement: true, PrimaryKey: true},
			{Name: "user_id", DataType: "bigint", NotNull: true},
			{Name: "title", DataType: "varchar", Length: 255, NotNull: true},
			{Name: "views", DataType: "int", NotNull: true, Default: &zero},
		},
		Keys: []schema.Key{
			{Kind: schema.KeyPrimary, Name: "id", Fields: []string{"id"}},
			{
				Kind:       schema.KeyForeign,
				Name:       "posts_user",
				Fields:     []string{"user_id"},
				References: &schema.Reference{Table: "users", Field: "id"},
				OnDelete:   "CASCADE",
				OnUpdate:   "RESTRICT",
			},
		},
		Options: []schema.Option{{Name: "ENGINE", Value: "InnoDB"}},
	}
}

// createTestInstance mirrors the DDL above for schema-validated references.
func createTestInstance(t *testing.T) *fragql.Instance {
	t.Helper()

	project := dbml.NewProject("fragql_test")

	users := dbml.NewTable("users")
	for _, c := range usersTable().Columns {
		users.AddColumn(dbml.NewColumn(c.Name, c.DataType))
	}
	project.AddTable(users)

	posts := dbml.NewTable("posts")
	for _, c := range postsTable().Columns {
		posts.AddColumn(dbml.NewColumn(c.Name, c.DataType))
	}
	project.AddTable(posts)

	instance, err := fragql.NewFromDBML(project)
	if err != nil {
		t.Fatalf("Failed to create instance: %v", err)
	}
	return instance
}

// setupSchema recreates the tables through the DDL generator and seeds them.
func setupSchema(ctx context.Context, t *testing.T) (*MariaDBContainer, *executor.Executor) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	mc := getMariaDBContainer(t)
	mc.Exec(ctx, t, "DROP TABLE IF EXISTS `posts`")
	mc.Exec(ctx, t, "DROP TABLE IF EXISTS `users`")

	exec, err := executor.Open(executor.Config{DSN: mc.connStr, SlowThreshold: time.Second}, mysql.New())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = exec.Close() })

	for _, table := range []*schema.Table{usersTable(), postsTable()} {
		if _, err := exec.Exec(ctx, fragql.CreateTable(table)); err != nil {
			t.Fatalf("CREATE TABLE %s failed: %v", table.Name, err)
		}
	}

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err = exec.Exec(ctx, fragql.Insert(fragql.T("users")).
		Values(map[string]any{"username": "alice", "age": 30, "active": true, "status": fragql.E("active", 1), "created_at": created}).
		Values(map[string]any{"username": "bob", "age": 17, "active": false, "status": fragql.E("banned", 2), "created_at": created}).
		Values(map[string]any{"username": "o'brien \\ co", "age": 45, "active": true, "status": fragql.E("active", 1)}).
		Values(map[string]any{"username": "dave"}))
	if err != nil {
		t.Fatalf("seed users failed: %v", err)
	}

	_, err = exec.Exec(ctx, fragql.Insert(fragql.T("posts")).
		Values(map[string]any{"user_id": 1, "title": "first", "views": 10}).
		Values(map[string]any{"user_id": 1, "title": "second", "views": 500}).
		Values(map[string]any{"user_id": 3, "title": "third", "views": 1200}))
	if err != nil {
		t.Fatalf("seed posts failed: %v", err)
	}

	return mc, exec
}

func TestMariaDB_CreateTable(t *testing.T) {
	ctx := context.Background()
	mc, _ := setupSchema(ctx, t)

	var n int
	err := mc.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM information_schema.table_constraints WHERE table_schema = DATABASE() AND constraint_type = 'FOREIGN KEY' AND constraint_name = 'fk_posts_user'").
		Scan(&n)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected foreign key fk_posts_user, found %d", n)
	}
}

func TestMariaDB_Count(t *testing.T) {
	ctx := context.Background()
	_, exec := setupSchema(ctx, t)
	instance := createTestInstance(t)

	tests := []struct {
		name  string
		query *fragql.Builder
		want  int64
	}{
		{"all", fragql.Count(instance.T("users")), 4},
		{"bool", fragql.Count(instance.T("users")).Where(fragql.C(instance.F("active"), fragql.EQ, true)), 2},
		{"null", fragql.Count(instance.T("users")).Where(fragql.C(instance.F("age"), fragql.EQ, nil)), 1},
		{"enum", fragql.Count(instance.T("users")).Where(fragql.C(instance.F("status"), fragql.EQ, fragql.E("banned", 2))), 1},
		{"or", fragql.Count(instance.T("users")).
			Where(fragql.C(instance.F("age"), fragql.LT, 18)).
			OrWhere(fragql.C(instance.F("age"), fragql.GT, 40)), 2},
		{"not in", fragql.Count(instance.T("users")).WhereNotIn(instance.F("username"), "alice", "bob"), 2},
		{"escaped text", fragql.Count(instance.T("users")).Where(fragql.C(instance.F("username"), fragql.EQ, "o'brien \\ co")), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := exec.Count(ctx, tt.query)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if n != tt.want {
				t.Errorf("Count = %d, want %d", n, tt.want)
			}
		})
	}
}

// The literal rendering must select the same rows as the prepared one.
func TestMariaDB_LiteralMatchesPrepared(t *testing.T) {
	ctx := context.Background()
	mc, exec := setupSchema(ctx, t)
	r := mysql.New()

	query := fragql.Count(fragql.T("users")).
		Where(fragql.C(fragql.F("username"), fragql.EQ, "o'brien \\ co")).
		WhereIn(fragql.F("status"), fragql.E("active", 1))

	prepared, err := exec.Count(ctx, query)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}

	if _, err := query.RenderPrepared(r, false); err != nil {
		t.Fatalf("RenderPrepared failed: %v", err)
	}
	literal, err := query.RenderLiteral(r)
	if err != nil {
		t.Fatalf("RenderLiteral failed: %v", err)
	}

	var n int64
	if err := mc.db.QueryRowContext(ctx, literal).Scan(&n); err != nil {
		t.Fatalf("literal query failed: %v\nSQL: %s", err, literal)
	}
	if n != prepared || n != 1 {
		t.Errorf("literal count = %d, prepared count = %d, want 1", n, prepared)
	}
}

func TestMariaDB_Join(t *testing.T) {
	ctx := context.Background()
	_, exec := setupSchema(ctx, t)
	instance := createTestInstance(t)

	rows, err := exec.Query(ctx,
		fragql.Select(instance.T("users", "u")).
			Fields(instance.TF("u", "username"), instance.TF("p", "title")).
			Join(instance.T("posts", "p"), fragql.CF(instance.TF("p", "user_id"), fragql.EQ, instance.TF("u", "id"))).
			Where(fragql.C(instance.TF("p", "views"), fragql.GT, 100)).
			OrderBy(instance.TF("p", "views"), fragql.DESC))
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var username, title string
		if err := rows.Scan(&username, &title); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(titles) != 2 || titles[0] != "third" || titles[1] != "second" {
		t.Errorf("titles = %v, want [third second]", titles)
	}
}

func TestMariaDB_Pagination(t *testing.T) {
	ctx := context.Background()
	_, exec := setupSchema(ctx, t)

	rows, err := exec.Query(ctx,
		fragql.Select(fragql.T("users")).
			Fields(fragql.F("username")).
			OrderBy(fragql.F("id"), fragql.ASC).
			Limit(2).
			Offset(1))
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		names = append(names, name)
	}
	if len(names) != 2 || names[0] != "bob" || names[1] != "o'brien \\ co" {
		t.Errorf("names = %q, want [bob o'brien \\ co]", names)
	}
}

func TestMariaDB_Union(t *testing.T) {
	ctx := context.Background()
	_, exec := setupSchema(ctx, t)

	young := fragql.Select(fragql.T("users")).Fields(fragql.F("username")).Where(fragql.C(fragql.F("age"), fragql.LT, 18))
	old := fragql.Select(fragql.T("users")).Fields(fragql.F("username")).Where(fragql.C(fragql.F("age"), fragql.GT, 40))

	res, err := exec.Run(ctx, fragql.Union(young, old))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	defer res.Rows.Close()

	count := 0
	for res.Rows.Next() {
		count++
	}
	if count != 2 {
		t.Errorf("Expected 2 rows, got %d", count)
	}
}

func TestMariaDB_UpdateWithSubquery(t *testing.T) {
	ctx := context.Background()
	_, exec := setupSchema(ctx, t)

	popular := fragql.Select(fragql.SubAs(
		fragql.Select(fragql.T("posts")).Fields(fragql.F("user_id")).Where(fragql.C(fragql.F("views"), fragql.GT, 1000)),
		"x",
	)).Fields(fragql.F("user_id"))

	res, err := exec.Run(ctx,
		fragql.Update(fragql.T("users")).
			Set(fragql.F("status"), fragql.E("banned", 2)).
			Set(fragql.F("age"), nil).
			WhereInSub(fragql.F("id"), fragql.Sub(popular)))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.RowsAffected != 1 {
		t.Errorf("RowsAffected = %d, want 1", res.RowsAffected)
	}

	n, err := exec.Count(ctx, fragql.Count(fragql.T("users")).Where(fragql.C(fragql.F("status"), fragql.EQ, fragql.E("banned", 2))))
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("banned users = %d, want 2", n)
	}
}

func TestMariaDB_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	_, exec := setupSchema(ctx, t)

	res, err := exec.Run(ctx, fragql.Delete(fragql.T("users")).Where(fragql.C(fragql.F("username"), fragql.EQ, "alice")))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.RowsAffected != 1 {
		t.Errorf("RowsAffected = %d, want 1", res.RowsAffected)
	}

	n, err := exec.Count(ctx, fragql.Count(fragql.T("posts")))
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("posts after cascade = %d, want 1", n)
	}
}

func TestMariaDB_ForUpdate(t *testing.T) {
	ctx := context.Background()
	_, exec := setupSchema(ctx, t)

	tx, err := exec.DB().BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx failed: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	txExec := executor.New(tx, mysql.New())
	rows, err := txExec.Query(ctx,
		fragql.Select(fragql.T("users")).
			Fields(fragql.F("id")).
			Where(fragql.C(fragql.F("username"), fragql.EQ, "bob")).
			ForUpdate())
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	found := rows.Next()
	_ = rows.Close()
	if !found {
		t.Fatal("Expected a locked row")
	}

	if _, err := txExec.Exec(ctx, fragql.Update(fragql.T("users")).
		Set(fragql.F("active"), true).
		Where(fragql.C(fragql.F("username"), fragql.EQ, "bob"))); err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
}
