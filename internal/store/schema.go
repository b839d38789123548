package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/albanobattistella/mecalin/ent/schema"
)

// Table names.
const (
	settingsTable       = "settings"
	progressEventsTable = "progress_events"
	sessionEventsTable  = "session_events"
)

// tables returns the SQL tables derived from the ent schemas. Every table
// gets an auto-increment "id" primary key, as ent would generate.
func tables() []*schema.Table {
	return []*schema.Table{
		tableFor(settingsTable, entschema.Setting{}),
		tableFor(progressEventsTable, entschema.ProgressEvent{}),
		tableFor(sessionEventsTable, entschema.SessionEvent{}),
	}
}

func tableFor(name string, s ent.Interface) *schema.Table {
	t := schema.NewTable(name).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	for _, f := range fields {
		d := f.Descriptor()
		col := &schema.Column{
			Name:     columnName(d),
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
			Comment:  d.Comment,
		}
		if def, ok := literalDefault(d.Default); ok {
			col.Default = def
		}
		t.AddColumn(col)
	}
	for _, idx := range indexes {
		d := idx.Descriptor()
		t.AddIndex(indexName(name, d.StorageKey, d.Fields), d.Unique, d.Fields)
	}
	return t
}

func columnName(d *field.Descriptor) string {
	if d.StorageKey != "" {
		return d.StorageKey
	}
	return d.Name
}

func indexName(table, key string, cols []string) string {
	if key != "" {
		return key
	}
	return table + "_" + strings.Join(cols, "_")
}

// literalDefault keeps defaults that SQL can express; function defaults
// such as time.Now are applied by the repositories instead.
func literalDefault(v any) (any, bool) {
	switch v := v.(type) {
	case int, int64, uint, string, bool:
		return v, true
	default:
		return nil, false
	}
}

// migrate creates missing tables and columns. It never drops anything.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables()...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
