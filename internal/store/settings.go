package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// Setting is one stored key/value pair.
type Setting struct {
	Key       string
	Value     uint
	UpdatedAt time.Time
}

// SettingsRepo stores unsigned integer settings by key. It satisfies
// progression.Persistence.
type SettingsRepo struct {
	drv *entsql.Driver
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// Uint returns the value stored under key and whether it exists.
func (r *SettingsRepo) Uint(ctx context.Context, key string) (uint, bool, error) {
	query, args := builder().
		Select("value").
		From(entsql.Table(settingsTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, false, fmt.Errorf("query setting %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, false, fmt.Errorf("query setting %s: %w", key, err)
		}
		return 0, false, nil
	}
	var v int64
	if err := rows.Scan(&v); err != nil {
		return 0, false, fmt.Errorf("scan setting %s: %w", key, err)
	}
	if v < 0 {
		v = 0
	}
	return uint(v), true, nil
}

// SetUint inserts or replaces the value stored under key.
func (r *SettingsRepo) SetUint(ctx context.Context, key string, v uint) error {
	query, args := builder().
		Insert(settingsTable).
		Columns("key", "value", "updated_at").
		Values(key, int64(v), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return nil
}

// Delete removes keys. Missing keys are ignored.
func (r *SettingsRepo) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		query, args := builder().
			Delete(settingsTable).
			Where(entsql.EQ("key", key)).
			Query()
		if err := r.drv.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("delete setting %s: %w", key, err)
		}
	}
	return nil
}

// All returns every setting ordered by key.
func (r *SettingsRepo) All(ctx context.Context) ([]Setting, error) {
	query, args := builder().
		Select("key", "value", "updated_at").
		From(entsql.Table(settingsTable)).
		OrderBy("key").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	var out []Setting
	for rows.Next() {
		var (
			s Setting
			v int64
		)
		if err := rows.Scan(&s.Key, &v, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		s.Value = uint(max(v, 0))
		out = append(out, s)
	}
	return out, rows.Err()
}
