package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builder.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendProgress(ctx context.Context, data ProgressEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert(progressEventsTable).
		Columns("sequence", "timestamp", "session_id", "kind", "language",
			"lesson_id", "step_number", "repetitions", "mistakes").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Kind, data.Language,
			data.LessonID, data.StepNumber, data.Repetitions, data.Mistakes).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save progress event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentProgress(ctx context.Context, opts QueryOpts) ([]ProgressEvent, error) {
	sel := builder().
		Select("sequence", "timestamp", "session_id", "kind", "language",
			"lesson_id", "step_number", "repetitions", "mistakes").
		From(entsql.Table(progressEventsTable)).
		OrderBy(entsql.Desc("sequence"))
	applyOpts(sel, opts)
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query progress events: %w", err)
	}
	defer rows.Close()

	var out []ProgressEvent
	for rows.Next() {
		var e ProgressEvent
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.SessionID, &e.Kind, &e.Language,
			&e.LessonID, &e.StepNumber, &e.Repetitions, &e.Mistakes); err != nil {
			return nil, fmt.Errorf("scan progress event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) CountByKind(ctx context.Context) (map[string]int, error) {
	query, args := builder().
		Select("kind", entsql.Count("*")).
		From(entsql.Table(progressEventsTable)).
		GroupBy("kind").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("count progress events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan progress count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

// applyOpts adds QueryOpts filters and the limit to sel.
func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
