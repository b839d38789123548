package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert(sessionEventsTable).
		Columns("sequence", "timestamp", "session_id", "action", "language",
			"lesson_id", "duration_secs").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Action, data.Language,
			data.LessonID, data.DurationSecs).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	sel := builder().
		Select("sequence", "timestamp", "session_id", "action", "language",
			"lesson_id", "duration_secs").
		From(entsql.Table(sessionEventsTable)).
		OrderBy(entsql.Desc("sequence"))
	applyOpts(sel, opts)
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var e SessionEvent
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.SessionID, &e.Action, &e.Language,
			&e.LessonID, &e.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
