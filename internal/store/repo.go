package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Progress event kinds.
const (
	KindStepCompleted   = "step_completed"
	KindLessonCompleted = "lesson_completed"
	KindCourseCompleted = "course_completed"
)

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// ProgressEventData is the payload of a journal entry.
type ProgressEventData struct {
	SessionID   string
	Kind        string
	Language    string
	LessonID    int
	StepNumber  int
	Repetitions int
	Mistakes    int
}

// ProgressEvent is a stored journal entry.
type ProgressEvent struct {
	ProgressEventData
	Sequence  int64
	Timestamp time.Time
}

// SessionEventData records the start or end of a study session.
type SessionEventData struct {
	SessionID    string
	Action       string
	Language     string
	LessonID     int
	DurationSecs int
}

// SessionEvent is a stored session lifecycle entry.
type SessionEvent struct {
	SessionEventData
	Sequence  int64
	Timestamp time.Time
}

// EventRepo provides append and query access to the journals.
type EventRepo interface {
	// AppendProgress records a completed step, lesson or course.
	AppendProgress(ctx context.Context, data ProgressEventData) error

	// RecentProgress returns progress events, newest first.
	RecentProgress(ctx context.Context, opts QueryOpts) ([]ProgressEvent, error)

	// CountByKind returns the number of progress events per kind.
	CountByKind(ctx context.Context) (map[string]int, error)

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// RecentSessions returns session events, newest first.
	RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)
}
