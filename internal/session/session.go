// Package session ties one study session to the progress journal. A
// Session is the progression.Observer that turns completions into stored
// events.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/albanobattistella/mecalin/internal/logging"
	"github.com/albanobattistella/mecalin/internal/progression"
	"github.com/albanobattistella/mecalin/internal/store"
)

var _ progression.Observer = (*Session)(nil)

// Session records the lifecycle and completions of one study session.
// Journal write failures are logged and never interrupt typing.
type Session struct {
	ID        string
	Language  string
	StartedAt time.Time

	events store.EventRepo
	log    *logging.Logger
	now    func() time.Time

	steps    int
	lessons  int
	mistakes int
	finished bool
	ended    bool
}

// Summary is what a learner achieved in one session.
type Summary struct {
	Duration         time.Duration
	StepsCompleted   int
	LessonsCompleted int
	Mistakes         int
	CourseFinished   bool
}

// New creates a session with a fresh UUID. events may be nil, in which
// case nothing is recorded.
func New(language string, events store.EventRepo, log *logging.Logger) *Session {
	if log == nil {
		log = logging.Nop()
	}
	id := uuid.New().String()
	return &Session{
		ID:       id,
		Language: language,
		events:   events,
		log:      log.With("session_id", id),
		now:      time.Now,
	}
}

// Start records the session start at the given lesson.
func (s *Session) Start(lessonID int) {
	s.StartedAt = s.now()
	s.appendSession(store.ActionStart, lessonID, 0)
}

// End records the session end once; later calls are no-ops.
func (s *Session) End(lessonID int) {
	if s.ended {
		return
	}
	s.ended = true
	secs := 0
	if !s.StartedAt.IsZero() {
		secs = int(s.now().Sub(s.StartedAt).Seconds())
	}
	s.appendSession(store.ActionEnd, lessonID, secs)
}

// StepsCompleted returns the number of steps finished in this session.
func (s *Session) StepsCompleted() int { return s.steps }

// LessonsCompleted returns the number of lessons finished in this session.
func (s *Session) LessonsCompleted() int { return s.lessons }

// Summary reports the session so far.
func (s *Session) Summary() Summary {
	var d time.Duration
	if !s.StartedAt.IsZero() {
		d = s.now().Sub(s.StartedAt)
	}
	return Summary{
		Duration:         d,
		StepsCompleted:   s.steps,
		LessonsCompleted: s.lessons,
		Mistakes:         s.mistakes,
		CourseFinished:   s.finished,
	}
}

func (s *Session) StepCompleted(lessonID, stepNumber, repetitions, mistakes int) {
	s.steps++
	s.mistakes += mistakes
	s.appendProgress(store.ProgressEventData{
		Kind:        store.KindStepCompleted,
		LessonID:    lessonID,
		StepNumber:  stepNumber,
		Repetitions: repetitions,
		Mistakes:    mistakes,
	})
}

func (s *Session) LessonCompleted(lessonID int) {
	s.lessons++
	s.appendProgress(store.ProgressEventData{
		Kind:     store.KindLessonCompleted,
		LessonID: lessonID,
	})
}

func (s *Session) CourseCompleted(lastLessonID int) {
	s.finished = true
	s.appendProgress(store.ProgressEventData{
		Kind:     store.KindCourseCompleted,
		LessonID: lastLessonID,
	})
}

func (s *Session) appendProgress(data store.ProgressEventData) {
	if s.events == nil {
		return
	}
	data.SessionID = s.ID
	data.Language = s.Language
	if err := s.events.AppendProgress(context.Background(), data); err != nil {
		s.log.Warn("append progress event failed", "kind", data.Kind, "lesson", data.LessonID, "error", err)
	}
}

func (s *Session) appendSession(action string, lessonID, durationSecs int) {
	if s.events == nil {
		return
	}
	err := s.events.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID:    s.ID,
		Action:       action,
		Language:     s.Language,
		LessonID:     lessonID,
		DurationSecs: durationSecs,
	})
	if err != nil {
		s.log.Warn("append session event failed", "action", action, "error", err)
	}
}
