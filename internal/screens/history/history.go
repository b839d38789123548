package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/albanobattistella/mecalin/internal/router"
	"github.com/albanobattistella/mecalin/internal/screen"
	"github.com/albanobattistella/mecalin/internal/store"
	"github.com/albanobattistella/mecalin/internal/ui/layout"
	"github.com/albanobattistella/mecalin/internal/ui/theme"
)

// Record is one study session reconstructed from the journals.
type Record struct {
	SessionID    string
	Started      time.Time
	Language     string
	DurationSecs int
	Ended        bool
	Progress     []store.ProgressEvent
}

// Steps returns the number of completed steps in the session.
func (r Record) Steps() int {
	n := 0
	for _, p := range r.Progress {
		if p.Kind == store.KindStepCompleted {
			n++
		}
	}
	return n
}

// Mistakes returns the total mistakes over completed steps.
func (r Record) Mistakes() int {
	n := 0
	for _, p := range r.Progress {
		n += p.Mistakes
	}
	return n
}

type historyLoadedMsg struct {
	Records []Record
	Err     error
}

// HistoryScreen is the student report: past sessions and what was
// completed in each.
type HistoryScreen struct {
	eventRepo store.EventRepo
	records   []Record
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	if s.eventRepo == nil {
		return func() tea.Msg { return historyLoadedMsg{} }
	}
	return func() tea.Msg {
		records, err := Load(context.Background(), s.eventRepo, 200)
		return historyLoadedMsg{Records: records, Err: err}
	}
}

// Load groups the most recent journal entries by session, newest first.
func Load(ctx context.Context, repo store.EventRepo, limit int) ([]Record, error) {
	sessions, err := repo.RecentSessions(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	progress, err := repo.RecentProgress(ctx, store.QueryOpts{Limit: limit * 4})
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}

	byID := make(map[string]*Record)
	var order []string
	for _, e := range sessions {
		rec, ok := byID[e.SessionID]
		if !ok {
			rec = &Record{SessionID: e.SessionID, Language: e.Language}
			byID[e.SessionID] = rec
			order = append(order, e.SessionID)
		}
		switch e.Action {
		case store.ActionStart:
			rec.Started = e.Timestamp
		case store.ActionEnd:
			rec.Ended = true
			rec.DurationSecs = e.DurationSecs
			if rec.Started.IsZero() {
				rec.Started = e.Timestamp.Add(-time.Duration(e.DurationSecs) * time.Second)
			}
		}
	}

	// Progress arrives newest first; prepend to keep each session's
	// events in the order they happened.
	for _, p := range progress {
		if rec, ok := byID[p.SessionID]; ok {
			rec.Progress = append([]store.ProgressEvent{p}, rec.Progress...)
		}
	}

	records := make([]Record, 0, len(order))
	for _, id := range order {
		records = append(records, *byID[id])
	}
	return records, nil
}

func (s *HistoryScreen) Title() string {
	return "Student Report"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading report...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		dateStr := rec.Started.Local().Format("Jan 02, 2006 15:04")
		durationStr := "in progress"
		if rec.Ended {
			durationStr = fmt.Sprintf("%d:%02d", rec.DurationSecs/60, rec.DurationSecs%60)
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  [%s]  %s  %d steps  %d mistakes",
			prefix, dateStr, rec.Language, durationStr, rec.Steps(), rec.Mistakes())

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderDetails(rec, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderDetails(rec Record, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if len(rec.Progress) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			dim.Render("    Nothing completed this session")) + "\n"
	}

	var b strings.Builder
	for _, p := range rec.Progress {
		var line string
		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch p.Kind {
		case store.KindStepCompleted:
			line = fmt.Sprintf("    Lesson %d step %d  x%d  %d mistakes",
				p.LessonID, p.StepNumber, p.Repetitions, p.Mistakes)
		case store.KindLessonCompleted:
			line = fmt.Sprintf("    Lesson %d completed", p.LessonID)
			style = style.Foreground(theme.Secondary)
		case store.KindCourseCompleted:
			line = "    Course completed"
			style = style.Foreground(theme.Accent).Bold(true)
		default:
			continue
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
