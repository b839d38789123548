package study

import (
	tea "charm.land/bubbletea/v2"

	"github.com/albanobattistella/mecalin/internal/progression"
	"github.com/albanobattistella/mecalin/internal/typing"
)

var (
	_ progression.Presenter = (*Screen)(nil)
	_ progression.Scheduler = (*Screen)(nil)
)

func (s *Screen) TargetTextUpdated(text string) {
	s.target = text
}

func (s *Screen) CursorPositionUpdated(index int) {
	s.cursor = index
}

func (s *Screen) CurrentKeyUpdated(key rune, ok bool) {
	s.kb.Highlight(key, ok)
}

func (s *Screen) VisibleKeysUpdated(keys typing.KeySet) {
	s.kb.Visible = keys
}

func (s *Screen) TitleUpdated(title string) {
	s.title = title
}

func (s *Screen) SubtitleUpdated(lessonID, stepNumber, totalSteps int) {
	s.lessonID = lessonID
	s.stepNumber = stepNumber
	s.totalSteps = totalSteps
}

func (s *Screen) DescriptionUpdated(text string) {
	s.description = text
}

func (s *Screen) InputReplaced(text string) {
	s.input.SetValue(text)
	s.mistake = false
}

func (s *Screen) PhaseChanged(phase progression.Phase) {
	s.phase = phase
}

func (s *Screen) CourseCompleted(message string) {
	s.completion = message
}

// Defer queues task until the current message has been handled; flush
// turns the queue into commands.
func (s *Screen) Defer(task func()) {
	s.deferred = append(s.deferred, task)
}

func (s *Screen) flush() tea.Cmd {
	if len(s.deferred) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.deferred))
	for _, task := range s.deferred {
		cmds = append(cmds, func() tea.Msg { return deferredMsg{task: task} })
	}
	s.deferred = nil
	return tea.Sequence(cmds...)
}
