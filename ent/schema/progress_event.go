package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ProgressEvent records a completed step, lesson or course.
type ProgressEvent struct {
	ent.Schema
}

func (ProgressEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ProgressEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID of the study session"),
		field.String("kind").
			NotEmpty().
			Comment("step_completed, lesson_completed or course_completed"),
		field.String("language").
			Comment("Course code the lesson belongs to"),
		field.Int("lesson_id"),
		field.Int("step_number").
			Default(0).
			Comment("1-based; 0 for lesson and course events"),
		field.Int("repetitions").
			Default(0),
		field.Int("mistakes").
			Default(0).
			Comment("Rejected keystrokes while typing the step"),
	}
}

func (ProgressEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("kind"),
	}
}
