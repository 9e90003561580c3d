package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LessonEvent records one lesson transition: start, section, evaluate or
// reset.
type LessonEvent struct {
	ent.Schema
}

func (LessonEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LessonEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").NotEmpty(),
		field.String("action").NotEmpty(),
		field.String("language").Default(""),
		field.String("difficulty").Default(""),
		field.Text("sentence").Default(""),
		field.Bool("custom").Default(false),
		field.String("purpose").Default(""),
		field.Bool("success").Default(true),
		field.Text("detail").
			Default("").
			Comment("Error text for failed calls"),
	}
}

func (LessonEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}
