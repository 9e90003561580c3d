package schema

import (
	"testing"

	"entgo.io/ent"
	entschema "entgo.io/ent/dialect/sql/schema"

	"github.com/abhisek/lingua/internal/store"
)

// The store migrates from hand-written tables; they must stay in step with
// the ent schema.
func TestSchemaMatchesStoreTables(t *testing.T) {
	tests := []struct {
		name   string
		fields []ent.Field
		table  *entschema.Table
	}{
		{"LLMRequestEvent", LLMRequestEvent{}.Fields(), store.LLMRequestEventsTable},
		{"LessonEvent", LessonEvent{}.Fields(), store.LessonEventsTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := append(EventMixin{}.Fields(), tt.fields...)

			cols := make(map[string]bool)
			for _, c := range tt.table.Columns {
				cols[c.Name] = true
			}
			if len(fields)+1 != len(tt.table.Columns) {
				t.Errorf("schema has %d fields plus id, table has %d columns", len(fields), len(tt.table.Columns))
			}
			for _, f := range fields {
				name := f.Descriptor().Name
				if !cols[name] {
					t.Errorf("field %q has no column in %s", name, tt.table.Name)
				}
			}
		})
	}
}
