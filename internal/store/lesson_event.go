package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var lessonEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "action", "language", "difficulty",
	"sentence", "custom", "purpose", "success", "detail",
}

func (r *eventRepo) AppendLessonEvent(ctx context.Context, data LessonEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert(lessonEventsTable).
		Columns(lessonEventColumns[1:]...).
		Values(
			seqNum, time.Now().UTC(), data.SessionID, string(data.Action), data.Language, data.Difficulty,
			data.Sentence, data.Custom, data.Purpose, data.Success, data.Detail,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save lesson event: %w", err)
	}
	return nil
}

// QueryLessonEvents returns lesson events in the order they happened.
func (r *eventRepo) QueryLessonEvents(ctx context.Context, opts QueryOpts) ([]LessonEventRecord, error) {
	sel := builder().
		Select(lessonEventColumns...).
		From(entsql.Table(lessonEventsTable)).
		OrderBy(entsql.Asc("sequence"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lesson events: %w", err)
	}
	defer rows.Close()

	var out []LessonEventRecord
	for rows.Next() {
		var rec LessonEventRecord
		var action string
		err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.SessionID, &action, &rec.Language, &rec.Difficulty,
			&rec.Sentence, &rec.Custom, &rec.Purpose, &rec.Success, &rec.Detail,
		)
		if err != nil {
			return nil, fmt.Errorf("scan lesson event: %w", err)
		}
		rec.Action = LessonAction(action)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LessonHistory folds lesson events into one summary per started lesson,
// newest first. A limit of zero returns every lesson.
func (r *eventRepo) LessonHistory(ctx context.Context, limit int) ([]LessonSummary, error) {
	events, err := r.QueryLessonEvents(ctx, QueryOpts{})
	if err != nil {
		return nil, err
	}

	var out []LessonSummary
	// Index into out of the lesson currently open in each session.
	open := make(map[string]int)

	for _, e := range events {
		switch e.Action {
		case ActionStart:
			open[e.SessionID] = len(out)
			out = append(out, LessonSummary{
				SessionID:  e.SessionID,
				StartedAt:  e.Timestamp,
				Language:   e.Language,
				Difficulty: e.Difficulty,
				Sentence:   e.Sentence,
				Custom:     e.Custom,
			})
		case ActionSection:
			if i, ok := open[e.SessionID]; ok {
				switch {
				case e.Success && e.Detail == DetailEmptyResponse:
					// Neither rendered nor failed.
				case e.Success:
					out[i].Sections++
				default:
					out[i].Failures++
				}
			}
		case ActionEvaluate:
			if i, ok := open[e.SessionID]; ok {
				if e.Success {
					out[i].Evaluated = true
				} else {
					out[i].Failures++
				}
			}
		case ActionReset:
			delete(open, e.SessionID)
		}
	}

	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
