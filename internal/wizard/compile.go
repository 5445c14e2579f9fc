package wizard

import (
	"stepsurvey/internal/model"
	"time"
)

// TimestampLayout is ISO-8601 with microseconds and a numeric UTC offset
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// Compile flattens a session into a submission record. The first four fields
// are fixed; each answerable question then contributes its _choice and
// _comment fields in catalog order, empty when unanswered.
func (w *Wizard) Compile(s *model.Session) model.SubmissionRecord {
	now := w.clock.Now()

	questions := w.catalog.AnswerableItems()
	fields := make([]model.Field, 0, 4+2*len(questions))
	fields = append(fields,
		model.Field{Name: model.FieldTimestampUTC, Value: now.UTC().Format(TimestampLayout)},
		model.Field{Name: model.FieldToken, Value: s.Token},
		model.Field{Name: model.FieldDurationSec, Value: DurationSeconds(s.StartedAt, now)},
		model.Field{Name: model.FieldParticipantName, Value: s.ParticipantName},
	)

	for _, q := range questions {
		ans := s.Answers[q.ID]
		fields = append(fields,
			model.Field{Name: model.ChoiceField(q.ID), Value: ans.Choice},
			model.Field{Name: model.CommentField(q.ID), Value: ans.Comment},
		)
	}

	return model.NewSubmissionRecord(fields)
}

// DurationSeconds returns whole seconds elapsed since start, never negative
func DurationSeconds(start, now time.Time) int64 {
	d := int64(now.Sub(start) / time.Second)
	if d < 0 {
		return 0
	}
	return d
}
