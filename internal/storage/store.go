package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nmwangi/todoq/internal/model"
)

// Store is the local persistence slot for the task list. Save always
// overwrites the whole list; there is no delta persistence.
type Store interface {
	Load(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
}

// taskRecord is the serialized shape of one task inside the slot.
type taskRecord struct {
	ID        int     `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	Timestamp string  `json:"timestamp"`
	DueDate   *string `json:"dueDate"`
}

const dueDateLegacyLayout = "2006-01-02T15:04"

func encodeTasks(tasks []model.Task) ([]byte, error) {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		rec := taskRecord{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Timestamp: t.Timestamp,
		}
		if t.DueDate != nil {
			due := t.DueDate.Format(time.RFC3339)
			rec.DueDate = &due
		}
		records = append(records, rec)
	}
	return json.Marshal(records)
}

// decodeTasks turns a slot payload back into tasks. A payload that
// does not parse is treated as no data. Records missing a timestamp
// get one backfilled from now; missing or unparsable due dates come
// back as nil so every task exposes both fields.
func decodeTasks(payload []byte, now time.Time) []model.Task {
	var records []taskRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return []model.Task{}
	}
	tasks := make([]model.Task, 0, len(records))
	for _, rec := range records {
		task := model.Task{
			ID:        rec.ID,
			Text:      rec.Text,
			Completed: rec.Completed,
			Timestamp: rec.Timestamp,
		}
		if task.Timestamp == "" {
			task.Timestamp = model.FormatTimestamp(now)
		}
		task.DueDate = parseDueDate(rec.DueDate)
		tasks = append(tasks, task)
	}
	return tasks
}

func parseDueDate(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	if due, err := time.Parse(time.RFC3339, *raw); err == nil {
		return &due
	}
	// Slots written by earlier revisions held bare datetime-local values.
	if due, err := time.ParseInLocation(dueDateLegacyLayout, *raw, model.EastAfricaTime); err == nil {
		return &due
	}
	return nil
}
