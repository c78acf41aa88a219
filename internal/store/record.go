package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/tasklist/domain"
)

// stateRecord is the persisted layout of domain.AppState.
type stateRecord struct {
	Tasks         []taskRecord `json:"tasks"`
	DeletedTasks  []taskRecord `json:"deletedTasks"`
	StatusFilter  string       `json:"statusFilter,omitempty"`
	Tags          []string     `json:"tags"`
	SchemaVersion *int         `json:"schemaVersion,omitempty"`

	// single-select pair written before statusFilter/tags existed
	Filter   string `json:"filter,omitempty"`
	Category string `json:"category,omitempty"`
}

type taskRecord struct {
	ID        recordID `json:"id"`
	Text      string   `json:"text"`
	Completed bool     `json:"completed"`
	CreatedAt millis   `json:"createdAt"`
	Important *bool    `json:"important,omitempty"`
	DueDate   *string  `json:"dueDate"`
	DeletedAt *millis  `json:"deletedAt,omitempty"`
}

// recordID accepts both string ids and the numeric ids of early records.
type recordID string

func (id *recordID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = recordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id: %w", err)
	}
	*id = recordID(n.String())
	return nil
}

// millis is a timestamp in milliseconds since the Unix epoch.
// RFC 3339 strings are accepted on read.
type millis int64

func (m *millis) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if v, err := n.Int64(); err == nil {
			*m = millis(v)
			return nil
		}
		v, err := n.Float64()
		if err != nil {
			return err
		}
		*m = millis(int64(v))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("timestamp %q: %w", s, err)
	}
	*m = millis(parsed.UnixMilli())
	return nil
}

func (m millis) in(loc *time.Location) time.Time {
	return time.UnixMilli(int64(m)).In(loc)
}

func encodeState(state *domain.AppState, version int) stateRecord {
	tags := make([]string, 0, len(state.Tags))
	for _, tag := range state.Tags {
		tags = append(tags, string(tag))
	}
	return stateRecord{
		Tasks:         encodeTasks(state.Tasks),
		DeletedTasks:  encodeTasks(state.DeletedTasks),
		StatusFilter:  string(state.StatusFilter),
		Tags:          tags,
		SchemaVersion: &version,
	}
}

func encodeTasks(tasks []domain.Task) []taskRecord {
	out := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		important := t.Important
		rec := taskRecord{
			ID:        recordID(t.ID),
			Text:      t.Text,
			Completed: t.Completed,
			CreatedAt: millis(t.CreatedAt.UnixMilli()),
			Important: &important,
		}
		if t.DueDate != nil {
			due := t.DueDate.String()
			rec.DueDate = &due
		}
		if t.DeletedAt != nil {
			deleted := millis(t.DeletedAt.UnixMilli())
			rec.DeletedAt = &deleted
		}
		out = append(out, rec)
	}
	return out
}

// decodeState converts a record into domain state and reports the schema
// version the record was written with.
func decodeState(rec stateRecord, loc *time.Location) (*domain.AppState, int) {
	state := domain.NewAppState()
	state.Tasks = decodeTasks(rec.Tasks, loc)
	state.DeletedTasks = decodeTasks(rec.DeletedTasks, loc)
	state.StatusFilter, state.Tags = decodeFilters(rec)

	// anything older than the first numbered layout is read as legacy
	version := legacyVersion
	if rec.SchemaVersion != nil && *rec.SchemaVersion > legacyVersion {
		version = *rec.SchemaVersion
	}
	state.SchemaVersion = version

	normalizeCollections(state)
	return state, version
}

func decodeTasks(records []taskRecord, loc *time.Location) []domain.Task {
	out := make([]domain.Task, 0, len(records))
	for _, rec := range records {
		t := domain.Task{
			ID:        string(rec.ID),
			Text:      rec.Text,
			Completed: rec.Completed,
			Important: rec.Important != nil && *rec.Important,
			CreatedAt: rec.CreatedAt.in(loc),
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if rec.DueDate != nil && strings.TrimSpace(*rec.DueDate) != "" {
			if due, err := domain.ParseDate(strings.TrimSpace(*rec.DueDate)); err == nil {
				t.DueDate = &due
			}
		}
		if rec.DeletedAt != nil {
			deleted := rec.DeletedAt.in(loc)
			t.DeletedAt = &deleted
		}
		out = append(out, t)
	}
	return out
}

func decodeFilters(rec stateRecord) (domain.StatusFilter, []domain.Tag) {
	if rec.StatusFilter == "" && (rec.Filter != "" || rec.Category != "") {
		return legacyFilters(rec.Filter, rec.Category)
	}

	status := domain.StatusFilter(rec.StatusFilter)
	if !status.Valid() {
		status = domain.StatusToday
	}

	tags := make([]domain.Tag, 0, len(rec.Tags))
	for _, raw := range rec.Tags {
		tag := domain.Tag(raw)
		if !tag.Valid() || containsTag(tags, tag) {
			continue
		}
		tags = append(tags, tag)
	}
	return status, tags
}

// legacyFilters maps the old filter/category pair onto the two filter axes.
func legacyFilters(filter, category string) (domain.StatusFilter, []domain.Tag) {
	status := domain.StatusFilter(filter)
	if !status.Valid() {
		status = domain.StatusToday
	}
	tags := []domain.Tag{}
	if tag := domain.Tag(category); tag.Valid() {
		tags = append(tags, tag)
	}
	return status, tags
}

// normalizeCollections re-establishes the active/trash split: an id appears
// once across both collections, the first occurrence wins, and only trashed
// tasks carry a deletion stamp.
func normalizeCollections(state *domain.AppState) {
	seen := make(map[string]struct{}, len(state.Tasks)+len(state.DeletedTasks))
	keep := func(tasks []domain.Task) []domain.Task {
		out := tasks[:0]
		for _, t := range tasks {
			if _, dup := seen[t.ID]; dup {
				continue
			}
			seen[t.ID] = struct{}{}
			out = append(out, t)
		}
		return out
	}

	state.Tasks = keep(state.Tasks)
	for i := range state.Tasks {
		state.Tasks[i].DeletedAt = nil
	}
	state.DeletedTasks = keep(state.DeletedTasks)
}

func containsTag(tags []domain.Tag, tag domain.Tag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
