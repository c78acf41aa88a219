package domain

// StatusFilter selects the lifecycle/time view of the list.
type StatusFilter string

const (
	StatusToday     StatusFilter = "today"
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
	StatusDeleted   StatusFilter = "deleted"
)

// AllStatusFilters lists the status filters in display order.
func AllStatusFilters() []StatusFilter {
	return []StatusFilter{StatusToday, StatusAll, StatusActive, StatusCompleted, StatusDeleted}
}

func (f StatusFilter) Valid() bool {
	for _, known := range AllStatusFilters() {
		if f == known {
			return true
		}
	}
	return false
}

// Tag narrows the list by task attribute. Several tags may be selected at once.
type Tag string

const (
	TagImportant Tag = "important"
	TagSomeday   Tag = "someday"
)

func AllTags() []Tag {
	return []Tag{TagImportant, TagSomeday}
}

func (t Tag) Valid() bool {
	return t == TagImportant || t == TagSomeday
}

// AppState is the whole persisted snapshot of the task list.
type AppState struct {
	Tasks         []Task       `json:"tasks"`
	DeletedTasks  []Task       `json:"deletedTasks"`
	StatusFilter  StatusFilter `json:"statusFilter"`
	Tags          []Tag        `json:"tags"`
	SchemaVersion int          `json:"schemaVersion"`
}

// NewAppState returns the state of a first start.
func NewAppState() *AppState {
	return &AppState{
		Tasks:        []Task{},
		DeletedTasks: []Task{},
		StatusFilter: StatusToday,
		Tags:         []Tag{},
	}
}

// HasTag reports whether tag is part of the selected tag set.
func (s *AppState) HasTag(tag Tag) bool {
	if s == nil {
		return false
	}
	for _, selected := range s.Tags {
		if selected == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the state.
func (s *AppState) Clone() *AppState {
	if s == nil {
		return nil
	}
	out := &AppState{
		Tasks:         cloneTasks(s.Tasks),
		DeletedTasks:  cloneTasks(s.DeletedTasks),
		StatusFilter:  s.StatusFilter,
		Tags:          append([]Tag{}, s.Tags...),
		SchemaVersion: s.SchemaVersion,
	}
	return out
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	return out
}
