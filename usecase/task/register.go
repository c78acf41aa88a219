package task

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/usecase"
)

// Command and query names served through the dispatcher.
const (
	CommandAdd        = "task.add"
	CommandToggle     = "task.toggle"
	CommandDelete     = "task.delete"
	CommandRestore    = "task.restore"
	CommandPurge      = "task.purge"
	CommandEmptyTrash = "trash.empty"
	CommandSetStatus  = "filter.status"
	CommandToggleTag  = "filter.tag"

	QueryView = "task.view"
)

type AddTaskInput struct {
	Text      string `json:"text"`
	Important bool   `json:"important"`
	DueDate   string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

type TaskIDInput struct {
	ID string `json:"id" validate:"required"`
}

type StatusFilterInput struct {
	StatusFilter string `json:"statusFilter" validate:"required,status_filter"`
}

type TagInput struct {
	Tag string `json:"tag" validate:"required,task_tag"`
}

// CommandResult reports whether a command changed the state.
type CommandResult struct {
	Applied bool         `json:"applied"`
	Task    *domain.Task `json:"task,omitempty"`
	Purged  int          `json:"purged,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("status_filter", func(fl validator.FieldLevel) bool {
		return domain.StatusFilter(fl.Field().String()).Valid()
	}); err != nil {
		panic(fmt.Sprintf("failed to register status_filter validator: %v", err))
	}
	if err := v.RegisterValidation("task_tag", func(fl validator.FieldLevel) bool {
		return domain.Tag(fl.Field().String()).Valid()
	}); err != nil {
		panic(fmt.Sprintf("failed to register task_tag validator: %v", err))
	}
	return v
}

// Register exposes the commands and queries of uc on d.
func (uc *UseCase) Register(d *usecase.Dispatcher) {
	d.RegisterCommand(CommandAdd, func(ctx context.Context, payload []byte) (interface{}, error) {
		var in AddTaskInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		var due *domain.Date
		if in.DueDate != "" {
			parsed, err := domain.ParseDate(in.DueDate)
			if err != nil {
				return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid due date", err)
			}
			due = &parsed
		}
		t, ok := uc.AddTask(ctx, in.Text, in.Important, due)
		if !ok {
			return CommandResult{}, nil
		}
		return CommandResult{Applied: true, Task: &t}, nil
	})

	d.RegisterCommand(CommandToggle, byID(uc.ToggleTask))
	d.RegisterCommand(CommandDelete, byID(uc.DeleteTask))
	d.RegisterCommand(CommandRestore, byID(uc.RestoreTask))
	d.RegisterCommand(CommandPurge, byID(uc.PurgeTask))

	d.RegisterCommand(CommandEmptyTrash, func(ctx context.Context, _ []byte) (interface{}, error) {
		n := uc.EmptyTrash(ctx)
		return CommandResult{Applied: true, Purged: n}, nil
	})

	d.RegisterCommand(CommandSetStatus, func(ctx context.Context, payload []byte) (interface{}, error) {
		var in StatusFilterInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		return CommandResult{Applied: uc.SetStatusFilter(ctx, domain.StatusFilter(in.StatusFilter))}, nil
	})

	d.RegisterCommand(CommandToggleTag, func(ctx context.Context, payload []byte) (interface{}, error) {
		var in TagInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		return CommandResult{Applied: uc.ToggleTag(ctx, domain.Tag(in.Tag))}, nil
	})

	d.RegisterQuery(QueryView, func(context.Context, []byte) (interface{}, error) {
		return uc.View(), nil
	})
}

func byID(fn func(context.Context, string) bool) usecase.CommandHandler {
	return func(ctx context.Context, payload []byte) (interface{}, error) {
		var in TaskIDInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}
		return CommandResult{Applied: fn(ctx, in.ID)}, nil
	}
}

func decode(payload []byte, dst interface{}) error {
	if len(strings.TrimSpace(string(payload))) == 0 {
		payload = []byte("{}")
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "malformed payload", err)
	}
	if err := validate.Struct(dst); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "invalid payload", err)
	}
	return nil
}
