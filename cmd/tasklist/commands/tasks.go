package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/internal/bootstrap"
)

func newAddCmd() *cobra.Command {
	var (
		important bool
		due       string
	)
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dueDate *domain.Date
			if due = strings.TrimSpace(due); due != "" {
				parsed, err := domain.ParseDate(due)
				if err != nil {
					return fmt.Errorf("--due must be YYYY-MM-DD: %w", err)
				}
				dueDate = &parsed
			}
			text := strings.Join(args, " ")
			return withApp(func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				if _, ok := app.Tasks.AddTask(ctx, text, important, dueDate); !ok {
					fmt.Fprintln(out, "Nothing added: task text is empty.")
				}
				return renderView(out, app.Tasks.View())
			})(cmd, args)
		},
	}
	cmd.Flags().BoolVarP(&important, "important", "i", false, "mark the task as important")
	cmd.Flags().StringVarP(&due, "due", "d", "", "due date (YYYY-MM-DD)")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the tasks selected by the current filters",
		Args:    cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			return renderView(out, app.Tasks.View())
		}),
	}
}

func newToggleCmd() *cobra.Command {
	return idCommand("toggle <id>", "Mark a task done or not done", false,
		func(ctx context.Context, app *bootstrap.App, id string) bool {
			return app.Tasks.ToggleTask(ctx, id)
		})
}

func newDeleteCmd() *cobra.Command {
	return idCommand("delete <id>", "Move a task to the trash", false,
		func(ctx context.Context, app *bootstrap.App, id string) bool {
			return app.Tasks.DeleteTask(ctx, id)
		})
}

func newRestoreCmd() *cobra.Command {
	return idCommand("restore <id>", "Move a task out of the trash", true,
		func(ctx context.Context, app *bootstrap.App, id string) bool {
			return app.Tasks.RestoreTask(ctx, id)
		})
}

func newPurgeCmd() *cobra.Command {
	return idCommand("purge <id>", "Permanently remove a task from the trash", true,
		func(ctx context.Context, app *bootstrap.App, id string) bool {
			return app.Tasks.PurgeTask(ctx, id)
		})
}

func newEmptyTrashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "empty-trash",
		Short: "Permanently remove every task in the trash",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
			n := app.Tasks.EmptyTrash(ctx)
			fmt.Fprintf(out, "Purged %d task(s).\n", n)
			return renderView(out, app.Tasks.View())
		}),
	}
}

func newFilterCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "filter <today|all|active|completed|deleted>",
		Short:     "Select the status filter",
		Args:      cobra.ExactArgs(1),
		ValidArgs: statusNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := domain.StatusFilter(strings.ToLower(args[0]))
			if !f.Valid() {
				return fmt.Errorf("unknown status filter %q (want one of %s)", args[0], strings.Join(statusNames(), ", "))
			}
			return withApp(func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				app.Tasks.SetStatusFilter(ctx, f)
				return renderView(out, app.Tasks.View())
			})(cmd, args)
		},
	}
}

func newTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "tag <important|someday>",
		Short:     "Select or deselect a tag filter",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.TagImportant), string(domain.TagSomeday)},
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := domain.Tag(strings.ToLower(args[0]))
			if !tag.Valid() {
				return fmt.Errorf("unknown tag %q (want important or someday)", args[0])
			}
			return withApp(func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				app.Tasks.ToggleTag(ctx, tag)
				return renderView(out, app.Tasks.View())
			})(cmd, args)
		},
	}
}

// idCommand builds a command taking one task id. Unique id prefixes are
// accepted; inTrash selects which collection the prefix is resolved in.
func idCommand(use, short string, inTrash bool, apply func(ctx context.Context, app *bootstrap.App, id string) bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				snapshot := app.Tasks.Snapshot()
				pool := snapshot.Tasks
				if inTrash {
					pool = snapshot.DeletedTasks
				}
				id, err := resolveID(pool, args[0])
				if err != nil {
					return err
				}
				if !apply(ctx, app, id) {
					fmt.Fprintf(out, "No task %s.\n", args[0])
				}
				return renderView(out, app.Tasks.View())
			})(cmd, args)
		},
	}
}

// resolveID expands a unique id prefix. Unknown prefixes are returned as-is
// so the command itself reports the no-op.
func resolveID(tasks []domain.Task, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	var matches []string
	for _, t := range tasks {
		if t.ID == prefix {
			return t.ID, nil
		}
		if prefix != "" && strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return prefix, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d tasks)", prefix, len(matches))
	}
}

func statusNames() []string {
	var names []string
	for _, f := range domain.AllStatusFilters() {
		names = append(names, string(f))
	}
	return names
}
