package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/tasklist/internal/bootstrap"
	"github.com/fastygo/tasklist/internal/config"
	"github.com/fastygo/tasklist/internal/services/lifecycle"
	"github.com/fastygo/tasklist/pkg/logger"
)

// NewRootCmd builds the tasklist command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tasklist",
		Short:         "Manage a local task list",
		Long:          "Add, complete, tag, filter, delete and restore tasks. State is kept in the configured store (STORE_DRIVER).",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAddCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newToggleCmd())
	root.AddCommand(newDeleteCmd())
	root.AddCommand(newRestoreCmd())
	root.AddCommand(newPurgeCmd())
	root.AddCommand(newEmptyTrashCmd())
	root.AddCommand(newFilterCmd())
	root.AddCommand(newTagCmd())
	return root
}

// action is the body of a command once the core is wired.
type action func(ctx context.Context, app *bootstrap.App, out io.Writer) error

// withApp loads configuration, opens the store and runs fn, closing the
// store afterwards. Logs go to stderr so stdout only carries the view.
func withApp(fn action) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		var level string
		if _, ok := os.LookupEnv("LOG_LEVEL"); ok {
			level = cfg.Logger.Level
		}
		zapLogger := logger.NewCLI(level)
		defer func() { _ = zapLogger.Sync() }()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
		defer func() {
			if closeErr := manager.Shutdown(context.Background()); closeErr != nil {
				zapLogger.Warn("failed to close store", zap.Error(closeErr))
			}
		}()

		app, err := bootstrap.New(ctx, cfg, manager, zapLogger)
		if err != nil {
			return err
		}
		return fn(ctx, app, cmd.OutOrStdout())
	}
}
