package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/buildplan/internal/cli/formatter"
	"github.com/alexanderramin/buildplan/internal/debounce"
	"github.com/alexanderramin/buildplan/internal/estimate"
	"github.com/alexanderramin/buildplan/internal/intelligence"
	"github.com/alexanderramin/buildplan/internal/metrics"
	"github.com/spf13/cobra"
)

// App holds the workspace and the collaborators CLI commands use.
type App struct {
	Workspace  *estimate.Workspace
	Generator  intelligence.PlanGenerator
	Advisor    intelligence.Advisor
	Classifier intelligence.TicketClassifier
	Metrics    *metrics.Collector
	Logger     *slog.Logger

	// DebounceDelay is how long adjust mode waits after the last key
	// before committing the pending quantity.
	DebounceDelay time.Duration

	// IsInteractive reports whether stdin is a terminal. The bare root
	// command opens the shell only when it is.
	IsInteractive func() bool
}

var errNoGenerator = errors.New("plan generation is not configured")

func (app *App) debounceDelay() time.Duration {
	if app.DebounceDelay > 0 {
		return app.DebounceDelay
	}
	return debounce.DefaultDelay
}

func (app *App) logger() *slog.Logger {
	if app.Logger != nil {
		return app.Logger
	}
	return slog.Default()
}

// NewRootCmd creates the top-level "buildplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "buildplan",
		Short:         "Construction estimate planner",
		Long:          "Generate a construction cost plan, then edit quantities and prices with every figure kept consistent.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runShell(cmd, app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newNewCmd(app),
		newShellCmd(app),
		newShowCmd(app),
		newAllocateCmd(),
		newServeCmd(app),
	)

	return root
}

// openPlan loads a plan document into the workspace and prints any
// linkage issues found while doing so.
func (app *App) openPlan(w io.Writer, path string) error {
	plan, err := loadPlanFile(path)
	if err != nil {
		return err
	}
	issues, err := app.Workspace.CreateHistory(plan)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if len(issues) > 0 {
		fmt.Fprintln(w, formatter.FormatIssues(issues))
	}
	return nil
}
