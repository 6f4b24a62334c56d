package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/buildplan/internal/cli"
	"github.com/alexanderramin/buildplan/internal/debounce"
	"github.com/alexanderramin/buildplan/internal/estimate"
	"github.com/alexanderramin/buildplan/internal/intelligence"
	"github.com/alexanderramin/buildplan/internal/llm"
	"github.com/alexanderramin/buildplan/internal/logging"
	"github.com/alexanderramin/buildplan/internal/metrics"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := logging.Setup()
	collector := metrics.New(nil)

	// LLM client. Disabled config yields a client whose calls fail fast,
	// so every intelligence service falls back to its deterministic path.
	llmCfg := llm.LoadConfig()
	llmObservers := llm.Observers{collector}
	if llmCfg.LogCalls {
		llmObservers = append(llmObservers, llm.NewLogObserver(os.Stderr))
	}
	llmClient := llm.NewClient(llmCfg, llmObservers)

	// Edit events go to metrics, and to stderr when debugging.
	editObservers := estimate.MultiObserver{collector}
	if logging.LevelFromEnv() <= slog.LevelDebug {
		editObservers = append(editObservers, estimate.NewLogObserver(os.Stderr))
	}

	app := &cli.App{
		Workspace: estimate.NewWorkspace(
			estimate.WithObserver(editObservers),
			estimate.WithLogger(logger),
		),
		Generator:     intelligence.NewPlanGenerator(llmClient, logger),
		Advisor:       intelligence.NewAdvisor(llmClient, logger),
		Classifier:    intelligence.NewTicketClassifier(llmClient, logger),
		Metrics:       collector,
		Logger:        logger,
		DebounceDelay: debounce.DelayFromEnv(),
	}

	// Detect interactive terminal for shell-only entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger.Debug("starting", "llm_enabled", llmCfg.Enabled, "provider", llmCfg.Provider)

	return cli.NewRootCmd(app).Execute()
}
