package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newShellCmd(app *App) *cobra.Command {
	var planPath string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive editing shell",
		Long: `Start an interactive shell over one plan. Every edit recalculates
the budget, is recorded in history and can be undone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if planPath != "" {
				if err := app.openPlan(cmd.ErrOrStderr(), planPath); err != nil {
					return err
				}
			}
			return runShell(cmd, app)
		},
	}

	cmd.Flags().StringVar(&planPath, "plan", "", "Plan document to open (JSON or YAML)")

	return cmd
}

func runShell(cmd *cobra.Command, app *App) error {
	m := newShellModel(app, openShellHistory(shellHistoryPath()))
	p := tea.NewProgram(m, tea.WithContext(cmd.Context()))
	_, err := p.Run()
	return err
}

// splitShellArgs splits a command line into words, honouring single and
// double quotes and backslash escapes.
func splitShellArgs(input string) ([]string, error) {
	var parts []string
	var cur strings.Builder

	inSingle := false
	inDouble := false
	escaped := false
	tokenStarted := false

	flush := func() {
		parts = append(parts, cur.String())
		cur.Reset()
		tokenStarted = false
	}

	for _, r := range input {
		if escaped {
			cur.WriteRune(r)
			tokenStarted = true
			escaped = false
			continue
		}

		if inSingle {
			if r == '\'' {
				inSingle = false
			} else {
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		if inDouble {
			switch r {
			case '"':
				inDouble = false
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		switch r {
		case '\\':
			escaped = true
			tokenStarted = true
		case '\'':
			inSingle = true
			tokenStarted = true
		case '"':
			inDouble = true
			tokenStarted = true
		case ' ', '\t', '\n', '\r':
			if tokenStarted {
				flush()
			}
		default:
			cur.WriteRune(r)
			tokenStarted = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if tokenStarted {
		flush()
	}

	return parts, nil
}
