package cli

import (
	"fmt"

	"github.com/alexanderramin/buildplan/internal/cli/formatter"
	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/spf13/cobra"
)

func newNewCmd(app *App) *cobra.Command {
	var (
		useDefaults bool
		noShell     bool
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Answer the intake wizard and generate a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Generator == nil {
				return errNoGenerator
			}

			intake := domain.DefaultIntake()
			if !useDefaults {
				wiz := newIntakeWizard(intake)
				if err := wiz.form().Run(); err != nil {
					return err
				}
				var err error
				if intake, err = wiz.Intake(); err != nil {
					return err
				}
			}

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Generating plan...")
			plan, err := app.Generator.Generate(cmd.Context(), intake)
			stop()
			if err != nil {
				return fmt.Errorf("generating plan: %w", err)
			}

			issues, err := app.Workspace.CreateHistory(plan)
			if err != nil {
				return err
			}
			if len(issues) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.FormatIssues(issues))
			}
			if outPath != "" {
				if err := savePlanFile(outPath, app.Workspace.Current()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Saved "+outPath))
			}

			if noShell {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanSummary(app.Workspace.Current(), 0))
				return nil
			}
			return runShell(cmd, app)
		},
	}

	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Skip the wizard and use default answers")
	cmd.Flags().BoolVar(&noShell, "no-shell", false, "Print the plan and exit instead of opening the shell")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Also save the generated plan to this file (JSON or YAML)")

	return cmd
}
