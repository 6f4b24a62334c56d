package cli

import (
	"fmt"

	"github.com/alexanderramin/buildplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var (
		planPath  string
		materials bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render a plan document and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if err := app.openPlan(cmd.ErrOrStderr(), planPath); err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatPlanSummary(app.Workspace.Current(), 0))
			if materials {
				fmt.Fprintln(out, formatter.FormatMaterials(app.Workspace.Materials()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&planPath, "plan", "", "Plan document (JSON or YAML)")
	cmd.Flags().BoolVar(&materials, "materials", false, "Include the material table")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}
