package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/buildplan/internal/allocation"
	"github.com/alexanderramin/buildplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAllocateCmd() *cobra.Command {
	var (
		target   float64
		discrete bool
	)

	cmd := &cobra.Command{
		Use:   "allocate Q1 [Q2 ...]",
		Short: "Split a target total across quantities in proportion",
		Long: "Split a target total across the given quantities in proportion to them.\n" +
			"With --discrete the target is rounded and split in whole units by largest remainder.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current := make([]float64, len(args))
			for i, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("quantity %q: %w", a, err)
				}
				current[i] = v
			}
			res := allocation.Redistribute(current, target, discrete)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAllocation(current, target, res))
			return nil
		},
	}

	cmd.Flags().Float64Var(&target, "target", 0, "Total to distribute")
	cmd.Flags().BoolVar(&discrete, "discrete", false, "Whole units only (bags)")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}
