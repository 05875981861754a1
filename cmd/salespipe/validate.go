package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/salespipe/internal/cli"
	"github.com/mwhitfield/salespipe/internal/common"
	"github.com/mwhitfield/salespipe/internal/model"
	"github.com/mwhitfield/salespipe/internal/pipeline"
	"github.com/mwhitfield/salespipe/internal/reader"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Parse and validate the input file without running analytics",
		Long: `Validate runs only the parse and clean stages and reports which rows would
be rejected and why. Useful for checking a new data export before a full
pipeline run.`,
		RunE: runValidate,
	}

	cmd.Flags().StringP("input", "i", "", "input sales data file (overrides input.file)")
	cmd.Flags().BoolP("verbose", "v", false, "print every rejected row")

	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	input := flagOrConfig(cmd, "input", "input.file")
	if input == "" {
		return fmt.Errorf("%w: input.file is required", common.ErrInvalidConfig)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	lines, err := reader.ReadLines(input)
	if err != nil {
		return common.NewUserError("validation failed", err)
	}

	p := pipeline.New(reader.New(), nil)
	accepted, rejected := p.ParseAndClean(lines)

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, cli.TitleStyle.Render("Validation Results"))
	fmt.Fprintln(out, cli.SuccessStyle.Render(fmt.Sprintf("Accepted: %d", len(accepted))))
	fmt.Fprintln(out, cli.WarningStyle.Render(fmt.Sprintf("Rejected: %d", len(rejected))))

	if len(rejected) == 0 {
		return nil
	}

	counts := make(map[model.RejectionReason]int)
	for _, rej := range rejected {
		counts[rej.Reason]++
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Rejections by reason:")
	for _, reason := range []model.RejectionReason{
		model.ReasonIncompleteRow,
		model.ReasonMissingField,
		model.ReasonInvalidID,
		model.ReasonInvalidQty,
		model.ReasonInvalidPrice,
		model.ReasonInvalidDate,
	} {
		if n := counts[reason]; n > 0 {
			fmt.Fprintf(out, "  %s: %d\n", reason, n)
		}
	}

	if verbose {
		fmt.Fprintln(out)
		for _, rej := range rejected {
			fmt.Fprintf(out, "line %d [%s]: %s\n",
				rej.LineNumber, rej.Reason, cli.SubtleStyle.Render(rej.RawLine))
		}
	}

	return nil
}
