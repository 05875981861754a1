package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwhitfield/salespipe/internal/catalog"
	"github.com/mwhitfield/salespipe/internal/cli"
	"github.com/mwhitfield/salespipe/internal/common"
	"github.com/mwhitfield/salespipe/internal/pipeline"
	"github.com/mwhitfield/salespipe/internal/reader"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full cleaning, analytics, and enrichment pipeline",
		Long: `Run reads the raw sales log, validates and cleans every row, computes the
analytics summary, enriches accepted transactions against the product
catalog, and writes the enriched dataset and the text report.

Examples:
  # Run with config defaults
  salespipe run

  # Explicit paths
  salespipe run --input data/sales_data.txt --report-out output/report.txt

  # Analyze a single region without catalog enrichment
  salespipe run --region South --skip-enrichment`,
		RunE: runPipeline,
	}

	cmd.Flags().StringP("input", "i", "", "input sales data file (overrides input.file)")
	cmd.Flags().String("enriched-out", "", "enriched dataset output file (overrides output.enriched_file)")
	cmd.Flags().String("report-out", "", "report output file (overrides output.report_file)")
	cmd.Flags().String("region", "", "restrict analytics to one region")
	cmd.Flags().Bool("skip-enrichment", false, "skip the catalog fetch and enrichment")

	return cmd
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	region, _ := cmd.Flags().GetString("region")
	skipEnrichment, _ := cmd.Flags().GetBool("skip-enrichment")

	cfg, err := pipelineConfig(cmd, region, skipEnrichment)
	if err != nil {
		return err
	}

	fetcher := catalog.NewClient(
		viper.GetString("catalog.base_url"),
		viper.GetInt("catalog.limit"),
		viper.GetDuration("catalog.timeout"),
	)

	p := pipeline.New(reader.New(), fetcher)
	p.OnRows = func(total int) func() {
		bar := cli.NewRowProgress(total, os.Stderr, "Cleaning rows...")
		return func() { _ = bar.Add(1) }
	}

	result, err := p.Run(cmd.Context(), cfg)
	if err != nil {
		return common.NewUserError("pipeline run failed", err)
	}

	summary := fmt.Sprintf("  • Accepted: %d\n", result.Accepted) +
		fmt.Sprintf("  • Rejected: %d\n", len(result.Rejected)) +
		fmt.Sprintf("  • Total revenue: %s%s\n", cfg.Currency, result.Summary.TotalRevenue.StringFixed(2)) +
		fmt.Sprintf("  • Enriched: %d/%d (%.2f%%)\n", result.Matched, len(result.Enriched), result.MatchRate) +
		fmt.Sprintf("  • Time taken: %s\n", result.Elapsed.Round(time.Millisecond)) +
		fmt.Sprintf("  • Enriched file: %s\n", cfg.EnrichedPath) +
		fmt.Sprintf("  • Report: %s", cfg.ReportPath)

	if result.CatalogDegraded {
		summary += "\n" + cli.WarningStyle.Render("  ! catalog unavailable, all records UNMATCHED")
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Pipeline Complete", summary))

	return nil
}

// pipelineConfig assembles the run configuration from viper settings, with
// command flags taking precedence.
func pipelineConfig(cmd *cobra.Command, region string, skipEnrichment bool) (pipeline.Config, error) {
	input := flagOrConfig(cmd, "input", "input.file")
	if input == "" {
		return pipeline.Config{}, fmt.Errorf("%w: input.file is required", common.ErrInvalidConfig)
	}

	enrichedOut := flagOrConfig(cmd, "enriched-out", "output.enriched_file")
	reportOut := flagOrConfig(cmd, "report-out", "output.report_file")
	if enrichedOut == "" || reportOut == "" {
		return pipeline.Config{}, fmt.Errorf("%w: output paths are required", common.ErrInvalidConfig)
	}

	return pipeline.Config{
		InputPath:            input,
		EnrichedPath:         enrichedOut,
		ReportPath:           reportOut,
		Region:               region,
		Currency:             viper.GetString("report.currency"),
		TopN:                 viper.GetInt("analytics.top_n"),
		LowQuantityThreshold: viper.GetInt("analytics.low_quantity_threshold"),
		SkipEnrichment:       skipEnrichment,
	}, nil
}

// flagOrConfig prefers an explicitly set flag over the viper key.
func flagOrConfig(cmd *cobra.Command, flag, key string) string {
	if value, _ := cmd.Flags().GetString(flag); value != "" {
		return value
	}
	return viper.GetString(key)
}
