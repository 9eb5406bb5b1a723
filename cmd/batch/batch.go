// Package batch implements the batch command, which builds a budget for
// every statement in a directory.
package batch

import (
	"context"
	"fmt"
	"io"

	"fjacquet/statement-budget/cmd/common"
	"fjacquet/statement-budget/cmd/root"
	batchrunner "fjacquet/statement-budget/internal/batch"
	"fjacquet/statement-budget/internal/container"
	"fjacquet/statement-budget/internal/models"

	"github.com/spf13/cobra"
)

// Flags holds the batch-specific options.
type Flags struct {
	Formats      []string
	CombinedFile string
	NoCombine    bool
	Workers      int
}

var flags Flags

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch [directory]",
	Short: "Build budgets for every statement in a directory",
	Long: `Processes every .pdf, .txt and .csv statement directly inside the input
directory, writes one set of reports per statement into the output directory
and merges the spreadsheets into a combined workbook. A statement that fails
is reported and does not stop the others.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		input := root.SharedFlags.Input
		if len(args) == 1 {
			input = args[0]
		}
		return Run(cmd.Context(), c, input, root.SharedFlags.Output, flags, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringSliceVar(&flags.Formats, "format", nil, "Report formats: text, csv, xlsx, json (default from config)")
	Cmd.Flags().StringVar(&flags.CombinedFile, "combined", "", "Combined workbook file name (default from config)")
	Cmd.Flags().BoolVar(&flags.NoCombine, "no-combine", false, "Do not write a combined workbook")
	Cmd.Flags().IntVar(&flags.Workers, "workers", 0, "Statements processed concurrently (default from config)")
}

// Run processes the statements in inputDir and prints a per-document
// summary to out. It fails when any statement failed.
func Run(ctx context.Context, c *container.Container, inputDir, outputDir string, f Flags, out io.Writer) error {
	if inputDir == "" {
		return fmt.Errorf("no input directory given; pass a directory or --input")
	}
	cfg := c.GetConfig()

	formats, err := common.Formats(f.Formats, c.GetFormats())
	if err != nil {
		return err
	}

	opts := batchrunner.Options{
		Year:         cfg.Statement.Year,
		OutputDir:    common.OutputDir(outputDir, cfg.Report.Directory),
		Formats:      formats,
		CombinedFile: cfg.Report.CombinedFile,
		Workers:      cfg.Batch.Workers,
	}
	if f.CombinedFile != "" {
		opts.CombinedFile = f.CombinedFile
	}
	if f.NoCombine {
		opts.CombinedFile = ""
	}
	if f.Workers > 0 {
		opts.Workers = f.Workers
	}

	runner := c.GetBatchRunner()
	files, err := runner.Discover(inputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "No statements found in %s\n", inputDir)
		return nil
	}

	summary, err := runner.Run(ctx, files, opts)
	if summary != nil {
		PrintSummary(out, summary)
	}
	if err != nil {
		return err
	}
	if failed := len(summary.Failed()); failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(summary.Outcomes))
	}
	return nil
}

// PrintSummary writes one line per document and the combined workbook path.
func PrintSummary(out io.Writer, summary *batchrunner.Summary) {
	for _, o := range summary.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(out, "FAILED %s: %v\n", o.Document, o.Err)
			continue
		}
		fmt.Fprintf(out, "ok     %s (%d): $%s\n", o.Document, o.Year, models.FormatCents(o.Result.Debits.GrandTotal()))
	}
	if summary.CombinedFile != "" {
		fmt.Fprintf(out, "Combined workbook: %s\n", summary.CombinedFile)
	}
}
