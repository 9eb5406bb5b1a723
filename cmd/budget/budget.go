// Package budget implements the budget command, which turns one statement
// into a categorized spending report.
package budget

import (
	"context"
	"fmt"
	"io"

	"fjacquet/statement-budget/cmd/common"
	"fjacquet/statement-budget/cmd/root"
	"fjacquet/statement-budget/internal/container"
	"fjacquet/statement-budget/internal/logging"
	"fjacquet/statement-budget/internal/report"

	"github.com/spf13/cobra"
)

var formatNames []string

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget [statement]",
	Short: "Build a categorized budget from one statement",
	Long: `Reads a statement PDF (or a text dump, or a candidate CSV written by the
extract command), assigns every debit to a spending category and prints the
per-category totals. Reports are written to --output, or to the configured
report directory.`,
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
		return Run(cmd.Context(), c, input, root.SharedFlags.Output, formatNames, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringSliceVar(&formatNames, "format", nil, "Report formats: text, csv, xlsx, json (default from config)")
}

// Run processes input and writes its reports into outputDir, printing the
// text report to out.
func Run(ctx context.Context, c *container.Container, input, outputDir string, names []string, out io.Writer) error {
	if input == "" {
		return fmt.Errorf("no statement given; pass a file or --input")
	}
	cfg := c.GetConfig()

	year, err := common.ResolveYear(cfg.Statement.Year, input)
	if err != nil {
		return err
	}
	formats, err := common.Formats(names, c.GetFormats())
	if err != nil {
		return err
	}

	res, err := c.GetProcessor().Process(ctx, input, year)
	if err != nil {
		return err
	}

	dir := common.OutputDir(outputDir, cfg.Report.Directory)
	files, err := c.GetGenerator().Write(res, dir, formats...)
	if err != nil {
		return err
	}

	fmt.Fprint(out, report.RenderText(res))
	c.GetLogger().Info("Budget complete",
		logging.F(logging.FieldDocument, input),
		logging.F(logging.FieldCount, len(files)))
	return nil
}
