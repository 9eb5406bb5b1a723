// Package extract implements the extract command, which dumps the raw
// transaction candidates of a statement as CSV.
package extract

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/statement-budget/cmd/root"
	"fjacquet/statement-budget/internal/common"
	"fjacquet/statement-budget/internal/container"
	"fjacquet/statement-budget/internal/fileutils"
	"fjacquet/statement-budget/internal/logging"

	"github.com/spf13/cobra"
)

var showLines bool

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract [statement]",
	Short: "Extract transaction candidates from a statement as CSV",
	Long: `Reads a statement and writes its uncategorized debit and credit candidates
as CSV (direction, date, name, cents) to --output or standard output. The
CSV can be edited and fed back to the budget command. With --lines the
captured itemized section is printed instead.`,
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
		return Run(c, input, root.SharedFlags.Output, showLines, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().BoolVar(&showLines, "lines", false, "Print the captured itemized section instead of CSV")
}

// Run extracts candidates from input. The CSV goes to output when set,
// otherwise to out.
func Run(c *container.Container, input, output string, lines bool, out io.Writer) error {
	if input == "" {
		return fmt.Errorf("no statement given; pass a file or --input")
	}

	text, err := c.GetTextExtractor().ExtractLines(input)
	if err != nil {
		return err
	}

	ex := c.GetExtractor()
	if lines {
		captured := ex.Capture(text)
		if len(captured) > 0 {
			fmt.Fprintln(out, strings.Join(captured, "\n"))
		}
		return nil
	}

	res, err := ex.Extract(text)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	data, err := common.MarshalCSV(res.Rows(), c.GetConfig().DelimiterRune())
	if err != nil {
		return err
	}

	if output == "" {
		_, err = out.Write(data)
		return err
	}
	if err := fileutils.WriteFile(output, data); err != nil {
		return err
	}
	c.GetLogger().Info("Candidates written",
		logging.F(logging.FieldOutputFile, output),
		logging.F(logging.FieldDebits, len(res.Debits)),
		logging.F(logging.FieldCredits, len(res.Credits)))
	return nil
}
