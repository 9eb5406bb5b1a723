// Package categorize implements the categorize command, which shows where
// merchant names land in the category table.
package categorize

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/statement-budget/cmd/root"
	"fjacquet/statement-budget/internal/container"

	"github.com/spf13/cobra"
)

var (
	listCategories bool
	exportPath     string
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize [merchant name...]",
	Short: "Show the category a merchant name is assigned to",
	Long: `Looks merchant names up in the category table and prints the category
and the keyword that matched. Use --list to print the table and --export to
write it as YAML, e.g. to start a custom categories file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch {
		case exportPath != "":
			return Export(c, exportPath, out)
		case listCategories:
			List(c, out)
			return nil
		case len(args) == 0:
			return fmt.Errorf("no merchant names given")
		default:
			Explain(c, args, out)
			return nil
		}
	},
}

func init() {
	Cmd.Flags().BoolVar(&listCategories, "list", false, "List the categories in match order")
	Cmd.Flags().StringVar(&exportPath, "export", "", "Write the category table to this YAML file")
}

// Explain prints one line per name: the category, and the keyword that
// matched or "(fallback)".
func Explain(c *container.Container, names []string, out io.Writer) {
	for _, name := range names {
		e := c.GetCategorizer().Explain(name)
		if e.Fallback {
			fmt.Fprintf(out, "%s -> %s (fallback)\n", name, e.Category)
			continue
		}
		fmt.Fprintf(out, "%s -> %s (keyword %q)\n", name, e.Category, e.Keyword)
	}
}

// List prints the categories in match order with their keywords.
func List(c *container.Container, out io.Writer) {
	for i, cat := range c.GetTable().Categories() {
		if cat.IsFallback() {
			fmt.Fprintf(out, "%2d. %s (fallback)\n", i+1, cat.ID)
			continue
		}
		fmt.Fprintf(out, "%2d. %s: %s\n", i+1, cat.ID, strings.Join(cat.Keywords, ", "))
	}
}

// Export writes the active table to path.
func Export(c *container.Container, path string, out io.Writer) error {
	if err := c.GetStore().SaveCategories(path, c.GetTable().Configs()); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d categories to %s\n", c.GetTable().Len(), path)
	return nil
}
