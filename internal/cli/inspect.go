package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/censusplot/pkg/census"
	"github.com/matzehuels/censusplot/pkg/chart"
	"github.com/matzehuels/censusplot/pkg/scale"
)

// inspectCommand creates the inspect command, which summarizes a dataset.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "inspect <csv-file-or-url>",
		Short: "Show the extent and axis domain of every field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], &flags, os.Stdout)
		},
	}
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "re-fetch remote datasets")
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, source string, flags *chartFlags, w io.Writer) error {
	opts, err := c.options(source, flags)
	if err != nil {
		return err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	ds, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	printKeyValue("Source", ds.Source)
	printKeyValue("ID", ds.ID.String())
	printKeyValue("States", strconv.Itoa(ds.Len()))
	fmt.Println()

	tbl, err := fieldTable(ds, opts.Layout())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, tbl)
	return err
}

// fieldTable renders one row per field: its axis, label, data extent and
// padded scale domain.
func fieldTable(ds *census.Dataset, l chart.Layout) (string, error) {
	var rows [][]string
	for _, f := range census.AllFields() {
		lo, hi, err := ds.Extent(f)
		if err != nil {
			return "", err
		}
		s, err := scale.Compute(ds, f, l.Range(f.Axis()))
		if err != nil {
			return "", err
		}
		rows = append(rows, []string{
			string(f),
			f.Axis().String(),
			f.Label(),
			formatNum(lo),
			formatNum(hi),
			fmt.Sprintf("[%s, %s]", formatNum(s.Domain[0]), formatNum(s.Domain[1])),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Field", "Axis", "Label", "Min", "Max", "Domain").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return cell.Foreground(colorCyan)
			case col >= 3:
				return cell.Foreground(colorWhite)
			}
			return cell.Foreground(colorGray)
		})
	return t.Render(), nil
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
