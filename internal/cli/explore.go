package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/censusplot/pkg/errors"
)

// exploreCommand creates the explore command, an interactive terminal view
// of the chart.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "explore <csv-file-or-url>",
		Short: "Explore the scatter plot in the terminal",
		Long: `Explore the census scatter plot in the terminal.

Keys 1-3 rebind the x axis and keys 4-6 the y axis; marks animate to their
new positions. Arrow keys select a state and enter shows its tooltip.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), args[0], &flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runExplore(ctx context.Context, source string, flags *chartFlags) error {
	opts, err := c.options(source, flags)
	if err != nil {
		return err
	}
	opts.Formats = nil
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if errors.IsURL(source) {
		spinner = newSpinnerWithContext(ctx, "Fetching "+source)
		spinner.Start()
	}
	ds, err := runner.Load(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	ctrl, _, err := runner.Scene(ctx, ds, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewExploreModel(ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("explore: %w", err)
	}
	return nil
}
