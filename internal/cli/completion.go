package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/censusplot/pkg/census"
	"github.com/matzehuels/censusplot/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for censusplot.

Bash:
  $ source <(censusplot completion bash)

Zsh:
  $ censusplot completion zsh > "${fpath[1]}/_censusplot"

Fish:
  $ censusplot completion fish | source

PowerShell:
  PS> censusplot completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unsupported shell: %s", args[0])
		},
	}
}

// registerFieldCompletions completes --x and --y with the fields of their
// axis, described by their label text.
func registerFieldCompletions(cmd *cobra.Command) {
	for flag, axis := range map[string]census.Axis{"x": census.AxisX, "y": census.AxisY} {
		_ = cmd.RegisterFlagCompletionFunc(flag, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return fieldCompletions(axis), cobra.ShellCompDirectiveNoFileComp
		})
	}
}

func fieldCompletions(a census.Axis) []string {
	var out []string
	for _, f := range census.FieldsFor(a) {
		out = append(out, string(f)+"\t"+f.Label())
	}
	return out
}

// registerFormatCompletions completes --format with the output formats.
func registerFormatCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return pipeline.Formats, cobra.ShellCompDirectiveNoFileComp
	})
}
