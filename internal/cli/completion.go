package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud/spiral"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for wordcloud.

Bash:
  $ source <(wordcloud completion bash)

Zsh:
  $ wordcloud completion zsh > "${fpath[1]}/_wordcloud"

Fish:
  $ wordcloud completion fish | source

PowerShell:
  PS> wordcloud completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// registerValueCompletions completes enumerated layout flag values.
func registerValueCompletions(cmd *cobra.Command) {
	fixed := func(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		}
	}
	_ = cmd.RegisterFlagCompletionFunc("spiral", fixed(spiral.Names()...))
	_ = cmd.RegisterFlagCompletionFunc("font", fixed(fonts.Families()...))
	_ = cmd.RegisterFlagCompletionFunc("font-style", fixed(fonts.StyleNormal, fonts.StyleItalic, fonts.StyleOblique))
	_ = cmd.RegisterFlagCompletionFunc("font-weight", fixed(fonts.WeightNormal, fonts.WeightMedium, fonts.WeightBold))
	_ = cmd.RegisterFlagCompletionFunc("scale", fixed(pipeline.ScaleSqrt, pipeline.ScaleLinear, pipeline.ScaleLog))
}
