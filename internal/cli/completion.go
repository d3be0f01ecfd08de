package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drainplan/pkg/pipeline"
	"github.com/matzehuels/drainplan/pkg/profile"
)

// flagChoices lists the accepted values of every enumerated flag.
var flagChoices = map[string][]string{
	"edge-policy": {string(profile.EdgeInterior), string(profile.EdgeInclusive)},
	"strategy": {
		string(profile.StrategyEdgeSymmetric),
		string(profile.StrategyMullionRelative),
		string(profile.StrategyParityAware),
	},
	"target": {string(profile.TargetMax), string(profile.TargetMidrange)},
	"clamp":  {string(profile.ClampProfile), string(profile.ClampEdge)},
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for drainplan.

  $ source <(drainplan completion bash)
  $ drainplan completion zsh > "${fpath[1]}/_drainplan"
  $ drainplan completion fish | source
  PS> drainplan completion powershell | Out-String | Invoke-Expression

Parameter choices (--strategy, --edge-policy, --target, --clamp) and output
formats (-f) complete as well.`,
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
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// registerCompletions attaches value completion to the enumerated flags of
// cmd and its subcommands.
func registerCompletions(cmd *cobra.Command) {
	for name, choices := range flagChoices {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(choices, cobra.ShellCompDirectiveNoFileComp))
		}
	}
	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	}
	for _, sub := range cmd.Commands() {
		registerCompletions(sub)
	}
}

// completeFormats completes the last element of a comma-separated format list.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	var out []string
	for _, f := range pipeline.SortFormats(formatList()) {
		if !strings.Contains(","+prefix, ","+f+",") {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func formatList() []string {
	out := make([]string, 0, len(pipeline.ValidFormats))
	for f := range pipeline.ValidFormats {
		out = append(out, f)
	}
	return out
}
