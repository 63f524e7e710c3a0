package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/photobook/pkg/category"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(photobook completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(photobook completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func monthCompletions(toComplete string) []string {
	var out []string
	for _, name := range category.Months().Names() {
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(toComplete)) {
			out = append(out, name)
		}
	}
	return out
}

func registerMonthCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("month", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return monthCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}
