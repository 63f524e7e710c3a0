package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/photobook/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "check",
		Aliases: []string{"info"},
		Short:   "Check the photobook config.",
		Example: `
photobook check
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s := info.Info{Config: cfg}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
