package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/photobook/pkg/config"
	teaui "tableflip.dev/photobook/pkg/tui/app"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the live gallery",
		Example: `
photobook ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			opts := teaui.Options{PageSize: cfg.Gallery.PageSize, Log: logger}
			svc, err := openServiceFrom(cfg)
			if err != nil {
				logger.Warn("gallery disabled", "reason", err)
				opts.Disabled = config.DisabledMessage
			}
			m, err := teaui.New(svc, opts)
			if err != nil {
				return err
			}
			return teaui.Run(m)
		},
	}

	topLevel.AddCommand(cmd)
}
