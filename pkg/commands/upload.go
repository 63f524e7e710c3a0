package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/photobook/pkg/commands/options"
	"tableflip.dev/photobook/pkg/runner/add"
)

func addUpload(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}
	uo := &options.UploadOptions{}

	cmd := &cobra.Command{
		Use:     "upload FILE...",
		Aliases: []string{"add"},
		Short:   "Upload photos into a month of the book.",
		Example: `
photobook upload --month June --author Sam beach.jpg dunes.jpg
photobook add -m 11 -n "first snow" snow.png
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := openService()
			if err != nil {
				return err
			}
			var progress io.Writer = os.Stderr
			if uo.Quiet {
				progress = nil
			}
			s := add.Add{
				Service:  svc,
				Month:    mo.Month,
				Author:   uo.Author,
				Notes:    uo.Notes,
				Files:    args,
				Progress: progress,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddMonthArg(cmd, mo)
	options.AddUploadArgs(cmd, uo)
	registerMonthCompletion(cmd)

	topLevel.AddCommand(cmd)
}
