package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/photobook/pkg/commands/options"
	"tableflip.dev/photobook/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"get"},
		Short:   "List photos.",
		Long: `List one page of a month, or a count per month when no month is
given.`,
		Example: `
photobook ls
photobook ls --month June --page 2
photobook get -m 0 --calendar -o yaml
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			format, err := get.ParseFormat(oo.Format())
			if err != nil {
				return oo.HandleError(err)
			}
			svc, cfg, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			s := get.Get{
				Service:  svc,
				Month:    mo.Month,
				Page:     mo.Page,
				PageSize: cfg.Gallery.PageSize,
				Calendar: mo.Calendar,
				ShowID:   ido.ShowID,
				Format:   format,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddMonthArg(cmd, mo)
	options.AddPageArgs(cmd, mo)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	registerMonthCompletion(cmd)

	topLevel.AddCommand(cmd)
}
