package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/commands/options"
	"tableflip.dev/routine/pkg/runner/history"
)

func addHistory(topLevel *cobra.Command) {
	ho := &options.HistoryOptions{}

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"report"},
		Short:   "show progress for recent days and the current streak",
		Example: `
routine history
routine history --last 30d
routine history --calendar
`,
		Args: cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return ho.Validate(app.MaxReportDays)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			s := history.History{
				Session:  e.Session,
				Days:     ho.Days,
				Calendar: ho.Calendar,
				JSON:     output.JSON,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddHistoryArgs(cmd, ho)

	topLevel.AddCommand(cmd)
}
