package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/routine/pkg/runner/widgets"
)

func addWeather(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "show the weather for today's location",
		Example: `
routine weather
routine weather --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			s := widgets.Weather{Session: e.Session, JSON: output.JSON}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addQuote(topLevel *cobra.Command) {
	var width int

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "show the quote of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			s := widgets.Quote{Session: e.Session, JSON: output.JSON, Width: width}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 72, "Wrap the quote at this width.")

	topLevel.AddCommand(cmd)
}

func addSchedule(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "list the daily schedule and task ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			s := widgets.Schedule{Schedule: e.Schedule, JSON: output.JSON}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
