package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/routine/pkg/commands/options"
	"tableflip.dev/routine/pkg/runner/reset"
)

func addReset(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "clear today's progress",
		Example: `
routine reset
routine reset --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			ok, err := co.Confirm(os.Stdin, cmd.OutOrStdout(), "Clear all of today's progress?")
			if err != nil {
				return output.HandleError(err)
			}
			s := reset.Reset{
				Session:   e.Session,
				Confirmed: ok,
				JSON:      output.JSON,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
