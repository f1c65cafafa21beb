package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/routine/pkg/runner/toggle"
)

func addToggle(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "toggle <task id>",
		Aliases: []string{"done", "check"},
		Short:   "check or uncheck a task for today",
		Example: `
routine toggle water
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly one task id, see `routine schedule`")
			}
			return nil
		},
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			s := toggle.Toggle{
				ID:      args[0],
				Session: e.Session,
				JSON:    output.JSON,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
