package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/routine/pkg/runner/status"
)

func addStatus(topLevel *cobra.Command) {
	var showID, follow bool

	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"today", "ls"},
		Short:   "show today's checklist",
		Example: `
routine status
routine status --id
routine status --follow
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			s := status.Status{
				Session: e.Session,
				ShowID:  showID,
				JSON:    output.JSON,
				Follow:  follow,
				Logger:  e.Logger,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&showID, "id", false, "Show task ids.")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep redrawing as the checklist changes.")

	topLevel.AddCommand(cmd)
}
