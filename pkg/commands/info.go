package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/routine/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about configuration and where data is stored.",
		Example: `
routine info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			s := info.Info{
				Config:      e.Config,
				Persistence: e.Persistence,
				Session:     e.Session,
				JSON:        output.JSON,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
