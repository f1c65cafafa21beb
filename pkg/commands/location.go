package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/routine/pkg/runner/location"
)

func addLocation(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "location [place]",
		Short: "show or set today's weather location",
		Long: `With no arguments, print the coordinate in effect for today.
With a place name, geocode it and use it until midnight.`,
		Example: `
routine location
routine location Portland, OR
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			s := location.Location{
				Query:   strings.TrimSpace(strings.Join(args, " ")),
				Session: e.Session,
				JSON:    output.JSON,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
