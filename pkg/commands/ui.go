package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/routine/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
routine ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}
			return teaui.Run(cmd.Context(), e.Session)
		},
	}

	topLevel.AddCommand(cmd)
}
