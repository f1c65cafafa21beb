package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/routine/pkg/commands/options"
	"tableflip.dev/routine/pkg/runner/serve"
)

func addServe(topLevel *cobra.Command) {
	so := &options.ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the checklist page and JSON API",
		Example: `
routine serve
routine serve --addr 127.0.0.1:9000
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}
			addr := so.Addr
			if addr == "" {
				addr = e.Config.Addr()
			}
			s := serve.Serve{Session: e.Session, Addr: addr, Logger: e.Logger}
			return s.Do(cmd.Context())
		},
	}

	options.AddServeArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
