package options

import (
	"github.com/spf13/cobra"
)

// ServeOptions
type ServeOptions struct {
	Addr string
}

func AddServeArgs(cmd *cobra.Command, o *ServeOptions) {
	cmd.Flags().StringVarP(&o.Addr, "addr", "a", "",
		"Listen address. Defaults to the configured addr.")
}
