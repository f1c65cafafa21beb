package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/routine/pkg/schedule"
	"tableflip.dev/routine/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(routine completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(routine completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// taskCompletions offers the schedule's task ids. Remote schedules are not
// fetched while completing.
func taskCompletions(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	source := ""
	if cfg, err := store.LoadConfig(); err == nil && !strings.Contains(cfg.SchedulePath(), "://") {
		source = cfg.SchedulePath()
	}
	s, err := schedule.Load(context.Background(), source, nil)
	if err != nil {
		s = schedule.Default()
	}
	return s.IDs(), cobra.ShellCompDirectiveNoFileComp
}
