package options

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// ErrNotConfirmed is returned when a destructive command needs --yes.
var ErrNotConfirmed = errors.New("not confirmed: pass --yes to run without a terminal")

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		`Skip the confirmation prompt.`)
}

// Confirm asks question on out and reads the answer from in. It returns
// false without prompting when --yes was not given and in is not a
// terminal.
func (o *ConfirmOptions) Confirm(in *os.File, out io.Writer, question string) (bool, error) {
	if o.Yes {
		return true, nil
	}
	if !isatty.IsTerminal(in.Fd()) && !isatty.IsCygwinTerminal(in.Fd()) {
		return false, ErrNotConfirmed
	}
	_, _ = fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
