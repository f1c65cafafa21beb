// Package toggle provides the runner logic for checking tasks off.
package toggle

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/printers"
)

// Toggle flips one task for today.
type Toggle struct {
	ID      string
	Session *app.Session
	JSON    bool
	Out     io.Writer
}

// Do executes the toggle and prints the section the task belongs to.
func (n *Toggle) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not toggle, no session")
	}

	res, err := n.Session.Toggle(ctx, n.ID)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, res)
	}

	pp := printers.PrettyPrint{Out: n.Out, ShowID: true}
	pp.NewLine()
	for _, sec := range n.Session.Dashboard(ctx).Sections {
		for _, t := range sec.Tasks {
			if t.ID == n.ID {
				pp.Section(sec)
			}
		}
	}
	pp.Summary(res.Summary)
	pp.Celebration(res.Celebration)
	return nil
}
