package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"todo/internal/board"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	showIDs bool
}

// SetShowIDs sets the ids flag (for testing).
func (c *ListCmd) SetShowIDs(show bool) {
	c.showIDs = show
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "todo list [--ids]" }
func (c *ListCmd) NeedsService() bool { return true }
func (c *ListCmd) Interactive() bool  { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.showIDs, "ids", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	b := board.New(svc)
	if err := b.Load(ctx); err != nil {
		return reportBackendError(log.FromContext(ctx), errOut, err)
	}

	if b.Len() == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for i, task := range b.Tasks() {
		if c.showIDs {
			output.FormatTaskVerbose(out, i+1, task)
		} else {
			output.FormatTask(out, i+1, task)
		}
	}
	if !cfg.Quiet {
		output.FormatRemaining(out, b.Remaining())
	}

	return exitcode.Success
}
