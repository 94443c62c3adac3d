package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"todo/internal/board"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return []string{"rename"} }
func (c *EditCmd) Synopsis() string   { return "Change a task's title" }
func (c *EditCmd) Usage() string      { return "todo edit <ref> <title...>" }
func (c *EditCmd) NeedsService() bool { return true }
func (c *EditCmd) Interactive() bool  { return false }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		return reportRefError(errOut, err)
	}

	title := strings.TrimSpace(strings.Join(rest, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	logger := log.FromContext(ctx)
	b := board.New(svc)
	task, err := lookupTask(ctx, b, ref)
	if err != nil {
		return reportLookupError(logger, errOut, err)
	}

	if task.Completed {
		fmt.Fprintf(errOut, "error: cannot edit a completed task: %s\n", ref)
		return exitcode.UserError
	}

	if _, err := b.ChangeTask(ctx, task.ID, service.SetTitle(title)); err != nil {
		return reportBackendError(logger, errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
