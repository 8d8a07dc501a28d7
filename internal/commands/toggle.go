package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/collection"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/output"
	"taskman/internal/service"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"t"} }
func (c *ToggleCmd) Synopsis() string  { return "Flip a task between open and done" }
func (c *ToggleCmd) Usage() string     { return "taskman toggle <id>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ctl := collection.New(svc, cfg.Log())
	if err := ctl.Toggle(ctx, id); err != nil {
		return reportStoreError(errOut, err)
	}

	task, ok := ctl.Task(id)
	if !ok {
		// The store accepted the toggle but the task is gone from the listing.
		return reportStoreError(errOut, service.NotFound(id))
	}
	if !cfg.Quiet {
		output.FormatState(out, task)
	}
	return exitcode.Success
}
