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
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskman` (no args) and `taskman list`.
type ListCmd struct {
	header bool
}

// SetHeader enables the header (for testing).
func (c *ListCmd) SetHeader(on bool) {
	c.header = on
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskman list [--header]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.header, "header", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	ctl := collection.New(svc, cfg.Log())
	if err := ctl.Initialize(ctx); err != nil {
		return reportStoreError(errOut, err)
	}

	tasks := ctl.Tasks()
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, output.EmptyMessage)
		}
		return exitcode.Success
	}

	if c.header {
		output.FormatHeader(out, fmt.Sprintf("Tasks (%d)", len(tasks)))
	}
	output.FormatTaskList(out, tasks, output.NewTheme(out, !cfg.NoColor))
	return exitcode.Success
}
