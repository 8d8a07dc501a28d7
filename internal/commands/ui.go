package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"taskman/internal/collection"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/output"
	"taskman/internal/service"
	"taskman/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd opens the interactive terminal view.
type UICmd struct {
	// Options are passed to the bubbletea program (for testing).
	Options []tea.ProgramOption
}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return nil }
func (c *UICmd) Synopsis() string  { return "Interactive terminal view" }
func (c *UICmd) Usage() string     { return "taskman ui" }
func (c *UICmd) NeedsStore() bool  { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	opts := append([]tea.ProgramOption{tea.WithOutput(out)}, c.Options...)
	ctl := collection.New(svc, cfg.Log())
	if err := tui.Run(ctx, ctl, output.NewTheme(out, !cfg.NoColor), opts...); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
