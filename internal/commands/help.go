package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskman help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskman                                     List all tasks
  taskman list [common flags] [--header]      List all tasks (alias: ls)
  taskman add [common flags] [-c <category>] [-p <priority>] <title...>
                                              Create a task (alias: create)
  taskman toggle [common flags] <id>          Flip a task between open and done (alias: t)
  taskman ui [common flags]                   Interactive terminal view
  taskman serve [common flags] [--listen <addr>]
                                              Serve the task store over HTTP
  taskman login [common flags]                Authenticate with Google Tasks
  taskman logout [common flags]               Remove stored Google credentials
  taskman help
  taskman version [--verbose]

Categories: Comprar, Hacer, Otros (default Otros)
Priorities: 1 low (default), 2 medium, 3 high

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
  --no-color       Disable colors in task lists

Settings are read from config.yaml in the config directory and from
TASKMAN_* environment variables: backend (sqlite, mysql, google, remote),
database, google.tasklist, remote.url, listen, timeout.
`
