package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/server"
	"taskman/internal/service"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd exposes the configured store over HTTP until interrupted.
type ServeCmd struct {
	listen string
}

// SetListen sets the listen address (for testing).
func (c *ServeCmd) SetListen(addr string) {
	c.listen = addr
}

func (c *ServeCmd) Name() string      { return "serve" }
func (c *ServeCmd) Aliases() []string { return nil }
func (c *ServeCmd) Synopsis() string  { return "Serve the task store over HTTP" }
func (c *ServeCmd) Usage() string     { return "taskman serve [--listen <addr>]" }
func (c *ServeCmd) NeedsStore() bool  { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listen, "listen", "", "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if cfg.Backend == config.BackendRemote {
		fmt.Fprintln(errOut, "error: cannot serve the remote backend")
		return exitcode.UserError
	}

	addr := c.listen
	if addr == "" {
		addr = cfg.Listen
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "serving %s backend on http://%s\n", cfg.Backend, addr)
	}
	if err := server.New(svc, cfg.Log()).Run(ctx, addr); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
