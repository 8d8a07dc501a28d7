package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskman/internal/collection"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	category string
	priority int
}

// SetCategory sets the category (for testing).
func (c *AddCmd) SetCategory(category string) {
	c.category = category
}

// SetPriority sets the priority (for testing).
func (c *AddCmd) SetPriority(priority int) {
	c.priority = priority
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskman add [--category <cat>] [--priority <n>] <title...>"
}
func (c *AddCmd) NeedsStore() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.category, "category", service.CategoryOther, "")
	fs.StringVar(&c.category, "c", service.CategoryOther, "")
	fs.IntVar(&c.priority, "priority", service.PriorityLow, "")
	fs.IntVar(&c.priority, "p", service.PriorityLow, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	category := c.category
	if category == "" {
		category = service.CategoryOther
	}
	priority := c.priority
	if priority == 0 {
		priority = service.PriorityLow
	}

	ctl := collection.New(svc, cfg.Log())
	ctl.OpenForm()
	if err := ctl.SubmitNewTask(ctx, title, category, priority); err != nil {
		return reportStoreError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
