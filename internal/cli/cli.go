package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/candy-inventory-ui/internal/models"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/view"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)

// Controller is the part of the view controller the CLI drives.
type Controller interface {
	Mount(ctx context.Context) (unmount func())
	Snapshot() view.Snapshot
	Subscribe() (<-chan uint64, func())
	Refresh(ctx context.Context) error
	SetNewName(name string)
	AddCandy(ctx context.Context) error
	SetUpdateForm(form models.UpdateForm)
	UpdateInventory(ctx context.Context) error
	DeleteRow(ctx context.Context, id int) error
	RunQuery(ctx context.Context, title string) error
}

// Commands lists the subcommands Run understands.
var Commands = []string{"list", "query", "add", "update", "delete", "export", "watch"}

func IsCommand(name string) bool {
	return slices.Contains(Commands, name)
}

// Run executes one subcommand. args[0] is the subcommand name.
func Run(ctx context.Context, ctrl Controller, exportURL string, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	switch args[0] {
	case "list":
		if err := ctrl.Refresh(ctx); err != nil {
			fmt.Fprintln(out, renderError(err.Error()))
			return err
		}
		fmt.Fprintln(out, renderTable("Current Inventory", ctrl.Snapshot().Inventory))

	case "query":
		if len(args) < 2 {
			return fmt.Errorf("%w: query <out|low|over>", ErrUsage)
		}
		title, ok := view.FindQuery(args[1])
		if !ok {
			return fmt.Errorf("%w: unknown query %q", ErrUsage, args[1])
		}
		if err := ctrl.RunQuery(ctx, title); err != nil {
			fmt.Fprintln(out, renderError(err.Error()))
			return err
		}
		q := ctrl.Snapshot().Query
		fmt.Fprintln(out, renderTable(q.Title, q.Rows))

	case "add":
		if len(args) < 2 {
			return fmt.Errorf("%w: add <name>", ErrUsage)
		}
		if strings.TrimSpace(args[1]) == "" {
			fmt.Fprintln(out, renderNote("Nothing to add: the name is blank."))
			return nil
		}
		ctrl.SetNewName(args[1])
		return finish(out, ctrl, ctrl.AddCandy(ctx))

	case "update":
		if len(args) < 4 {
			return fmt.Errorf("%w: update <id> <stock> <cap>", ErrUsage)
		}
		form := models.UpdateForm{ID: args[1], Stock: args[2], Cap: args[3]}
		if !form.Complete() {
			fmt.Fprintln(out, renderNote("Nothing to update: every field is required."))
			return nil
		}
		ctrl.SetUpdateForm(form)
		return finish(out, ctrl, ctrl.UpdateInventory(ctx))

	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("%w: delete <id>", ErrUsage)
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: invalid id %q", ErrUsage, args[1])
		}
		return finish(out, ctrl, ctrl.DeleteRow(ctx, id))

	case "export":
		fmt.Fprintln(out, exportURL)

	case "watch":
		return watch(ctx, ctrl, out)

	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}

// finish prints the banner and the inventory refetched by an action.
func finish(out io.Writer, ctrl Controller, err error) error {
	state := ctrl.Snapshot()
	if state.Error != "" {
		fmt.Fprintln(out, renderError(state.Error))
	}
	fmt.Fprintln(out, renderTable("Current Inventory", state.Inventory))
	return err
}

// watch prints the inventory whenever it changes until ctx is done.
func watch(ctx context.Context, ctrl Controller, out io.Writer) error {
	changes, cancel := ctrl.Subscribe()
	defer cancel()

	unmount := ctrl.Mount(ctx)
	defer unmount()

	fmt.Fprintln(out, renderNote("Watching inventory, press Ctrl+C to stop."))

	var (
		printed   bool
		last      []models.InventoryRow
		lastError string
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			state := ctrl.Snapshot()
			if state.Loading {
				continue
			}
			if state.Error != lastError {
				lastError = state.Error
				if state.Error != "" {
					fmt.Fprintln(out, renderError(state.Error))
				}
			}
			if printed && slices.Equal(last, state.Inventory) {
				continue
			}
			printed = true
			last = state.Inventory
			fmt.Fprintln(out, renderTable("Current Inventory", state.Inventory))
		}
	}
}
