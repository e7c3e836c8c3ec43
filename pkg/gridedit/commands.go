package gridedit

import (
	"context"
	"fmt"
	"strings"
)

// Command is a keyboard-level command of the rendering surface.
type Command int

const (
	CmdUndo Command = iota + 1
	CmdRedo
	CmdCopy
	CmdSelectAll
	CmdDelete
	CmdEscape
)

var commandNames = map[Command]string{
	CmdUndo:      "undo",
	CmdRedo:      "redo",
	CmdCopy:      "copy",
	CmdSelectAll: "select-all",
	CmdDelete:    "delete",
	CmdEscape:    "escape",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand returns the command with the given name.
func ParseCommand(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for cmd, n := range commandNames {
		if n == name {
			return cmd, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", name)
}

// Execute runs a keyboard command.
func (c *Controller) Execute(ctx context.Context, cmd Command) error {
	switch cmd {
	case CmdUndo:
		return c.Undo()
	case CmdRedo:
		return c.Redo()
	case CmdCopy:
		_, err := c.Copy(ctx)
		return err
	case CmdSelectAll:
		c.SelectAll()
		return nil
	case CmdDelete:
		return c.DeleteSelection()
	case CmdEscape:
		c.ClearSelection()
		return nil
	default:
		return fmt.Errorf("unknown command %v", cmd)
	}
}
