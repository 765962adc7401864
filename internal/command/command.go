// Package command assembles ordered shell instructions into labeled units.
//
// A Command is a value type: Append returns a new Command, so a command
// handed to a step can never be mutated behind the step's back. No
// validation of instruction content is performed; callers are responsible
// for shell-safety of interpolated values.
package command

import (
	"fmt"
	"strings"
)

// Command is an ordered sequence of shell instructions with a
// human-readable label. A Command with zero instructions is a valid no-op.
type Command struct {
	Label        string
	Instructions []string
}

// New returns an empty Command with the given label.
func New(label string) Command {
	return Command{Label: label}
}

// Append returns a copy of the Command with the instruction appended.
func (c Command) Append(instruction string) Command {
	instructions := make([]string, 0, len(c.Instructions)+1)
	instructions = append(instructions, c.Instructions...)
	instructions = append(instructions, instruction)
	return Command{Label: c.Label, Instructions: instructions}
}

// Appendf appends a formatted instruction.
func (c Command) Appendf(format string, args ...any) Command {
	return c.Append(fmt.Sprintf(format, args...))
}

// Render joins the instructions into a single shell line. Instructions
// execute in append order on the same target within one logical unit.
func (c Command) Render() string {
	return strings.Join(c.Instructions, " && ")
}

// Empty reports whether the Command carries no instructions.
func (c Command) Empty() bool {
	return len(c.Instructions) == 0
}
