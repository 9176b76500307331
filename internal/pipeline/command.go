package pipeline

import (
	"context"
	"fmt"
)

type commandKind int

const (
	kindLiteral commandKind = iota
	kindComputed
)

// ComputeFunc returns the shell command line that is executed.
type ComputeFunc func(ctx context.Context, env *Env) (string, error)

// Command is a command that is executed in the working directory.
// It is either a literal shell command line or a command line that is
// computed right before execution.
type Command struct {
	kind    commandKind
	line    string
	name    string
	compute ComputeFunc
}

// Literal returns a Command that executes line.
func Literal(line string) Command {
	return Command{kind: kindLiteral, line: line, name: line}
}

// Computed returns a Command that executes the command line returned by fn.
// name identifies the command in logs and command outputs.
func Computed(name string, fn ComputeFunc) Command {
	return Command{kind: kindComputed, name: name, compute: fn}
}

// Literals converts a list of command lines to Commands.
func Literals(lines []string) []Command {
	result := make([]Command, 0, len(lines))
	for _, l := range lines {
		result = append(result, Literal(l))
	}

	return result
}

func (c *Command) String() string {
	return c.name
}

func (c *Command) commandLine(ctx context.Context, env *Env) (string, error) {
	switch c.kind {
	case kindLiteral:
		return c.line, nil

	case kindComputed:
		line, err := c.compute(ctx, env)
		if err != nil {
			return "", fmt.Errorf("computing command line of %q failed: %w", c.name, err)
		}

		return line, nil

	default:
		return "", fmt.Errorf("command %q has unsupported kind: %d", c.name, c.kind)
	}
}
