// Package pipeline runs the configured commands in a working directory and
// reports the resulting changes.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/simplesurance/prsync/internal/logfields"
	"github.com/simplesurance/prsync/internal/syncerr"
)

const loggerName = "pipeline"

// Env describes the branch the commands are executed for.
// It is passed to computed commands and exported as environment variables
// to all commands.
type Env struct {
	Dir        string
	Branch     string
	BaseBranch string
}

func (e *Env) environ() []string {
	return append(os.Environ(),
		"PRSYNC_BRANCH="+e.Branch,
		"PRSYNC_BASE_BRANCH="+e.BaseBranch,
	)
}

// CommandOutput is the captured output of an executed command.
type CommandOutput struct {
	Command string
	Stdout  []string
	Stderr  []string
}

func (o *CommandOutput) StdoutText() string {
	return strings.Join(o.Stdout, "\n")
}

func (o *CommandOutput) StderrText() string {
	return strings.Join(o.Stderr, "\n")
}

// ChangeSet is the result of running the commands.
type ChangeSet struct {
	// Files are the paths of the changed files in the working directory.
	Files   []string
	Outputs []*CommandOutput
}

// Empty returns true if no files were changed.
func (c *ChangeSet) Empty() bool {
	return c == nil || len(c.Files) == 0
}

// ChangedFilesLister returns the files that are changed in the working
// directory.
type ChangedFilesLister interface {
	ChangedFiles() ([]string, error)
}

// Producer runs a list of commands sequentially in a directory.
type Producer struct {
	commands []Command
	lister   ChangedFilesLister
	shell    string
	logger   *zap.Logger
}

func NewProducer(commands []Command, lister ChangedFilesLister) *Producer {
	return &Producer{
		commands: commands,
		lister:   lister,
		shell:    "sh",
		logger:   zap.L().Named(loggerName),
	}
}

// Produce executes all commands in env.Dir and returns the changed files and
// the output of the commands.
// If a command fails, execution stops and a syncerr.CommandError is
// returned.
func (p *Producer) Produce(ctx context.Context, env *Env) (*ChangeSet, error) {
	var result ChangeSet

	logger := p.logger.With(logfields.Branch(env.Branch))

	for i := range p.commands {
		cmd := &p.commands[i]

		line, err := cmd.commandLine(ctx, env)
		if err != nil {
			return nil, err
		}

		out, err := p.exec(ctx, env, line)
		if err != nil {
			logger.Info("command failed",
				logfields.Command(line),
				logfields.Event("pipeline_command_failed"),
				zap.Error(err),
			)
			return nil, err
		}

		out.Command = cmd.String()
		result.Outputs = append(result.Outputs, out)

		logger.Debug("command executed",
			logfields.Command(line),
			logfields.Event("pipeline_command_executed"),
		)
	}

	files, err := p.lister.ChangedFiles()
	if err != nil {
		return nil, fmt.Errorf("retrieving changed files failed: %w", err)
	}
	result.Files = files

	logger.Debug("commands executed",
		logfields.Event("pipeline_finished"),
		zap.Int("changed_files", len(files)),
	)

	return &result, nil
}

func (p *Producer) exec(ctx context.Context, env *Env, line string) (*CommandOutput, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, p.shell, "-c", line)
	cmd.Dir = env.Dir
	cmd.Env = env.environ()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := CommandOutput{
		Stdout: splitLines(stdout.String()),
		Stderr: splitLines(stderr.String()),
	}

	if err != nil {
		cmdErr := syncerr.CommandError{
			Command:  line,
			ExitCode: -1,
			Output:   out.StderrText(),
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		} else {
			cmdErr.Err = err
		}

		return nil, &cmdErr
	}

	return &out, nil
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}

	return strings.Split(s, "\n")
}
