package site

import (
	"context"
	"os"
	"os/exec"
)

// CommandRunner runs an external command in an explicit working
// directory. The process-wide working directory is never changed; every
// invocation names the directory it needs.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner is the real CommandRunner. Output streams to the
// surrounding terminal so the operator sees clone and build progress.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
