// Package shell runs external commands synchronously.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
)

type (
	Result struct {
		Stdout   string
		Stderr   string
		ExitCode int
	}

	Options struct {
		Dir string
		Env map[string]string
	}

	// Runner runs one command to completion. A non-zero exit is reported through Result.ExitCode, not
	// through the error, which is reserved for failures to start or wait for the process.
	Runner interface {
		Run(ctx context.Context, name string, args []string, opts Options) (Result, error)
	}

	// ExecRunner is the [Runner] backed by os/exec.
	ExecRunner struct {
		logger zerolog.Logger
	}

	// CommandError describes a command that exited non-zero.
	CommandError struct {
		Command  string
		Stderr   string
		ExitCode int
	}
)

var (
	ErrCommandFailed = errors.New("command failed")
)

func NewExecRunner(logger zerolog.Logger) *ExecRunner {
	return &ExecRunner{logger: logger.With().Str("component", "shell").Logger()}
}

// Run implements [Runner]. No timeout is applied; only ctx can stop the process.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, opts Options) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Dir = opts.Dir

	if len(opts.Env) > 0 {
		cmd.Env = cmd.Environ()

		for k, v := range opts.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	r.logger.Debug().Str("command", name).Strs("args", args).Str("dir", opts.Dir).Msg("Executing command")

	err := cmd.Run()

	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError

	switch {
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		return result, fmt.Errorf("failed to run %s: %w", name, err)
	}

	r.logger.Debug().Str("command", name).Int("exitCode", result.ExitCode).Msg("Command finished")

	return result, nil
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%q exited with status %d", e.Command, e.ExitCode)

	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}

	return msg
}

func (e *CommandError) Unwrap() error {
	return ErrCommandFailed
}

// Check runs a command and turns a non-zero exit into a [CommandError].
// Non-nil returned error wraps [ErrCommandFailed] when the command ran and failed.
func Check(ctx context.Context, r Runner, name string, args []string, opts Options) (Result, error) {
	result, err := r.Run(ctx, name, args, opts)
	if err != nil {
		return result, err
	}

	if result.ExitCode != 0 {
		return result, &CommandError{
			Command:  strings.Join(append([]string{name}, args...), " "),
			Stderr:   result.Stderr,
			ExitCode: result.ExitCode,
		}
	}

	return result, nil
}

// NPM returns the npm executable name for the running platform.
func NPM() string {
	if runtime.GOOS == "windows" {
		return "npm.cmd"
	}

	return "npm"
}
