// Package shell executes manifest command lines through a shell interpreter.
package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Result reports the outcome of one command execution. A failed command is
// data, not an error: one platform's build failure must not abort builds for
// the other platforms in the same run, so the caller decides what to do next.
type Result struct {
	Succeeded  bool
	ExitStatus int
}

// spawnFailureStatus is reported when the child process could not be started
// at all (shell missing, permission denied). There is no exit status to
// forward in that case.
const spawnFailureStatus = -1

// Runner executes one shell command synchronously.
type Runner interface {
	Run(ctx context.Context, command string) Result
}

// ShellRunner runs commands through the platform shell, inheriting standard
// streams so child output is visible live. It blocks until the child exits.
type ShellRunner struct {
	// Dir is the working directory for spawned commands.
	// Empty means the current process working directory.
	Dir string

	// Stdout and Stderr override the inherited streams (for testing).
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the command line and reports success or failure. The command
// string is passed to the shell verbatim; quoting is the manifest author's
// responsibility.
func (r *ShellRunner) Run(ctx context.Context, command string) Result {
	cmd := buildShellCommand(ctx, command)
	cmd.Dir = r.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.Env = os.Environ()

	err := cmd.Run()
	if err == nil {
		return Result{Succeeded: true}
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return Result{Succeeded: false, ExitStatus: exitErr.ExitCode()}
	}
	return Result{Succeeded: false, ExitStatus: spawnFailureStatus}
}

// buildShellCommand creates a cross-platform shell command.
// On Windows, uses the full path to PowerShell; on Unix, sh -c.
func buildShellCommand(ctx context.Context, cmdStr string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return buildWindowsShellCommand(ctx, cmdStr)
	}
	return exec.CommandContext(ctx, "sh", "-c", cmdStr)
}

// buildWindowsShellCommand creates a PowerShell command using the full path,
// so PATH shims cannot intercept the interpreter itself.
func buildWindowsShellCommand(ctx context.Context, cmdStr string) *exec.Cmd {
	systemRoot := os.Getenv("SYSTEMROOT")
	if systemRoot == "" {
		systemRoot = `C:\Windows`
	}
	powershellPath := filepath.Join(systemRoot, "System32", "WindowsPowerShell", "v1.0", "powershell.exe")
	return exec.CommandContext(ctx, powershellPath, "-NoProfile", "-NonInteractive", "-Command", cmdStr)
}
