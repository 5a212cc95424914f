// Package vcs runs the post-build commit and push sequence.
package vcs

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/birb-build/birb/internal/manifest"
	"github.com/birb-build/birb/internal/output"
	"github.com/birb-build/birb/internal/shell"
)

// Hook executes the commit+push sequence after a successful build command.
type Hook struct {
	// Git is the manifest's VCS configuration.
	Git manifest.GitConfig

	// ManifestDir is the directory containing birb.json; the commit runs
	// there via exec.Cmd.Dir, so the process working directory is never
	// changed and needs no restoration.
	ManifestDir string

	// RootDir is the project root where push commands execute.
	RootDir string

	// Runner executes the push command lines.
	Runner shell.Runner

	// Out receives status messages.
	Out *output.Writer
}

// FormatCommitMessage substitutes {version} and {platform} placeholders in a
// commit message template.
func FormatCommitMessage(template, version, platform string) string {
	return strings.NewReplacer(
		"{version}", version,
		"{platform}", platform,
	).Replace(template)
}

// Run commits staged changes and executes the configured push commands.
// Every failure is recovered here: a failed commit skips the pushes, a
// failed push is reported and the remaining pushes still run. Nothing
// propagates back to the build loop.
func (h *Hook) Run(ctx context.Context, version, platform string) {
	if !h.Git.AutoCommit {
		return
	}

	message := FormatCommitMessage(h.Git.CommitMessageTemplate, version, platform)
	h.Out.Action("Committing changes with message: %q", message)

	if err := h.commit(ctx, message); err != nil {
		h.Out.Failure("failed to commit changes: %v", err)
		return
	}
	h.Out.Success("Changes committed successfully")

	for _, push := range h.Git.VcsPushCommands {
		h.Out.Action("Running push command: %s", push)
		result := h.Runner.Run(ctx, push)
		if result.Succeeded {
			h.Out.Success("Push succeeded")
		} else {
			h.Out.Failure("push command failed with exit status %d: %s", result.ExitStatus, push)
		}
	}
}

// commit stages everything under the manifest directory and commits it.
func (h *Hook) commit(ctx context.Context, message string) error {
	if err := h.git(ctx, "add", "."); err != nil {
		return err
	}
	return h.git(ctx, "commit", "-m", message)
}

// git runs one git subcommand in the manifest directory.
func (h *Hook) git(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = h.ManifestDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
