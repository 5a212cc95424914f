// Package engine orchestrates manifest builds: per-platform command
// dispatch, failure accumulation, and the post-build VCS hook.
package engine

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/birb-build/birb/internal/manifest"
	"github.com/birb-build/birb/internal/output"
	"github.com/birb-build/birb/internal/shell"
)

// CustomLabel is the platform label used in custom-command mode.
const CustomLabel = "custom"

// BuildResult records the outcome of one build target. Results exist only
// within a single engine run; they are never persisted.
type BuildResult struct {
	Target     string
	Succeeded  bool
	ExitStatus int
}

// PostBuildHook is invoked after each successful build command.
type PostBuildHook interface {
	Run(ctx context.Context, version, platform string)
}

// Engine runs the build targets of one loaded manifest. Targets are
// independent: a failing command is recorded and reported, and the loop
// moves on to the next target.
type Engine struct {
	Manifest *manifest.Manifest

	// OutputDir is the resolved artifact directory used by the cleanup stage.
	OutputDir string

	Runner shell.Runner
	Hook   PostBuildHook
	Out    *output.Writer
}

// titleCaser renders platform labels for display ("windows" → "Windows").
var titleCaser = cases.Title(language.English)

// Run executes the manifest's build targets sequentially and returns one
// result per executed target. It never returns an error: partial failures
// are data for the caller to aggregate or ignore.
func (e *Engine) Run(ctx context.Context) []BuildResult {
	m := e.Manifest

	if m.Build.CleanBeforeBuild {
		e.Out.Action("Cleaning old builds in %s...", m.Build.OutputDirectory)
		Cleanup(e.OutputDir, e.Out)
	}

	var results []BuildResult
	switch {
	case m.Build.PlatformBuildCommands.HasExecutable():
		e.Out.Info("Building using platform-specific commands...")
		for _, entry := range m.Build.PlatformBuildCommands.Entries() {
			if entry.Command == nil {
				continue
			}
			if ctx.Err() != nil {
				break
			}
			results = append(results, e.buildTarget(ctx, entry.Name, *entry.Command))
		}
	case m.Build.CustomBuildCommand != "":
		e.Out.Info("No platform-specific commands found, using custom build command...")
		results = append(results, e.buildTarget(ctx, CustomLabel, m.Build.CustomBuildCommand))
	default:
		// Validation rejects such manifests at load time; handed one
		// directly, the engine refuses it instead of crashing.
		e.Out.Warning("manifest defines no executable build action; nothing to do")
	}

	e.summarize(results)
	return results
}

// buildTarget runs one build command and, on success, the post-build hook.
// The hook receives the raw platform label from the manifest; title casing
// is display-only.
func (e *Engine) buildTarget(ctx context.Context, label, command string) BuildResult {
	display := titleCaser.String(label)
	e.Out.TargetStart(display)
	e.Out.Action("Executing command: %s", command)

	result := e.Runner.Run(ctx, command)
	if result.Succeeded {
		e.Out.TargetSuccess(display)
		if e.Hook != nil {
			e.Hook.Run(ctx, e.Manifest.Versioning.CurrentVersion, label)
		}
	} else {
		e.Out.TargetFailed(display, result.ExitStatus)
	}

	return BuildResult{
		Target:     label,
		Succeeded:  result.Succeeded,
		ExitStatus: result.ExitStatus,
	}
}

func (e *Engine) summarize(results []BuildResult) {
	if len(results) == 0 {
		return
	}
	e.Out.SummaryHeader("Build Summary")
	for _, r := range results {
		detail := ""
		if !r.Succeeded {
			detail = fmt.Sprintf("exit status %d", r.ExitStatus)
		}
		e.Out.SummaryAction(r.Target, r.Succeeded, detail)
	}
}

// AnyFailed reports whether any accumulated result failed. Callers opt in
// to aggregate failure handling (strict mode); builds exit zero otherwise.
func AnyFailed(results []BuildResult) bool {
	for _, r := range results {
		if !r.Succeeded {
			return true
		}
	}
	return false
}
