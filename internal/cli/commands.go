package cli

import (
	"context"
	"os"
	"path/filepath"

	birberrors "github.com/birb-build/birb/internal/errors"
	"github.com/birb-build/birb/internal/engine"
	"github.com/birb-build/birb/internal/manifest"
	"github.com/birb-build/birb/internal/output"
	"github.com/birb-build/birb/internal/prefs"
	"github.com/birb-build/birb/internal/project"
	"github.com/birb-build/birb/internal/shell"
	"github.com/birb-build/birb/internal/vcs"
	"github.com/birb-build/birb/internal/version"
	"github.com/birb-build/birb/internal/workflow"
)

// out is the shared output writer for CLI commands.
var out = output.New()

// loadProject loads the project and handles errors uniformly. Returns the
// project and exit code 0 on success, or nil and the appropriate exit code.
func loadProject() (*project.Project, int) {
	proj, err := project.Load()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return nil, birberrors.GetExitCode(err)
	}
	for _, w := range proj.Warnings {
		out.Warning("%s", w)
	}
	return proj, birberrors.ExitSuccess
}

// ensurePreferences loads or creates the user preferences document.
// A corrupt preferences file is fatal; it is never repaired silently.
func ensurePreferences() (*prefs.Preferences, int) {
	p, created, err := prefs.LoadOrInit()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return nil, birberrors.GetExitCode(err)
	}
	if created {
		if path, pathErr := prefs.Path(); pathErr == nil {
			out.Info("Created default preferences at %s", path)
		}
	}
	return p, birberrors.ExitSuccess
}

// buildOptions holds parsed build command options.
type buildOptions struct {
	Strict bool // Non-zero exit when any target fails
	DryRun bool // Print the plan without executing anything
}

// cmdBuild runs the configured build commands in manifest order.
func cmdBuild(args []string) int {
	if wantsHelp(args) {
		printBuildUsage()
		return birberrors.ExitSuccess
	}

	opts := buildOptions{}
	for _, arg := range args {
		switch arg {
		case "--strict":
			opts.Strict = true
		case "--dry-run":
			opts.DryRun = true
		default:
			out.ErrorPrefix("build: unknown option %q", arg)
			return birberrors.ExitConfigError
		}
	}

	if _, code := ensurePreferences(); code != birberrors.ExitSuccess {
		return code
	}

	proj, code := loadProject()
	if proj == nil {
		return code
	}
	m := proj.Manifest

	if opts.DryRun {
		printBuildPlan(proj)
		return birberrors.ExitSuccess
	}

	if m.Versioning.AutoIncrement {
		bumped, err := version.Bump(m.Versioning.CurrentVersion, m.Versioning.IncrementType)
		if err != nil {
			out.ErrorPrefix("%v", err)
			return birberrors.GetExitCode(err)
		}
		m.Versioning.CurrentVersion = bumped
		if err := manifest.Save(proj.ManifestPath(), m); err != nil {
			out.ErrorPrefix("%v", err)
			return birberrors.GetExitCode(err)
		}
		out.Info("Version bumped to %s", bumped)
	}

	runner := &shell.ShellRunner{Dir: proj.Root}
	eng := &engine.Engine{
		Manifest:  m,
		OutputDir: proj.OutputDir(),
		Runner:    runner,
		Hook: &vcs.Hook{
			Git:         m.GitIntegration,
			ManifestDir: proj.ManifestDir(),
			RootDir:     proj.Root,
			Runner:      runner,
			Out:         out,
		},
		Out: out,
	}

	results := eng.Run(context.Background())
	if opts.Strict && engine.AnyFailed(results) {
		return birberrors.ExitRuntimeError
	}
	return birberrors.ExitSuccess
}

// printBuildPlan lists what a build would do without running anything.
func printBuildPlan(proj *project.Project) {
	m := proj.Manifest
	out.DryRunStart()

	step := 1
	if m.Build.CleanBeforeBuild {
		out.Step(step, "clean %s", m.Build.OutputDirectory)
		step++
	}

	ver := m.Versioning.CurrentVersion
	if m.Versioning.AutoIncrement {
		if bumped, err := version.Bump(ver, m.Versioning.IncrementType); err == nil {
			out.Step(step, "bump version %s -> %s", ver, bumped)
			ver = bumped
			step++
		}
	}

	if m.Build.PlatformBuildCommands.HasExecutable() {
		for _, entry := range m.Build.PlatformBuildCommands.Entries() {
			if entry.Command == nil {
				continue
			}
			out.Step(step, "build %s", entry.Name)
			out.StepDetail("%s", *entry.Command)
			step++
		}
	} else if m.Build.CustomBuildCommand != "" {
		out.Step(step, "build %s", engine.CustomLabel)
		out.StepDetail("%s", m.Build.CustomBuildCommand)
		step++
	}

	if m.GitIntegration.AutoCommit {
		out.Step(step, "commit in %s", project.ManifestDirName)
		out.StepDetail("%s", vcs.FormatCommitMessage(m.GitIntegration.CommitMessageTemplate, ver, "<platform>"))
		step++
		for _, push := range m.GitIntegration.VcsPushCommands {
			out.Step(step, "push")
			out.StepDetail("%s", push)
			step++
		}
	}

	out.DryRunEnd()
}

func printBuildUsage() {
	out.HelpTitle("birb build - run the configured build commands")

	out.HelpSection("Usage:")
	out.Println("  birb build [flags]")

	out.HelpSection("Flags:")
	out.HelpFlag("--strict", "Exit non-zero if any target fails", helpFlagWidth)
	out.HelpFlag("--dry-run", "Print the build plan without executing", helpFlagWidth)
	out.HelpFlag("-h, --help", "Show this help", helpFlagWidth)
}

// cmdBump increments the project version and saves the manifest.
// With no argument, the manifest's increment_type decides the part.
func cmdBump(args []string) int {
	if wantsHelp(args) {
		out.HelpTitle("birb bump - increment the project version")
		out.HelpSection("Usage:")
		out.Println("  birb bump [major|minor|patch]")
		return birberrors.ExitSuccess
	}

	proj, code := loadProject()
	if proj == nil {
		return code
	}
	m := proj.Manifest

	part := m.Versioning.IncrementType
	if len(args) > 0 {
		part = args[0]
	}
	if len(args) > 1 {
		out.ErrorPrefix("bump: too many arguments")
		return birberrors.ExitConfigError
	}
	if !version.ValidPart(part) {
		out.ErrorPrefix("bump: unknown version part %q (use major, minor, or patch)", part)
		return birberrors.ExitConfigError
	}

	bumped, err := version.Bump(m.Versioning.CurrentVersion, part)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return birberrors.GetExitCode(err)
	}

	previous := m.Versioning.CurrentVersion
	m.Versioning.CurrentVersion = bumped
	if err := manifest.Save(proj.ManifestPath(), m); err != nil {
		out.ErrorPrefix("%v", err)
		return birberrors.GetExitCode(err)
	}

	out.Success("Version bumped: %s -> %s", previous, bumped)
	return birberrors.ExitSuccess
}

// cmdGithub writes a GitHub Actions workflow generated from the manifest.
func cmdGithub(args []string) int {
	if wantsHelp(args) {
		out.HelpTitle("birb github - generate a GitHub Actions workflow")
		out.HelpSection("Usage:")
		out.Println("  birb github")
		return birberrors.ExitSuccess
	}
	if len(args) > 0 {
		out.ErrorPrefix("github: unexpected argument %q", args[0])
		return birberrors.ExitConfigError
	}

	proj, code := loadProject()
	if proj == nil {
		return code
	}

	data, err := workflow.Generate(proj.Manifest)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return birberrors.GetExitCode(err)
	}

	dir := filepath.Join(proj.Root, ".github", "workflows")
	if err := os.MkdirAll(dir, 0755); err != nil {
		out.ErrorPrefix("failed to create %s: %v", dir, err)
		return birberrors.ExitRuntimeError
	}

	path := filepath.Join(dir, workflow.FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		out.ErrorPrefix("failed to write %s: %v", path, err)
		return birberrors.ExitRuntimeError
	}

	out.Success("Generated %s", path)
	return birberrors.ExitSuccess
}

// cmdValidate checks the manifest without building anything.
func cmdValidate(args []string) int {
	if wantsHelp(args) {
		out.HelpTitle("birb validate - check the manifest without building")
		out.HelpSection("Usage:")
		out.Println("  birb validate")
		return birberrors.ExitSuccess
	}

	proj, code := loadProject()
	if proj == nil {
		return code
	}

	out.Success("%s is valid", proj.ManifestPath())
	return birberrors.ExitSuccess
}
