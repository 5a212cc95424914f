package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	birberrors "github.com/birb-build/birb/internal/errors"
	"github.com/birb-build/birb/internal/manifest"
	"github.com/birb-build/birb/internal/prefs"
	"github.com/birb-build/birb/internal/project"
	"github.com/birb-build/birb/internal/version"
)

// stdin is the prompt input source, overridable for testing.
var stdin io.Reader = os.Stdin

// defaultInitialVersion seeds new manifests before the first bump.
const defaultInitialVersion = "0.1.0"

// skipKeyword marks a platform as configured-but-skipped in prompts.
const skipKeyword = "null"

// createOptions holds parsed create command options.
type createOptions struct {
	Name        string
	Version     string
	Interactive bool
	Force       bool
}

// cmdCreate writes a new .birb/birb.json in the current directory, seeded
// from user preferences. It refuses to overwrite an existing manifest
// unless --force is given.
func cmdCreate(args []string) int {
	if wantsHelp(args) {
		printCreateUsage()
		return birberrors.ExitSuccess
	}

	opts := createOptions{}
	i := 0
	for i < len(args) {
		arg := args[i]
		switch {
		case arg == "-i" || arg == "--interactive":
			opts.Interactive = true
			i++
		case arg == "--force":
			opts.Force = true
			i++
		case arg == "--name":
			if i+1 >= len(args) {
				out.ErrorPrefix("create: --name requires a value")
				return birberrors.ExitConfigError
			}
			opts.Name = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--name="):
			opts.Name = strings.TrimPrefix(arg, "--name=")
			i++
		case arg == "--version":
			if i+1 >= len(args) {
				out.ErrorPrefix("create: --version requires a value")
				return birberrors.ExitConfigError
			}
			opts.Version = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--version="):
			opts.Version = strings.TrimPrefix(arg, "--version=")
			i++
		default:
			out.ErrorPrefix("create: unknown option %q", arg)
			return birberrors.ExitConfigError
		}
	}

	// No flags at all means the user wants to be walked through it.
	if opts.Name == "" && opts.Version == "" {
		opts.Interactive = true
	}

	p, code := ensurePreferences()
	if p == nil {
		return code
	}

	cwd, err := os.Getwd()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return birberrors.ExitRuntimeError
	}

	manifestPath := filepath.Join(cwd, project.ManifestDirName, project.ManifestFileName)
	if _, err := os.Stat(manifestPath); err == nil && !opts.Force {
		out.ErrorPrefix("%s already exists", manifestPath)
		out.Hint("use --force to overwrite it")
		return birberrors.ExitConfigError
	}

	if opts.Name == "" {
		opts.Name = sanitizeProjectName(filepath.Base(cwd))
	}
	if opts.Version == "" {
		opts.Version = defaultInitialVersion
	}
	if err := version.Validate(opts.Version); err != nil {
		out.ErrorPrefix("%v", err)
		return birberrors.ExitConfigError
	}

	var m *manifest.Manifest
	if opts.Interactive {
		m, err = promptManifest(p, opts)
		if err != nil {
			out.ErrorPrefix("%v", err)
			return birberrors.GetExitCode(err)
		}
	} else {
		m = defaultManifest(p, opts)
	}

	if _, err := manifest.Validate(m); err != nil {
		out.ErrorPrefix("%v", err)
		return birberrors.GetExitCode(err)
	}

	if err := manifest.Save(manifestPath, m); err != nil {
		out.ErrorPrefix("%v", err)
		return birberrors.GetExitCode(err)
	}

	out.Success("Created %s", manifestPath)
	out.Hint("run 'birb build' to build the project")
	return birberrors.ExitSuccess
}

// defaultManifest builds a manifest from preferences without prompting.
func defaultManifest(p *prefs.Preferences, opts createOptions) *manifest.Manifest {
	m := &manifest.Manifest{
		ProjectName: opts.Name,
		Versioning: manifest.VersioningConfig{
			AutoIncrement:  p.Versioning.AutoIncrement,
			IncrementType:  p.Versioning.IncrementType,
			CurrentVersion: opts.Version,
		},
		Build: manifest.BuildConfig{
			OutputDirectory:  p.Build.OutputDirectory,
			CleanBeforeBuild: p.Build.CleanOldBuilds,
		},
		GitIntegration: manifest.GitConfig{
			RepoName:              opts.Name,
			Branch:                p.GitIntegration.Branch,
			AutoCommit:            p.GitIntegration.AutoCommit,
			CommitMessageTemplate: p.GitIntegration.CommitMessageTemplate,
			VcsPushCommands:       append([]string(nil), p.GitIntegration.VcsPushCommands...),
		},
	}
	for _, platform := range p.Build.DefaultPlatforms {
		cmd := defaultBuildCommand(platform)
		m.Build.PlatformBuildCommands.Set(platform, &cmd)
	}
	return m
}

// defaultBuildCommand names the conventional build script for a platform.
func defaultBuildCommand(platform string) string {
	if platform == "windows" {
		return "build_script.windows.bat"
	}
	return fmt.Sprintf("./build_script.%s.sh", platform)
}

// promptManifest walks the user through manifest creation. Empty answers
// accept the preference-derived default shown in brackets.
func promptManifest(p *prefs.Preferences, opts createOptions) (*manifest.Manifest, error) {
	scanner := bufio.NewScanner(stdin)
	m := defaultManifest(p, opts)

	m.ProjectName = promptString(scanner, "Project name", m.ProjectName)

	ver := promptString(scanner, "Initial version", opts.Version)
	if err := version.Validate(ver); err != nil {
		return nil, birberrors.Validation(err.Error())
	}
	m.Versioning.CurrentVersion = ver

	var pc manifest.PlatformCommands
	for _, platform := range p.Build.DefaultPlatforms {
		def := defaultBuildCommand(platform)
		answer := promptString(scanner, fmt.Sprintf("Build command for %s ('%s' to skip)", platform, skipKeyword), def)
		if answer == skipKeyword {
			pc.Set(platform, nil)
			continue
		}
		cmd := answer
		pc.Set(platform, &cmd)
	}
	m.Build.PlatformBuildCommands = pc

	if !pc.HasExecutable() {
		custom := promptString(scanner, "Custom build command", "")
		m.Build.CustomBuildCommand = custom
	}

	m.Build.OutputDirectory = promptString(scanner, "Output directory", m.Build.OutputDirectory)
	m.Build.CleanBeforeBuild = promptBool(scanner, "Clean output directory before builds", m.Build.CleanBeforeBuild)

	m.GitIntegration.AutoCommit = promptBool(scanner, "Commit after successful builds", m.GitIntegration.AutoCommit)
	if m.GitIntegration.AutoCommit {
		m.GitIntegration.RepoName = promptString(scanner, "Repository name", m.GitIntegration.RepoName)
		m.GitIntegration.Branch = promptString(scanner, "Branch", m.GitIntegration.Branch)
		m.GitIntegration.CommitMessageTemplate = promptString(scanner, "Commit message template", m.GitIntegration.CommitMessageTemplate)

		pushes := promptString(scanner, "Push commands (comma-separated)", strings.Join(m.GitIntegration.VcsPushCommands, ","))
		m.GitIntegration.VcsPushCommands = splitPushCommands(pushes)
	}

	return m, nil
}

// promptString shows a prompt with a bracketed default and returns the
// trimmed answer, or the default when the answer is empty.
func promptString(scanner *bufio.Scanner, label, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	if !scanner.Scan() {
		return def
	}
	answer := strings.TrimSpace(scanner.Text())
	if answer == "" {
		return def
	}
	return answer
}

// promptBool shows a y/n prompt. Any answer other than y/yes/n/no keeps
// the default.
func promptBool(scanner *bufio.Scanner, label string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Printf("%s [%s]: ", label, hint)
	if !scanner.Scan() {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

// splitPushCommands turns a comma-separated answer into a command list,
// dropping empty segments.
func splitPushCommands(answer string) []string {
	var commands []string
	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			commands = append(commands, part)
		}
	}
	return commands
}

// projectNameSanitizer keeps letters, digits, dots, dashes, and underscores.
var projectNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// sanitizeProjectName derives a manifest-safe project name from a
// directory name.
func sanitizeProjectName(name string) string {
	sanitized := projectNameSanitizer.ReplaceAllString(name, "-")
	sanitized = strings.Trim(sanitized, "-")
	if sanitized == "" {
		return "project"
	}
	return sanitized
}

func printCreateUsage() {
	out.HelpTitle("birb create - create a .birb/birb.json manifest")

	out.HelpSection("Usage:")
	out.Println("  birb create [flags]")

	out.HelpSection("Flags:")
	out.HelpFlag("--name <name>", "Project name (default: directory name)", helpFlagWidth)
	out.HelpFlag("--version <v>", "Initial version (default: 0.1.0)", helpFlagWidth)
	out.HelpFlag("-i, --interactive", "Prompt for every setting", helpFlagWidth+4)
	out.HelpFlag("--force", "Overwrite an existing manifest", helpFlagWidth)
	out.HelpFlag("-h, --help", "Show this help", helpFlagWidth)
}
