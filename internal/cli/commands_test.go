package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	birberrors "github.com/birb-build/birb/internal/errors"
	"github.com/birb-build/birb/internal/manifest"
	"github.com/birb-build/birb/internal/project"
)

// chdir changes into dir for the duration of the test, restoring the
// previous working directory afterwards (stand-in for t.Chdir, which
// requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

// setupEnv points the user config directory at a throwaway location and
// moves the working directory into a fresh project root.
func setupEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := t.TempDir()
	chdir(t, root)
	return root
}

// writeManifest drops a manifest into root/.birb/birb.json.
func writeManifest(t *testing.T, root, content string) {
	t.Helper()
	dir := filepath.Join(root, project.ManifestDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, project.ManifestFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// readManifest loads the manifest back from disk.
func readManifest(t *testing.T, root string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Load(filepath.Join(root, project.ManifestDirName, project.ManifestFileName))
	if err != nil {
		t.Fatalf("failed to read manifest back: %v", err)
	}
	return m
}

const quietManifest = `{
  "project_name": "demo",
  "versioning": {
    "auto_increment": false,
    "increment_type": "patch",
    "current_version": "1.2.3"
  },
  "build": {
    "platform_build_commands": {"linux": "true"},
    "output_directory": "./builds"
  },
  "git_integration": {
    "auto_commit": false,
    "commit_message_template": "Release {version} for {platform}"
  }
}`

func TestCmdCreate_Defaults(t *testing.T) {
	root := setupEnv(t)

	if code := Run([]string{"create", "--name", "demo", "--version", "1.0.0"}); code != birberrors.ExitSuccess {
		t.Fatalf("create exit code = %d, want 0", code)
	}

	m := readManifest(t, root)
	if m.ProjectName != "demo" {
		t.Errorf("project_name = %q, want demo", m.ProjectName)
	}
	if m.Versioning.CurrentVersion != "1.0.0" {
		t.Errorf("current_version = %q, want 1.0.0", m.Versioning.CurrentVersion)
	}
	if got := m.Build.PlatformBuildCommands.Names(); len(got) != 3 {
		t.Errorf("platforms = %v, want the three defaults", got)
	}
	if cmd, ok := m.Build.PlatformBuildCommands.Get("windows"); !ok || cmd == nil || *cmd != "build_script.windows.bat" {
		t.Errorf("windows command = %v", cmd)
	}
	if m.GitIntegration.Branch != "main" {
		t.Errorf("branch = %q, want main", m.GitIntegration.Branch)
	}
}

func TestCmdCreate_RefusesOverwrite(t *testing.T) {
	setupEnv(t)

	if code := Run([]string{"create", "--name", "demo"}); code != birberrors.ExitSuccess {
		t.Fatalf("first create failed: %d", code)
	}
	if code := Run([]string{"create", "--name", "other"}); code != birberrors.ExitConfigError {
		t.Errorf("second create exit code = %d, want %d", code, birberrors.ExitConfigError)
	}
	if code := Run([]string{"create", "--name", "other", "--force"}); code != birberrors.ExitSuccess {
		t.Errorf("create --force exit code = %d, want 0", code)
	}
}

func TestCmdCreate_RejectsBadVersion(t *testing.T) {
	setupEnv(t)

	if code := Run([]string{"create", "--name", "demo", "--version", "not-semver"}); code != birberrors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", code, birberrors.ExitConfigError)
	}
}

func TestCmdCreate_Interactive(t *testing.T) {
	root := setupEnv(t)

	answers := strings.Join([]string{
		"myproj",   // project name
		"2.0.0",    // initial version
		"null",     // windows
		"null",     // linux
		"null",     // macos
		"make all", // custom build command
		"./dist",   // output directory
		"y",        // clean before builds
		"n",        // commit after builds
	}, "\n") + "\n"

	orig := stdin
	stdin = strings.NewReader(answers)
	defer func() { stdin = orig }()

	if code := Run([]string{"create", "--interactive"}); code != birberrors.ExitSuccess {
		t.Fatalf("interactive create exit code = %d, want 0", code)
	}

	m := readManifest(t, root)
	if m.ProjectName != "myproj" {
		t.Errorf("project_name = %q, want myproj", m.ProjectName)
	}
	if m.Versioning.CurrentVersion != "2.0.0" {
		t.Errorf("current_version = %q, want 2.0.0", m.Versioning.CurrentVersion)
	}
	if m.Build.PlatformBuildCommands.HasExecutable() {
		t.Error("all platforms were skipped; no executable platform command expected")
	}
	if m.Build.CustomBuildCommand != "make all" {
		t.Errorf("custom_build_command = %q, want %q", m.Build.CustomBuildCommand, "make all")
	}
	if m.Build.OutputDirectory != "./dist" {
		t.Errorf("output_directory = %q, want ./dist", m.Build.OutputDirectory)
	}
	if !m.Build.CleanBeforeBuild {
		t.Error("clean_before_build should be true")
	}
	if m.GitIntegration.AutoCommit {
		t.Error("auto_commit should be false")
	}
}

func TestCmdBump(t *testing.T) {
	root := setupEnv(t)
	writeManifest(t, root, quietManifest)

	if code := Run([]string{"bump"}); code != birberrors.ExitSuccess {
		t.Fatalf("bump exit code = %d, want 0", code)
	}
	if got := readManifest(t, root).Versioning.CurrentVersion; got != "1.2.4" {
		t.Errorf("version after default bump = %q, want 1.2.4", got)
	}

	if code := Run([]string{"bump", "minor"}); code != birberrors.ExitSuccess {
		t.Fatalf("bump minor exit code = %d, want 0", code)
	}
	if got := readManifest(t, root).Versioning.CurrentVersion; got != "1.3.0" {
		t.Errorf("version after minor bump = %q, want 1.3.0", got)
	}
}

func TestCmdBump_RejectsUnknownPart(t *testing.T) {
	root := setupEnv(t)
	writeManifest(t, root, quietManifest)

	if code := Run([]string{"bump", "mega"}); code != birberrors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", code, birberrors.ExitConfigError)
	}
}

func TestCmdGithub(t *testing.T) {
	root := setupEnv(t)
	writeManifest(t, root, quietManifest)

	if code := Run([]string{"github"}); code != birberrors.ExitSuccess {
		t.Fatalf("github exit code = %d, want 0", code)
	}

	path := filepath.Join(root, ".github", "workflows", "birb-build.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("workflow file not written: %v", err)
	}
	if !strings.Contains(string(data), "runs-on: ubuntu-latest") {
		t.Errorf("workflow missing linux job:\n%s", data)
	}
}

func TestCmdValidate(t *testing.T) {
	root := setupEnv(t)
	writeManifest(t, root, quietManifest)

	if code := Run([]string{"validate"}); code != birberrors.ExitSuccess {
		t.Errorf("validate exit code = %d, want 0", code)
	}
}

func TestCmdValidate_OutsideProject(t *testing.T) {
	setupEnv(t)

	if code := Run([]string{"validate"}); code == birberrors.ExitSuccess {
		t.Error("validate should fail outside a project")
	}
}

func TestCmdBuild(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test manifest uses sh commands")
	}
	root := setupEnv(t)
	writeManifest(t, root, quietManifest)

	if code := Run([]string{"build"}); code != birberrors.ExitSuccess {
		t.Errorf("build exit code = %d, want 0", code)
	}
}

func TestCmdBuild_StrictPropagatesFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test manifest uses sh commands")
	}
	root := setupEnv(t)
	writeManifest(t, root, strings.Replace(quietManifest, `"linux": "true"`, `"linux": "exit 7"`, 1))

	// Without --strict a failed target still exits zero.
	if code := Run([]string{"build"}); code != birberrors.ExitSuccess {
		t.Errorf("build exit code = %d, want 0", code)
	}
	if code := Run([]string{"build", "--strict"}); code != birberrors.ExitRuntimeError {
		t.Errorf("build --strict exit code = %d, want %d", code, birberrors.ExitRuntimeError)
	}
}

func TestCmdBuild_AutoIncrementPersists(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test manifest uses sh commands")
	}
	root := setupEnv(t)
	writeManifest(t, root, strings.Replace(quietManifest, `"auto_increment": false`, `"auto_increment": true`, 1))

	if code := Run([]string{"build"}); code != birberrors.ExitSuccess {
		t.Fatalf("build exit code = %d, want 0", code)
	}
	if got := readManifest(t, root).Versioning.CurrentVersion; got != "1.2.4" {
		t.Errorf("version after auto-increment build = %q, want 1.2.4", got)
	}
}

func TestCmdBuild_DryRunExecutesNothing(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test manifest uses sh commands")
	}
	root := setupEnv(t)
	writeManifest(t, root, strings.Replace(quietManifest, `"linux": "true"`, `"linux": "touch marker.txt"`, 1))

	if code := Run([]string{"build", "--dry-run"}); code != birberrors.ExitSuccess {
		t.Fatalf("build --dry-run exit code = %d, want 0", code)
	}
	if _, err := os.Stat(filepath.Join(root, "marker.txt")); !os.IsNotExist(err) {
		t.Error("dry run must not execute build commands")
	}
	if got := readManifest(t, root).Versioning.CurrentVersion; got != "1.2.3" {
		t.Errorf("dry run must not bump the version; got %q", got)
	}
}

func TestCmdBuild_UnknownOption(t *testing.T) {
	setupEnv(t)

	if code := Run([]string{"build", "--fast"}); code != birberrors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", code, birberrors.ExitConfigError)
	}
}

func TestCmdBuild_CreatesPreferencesOnFirstRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test manifest uses sh commands")
	}
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	root := t.TempDir()
	chdir(t, root)
	writeManifest(t, root, quietManifest)

	if code := Run([]string{"build"}); code != birberrors.ExitSuccess {
		t.Fatalf("build exit code = %d, want 0", code)
	}
	if _, err := os.Stat(filepath.Join(configHome, "birb", "preferences.json")); err != nil {
		t.Errorf("preferences not created on first run: %v", err)
	}
}
