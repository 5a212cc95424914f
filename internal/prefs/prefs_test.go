package prefs

import (
	"os"
	"path/filepath"
	"testing"

	birberrors "github.com/birb-build/birb/internal/errors"
)

// setBasePath redirects the preferences location to a temp directory.
// Tests in this package cannot run in parallel because the override is
// package-level state.
func setBasePath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := basePathOverride
	basePathOverride = dir
	t.Cleanup(func() { basePathOverride = old })
	return dir
}

func TestLoadOrInit_CreatesDefaults(t *testing.T) {
	dir := setBasePath(t)

	p, created, err := LoadOrInit()
	if err != nil {
		t.Fatalf("LoadOrInit() error = %v", err)
	}
	if !created {
		t.Error("created = false, want true on first run")
	}
	if !p.Versioning.AutoIncrement || p.Versioning.IncrementType != "patch" {
		t.Errorf("defaults mismatch: %+v", p.Versioning)
	}
	if len(p.Build.DefaultPlatforms) != 3 {
		t.Errorf("DefaultPlatforms = %v, want 3 entries", p.Build.DefaultPlatforms)
	}

	if _, err := os.Stat(filepath.Join(dir, configDirName, FileName)); err != nil {
		t.Errorf("preferences file not written: %v", err)
	}
}

func TestLoadOrInit_ReadsExisting(t *testing.T) {
	dir := setBasePath(t)
	path := filepath.Join(dir, configDirName, FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	content := `{"versioning": {"auto_increment": false, "increment_type": "minor", "version_prefix": ""}, "build": {"default_platforms": ["linux"]}, "git_integration": {"branch": "trunk"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, created, err := LoadOrInit()
	if err != nil {
		t.Fatalf("LoadOrInit() error = %v", err)
	}
	if created {
		t.Error("created = true, want false for existing file")
	}
	if p.Versioning.AutoIncrement {
		t.Error("AutoIncrement = true, want false from file")
	}
	if p.GitIntegration.Branch != "trunk" {
		t.Errorf("Branch = %q, want trunk", p.GitIntegration.Branch)
	}
}

func TestLoadOrInit_CorruptIsFatal(t *testing.T) {
	dir := setBasePath(t)
	path := filepath.Join(dir, configDirName, FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := LoadOrInit()
	if err == nil {
		t.Fatal("LoadOrInit() = nil, want error for corrupt preferences")
	}
	if birberrors.GetExitCode(err) != birberrors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", birberrors.GetExitCode(err), birberrors.ExitConfigError)
	}
}

func TestLoadOrInit_SchemaViolationIsFatal(t *testing.T) {
	dir := setBasePath(t)
	path := filepath.Join(dir, configDirName, FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	// Valid JSON, wrong shape.
	if err := os.WriteFile(path, []byte(`{"build": {"default_platforms": "linux"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := LoadOrInit(); err == nil {
		t.Fatal("LoadOrInit() = nil, want schema error")
	}
}

func TestDefault_ReturnsFreshCopy(t *testing.T) {
	a := Default()
	a.Build.DefaultPlatforms[0] = "mutated"
	b := Default()
	if b.Build.DefaultPlatforms[0] != "windows" {
		t.Error("Default() shares state between calls")
	}
}
