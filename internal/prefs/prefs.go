// Package prefs provides the user-level preferences document: process-wide
// defaults written once on first run and read-only thereafter.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	birberrors "github.com/birb-build/birb/internal/errors"
	"github.com/birb-build/birb/internal/schema"
)

// Preferences holds user-level defaults applied by `birb create`.
// The build engine never mutates them.
type Preferences struct {
	Versioning     VersioningPrefs `json:"versioning"`
	Build          BuildPrefs      `json:"build"`
	GitIntegration GitPrefs        `json:"git_integration"`
}

// VersioningPrefs holds default versioning settings.
type VersioningPrefs struct {
	AutoIncrement bool   `json:"auto_increment"`
	IncrementType string `json:"increment_type"`
	VersionPrefix string `json:"version_prefix"`
}

// BuildPrefs holds default build settings.
type BuildPrefs struct {
	DefaultPlatforms []string `json:"default_platforms"`
	OutputDirectory  string   `json:"output_directory"`
	CleanOldBuilds   bool     `json:"clean_old_builds"`
}

// GitPrefs holds default VCS integration settings.
type GitPrefs struct {
	Branch                string   `json:"branch"`
	AutoCommit            bool     `json:"auto_commit"`
	CommitMessageTemplate string   `json:"commit_message_template"`
	VcsPushCommands       []string `json:"vcs_push_command"`
}

// FileName is the preferences file name inside the birb config directory.
const FileName = "preferences.json"

// configDirName is the birb directory under the user config directory.
const configDirName = "birb"

// basePathOverride overrides the user config directory for testing.
// When empty (default), uses os.UserConfigDir().
var basePathOverride string

// Default returns a fresh copy of the default preferences document.
func Default() *Preferences {
	return &Preferences{
		Versioning: VersioningPrefs{
			AutoIncrement: true,
			IncrementType: "patch",
			VersionPrefix: "v",
		},
		Build: BuildPrefs{
			DefaultPlatforms: []string{"windows", "linux", "macos"},
			OutputDirectory:  "./builds",
			CleanOldBuilds:   false,
		},
		GitIntegration: GitPrefs{
			Branch:                "main",
			AutoCommit:            true,
			CommitMessageTemplate: "Release {version} for {platform}",
			VcsPushCommands:       []string{},
		},
	}
}

// Path returns the location of the preferences file.
func Path() (string, error) {
	base := basePathOverride
	if base == "" {
		var err error
		base, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("cannot locate user config directory: %w", err)
		}
	}
	return filepath.Join(base, configDirName, FileName), nil
}

// LoadOrInit loads the preferences document, writing the fixed defaults
// first if the file does not exist yet. A file that exists but cannot be
// parsed or fails schema validation is a fatal configuration error; birb
// never silently repairs a document the user may have edited.
// The returned bool is true when the file was created by this call.
func LoadOrInit() (*Preferences, bool, error) {
	path, err := Path()
	if err != nil {
		return nil, false, birberrors.Preferences(err.Error(), err)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		defaults := Default()
		if err := write(path, defaults); err != nil {
			return nil, false, birberrors.Preferences(fmt.Sprintf("failed to create preferences: %v", err), err)
		}
		return defaults, true, nil
	}
	if err != nil {
		return nil, false, birberrors.Preferences(fmt.Sprintf("failed to read preferences: %v", err), err)
	}

	if err := schema.ValidatePreferences(data); err != nil {
		return nil, false, birberrors.Preferences(fmt.Sprintf("corrupt preferences at %s: %v", path, err), err)
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false, birberrors.Preferences(fmt.Sprintf("corrupt preferences at %s: %v", path, err), err)
	}
	return &p, false, nil
}

// write serializes preferences to path, creating the parent directory.
func write(path string, p *Preferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}
