// Package project provides project discovery and manifest loading.
package project

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/birb-build/birb/internal/manifest"
)

// ManifestDirName is the name of the birb configuration directory.
const ManifestDirName = ".birb"

// ManifestFileName is the name of the manifest file.
const ManifestFileName = "birb.json"

// ErrNoProjectRoot is returned when .birb/birb.json is not found.
var ErrNoProjectRoot = errors.New(".birb/birb.json not found: not a birb project (or any parent up to the root)")

// Project represents a loaded birb project.
type Project struct {
	Root     string
	Manifest *manifest.Manifest
	Warnings []string
}

// FindRoot walks up from the current working directory until it finds
// .birb/birb.json.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from the given directory until it finds .birb/birb.json.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		manifestPath := filepath.Join(dir, ManifestDirName, ManifestFileName)
		if _, err := os.Stat(manifestPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}

// Load finds and loads a project from the current directory.
func Load() (*Project, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return LoadFrom(root)
}

// LoadFrom loads a project from a specified root directory. The manifest is
// read fresh on every call; the engine never mutates it.
func LoadFrom(root string) (*Project, error) {
	m, warnings, err := manifest.LoadAndValidate(filepath.Join(root, ManifestDirName, ManifestFileName))
	if err != nil {
		return nil, err
	}

	return &Project{
		Root:     root,
		Manifest: m,
		Warnings: warnings,
	}, nil
}

// ManifestPath returns the full path to the project manifest file.
func (p *Project) ManifestPath() string {
	return filepath.Join(p.Root, ManifestDirName, ManifestFileName)
}

// ManifestDir returns the directory containing the manifest, the home
// directory of the post-build commit step.
func (p *Project) ManifestDir() string {
	return filepath.Join(p.Root, ManifestDirName)
}

// OutputDir resolves the manifest's output directory against the project root.
func (p *Project) OutputDir() string {
	out := p.Manifest.Build.OutputDirectory
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(p.Root, out)
}
