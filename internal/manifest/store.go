package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	birberrors "github.com/birb-build/birb/internal/errors"
	"github.com/birb-build/birb/internal/schema"
)

// Load reads and parses a birb.json manifest file.
// A missing file is reported as a not-found error so callers can abort the
// invocation without treating it as a crash.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, birberrors.WrapKind(birberrors.KindNotFound, err, fmt.Sprintf("manifest not found: %s", path))
		}
		return nil, birberrors.Wrap(err, fmt.Sprintf("failed to read manifest: %s", path))
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, birberrors.WrapKind(birberrors.KindValidation, err, fmt.Sprintf("failed to parse manifest: %v", err))
	}

	return &m, nil
}

// LoadAndValidate reads a manifest file, checks it against the embedded JSON
// schema, applies defaults, validates, and returns warnings.
func LoadAndValidate(path string) (*Manifest, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, birberrors.WrapKind(birberrors.KindNotFound, err, fmt.Sprintf("manifest not found: %s", path))
		}
		return nil, nil, birberrors.Wrap(err, fmt.Sprintf("failed to read manifest: %s", path))
	}

	if err := schema.ValidateManifest(data); err != nil {
		return nil, nil, birberrors.WrapKind(birberrors.KindValidation, err, err.Error())
	}

	m, unknownWarnings, err := loadWithWarnings(data)
	if err != nil {
		return nil, nil, err
	}

	applyDefaults(m)

	validationWarnings, err := Validate(m)

	// Combine warnings from both sources.
	allWarnings := make([]string, 0, len(unknownWarnings)+len(validationWarnings))
	allWarnings = append(allWarnings, unknownWarnings...)
	allWarnings = append(allWarnings, validationWarnings...)

	if err != nil {
		return nil, allWarnings, err
	}

	return m, allWarnings, nil
}

// Save serializes a manifest to path, creating the parent directory if
// needed. An existing file is overwritten unconditionally.
func Save(path string, m *Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return birberrors.Wrap(err, fmt.Sprintf("failed to create manifest directory: %v", err))
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return birberrors.Wrap(err, fmt.Sprintf("failed to serialize manifest: %v", err))
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return birberrors.Wrap(err, fmt.Sprintf("failed to write manifest: %v", err))
	}
	return nil
}
