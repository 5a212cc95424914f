package manifest

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	birberrors "github.com/birb-build/birb/internal/errors"
)

// loadWithWarnings parses manifest bytes and returns unknown-field warnings.
func loadWithWarnings(data []byte) (*Manifest, []string, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, nil, birberrors.WrapKind(birberrors.KindValidation, err, fmt.Sprintf("failed to parse manifest: %v", err))
	}

	return &m, detectUnknownFields(data), nil
}

// sections maps nested manifest sections to their struct types for
// unknown-field detection. platform_build_commands is excluded: its keys are
// free-form platform names.
var sections = map[string]reflect.Type{
	"versioning":      reflect.TypeOf(VersioningConfig{}),
	"build":           reflect.TypeOf(BuildConfig{}),
	"git_integration": reflect.TypeOf(GitConfig{}),
}

// detectUnknownFields compares raw JSON with known struct fields.
func detectUnknownFields(data []byte) []string {
	var warnings []string

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Should never happen since the data was already parsed successfully.
		return []string{"internal: failed to re-parse manifest for unknown field detection"}
	}

	knownTopLevel := getJSONFields(reflect.TypeOf(Manifest{}))
	for key := range raw {
		if key == "$schema" {
			continue // $schema is explicitly allowed and ignored
		}
		if !knownTopLevel[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
		}
	}

	for section, sectionType := range sections {
		sectionRaw, ok := raw[section]
		if !ok {
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(sectionRaw, &fields); err != nil {
			continue
		}
		known := getJSONFields(sectionType)
		for key := range fields {
			if !known[key] {
				warnings = append(warnings, fmt.Sprintf("unknown field %q in %s (ignored)", key, section))
			}
		}
	}

	return warnings
}

// getJSONFields returns a map of known JSON field names for a struct type.
func getJSONFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = true
		}
	}
	return fields
}
