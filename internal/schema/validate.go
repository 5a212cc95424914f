// Package schema provides JSON schema validation for birb configuration files.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/birb-build/birb/schema"
)

var (
	manifestSchema    *jsonschema.Schema
	preferencesSchema *jsonschema.Schema
	compileOnce       sync.Once
	compileErr        error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		manifestData, err := schemafs.FS.ReadFile("manifest.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read manifest schema: %w", err)
			return
		}

		preferencesData, err := schemafs.FS.ReadFile("preferences.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read preferences schema: %w", err)
			return
		}

		manifestDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(manifestData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal manifest schema: %w", err)
			return
		}

		preferencesDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(preferencesData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal preferences schema: %w", err)
			return
		}

		if err := compiler.AddResource("manifest.schema.json", manifestDoc); err != nil {
			compileErr = fmt.Errorf("add manifest schema resource: %w", err)
			return
		}

		if err := compiler.AddResource("preferences.schema.json", preferencesDoc); err != nil {
			compileErr = fmt.Errorf("add preferences schema resource: %w", err)
			return
		}

		manifestSchema, err = compiler.Compile("manifest.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile manifest schema: %w", err)
			return
		}

		preferencesSchema, err = compiler.Compile("preferences.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile preferences schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateManifest validates JSON data against the manifest schema.
func ValidateManifest(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := manifestSchema.Validate(v); err != nil {
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	return nil
}

// ValidatePreferences validates JSON data against the preferences schema.
func ValidatePreferences(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := preferencesSchema.Validate(v); err != nil {
		return fmt.Errorf("preferences validation failed: %w", err)
	}

	return nil
}
