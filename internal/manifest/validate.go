package manifest

import (
	"fmt"
	"strings"

	birberrors "github.com/birb-build/birb/internal/errors"
	"github.com/birb-build/birb/internal/version"
)

// Validate checks a manifest for errors and returns warnings for non-fatal
// issues. It expects defaults to be applied already.
func Validate(m *Manifest) (warnings []string, err error) {
	if m.ProjectName == "" {
		return nil, birberrors.Validation("project_name is required")
	}

	if m.Versioning.CurrentVersion == "" {
		return nil, birberrors.Validation("versioning.current_version is required")
	}
	if err := version.Validate(m.Versioning.CurrentVersion); err != nil {
		return nil, birberrors.Validationf("versioning.current_version: %v", err)
	}
	if !version.ValidPart(m.Versioning.IncrementType) {
		return nil, birberrors.Validationf("versioning.increment_type: must be major, minor, or patch, got %q", m.Versioning.IncrementType)
	}

	// The engine must have at least one executable action: a non-null
	// platform command or a non-empty custom command.
	if !m.HasExecutableAction() {
		return nil, birberrors.Validation("build: every platform command is null and custom_build_command is empty; nothing to build")
	}

	warnings = append(warnings, templateWarnings(m.GitIntegration.CommitMessageTemplate)...)

	return warnings, nil
}

// templateWarnings reports commit message templates that will never
// substitute a placeholder. Missing placeholders are legal (the author may
// want a fixed message), so these are warnings rather than errors.
func templateWarnings(template string) []string {
	var warnings []string
	for _, placeholder := range []string{"{version}", "{platform}"} {
		if !strings.Contains(template, placeholder) {
			warnings = append(warnings, fmt.Sprintf("git_integration.commit_message_template does not contain %s", placeholder))
		}
	}
	return warnings
}
