package manifest

// Default manifest values, matching what `birb create` writes.
const (
	DefaultIncrementType         = "patch"
	DefaultBranch                = "main"
	DefaultCommitMessageTemplate = "Release {version} for {platform}"
	DefaultOutputDirectory       = "./builds"
)

// applyDefaults fills in default values for unset manifest fields.
// Defaulting happens once at load time; the rest of the code never
// re-checks for empty fields.
func applyDefaults(m *Manifest) {
	if m.Versioning.IncrementType == "" {
		m.Versioning.IncrementType = DefaultIncrementType
	}
	if m.Build.OutputDirectory == "" {
		m.Build.OutputDirectory = DefaultOutputDirectory
	}
	if m.GitIntegration.Branch == "" {
		m.GitIntegration.Branch = DefaultBranch
	}
	if m.GitIntegration.CommitMessageTemplate == "" {
		m.GitIntegration.CommitMessageTemplate = DefaultCommitMessageTemplate
	}
}
