// Package manifest provides loading and validation for the .birb/birb.json
// project manifest.
package manifest

// Manifest represents the complete birb.json project manifest.
type Manifest struct {
	ProjectName    string           `json:"project_name"`
	Versioning     VersioningConfig `json:"versioning"`
	Build          BuildConfig      `json:"build"`
	GitIntegration GitConfig        `json:"git_integration"`
}

// VersioningConfig configures version management.
type VersioningConfig struct {
	AutoIncrement  bool   `json:"auto_increment"`
	IncrementType  string `json:"increment_type,omitempty"`
	CurrentVersion string `json:"current_version"`
}

// BuildConfig configures build command dispatch.
type BuildConfig struct {
	CustomBuildCommand    string           `json:"custom_build_command,omitempty"`
	PlatformBuildCommands PlatformCommands `json:"platform_build_commands"`
	OutputDirectory       string           `json:"output_directory,omitempty"`
	CleanBeforeBuild      bool             `json:"clean_before_build,omitempty"`
}

// GitConfig configures the post-build commit and push sequence.
type GitConfig struct {
	RepoName              string   `json:"repo_name,omitempty"`
	Branch                string   `json:"branch,omitempty"`
	AutoCommit            bool     `json:"auto_commit"`
	CommitMessageTemplate string   `json:"commit_message_template,omitempty"`
	VcsPushCommands       []string `json:"vcs_push_command,omitempty"`
}

// HasExecutableAction reports whether the manifest defines at least one
// runnable build action: a non-null platform command or a custom command.
func (m *Manifest) HasExecutableAction() bool {
	return m.Build.PlatformBuildCommands.HasExecutable() || m.Build.CustomBuildCommand != ""
}
