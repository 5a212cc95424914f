// Package workflow generates a GitHub Actions workflow from the project
// manifest, one job per enabled build target.
package workflow

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	birberrors "github.com/birb-build/birb/internal/errors"
	"github.com/birb-build/birb/internal/manifest"
)

// FileName is the generated workflow file name under .github/workflows.
const FileName = "birb-build.yml"

// Workflow is the top-level GitHub Actions document.
type Workflow struct {
	Name string         `yaml:"name"`
	On   Trigger        `yaml:"on"`
	Jobs map[string]Job `yaml:"jobs"`
}

// Trigger describes when the workflow runs.
type Trigger struct {
	Push PushTrigger `yaml:"push"`
}

// PushTrigger limits runs to pushes on specific branches.
type PushTrigger struct {
	Branches []string `yaml:"branches"`
}

// Job is one build job.
type Job struct {
	Name   string `yaml:"name"`
	RunsOn string `yaml:"runs-on"`
	Steps  []Step `yaml:"steps"`
}

// Step is one job step.
type Step struct {
	Name string `yaml:"name,omitempty"`
	Uses string `yaml:"uses,omitempty"`
	Run  string `yaml:"run,omitempty"`
}

// runners maps manifest platform names to GitHub-hosted runner labels.
// Unknown platforms build on Linux.
var runners = map[string]string{
	"windows": "windows-latest",
	"linux":   "ubuntu-latest",
	"macos":   "macos-latest",
}

const defaultRunner = "ubuntu-latest"

const checkoutAction = "actions/checkout@v4"

var titleCaser = cases.Title(language.English)

// Generate renders the workflow YAML for a manifest. The manifest must have
// at least one executable build action.
func Generate(m *manifest.Manifest) ([]byte, error) {
	jobs := make(map[string]Job)

	if m.Build.PlatformBuildCommands.HasExecutable() {
		for _, entry := range m.Build.PlatformBuildCommands.Entries() {
			if entry.Command == nil {
				continue
			}
			jobs["build-"+entry.Name] = buildJob(entry.Name, *entry.Command)
		}
	} else if m.Build.CustomBuildCommand != "" {
		jobs["build"] = Job{
			Name:   "Build",
			RunsOn: defaultRunner,
			Steps:  buildSteps(m.Build.CustomBuildCommand),
		}
	}

	if len(jobs) == 0 {
		return nil, birberrors.Validation("manifest defines no executable build action; nothing to generate")
	}

	wf := Workflow{
		Name: fmt.Sprintf("%s build", m.ProjectName),
		On: Trigger{
			Push: PushTrigger{Branches: []string{m.GitIntegration.Branch}},
		},
		Jobs: jobs,
	}

	return yaml.Marshal(wf)
}

func buildJob(platform, command string) Job {
	runsOn, ok := runners[platform]
	if !ok {
		runsOn = defaultRunner
	}
	return Job{
		Name:   titleCaser.String(platform) + " build",
		RunsOn: runsOn,
		Steps:  buildSteps(command),
	}
}

func buildSteps(command string) []Step {
	return []Step{
		{Uses: checkoutAction},
		{Name: "Build", Run: command},
	}
}
