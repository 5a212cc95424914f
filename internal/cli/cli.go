// Package cli provides command-line interface functionality for birb.
package cli

import (
	"fmt"
	"strings"

	birberrors "github.com/birb-build/birb/internal/errors"
)

// Version is set at build time.
var Version = "dev"

// Help text alignment widths for consistent formatting.
const (
	helpCommandWidth = 10
	helpFlagWidth    = 14
)

// wantsHelp returns true if args contain -h or --help.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return birberrors.ExitSuccess
	}

	_, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return birberrors.ExitConfigError
	}
	if len(remaining) == 0 {
		printUsage()
		return birberrors.ExitSuccess
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	case "-h", "--help", "help":
		printUsage()
		return birberrors.ExitSuccess
	case "--version", "version":
		fmt.Printf("birb %s\n", Version)
		return birberrors.ExitSuccess
	case "create":
		return cmdCreate(cmdArgs)
	case "build":
		return cmdBuild(cmdArgs)
	case "bump":
		return cmdBump(cmdArgs)
	case "github":
		return cmdGithub(cmdArgs)
	case "validate":
		return cmdValidate(cmdArgs)
	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Hint("run 'birb help' for usage")
		return birberrors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet bool
}

// parseGlobalFlags manually parses global flags from arguments.
// Manual parsing is used instead of the stdlib flag package because flags
// can appear anywhere in the argument list, not just before the command.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	for _, arg := range args {
		switch arg {
		case "-q", "--quiet":
			opts.Quiet = true
		default:
			if strings.HasPrefix(arg, "--quiet=") {
				return nil, nil, fmt.Errorf("--quiet takes no value")
			}
			remaining = append(remaining, arg)
		}
	}

	out.SetQuiet(opts.Quiet)
	return opts, remaining, nil
}

func printUsage() {
	out.HelpTitle("birb - build and release orchestration")

	out.HelpSection("Usage:")
	out.Println("  birb <command> [flags]")

	out.HelpSection("Commands:")
	out.HelpCommand("create", "Create a .birb/birb.json manifest", helpCommandWidth)
	out.HelpCommand("build", "Run the configured build commands", helpCommandWidth)
	out.HelpCommand("bump", "Increment the project version", helpCommandWidth)
	out.HelpCommand("github", "Generate a GitHub Actions workflow", helpCommandWidth)
	out.HelpCommand("validate", "Check the manifest without building", helpCommandWidth)
	out.HelpCommand("version", "Print the birb version", helpCommandWidth)
	out.HelpCommand("help", "Show this help", helpCommandWidth)

	out.HelpSection("Flags:")
	out.HelpFlag("-q, --quiet", "Suppress informational output", helpFlagWidth)
	out.HelpFlag("-h, --help", "Show help for a command", helpFlagWidth)

	out.HelpSection("Examples:")
	out.HelpExample("birb create --name demo", "Create a manifest with defaults")
	out.HelpExample("birb build --strict", "Build and fail if any target fails")
	out.HelpExample("birb bump minor", "Bump the minor version")
}
