// Package version provides semantic version parsing and manipulation.
package version

import (
	"fmt"
	"regexp"
	"strconv"
)

// SemverRegex validates semantic version strings.
var SemverRegex = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(-([a-zA-Z0-9]+(\.[a-zA-Z0-9]+)*))?(\+([a-zA-Z0-9]+(\.[a-zA-Z0-9]+)*))?$`)

// Semver represents a parsed semantic version.
type Semver struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Build      string
}

// Validate checks if a version string is valid semver.
func Validate(version string) error {
	if !SemverRegex.MatchString(version) {
		return fmt.Errorf("invalid semver format: %q", version)
	}
	return nil
}

// Parse parses a semantic version string.
func Parse(version string) (*Semver, error) {
	match := SemverRegex.FindStringSubmatch(version)
	if match == nil {
		return nil, fmt.Errorf("invalid semver format: %q", version)
	}

	// Errors ignored: regex guarantees these capture groups contain only digits
	major, _ := strconv.Atoi(match[1])
	minor, _ := strconv.Atoi(match[2])
	patch, _ := strconv.Atoi(match[3])

	return &Semver{
		Major:      major,
		Minor:      minor,
		Patch:      patch,
		Prerelease: match[5], // Group 5 is prerelease without the dash
		Build:      match[8], // Group 8 is build without the plus
	}, nil
}

// String returns the semver string representation.
func (s *Semver) String() string {
	result := fmt.Sprintf("%d.%d.%d", s.Major, s.Minor, s.Patch)
	if s.Prerelease != "" {
		result += "-" + s.Prerelease
	}
	if s.Build != "" {
		result += "+" + s.Build
	}
	return result
}

// Bump increments the specified part of the version.
//
// Supported parts:
//   - "major": increments major, resets minor/patch (1.2.3 → 2.0.0)
//   - "minor": increments minor, resets patch (1.2.3 → 1.3.0)
//   - "patch": increments patch (1.2.3 → 1.2.4)
//
// Prerelease and build metadata are cleared on bump.
func Bump(current, part string) (string, error) {
	v, err := Parse(current)
	if err != nil {
		return "", err
	}

	switch part {
	case "major":
		v.Major++
		v.Minor = 0
		v.Patch = 0
	case "minor":
		v.Minor++
		v.Patch = 0
	case "patch":
		v.Patch++
	default:
		return "", fmt.Errorf("unknown version part: %q (use major, minor, or patch)", part)
	}

	v.Prerelease = ""
	v.Build = ""

	return v.String(), nil
}

// ValidPart reports whether part is a supported increment type.
func ValidPart(part string) bool {
	switch part {
	case "major", "minor", "patch":
		return true
	}
	return false
}
