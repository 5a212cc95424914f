package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PlatformEntry is one named build variant and its optional shell command.
// A nil Command means the platform is skipped.
type PlatformEntry struct {
	Name    string
	Command *string
}

// PlatformCommands is an ordered mapping from platform name to an optional
// shell command. Build targets are executed in the order they appear in the
// manifest document, so JSON key order is preserved through load and save.
type PlatformCommands struct {
	names    []string
	commands map[string]*string
}

// NewPlatformCommands builds a PlatformCommands from entries in order.
func NewPlatformCommands(entries ...PlatformEntry) PlatformCommands {
	var p PlatformCommands
	for _, e := range entries {
		p.Set(e.Name, e.Command)
	}
	return p
}

// Len returns the number of platforms, including skipped ones.
func (p *PlatformCommands) Len() int {
	return len(p.names)
}

// Names returns the platform names in manifest order.
func (p *PlatformCommands) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Get returns the command for a platform and whether the platform exists.
func (p *PlatformCommands) Get(name string) (*string, bool) {
	cmd, ok := p.commands[name]
	return cmd, ok
}

// Set adds or replaces a platform command. New platforms are appended;
// existing platforms keep their position.
func (p *PlatformCommands) Set(name string, command *string) {
	if p.commands == nil {
		p.commands = make(map[string]*string)
	}
	if _, exists := p.commands[name]; !exists {
		p.names = append(p.names, name)
	}
	p.commands[name] = command
}

// Entries returns all platforms in manifest order.
func (p *PlatformCommands) Entries() []PlatformEntry {
	entries := make([]PlatformEntry, 0, len(p.names))
	for _, name := range p.names {
		entries = append(entries, PlatformEntry{Name: name, Command: p.commands[name]})
	}
	return entries
}

// HasExecutable reports whether any platform has a non-null command.
func (p *PlatformCommands) HasExecutable() bool {
	for _, name := range p.names {
		if p.commands[name] != nil {
			return true
		}
	}
	return false
}

// UnmarshalJSON decodes a JSON object while recording key order. The stdlib
// map type cannot be used here: target iteration order must match the
// document, not Go's randomized map order.
func (p *PlatformCommands) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("platform_build_commands: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("platform_build_commands: expected object, got %v", tok)
	}

	p.names = nil
	p.commands = make(map[string]*string)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("platform_build_commands: %w", err)
		}
		// Object keys are always strings after a '{' token.
		name := keyTok.(string)

		var command *string
		if err := dec.Decode(&command); err != nil {
			return fmt.Errorf("platform_build_commands[%s]: expected string or null: %w", name, err)
		}
		p.Set(name, command)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("platform_build_commands: %w", err)
	}
	return nil
}

// MarshalJSON encodes the platforms as a JSON object in manifest order.
func (p PlatformCommands) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.commands[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
