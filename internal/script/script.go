//go:build !tinygo

// Package script is the command language that drives the simulated keypad:
// scripted headless runs and the interactive console share it.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Script is a named list of commands.
type Script struct {
	Name  string   `yaml:"name" toml:"name"`
	Steps []string `yaml:"steps" toml:"steps"`
}

// LoadError reports a script that could not be read or parsed.
type LoadError struct {
	File    string
	Step    int
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("script")
	if e.File != "" {
		b.WriteString(" " + e.File)
	}
	if e.Step > 0 {
		b.WriteString(" step " + strconv.Itoa(e.Step))
	}
	b.WriteString(": " + e.Message)
	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Cause }

// Format picks the decoder for a script file by extension.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	default:
		return "yaml"
	}
}

// Load reads a YAML or TOML script and validates every step.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	s, err := Parse(data, Format(path))
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes a script in the given format ("yaml" or "toml").
func Parse(data []byte, format string) (*Script, error) {
	var s Script
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
		}
	case "toml":
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, &LoadError{Message: "failed to parse TOML", Cause: err}
		}
	default:
		return nil, &LoadError{Message: fmt.Sprintf("unknown format %q", format)}
	}

	if len(s.Steps) == 0 {
		return nil, &LoadError{Message: "script must have at least one step"}
	}
	for i, step := range s.Steps {
		if _, err := ParseCommand(step); err != nil {
			return nil, &LoadError{Step: i + 1, Message: "invalid step", Cause: err}
		}
	}
	return &s, nil
}
