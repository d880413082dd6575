// Package file supplies script text from the filesystem.
package file

import (
	"fmt"
	"os"
	"path/filepath"
)

// Source implements ports.ScriptSource over a single .va file.
type Source struct {
	path string
}

// NewSource creates a file-backed script source.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Read loads the script text. The origin label is the cleaned path.
func (s *Source) Read() (string, string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read script: %w", err)
	}
	return string(data), filepath.Clean(s.path), nil
}
