// Package assets reads engine resources from a file system.
package assets

import (
	"fmt"
	"io/fs"
)

// LoadShader reads a GLSL file into a null-terminated string for OpenGL.
func LoadShader(fsys fs.FS, name string) (string, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	if len(b) == 0 {
		return "", fmt.Errorf("load shader %q: empty source", name)
	}
	// Ensure null termination for gl.Str
	if b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}
