// Package prompts holds the prompt templates for the tool variants.
// Rendering is deterministic: for a fixed manager instance, the same data
// always produces byte-identical output.
package prompts

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	textTemplate "text/template"

	"gopkg.in/yaml.v3"
)

// Manager handles loading and rendering prompt templates
type Manager struct {
	templates map[string]*textTemplate.Template
	sources   map[string]string // Track which source provided each template (for debugging)
}

// NewManager creates a manager with the built-in default templates
func NewManager() (*Manager, error) {
	m := &Manager{
		templates: make(map[string]*textTemplate.Template),
		sources:   make(map[string]string),
	}

	for name, text := range defaultTemplates {
		if err := m.set(name, text, "builtin"); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// NewManagerWithOverrides creates a manager that layers yaml override files
// from a directory over the defaults. Each file maps template name to
// template text; later files override earlier ones.
func NewManagerWithOverrides(overridesDir string) (*Manager, error) {
	m, err := NewManager()
	if err != nil {
		return nil, err
	}

	if overridesDir == "" {
		return m, nil
	}
	if _, err := os.Stat(overridesDir); err != nil {
		// Missing override directory is not an error, there are no overrides
		return m, nil
	}

	if err := m.loadDirectory(overridesDir); err != nil {
		return nil, err
	}
	return m, nil
}

// loadDirectory loads all yaml files from a directory
func (m *Manager) loadDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		filePath := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filePath, err)
		}

		var overrides map[string]string
		if err := yaml.Unmarshal(data, &overrides); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		for name, text := range overrides {
			if _, known := defaultTemplates[name]; !known {
				return fmt.Errorf("%s: unknown template %q", filePath, name)
			}
			if err := m.set(name, text, entry.Name()); err != nil {
				return err
			}
		}
	}

	return nil
}

func (m *Manager) set(name, text, source string) error {
	tmpl, err := textTemplate.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template %q: %w", name, err)
	}
	m.templates[name] = tmpl
	m.sources[name] = source
	return nil
}

// Render executes the named template with the given data
func (m *Manager) Render(name string, data any) (string, error) {
	tmpl, ok := m.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt template: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return buf.String(), nil
}

// Source reports which file provided a template
func (m *Manager) Source(name string) string {
	return m.sources[name]
}
