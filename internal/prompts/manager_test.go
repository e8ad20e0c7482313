package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManager_RendersAllDefaults(t *testing.T) {
	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	tests := []struct {
		template string
		data     any
		want     string
	}{
		{SearchBrief, struct{ Query string }{"go modules"}, "brief, concise answer to: go modules"},
		{SearchNormal, struct{ Query string }{"go modules"}, "clear, balanced answer to: go modules"},
		{SearchDetailed, struct{ Query string }{"go modules"}, "detailed analysis of: go modules"},
		{Documentation, struct{ Query, Context string }{"chi router", ""}, "documentation and usage examples for chi router"},
		{FindAPIs, struct{ Requirement, Context string }{"geocoding", ""}, "APIs that could be used for: geocoding"},
		{CheckDeprecated, struct{ Code, Technology string }{"var x = 1", ""}, "var x = 1"},
		{DeepResearchSystem, nil, "Deep Research agent"},
		{DeepResearchUser, struct {
			Topic, Depth, Focus, TimeConstraint, CitationStyle string
		}{"rust async", "brief", "", "", "mla"}, "investigation on: rust async"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			got, err := m.Render(tt.template, tt.data)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Rendered output missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestManager_ConditionalSections(t *testing.T) {
	m, err := NewManager()
	if err != nil {
		t.Fatal(err)
	}

	with, err := m.Render(Documentation, struct{ Query, Context string }{"pg driver", "pooling"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(with, "Focus on: pooling.") {
		t.Errorf("Context clause missing:\n%s", with)
	}

	without, err := m.Render(Documentation, struct{ Query, Context string }{"pg driver", ""})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(without, "Focus on:") {
		t.Errorf("Context clause should be omitted when empty:\n%s", without)
	}
}

func TestManager_UnknownTemplateFails(t *testing.T) {
	m, err := NewManager()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Render("no_such_template", nil); err == nil {
		t.Fatal("Expected error for unknown template")
	}
}

func TestManager_MissingFieldFails(t *testing.T) {
	m, err := NewManager()
	if err != nil {
		t.Fatal(err)
	}
	// Struct is missing the Query field the template needs
	if _, err := m.Render(SearchBrief, struct{ Other string }{"x"}); err == nil {
		t.Fatal("Expected error for data missing a template field")
	}
}

func TestManagerWithOverrides_ReplacesNamedTemplate(t *testing.T) {
	dir := t.TempDir()
	override := []byte("search_brief: 'Short answer please: {{.Query}}'\n")
	if err := os.WriteFile(filepath.Join(dir, "prompts.yaml"), override, 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManagerWithOverrides(dir)
	if err != nil {
		t.Fatalf("NewManagerWithOverrides failed: %v", err)
	}

	got, err := m.Render(SearchBrief, struct{ Query string }{"llamas"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Short answer please: llamas" {
		t.Errorf("Override not applied, got %q", got)
	}
	if m.Source(SearchBrief) != "prompts.yaml" {
		t.Errorf("Source should name the override file, got %q", m.Source(SearchBrief))
	}

	// Templates not named in the override keep the builtin text
	normal, err := m.Render(SearchNormal, struct{ Query string }{"llamas"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(normal, "clear, balanced answer") {
		t.Errorf("Untouched template changed:\n%s", normal)
	}
	if m.Source(SearchNormal) != "builtin" {
		t.Errorf("Untouched template source should stay builtin, got %q", m.Source(SearchNormal))
	}
}

func TestManagerWithOverrides_UnknownNameRejected(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("not_a_template: text\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewManagerWithOverrides(dir); err == nil {
		t.Fatal("Expected error for unknown template name in override file")
	}
}

func TestManagerWithOverrides_MissingDirectoryIsNotAnError(t *testing.T) {
	m, err := NewManagerWithOverrides(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Missing override directory should fall back to defaults: %v", err)
	}
	if _, err := m.Render(SearchBrief, struct{ Query string }{"q"}); err != nil {
		t.Errorf("Defaults should still render: %v", err)
	}
}
