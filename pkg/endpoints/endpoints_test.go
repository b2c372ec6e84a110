package endpoints

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "endpoints.yaml")
	content := `
endpoints:
  - id: items
    base_url: https://api.example.com/
    path: /v1/items
    headers:
      Accept: application/json
    query:
      fields: "id|name"
  - id: create-item
    base_url: https://api.example.com
    path: v1/items
    method: post
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write endpoints file: %v", err)
	}

	reg, err := LoadRegistry(file)
	if err != nil {
		t.Fatalf("LoadRegistry returned error: %v", err)
	}
	if got := len(reg.All()); got != 2 {
		t.Fatalf("expected 2 endpoints, got %d", got)
	}

	items, ok := reg.ByID("items")
	if !ok {
		t.Fatalf("expected endpoint items to be loaded")
	}
	if items.BaseURL != "https://api.example.com" || items.Path != "v1/items" {
		t.Fatalf("unexpected url parts %q %q", items.BaseURL, items.Path)
	}
	if items.Method != "GET" {
		t.Fatalf("expected default GET, got %s", items.Method)
	}
	if items.Query["fields"] != "id|name" {
		t.Fatalf("unexpected query %v", items.Query)
	}

	create, _ := reg.ByID("create-item")
	if create.Method != "POST" {
		t.Fatalf("expected upper-cased method, got %s", create.Method)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "endpoints.json")
	content := `{"endpoints":[{"id":"ping","base_url":"https://api.example.com","path":"ping"}]}`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write endpoints file: %v", err)
	}

	reg, err := LoadRegistry(file)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if _, ok := reg.ByID("ping"); !ok {
		t.Fatalf("expected ping endpoint")
	}
}

func TestLoadRegistryDuplicateID(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "endpoints.yaml")
	content := `
endpoints:
  - id: dup
    base_url: https://a.example
  - id: dup
    base_url: https://b.example
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write endpoints file: %v", err)
	}

	if _, err := LoadRegistry(file); err == nil {
		t.Fatalf("expected duplicate endpoint error, got nil")
	}
}

func TestNewRegistryRequiresBaseURL(t *testing.T) {
	if _, err := NewRegistry([]Endpoint{{ID: "x"}}); err == nil {
		t.Fatalf("expected validation error for missing base_url")
	}
}

func TestLoadRegistryEmptyPath(t *testing.T) {
	if _, err := LoadRegistry("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestRegistryReturnsIsolatedCopies(t *testing.T) {
	reg, err := NewRegistry([]Endpoint{{
		ID:      "items",
		BaseURL: "https://api.example.com",
		Headers: map[string]string{"Accept": "application/json"},
		Query:   map[string]string{"size": "10"},
	}})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	ep, ok := reg.ByID("items")
	if !ok {
		t.Fatalf("expected endpoint items")
	}
	ep.Headers["Accept"] = "text/html"
	ep.Query["size"] = "99"

	all := reg.All()
	all[0].Headers["X-Extra"] = "1"
	delete(all[0].Query, "size")

	again, _ := reg.ByID("items")
	if got := again.Headers["Accept"]; got != "application/json" {
		t.Fatalf("expected registry header unchanged, got %q", got)
	}
	if _, ok := again.Headers["X-Extra"]; ok {
		t.Fatalf("expected registry headers not to gain X-Extra")
	}
	if got := again.Query["size"]; got != "10" {
		t.Fatalf("expected registry query unchanged, got %q", got)
	}
}
