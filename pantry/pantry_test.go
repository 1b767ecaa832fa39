package pantry

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	providers, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(providers) != 18 {
		t.Fatalf("got %d providers, want 18", len(providers))
	}
	for i, p := range providers {
		if p.Name == "" {
			t.Errorf("provider %d has empty name", i)
		}
		if p.Location == "" {
			t.Errorf("provider %q has empty location", p.Name)
		}
		if p.Hours == "" {
			t.Errorf("provider %q has empty hours", p.Name)
		}
	}
}

func TestForPrompt(t *testing.T) {
	block, err := ForPrompt()
	if err != nil {
		t.Fatalf("ForPrompt: %v", err)
	}
	// The prompt block keeps the curated field names, not the Go ones.
	for _, want := range []string{`"Phone Number"`, `"Additional Notes"`, "Mount Olivet Baptist Church", "Reeb Center"} {
		if !strings.Contains(block, want) {
			t.Errorf("prompt block missing %s", want)
		}
	}
}
