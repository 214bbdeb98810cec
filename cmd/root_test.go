package cmd

import (
	"testing"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"check", "read", "verify", "capture", "screenshot", "diff", "serve"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	tests := []struct {
		name     string
		flagType string
	}{
		{"format", "string"},
		{"pretty", "bool"},
		{"config", "string"},
		{"verbose", "bool"},
		{"backend", "string"},
		{"remote-url", "string"},
		{"browser-bin", "string"},
		{"headful", "bool"},
		{"stealth", "bool"},
		{"viewport", "string"},
		{"timeout", "duration"},
	}

	for _, tt := range tests {
		f := flags.Lookup(tt.name)
		if f == nil {
			t.Errorf("expected flag %q not found", tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("flag %q: expected type %q, got %q", tt.name, tt.flagType, f.Value.Type())
		}
	}
}

func TestCommand_Flags(t *testing.T) {
	tests := []struct {
		cmd      string
		name     string
		flagType string
	}{
		{"check", "expect", "string"},
		{"read", "tags", "string"},
		{"read", "visible-only", "bool"},
		{"read", "bbox", "string"},
		{"read", "flat", "bool"},
		{"verify", "concurrency", "int"},
		{"capture", "output", "string"},
		{"screenshot", "output", "string"},
		{"screenshot", "annotate", "bool"},
		{"diff", "visibility-only", "bool"},
		{"serve", "transport", "string"},
		{"serve", "port", "int"},
		{"serve", "session-ttl", "duration"},
	}

	for _, tt := range tests {
		sub, _, err := rootCmd.Find([]string{tt.cmd})
		if err != nil {
			t.Fatalf("find %s: %v", tt.cmd, err)
		}
		f := sub.Flags().Lookup(tt.name)
		if f == nil {
			t.Errorf("%s: expected flag %q not found", tt.cmd, tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("%s: flag %q: expected type %q, got %q", tt.cmd, tt.name, tt.flagType, f.Value.Type())
		}
	}
}
