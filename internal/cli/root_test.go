package cli

import "testing"

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand()

	if root.Use != "actlog" {
		t.Errorf("Use = %q, want actlog", root.Use)
	}

	for _, name := range []string{"analyze", "validate", "version"} {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}
