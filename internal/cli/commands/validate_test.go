package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		wantErr  bool
		contains []string
	}{
		{
			name:     "defaults",
			content:  "report:\n  format: text\n",
			contains: []string{"Configuration valid!", "REMOVE    deletedDoc, deletedText, archived", "Webhooks: 0"},
		},
		{
			name:     "custom accessed",
			content:  "actions:\n  ACCESSED: [viewedDoc, sharedDoc]\n",
			contains: []string{"ACCESSED  viewedDoc, sharedDoc"},
		},
		{
			name:    "unknown category",
			content: "actions:\n  MOVE: [movedDoc]\n",
			wantErr: true,
		},
		{
			name:    "bad yaml",
			content: "actions: [\n",
			wantErr: true,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "cfg"+string(rune('a'+i))+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			cmd := NewValidateCommand()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs([]string{path})
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			err := cmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "actlog dev\n" {
		t.Errorf("version output = %q", got)
	}
}
