package main

import (
	"os"
	"strings"
	"testing"
)

func TestOutputFlagDefaults(t *testing.T) {
	root := newRootCmd()
	tests := []struct {
		cmd  string
		want string
	}{
		{"snapshot", "snapshot.svg"},
		{"export", ""},
		{"scenario", ""},
	}
	for _, tt := range tests {
		sub, _, err := root.Find([]string{tt.cmd})
		if err != nil {
			t.Fatalf("find %s: %v", tt.cmd, err)
		}
		f := sub.Flags().Lookup("out")
		if f == nil {
			t.Fatalf("%s has no --out flag", tt.cmd)
		}
		if f.Value.String() != tt.want {
			t.Errorf("%s --out = %q, want %q", tt.cmd, f.Value.String(), tt.want)
		}
	}
}

func TestSnapshotDefaultOutput(t *testing.T) {
	t.Chdir(t.TempDir())

	root := newRootCmd()
	root.SetArgs([]string{"snapshot", "--frames", "10", "--seed", "3", "--bodies", "4"})
	if err := root.Execute(); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	data, err := os.ReadFile("snapshot.svg")
	if err != nil {
		t.Fatalf("default output not written: %v", err)
	}
	svg := string(data)
	if !strings.Contains(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("snapshot is not an svg document")
	}
	if n := strings.Count(svg, "<radialGradient"); n != 4 {
		t.Errorf("%d gradients, want 4", n)
	}
}
