package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/internal/config"
	"github.com/flowcanvas/flowcanvas/pkg/flow"
	"github.com/flowcanvas/flowcanvas/pkg/flowio"
)

func writeDoc(t *testing.T, valid bool) string {
	t.Helper()

	g := flow.New()
	g.AddNode(flow.Node{ID: "a", Label: "Alpha", Ports: []flow.Port{
		{ID: "out", Direction: flow.DirectionOutput},
	}})
	g.AddNode(flow.Node{ID: "b", Ports: []flow.Port{
		{ID: "in", Direction: flow.DirectionInput},
	}})
	g.AddConnection(flow.Connection{
		ID:     "c1",
		Source: flow.PortAddress{NodeID: "a", PortID: "out"},
		Target: flow.PortAddress{NodeID: "b", PortID: "in"},
	})

	path := filepath.Join(t.TempDir(), "doc.json")
	if valid {
		if err := flowio.WriteFile(g, path); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	} else {
		// Connection into a missing node.
		raw := `{"nodes": [], "connections": [{"id": "c", "source": {"nodeId": "x", "portId": "p"}, "target": {"nodeId": "y", "portId": "p"}}]}`
		if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return path
}

func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	ctx := withLogger(context.Background(), newLogger(os.Stderr, log.ErrorLevel))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestValidateCmd(t *testing.T) {
	if _, err := runCmd(t, newValidateCmd(), writeDoc(t, true)); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if _, err := runCmd(t, newValidateCmd(), writeDoc(t, false)); err == nil {
		t.Fatal("validate accepted an invalid document")
	}
	if _, err := runCmd(t, newValidateCmd(), "missing.json"); err == nil {
		t.Fatal("validate accepted a missing file")
	}
}

func TestExportCmd(t *testing.T) {
	doc := writeDoc(t, true)

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{name: "JSON", format: "json", want: `"nodes"`},
		{name: "DOT", format: "dot", want: "digraph G {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "export.out")
			if _, err := runCmd(t, newExportCmd(config.Default()), doc, "--format", tt.format, "--output", out); err != nil {
				t.Fatalf("export: %v", err)
			}

			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, data)
			}
		})
	}
}

func TestExportCmdUnknownFormat(t *testing.T) {
	if _, err := runCmd(t, newExportCmd(config.Default()), writeDoc(t, true), "--format", "yaml"); err == nil {
		t.Fatal("export accepted an unknown format")
	}
}

func TestNormalizeCmd(t *testing.T) {
	// Hand-written doc with no connection id and no colour.
	dir := t.TempDir()
	src := filepath.Join(dir, "raw.json")
	raw := `{
	  "nodes": [
	    {"id": "a", "ports": [{"id": "out", "direction": "output", "color": "green"}]},
	    {"id": "b", "ports": [{"id": "in", "direction": "input"}]}
	  ],
	  "connections": [{"source": {"nodeId": "a", "portId": "out"}, "target": {"nodeId": "b", "portId": "in"}}]
	}`
	if err := os.WriteFile(src, []byte(raw), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	dest := filepath.Join(dir, "canonical.json")
	if _, err := runCmd(t, newNormalizeCmd(), src, "--output", dest); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	got, err := flowio.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := got.State()
	if len(s.Connections) != 1 || s.Connections[0].ID == "" {
		t.Errorf("connection id not generated: %v", s.Connections)
	}
	if s.Connections[0].Color != "green" {
		t.Errorf("colour = %q, want resolved green", s.Connections[0].Color)
	}
}

func TestInspectCmd(t *testing.T) {
	if _, err := runCmd(t, newInspectCmd(), writeDoc(t, true)); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if _, err := runCmd(t, newInspectCmd(), writeDoc(t, false)); err == nil {
		t.Fatal("inspect accepted an invalid document")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"nonsense", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
