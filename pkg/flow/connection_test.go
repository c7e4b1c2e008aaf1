package flow

import (
	"fmt"
	"testing"

	"github.com/flowcanvas/flowcanvas/pkg/errors"
)

func TestAddConnectionBasicWiring(t *testing.T) {
	g := New()
	g.AddNode(outNode("src", "out"))
	g.AddNode(inNode("dst", "in"))

	c, err := g.AddConnection(Connection{
		Source: PortAddress{NodeID: "src", PortID: "out"},
		Target: PortAddress{NodeID: "dst", PortID: "in"},
	})
	if err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	if c.ID == "" {
		t.Error("ID not generated for an id-less connection")
	}
	if g.ConnectionCount() != 1 {
		t.Errorf("ConnectionCount = %d, want 1", g.ConnectionCount())
	}

	got, ok := g.Connection(c.ID)
	if !ok {
		t.Fatal("connection not retrievable by id")
	}
	if got.Source != c.Source || got.Target != c.Target {
		t.Errorf("stored endpoints = %v -> %v, want %v -> %v", got.Source, got.Target, c.Source, c.Target)
	}
}

func TestAddConnectionErrors(t *testing.T) {
	setup := func() *Graph {
		g := New()
		g.AddNode(Node{ID: "a", Ports: []Port{
			{ID: "out", Direction: DirectionOutput},
			{ID: "in", Direction: DirectionInput},
		}})
		g.AddNode(Node{ID: "b", Ports: []Port{
			{ID: "out", Direction: DirectionOutput},
			{ID: "in", Direction: DirectionInput},
		}})
		return g
	}

	tests := []struct {
		name     string
		conn     Connection
		wantCode errors.Code
	}{
		{
			name:     "MissingSourceNode",
			conn:     Connection{Source: PortAddress{"ghost", "out"}, Target: PortAddress{"b", "in"}},
			wantCode: errors.CodeNodeNotFound,
		},
		{
			name:     "MissingTargetNode",
			conn:     Connection{Source: PortAddress{"a", "out"}, Target: PortAddress{"ghost", "in"}},
			wantCode: errors.CodeNodeNotFound,
		},
		{
			name:     "MissingSourcePort",
			conn:     Connection{Source: PortAddress{"a", "ghost"}, Target: PortAddress{"b", "in"}},
			wantCode: errors.CodePortNotFound,
		},
		{
			name:     "MissingTargetPort",
			conn:     Connection{Source: PortAddress{"a", "out"}, Target: PortAddress{"b", "ghost"}},
			wantCode: errors.CodePortNotFound,
		},
		{
			name:     "InputAsSource",
			conn:     Connection{Source: PortAddress{"a", "in"}, Target: PortAddress{"b", "in"}},
			wantCode: errors.CodePortDirectionMismatch,
		},
		{
			name:     "OutputAsTarget",
			conn:     Connection{Source: PortAddress{"a", "out"}, Target: PortAddress{"b", "out"}},
			wantCode: errors.CodePortDirectionMismatch,
		},
		{
			name:     "LoopbackDenied",
			conn:     Connection{Source: PortAddress{"a", "out"}, Target: PortAddress{"a", "in"}},
			wantCode: errors.CodeInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := setup()
			_, err := g.AddConnection(tt.conn)
			if errors.GetCode(err) != tt.wantCode {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.wantCode)
			}
			if g.ConnectionCount() != 0 {
				t.Errorf("ConnectionCount = %d after failed add, want 0", g.ConnectionCount())
			}
		})
	}
}

func TestAddConnectionDuplicates(t *testing.T) {
	g := New()
	g.AddNode(outNode("a", "out"))
	g.AddNode(inNode("b", "in"))

	if _, err := g.AddConnection(Connection{ID: "c1", Source: PortAddress{"a", "out"}, Target: PortAddress{"b", "in"}}); err != nil {
		t.Fatalf("AddConnection: %v", err)
	}

	// Same id.
	_, err := g.AddConnection(Connection{ID: "c1", Source: PortAddress{"a", "out"}, Target: PortAddress{"b", "in"}})
	if !errors.Is(err, errors.CodeConnectionExists) {
		t.Errorf("duplicate id error = %v, want CONNECTION_EXISTS", err)
	}

	// Fresh id, same endpoint pair.
	_, err = g.AddConnection(Connection{ID: "c2", Source: PortAddress{"a", "out"}, Target: PortAddress{"b", "in"}})
	if !errors.Is(err, errors.CodeConnectionExists) {
		t.Errorf("duplicate pair error = %v, want CONNECTION_EXISTS", err)
	}
}

func TestAddConnectionLoopbackAllowed(t *testing.T) {
	tests := []struct {
		name               string
		srcAllow, tgtAllow bool
		wantOK             bool
	}{
		{name: "Neither", wantOK: false},
		{name: "SourceOnly", srcAllow: true, wantOK: true},
		{name: "TargetOnly", tgtAllow: true, wantOK: true},
		{name: "Both", srcAllow: true, tgtAllow: true, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.AddNode(Node{ID: "n", Ports: []Port{
				{ID: "out", Direction: DirectionOutput, AllowLoopback: tt.srcAllow},
				{ID: "in", Direction: DirectionInput, AllowLoopback: tt.tgtAllow},
			}})

			_, err := g.AddConnection(Connection{Source: PortAddress{"n", "out"}, Target: PortAddress{"n", "in"}})
			if tt.wantOK && err != nil {
				t.Errorf("AddConnection: %v", err)
			}
			if !tt.wantOK && !errors.Is(err, errors.CodeInvalidState) {
				t.Errorf("error = %v, want INVALID_STATE", err)
			}
		})
	}
}

// TestConnectionCapacity fills a limited port, verifies the k+1th attempt
// fails, then frees a slot and verifies the retry succeeds.
func TestConnectionCapacity(t *testing.T) {
	const limit = 2

	g := New()
	g.AddNode(Node{ID: "hub", Ports: []Port{
		{ID: "out", Direction: DirectionOutput, MaxConnections: intPtr(limit)},
	}})
	for i := 0; i < limit+1; i++ {
		g.AddNode(inNode(fmt.Sprintf("sink%d", i), "in"))
	}

	for i := 0; i < limit; i++ {
		_, err := g.AddConnection(Connection{
			ID:     fmt.Sprintf("c%d", i),
			Source: PortAddress{"hub", "out"},
			Target: PortAddress{fmt.Sprintf("sink%d", i), "in"},
		})
		if err != nil {
			t.Fatalf("AddConnection #%d: %v", i, err)
		}
	}

	over := Connection{
		ID:     "overflow",
		Source: PortAddress{"hub", "out"},
		Target: PortAddress{fmt.Sprintf("sink%d", limit), "in"},
	}
	if _, err := g.AddConnection(over); !errors.Is(err, errors.CodePortConnectionLimit) {
		t.Fatalf("over-limit error = %v, want PORT_CONNECTION_LIMIT", err)
	}

	if _, err := g.RemoveConnection("c0"); err != nil {
		t.Fatalf("RemoveConnection: %v", err)
	}
	if _, err := g.AddConnection(over); err != nil {
		t.Fatalf("AddConnection after freeing a slot: %v", err)
	}
}

func TestConnectionCapacityOnTarget(t *testing.T) {
	g := New()
	g.AddNode(outNode("a", "out"))
	g.AddNode(outNode("b", "out"))
	g.AddNode(Node{ID: "sink", Ports: []Port{
		{ID: "in", Direction: DirectionInput, MaxConnections: intPtr(1)},
	}})

	if _, err := g.AddConnection(Connection{Source: PortAddress{"a", "out"}, Target: PortAddress{"sink", "in"}}); err != nil {
		t.Fatalf("AddConnection: %v", err)
	}
	_, err := g.AddConnection(Connection{Source: PortAddress{"b", "out"}, Target: PortAddress{"sink", "in"}})
	if !errors.Is(err, errors.CodePortConnectionLimit) {
		t.Errorf("error = %v, want PORT_CONNECTION_LIMIT", err)
	}
}

func TestColorCompatibility(t *testing.T) {
	tests := []struct {
		name     string
		src, tgt Port
		wantErr  bool
	}{
		{
			name: "NoColorsAnywhere",
			src:  Port{ID: "out", Direction: DirectionOutput},
			tgt:  Port{ID: "in", Direction: DirectionInput},
		},
		{
			name: "ExactMatch",
			src:  Port{ID: "out", Direction: DirectionOutput, Color: "red"},
			tgt:  Port{ID: "in", Direction: DirectionInput, Color: "red"},
		},
		{
			name: "TargetAcceptsSourceColor",
			src:  Port{ID: "out", Direction: DirectionOutput, Color: "red"},
			tgt:  Port{ID: "in", Direction: DirectionInput, Color: "blue", AcceptsColors: []string{"red"}},
		},
		{
			name: "SourceAcceptsTargetColor",
			src:  Port{ID: "out", Direction: DirectionOutput, Color: "red", AcceptsColors: []string{"blue"}},
			tgt:  Port{ID: "in", Direction: DirectionInput, Color: "blue"},
		},
		{
			name: "WildcardStar",
			src:  Port{ID: "out", Direction: DirectionOutput, Color: "red"},
			tgt:  Port{ID: "in", Direction: DirectionInput, Color: "blue", AcceptsColors: []string{"*"}},
		},
		{
			name: "WildcardAny",
			src:  Port{ID: "out", Direction: DirectionOutput, Color: "red"},
			tgt:  Port{ID: "in", Direction: DirectionInput, Color: "blue", AcceptsColors: []string{"any"}},
		},
		{
			name: "UncoloredSourceIntoRestrictedTarget",
			// A colourless port never triggers the accept check on the other side.
			src: Port{ID: "out", Direction: DirectionOutput},
			tgt: Port{ID: "in", Direction: DirectionInput, Color: "blue", AcceptsColors: []string{"green"}},
		},
		{
			name:    "TargetListExcludesSourceColor",
			src:     Port{ID: "out", Direction: DirectionOutput, Color: "red"},
			tgt:     Port{ID: "in", Direction: DirectionInput, AcceptsColors: []string{"green"}},
			wantErr: true,
		},
		{
			name:    "SourceListExcludesTargetColor",
			src:     Port{ID: "out", Direction: DirectionOutput, AcceptsColors: []string{"green"}},
			tgt:     Port{ID: "in", Direction: DirectionInput, Color: "red"},
			wantErr: true,
		},
		{
			name: "DifferingColorsNoLists",
			// Undeclared lists are permissive but never vouch: with both
			// colours set and differing, nobody vouches, so this fails.
			src:     Port{ID: "out", Direction: DirectionOutput, Color: "red"},
			tgt:     Port{ID: "in", Direction: DirectionInput, Color: "blue"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.AddNode(Node{ID: "a", Ports: []Port{tt.src}})
			g.AddNode(Node{ID: "b", Ports: []Port{tt.tgt}})

			_, err := g.AddConnection(Connection{
				Source: PortAddress{"a", tt.src.ID},
				Target: PortAddress{"b", tt.tgt.ID},
			})
			if tt.wantErr {
				if !errors.Is(err, errors.CodePortColorMismatch) {
					t.Errorf("error = %v, want PORT_COLOR_MISMATCH", err)
				}
				return
			}
			if err != nil {
				t.Errorf("AddConnection: %v", err)
			}
		})
	}
}

func TestConnectionColorResolution(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		src, tgt  Port
		want      string
	}{
		{
			name:      "ExplicitWins",
			requested: "gold",
			src:       Port{ID: "out", Direction: DirectionOutput, Color: "red"},
			tgt:       Port{ID: "in", Direction: DirectionInput, Color: "red"},
			want:      "gold",
		},
		{
			name: "SharedColor",
			src:  Port{ID: "out", Direction: DirectionOutput, Color: "red"},
			tgt:  Port{ID: "in", Direction: DirectionInput, Color: "red"},
			want: "red",
		},
		{
			name: "TargetAcceptsSource",
			src:  Port{ID: "out", Direction: DirectionOutput, Color: "red"},
			tgt:  Port{ID: "in", Direction: DirectionInput, Color: "blue", AcceptsColors: []string{"red"}},
			want: "red",
		},
		{
			name: "SourceAcceptsTarget",
			src:  Port{ID: "out", Direction: DirectionOutput, AcceptsColors: []string{"blue"}},
			tgt:  Port{ID: "in", Direction: DirectionInput, Color: "blue"},
			want: "blue",
		},
		{
			name: "OnlySourceColored",
			src:  Port{ID: "out", Direction: DirectionOutput, Color: "red"},
			tgt:  Port{ID: "in", Direction: DirectionInput, AcceptsColors: []string{"*"}},
			want: "red",
		},
		{
			name: "OnlyTargetColored",
			src:  Port{ID: "out", Direction: DirectionOutput},
			tgt:  Port{ID: "in", Direction: DirectionInput, Color: "blue"},
			want: "blue",
		},
		{
			name: "NothingColored",
			src:  Port{ID: "out", Direction: DirectionOutput},
			tgt:  Port{ID: "in", Direction: DirectionInput},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.AddNode(Node{ID: "a", Ports: []Port{tt.src}})
			g.AddNode(Node{ID: "b", Ports: []Port{tt.tgt}})

			got, err := g.AddConnection(Connection{
				Color:  tt.requested,
				Source: PortAddress{"a", tt.src.ID},
				Target: PortAddress{"b", tt.tgt.ID},
			})
			if err != nil {
				t.Fatalf("AddConnection: %v", err)
			}
			if got.Color != tt.want {
				t.Errorf("Color = %q, want %q", got.Color, tt.want)
			}
		})
	}
}

func TestUpdateConnection(t *testing.T) {
	g := New()
	g.AddNode(outNode("a", "out"))
	g.AddNode(inNode("b", "in"))
	g.AddNode(inNode("c", "in"))
	g.AddConnection(Connection{ID: "c1", Source: PortAddress{"a", "out"}, Target: PortAddress{"b", "in"}})

	// Retarget to another node; validation must not trip over the
	// connection's own previous endpoints.
	got, err := g.UpdateConnection("c1", ConnectionPatch{Target: &PortAddress{NodeID: "c", PortID: "in"}})
	if err != nil {
		t.Fatalf("UpdateConnection: %v", err)
	}
	if got.Target != (PortAddress{NodeID: "c", PortID: "in"}) {
		t.Errorf("Target = %v, want c.in", got.Target)
	}

	// Path and colour patches replace wholesale.
	got, err = g.UpdateConnection("c1", ConnectionPatch{
		Path:  []Point{{X: 1, Y: 1}},
		Color: strPtr("teal"),
	})
	if err != nil {
		t.Fatalf("UpdateConnection: %v", err)
	}
	if got.Color != "teal" || len(got.Path) != 1 {
		t.Errorf("got Color=%q Path=%v, want teal with one waypoint", got.Color, got.Path)
	}

	// Retargeting onto an occupied pair fails and leaves the original intact.
	g.AddConnection(Connection{ID: "c2", Source: PortAddress{"a", "out"}, Target: PortAddress{"b", "in"}})
	_, err = g.UpdateConnection("c2", ConnectionPatch{Target: &PortAddress{NodeID: "c", PortID: "in"}})
	if !errors.Is(err, errors.CodeConnectionExists) {
		t.Fatalf("error = %v, want CONNECTION_EXISTS", err)
	}
	unchanged, _ := g.Connection("c2")
	if unchanged.Target != (PortAddress{NodeID: "b", PortID: "in"}) {
		t.Errorf("Target = %v after failed update, want b.in", unchanged.Target)
	}

	if _, err := g.UpdateConnection("ghost", ConnectionPatch{}); !errors.Is(err, errors.CodeConnectionNotFound) {
		t.Errorf("error = %v, want CONNECTION_NOT_FOUND", err)
	}
}

func TestUpdateConnectionSelfCapacity(t *testing.T) {
	// A port at its limit must still allow updating the connection that
	// occupies the slot.
	g := New()
	g.AddNode(Node{ID: "a", Ports: []Port{
		{ID: "out", Direction: DirectionOutput, MaxConnections: intPtr(1)},
	}})
	g.AddNode(inNode("b", "in"))
	g.AddConnection(Connection{ID: "c1", Source: PortAddress{"a", "out"}, Target: PortAddress{"b", "in"}})

	if _, err := g.UpdateConnection("c1", ConnectionPatch{Color: strPtr("red")}); err != nil {
		t.Fatalf("UpdateConnection on a full port: %v", err)
	}
}

func TestRemoveConnection(t *testing.T) {
	g := New()
	g.AddNode(outNode("a", "out"))
	g.AddNode(inNode("b", "in"))
	g.AddConnection(Connection{ID: "c1", Source: PortAddress{"a", "out"}, Target: PortAddress{"b", "in"}})

	pre, err := g.RemoveConnection("c1")
	if err != nil {
		t.Fatalf("RemoveConnection: %v", err)
	}
	if pre.ID != "c1" {
		t.Errorf("payload ID = %q, want c1", pre.ID)
	}
	if g.ConnectionCount() != 0 {
		t.Errorf("ConnectionCount = %d, want 0", g.ConnectionCount())
	}

	if _, err := g.RemoveConnection("c1"); !errors.Is(err, errors.CodeConnectionNotFound) {
		t.Errorf("second remove error = %v, want CONNECTION_NOT_FOUND", err)
	}
}
