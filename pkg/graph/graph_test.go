package graph

import (
	"testing"

	"github.com/kittclouds/galaxymap/pkg/mindmap"
)

func sampleIndex() *EdgeIndex {
	return NewIndex([]mindmap.Edge{
		mindmap.NewEdge("js-1", "js-2"),
		mindmap.NewEdge("js-2", "js-3"),
		mindmap.NewEdge("js-3", "js-1"),
	})
}

func TestIndexBasics(t *testing.T) {
	g := sampleIndex()

	if all := g.Incident("js-1", "js-2", "js-3"); len(all) != 3 {
		t.Errorf("Incident(all) = %v, want 3 edges", all)
	}
	if !g.Has("js-1", "js-2") {
		t.Error("expected js-1 -> js-2")
	}
	if g.Has("js-2", "js-1") {
		t.Error("edges are directed, js-2 -> js-1 should not exist")
	}
}

func TestOutgoingIncoming(t *testing.T) {
	g := sampleIndex()

	outgoing := g.Outgoing("js-1")
	if len(outgoing) != 1 {
		t.Fatalf("js-1 outgoing = %d, want 1", len(outgoing))
	}
	if outgoing[0].Target != "js-2" {
		t.Errorf("Target = %s, want js-2", outgoing[0].Target)
	}

	incoming := g.Incoming("js-1")
	if len(incoming) != 1 || incoming[0].Source != "js-3" {
		t.Errorf("js-1 incoming = %v, want one edge from js-3", incoming)
	}
}

func TestIncidentBothDirections(t *testing.T) {
	g := sampleIndex()

	got := g.Incident("js-1")
	want := []string{"edge-js-1-js-2", "edge-js-3-js-1"}
	if len(got) != len(want) {
		t.Fatalf("Incident(js-1) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Incident(js-1)[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if all := g.Incident("js-1", "js-2"); len(all) != 3 {
		t.Errorf("Incident(js-1, js-2) = %v, want all 3 edges", all)
	}
	if none := g.Incident("js-9"); none != nil {
		t.Errorf("Incident(js-9) = %v, want nil", none)
	}
}

func TestParallelEdges(t *testing.T) {
	dup := mindmap.NewEdge("a", "b")
	dup.ID = "edge-a-b-2"
	g := NewIndex([]mindmap.Edge{mindmap.NewEdge("a", "b"), dup, mindmap.NewEdge("a", "b")})

	if all := g.Incident("a"); len(all) != 2 {
		t.Errorf("Incident(a) = %v, want 2 edges (same id ignored)", all)
	}
	if len(g.Incident("b")) != 2 {
		t.Errorf("Incident(b) = %v, want 2 edges", g.Incident("b"))
	}
}

func TestOrphans(t *testing.T) {
	g := NewIndex([]mindmap.Edge{mindmap.NewEdge("connected", "target")})

	orphans := g.Orphans([]mindmap.Note{{ID: "connected"}, {ID: "orphan"}, {ID: "target"}})
	if len(orphans) != 1 {
		t.Fatalf("Orphan count = %d, want 1", len(orphans))
	}
	if orphans[0] != "orphan" {
		t.Errorf("Orphan ID = %s, want 'orphan'", orphans[0])
	}
}
