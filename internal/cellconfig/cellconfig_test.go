package cellconfig

import (
	"testing"

	"mdc/internal/bitset"
	"mdc/internal/topology"
)

// Checkerboard case: corners 0, 3, 5, 6 inside, the rest outside.
// Each inside corner must end up with its own 3-edge component.
func TestCheckerboardPatternSplitsPerCorner(t *testing.T) {
	pattern := bitset.FromBits(0, 3, 5, 6)

	got := ComponentsIntersecting(pattern, bitset.FromBits(int(topology.E), int(topology.F), int(topology.K), int(topology.L)))
	if len(got) != 2 {
		t.Fatalf("expected 2 intersecting components, got %d: %v", len(got), got)
	}

	want1 := bitset.FromBits(int(topology.F), int(topology.G), int(topology.K))
	want2 := bitset.FromBits(int(topology.D), int(topology.E), int(topology.L))
	found1, found2 := false, false
	for _, c := range got {
		if c == want1 {
			found1 = true
		}
		if c == want2 {
			found2 = true
		}
	}
	if !found1 || !found2 {
		t.Fatalf("missing expected components, got %v", got)
	}
}

func TestUniformPatternHasNoComponents(t *testing.T) {
	if len(Table[0]) != 0 {
		t.Fatalf("pattern 0 (all outside) should have no sign-changing edges, got %v", Table[0])
	}
	if len(Table[255]) != 0 {
		t.Fatalf("pattern 255 (all inside) should have no sign-changing edges, got %v", Table[255])
	}
}

func TestSingleCornerInsideIsOneComponent(t *testing.T) {
	pattern := bitset.FromBits(0)
	cfgs := Table[pattern.AsU32()]
	if len(cfgs) != 1 {
		t.Fatalf("expected 1 component, got %d: %v", len(cfgs), cfgs)
	}
	want := bitset.FromBits(int(topology.A), int(topology.B), int(topology.C))
	if cfgs[0] != want {
		t.Fatalf("got %v, want %v", cfgs[0], want)
	}
}
