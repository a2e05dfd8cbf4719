package genome

import "testing"

// two contigs cover exactly 90% of the assembly
func TestCalcMetrics_l90Exact(t *testing.T) {
	r := Record{Contigs: []int{3, 800, 100, 90, 7}, Size: 1000}

	m := CalcMetrics(r)

	if m.L90 != 2 {
		t.Errorf("L90 = %d, want 2", m.L90)
	}
	if m.ContigCount != 5 {
		t.Errorf("ContigCount = %d, want 5", m.ContigCount)
	}
}

// two contigs stay under 90%, three go over -> L90 = 3
func TestCalcMetrics_l90More(t *testing.T) {
	r := Record{Contigs: []int{3, 800, 90, 90, 17}, Size: 1000}

	if m := CalcMetrics(r); m.L90 != 3 {
		t.Errorf("L90 = %d, want 3", m.L90)
	}
}

func TestCalcMetrics_singleContig(t *testing.T) {
	m := CalcMetrics(Record{Contigs: []int{500}, Size: 500})

	if m.L90 != 1 || m.ContigCount != 1 {
		t.Errorf("got %+v, want L90 = 1, ContigCount = 1", m)
	}
}

// a headered genome with no bases keeps its contig count in the metrics, only
// the L90 has nothing to measure
func TestCalcMetrics_emptyGenome(t *testing.T) {
	m := CalcMetrics(Record{Contigs: []int{0, 0}, Size: 0})

	if m.ContigCount != 2 {
		t.Errorf("ContigCount = %d, want 2", m.ContigCount)
	}
	if m.L90 != 0 {
		t.Errorf("L90 = %d, want 0", m.L90)
	}
}

func TestEvaluate(t *testing.T) {
	// 5 contigs, L90 = 2
	good := Record{ID: "g", Contigs: []int{3, 800, 100, 90, 7}, Size: 1000}

	tests := []struct {
		name       string
		record     Record
		maxContigs int
		maxL90     int
		accepted   bool
		reason     Reason
	}{
		{"under both thresholds", good, 10, 3, true, ""},
		{"contig count at threshold is kept", good, 5, 3, true, ""},
		{"l90 at threshold is kept", good, 10, 2, true, ""},
		{"too many contigs", good, 4, 3, false, TooManyContigs},
		{"l90 too high", good, 10, 1, false, L90TooHigh},
		{"empty sequence", Record{ID: "e"}, 10, 3, false, EmptySequence},
		{"unreadable", Record{ID: "u", Unreadable: true}, 10, 3, false, Unreadable},
		{"duplicate identifier", Record{ID: "d", Duplicate: true, Contigs: []int{100}, Size: 100}, 10, 3, false, DuplicateIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.record, tt.maxContigs, tt.maxL90)
			if d.Accepted != tt.accepted {
				t.Errorf("Accepted = %v, want %v", d.Accepted, tt.accepted)
			}
			if d.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", d.Reason, tt.reason)
			}
		})
	}
}

// shrinking maxL90 below a genome's computed L90 flips its decision
func TestEvaluate_l90Monotonic(t *testing.T) {
	r := Record{ID: "g", Contigs: []int{3, 800, 90, 90, 17}, Size: 1000} // L90 = 3

	if d := Evaluate(r, 10, 3); !d.Accepted {
		t.Fatalf("rejected at maxL90 = 3: %q", d.Reason)
	}
	if d := Evaluate(r, 10, 2); d.Accepted || d.Reason != L90TooHigh {
		t.Fatalf("want l90-too-high at maxL90 = 2, got %+v", d)
	}
}
