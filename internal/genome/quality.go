package genome

import "sort"

// CalcMetrics computes the contig count and L90 of a record. For an empty
// genome both metrics are zero.
func CalcMetrics(r Record) Metrics {
	m := Metrics{ContigCount: len(r.Contigs)}
	if r.Size == 0 {
		// nothing to cover, the count still describes the assembly
		return m
	}

	sorted := make([]int, len(r.Contigs))
	copy(sorted, r.Contigs)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	// L90: contigs by decreasing length until >= 90% of the assembly
	target := 0.9 * float64(r.Size)
	covered := 0
	for i, length := range sorted {
		covered += length
		if float64(covered) >= target {
			m.L90 = i + 1
			break
		}
	}

	return m
}

// Evaluate applies the quality gates to one genome. Thresholds are inclusive
// upper bounds: a genome sitting exactly at maxContigs or maxL90 is kept.
// Pure, no I/O beyond the already-loaded record.
func Evaluate(r Record, maxContigs, maxL90 int) Decision {
	if r.Duplicate {
		return Decision{Reason: DuplicateIdentifier}
	}
	if r.Unreadable {
		return Decision{Reason: Unreadable}
	}
	if r.Size == 0 {
		return Decision{Reason: EmptySequence}
	}

	m := CalcMetrics(r)
	if m.ContigCount > maxContigs {
		return Decision{Reason: TooManyContigs}
	}
	if m.L90 > maxL90 {
		return Decision{Reason: L90TooHigh}
	}

	return Decision{Accepted: true}
}
