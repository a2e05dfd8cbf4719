// Package genome reads candidate genome assemblies, computes their
// assembly-quality metrics and assigns systematic names to the ones
// kept for annotation.
package genome

// Record is one candidate genome from the list file.
type Record struct {
	// ID is the genome identifier as written in the list file
	ID string

	// Path is the resolved sequence file under the genome directory
	Path string

	// AnnotPath is the sequence file handed to the annotation engine.
	// It differs from Path when contigs were re-split at N stretches.
	AnnotPath string

	// Size is the total assembly length in bases
	Size int

	// Contigs holds the contig lengths, in file order
	Contigs []int

	// Unreadable marks a genome whose sequence file was missing or unparsable
	Unreadable bool

	// Duplicate marks a genome whose identifier already appeared earlier
	// in the list file
	Duplicate bool
}

// Metrics are the assembly-quality measures used by the filtering step.
type Metrics struct {
	// ContigCount is the number of contigs in the assembly
	ContigCount int

	// L90 is the minimum number of contigs, taken by decreasing length,
	// whose cumulative length covers at least 90% of the assembly
	L90 int
}

// Reason is why a genome was rejected by the quality filter.
type Reason string

const (
	TooManyContigs      Reason = "too-many-contigs"
	L90TooHigh          Reason = "l90-too-high"
	EmptySequence       Reason = "empty-sequence"
	DuplicateIdentifier Reason = "duplicate-identifier"
	Unreadable          Reason = "unreadable"
)

// Decision is the quality filter's verdict on one genome.
type Decision struct {
	Accepted bool
	Reason   Reason
}
