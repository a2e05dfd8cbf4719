// Package annotate wraps the two external gene-annotation engines behind one
// invocation interface and normalizes their output layouts into a single
// per-genome directory structure.
package annotate

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/oxygen311/PanACoTA/internal/genome"
)

// Kind selects one of the two annotation engines.
type Kind int

const (
	// Prokka runs full functional annotation
	Prokka Kind = iota

	// Prodigal runs syntactical annotation only
	Prodigal
)

func (k Kind) String() string {
	if k == Prodigal {
		return "prodigal"
	}
	return "prokka"
}

// ErrUnsupportedOption is returned when an engine-specific option is
// requested for an engine that does not honor it.
var ErrUnsupportedOption = errors.New("unsupported backend option")

// Options are the engine tuning flags shared by one whole run.
type Options struct {
	// Small switches prodigal to its metagenome procedure, needed for
	// sequences under ~20kb. Prodigal only.
	Small bool

	// Threads is the CPU count passed to engines that accept one
	Threads int
}

// Validate rejects backend/option mismatches before any genome is processed.
func (o Options) Validate(k Kind) error {
	if o.Small && k != Prodigal {
		return fmt.Errorf("%w: --small is only honored by prodigal, not %s", ErrUnsupportedOption, k)
	}
	return nil
}

// Request is one genome's annotation invocation.
type Request struct {
	// Genome is the accepted record; its AnnotPath is the engine input
	Genome genome.Record

	// Name is the systematic name assigned to the genome
	Name string

	// TmpDir receives the engine scratch directory and log file
	TmpDir string

	// ResDir is the results root; the canonical output directory is
	// created under it, keyed by Name
	ResDir string
}

// Status of one genome's annotation.
type Status int

const (
	StatusOK Status = iota
	StatusFailed
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCancelled:
		return "cancelled"
	}
	return "failed"
}

// Result is the per-genome outcome handed back to the coordinator. A failed
// engine run is a value here, never an error that crosses the batch.
type Result struct {
	Name     string
	ID       string
	Backend  string
	Dir      string
	Status   Status
	Reason   string
	Warnings []string
}

// Annotator runs one engine over one genome.
type Annotator interface {
	Annotate(ctx context.Context, req Request) Result
}

// New returns the Annotator for the requested engine, failing fast on
// backend/option mismatches.
func New(k Kind, opts Options) (Annotator, error) {
	if err := opts.Validate(k); err != nil {
		return nil, err
	}
	if opts.Threads < 1 {
		opts.Threads = 1
	}
	if k == Prodigal {
		return &prodigalCmd{opts: opts}, nil
	}
	return &prokkaCmd{opts: opts}, nil
}

// SplitBudget divides the thread budget between concurrent engine runs and
// the CPUs each run may use, so the pool never oversubscribes the machine.
// Prodigal is single-threaded, every thread funds one more worker; prokka
// gets the whole budget when it is small, two CPUs per run otherwise.
func SplitBudget(k Kind, threads int) (workers, cpus int) {
	if threads < 1 {
		threads = runtime.NumCPU()
	}
	if k == Prodigal {
		return threads, 1
	}
	if threads <= 3 {
		return 1, threads
	}
	return threads / 2, 2
}

// Check verifies the engine binary is installed and on the PATH.
func Check(k Kind) error {
	if _, err := exec.LookPath(k.String()); err != nil {
		return fmt.Errorf("%s is not installed or not on the PATH, cannot annotate genomes", k)
	}
	return nil
}

// engineWarnings pulls warning lines out of an engine's combined output so
// they can be surfaced in the run summary.
func engineWarnings(output []byte) (warnings []string) {
	for _, line := range strings.Split(string(output), "\n") {
		if strings.Contains(strings.ToLower(line), "warning") {
			warnings = append(warnings, strings.TrimSpace(line))
		}
	}
	return
}
