// Package run drives the annotate stage: load the candidate genomes, apply
// the quality gates, assign systematic names, fan the accepted genomes out to
// the annotation engine and collect everything into one run summary.
package run

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/oxygen311/PanACoTA/internal/annotate"
	"github.com/oxygen311/PanACoTA/internal/genome"
	"gopkg.in/cheggaaa/pb.v1"
)

// ConfigError is a configuration-level failure: bad paths, unreadable list
// file, pre-existing results without --force. It aborts the run before any
// per-genome work; per-genome outcomes never produce one.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

// State of the coordinator. Transitions are strictly sequential for the
// batch as a whole.
type State int

const (
	Initialized State = iota
	Loading
	Filtering
	Naming
	Annotating
	Summarizing
	Done
	Cancelled
)

func (s State) String() string {
	return [...]string{
		"initialized", "loading", "filtering", "naming",
		"annotating", "summarizing", "done", "cancelled",
	}[s]
}

// Options carry one run's settings from the command line.
type Options struct {
	ListFile string
	DBDir    string
	ResDir   string
	TmpDir   string

	Prefix string
	Date   string

	MaxL90     int
	MaxContigs int
	CutN       int

	Threads int
	Force   bool
	QCOnly  bool
	Quiet   bool
}

// Coordinator owns everything created during one invocation of the stage.
// Nothing outlives Run except the on-disk artifacts and the returned Summary.
type Coordinator struct {
	opts      Options
	annotator annotate.Annotator
	state     State
}

// New builds a Coordinator over the injected engine adapter.
func New(opts Options, a annotate.Annotator) *Coordinator {
	if opts.Threads < 1 {
		opts.Threads = runtime.NumCPU()
	}
	if opts.TmpDir == "" {
		opts.TmpDir = filepath.Join(opts.ResDir, "tmp_files")
	}
	return &Coordinator{opts: opts, annotator: a}
}

// State reports the coordinator's current stage.
func (c *Coordinator) State() State {
	return c.state
}

// Run executes the whole stage. It returns a ConfigError before any
// per-genome work on bad configuration; per-genome rejections and engine
// failures are recorded in the Summary and never abort the batch. A
// cancelled context stops the in-flight engines, keeps completed results and
// yields a Summary with cancelled status.
func (c *Coordinator) Run(ctx context.Context) (*Summary, error) {
	opts := c.opts
	listBase := listBase(opts.ListFile)

	if info, err := os.Stat(opts.DBDir); err != nil || !info.IsDir() {
		return nil, &ConfigError{fmt.Sprintf("the genome directory %s does not exist", opts.DBDir)}
	}
	summaryPath := filepath.Join(opts.ResDir, "annotate-summary-"+listBase+".json")
	if _, err := os.Stat(summaryPath); err == nil {
		if !opts.Force {
			return nil, &ConfigError{fmt.Sprintf(
				"%s already holds results for %s, remove them or re-run with --force", opts.ResDir, listBase)}
		}
		// ordinals shift with the accepted set, so the previous run's
		// canonical dirs would survive under stale names
		if err := removePreviousResults(summaryPath, opts.ResDir); err != nil {
			return nil, &ConfigError{err.Error()}
		}
	}
	for _, dir := range []string{opts.ResDir, opts.TmpDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &ConfigError{fmt.Sprintf("failed to create %s: %v", dir, err)}
		}
	}

	// load candidates; only an unreadable list file is fatal
	c.state = Loading
	records, err := genome.Read(opts.ListFile, opts.DBDir)
	if err != nil {
		return nil, &ConfigError{err.Error()}
	}
	if len(records) == 0 {
		return nil, &ConfigError{fmt.Sprintf("no genome listed in %s", opts.ListFile)}
	}

	// quality gates, after re-splitting contigs at N stretches if asked
	c.state = Filtering
	var accepted []genome.Record
	var rejected []Rejection
	allMetrics := make([]genome.Metrics, 0, len(records))
	for i, r := range records {
		r, err := genome.Split(r, opts.CutN, opts.TmpDir)
		if err != nil {
			log.Printf("failed to split %s at N stretches: %v", r.ID, err)
			r.Unreadable = true
		}
		records[i] = r

		m := genome.CalcMetrics(r)
		allMetrics = append(allMetrics, m)

		if d := genome.Evaluate(r, opts.MaxContigs, opts.MaxL90); d.Accepted {
			accepted = append(accepted, r)
		} else {
			rejected = append(rejected, Rejection{
				ID:      r.ID,
				Reason:  string(d.Reason),
				Size:    r.Size,
				Contigs: m.ContigCount,
				L90:     m.L90,
			})
		}
	}

	if err := qcPlots(allMetrics, opts, listBase); err != nil {
		log.Printf("skipping QC plots: %v", err)
	}
	if err := writeDiscarded(rejected, filepath.Join(opts.ResDir, "discarded-"+listBase+".lst")); err != nil {
		return nil, &ConfigError{err.Error()}
	}

	summary := newSummary(len(records), rejected)
	summary.Accepted = len(accepted)

	if opts.QCOnly {
		c.state = Done
		summary.Status = Done.String()
		return summary, summary.write(summaryPath)
	}

	// names must all be fixed before any parallel annotation starts
	c.state = Naming
	names := genome.Assign(accepted, opts.Prefix, opts.Date)
	if err := writeLstInfo(accepted, names, filepath.Join(opts.ResDir, "LSTINFO-"+listBase+".lst")); err != nil {
		return nil, &ConfigError{err.Error()}
	}

	c.state = Annotating
	results := c.annotateAll(ctx, accepted, names)

	c.state = Summarizing
	for name, res := range results {
		summary.Genomes[name] = outcomeOf(res)
		switch res.Status {
		case annotate.StatusOK:
			summary.Annotated++
		case annotate.StatusFailed:
			summary.Failed++
		}
	}

	if ctx.Err() != nil {
		c.state = Cancelled
		summary.Status = Cancelled.String()
	} else {
		c.state = Done
		summary.Status = Done.String()
	}

	return summary, summary.write(summaryPath)
}

// annotateAll fans the accepted genomes out over a bounded worker pool. Each
// worker owns its genome's canonical output directory exclusively, so the
// only synchronization needed is around the shared results map.
func (c *Coordinator) annotateAll(
	ctx context.Context,
	accepted []genome.Record,
	names map[string]string,
) map[string]annotate.Result {
	jobs := make(chan genome.Record)

	var bar *pb.ProgressBar
	if !c.opts.Quiet {
		bar = pb.StartNew(len(accepted))
		defer bar.Finish()
	}

	results := make(map[string]annotate.Result, len(accepted))
	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(c.opts.Threads)
	for w := 0; w < c.opts.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case r, ok := <-jobs:
					if !ok {
						return
					}
					res := c.annotator.Annotate(ctx, annotate.Request{
						Genome: r,
						Name:   names[r.ID],
						TmpDir: c.opts.TmpDir,
						ResDir: c.opts.ResDir,
					})
					if res.Status == annotate.StatusCancelled {
						// drop any partially written canonical dir
						os.RemoveAll(filepath.Join(c.opts.ResDir, res.Name))
					}

					mu.Lock()
					if res.Status != annotate.StatusCancelled {
						results[res.Name] = res
					}
					mu.Unlock()

					if bar != nil {
						bar.Increment()
					}
				}
			}
		}()
	}

	for _, r := range accepted {
		select {
		case jobs <- r:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// listBase is the list file's name without directory or extension, used to
// tag the run's report files.
func listBase(listFile string) string {
	base := filepath.Base(listFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
