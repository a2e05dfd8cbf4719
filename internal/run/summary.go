package run

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/oxygen311/PanACoTA/internal/annotate"
	"github.com/oxygen311/PanACoTA/internal/genome"
)

// Outcome is one annotated genome's entry in the run summary.
type Outcome struct {
	// OrigName is the identifier from the list file
	OrigName string `json:"orig_name"`

	// Backend that produced the annotation
	Backend string `json:"backend"`

	// Status is ok or failed
	Status string `json:"status"`

	// Reason is set for failed genomes
	Reason string `json:"reason,omitempty"`

	// Dir is the canonical output directory for successful genomes
	Dir string `json:"dir,omitempty"`

	// Warnings reported by the engine
	Warnings []string `json:"warnings,omitempty"`
}

// Rejection is one quality-gate rejection in the run summary.
type Rejection struct {
	ID      string `json:"orig_name"`
	Reason  string `json:"reason"`
	Size    int    `json:"gsize"`
	Contigs int    `json:"nb_conts"`
	L90     int    `json:"l90"`
}

// Summary aggregates every per-genome outcome of one run. It is the sole
// object handed to downstream pipeline stages, and is persisted next to the
// per-genome directories in the results directory. Genomes is keyed by
// systematic name so aggregation is independent of worker completion order.
type Summary struct {
	Status     string             `json:"status"`
	Time       string             `json:"time"`
	Candidates int                `json:"candidates"`
	Accepted   int                `json:"accepted"`
	Annotated  int                `json:"annotated"`
	Failed     int                `json:"failed"`
	Rejected   int                `json:"rejected"`
	Genomes    map[string]Outcome `json:"genomes"`
	Rejections []Rejection        `json:"rejections"`
}

func newSummary(candidates int, rejected []Rejection) *Summary {
	if rejected == nil {
		rejected = []Rejection{}
	}
	return &Summary{
		Time:       time.Now().Format("2006/01/02 15:04:05"),
		Candidates: candidates,
		Rejected:   len(rejected),
		Genomes:    map[string]Outcome{},
		Rejections: rejected,
	}
}

func outcomeOf(res annotate.Result) Outcome {
	return Outcome{
		OrigName: res.ID,
		Backend:  res.Backend,
		Status:   res.Status.String(),
		Reason:   res.Reason,
		Dir:      res.Dir,
		Warnings: res.Warnings,
	}
}

// write persists the summary as indented JSON.
func (s *Summary) write(path string) error {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize the run summary: %v", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write the run summary: %v", err)
	}
	return nil
}

// removePreviousResults deletes the per-genome directories recorded in an
// earlier run's summary, so a --force re-run never leaves annotations behind
// under systematic names the new run no longer assigns.
func removePreviousResults(summaryPath, resDir string) error {
	raw, err := os.ReadFile(summaryPath)
	if err != nil {
		return fmt.Errorf("failed to read the previous run summary at %s: %v", summaryPath, err)
	}
	var prev Summary
	if err := json.Unmarshal(raw, &prev); err != nil {
		return fmt.Errorf("failed to parse the previous run summary at %s: %v", summaryPath, err)
	}
	for name := range prev.Genomes {
		if err := os.RemoveAll(filepath.Join(resDir, name)); err != nil {
			return fmt.Errorf("failed to remove the previous results for %s: %v", name, err)
		}
	}
	return nil
}

// writeLstInfo writes the accepted genomes in the gembase LSTINFO format:
// one line per genome with its systematic name, original name, size, contig
// count and L90, in assignment order.
func writeLstInfo(accepted []genome.Record, names map[string]string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	fmt.Fprintln(f, "gembase_name\torig_name\tgsize\tnb_conts\tL90")
	for _, r := range accepted {
		m := genome.CalcMetrics(r)
		fmt.Fprintf(f, "%s\t%s\t%d\t%d\t%d\n", names[r.ID], r.ID, r.Size, m.ContigCount, m.L90)
	}
	return f.Close()
}

// writeDiscarded writes the rejected genomes with their metrics and the
// rejection reason, sorted by identifier for stable output.
func writeDiscarded(rejected []Rejection, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	sorted := make([]Rejection, len(rejected))
	copy(sorted, rejected)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	fmt.Fprintln(f, "orig_name\tgsize\tnb_conts\tL90\treason")
	for _, r := range sorted {
		fmt.Fprintf(f, "%s\t%d\t%d\t%d\t%s\n", r.ID, r.Size, r.Contigs, r.L90, r.Reason)
	}
	return f.Close()
}
