package run

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"github.com/oxygen311/PanACoTA/internal/genome"
)

// qcPlots saves the L90 and contig-count distributions of all candidate
// genomes as PNG histograms under the results directory, with the applied
// threshold drawn as a vertical line. Plot failures are not fatal to the run.
func qcPlots(metrics []genome.Metrics, opts Options, listBase string) error {
	l90s := make(plotter.Values, 0, len(metrics))
	conts := make(plotter.Values, 0, len(metrics))
	for _, m := range metrics {
		l90s = append(l90s, float64(m.L90))
		conts = append(conts, float64(m.ContigCount))
	}

	plots := []struct {
		values    plotter.Values
		threshold int
		title     string
		file      string
	}{
		{l90s, opts.MaxL90, "L90", filepath.Join(opts.ResDir, "QC_L90-"+listBase+".png")},
		{conts, opts.MaxContigs, "Number of contigs", filepath.Join(opts.ResDir, "QC_nb-contigs-"+listBase+".png")},
	}

	for _, qc := range plots {
		p, err := plot.New()
		if err != nil {
			return fmt.Errorf("cannot create plot: %v", err)
		}
		p.Title.Text = qc.title + " distribution"
		p.X.Label.Text = qc.title
		p.Y.Label.Text = "number of genomes"

		h, err := plotter.NewHist(qc.values, 16)
		if err != nil {
			return fmt.Errorf("cannot create histogram: %v", err)
		}
		p.Add(h)

		// the applied threshold, as a vertical line
		limit, err := plotter.NewLine(plotter.XYs{
			{X: float64(qc.threshold), Y: 0},
			{X: float64(qc.threshold), Y: float64(len(qc.values))},
		})
		if err != nil {
			return fmt.Errorf("cannot create threshold line: %v", err)
		}
		p.Add(limit)

		if err := p.Save(6*vg.Inch, 4*vg.Inch, qc.file); err != nil {
			return fmt.Errorf("cannot save %s: %v", qc.file, err)
		}
	}

	return nil
}
