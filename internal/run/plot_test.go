package run

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/oxygen311/PanACoTA/internal/genome"
)

func TestQCPlots(t *testing.T) {
	opts := Options{ResDir: t.TempDir(), MaxL90: 3, MaxContigs: 10}
	metrics := []genome.Metrics{
		{ContigCount: 2, L90: 1},
		{ContigCount: 15, L90: 8},
		{ContigCount: 8, L90: 8},
	}

	if err := qcPlots(metrics, opts, "batch"); err != nil {
		t.Fatal(err)
	}

	// both histograms must come out at a readable size, not a few points
	for _, f := range []string{"QC_L90-batch.png", "QC_nb-contigs-batch.png"} {
		fh, err := os.Open(filepath.Join(opts.ResDir, f))
		if err != nil {
			t.Fatalf("missing %s: %v", f, err)
		}
		cfg, err := png.DecodeConfig(fh)
		fh.Close()
		if err != nil {
			t.Fatalf("%s is not a valid PNG: %v", f, err)
		}
		if cfg.Width < 300 || cfg.Height < 200 {
			t.Errorf("%s is %dx%d pixels, too small to read", f, cfg.Width, cfg.Height)
		}
	}
}
