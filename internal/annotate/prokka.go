package annotate

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
)

// prokkaCmd invokes the prokka engine for one genome at a time.
type prokkaCmd struct {
	opts Options
}

// Annotate runs prokka over the request's genome. The engine writes into a
// scratch directory under TmpDir which is removed on every exit path; only
// the normalized canonical directory under ResDir survives.
func (p *prokkaCmd) Annotate(ctx context.Context, req Request) Result {
	res := Result{
		Name:    req.Name,
		ID:      req.Genome.ID,
		Backend: Prokka.String(),
	}

	scratch := filepath.Join(req.TmpDir, req.Name+"-prokkaRes")
	defer os.RemoveAll(scratch)

	args := []string{
		"--outdir", scratch,
		"--cpus", strconv.Itoa(p.opts.Threads),
		"--prefix", req.Name,
		"--centre", "prokka",
		req.Genome.AnnotPath,
	}

	output, err := runEngine(ctx, "prokka", args, filepath.Join(req.TmpDir, req.Name+"-prokka.log"))
	res.Warnings = engineWarnings(output)
	if ctx.Err() != nil {
		res.Status = StatusCancelled
		res.Reason = "run cancelled"
		return res
	}
	if err != nil {
		res.Status = StatusFailed
		res.Reason = "prokka exited with an error, see its log in the tmp directory"
		return res
	}

	dir, err := normalize(scratch, engineLayout{
		genes:    req.Name + ".ffn",
		proteins: req.Name + ".faa",
		gff:      req.Name + ".gff",
	}, req)
	if err != nil {
		res.Status = StatusFailed
		res.Reason = err.Error()
		return res
	}

	res.Dir = dir
	return res
}
