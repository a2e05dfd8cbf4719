package annotate

import (
	"context"
	"os"
	"path/filepath"
)

// prodigalCmd invokes the prodigal engine for one genome at a time.
type prodigalCmd struct {
	opts Options
}

// prodigalArgs builds the engine argv for one request. Split out so the
// argument translation is testable without a prodigal install.
func (p *prodigalCmd) prodigalArgs(req Request, scratch string) []string {
	args := []string{
		"-i", req.Genome.AnnotPath,
		"-d", filepath.Join(scratch, req.Name+".ffn"),
		"-a", filepath.Join(scratch, req.Name+".faa"),
		"-f", "gff",
		"-o", filepath.Join(scratch, req.Name+".gff"),
		"-q",
	}
	if p.opts.Small {
		// sequences under ~20kb need the metagenome procedure
		args = append(args, "-p", "meta")
	}
	return args
}

// Annotate runs prodigal over the request's genome. Scratch layout and
// cleanup mirror the prokka adapter so the coordinator never needs to know
// which engine ran.
func (p *prodigalCmd) Annotate(ctx context.Context, req Request) Result {
	res := Result{
		Name:    req.Name,
		ID:      req.Genome.ID,
		Backend: Prodigal.String(),
	}

	scratch := filepath.Join(req.TmpDir, req.Name+"-prodigalRes")
	if err := os.MkdirAll(scratch, 0755); err != nil {
		res.Status = StatusFailed
		res.Reason = err.Error()
		return res
	}
	defer os.RemoveAll(scratch)

	output, err := runEngine(ctx, "prodigal", p.prodigalArgs(req, scratch),
		filepath.Join(req.TmpDir, req.Name+"-prodigal.log"))
	res.Warnings = engineWarnings(output)
	if ctx.Err() != nil {
		res.Status = StatusCancelled
		res.Reason = "run cancelled"
		return res
	}
	if err != nil {
		res.Status = StatusFailed
		res.Reason = "prodigal exited with an error, see its log in the tmp directory"
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
