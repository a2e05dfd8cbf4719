package annotate

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// runEngine executes one engine invocation, writing its combined output to
// logPath. The context kills the external process when the run is cancelled.
func runEngine(ctx context.Context, bin string, args []string, logPath string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	output, err := cmd.CombinedOutput()

	// engine chatter goes to a per-genome log, not the console
	if werr := os.WriteFile(logPath, output, 0644); werr != nil && err == nil {
		err = werr
	}

	return output, err
}

// engineLayout names the engine's own output files inside its scratch
// directory. Both engines are coerced into the same canonical layout from it.
type engineLayout struct {
	genes    string
	proteins string
	gff      string
}

// normalize relocates an engine's outputs from its scratch directory into the
// canonical per-genome directory <ResDir>/<Name>/, named only by the
// systematic name so downstream stages never see which engine ran:
//
//	<Name>.ffn  gene sequences
//	<Name>.faa  protein sequences
//	<Name>.gff  annotations
//	<Name>.fna  replicons (the sequence the engine was given)
//
// An engine run that produced no gene calls (empty or missing protein file)
// is treated as failed. On any error the partial canonical directory is
// removed.
func normalize(scratch string, lay engineLayout, req Request) (string, error) {
	prt := filepath.Join(scratch, lay.proteins)
	if info, err := os.Stat(prt); err != nil || info.Size() == 0 {
		return "", fmt.Errorf("%s produced no gene calls for %s", filepath.Base(scratch), req.Genome.ID)
	}

	dest := filepath.Join(req.ResDir, req.Name)
	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", err
	}

	moves := map[string]string{
		filepath.Join(scratch, lay.genes): filepath.Join(dest, req.Name+".ffn"),
		prt:                               filepath.Join(dest, req.Name+".faa"),
		filepath.Join(scratch, lay.gff):   filepath.Join(dest, req.Name+".gff"),
		req.Genome.AnnotPath:              filepath.Join(dest, req.Name+".fna"),
	}
	for src, dst := range moves {
		if err := copyFile(src, dst); err != nil {
			os.RemoveAll(dest)
			return "", fmt.Errorf("failed to normalize %s output for %s: %v", filepath.Base(scratch), req.Genome.ID, err)
		}
	}

	return dest, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
