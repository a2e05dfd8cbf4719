package genome

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Split cuts each contig of the record at every stretch of at least cutn
// consecutive 'N' bases, writes the re-split sequence under tmpDir and
// returns a copy of the record with its contig metrics and AnnotPath updated
// to the new file. With cutn <= 0 the record is returned untouched.
func Split(r Record, cutn int, tmpDir string) (Record, error) {
	if cutn <= 0 || r.Unreadable || r.Duplicate {
		return r, nil
	}

	in, err := os.Open(r.Path)
	if err != nil {
		return r, fmt.Errorf("failed to re-open %s: %v", r.Path, err)
	}
	defer in.Close()

	outPath := filepath.Join(tmpDir, fmt.Sprintf("%s-split%dN.fna", r.ID, cutn))
	out, err := os.Create(outPath)
	if err != nil {
		return r, fmt.Errorf("failed to create the split sequence at %s: %v", outPath, err)
	}
	defer out.Close()

	stretch := regexp.MustCompile(fmt.Sprintf("[Nn]{%d,}", cutn))
	w := bufio.NewWriter(out)

	split := Record{
		ID:        r.ID,
		Path:      r.Path,
		AnnotPath: outPath,
	}

	var header string
	var seq strings.Builder
	flush := func() error {
		if header == "" {
			return nil
		}
		pieces := stretch.Split(seq.String(), -1)
		n := 0
		for _, piece := range pieces {
			if piece == "" {
				continue
			}
			n++
			if _, err := fmt.Fprintf(w, "%s_%d\n%s\n", header, n, piece); err != nil {
				return err
			}
			split.Contigs = append(split.Contigs, len(piece))
			split.Size += len(piece)
		}
		seq.Reset()
		return nil
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if err := flush(); err != nil {
				return r, err
			}
			header = line
			continue
		}
		seq.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return r, err
	}
	if err := flush(); err != nil {
		return r, err
	}
	if err := w.Flush(); err != nil {
		return r, err
	}

	return split, nil
}
