package genome

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Read loads the list file and resolves each named genome under dbDir,
// returning one Record per list line in file order. A genome whose sequence
// file is missing or unparsable is returned with Unreadable set rather than
// aborting the load; a repeated identifier is returned with Duplicate set.
// The only fatal outcome is an unreadable list file.
func Read(listFile, dbDir string) ([]Record, error) {
	f, err := os.Open(listFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read the genome list at %s: %v", listFile, err)
	}
	defer f.Close()

	var records []Record
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// lines may carry "file(s) :: name.date" annotations from the
		// gembase list format; only the first filename matters here
		if i := strings.Index(line, "::"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}
		id := strings.Fields(line)[0]

		rec := Record{
			ID:   id,
			Path: filepath.Join(dbDir, id),
		}
		rec.AnnotPath = rec.Path

		if seen[id] {
			rec.Duplicate = true
			records = append(records, rec)
			continue
		}
		seen[id] = true

		contigs, size, err := scanContigs(rec.Path)
		if err != nil {
			rec.Unreadable = true
		} else {
			rec.Contigs = contigs
			rec.Size = size
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed while reading %s: %v", listFile, err)
	}

	return records, nil
}

// scanContigs single-passes a FASTA file and returns the contig lengths in
// file order plus the total assembly length. Sequences themselves are not
// retained.
func scanContigs(path string) (contigs []int, size int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	current := -1 // no contig open until the first header
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			contigs = append(contigs, 0)
			current = len(contigs) - 1
			continue
		}
		if current < 0 {
			return nil, 0, fmt.Errorf("%s is not a FASTA file: sequence before the first header", path)
		}
		contigs[current] += len(line)
		size += len(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}

	return contigs, size, nil
}
