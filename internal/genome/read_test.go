package genome

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead(t *testing.T) {
	db := t.TempDir()
	writeFile(t, db, "genome1.fasta", ">c1\nACGTACGT\nACGT\n>c2\nAC\n")
	writeFile(t, db, "genome3.fasta", ">only\nACGTT\n")

	list := writeFile(t, t.TempDir(), "genomes.lst",
		"genome1.fasta\n"+
			"\n"+
			"# a comment\n"+
			"genome2.fasta\n"+
			"genome3.fasta extra.fasta :: name.0417\n"+
			"genome1.fasta\n")

	records, err := Read(list, db)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}

	g1 := records[0]
	if g1.ID != "genome1.fasta" || g1.Size != 14 {
		t.Errorf("genome1: got ID %q size %d, want genome1.fasta size 14", g1.ID, g1.Size)
	}
	if len(g1.Contigs) != 2 || g1.Contigs[0] != 12 || g1.Contigs[1] != 2 {
		t.Errorf("genome1 contigs = %v, want [12 2]", g1.Contigs)
	}
	if g1.AnnotPath != g1.Path {
		t.Errorf("AnnotPath should default to Path")
	}

	// a missing sequence file is a per-genome flag, not a load failure
	if g2 := records[1]; !g2.Unreadable {
		t.Errorf("genome2 should be unreadable, got %+v", g2)
	}

	// "::" annotations after the filename are ignored
	if g3 := records[2]; g3.ID != "genome3.fasta" || g3.Size != 5 {
		t.Errorf("genome3: got ID %q size %d, want genome3.fasta size 5", g3.ID, g3.Size)
	}

	// the second occurrence of an identifier is flagged, the first is not
	if dup := records[3]; !dup.Duplicate {
		t.Errorf("repeated genome1 should be flagged duplicate")
	}
	if records[0].Duplicate {
		t.Errorf("first genome1 occurrence must not be flagged duplicate")
	}
}

func TestRead_missingList(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.lst"), t.TempDir()); err == nil {
		t.Fatal("want an error for an unreadable list file")
	}
}

func TestRead_notFasta(t *testing.T) {
	db := t.TempDir()
	writeFile(t, db, "junk.fasta", "this is not a fasta file\n")
	list := writeFile(t, t.TempDir(), "genomes.lst", "junk.fasta\n")

	records, err := Read(list, db)
	if err != nil {
		t.Fatal(err)
	}
	if !records[0].Unreadable {
		t.Errorf("non-FASTA content should mark the record unreadable")
	}
}

func TestRead_freshSequenceEachCall(t *testing.T) {
	db := t.TempDir()
	writeFile(t, db, "g.fasta", ">c\nACGT\n")
	list := writeFile(t, t.TempDir(), "genomes.lst", "g.fasta\n")

	first, err := Read(list, db)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, db, "g.fasta", ">c\nACGTACGT\n")
	second, err := Read(list, db)
	if err != nil {
		t.Fatal(err)
	}

	if first[0].Size != 4 || second[0].Size != 8 {
		t.Errorf("re-invoking Read must re-read from disk: got %d then %d", first[0].Size, second[0].Size)
	}
}
