package annotate

import (
	"path/filepath"
	"testing"

	"github.com/oxygen311/PanACoTA/internal/genome"
)

func TestProdigalArgs(t *testing.T) {
	req := Request{
		Genome: genome.Record{ID: "g.fasta", AnnotPath: "/db/g.fasta"},
		Name:   "ESCO.0417.1",
	}
	scratch := filepath.Join("tmp", "ESCO.0417.1-prodigalRes")

	p := &prodigalCmd{opts: Options{Threads: 1}}
	args := p.prodigalArgs(req, scratch)

	want := []string{
		"-i", "/db/g.fasta",
		"-d", filepath.Join(scratch, "ESCO.0417.1.ffn"),
		"-a", filepath.Join(scratch, "ESCO.0417.1.faa"),
		"-f", "gff",
		"-o", filepath.Join(scratch, "ESCO.0417.1.gff"),
		"-q",
	}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

// -p meta is appended exactly when the small option is set
func TestProdigalArgs_small(t *testing.T) {
	req := Request{Genome: genome.Record{AnnotPath: "g.fna"}, Name: "n"}

	without := (&prodigalCmd{opts: Options{}}).prodigalArgs(req, "s")
	with := (&prodigalCmd{opts: Options{Small: true}}).prodigalArgs(req, "s")

	if len(with) != len(without)+2 {
		t.Fatalf("small should add 2 args: %v vs %v", with, without)
	}
	if with[len(with)-2] != "-p" || with[len(with)-1] != "meta" {
		t.Errorf("small args end with %v, want -p meta", with[len(with)-2:])
	}
}
