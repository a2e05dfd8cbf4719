package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/oxygen311/PanACoTA/config"
	"github.com/oxygen311/PanACoTA/internal/annotate"
	"github.com/oxygen311/PanACoTA/internal/run"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// annotateCmd quality-controls a batch of draft assemblies and annotates the
// kept genomes with prokka or prodigal.
var annotateCmd = &cobra.Command{
	Use:                        "annotate",
	Run:                        runAnnotate,
	Short:                      "Quality-control and annotate a batch of genome assemblies",
	SuggestionsMinimumDistance: 3,
}

// set flags
func init() {
	annotateCmd.Flags().StringP("db", "d", "", "folder containing all multi-fasta genome files")
	annotateCmd.Flags().StringP("res", "r", "", "folder where annotated genomes must be saved")
	annotateCmd.Flags().StringP("list", "l", "", "genome list file, one identifier per line")
	annotateCmd.Flags().StringP("name", "n", "", "species/project prefix for systematic names (4 alphanumeric characters)")
	annotateCmd.Flags().Int("l90", 100, "maximum acceptable L90 to keep a genome")
	annotateCmd.Flags().Int("nbcont", 999, "maximum acceptable number of contigs to keep a genome")
	annotateCmd.Flags().Bool("prodigal", false, "annotate with prodigal (syntactical only) instead of prokka")
	annotateCmd.Flags().Bool("small", false, "use prodigal's metagenome procedure for sequences under 20kb (prodigal only)")
	annotateCmd.Flags().Int("cutn", 5, "split contigs at each stretch of at least this many 'N' (0 to disable)")
	annotateCmd.Flags().String("date", "", "date component (MMYY) for systematic names")
	annotateCmd.Flags().String("tmp", "", "folder for temporary files (default <res>/tmp_files)")
	annotateCmd.Flags().IntP("threads", "t", 0, "size of the annotation worker pool (default one per CPU core)")
	annotateCmd.Flags().BoolP("force", "F", false, "overwrite results of a previous run for the same list")
	annotateCmd.Flags().BoolP("qc-only", "Q", false, "only run quality control, do not annotate")
	annotateCmd.Flags().BoolP("quiet", "q", false, "do not display progress on the console")

	annotateCmd.MarkFlagRequired("db")
	annotateCmd.MarkFlagRequired("res")
	annotateCmd.MarkFlagRequired("list")

	viper.BindPFlags(annotateCmd.Flags())

	RootCmd.AddCommand(annotateCmd)
}

// runAnnotate wires the command line settings into a run coordinator. Bad
// configuration or a backend/option mismatch aborts here, before any genome
// work; individual genome rejections and failures never do.
func runAnnotate(cmd *cobra.Command, args []string) {
	conf := config.New()
	if err := conf.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	kind := annotate.Prokka
	if conf.Prodigal {
		kind = annotate.Prodigal
	}

	// the thread budget funds the worker pool and the engines' own CPUs
	workers, engineCPUs := annotate.SplitBudget(kind, conf.Threads)
	annotator, err := annotate.New(kind, annotate.Options{
		Small:   conf.Small,
		Threads: engineCPUs,
	})
	if err != nil {
		log.Fatalf("%v", err)
	}
	if !conf.QCOnly {
		if err := annotate.Check(kind); err != nil {
			log.Fatalf("%v", err)
		}
	}

	// a user interrupt cancels in-flight engine runs but keeps what finished
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coord := run.New(run.Options{
		ListFile:   conf.Paths.List,
		DBDir:      conf.Paths.DB,
		ResDir:     conf.Paths.Res,
		TmpDir:     conf.Paths.Tmp,
		Prefix:     conf.Naming.Prefix,
		Date:       conf.Naming.Date,
		MaxL90:     conf.Filter.MaxL90,
		MaxContigs: conf.Filter.MaxContigs,
		CutN:       conf.Filter.CutN,
		Threads:    workers,
		Force:      conf.Force,
		QCOnly:     conf.QCOnly,
		Quiet:      conf.Quiet,
	}, annotator)

	summary, err := coord.Run(ctx)
	if err != nil {
		log.Fatalf("%v", err)
	}

	log.Printf(
		"annotate done: %d candidates, %d accepted, %d annotated, %d failed, %d rejected",
		summary.Candidates, summary.Accepted, summary.Annotated, summary.Failed, summary.Rejected,
	)
	if summary.Status == run.Cancelled.String() {
		log.Fatalf("run cancelled before all genomes were annotated")
	}
}
