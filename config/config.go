// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"log"
	"os"
	"regexp"

	"github.com/spf13/viper"
)

// four alphanumeric characters, the gembase convention for both the species
// prefix (e.g. ESCO) and the date (MMYY)
var fourAlnum = regexp.MustCompile(`^[A-Za-z0-9]{4}$`)

// PathConfig holds the input/output locations of one annotate run
type PathConfig struct {
	// the folder containing all multi-fasta genome files
	DB string `mapstructure:"db"`

	// the folder where results must be saved
	Res string `mapstructure:"res"`

	// the genome list file, one identifier per line
	List string `mapstructure:"list"`

	// where temporary files (split sequences, engine scratch dirs and
	// logs) are saved; defaults to <res>/tmp_files
	Tmp string `mapstructure:"tmp"`
}

// FilterConfig holds the assembly-quality gates
type FilterConfig struct {
	// the maximum acceptable L90 (inclusive)
	MaxL90 int `mapstructure:"l90"`

	// the maximum acceptable number of contigs (inclusive)
	MaxContigs int `mapstructure:"nbcont"`

	// split contigs at each stretch of at least this many 'N'; 0 disables
	CutN int `mapstructure:"cutn"`
}

// NamingConfig holds the systematic-name settings
type NamingConfig struct {
	// the species/project prefix, 4 alphanumeric characters
	Prefix string `mapstructure:"name"`

	// optional MMYY date component for the names
	Date string `mapstructure:"date"`
}

// Config is the root-level settings struct and is a mix of defaults and
// command line arguments
type Config struct {
	Paths  PathConfig   `mapstructure:",squash"`
	Filter FilterConfig `mapstructure:",squash"`
	Naming NamingConfig `mapstructure:",squash"`

	// annotate with prodigal instead of prokka
	Prodigal bool `mapstructure:"prodigal"`

	// use prodigal's metagenome procedure for small sequences
	Small bool `mapstructure:"small"`

	// size of the annotation worker pool; 0 means one per CPU core
	Threads int `mapstructure:"threads"`

	// overwrite results of a previous run for the same list
	Force bool `mapstructure:"force"`

	// stop after quality control, do not annotate
	QCOnly bool `mapstructure:"qc-only"`

	// no progress bar, no console chatter
	Quiet bool `mapstructure:"quiet"`
}

// New returns a new Config struct populated by Viper settings from the
// command line arguments
func New() *Config {
	var c Config

	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}

	return &c
}

// Validate performs the configuration-level checks that must pass before any
// per-genome work starts.
func (c *Config) Validate() error {
	if c.Paths.List == "" || c.Paths.DB == "" || c.Paths.Res == "" {
		return fmt.Errorf("the genome list (-l), genome directory (-d) and results directory (-r) are all required")
	}
	if _, err := os.Stat(c.Paths.List); err != nil {
		return fmt.Errorf("cannot read the genome list at %s: %v", c.Paths.List, err)
	}
	if info, err := os.Stat(c.Paths.DB); err != nil || !info.IsDir() {
		return fmt.Errorf("the genome directory %s does not exist", c.Paths.DB)
	}
	if !c.QCOnly && !fourAlnum.MatchString(c.Naming.Prefix) {
		return fmt.Errorf("the genome name prefix must be 4 alphanumeric characters, e.g. ESCO for Escherichia coli, got %q", c.Naming.Prefix)
	}
	if c.Naming.Date != "" && !fourAlnum.MatchString(c.Naming.Date) {
		return fmt.Errorf("the date must be 4 characters, usually MMYY, got %q", c.Naming.Date)
	}
	if c.Filter.MaxL90 < 1 {
		return fmt.Errorf("the maximum L90 (--l90) must be a positive number")
	}
	if c.Filter.MaxContigs < 1 || c.Filter.MaxContigs > 9999 {
		return fmt.Errorf("the maximum number of contigs (--nbcont) must be between 1 and 9999")
	}
	if c.Filter.CutN < 0 {
		return fmt.Errorf("the N-stretch length (--cutn) cannot be negative")
	}
	if c.Threads < 0 {
		return fmt.Errorf("the worker count (--threads) cannot be negative")
	}
	return nil
}
