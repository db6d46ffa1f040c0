package printer

import (
	"flag"

	"github.com/pkg/errors"
)

// Config is the configuration block governing the appearance of the printed
// table. The same Config must be supplied to every cooperating process; the
// collective call sequence is derived from it.
type Config struct {
	ColumnWidth    int    `yaml:"column_width"`
	MaxTextWidth   int    `yaml:"max_text_width"`
	FloatPrecision int    `yaml:"float_precision"`
	Scientific     bool   `yaml:"scientific_notation"`
	PrintRank0     bool   `yaml:"print_rank0_only"`
	SkipDerived    bool   `yaml:"skip_derived"`
	Message        string `yaml:"message"`
	Summary        bool   `yaml:"summary"`
}

// RegisterFlags registers the printer flags.
func (c *Config) RegisterFlags(f *flag.FlagSet) {
	c.RegisterFlagsWithPrefix("printer.", f)
}

// RegisterFlagsWithPrefix registers the printer flags with a prefix.
func (c *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.IntVar(&c.ColumnWidth, prefix+"column-width", 12, "Width of each value column in the printed table.")
	f.IntVar(&c.MaxTextWidth, prefix+"max-text-width", 120, "Maximum width of one printed table row.")
	f.IntVar(&c.FloatPrecision, prefix+"float-precision", 5, "Number of decimal places for floating point values.")
	f.BoolVar(&c.Scientific, prefix+"scientific-notation", false, "Print floating point values in scientific notation.")
	f.BoolVar(&c.PrintRank0, prefix+"print-rank0-only", false, "Restrict output to the rank 0 process.")
	f.BoolVar(&c.SkipDerived, prefix+"skip-derived", false, "Exclude derived values when fetching variables.")
	f.StringVar(&c.Message, prefix+"message", "", "Optional message printed before the table.")
	f.BoolVar(&c.Summary, prefix+"summary", false, "Print a summary of the sample before the table.")
}

// Validate validates the printer settings.
func (c *Config) Validate() error {
	if c.ColumnWidth < 1 {
		return errors.Errorf("invalid column width %d", c.ColumnWidth)
	}
	if c.MaxTextWidth < 1 {
		return errors.Errorf("invalid maximum text width %d", c.MaxTextWidth)
	}
	if c.FloatPrecision < 0 {
		return errors.Errorf("invalid float precision %d", c.FloatPrecision)
	}
	return nil
}
