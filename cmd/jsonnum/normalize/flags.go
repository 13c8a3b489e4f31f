package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

const (
	TypeKey    = "type"
	WorkersKey = "workers"
	MetricsKey = "metrics"
	VerboseKey = "verbose"
)

func AddFlags(flags *pflag.FlagSet) {
	flags.String(TypeKey, "number", "Type to decode each number as ("+strings.Join(typeNames(), ", ")+")")
	flags.Int(WorkersKey, 0, "Number of inputs processed concurrently (0 uses GOMAXPROCS)")
	flags.Bool(MetricsKey, false, "Print codec metrics to stderr when done")
	flags.BoolP(VerboseKey, "v", false, "Enable development logging")
}

type Config struct {
	Type    string
	Workers int
	Metrics bool
	Verbose bool
	// Files to read. Empty means stdin.
	Files []string
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	typ, err := flags.GetString(TypeKey)
	if err != nil {
		return nil, err
	}
	if _, ok := codecs[typ]; !ok {
		return nil, fmt.Errorf("unknown --%s %q, want one of %s", TypeKey, typ, strings.Join(typeNames(), ", "))
	}

	workers, err := flags.GetInt(WorkersKey)
	if err != nil {
		return nil, err
	}
	if workers < 0 {
		return nil, fmt.Errorf("--%s must not be negative", WorkersKey)
	}

	withMetrics, err := flags.GetBool(MetricsKey)
	if err != nil {
		return nil, err
	}

	verbose, err := flags.GetBool(VerboseKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		Type:    typ,
		Workers: workers,
		Metrics: withMetrics,
		Verbose: verbose,
		Files:   flags.Args(),
	}, nil
}

func typeNames() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
