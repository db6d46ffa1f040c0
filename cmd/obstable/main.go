package main

import (
	"context"
	"flag"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"

	"github.com/obskit/obstable/pkg/collective"
	"github.com/obskit/obstable/pkg/obsdata/memstore"
	"github.com/obskit/obstable/pkg/printer"
)

// A scenario file bundles a logical dataset with the table request to run
// against it.
type scenario struct {
	Dataset memstore.Dataset `yaml:"dataset"`
	Request printer.Request  `yaml:"request"`
}

func main() {
	var (
		scenarioPath string
		ranks        int
		verbose      bool
		cfg          printer.Config
	)
	flag.StringVar(&scenarioPath, "scenario", "", "Path to the YAML scenario file.")
	flag.IntVar(&ranks, "ranks", 1, "Number of cooperating processes to simulate.")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging.")
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	logLevel := level.AllowInfo()
	if verbose {
		logLevel = level.AllowDebug()
	}
	logger := level.NewFilter(log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr)), logLevel)

	if scenarioPath == "" {
		level.Error(logger).Log("msg", "no scenario file given; use -scenario")
		os.Exit(1)
	}
	if ranks < 1 {
		level.Error(logger).Log("msg", "number of ranks must be at least 1", "ranks", ranks)
		os.Exit(1)
	}

	raw, err := os.ReadFile(scenarioPath)
	if err != nil {
		level.Error(logger).Log("msg", "reading scenario file", "err", err)
		os.Exit(1)
	}
	var sc scenario
	if err := yaml.UnmarshalStrict(raw, &sc); err != nil {
		level.Error(logger).Log("msg", "parsing scenario file", "err", err)
		os.Exit(1)
	}
	if err := sc.Dataset.Validate(); err != nil {
		level.Error(logger).Log("msg", "invalid dataset", "err", err)
		os.Exit(1)
	}

	// The simulated ranks share one stdout, so more than one rank forces
	// the rank 0 output restriction.
	if ranks > 1 {
		cfg.PrintRank0 = true
	}

	group := collective.NewGroup(ranks, prometheus.DefaultRegisterer)
	out := log.NewSyncWriter(os.Stdout)

	g, ctx := errgroup.WithContext(context.Background())
	for rank := 0; rank < ranks; rank++ {
		p := printer.New(sc.Dataset.Shard(rank, ranks), group.Member(rank), cfg,
			log.With(logger, "rank", rank), out)
		g.Go(func() error {
			return p.Render(ctx, sc.Request)
		})
	}
	if err := g.Wait(); err != nil {
		level.Error(logger).Log("msg", "rendering failed", "err", err)
		os.Exit(1)
	}
}
