// Copyright Project GoHPC Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/qcserestipy/integrate/pkg/bench"
	"github.com/qcserestipy/integrate/pkg/host"
	"github.com/qcserestipy/integrate/pkg/integrate"
)

func init() {
	formatter := &logrus.TextFormatter{}
	formatter.FullTimestamp = true
	formatter.TimestampFormat = time.RFC3339
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetFormatter(formatter)
}

type config struct {
	N        int
	A        float64
	B        float64
	Workers  int
	Strategy integrate.Strategy
	Tasks    int
	Sweep    bool
	Verbose  bool
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	var strategy string

	fs := flag.NewFlagSet("integrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.N, "n", 1_000_000_000, "Number of midpoint samples (largest size with -sweep)")
	fs.Float64Var(&cfg.A, "a", 0.0, "Lower integration bound")
	fs.Float64Var(&cfg.B, "b", 1.0, "Upper integration bound")
	fs.IntVar(&cfg.Workers, "workers", host.Available(), "Number of parallel workers")
	fs.StringVar(&strategy, "strategy", integrate.StrategyPool.String(), "Reduction strategy: pool, errgroup, mutex or interleaved")
	fs.IntVar(&cfg.Tasks, "tasks", integrate.DefaultTasksPerWorker, "Contiguous ranges per worker (pool and errgroup)")
	fs.BoolVar(&cfg.Sweep, "sweep", false, "Compare for n = 1, 10, 100, ... up to -n")
	fs.BoolVar(&cfg.Verbose, "v", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if cfg.N < 0 {
		return config{}, fmt.Errorf("invalid sample count %d: must be >= 0", cfg.N)
	}
	if cfg.Tasks < 1 || cfg.Tasks > integrate.MaxTasks {
		return config{}, fmt.Errorf("invalid -tasks %d: must be in [1, %d]", cfg.Tasks, integrate.MaxTasks)
	}
	if math.IsNaN(cfg.A) || math.IsNaN(cfg.B) {
		return config{}, errors.New("integration bounds must not be NaN")
	}
	s, err := integrate.ParseStrategy(strategy)
	if err != nil {
		return config{}, fmt.Errorf("parsing -strategy: %w", err)
	}
	cfg.Strategy = s
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.Info("Starting midpoint integration benchmark")
	info := host.Describe()
	logrus.WithFields(logrus.Fields{
		"model":     info.Model,
		"physical":  info.Physical,
		"logical":   info.Logical,
		"available": info.Available,
	}).Info("Host detected")

	opts := []integrate.Option{
		integrate.WithWorkers(cfg.Workers),
		integrate.WithStrategy(cfg.Strategy),
		integrate.WithTasksPerWorker(cfg.Tasks),
	}
	logrus.WithFields(logrus.Fields{
		"n":        cfg.N,
		"interval": fmt.Sprintf("[%g, %g]", cfg.A, cfg.B),
		"workers":  cfg.Workers,
		"strategy": cfg.Strategy.String(),
	}).Info("Benchmark configured")

	if cfg.Sweep {
		results, err := bench.Sweep(stdout, cfg.N, cfg.A, cfg.B, opts...)
		if err != nil {
			return fmt.Errorf("writing sweep: %w", err)
		}
		logrus.WithField("sizes", len(results)).Info("Sweep completed")
		return nil
	}

	c := bench.Compare(cfg.N, cfg.A, cfg.B, opts...)
	logrus.WithFields(logrus.Fields{
		"seq":     c.Seq.Elapsed,
		"par":     c.Par.Elapsed,
		"diff":    math.Abs(c.Seq.Value - c.Par.Value),
		"speedup": c.Speedup(),
	}).Info("Computation completed")

	if err := bench.Report(stdout, c); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logrus.Fatalf("integrate: %v", err)
	}
}
