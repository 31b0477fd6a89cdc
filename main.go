package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kjellberg/satforge/internal/dimacs"
	"github.com/kjellberg/satforge/internal/hw"
	"github.com/kjellberg/satforge/internal/result"
	"github.com/kjellberg/satforge/internal/sat"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagHW = flag.Bool(
	"hw",
	false,
	"propagate via the simulated hardware BCP bridge instead of software BCP",
)

var flagVerbose = flag.Bool(
	"v",
	false,
	"enable debug-level logging",
)

var flagJSON = flag.Bool(
	"json",
	false,
	"print the solve result as JSON instead of plain text",
)

type config struct {
	instanceFile string
	memProfile   bool
	cpuProfile   bool
	hw           bool
	verbose      bool
	json         bool
}

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &config{
		instanceFile: flag.Arg(0),
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
		hw:           *flagHW,
		verbose:      *flagVerbose,
		json:         *flagJSON,
	}, nil
}

func run(cfg *config) error {
	logger := logrus.StandardLogger()
	if cfg.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	opts := sat.DefaultOptions()
	opts.Logger = logger
	if cfg.hw {
		opts.Propagator = hw.NewBridge(logger)
	}
	s := sat.NewSolver(opts)

	if err := dimacs.Load(cfg.instanceFile, false, s); err != nil {
		return fmt.Errorf("could not parse instance: %s", err)
	}

	if cfg.hw {
		if err := hw.CheckLimits(s.Engine().NumVariables(), s.Engine().NumClauses()); err != nil {
			return fmt.Errorf("formula too large for hardware mode: %s", err)
		}
	}

	if !cfg.json {
		fmt.Printf("c variables:  %d\n", s.Engine().NumVariables())
		fmt.Printf("c clauses:    %d\n", s.Engine().NumClauses())
	}

	t := time.Now()
	status := s.Solve()
	elapsed := time.Since(t)
	stats := s.Stats()

	if cfg.json {
		return printJSONResult(status, stats, elapsed, s)
	}

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c decisions:  %d\n", stats.Decisions)
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", stats.Conflicts, float64(stats.Conflicts)/elapsed.Seconds())
	fmt.Printf("c status:     %s\n", status.String())

	return nil
}

// printJSONResult packages a solve outcome into result.SolveResult and
// writes it to stdout, the structured counterpart to run's plain-text "c "
// comment lines.
func printJSONResult(status sat.Status, stats sat.Stats, elapsed time.Duration, s *sat.Solver) error {
	res := result.SolveResult{
		Status:         status.String(),
		Decisions:      stats.Decisions,
		Conflicts:      stats.Conflicts,
		Propagations:   stats.Propagations,
		LearntClauses:  stats.LearntClauses,
		ElapsedSeconds: elapsed.Seconds(),
	}
	if status == sat.StatusSAT {
		values := s.Model()
		res.Model = make([]bool, len(values)-1)
		for v := 1; v < len(values); v++ {
			res.Model[v-1] = values[v] == sat.True
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			logrus.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		logrus.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			logrus.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
