// Package config resolves the engine and benchmark configuration once at
// startup, from a YAML file or command-line flags. The resolved Config is
// immutable afterwards and injected into constructors; nothing reads ambient
// global state at call time.
package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pedash/kpi-engine/internal/calc"
)

// Config is the resolved engine configuration
type Config struct {
	// Backend selects the calculation backend: auto, reference or optimized
	Backend calc.Mode
	// InitialGuess is the starting rate for the XIRR solve
	InitialGuess float64
	// Benchmark configures the backend comparison run
	Benchmark Benchmark
}

// Benchmark holds the benchmark run parameters
type Benchmark struct {
	Iterations int
	Cashflows  int
}

type fileConfig struct {
	Backend      string  `yaml:"backend,omitempty"`
	InitialGuess float64 `yaml:"initial_guess,omitempty"`
	Benchmark    struct {
		Iterations int `yaml:"iterations,omitempty"`
		Cashflows  int `yaml:"cashflows,omitempty"`
	} `yaml:"benchmark,omitempty"`
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		Backend:      calc.ModeAuto,
		InitialGuess: calc.DefaultGuess,
		Benchmark: Benchmark{
			Iterations: 200,
			Cashflows:  20,
		},
	}
}

// Get resolves the configuration from CLI flags, loading a YAML file when
// -config is given; explicit flags win over file values for the remaining
// knobs.
func Get() (Config, error) {
	path := flag.String("config", "", "path to yaml config")
	backend := flag.String("backend", "", "calculation backend: auto, reference or optimized")
	guess := flag.Float64("guess", 0, "initial rate guess for the XIRR solve")
	iterations := flag.Int("iterations", 0, "benchmark iterations per backend")
	cashflows := flag.Int("cashflows", 0, "cashflows per benchmark schedule")
	flag.Parse()

	cfg := Default()
	if *path != "" {
		raw, err := os.ReadFile(*path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", *path, err)
		}
		cfg, err = parse(raw)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", *path, err)
		}
	}

	if *backend != "" {
		cfg.Backend = calc.Mode(*backend)
	}
	if *guess != 0 {
		cfg.InitialGuess = *guess
	}
	if *iterations != 0 {
		cfg.Benchmark.Iterations = *iterations
	}
	if *cashflows != 0 {
		cfg.Benchmark.Cashflows = *cashflows
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parse decodes a YAML document over the defaults
func parse(raw []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if fc.Backend != "" {
		cfg.Backend = calc.Mode(fc.Backend)
	}
	if fc.InitialGuess != 0 {
		cfg.InitialGuess = fc.InitialGuess
	}
	if fc.Benchmark.Iterations != 0 {
		cfg.Benchmark.Iterations = fc.Benchmark.Iterations
	}
	if fc.Benchmark.Cashflows != 0 {
		cfg.Benchmark.Cashflows = fc.Benchmark.Cashflows
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Backend {
	case calc.ModeAuto, calc.ModeReference, calc.ModeOptimized:
	default:
		return fmt.Errorf("unknown backend %q (want auto, reference or optimized)", c.Backend)
	}
	if c.InitialGuess <= -1 {
		return fmt.Errorf("initial guess must be greater than -1, got %v", c.InitialGuess)
	}
	if c.Benchmark.Iterations <= 0 {
		return fmt.Errorf("benchmark iterations must be positive, got %d", c.Benchmark.Iterations)
	}
	if c.Benchmark.Cashflows < 2 {
		return fmt.Errorf("benchmark schedules need at least 2 cashflows, got %d", c.Benchmark.Cashflows)
	}
	return nil
}
