// Command pedestrians-bench runs the crowd simulator to completion against
// a fixed set of scenarios (or a user-supplied scenario file) and writes a
// CSV summary of tick counts, wall-clock duration and fallback-cascade
// hits for each run.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/elektrokombinacija/orca-pedestrians/internal/sim"
)

// namedScenario pairs a scenario JSON document with the tick count and step
// size a full run of it should use.
type namedScenario struct {
	Name  string
	JSON  string
	Ticks int
	Dt    float64
}

var builtinScenarios = []namedScenario{
	{
		Name:  "antipodal-4",
		JSON:  `{"scenario": "AntipodalCircle", "agents_count": 4, "radius": 10.0}`,
		Ticks: 100,
		Dt:    0.25,
	},
	{
		Name:  "corridor-3",
		JSON:  `{"scenario": "Corridor", "agents_per_side_count": 3, "length": 10.0, "width": 3.0}`,
		Ticks: 800,
		Dt:    0.1,
	},
	{
		Name:  "empty",
		JSON:  `{"scenario": "Empty"}`,
		Ticks: 4,
		Dt:    0.25,
	},
}

// BenchmarkResult is one CSV row: the environment the run happened in plus
// the metrics the Universe accumulated over the run.
type BenchmarkResult struct {
	Timestamp           string  `json:"timestamp"`
	GoVersion           string  `json:"go_version"`
	OS                  string  `json:"os"`
	Arch                string  `json:"arch"`
	Scenario            string  `json:"scenario"`
	AgentCount          int     `json:"agent_count"`
	Ticks               int     `json:"ticks"`
	RuntimeMs           float64 `json:"runtime_ms"`
	RelaxedFallbackHits int     `json:"relaxed_fallback_hits"`
	SafetyFallbackHits  int     `json:"safety_fallback_hits"`
}

func runScenario(name string, scenarioJSON []byte, ticks int, dt float64) (BenchmarkResult, error) {
	u := sim.New(sim.UniverseConfig{})
	if err := u.LoadScenario(scenarioJSON); err != nil {
		return BenchmarkResult{}, fmt.Errorf("load scenario %s: %w", name, err)
	}

	start := time.Now()
	for i := 0; i < ticks; i++ {
		if err := u.Update(dt); err != nil {
			return BenchmarkResult{}, fmt.Errorf("update scenario %s: %w", name, err)
		}
	}
	elapsed := time.Since(start)

	metrics := u.Metrics()
	return BenchmarkResult{
		Timestamp:           time.Now().UTC().Format(time.RFC3339),
		GoVersion:           runtime.Version(),
		OS:                  runtime.GOOS,
		Arch:                runtime.GOARCH,
		Scenario:            name,
		AgentCount:          u.CountAgents(),
		Ticks:               ticks,
		RuntimeMs:           float64(elapsed.Microseconds()) / 1000.0,
		RelaxedFallbackHits: metrics.RelaxedFallbackHits,
		SafetyFallbackHits:  metrics.SafetyFallbackHits,
	}, nil
}

func writeCSV(results []BenchmarkResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"timestamp", "go_version", "os", "arch", "scenario", "agent_count",
		"ticks", "runtime_ms", "relaxed_fallback_hits", "safety_fallback_hits",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Timestamp, r.GoVersion, r.OS, r.Arch, r.Scenario,
			fmt.Sprintf("%d", r.AgentCount), fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%.3f", r.RuntimeMs),
			fmt.Sprintf("%d", r.RelaxedFallbackHits), fmt.Sprintf("%d", r.SafetyFallbackHits),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(results []BenchmarkResult) {
	fmt.Println("\n=== BENCHMARK SUMMARY ===")
	fmt.Printf("%-16s %8s %8s %12s %10s %10s\n",
		"Scenario", "Agents", "Ticks", "Time(ms)", "Relaxed", "Safety")
	for _, r := range results {
		fmt.Printf("%-16s %8d %8d %12.2f %10d %10d\n",
			r.Scenario, r.AgentCount, r.Ticks, r.RuntimeMs, r.RelaxedFallbackHits, r.SafetyFallbackHits)
	}
}

func main() {
	scenarioFile := flag.String("scenario", "", "Run a single scenario JSON file instead of the built-in set")
	ticks := flag.Int("ticks", 100, "Tick count for -scenario (ignored for the built-in set)")
	dt := flag.Float64("dt", 0.25, "Time step in seconds for -scenario (ignored for the built-in set)")
	outputFile := flag.String("output", "pedestrians_bench.csv", "Output CSV file")
	flag.Parse()

	var results []BenchmarkResult

	if *scenarioFile != "" {
		data, err := os.ReadFile(*scenarioFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading %s: %v\n", *scenarioFile, err)
			os.Exit(1)
		}
		var probe struct {
			Scenario string `json:"scenario"`
		}
		_ = json.Unmarshal(data, &probe)
		name := probe.Scenario
		if name == "" {
			name = filepath.Base(*scenarioFile)
		}
		r, err := runScenario(name, data, *ticks, *dt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
			os.Exit(1)
		}
		results = append(results, r)
	} else {
		fmt.Printf("Running %d built-in scenarios\n", len(builtinScenarios))
		for _, s := range builtinScenarios {
			fmt.Printf("  %s ... ", s.Name)
			r, err := runScenario(s.Name, []byte(s.JSON), s.Ticks, s.Dt)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error running %s: %v\n", s.Name, err)
				os.Exit(1)
			}
			results = append(results, r)
			fmt.Printf("done (%.2fms)\n", r.RuntimeMs)
		}
	}

	if err := writeCSV(results, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "error writing results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results written to: %s\n", *outputFile)

	printSummary(results)
}
