// Package main provides a performance benchmarking tool for the dailyq CLI.
// It generates synthetic question logs of increasing size, renders every view
// against each log with and without report history, and writes the timings to CSV.
//
// Prerequisites:
// - dailyq binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory used for the generated logs and the SQLite history file
package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, first tracked run and average of later tracked runs).
type BenchmarkResult struct {
	LogSize       string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	NoHistoryRuns int
	HistoryRuns   int
	Questions     int
	LogYears      []int
	Commands      []string
	Today         time.Time
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:       os.Args[1],
		Timeout:       2 * time.Minute,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		Questions:     12,
		LogYears:      []int{1, 5, 20},
		Commands:      []string{"days", "months", "stats", "trend", "report"},
		Today:         time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the dailyq binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("dailyq"); err != nil {
		return fmt.Errorf("dailyq binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// runBenchmarks executes all benchmark tests across the generated logs
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d log sizes, %v timeout, no-history: %d runs, history: %d runs\n",
		len(config.LogYears), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	for _, years := range config.LogYears {
		logPath := filepath.Join(config.WorkDir, fmt.Sprintf("questions_%dy.log", years))
		lines, err := generateLog(logPath, config.Today, years, config.Questions)
		if err != nil {
			return nil, err
		}
		label := fmt.Sprintf("%dy", years)
		fmt.Printf("Benchmarking %s log (%d lines)\n", label, lines)

		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, label, logPath, command))
		}
	}

	return results, nil
}

// generateLog writes one answer per question per day for the given number of
// years before today and returns the number of lines written.
func generateLog(path string, today time.Time, years, questions int) (lines int, err error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	rng := rand.New(rand.NewPCG(uint64(years), uint64(questions)))
	w := bufio.NewWriter(file)
	for day := today.AddDate(-years, 0, 0); day.Before(today); day = day.AddDate(0, 0, 1) {
		for q := range questions {
			if _, err := fmt.Fprintf(w, "%s|Did I keep habit %d?|%d\n", day.Format("2006/01/02"), q+1, rng.IntN(2)); err != nil {
				return lines, err
			}
			lines++
		}
	}
	return lines, w.Flush()
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, label, logPath, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, label)

	// Helper to run a benchmark phase
	runPhase := func(historyBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, logPath, command, historyBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-history runs
	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")

	// Phase 2: History runs against a SQLite file
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		LogSize:       label,
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a dailyq command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, logPath, command, historyBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		command, logPath,
		"--today", config.Today.Format("2006-01-02"),
		"--months", "12",
		"--history-backend", historyBackend,
		"--history-db-connect", filepath.Join(config.WorkDir, "history.db"),
		"--output", "json",
		"--quiet",
	}

	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		cmd := exec.CommandContext(ctx, "dailyq", args...)
		cmd.Dir = config.WorkDir
		if err := cmd.Run(); err == nil {
			times = append(times, time.Since(start).Seconds())
		}
		cancel()
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("dailyq_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"log", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.LogSize, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range config.Commands {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-4s: No-history: %s, Cold: %s, Warm: %s\n", result.LogSize, result.NoHistoryTime, result.ColdTime, result.WarmTime)
			}
		}
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
