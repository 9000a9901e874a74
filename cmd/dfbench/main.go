// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Command dfbench exercises the join kernel's three execution
// strategies against synthetic data, reporting per-strategy timing and
// verifying that NESTED, HASH, and SORTED all agree on the output.
package main

import (
	"fmt"
	"os"

	"github.com/bitjungle/goframe/cmd/dfbench/internal/bench"
	"github.com/spf13/cobra"
)

var (
	joinHow   string
	strategy  string
	matchRate float64
)

var rootCmd = &cobra.Command{
	Use:     "dfbench rows",
	Short:   "Benchmark and cross-check the frame engine's join strategies",
	Version: "0.1.0",
	Args:    cobra.ExactArgs(1),
	RunE:    runBench,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&joinHow, "join", "inner", "join mode: inner, left, right, outer")
	rootCmd.Flags().StringVar(&strategy, "strategy", "all", "strategy: auto, nested, hash, sorted, all")
	rootCmd.Flags().Float64Var(&matchRate, "match-rate", 0.5, "fraction of left keys with a right-side match, in [0,1]")
}

func runBench(cmd *cobra.Command, args []string) error {
	rows, err := bench.ParseRows(args[0])
	if err != nil {
		return err
	}
	if matchRate < 0 || matchRate > 1 {
		return fmt.Errorf("match-rate must be in [0,1], got %v", matchRate)
	}
	how, err := bench.ParseHow(joinHow)
	if err != nil {
		return err
	}
	strategies, err := bench.ParseStrategies(strategy)
	if err != nil {
		return err
	}

	report, err := bench.Run(rows, matchRate, how, strategies)
	if err != nil {
		return err
	}
	return report.Write(os.Stdout)
}
