package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JasperNL/treestim/regforest"
	"github.com/JasperNL/treestim/restart"
	"github.com/JasperNL/treestim/sim"
)

var (
	simSeed       int64
	simMaxDepth   int
	simBranchProb float64
	simConfigFile string
	simPolicy     string
	simForestFile string
	simReports    bool

	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Run the estimation stack against a synthetic random tree",
		Long: `Generates a seeded random branch-and-bound tree, feeds every node event
through the restart monitor, and prints the periodic estimation reports plus
a final summary.`,
		RunE: runSimulate,
	}
)

func init() {
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 1, "random seed for the synthetic tree")
	simulateCmd.Flags().IntVar(&simMaxDepth, "max-depth", 12, "depth cap of the synthetic tree")
	simulateCmd.Flags().Float64Var(&simBranchProb, "branch-prob", 0.8, "probability that a node branches")
	simulateCmd.Flags().StringVar(&simConfigFile, "config", "", "YAML monitor configuration file")
	simulateCmd.Flags().StringVar(&simPolicy, "policy", "", "restart policy override (never|always|estimation|progress)")
	simulateCmd.Flags().StringVar(&simForestFile, "forest", "", "RFCSV regression forest for the completion readout")
	simulateCmd.Flags().BoolVar(&simReports, "reports", true, "print the periodic estimation reports")

	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg := restart.DefaultConfig()
	if simConfigFile != "" {
		var err error
		if cfg, err = restart.LoadConfig(simConfigFile); err != nil {
			return err
		}
	}
	if simPolicy != "" {
		cfg.Policy = restart.Policy(simPolicy)
	}
	cfg.PrintReports = simReports
	if err := cfg.Validate(); err != nil {
		return err
	}

	if simMaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d", simMaxDepth)
	}
	if simBranchProb < 0 || simBranchProb > 1 {
		return fmt.Errorf("branch probability must lie in [0,1], got %g", simBranchProb)
	}

	opts := []restart.Option{
		restart.WithLogger(newLogger()),
	}
	if simForestFile != "" {
		forest, err := regforest.Load(simForestFile)
		if err != nil {
			return err
		}
		opts = append(opts, restart.WithForest(forest))
	}

	eng := sim.New(
		sim.WithSeed(simSeed),
		sim.WithMaxDepth(simMaxDepth),
		sim.WithBranchProbability(simBranchProb),
	)

	m, err := restart.New(eng, cfg, opts...)
	if err != nil {
		return err
	}

	if err := sim.Run(eng, m); err != nil {
		return err
	}

	fmt.Println("Final state")
	fmt.Print(m.Report(0))
	fmt.Printf("Completion         : %s\n", m.CompletionString())
	fmt.Printf("Restarts performed : %d\n", m.NRestarts())

	return nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
