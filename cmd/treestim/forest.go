package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JasperNL/treestim/regforest"
)

var (
	forestFeatures string

	forestCmd = &cobra.Command{
		Use:   "forest [file]",
		Short: "Validate a regression forest file and optionally predict",
		Long: `Loads an RFCSV regression forest, prints its shape, and, when --features
is given, evaluates the forest on that feature vector.`,
		Args: cobra.ExactArgs(1),
		RunE: runForest,
	}
)

func init() {
	forestCmd.Flags().StringVar(&forestFeatures, "features", "",
		"comma-separated feature vector to predict, e.g. 0.4,0.1,0.9")

	rootCmd.AddCommand(forestCmd)
}

func runForest(cmd *cobra.Command, args []string) error {
	forest, err := regforest.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d trees over %d features\n", args[0], forest.NTrees(), forest.Dim())

	if forestFeatures == "" {
		return nil
	}

	features, err := parseFeatures(forestFeatures)
	if err != nil {
		return err
	}

	prediction, err := forest.Predict(features)
	if err != nil {
		return err
	}
	fmt.Printf("prediction: %g\n", prediction)

	return nil
}

func parseFeatures(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	features := make([]float64, 0, len(parts))

	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid feature %q: %w", part, err)
		}
		features = append(features, v)
	}

	return features, nil
}
