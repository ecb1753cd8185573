package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/lintang-b-s/skyroute/pkg/datastructure"
	"github.com/lintang-b-s/skyroute/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/skyroute/pkg/graph"
)

var (
	routeCriterion string

	routeCmd = &cobra.Command{
		Use:   "route [source] [destination]",
		Short: "one-shot path query, prints the result as json",
		Args:  cobra.ExactArgs(2),
		RunE:  runRoute,
	}
)

func init() {
	routeCmd.Flags().StringVar(&routeCriterion, "criteria", "cheapest", "cheapest | fastest | layover")
}

func runRoute(cmd *cobra.Command, args []string) error {
	criterion, err := datastructure.ParseCriterion(routeCriterion)
	if err != nil {
		return err
	}

	ds, _, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	g, _ := graph.Build(ds.Airports, ds.Routes, ds.Zones)
	res, err := routingalgorithm.NewRouteAlgorithm(g).FindPathContext(cmd.Context(), args[0], args[1], criterion)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
