package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lintang-b-s/skyroute/pkg/config"
	"github.com/lintang-b-s/skyroute/pkg/ingest"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        config.Config
	logger     *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "skyroute",
		Short: "flight route engine that never routes through restricted airspace",
		Long: `skyroute builds a directed graph of airports and direct flights, drops every
flight whose straight segment touches a restricted zone, and answers
cheapest / fastest / fewest-layover queries with dijkstra.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd)
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger = newLogger(cfg.Log)
			return nil
		},
	}

	airportsFile string
	routesFile   string
	zonesFile    string
	badgerDir    string
	logLevel     string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path ke file config yaml")
	rootCmd.PersistentFlags().StringVar(&airportsFile, "airports", "", "openflights airports.dat")
	rootCmd.PersistentFlags().StringVar(&routesFile, "routes", "", "openflights routes.dat")
	rootCmd.PersistentFlags().StringVar(&zonesFile, "zones", "", "geojson restricted zones, kosong = default zones")
	rootCmd.PersistentFlags().StringVar(&badgerDir, "db", "", "badger directory buat record snapshot")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug | info | warn | error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(routeCmd)
}

// applyFlagOverrides lets explicitly set flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("airports") {
		cfg.Data.AirportsFile = airportsFile
	}
	if flags.Changed("routes") {
		cfg.Data.RoutesFile = routesFile
	}
	if flags.Changed("zones") {
		cfg.Data.ZonesFile = zonesFile
	}
	if flags.Changed("db") {
		cfg.Storage.BadgerDir = badgerDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = strings.ToLower(logLevel)
	}
}

func newLogger(lc config.LogConfig) *slog.Logger {
	var level slog.Level
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func sources() ingest.Sources {
	return ingest.Sources{
		AirportsFile: cfg.Data.AirportsFile,
		RoutesFile:   cfg.Data.RoutesFile,
		ZonesFile:    cfg.Data.ZonesFile,
	}
}

func synth() ingest.Synth {
	return ingest.Synth{
		Seed:        cfg.Ingest.Seed,
		CruiseKmh:   cfg.Ingest.CruiseKmh,
		TaxiMinutes: cfg.Ingest.TaxiMinutes,
		PricePerKm:  cfg.Ingest.PricePerKm,
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
