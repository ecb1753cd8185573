package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/lintang-b-s/skyroute/pkg/graph"
	"github.com/lintang-b-s/skyroute/pkg/ingest"
	"github.com/lintang-b-s/skyroute/pkg/kv"
)

const ingestSteps = 3

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "parse openflights + geojson source files and persist the record snapshot to badger",
	RunE:  runIngest,
}

func newStepBar(desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions(ingestSteps,
		progressbar.OptionSetWriter(ansi.NewAnsiStderr()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func runIngest(cmd *cobra.Command, args []string) error {
	if cfg.Data.AirportsFile == "" {
		return ingest.ErrNoAirports
	}
	if cfg.Storage.BadgerDir == "" {
		return errors.New("ingest needs storage.badger_dir")
	}
	ctx := cmd.Context()

	bar := newStepBar("[cyan][1/3][reset] parsing source files ...")
	ds, err := ingest.LoadDataset(ctx, sources(), synth(), logger)
	if err != nil {
		return err
	}
	bar.Add(1)

	// build once so the log shows how many routes survive the zone filter
	bar.Describe("[cyan][2/3][reset] checking routes against restricted zones ...")
	_, stats := graph.Build(ds.Airports, ds.Routes, ds.Zones)
	bar.Add(1)

	bar.Describe("[cyan][3/3][reset] saving record snapshot ...")
	db, err := kv.Open(cfg.Storage.BadgerDir, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	meta, err := db.SaveDataset(ctx, ds)
	if err != nil {
		return err
	}
	bar.Add(1)
	bar.Finish()
	fmt.Fprintln(cmd.ErrOrStderr())

	logger.Info("snapshot saved",
		slog.String("dir", cfg.Storage.BadgerDir),
		slog.String("version", meta.Version),
		slog.Int("airports", meta.Airports),
		slog.Int("routes", meta.Routes),
		slog.Int("zones", meta.Zones),
		slog.Int("admissibleRoutes", stats.AdmissibleRoutes),
		slog.Int("blockedRoutes", stats.BlockedRoutes))
	return nil
}
