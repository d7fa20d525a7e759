package cli

import (
	"fmt"

	"github.com/me/iggpool/internal/config"
	"github.com/me/iggpool/internal/layout"
	"github.com/me/iggpool/internal/manifest"
	"github.com/me/iggpool/internal/pool"
	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	var flags mergeFlags

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Select species across the pool and write the pooled summary",
		Long: `merge loads every sample listed in --samples-list, keeps the species that
pass the coverage and prevalence filters, prepares the pooled workspace
under --outdir, and writes the pooled summary table and a run manifest.

The path of the written summary is printed to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			path, err := runMerge(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func runMerge(cfg config.MergeConfig) (string, error) {
	runID := manifest.NewRunID()
	log := logger.With("run_id", runID)
	log.Info("start merge", "db_type", cfg.DBType.String(), "samples_list", cfg.SamplesList, "outdir", cfg.OutDir)

	timer := manifest.NewPhaseTimer()
	timer.Start("init_pool")
	p, err := pool.New(cfg.SamplesList, cfg.OutDir, cfg.DBType, log)
	if err != nil {
		return "", fmt.Errorf("init pool: %w", err)
	}
	if err := p.CreateOutputDir(cfg.Debug); err != nil {
		return "", err
	}

	timer.Start("select_species")
	sel := p.SelectSpecies(cfg.Filter)
	if sel.Len() == 0 {
		log.Warn("no species passed the filters", "samples", len(p.Samples))
	}
	for _, kind := range []layout.Kind{layout.OutDir, layout.TempDir} {
		if err := p.CreateSpeciesSubdir(sel.IDs(), kind, cfg.Debug); err != nil {
			return "", err
		}
	}

	timer.Start("write_summary")
	path, err := p.WriteSummary(sel)
	if err != nil {
		return "", err
	}

	m := manifest.New(runID, p, cfg.Filter, sel, path)
	m.SetTiming(timer)
	if err := m.Write(p.Path(layout.Manifest, "", "")); err != nil {
		return "", err
	}
	log.Info("merge complete", "species", sel.Len(), "summary", path, "duration", m.Duration)
	return path, nil
}
