package cli

import (
	"github.com/me/iggpool/internal/config"
	"github.com/me/iggpool/pkg/model"
	"github.com/spf13/cobra"
)

// mergeFlags are the inputs shared by merge and select.
type mergeFlags struct {
	configPath     string
	samplesList    string
	outDir         string
	dbType         string
	speciesList    string
	genomeDepth    float64
	genomeCoverage float64
	sampleCounts   int
	keepTemp       bool
}

func (f *mergeFlags) register(cmd *cobra.Command) {
	snps := config.DefaultFilterConfig(model.DBTypeSNPs)

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML merge config; flags given explicitly override it")
	fl.StringVar(&f.samplesList, "samples-list", "", "TSV table of contents with sample_name and midas_outdir columns")
	fl.StringVar(&f.outDir, "outdir", "", "Pooled workspace root")
	fl.StringVar(&f.dbType, "db-type", string(model.DBTypeSNPs), "Profile type to merge (snps, genes)")
	fl.StringVar(&f.speciesList, "species-list", "", "Comma-separated species ids to restrict the merge to")
	fl.Float64Var(&f.genomeDepth, "genome-depth", snps.GenomeDepth, "Minimum mean_coverage for a sample-species pair (genes default 1.0)")
	fl.Float64Var(&f.genomeCoverage, "genome-coverage", snps.GenomeCoverage, "Minimum fraction_covered for a sample-species pair, snps only; must be within [0, 1]")
	fl.IntVar(&f.sampleCounts, "sample-counts", snps.SampleCounts, "Minimum number of qualifying samples per species (genes default 1)")
	fl.BoolVar(&f.keepTemp, "keep-temp", false, "Reuse existing temp data from an earlier run")
}

// resolve merges defaults, the config file, and explicitly set flags, in
// that order.
func (f *mergeFlags) resolve(cmd *cobra.Command) (config.MergeConfig, error) {
	changed := cmd.Flags().Changed

	dbtype := model.DBType(f.dbType)
	cfg := config.DefaultMergeConfig(dbtype)
	if f.configPath != "" {
		loaded, err := config.LoadFile(f.configPath, cfg)
		if err != nil {
			return cfg, err
		}
		// Defaults depend on the db-type, so re-apply them when the file
		// picks a different one.
		if !changed("db-type") && loaded.DBType != dbtype && loaded.DBType.Valid() {
			loaded, err = config.LoadFile(f.configPath, config.DefaultMergeConfig(loaded.DBType))
			if err != nil {
				return cfg, err
			}
		}
		cfg = loaded
	}

	if changed("db-type") {
		cfg.DBType = dbtype
	}
	if changed("samples-list") {
		cfg.SamplesList = f.samplesList
	}
	if changed("outdir") {
		cfg.OutDir = f.outDir
	}
	if changed("keep-temp") {
		cfg.Debug = f.keepTemp
	}
	if changed("species-list") {
		cfg.Filter.SpeciesList = config.ParseSpeciesList(f.speciesList)
	}
	if changed("genome-depth") {
		cfg.Filter.GenomeDepth = f.genomeDepth
	}
	if changed("genome-coverage") {
		cfg.Filter.GenomeCoverage = f.genomeCoverage
	}
	if changed("sample-counts") {
		cfg.Filter.SampleCounts = f.sampleCounts
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
