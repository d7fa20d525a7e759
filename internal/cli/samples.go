package cli

import (
	"fmt"

	"github.com/me/iggpool/internal/pool"
	"github.com/me/iggpool/pkg/model"
	"github.com/spf13/cobra"
)

func newSamplesCmd() *cobra.Command {
	var samplesList, dbType string

	cmd := &cobra.Command{
		Use:   "samples",
		Short: "List the samples of a pool and how many species each profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if samplesList == "" {
				return fmt.Errorf("samples: --samples-list is required")
			}
			dbtype, err := model.ParseDBType(dbType)
			if err != nil {
				return err
			}
			p, err := pool.New(samplesList, "", dbtype, logger)
			if err != nil {
				return fmt.Errorf("init pool: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-30s  %-8s  %s\n", "SAMPLE", "SPECIES", "PROFILE")
			fmt.Fprintf(out, "%-30s  %-8s  %s\n", "------", "-------", "-------")
			for _, s := range p.Samples {
				fmt.Fprintf(out, "%-30s  %-8d  %s\n", s.Name, len(s.SpeciesIDs()), s.SummaryPath())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&samplesList, "samples-list", "", "TSV table of contents with sample_name and midas_outdir columns")
	cmd.Flags().StringVar(&dbType, "db-type", string(model.DBTypeSNPs), "Profile type to load (snps, genes)")

	return cmd
}
