package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/me/iggpool/internal/pool"
	"github.com/me/iggpool/internal/tsv"
	"github.com/spf13/cobra"
)

func newSelectCmd() *cobra.Command {
	var flags mergeFlags

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Print the species a merge would select, without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			p, err := pool.New(cfg.SamplesList, cfg.OutDir, cfg.DBType, logger)
			if err != nil {
				return fmt.Errorf("init pool: %w", err)
			}
			sel := p.SelectSpecies(cfg.Filter)

			w := tsv.NewWriter(cmd.OutOrStdout())
			w.WriteRow("species_id", "sample_count", "samples")
			for _, sp := range sel.Species() {
				w.WriteRow(sp.ID, strconv.Itoa(sp.Count()), strings.Join(sp.SampleNames(), ","))
			}
			return w.Err()
		},
	}
	flags.register(cmd)
	return cmd
}
