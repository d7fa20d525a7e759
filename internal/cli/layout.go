package cli

import (
	"fmt"
	"strings"

	"github.com/me/iggpool/internal/layout"
	"github.com/me/iggpool/pkg/model"
	"github.com/spf13/cobra"
)

func newLayoutCmd() *cobra.Command {
	var outDir, dbType, speciesID, chunkID string
	var list bool

	cmd := &cobra.Command{
		Use:   "layout [kind]",
		Short: "Print the workspace path of a layout kind",
		Long: `layout resolves one path of the pooled workspace, for example

  iggpool layout snps_info --outdir /pool --species 100001

Use --list to print every kind.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				for _, k := range layout.Kinds() {
					fmt.Fprintln(out, k)
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("layout: kind required (see --list)")
			}

			kind, err := layout.ParseKind(args[0])
			if err != nil {
				return err
			}
			dbtype, err := model.ParseDBType(dbType)
			if err != nil {
				return err
			}
			var missing []string
			if kind.NeedsSpecies() && speciesID == "" {
				missing = append(missing, "--species")
			}
			if kind.NeedsChunk() && chunkID == "" {
				missing = append(missing, "--chunk")
			}
			if len(missing) > 0 {
				return fmt.Errorf("layout: %s requires %s", kind, strings.Join(missing, " and "))
			}

			fmt.Fprintln(out, layout.New(outDir, dbtype).Path(kind, speciesID, chunkID))
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "outdir", ".", "Pooled workspace root")
	cmd.Flags().StringVar(&dbType, "db-type", string(model.DBTypeSNPs), "Layout namespace (snps, genes)")
	cmd.Flags().StringVar(&speciesID, "species", "", "Species id")
	cmd.Flags().StringVar(&chunkID, "chunk", "", "Chunk id")
	cmd.Flags().BoolVar(&list, "list", false, "List every layout kind")

	return cmd
}
