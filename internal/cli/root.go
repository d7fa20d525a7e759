package cli

import (
	"github.com/me/iggpool/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger = logging.Discard()
)

// NewRootCmd creates the root cobra command for the iggpool CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "iggpool",
		Short: "iggpool — pooled species selection across metagenomic samples",
		Long: `iggpool merges per-sample species profiles into a pooled workspace:
it selects the species that are well covered across the pool and writes
the pooled summary tables that downstream merge stages read.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewWithWriter(logging.Options{
				Level:  flagLogLevel,
				Format: flagLogFormat,
				Debug:  flagDebug,
			}, cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newMergeCmd(),
		newSelectCmd(),
		newLayoutCmd(),
		newSamplesCmd(),
	)

	return root
}
