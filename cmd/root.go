package cmd

import (
	"os"

	"rankviz/internal/logging"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "rankviz",
	Short: "Highlight the top entry of a ranking and shade the rest",
	Long: `rankviz loads tabular data (CSV or XLSX), aggregates it into a ranked
series and assigns colors: the largest value gets the accent color, every
other entry gets a shade from a two-color gradient, by rank or by value.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, quiet)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
}
