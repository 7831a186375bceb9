package commands

import (
	"simvault/pkg/serialize"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm [paths...]",
	Short: "Delete saved objects (idempotent)",
	Long:  `Remove the named files. A path that's already gone is reported, not treated as an error, so rm can be re-run safely.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			serialize.Delete(path, SV.Sink)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
