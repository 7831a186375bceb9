package commands

import (
	"fmt"

	"simvault/pkg/store"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls [dir]",
	Short: "Load every object in a directory and report what's usable",
	Long: `Decode each saved object (format inferred from the filename suffix) and print
the loadable keys. Damaged files are skipped and listed separately, so one
corrupt save never hides the rest of the collection.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := SV.Dir
		if len(args) == 1 {
			dir = args[0]
		}

		tm := SV.NewTimer("load all objects from " + dir)
		entries, skipped, err := store.LoadAll[any](dir, tm, SV.Sink)
		if err != nil {
			return err
		}
		tm.Done()

		for _, e := range entries {
			fmt.Println(e.Key)
		}
		if len(skipped) > 0 {
			fmt.Printf("\n%d object(s) couldn't be loaded:\n", len(skipped))
			for _, s := range skipped {
				fmt.Printf("  %s: %v\n", s.Path, s.Err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
