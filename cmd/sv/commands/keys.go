package commands

import (
	"fmt"

	"simvault/pkg/store"

	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys [dir]",
	Short: "List object keys in a directory",
	Long:  `Enumerate the saved objects in a directory and print their keys (filenames with the extension stripped), sorted. A directory that doesn't exist yet just prints nothing.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := SV.Dir
		if len(args) == 1 {
			dir = args[0]
		}

		keys, err := store.ListKeys(dir)
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Println(k)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
