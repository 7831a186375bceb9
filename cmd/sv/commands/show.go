package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"simvault/pkg/serialize"
	"simvault/pkg/types"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Decode one saved object and pretty-print it",
	Long:  `Read a single object (format inferred from the suffix) and print it as indented JSON, whatever format it was stored in.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		format, ok := types.FormatForPath(path)
		if !ok {
			return fmt.Errorf("don't know what %s is (expected %s or %s)",
				path, types.FormatJSON.Suffix(), types.FormatBinary.Suffix())
		}

		tm := SV.NewTimer("show " + path)
		var v any
		if err := serialize.Read(path, &v, format, tm, SV.Sink); err != nil {
			return err
		}
		tm.Done()

		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("re-encoding %s for display: %w", path, err)
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
