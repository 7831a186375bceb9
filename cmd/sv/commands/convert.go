package commands

import (
	"fmt"

	"simvault/pkg/serialize"
	"simvault/pkg/types"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [src] [dst]",
	Short: "Re-encode an object from one format into the other",
	Long: `Read src in the format its suffix names and write the same logical value to
dst in the format *its* suffix names. Typical use: turn a hand-edited
.json map into the compact .bin the simulator loads, or back.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, dst := args[0], args[1]

		srcFormat, ok := types.FormatForPath(src)
		if !ok {
			return fmt.Errorf("don't know what %s is", src)
		}
		dstFormat, ok := types.FormatForPath(dst)
		if !ok {
			return fmt.Errorf("don't know what %s is", dst)
		}

		tm := SV.NewTimer("convert " + src)
		var v any
		if err := serialize.Read(src, &v, srcFormat, tm, SV.Sink); err != nil {
			return err
		}
		if err := serialize.Write(dst, v, dstFormat, SV.Sink); err != nil {
			return err
		}
		tm.Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
