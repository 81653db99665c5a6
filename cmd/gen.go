package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinpt/crk/crk/crkcmd"
)

// genCmd generates a crk patch set from two files or two directory trees
var genCmd = &cobra.Command{
	Use:   "gen <original> <patched>",
	Short: "Generate a crk patch set from two files or directories",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		opts := crkcmd.GenOpts{
			Original: args[0],
			Patched:  args[1],
			Output:   output,
		}
		if err := crkcmd.RunGen(context.Background(), os.Stdout, opts); err != nil {
			exitWithErr(err)
		}
	},
}

func init() {
	genCmd.Flags().StringP("output", "o", "", "write the generated patch set to <path> instead of stdout")
}
