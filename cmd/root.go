package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/pinpt/crk/crk/crkcmd"
)

// rootCmd applies, reverts or reports the status of a crk patch set
var rootCmd = &cobra.Command{
	Use:   "crk <crkfile>",
	Short: "Apply byte patches from a crk file, or report their status",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// potentially enable profiling
		if p, _ := cmd.Flags().GetString("profile"); p != "" {
			switch p {
			case "cpu":
				defer profile.Start(profile.CPUProfile, profile.Quiet).Stop()
			case "mem":
				defer profile.Start(profile.MemProfile, profile.Quiet).Stop()
			case "trace":
				defer profile.Start(profile.TraceProfile, profile.Quiet).Stop()
			default:
				exitWithErr(fmt.Errorf("unexpected profile: %v", p))
			}
		}

		patch, _ := cmd.Flags().GetBool("patch")
		unpatch, _ := cmd.Flags().GetBool("unpatch")
		if patch && unpatch {
			exitWithErr(fmt.Errorf("--patch and --unpatch are mutually exclusive"))
		}
		mode := crkcmd.ModeStatus
		if patch {
			mode = crkcmd.ModePatch
		} else if unpatch {
			mode = crkcmd.ModeUnpatch
		}

		ask, _ := cmd.Flags().GetBool("ask")
		if ask && mode == crkcmd.ModeStatus {
			exitWithErr(fmt.Errorf("--ask requires --patch or --unpatch"))
		}

		wd, _ := cmd.Flags().GetString("wd")
		opts := crkcmd.Opts{
			CrkPath: args[0],
			WD:      wd,
			Mode:    mode,
			Ask:     ask,
		}
		if err := crkcmd.Run(context.Background(), os.Stdout, os.Stdin, opts); err != nil {
			exitWithErr(err)
		}
	},
}

func exitWithErr(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Flags().String("wd", ".", "directory containing the file(s) to patch")
	rootCmd.Flags().Bool("patch", false, "apply the patches")
	rootCmd.Flags().Bool("unpatch", false, "remove the patches")
	rootCmd.Flags().Bool("ask", false, "confirm each patch individually (requires --patch/--unpatch)")
	rootCmd.Flags().String("profile", "", "one of cpu, mem, trace or empty to disable")
	rootCmd.AddCommand(genCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
