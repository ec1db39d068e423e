package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/zenith-terminal/zenith/pkg/version"
)

func init() {
	VersionCmd.Flags().Bool("short", false, "print the version number only")
	RootCmd.AddCommand(VersionCmd)
}

var VersionCmd = &cobra.Command{
	Use:          "version [--short]",
	Short:        "print the zenith version",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if short {
			fmt.Fprintln(out, version.Version)
			return nil
		}

		fmt.Fprintf(out, "zenith %s %s/%s %s\n", version.Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
		return nil
	},
}
