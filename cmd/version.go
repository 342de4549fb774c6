package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/confviz/pkg/settings"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		v := settings.VersionInformation
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\ncommit: %s\nbuilt: %s\ngo: %s\n",
			settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
		return err
	},
}

func versionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s (commit %s, built %s)", v.BuildVersion, v.Commit, v.BuildTime)
}
