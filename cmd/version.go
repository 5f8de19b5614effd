package cmd

import (
	"cmp"
	"fmt"

	"github.com/spf13/cobra"
)

// Build metadata, overridden from main via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo records the build metadata printed by `ghlens version`.
// Empty values keep the development defaults.
func SetVersionInfo(v, c, d string) {
	version = cmp.Or(v, version)
	commit = cmp.Or(c, commit)
	date = cmp.Or(d, date)
}

// NewCmdVersion creates the version command.
func NewCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ghlens %s\n  commit: %s\n  built:  %s\n", version, commit, date)
		},
	}
}
