package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := NewOptions()

	rootCmd := &cobra.Command{
		Use:   "ghlens <username>",
		Short: "Explore a GitHub profile from the terminal",
		Long: `A CLI for the ghlens analysis backend. It shows a user's profile and
repository timeline, their contribution calendar year by year, and
AI-generated summaries of individual repositories.

Running ghlens with a username is the same as 'ghlens profile <username>'.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// A missing .env is fine; the environment may already be set.
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runProfile(cmd, args[0], opts)
		},
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	addGlobalFlags(rootCmd, opts)

	// Register subcommands
	rootCmd.AddCommand(NewCmdProfile(opts))
	rootCmd.AddCommand(NewCmdCalendar(opts))
	rootCmd.AddCommand(NewCmdRepo(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdCache())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}

// addGlobalFlags adds the flags shared by every data command.
func addGlobalFlags(cmd *cobra.Command, opts *Options) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.Format, "output", "o", "", "Output format (table, json, markdown)")
	flags.StringVar(&opts.APIURL, "api-url", "", "Backend root URL (overrides GHLENS_API_URL and api_url)")
	flags.CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	// TUI flag with tri-state: nil = auto, true = force, false = disable
	flags.Var(newTUIFlag(opts), "tui", "Enable/disable TUI (default: auto-detect)")
	flags.Lookup("tui").NoOptDefVal = "true"

	// Profiling flags
	flags.StringVar(&opts.CPUProfile, "cpuprofile", "", "Write CPU profile to file")
	flags.StringVar(&opts.MemProfile, "memprofile", "", "Write memory profile to file")
	flags.StringVar(&opts.Trace, "trace", "", "Write execution trace to file")
}
