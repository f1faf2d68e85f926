package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/spiffcs/folio/internal/log"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := NewOptions()
	var prof *profiler

	rootCmd := &cobra.Command{
		Use:   "folio [username]",
		Short: "GitHub contribution calendar and activity timeline",
		Long: `A CLI that shows a GitHub profile the way a portfolio page does: the
contribution calendar of the last year and a timeline of recent commits and
pull requests. Without a GITHUB_TOKEN, or when GitHub is unreachable, both are
simulated and clearly marked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts, args)
		},
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			log.Initialize(opts.Verbosity, os.Stderr)
			prof = newProfiler(opts)
			return prof.Start()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if prof != nil {
				prof.Stop()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Add show flags to root command so `folio` and `folio show` work identically
	addShowFlags(rootCmd, opts)
	addOutputFlags(rootCmd, opts)

	rootCmd.PersistentFlags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	// Profiling flags
	rootCmd.PersistentFlags().StringVar(&opts.CPUProfile, "cpuprofile", "", "Write CPU profile to file")
	rootCmd.PersistentFlags().StringVar(&opts.MemProfile, "memprofile", "", "Write memory profile to file")
	rootCmd.PersistentFlags().StringVar(&opts.Trace, "trace", "", "Write execution trace to file")

	// Register subcommands
	show := NewCmdShow(opts)
	calendar := NewCmdCalendar(opts)
	activity := NewCmdActivity(opts)
	for _, c := range []*cobra.Command{show, calendar, activity} {
		addOutputFlags(c, opts)
	}
	rootCmd.AddCommand(show, calendar, activity)
	rootCmd.AddCommand(NewCmdServe(opts))
	rootCmd.AddCommand(NewCmdPrefs())
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdCache())
	rootCmd.AddCommand(NewCmdRateLimit())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}

// addOutputFlags adds the rendering flags shared by the profile commands.
func addOutputFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (text, json, html; default from config)")
	cmd.Flags().StringVar(&opts.Lang, "lang", "", "Interface language (en, es; default from preferences)")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "Calendar theme (dark, light; default from preferences)")

	// TUI flag with tri-state: nil = auto, true = force, false = disable
	cmd.Flags().Var(newTUIFlag(opts), "tui", "Enable/disable the interactive view (default: auto-detect)")
}
