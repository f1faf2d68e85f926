package cmd

import (
	"fmt"
	"io"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/spf13/cobra"

	"github.com/spiffcs/folio/config"
	"github.com/spiffcs/folio/internal/ghclient"
)

// NewCmdRateLimit creates the ratelimit command.
func NewCmdRateLimit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratelimit",
		Short: "Check GitHub API rate limit status",
		Long: `Display current GitHub API rate limit status including remaining quota and reset time.
Works without a token, against the much smaller anonymous quota.`,
	}
	cmd.AddCommand(NewCmdRateLimitStatus())
	return cmd
}

// NewCmdRateLimitStatus creates the ratelimit status subcommand.
func NewCmdRateLimitStatus() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current rate limit status",
		Long:  `Display the current GitHub API rate limit status for the core and GraphQL APIs.`,
		RunE:  runRateLimitStatus,
	}
}

func runRateLimitStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := ghclient.NewClient(ctx, cfg.GetGitHubToken())
	if err != nil {
		return err
	}

	limits, err := client.RateLimits(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if client.Authenticated() {
		fmt.Fprintln(out, "GitHub API Rate Limits (GITHUB_TOKEN):")
	} else {
		fmt.Fprintln(out, "GitHub API Rate Limits (anonymous):")
	}
	fmt.Fprintln(out)
	printRate(out, "Core API:", limits.Core, time.Now())
	printRate(out, "GraphQL:", limits.GraphQL, time.Now())
	return nil
}

// printRate prints one quota line. Nil rates are skipped; GitHub omits
// GraphQL for anonymous callers.
func printRate(out io.Writer, label string, r *gh.Rate, now time.Time) {
	if r == nil {
		return
	}
	resetIn := max(r.Reset.Time.Sub(now).Round(time.Second), 0)
	fmt.Fprintf(out, "%-11s %d/%d remaining (resets in %s)\n", label, r.Remaining, r.Limit, resetIn)
}
