package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/spiffcs/folio/internal/activity"
	"github.com/spiffcs/folio/internal/log"
	"github.com/spiffcs/folio/internal/output"
	"github.com/spiffcs/folio/internal/service"
	"github.com/spiffcs/folio/internal/tui"
)

// NewCmdActivity creates the activity command.
func NewCmdActivity(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity [username]",
		Short: "Show recent commits and pull requests",
		Long: `Shows recent commits and pull requests grouped by day and repository.

In a terminal the timeline scrolls: pages load as you reach the end, up to
ten pages. Elsewhere --pages pages are printed at once. Without public
activity a simulated timeline is shown and marked as such.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActivity(cmd, opts, args)
		},
	}

	cmd.Flags().IntVarP(&opts.Pages, "pages", "p", 0, "Pages to load in non-interactive output (default from config, max 10)")
	return cmd
}

func runActivity(cmd *cobra.Command, opts *Options, args []string) error {
	ctx := cmd.Context()

	e, err := loadEnv(ctx, opts, args)
	if err != nil {
		return err
	}
	defer e.close()
	if err := e.requireUsername(); err != nil {
		return err
	}

	data := output.TimelineData{
		Username: e.username,
		Lang:     e.lang,
		Location: time.Local,
	}

	if shouldUseTUI(opts, e.format) {
		setupLogging(opts, true)
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		newStream := func() tui.PageLoader {
			return e.portfolio.Stream(e.username)
		}
		return tui.RunTimeline(tui.NewTimelineModel(ctx, data, newStream))
	}

	pages := opts.Pages
	if pages <= 0 {
		pages = e.cfg.GetActivityPages()
	}
	loaded := 0
	portfolio := e.newPortfolio(service.WithPageHook(func(activity.Page) {
		loaded++
		log.Progress("Loading activity pages %d/%d...", loaded, pages)
	}))
	tl, err := portfolio.Timeline(ctx, e.username, pages)
	log.ProgressDone()
	if err != nil {
		return err
	}
	data.Events = tl.Events
	data.Origin = tl.Origin
	data.Pagination = tl.Pagination
	data.Now = time.Now()
	return output.NewFormatter(e.format).FormatTimeline(data, os.Stdout)
}
