package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/spiffcs/folio/internal/activity"
	"github.com/spiffcs/folio/internal/contrib"
	"github.com/spiffcs/folio/internal/output"
	"github.com/spiffcs/folio/internal/service"
	"github.com/spiffcs/folio/internal/tui"
)

// NewCmdShow creates the show command.
func NewCmdShow(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [username]",
		Short: "Show the contribution calendar and recent activity (same as root folio)",
		Long: `Loads the contribution calendar and the first activity pages of a
profile concurrently and prints both.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts, args)
		},
	}

	addShowFlags(cmd, opts)
	return cmd
}

// addShowFlags adds the show-specific flags to a command.
func addShowFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().IntVarP(&opts.Pages, "pages", "p", 0, "Activity pages to load (default from config, max 10)")
}

func runShow(cmd *cobra.Command, opts *Options, args []string) error {
	ctx := cmd.Context()

	e, err := loadEnv(ctx, opts, args)
	if err != nil {
		return err
	}
	defer e.close()
	if err := e.requireUsername(); err != nil {
		return err
	}

	pages := opts.Pages
	if pages <= 0 {
		pages = e.cfg.GetActivityPages()
	}

	rt := &progressRuntime{useTUI: shouldUseTUI(opts, e.format)}
	if rt.useTUI {
		setupLogging(opts, true)
		defer setupLogging(opts, false)
	}
	rt.startTUI(tui.WithTasks(tui.DefaultTasks()), tui.WithUsername(e.username))

	rt.sendEvent(tui.TaskAuth, tui.StatusComplete, tui.WithMessage(e.authMessage()))
	rt.sendEvent(tui.TaskCalendar, tui.StatusRunning)
	rt.sendEvent(tui.TaskActivity, tui.StatusRunning)

	loaded := 0
	portfolio := e.newPortfolio(
		withCalendarProgress(rt),
		withPageProgress(rt, pages, &loaded),
	)

	ov, err := portfolio.Overview(ctx, e.username, pages)
	if err != nil {
		rt.sendEvent(tui.TaskActivity, tui.StatusError, tui.WithError(err))
		rt.close()
		return err
	}
	rt.sendEvent(tui.TaskActivity, tui.StatusComplete, tui.WithCount(len(ov.Timeline.Events)))
	e.reportRateLimit(rt)
	tui.SendEvent(rt.events, tui.DoneEvent{})
	rt.close()

	tl := output.TimelineData{
		Username:   e.username,
		Events:     ov.Timeline.Events,
		Origin:     ov.Timeline.Origin,
		Pagination: ov.Timeline.Pagination,
		Lang:       e.lang,
		Now:        time.Now(),
		Location:   time.Local,
	}
	return output.FormatOverview(e.format, e.calendarData(ov.Calendar), tl, os.Stdout)
}

// withCalendarProgress reports the resolved calendar to the progress display.
func withCalendarProgress(rt *progressRuntime) service.Option {
	return service.WithCalendarHook(func(res contrib.Result) {
		rt.sendEvent(tui.TaskCalendar, tui.StatusComplete,
			tui.WithMessage(string(res.Origin)),
			tui.WithCount(res.Calendar.TotalContributions))
	})
}

// withPageProgress advances the activity bar as pages arrive. Page hooks run
// on the timeline goroutine only, so loaded needs no lock.
func withPageProgress(rt *progressRuntime, pages int, loaded *int) service.Option {
	return service.WithPageHook(func(page activity.Page) {
		*loaded++
		rt.sendEvent(tui.TaskActivity, tui.StatusRunning,
			tui.WithProgress(float64(*loaded)/float64(pages)),
			tui.WithCount(len(page.Events)))
	})
}
