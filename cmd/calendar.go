package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/spiffcs/folio/internal/calendar"
	"github.com/spiffcs/folio/internal/contrib"
	"github.com/spiffcs/folio/internal/output"
	"github.com/spiffcs/folio/internal/tui"
)

// NewCmdCalendar creates the calendar command.
func NewCmdCalendar(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar [username]",
		Short: "Show a GitHub contribution calendar",
		Long: `Shows the contribution calendar of the last year, laid out the way
GitHub lays it out. Without a GITHUB_TOKEN the calendar is simulated from
the public profile and marked as such.

In a terminal the calendar is interactive: arrow keys move the day cursor,
o opens the day on GitHub, t toggles the theme, r reloads.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.Animate, "animate", false, "Replay the reveal animation in non-interactive text output")
	return cmd
}

func runCalendar(cmd *cobra.Command, opts *Options, args []string) error {
	ctx := cmd.Context()

	e, err := loadEnv(ctx, opts, args)
	if err != nil {
		return err
	}
	defer e.close()
	if err := e.requireUsername(); err != nil {
		return err
	}

	if shouldUseTUI(opts, e.format) {
		setupLogging(opts, true)
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		load := func(ctx context.Context) contrib.Result {
			return e.portfolio.Calendar(ctx, e.username)
		}
		m := tui.NewCalendarModel(ctx, e.calendarData(contrib.Result{}), load,
			tui.WithRevealChunk(e.reveal.Chunk),
			tui.WithRevealInterval(e.reveal.Interval),
			tui.WithThemeHook(e.saveTheme),
		)
		return tui.RunCalendar(m)
	}

	d := e.calendarData(e.portfolio.Calendar(ctx, e.username))
	if opts.Animate && e.format == output.FormatText {
		return animateCalendar(ctx, d, e.reveal.Chunk, e.reveal.Interval, os.Stdout)
	}
	return output.NewFormatter(e.format).FormatCalendar(d, os.Stdout)
}

// animateCalendar replays the reveal by redrawing the calendar in place.
func animateCalendar(ctx context.Context, d output.CalendarData, chunk int, interval time.Duration, w io.Writer) error {
	f := &output.TextFormatter{}
	reveal := calendar.NewReveal(chunk)
	reveal.Start(len(d.Calendar.Weeks))

	var buf bytes.Buffer
	drawn := 0
	frame := func(r *calendar.Reveal) {
		buf.Reset()
		f.Visible = r.IsLoaded
		if err := f.FormatCalendar(d, &buf); err != nil {
			return
		}
		if drawn > 0 {
			fmt.Fprintf(w, "\033[%dA", drawn)
		}
		_, _ = w.Write(buf.Bytes())
		drawn = bytes.Count(buf.Bytes(), []byte("\n"))
	}
	return calendar.Animate(ctx, reveal, interval, frame)
}
