package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spiffcs/folio/config"
	"github.com/spiffcs/folio/internal/activity"
	"github.com/spiffcs/folio/internal/cache"
	"github.com/spiffcs/folio/internal/calendar"
	"github.com/spiffcs/folio/internal/contrib"
	"github.com/spiffcs/folio/internal/ghclient"
	"github.com/spiffcs/folio/internal/locale"
	"github.com/spiffcs/folio/internal/log"
	"github.com/spiffcs/folio/internal/output"
	"github.com/spiffcs/folio/internal/prefs"
	"github.com/spiffcs/folio/internal/service"
	"github.com/spiffcs/folio/internal/tui"
)

// progressRuntime bundles the progress display threaded through a command.
type progressRuntime struct {
	useTUI  bool
	events  chan tui.Event
	tuiDone chan error
}

// startTUI initializes and starts the TUI goroutine if TUI mode is enabled.
func (rt *progressRuntime) startTUI(opts ...tui.ModelOption) {
	if !rt.useTUI {
		return
	}
	rt.events = make(chan tui.Event, 100)
	rt.tuiDone = make(chan error, 1)
	go func() {
		rt.tuiDone <- tui.Run(rt.events, opts...)
	}()
}

// close closes the event channel and waits for the TUI to finish.
func (rt *progressRuntime) close() {
	if rt.events == nil {
		return
	}
	close(rt.events)
	if rt.tuiDone != nil {
		<-rt.tuiDone
	}
	rt.events = nil
}

// sendEvent sends a task event to the TUI channel if it exists.
func (rt *progressRuntime) sendEvent(task tui.TaskID, status tui.TaskStatus, opts ...tui.TaskEventOption) {
	if rt.events == nil {
		return
	}
	tui.SendTaskEvent(rt.events, task, status, opts...)
}

// setupLogging routes logs away from the terminal while a TUI owns it.
func setupLogging(opts *Options, quiet bool) {
	if quiet {
		log.Initialize(opts.Verbosity, io.Discard)
		return
	}
	log.Initialize(opts.Verbosity, os.Stderr)
}

// env is everything a command needs to load a portfolio.
type env struct {
	cfg       *config.Config
	client    *ghclient.Client
	store     *prefs.Store
	source    *contrib.Source
	feed      *activity.Feed
	portfolio *service.Portfolio
	username  string
	format    output.Format
	lang      locale.Language
	theme     calendar.Theme
	defaults  prefs.Preferences
	layout    calendar.Options
	reveal    config.RevealSettings
}

// close releases the preferences database.
func (e *env) close() {
	if e.store == nil {
		return
	}
	if err := e.store.Close(); err != nil {
		log.Warn("failed to close preferences", "error", err)
	}
}

// loadEnv loads config and preferences, resolves the username and builds
// the GitHub client, the calendar source and the activity feed. Flags beat
// stored preferences, which beat the config file.
func loadEnv(ctx context.Context, opts *Options, args []string) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &env{cfg: cfg, layout: cfg.GetLayoutOptions()}
	e.reveal, _ = cfg.GetRevealSettings()

	e.username = cfg.Username
	if len(args) > 0 {
		e.username = strings.TrimSpace(args[0])
	}

	formatName := opts.Format
	if formatName == "" {
		formatName = cfg.DefaultFormat
	}
	if e.format, err = output.ParseFormat(formatName); err != nil {
		return nil, err
	}

	if err := e.resolvePreferences(ctx, opts); err != nil {
		return nil, err
	}

	e.client, err = ghclient.NewClient(ctx, cfg.GetGitHubToken())
	if err != nil {
		e.close()
		return nil, err
	}

	var sourceOpts []contrib.SourceOption
	if ttl, _ := cfg.GetCacheTTL(); ttl > 0 {
		c, err := cache.NewCache(cache.WithTTL(ttl))
		if err != nil {
			log.Warn("cache unavailable", "error", err)
		} else {
			sourceOpts = append(sourceOpts, contrib.WithCache(c))
		}
	}
	gen := contrib.NewGenerator(contrib.WithWeights(cfg.GetGeneratorWeights()))
	e.source = contrib.NewSource(e.client, gen, sourceOpts...)
	e.feed = activity.NewFeed(e.client, nil)
	e.portfolio = e.newPortfolio()

	return e, nil
}

// newPortfolio builds a portfolio over the shared source and feed.
func (e *env) newPortfolio(opts ...service.Option) *service.Portfolio {
	return service.New(e.source, e.feed, opts...)
}

// requireUsername fails when neither an argument nor the config names a user.
func (e *env) requireUsername() error {
	if e.username == "" {
		e.close()
		return fmt.Errorf("no username given: pass one as an argument or set it with 'folio config set username <name>'")
	}
	return nil
}

// resolvePreferences opens the preferences store and applies flag overrides.
// An unusable store only costs persistence.
func (e *env) resolvePreferences(ctx context.Context, opts *Options) error {
	lang, err := e.cfg.GetLanguage()
	if err != nil {
		return err
	}
	theme, err := e.cfg.GetTheme()
	if err != nil {
		return err
	}
	p := prefs.Preferences{Language: lang, Theme: theme}
	e.defaults = p

	if path, err := prefs.DefaultPath(); err != nil {
		log.Warn("preferences unavailable", "error", err)
	} else if store, err := prefs.Open(ctx, path, p); err != nil {
		log.Warn("preferences unavailable", "error", err)
	} else {
		e.store = store
		if stored, err := store.Load(ctx); err != nil {
			log.Warn("failed to read preferences", "error", err)
		} else {
			p = stored
		}
	}

	if opts.Lang != "" {
		if p.Language, err = locale.Parse(opts.Lang); err != nil {
			e.close()
			return err
		}
	}
	if opts.Theme != "" {
		if p.Theme, err = calendar.ParseTheme(opts.Theme); err != nil {
			e.close()
			return err
		}
	}
	e.lang, e.theme = p.Language, p.Theme
	return nil
}

// saveTheme persists a theme toggled in the TUI.
func (e *env) saveTheme(theme calendar.Theme) {
	if e.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := e.store.Set(ctx, prefs.KeyTheme, string(theme)); err != nil {
		log.Warn("failed to save theme", "error", err)
	}
}

// calendarData is the render input for the calendar of e.username.
func (e *env) calendarData(res contrib.Result) output.CalendarData {
	return output.CalendarData{
		Username: e.username,
		Calendar: res.Calendar,
		Origin:   res.Origin,
		Lang:     e.lang,
		Theme:    e.theme,
		Layout:   e.layout,
	}
}

// reportRateLimit tells the progress display when GitHub is throttling us.
func (e *env) reportRateLimit(rt *progressRuntime) {
	remaining, limit, resetAt, limited := e.client.RateLimit().Status()
	if rt.events == nil {
		if log.IsInfo() && limit > 0 {
			log.Info("rate limit", "remaining", remaining, "limit", limit, "reset", resetAt.Format(time.Kitchen))
		}
		return
	}
	if limited {
		tui.SendEvent(rt.events, tui.RateLimitEvent{Limited: true, ResetAt: resetAt})
	}
}

// authMessage names who the client acts as.
func (e *env) authMessage() string {
	if e.client.Authenticated() {
		return "GITHUB_TOKEN"
	}
	return ""
}
