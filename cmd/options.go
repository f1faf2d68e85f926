package cmd

// Options holds the shared command-line options for the folio CLI.
type Options struct {
	Format    string
	Lang      string
	Theme     string
	Verbosity int
	TUI       *bool // nil = auto-detect, true = force TUI, false = disable TUI

	// Calendar options
	Animate bool // Replay the reveal animation in plain terminals

	// Activity options
	Pages int

	// Server options
	Addr string

	// Profiling options
	CPUProfile string // Write CPU profile to file
	MemProfile string // Write memory profile to file
	Trace      string // Write execution trace to file
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFormat sets the output format (text, json, html).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithLang sets the interface language (en, es).
func WithLang(lang string) Option {
	return func(o *Options) {
		o.Lang = lang
	}
}

// WithTheme sets the calendar theme (dark, light).
func WithTheme(theme string) Option {
	return func(o *Options) {
		o.Theme = theme
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithTUI controls TUI mode (nil = auto-detect, true = force, false = disable).
func WithTUI(tui *bool) Option {
	return func(o *Options) {
		o.TUI = tui
	}
}

// WithPages sets how many activity pages non-interactive output loads.
func WithPages(n int) Option {
	return func(o *Options) {
		o.Pages = n
	}
}

// WithAddr sets the listen address of the HTTP API.
func WithAddr(addr string) Option {
	return func(o *Options) {
		o.Addr = addr
	}
}
