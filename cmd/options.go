package cmd

// Options carries the flags shared by every ghlens command.
type Options struct {
	Format    string // table, json or markdown; empty uses default_format
	APIURL    string // overrides api_url and GHLENS_API_URL
	Verbosity int
	TUI       *bool // nil detects the terminal
	Year      int   // calendar year, zero for the current one

	CPUProfile string
	MemProfile string
	Trace      string
}

// Option mutates Options.
type Option func(*Options)

// NewOptions returns zero Options with opts applied.
func NewOptions(opts ...Option) *Options {
	o := new(Options)
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFormat sets the output format.
func WithFormat(format string) Option { return func(o *Options) { o.Format = format } }

// WithAPIURL sets the backend root URL.
func WithAPIURL(url string) Option { return func(o *Options) { o.APIURL = url } }

// WithVerbosity sets the -v count.
func WithVerbosity(v int) Option { return func(o *Options) { o.Verbosity = v } }

// WithTUI forces the TUI on or off; nil restores detection.
func WithTUI(tui *bool) Option { return func(o *Options) { o.TUI = tui } }

// WithYear selects the calendar year.
func WithYear(year int) Option { return func(o *Options) { o.Year = year } }
