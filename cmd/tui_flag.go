package cmd

import (
	"fmt"
	"strconv"

	"github.com/spiffcs/ghlens/internal/tui"
)

// autoBool is a pflag.Value for a flag that is true, false or unset (auto).
// A bare --tui means true.
type autoBool struct {
	target **bool
}

func newTUIFlag(opts *Options) *autoBool {
	return &autoBool{target: &opts.TUI}
}

func (f *autoBool) String() string {
	if f.target == nil || *f.target == nil {
		return "auto"
	}
	return strconv.FormatBool(**f.target)
}

func (f *autoBool) Set(s string) error {
	if s == "auto" {
		*f.target = nil
		return nil
	}
	switch s {
	case "yes":
		s = "true"
	case "no":
		s = "false"
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid value %q: use true, false, or auto", s)
	}
	*f.target = &v
	return nil
}

func (f *autoBool) Type() string { return "bool" }

func (f *autoBool) IsBoolFlag() bool { return true }

// shouldUseTUI resolves the --tui flag. Verbose runs never use the TUI so
// their logs stay visible; auto checks for an interactive, non-CI terminal.
func shouldUseTUI(opts *Options) bool {
	if opts.Verbosity > 0 {
		return false
	}
	if opts.TUI != nil {
		return *opts.TUI
	}
	return tui.ShouldUseTUI()
}
