package output

import (
	"io"
	"os"

	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// DetectColor decides whether output to w should be coloured. mode is one
// of the config.Color* values; "always" and "never" win over detection.
func DetectColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}

	return termenv.NewOutput(f).EnvColorProfile() != termenv.Ascii
}
