package report

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/LISSConsulting/pplx/internal/store"
)

// ColorChoice selects how output coloring is decided.
type ColorChoice int

const (
	ColorAuto   ColorChoice = iota // color when writing to a terminal and NO_COLOR is unset
	ColorAlways                    // --color
	ColorNever                     // --no-color
)

// Mode label colors, ANSI 16-color so they follow the terminal theme.
var modeColors = map[store.Mode]lipgloss.Color{
	store.ModeSearch:   lipgloss.Color("6"), // cyan
	store.ModeAsk:      lipgloss.Color("2"), // green
	store.ModeResearch: lipgloss.Color("5"), // magenta
	store.ModeReason:   lipgloss.Color("3"), // yellow
}

// Styles renders the dim, bold and per-mode text used by the log views.
// With color disabled every method returns its input unchanged.
type Styles struct {
	dim   lipgloss.Style
	bold  lipgloss.Style
	plain lipgloss.Style
	modes map[store.Mode]lipgloss.Style
}

// NewStyles builds Styles bound to out.
func NewStyles(out io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(out)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	s := Styles{
		dim:   r.NewStyle().Faint(true),
		bold:  r.NewStyle().Bold(true),
		plain: r.NewStyle(),
		modes: make(map[store.Mode]lipgloss.Style, len(modeColors)),
	}
	for m, c := range modeColors {
		s.modes[m] = r.NewStyle().Foreground(c)
	}
	return s
}

// Dim renders secondary text.
func (s Styles) Dim(text string) string { return s.dim.Render(text) }

// Bold renders emphasised text.
func (s Styles) Bold(text string) string { return s.bold.Render(text) }

// Mode renders text in the color of mode m. Unknown modes are left unstyled.
func (s Styles) Mode(m store.Mode, text string) string {
	if st, ok := s.modes[m]; ok {
		return st.Render(text)
	}
	return s.plain.Render(text)
}

// UseColor resolves choice for the stream out.
func UseColor(out io.Writer, choice ColorChoice) bool {
	switch choice {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
