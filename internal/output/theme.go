package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme colors priority and category badges for one output. A nil Theme
// renders plain text.
type Theme struct {
	r *lipgloss.Renderer
}

// NewTheme returns a theme for w. Colors follow what w supports, so a pipe or
// file gets plain text. color=false turns colors off for terminals too.
func NewTheme(w io.Writer, color bool) *Theme {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Theme{r: r}
}

// NewThemeWithProfile returns a theme that always uses profile p.
func NewThemeWithProfile(p termenv.Profile) *Theme {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(p)
	return &Theme{r: r}
}

// Priority renders s in the color of the priority's emphasis.
func (t *Theme) Priority(priority int, s string) string {
	if t == nil {
		return s
	}
	return t.r.NewStyle().Foreground(ColorClassFor(priority).color()).Render(s)
}

// Category renders s in the category's badge color.
func (t *Theme) Category(category, s string) string {
	c := CategoryStyleFor(category).color()
	if t == nil || c == nil {
		return s
	}
	return t.r.NewStyle().Foreground(c).Render(s)
}
