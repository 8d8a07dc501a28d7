package output

import (
	"github.com/charmbracelet/lipgloss"

	"taskman/internal/service"
)

// Icon identifies the symbol shown next to a task's category.
type Icon string

// Icon tokens.
const (
	IconCart   Icon = "cart"
	IconWrench Icon = "wrench"
	IconAlert  Icon = "alert"
)

// Emphasis is the color class for a priority badge.
type Emphasis string

// Emphasis tokens.
const (
	EmphasisHigh   Emphasis = "high"
	EmphasisMedium Emphasis = "medium"
	EmphasisLow    Emphasis = "low"
)

// Style is the badge style for a category.
type Style string

// Category badge styles.
const (
	StyleBlue   Style = "blue"
	StylePurple Style = "purple"
	StyleGray   Style = "gray"
	StylePlain  Style = "plain"
)

// Priority labels.
const (
	LabelHigh   = "High"
	LabelMedium = "Medium"
	LabelLow    = "Low"
)

// IconFor maps a category to its icon. Unknown categories get the alert icon.
func IconFor(category string) Icon {
	switch category {
	case service.CategoryBuy:
		return IconCart
	case service.CategoryDo:
		return IconWrench
	default:
		return IconAlert
	}
}

// ColorClassFor maps a priority to its emphasis. Only 3 is high and only 2 is
// medium; every other value is low.
func ColorClassFor(priority int) Emphasis {
	switch priority {
	case service.PriorityHigh:
		return EmphasisHigh
	case service.PriorityMedium:
		return EmphasisMedium
	default:
		return EmphasisLow
	}
}

// LabelFor maps a priority to its label with the same tie-break as ColorClassFor.
func LabelFor(priority int) string {
	switch priority {
	case service.PriorityHigh:
		return LabelHigh
	case service.PriorityMedium:
		return LabelMedium
	default:
		return LabelLow
	}
}

// CategoryStyleFor maps a category to its badge style.
func CategoryStyleFor(category string) Style {
	switch category {
	case service.CategoryBuy:
		return StyleBlue
	case service.CategoryDo:
		return StylePurple
	case service.CategoryOther:
		return StyleGray
	default:
		return StylePlain
	}
}

// Glyph returns the terminal symbol for the icon.
func (i Icon) Glyph() string {
	switch i {
	case IconCart:
		return "[$]"
	case IconWrench:
		return "[~]"
	default:
		return "[!]"
	}
}

func (e Emphasis) color() lipgloss.TerminalColor {
	switch e {
	case EmphasisHigh:
		return lipgloss.Color("1")
	case EmphasisMedium:
		return lipgloss.Color("3")
	default:
		return lipgloss.Color("2")
	}
}

// color is nil for the plain style.
func (s Style) color() lipgloss.TerminalColor {
	switch s {
	case StyleBlue:
		return lipgloss.Color("4")
	case StylePurple:
		return lipgloss.Color("5")
	case StyleGray:
		return lipgloss.Color("8")
	default:
		return nil
	}
}
