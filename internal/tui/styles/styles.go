package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	FusionRed  = lipgloss.Color("#E1544B")
	Gold       = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(FusionRed)

	RatingStyle = lipgloss.NewStyle().
			Foreground(Gold)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	// SectionTitleStyle underlines page and section headings
	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(White).
				Bold(true).
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(FusionRed)
)

// Navigation bar
var (
	NavBarStyle = lipgloss.NewStyle().
			Padding(0, 1)

	BrandStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(FusionRed).
			Bold(true).
			Padding(0, 1)

	NavItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	NavItemActiveStyle = lipgloss.NewStyle().
				Foreground(FusionRed).
				Bold(true).
				Underline(true).
				Padding(0, 1)

	UserBadgeStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(FusionRed).
			Padding(0, 1)
)

// Favorite indicators
const (
	HeartFull  = "♥"
	HeartEmpty = "♡"
)

var (
	HeartFullStyle  = lipgloss.NewStyle().Foreground(FusionRed).Bold(true)
	HeartEmptyStyle = lipgloss.NewStyle().Foreground(LightGray)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(FusionRed).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(FusionRed)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Movie card styles
const CardWidth = 24

var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1).
			Width(CardWidth)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FusionRed).
				Padding(0, 1).
				Width(CardWidth)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(FusionRed)
)

// Search bar styles
var (
	SearchStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	SearchFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FusionRed).
				Padding(0, 1)

	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(FusionRed).
				Bold(true)
)

// Pagination styles
var (
	PageStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	PageActiveStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(FusionRed).
			Bold(true).
			Padding(0, 1)
)

// Match highlight styles for search results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(FusionRed).
				Bold(true)
)

// Helper functions

// Truncate shortens s to width runes with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// Wrap breaks s into lines of at most width runes on word boundaries
func Wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var line []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		switch {
		case len(line) == 0:
			line = w
		case len(line)+1+len(w) <= width:
			line = append(append(line, ' '), w...)
		default:
			lines = append(lines, string(line))
			line = w
		}
		for len(line) > width {
			lines = append(lines, string(line[:width]))
			line = line[width:]
		}
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}

// Highlight renders text with the runes at indexes in the match style
func Highlight(text string, indexes []int, base lipgloss.Style) string {
	if len(indexes) == 0 {
		return base.Render(text)
	}

	matchSet := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		matchSet[idx] = true
	}

	// Batch consecutive runes with the same style
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); {
		isMatch := matchSet[i]
		j := i
		for j < len(runes) && matchSet[j] == isMatch {
			j++
		}
		segment := string(runes[i:j])
		if isMatch {
			b.WriteString(MatchHighlightStyle.Inherit(base).Render(segment))
		} else {
			b.WriteString(base.Render(segment))
		}
		i = j
	}
	return b.String()
}
