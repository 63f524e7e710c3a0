package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header    HeaderTheme
	Card      CardTheme
	Lightbox  ModalTheme
	Indicator IndicatorTheme
	Footer    FooterTheme
	Notice    ModalTheme
	Form      FormTheme
}

// HeaderTheme styles the month label and page counter.
type HeaderTheme struct {
	Month     lipgloss.Style
	Page      lipgloss.Style
	Strip     lipgloss.Style
	StripOn   lipgloss.Style
	StripNone lipgloss.Style
}

// CardTheme styles one photo tile.
type CardTheme struct {
	Frame   lipgloss.Style
	Slot    lipgloss.Style
	Caption lipgloss.Style
	Note    lipgloss.Style
	URL     lipgloss.Style
}

// IndicatorTheme styles the page dots.
type IndicatorTheme struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
}

// FooterTheme groups styles used by the bottom status and help line.
type FooterTheme struct {
	Help     lipgloss.Style
	Status   lipgloss.Style
	Disabled lipgloss.Style
}

// FormTheme styles the upload form rows and its status line.
type FormTheme struct {
	Frame  lipgloss.Style
	Label  lipgloss.Style
	Focus  lipgloss.Style
	Faint  lipgloss.Style
	Error  lipgloss.Style
	Status lipgloss.Style
}

// ModalTheme styles centered overlays such as the lightbox.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Header: HeaderTheme{
			Month:     lipgloss.NewStyle().Bold(true).Padding(0, 1),
			Page:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Strip:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			StripOn:   lipgloss.NewStyle().Bold(true).Underline(true),
			StripNone: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		},
		Card: CardTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Slot:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Caption: lipgloss.NewStyle().Bold(true),
			Note:    lipgloss.NewStyle().Italic(true),
			URL:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Lightbox: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Indicator: IndicatorTheme{
			Active:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Inactive: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
		Footer: FooterTheme{
			Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		},
		Notice: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Form: FormTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("212")).
				Padding(1, 2),
			Label:  lipgloss.NewStyle(),
			Focus:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Faint:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
	}
}

// Accent is the hue of category cat out of n, spread evenly around the
// color wheel.
func Accent(cat, n int) color.Color {
	if n <= 0 {
		n = 1
	}
	hue := 360 * float64(cat%n) / float64(n)
	return lipgloss.Color(colorful.Hcl(hue, 0.6, 0.7).Clamped().Hex())
}
