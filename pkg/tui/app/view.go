package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/photobook/pkg/gallery"
	"tableflip.dev/photobook/pkg/pager"
	"tableflip.dev/photobook/pkg/tui/theme"
	"tableflip.dev/photobook/pkg/viewer"
)

const (
	defaultWidth = 80
	loadingText  = "Loading photos..."
)

func (m *Model) contentWidth() int {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	return w
}

// View renders the gallery, or the lightbox when one is open.
func (m *Model) View() string {
	v := m.state.View()
	width := m.contentWidth()

	switch v.Status {
	case gallery.StatusDisabled:
		return m.notice(v.Label, "", width)
	case gallery.StatusFailed:
		return m.notice(v.Label, v.Message, width)
	}

	if m.uploadOpen {
		return m.upload.View(width)
	}

	if v.Lightbox != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.lightbox(*v.Lightbox, width),
			m.footer(true),
		)
	}

	parts := []string{m.header(v, width), m.monthStrip(v.Page.Category)}
	switch {
	case v.Status == gallery.StatusLoading:
		parts = append(parts, m.theme.Footer.Status.Render(loadingText))
	case len(v.Cards) == 0:
		parts = append(parts, m.theme.Card.Note.Render(v.Message))
	default:
		for _, c := range v.Cards {
			parts = append(parts, m.card(c, v.Page.Category, width))
		}
	}
	parts = append(parts, m.indicators(v.Indicators, v.Page.Category), m.footer(false))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) header(v gallery.View, width int) string {
	accent := theme.Accent(v.Page.Category, m.state.Projection().Categories())
	month := m.theme.Header.Month.Foreground(accent).Render(strings.ToUpper(v.Label))

	prev, next := "‹", "›"
	if v.PrevDisabled {
		prev = " "
	}
	if v.NextDisabled {
		next = " "
	}
	page := m.theme.Header.Page.Render(fmt.Sprintf("%s %s %s", prev, v.PageLabel, next))

	gap := width - lipgloss.Width(month) - lipgloss.Width(page)
	if gap < 1 {
		gap = 1
	}
	return month + strings.Repeat(" ", gap) + page
}

func (m *Model) monthStrip(active int) string {
	p := m.state.Projection()
	model := p.Model()
	cells := make([]string, 0, p.Categories())
	for cat := 0; cat < p.Categories(); cat++ {
		name := model.Name(cat)
		if len(name) > 3 {
			name = name[:3]
		}
		style := m.theme.Header.Strip
		switch {
		case cat == active:
			style = m.theme.Header.StripOn.Foreground(theme.Accent(cat, p.Categories()))
		case p.Len(cat) == 0:
			style = m.theme.Header.StripNone
		}
		cells = append(cells, style.Render(name))
	}
	return " " + strings.Join(cells, " ")
}

func (m *Model) card(c gallery.Card, cat, width int) string {
	inner := width - m.theme.Card.Frame.GetHorizontalFrameSize()
	if inner < 20 {
		inner = 20
	}
	lines := []string{
		m.theme.Card.Slot.Render(fmt.Sprintf("[%d]", c.Slot+1)) + " " + m.theme.Card.Caption.Render(c.Caption),
	}
	if c.HasNote {
		lines = append(lines, m.theme.Card.Note.Render(wordwrap.String(c.Note, inner)))
	}
	lines = append(lines, m.theme.Card.URL.Render(c.URL))
	frame := m.theme.Card.Frame.
		BorderForeground(theme.Accent(cat, m.state.Projection().Categories())).
		Width(width)
	return frame.Render(strings.Join(lines, "\n"))
}

func (m *Model) indicators(all []pager.Indicator, cat int) string {
	var dots []string
	for _, ind := range all {
		if ind.Category != cat {
			continue
		}
		if ind.Active {
			dots = append(dots, m.theme.Indicator.Active.Render("●"))
		} else {
			dots = append(dots, m.theme.Indicator.Inactive.Render("○"))
		}
	}
	return " " + strings.Join(dots, " ")
}

func (m *Model) lightbox(f viewer.Frame, width int) string {
	inner := width - m.theme.Lightbox.Frame.GetHorizontalFrameSize()
	if inner < 20 {
		inner = 20
	}
	lines := []string{
		m.theme.Lightbox.Title.Render(f.Caption),
		m.theme.Footer.Status.Render(f.Position),
		"",
		m.theme.Lightbox.Body.Render(f.URL),
	}
	if f.HasNote {
		lines = append(lines, "", m.theme.Card.Note.Render(wordwrap.String(f.Note, inner)))
	} else {
		lines = append(lines, "", m.theme.Footer.Status.Render(f.Alt))
	}
	nav := []string{"‹ prev", "next ›"}
	if f.PrevDisabled {
		nav[0] = m.theme.Footer.Disabled.Render(nav[0])
	}
	if f.NextDisabled {
		nav[1] = m.theme.Footer.Disabled.Render(nav[1])
	}
	lines = append(lines, "", strings.Join(nav, "   "))
	frame := m.theme.Lightbox.Frame.
		BorderForeground(theme.Accent(f.Category, m.state.Projection().Categories())).
		Width(width)
	return frame.Render(strings.Join(lines, "\n"))
}

func (m *Model) notice(title, body string, width int) string {
	lines := []string{m.theme.Notice.Title.Render(title)}
	if body != "" {
		lines = append(lines, "", m.theme.Notice.Body.Render(wordwrap.String(body, width-8)))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Notice.Frame.Render(strings.Join(lines, "\n")),
		m.theme.Footer.Help.Render(helpLine(m.keys.Quit)),
	)
}

func (m *Model) footer(lightbox bool) string {
	var help string
	if lightbox {
		help = helpLine(m.keys.Prev, m.keys.Next, m.keys.Close, m.keys.Quit)
	} else {
		keys := []key.Binding{m.keys.Prev, m.keys.Next, m.keys.NextMonth, m.keys.Open}
		if m.upload != nil {
			keys = append(keys, m.keys.Upload)
		}
		help = helpLine(append(keys, m.keys.Quit)...) + "  1-9 open"
	}
	out := m.theme.Footer.Help.Render(help)
	if m.status != "" {
		out += "  " + m.theme.Footer.Status.Render(m.status)
	}
	return out
}
