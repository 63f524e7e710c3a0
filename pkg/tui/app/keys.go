package teaui

import "github.com/charmbracelet/bubbles/v2/key"

type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Upload    key.Binding
	Prev      key.Binding
	Next      key.Binding
	Close     key.Binding
	Open      key.Binding
	NextMonth key.Binding
	PrevMonth key.Binding
	Slots     []key.Binding
}

func defaultKeys() keyMap {
	k := keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open first"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next month"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev month"),
		),
	}
	for _, d := range "123456789" {
		k.Slots = append(k.Slots, key.NewBinding(key.WithKeys(string(d))))
	}
	return k
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		h := b.Help()
		if i > 0 {
			out += "  "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
