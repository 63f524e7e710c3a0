// Package teaui hosts the Bubble Tea program for the photobook gallery.
package teaui

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/photobook/pkg/app"
	"tableflip.dev/photobook/pkg/category"
	"tableflip.dev/photobook/pkg/gallery"
	"tableflip.dev/photobook/pkg/pager"
	"tableflip.dev/photobook/pkg/store"
	"tableflip.dev/photobook/pkg/tui/theme"
)

// Options tunes the model.
type Options struct {
	PageSize int
	// Disabled, when set, renders the notice instead of the gallery and
	// never touches the service.
	Disabled string
	Log      *slog.Logger
}

// Model contains UI state
type Model struct {
	svc    *app.Service
	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger

	state gallery.State
	keys  keyMap
	theme theme.Theme

	width  int
	height int
	status string

	watchCh     <-chan store.Snapshot
	watchCancel context.CancelFunc

	upload     *uploadOverlay
	uploadOpen bool
}

// New creates a gallery model backed by svc.
func New(svc *app.Service, opts Options) (*Model, error) {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	model := category.Months()
	policy := category.DropUnresolved
	if svc != nil {
		model = svc.Model
		policy = svc.Policy
	}
	size := opts.PageSize
	if size == 0 {
		size = pager.DefaultSize
	}

	var state gallery.State
	if opts.Disabled != "" || svc == nil {
		msg := opts.Disabled
		if msg == "" {
			msg = "No photo store configured."
		}
		state = gallery.Disabled(model, msg)
		svc = nil
	} else {
		var err error
		state, err = gallery.New(model, policy, size)
		if err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		svc:    svc,
		ctx:    ctx,
		cancel: cancel,
		log:    log,
		state:  state,
		keys:   defaultKeys(),
		theme:  theme.Default(),
	}
	if svc != nil {
		relay := &progressRelay{}
		m.upload = newUploadOverlay(svc.Uploader(relay.send), relay, model, m.theme, log)
	}
	return m, nil
}

// Run launches the Bubble Tea program.
func Run(m *Model) error {
	defer m.cancel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// State exposes the current gallery state.
func (m *Model) State() gallery.State {
	return m.state
}

// Init subscribes to the live query.
func (m *Model) Init() tea.Cmd {
	return startWatchCmd(m.ctx, m.svc)
}

type watchStartedMsg struct {
	ch     <-chan store.Snapshot
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	snapshot store.Snapshot
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if snap, ok := <-ch; ok {
			return watchEventMsg{snapshot: snap}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) handleSnapshot(snap store.Snapshot) {
	if snap.Err != nil {
		m.log.Error("live query failed", "error", snap.Err)
		m.state = m.state.Fail(snap.Err)
		return
	}
	m.state = m.state.Apply(snap.Records)
	p := m.state.Projection()
	m.log.Debug("snapshot applied", "records", len(snap.Records), "placed", p.Total(), "dropped", p.Dropped())
}

// Update routes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.upload != nil {
			m.upload.SetSize(msg.Width)
		}

	case tea.KeyPressMsg:
		if m.uploadOpen {
			if key.Matches(msg, m.keys.ForceQuit) {
				return m, m.quit()
			}
			cmd, closed := m.upload.handleKey(m.ctx, msg)
			if closed {
				m.uploadOpen = false
			}
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
			break
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, m.quit()
		}
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case uploadProgressMsg:
		if m.upload != nil {
			if cmd := m.upload.handleProgress(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

	case uploadDoneMsg:
		if m.upload != nil {
			m.upload.handleDone(msg)
		}

	case watchStartedMsg:
		if msg.err != nil {
			m.log.Error("live query subscribe failed", "error", msg.err)
			m.state = m.state.Fail(msg.err)
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		m.status = "Watching for changes"
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case watchEventMsg:
		m.handleSnapshot(msg.snapshot)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case watchStoppedMsg:
		m.stopWatch()
		if m.ctx.Err() == nil {
			cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
		}
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) quit() tea.Cmd {
	m.stopWatch()
	m.cancel()
	return tea.Quit
}

// UploadOpen reports whether the upload form is showing.
func (m *Model) UploadOpen() bool {
	return m.uploadOpen
}

func (m *Model) openUpload() tea.Cmd {
	if m.upload == nil {
		return nil
	}
	m.uploadOpen = true
	m.status = ""
	return m.upload.updateInputFocus()
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	var changed bool
	switch {
	case key.Matches(msg, m.keys.Close):
		m.state, changed = m.state.HandleKey(gallery.KeyEscape)
	case key.Matches(msg, m.keys.Prev):
		m.state, changed = m.state.HandleKey(gallery.KeyLeft)
	case key.Matches(msg, m.keys.Next):
		m.state, changed = m.state.HandleKey(gallery.KeyRight)
	case m.state.Viewer().IsOpen():
		// Everything else is inert while the lightbox is up.
	case key.Matches(msg, m.keys.NextMonth):
		m.state, changed = m.state.SelectCategory(1)
	case key.Matches(msg, m.keys.PrevMonth):
		m.state, changed = m.state.SelectCategory(-1)
	case key.Matches(msg, m.keys.Upload):
		return m.openUpload()
	case key.Matches(msg, m.keys.Open):
		m.state, changed = m.state.OpenSlot(0)
	default:
		for slot, b := range m.keys.Slots {
			if key.Matches(msg, b) {
				m.state, changed = m.state.OpenSlot(slot)
				break
			}
		}
	}
	if changed {
		m.status = ""
	}
	return nil
}
