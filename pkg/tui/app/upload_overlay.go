package teaui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/photobook/pkg/category"
	"tableflip.dev/photobook/pkg/tui/theme"
	"tableflip.dev/photobook/pkg/upload"
)

type uploadField int

const (
	fieldMonth uploadField = iota
	fieldAuthor
	fieldNotes
	fieldFiles
	fieldCount
)

type uploadProgressMsg struct {
	update upload.Update
}

type uploadDoneMsg struct {
	result upload.Result
	err    error
}

// progressRelay forwards coordinator progress to the batch currently being
// watched. Updates are dropped when the reader falls behind.
type progressRelay struct {
	mu sync.Mutex
	ch chan upload.Update
}

func (r *progressRelay) open() <-chan upload.Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ch = make(chan upload.Update, 16)
	return r.ch
}

func (r *progressRelay) send(u upload.Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ch == nil {
		return
	}
	select {
	case r.ch <- u:
	default:
	}
}

func (r *progressRelay) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ch != nil {
		close(r.ch)
		r.ch = nil
	}
}

// uploadOverlay is the upload form. It owns one coordinator for the life of
// the program, so a second submit while a batch runs is rejected.
type uploadOverlay struct {
	coord *upload.Coordinator
	relay *progressRelay
	model category.Model
	theme theme.Theme
	log   *slog.Logger

	form   upload.Form
	focus  uploadField
	author textinput.Model
	notes  textinput.Model
	files  textinput.Model

	submitting bool
	progress   <-chan upload.Update
	status     string
	errMsg     string
	last       *upload.Result
}

func newUploadOverlay(coord *upload.Coordinator, relay *progressRelay, model category.Model, th theme.Theme, log *slog.Logger) *uploadOverlay {
	author := textinput.New()
	author.Placeholder = "Who took these?"
	author.Prompt = ""

	notes := textinput.New()
	notes.Placeholder = "A note for every photo"
	notes.Prompt = ""

	files := textinput.New()
	files.Placeholder = "~/photos/a.jpg, ~/photos/b.png"
	files.Prompt = ""

	return &uploadOverlay{
		coord:  coord,
		relay:  relay,
		model:  model,
		theme:  th,
		log:    log,
		form:   upload.NewForm(),
		focus:  fieldMonth,
		author: author,
		notes:  notes,
		files:  files,
	}
}

// busy reports whether the form controls are disabled.
func (o *uploadOverlay) busy() bool {
	return o.submitting || o.coord.InFlight()
}

// Form returns the form as of the last edit.
func (o *uploadOverlay) Form() upload.Form {
	f := o.form
	f.Author = o.author.Value()
	f.Note = o.notes.Value()
	return f
}

func (o *uploadOverlay) SetSize(width int) {
	w := width - 24
	if w < 12 {
		w = 12
	}
	o.author.SetWidth(w)
	o.notes.SetWidth(w)
	o.files.SetWidth(w)
}

// handleKey applies one key press. It reports true when the overlay should
// close.
func (o *uploadOverlay) handleKey(ctx context.Context, msg tea.KeyPressMsg) (tea.Cmd, bool) {
	if o.busy() {
		return nil, false
	}

	switch msg.String() {
	case "esc":
		o.blur()
		return nil, true
	case "tab":
		return o.advanceFocus(1), false
	case "shift+tab":
		return o.advanceFocus(-1), false
	case "enter":
		return o.submit(ctx), false
	case "left", "right":
		if o.focus == fieldMonth {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			o.selectMonth(delta)
			return nil, false
		}
	}

	o.errMsg = ""
	var cmd tea.Cmd
	switch o.focus {
	case fieldAuthor:
		o.author, cmd = o.author.Update(msg)
	case fieldNotes:
		o.notes, cmd = o.notes.Update(msg)
	case fieldFiles:
		o.files, cmd = o.files.Update(msg)
	}
	return cmd, false
}

func (o *uploadOverlay) selectMonth(delta int) {
	n := o.model.Len()
	if n == 0 {
		return
	}
	cat := o.form.Category
	switch {
	case cat == upload.NoCategory && delta > 0:
		cat = 0
	case cat == upload.NoCategory:
		cat = n - 1
	default:
		cat += delta
	}
	if cat < 0 {
		cat = 0
	}
	if cat >= n {
		cat = n - 1
	}
	o.form.Category = cat
	o.errMsg = ""
}

func (o *uploadOverlay) advanceFocus(delta int) tea.Cmd {
	o.focus = (o.focus + fieldCount + uploadField(delta)) % fieldCount
	return o.updateInputFocus()
}

func (o *uploadOverlay) updateInputFocus() tea.Cmd {
	o.author.Blur()
	o.notes.Blur()
	o.files.Blur()
	switch o.focus {
	case fieldAuthor:
		return o.author.Focus()
	case fieldNotes:
		return o.notes.Focus()
	case fieldFiles:
		return o.files.Focus()
	}
	return nil
}

func (o *uploadOverlay) blur() {
	o.author.Blur()
	o.notes.Blur()
	o.files.Blur()
}

// submit validates what it can locally, reads the files and starts the
// batch. The returned command settles into an uploadDoneMsg.
func (o *uploadOverlay) submit(ctx context.Context) tea.Cmd {
	o.last = nil
	o.status = ""
	form := o.Form()
	if form.Category == upload.NoCategory {
		o.errMsg = upload.Message(upload.ErrNoCategory)
		return nil
	}
	files, err := upload.ReadFiles(upload.SplitPaths(o.files.Value())...)
	if err != nil {
		o.errMsg = err.Error()
		return nil
	}
	form.Files = files
	batch := form.Batch()
	if err := batch.Validate(); err != nil {
		o.errMsg = upload.Message(err)
		return nil
	}

	o.form = form
	o.errMsg = ""
	o.submitting = true
	o.status = fmt.Sprintf("Uploading %d photos...", len(files))
	o.progress = o.relay.open()
	coord, relay := o.coord, o.relay
	run := func() tea.Msg {
		res, err := coord.Submit(ctx, batch)
		relay.close()
		return uploadDoneMsg{result: res, err: err}
	}
	return tea.Batch(run, o.waitForProgress())
}

func (o *uploadOverlay) waitForProgress() tea.Cmd {
	if o.progress == nil {
		return nil
	}
	ch := o.progress
	return func() tea.Msg {
		if u, ok := <-ch; ok {
			return uploadProgressMsg{update: u}
		}
		return nil
	}
}

func (o *uploadOverlay) handleProgress(msg uploadProgressMsg) tea.Cmd {
	if !o.submitting {
		return nil
	}
	o.status = msg.update.Status()
	return o.waitForProgress()
}

func (o *uploadOverlay) handleDone(msg uploadDoneMsg) {
	o.submitting = false
	o.progress = nil
	if msg.err != nil {
		o.status = ""
		o.errMsg = upload.Message(msg.err)
		o.log.Warn("upload rejected", "error", msg.err)
		return
	}
	res := msg.result
	o.last = &res
	o.status = res.Summary()
	if res.Complete() {
		o.form = o.form.Reset()
		o.author.SetValue("")
		o.notes.SetValue("")
		o.files.SetValue("")
	}
}

func (o *uploadOverlay) View(width int) string {
	faint := o.busy()
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Upload photos"),
		"",
		o.row("Month", o.monthValue(), fieldMonth, faint),
		o.row("Author", o.author.View(), fieldAuthor, faint),
		o.row("Notes", o.notes.View(), fieldNotes, faint),
		o.row("Files", o.files.View(), fieldFiles, faint),
		"",
	}
	switch {
	case o.errMsg != "":
		lines = append(lines, o.theme.Form.Error.Render(o.errMsg))
	case o.status != "":
		lines = append(lines, o.theme.Form.Status.Render(o.status))
	}
	if o.last != nil {
		for _, out := range o.last.Outcomes {
			mark := "✓"
			if !out.OK() {
				mark = "✗"
			}
			lines = append(lines, o.theme.Form.Status.Render(mark+" "+out.File))
		}
	}
	help := "Enter to upload • Tab between fields • ←/→ pick month • Esc to close"
	if faint {
		help = "Uploading, please wait..."
	}
	lines = append(lines, "", o.theme.Footer.Help.Render(help))

	w := width
	if w < 40 {
		w = 40
	}
	return o.theme.Form.Frame.Width(w).Render(strings.Join(lines, "\n"))
}

func (o *uploadOverlay) monthValue() string {
	if o.form.Category == upload.NoCategory {
		return "‹ pick a month ›"
	}
	return "‹ " + o.model.Name(o.form.Category) + " ›"
}

func (o *uploadOverlay) row(label, value string, field uploadField, faint bool) string {
	indicator := "  "
	style := o.theme.Form.Label
	switch {
	case faint:
		style = o.theme.Form.Faint
	case o.focus == field:
		indicator = o.theme.Form.Focus.Render("➤ ")
		style = o.theme.Form.Focus
	}
	return indicator + style.Render(fmt.Sprintf("%-8s", label)) + " " + value
}
