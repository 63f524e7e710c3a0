package printers

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/photobook/pkg/pager"
	"tableflip.dev/photobook/pkg/photo"
	"tableflip.dev/photobook/pkg/upload"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PrettyPrint renders photobook data for the CLI.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	// NoteWidth truncates notes in tables, 0 uses 40.
	NoteWidth int
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " photo")
	default:
		_, _ = c.Fprintln(pp.out(), " photos")
	}
}

// Page prints one gallery page as a table.
func (pp *PrettyPrint) Page(name string, page pager.Page) {
	pp.TitleWithCount(name, page.TotalItems)
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.out(), "Page %d of %d\n", page.Number+1, page.TotalPages)

	if page.Empty() {
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("#"), bold.Sprint("Photo"), bold.Sprint("Note"), bold.Sprint("URL")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for slot, it := range page.Items {
		row := []interface{}{strconv.Itoa(slot + 1), it.Caption(name), pp.note(it), it.URL}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(it.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) note(it photo.Item) string {
	if !it.HasNote() {
		return "-"
	}
	w := pp.NoteWidth
	if w <= 0 {
		w = 40
	}
	return truncate.StringWithTail(it.Note, uint(w), "…")
}

// MonthCount is the number of photos in one category.
type MonthCount struct {
	Name  string
	Count int
}

// Months prints the overview of every category.
func (pp *PrettyPrint) Months(counts []MonthCount) {
	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	tbl := uitable.New()
	tbl.Separator = "  "
	total := 0
	for _, c := range counts {
		style := l1
		if c.Count > 0 {
			style = l2
		}
		tbl.AddRow(style.Sprint(c.Name), style.Sprint(c.Count))
		total += c.Count
	}
	tbl.RightAlign(1)
	pp.TitleWithCount("Photobook", total)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Upload prints the per-file outcome of a batch followed by its summary.
func (pp *PrettyPrint) Upload(res upload.Result) {
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	f := color.New(color.Faint)

	for _, o := range res.Outcomes {
		if o.OK() {
			_, _ = ok.Fprint(pp.out(), "✓ ")
			_, _ = fmt.Fprint(pp.out(), o.File)
			_, _ = f.Fprintf(pp.out(), "  %s\n", o.URL)
			continue
		}
		_, _ = bad.Fprint(pp.out(), "✗ ")
		_, _ = fmt.Fprint(pp.out(), o.File)
		_, _ = f.Fprintf(pp.out(), "  %v\n", o.Err)
	}
	style := ok
	if !res.Complete() {
		style = bad
	}
	_, _ = style.Fprintln(pp.out(), res.Summary())
}
