package add

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/photobook/pkg/app"
	"tableflip.dev/photobook/pkg/printers"
	"tableflip.dev/photobook/pkg/upload"
)

// Add uploads photos from disk into one month of the book.
type Add struct {
	Service *app.Service

	Month  string
	Author string
	Notes  string
	Files  []string

	Out io.Writer
	// Progress receives status lines while the batch runs; nil discards.
	Progress io.Writer
}

func (n *Add) out() io.Writer {
	if n.Out != nil {
		return n.Out
	}
	return color.Output
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not upload, no service")
	}

	form := upload.NewForm()
	form.Author = n.Author
	form.Note = n.Notes
	if n.Month != "" {
		cat, err := n.Service.Model.Lookup(n.Month)
		if err != nil {
			return fmt.Errorf("%s: %w", upload.Message(upload.ErrNoCategory), err)
		}
		form.Category = cat
	}
	if form.Category == upload.NoCategory {
		return fmt.Errorf("%s: %w", upload.Message(upload.ErrNoCategory), upload.ErrNoCategory)
	}

	files, err := upload.ReadFiles(n.Files...)
	if err != nil {
		return err
	}
	form.Files = files

	progress := n.Progress
	c := n.Service.Uploader(func(u upload.Update) {
		if progress != nil {
			_, _ = fmt.Fprintln(progress, u.Status())
		}
	})
	res, err := c.Submit(ctx, form.Batch())
	if err != nil {
		return fmt.Errorf("%s: %w", upload.Message(err), err)
	}

	pp := printers.PrettyPrint{Out: n.out()}
	pp.Upload(res)
	if !res.Complete() {
		return fmt.Errorf("upload: %d of %d files failed", len(res.Failed()), len(res.Outcomes))
	}
	return nil
}
