package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/photobook/pkg/app"
	"tableflip.dev/photobook/pkg/category"
	"tableflip.dev/photobook/pkg/pager"
	"tableflip.dev/photobook/pkg/printers"
)

// Format selects how Get writes its result.
type Format string

const (
	FormatPretty Format = ""
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

// ParseFormat accepts "", "pretty", "json" and "yaml".
func ParseFormat(raw string) (Format, error) {
	switch raw {
	case "", "pretty":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	case "yaml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("get: unknown output format %q", raw)
	}
}

// Get lists one page of a month, or the per-month overview when no month
// is given.
type Get struct {
	Service  *app.Service
	Month    string
	Page     int
	PageSize int
	Calendar bool
	ShowID   bool
	Format   Format
	Out      io.Writer
	Now      func() time.Time
}

// Photo is the listing form of one item.
type Photo struct {
	Slot      int       `json:"slot" yaml:"slot"`
	Index     int       `json:"index" yaml:"index"`
	ID        string    `json:"id" yaml:"id"`
	URL       string    `json:"url" yaml:"url"`
	Author    string    `json:"author,omitempty" yaml:"author,omitempty"`
	Note      string    `json:"note,omitempty" yaml:"note,omitempty"`
	Caption   string    `json:"caption" yaml:"caption"`
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// Listing is one page of a month.
type Listing struct {
	Month      string  `json:"month" yaml:"month"`
	Page       int     `json:"page" yaml:"page"`
	TotalPages int     `json:"totalPages" yaml:"totalPages"`
	TotalItems int     `json:"totalItems" yaml:"totalItems"`
	Photos     []Photo `json:"photos" yaml:"photos"`
}

// Overview is the per-month count of the whole book.
type Overview struct {
	Months  []MonthCount `json:"months" yaml:"months"`
	Total   int          `json:"total" yaml:"total"`
	Dropped int          `json:"dropped" yaml:"dropped"`
}

type MonthCount struct {
	Month string `json:"month" yaml:"month"`
	Count int    `json:"count" yaml:"count"`
}

func (n *Get) out() io.Writer {
	if n.Out != nil {
		return n.Out
	}
	return color.Output
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	p, err := n.Service.Projection(ctx)
	if err != nil {
		return err
	}

	if n.Month == "" {
		return n.overview(app.Summarize(p))
	}

	cat, err := n.Service.Model.Lookup(n.Month)
	if err != nil {
		if errors.Is(err, category.ErrUnknown) {
			return fmt.Errorf("get: %q is not a month", n.Month)
		}
		return err
	}
	size := n.PageSize
	if size <= 0 {
		size = pager.DefaultSize
	}
	pg, err := pager.New(size)
	if err != nil {
		return err
	}
	// Page is 1-based on the command line.
	page := pg.Page(p, cat, n.Page-1)
	name := p.Model().Name(cat)

	if n.Format == FormatPretty {
		pp := printers.PrettyPrint{Out: n.out(), ShowID: n.ShowID}
		pp.NewLine()
		if n.Calendar {
			now := time.Now
			if n.Now != nil {
				now = n.Now
			}
			on := time.Date(now().Year(), time.Month(cat+1), 1, 0, 0, 0, 0, time.Local)
			pp.Calendar(on, p.Items(cat)...)
		}
		pp.Page(name, page)
		return nil
	}

	l := Listing{
		Month:      name,
		Page:       page.Number + 1,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
		Photos:     make([]Photo, 0, len(page.Items)),
	}
	for slot, it := range page.Items {
		l.Photos = append(l.Photos, Photo{
			Slot:      slot + 1,
			Index:     it.Index,
			ID:        it.ID,
			URL:       it.URL,
			Author:    it.Author,
			Note:      it.Note,
			Caption:   it.Caption(name),
			CreatedAt: it.Created,
		})
	}
	return n.encode(l)
}

func (n *Get) overview(res app.ReportResult) error {
	if n.Format == FormatPretty {
		counts := make([]printers.MonthCount, 0, len(res.Sections))
		for _, s := range res.Sections {
			counts = append(counts, printers.MonthCount{Name: s.Name, Count: s.Count})
		}
		pp := printers.PrettyPrint{Out: n.out()}
		pp.NewLine()
		pp.Months(counts)
		return nil
	}
	o := Overview{Total: res.Total, Dropped: res.Dropped}
	for _, s := range res.Sections {
		o.Months = append(o.Months, MonthCount{Month: s.Name, Count: s.Count})
	}
	return n.encode(o)
}

func (n *Get) encode(v any) error {
	switch n.Format {
	case FormatJSON:
		enc := json.NewEncoder(n.out())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(n.out())
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("get: unknown output format %q", n.Format)
	}
}
