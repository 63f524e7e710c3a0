package app

import (
	"context"
	"time"

	"tableflip.dev/photobook/pkg/projection"
)

// ReportSection summarizes one month of the book.
type ReportSection struct {
	Category int
	Name     string
	Count    int
	// Latest is the newest creation instant in the month, zero if unknown.
	Latest time.Time
}

// ReportResult is a per-month overview of the book.
type ReportResult struct {
	Sections []ReportSection
	Total    int
	Dropped  int
}

// Report counts photos per month.
func (s *Service) Report(ctx context.Context) (ReportResult, error) {
	p, err := s.Projection(ctx)
	if err != nil {
		return ReportResult{}, err
	}
	return Summarize(p), nil
}

// Summarize builds the report for an existing projection.
func Summarize(p projection.Projection) ReportResult {
	model := p.Model()
	res := ReportResult{
		Sections: make([]ReportSection, 0, p.Categories()),
		Total:    p.Total(),
		Dropped:  p.Dropped(),
	}
	for cat := 0; cat < p.Categories(); cat++ {
		sec := ReportSection{Category: cat, Name: model.Name(cat), Count: p.Len(cat)}
		for _, it := range p.Items(cat) {
			if it.Created.After(sec.Latest) {
				sec.Latest = it.Created
			}
		}
		res.Sections = append(res.Sections, sec)
	}
	return res
}
