package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/photobook/pkg/photo"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints the month containing on, highlighting days with photos.
func (pp *PrettyPrint) Calendar(on time.Time, items ...photo.Item) {
	then := time.Date(on.Year(), on.Month(), 1, 1, 0, 0, 0, on.Location())
	pp.PrintMonthCount(then, DayCounts(then, items...))
}

// DayCounts buckets items created in then's month by day.
func DayCounts(then time.Time, items ...photo.Item) []int {
	count := make([]int, DaysIn(then))
	for _, it := range items {
		if it.Created.IsZero() {
			continue
		}
		c := it.Created.In(then.Location())
		if c.Year() == then.Year() && c.Month() == then.Month() {
			count[c.Day()-1]++
		}
	}
	return count
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	d := StartDay(then)
	out := pp.out()

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(out, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	// Pad out the start of the month.
	_, _ = fmt.Fprint(out, strings.Repeat("   ", int(d)))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	days := DaysIn(then)
	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(out, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(out, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(out, "\n")
		}
	}
	_, _ = fmt.Fprint(out, "\n\n")
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
