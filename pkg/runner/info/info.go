package info

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/photobook/pkg/app"
	"tableflip.dev/photobook/pkg/config"
)

// Info reports where photobook reads its config from and whether it is
// usable.
type Info struct {
	Config *config.Config
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	faint := color.New(color.Faint)

	if override := os.Getenv("PHOTOBOOK_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "PHOTOBOOK_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "PHOTOBOOK_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load(config.Options{})
		if err != nil {
			return err
		}
	}
	file := n.Config.File
	if file == "" {
		file = "(none found)"
	}
	_, _ = fmt.Fprintln(out, "Config file:", file)

	for _, f := range n.Config.Fields() {
		v := strings.TrimSpace(f.Value)
		switch {
		case v == "":
			_, _ = bad.Fprintf(out, "  ✗ %s", f.Name)
			_, _ = faint.Fprintln(out, "  not set")
		case strings.Contains(v, config.Placeholder):
			_, _ = bad.Fprintf(out, "  ✗ %s", f.Name)
			_, _ = faint.Fprintf(out, "  still a placeholder (%s)\n", v)
		default:
			_, _ = ok.Fprintf(out, "  ✓ %s", f.Name)
			_, _ = faint.Fprintf(out, "  %s\n", v)
		}
	}

	if err := n.Config.Ready(); err != nil {
		_, _ = fmt.Fprintln(out, config.DisabledMessage)
		return err
	}

	svc, err := app.Open(n.Config, nil)
	if err != nil {
		return err
	}
	res, err := svc.Report(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Photos: %d", res.Total)
	if res.Dropped > 0 {
		_, _ = faint.Fprintf(out, " (%d without a month)", res.Dropped)
	}
	_, _ = fmt.Fprintln(out)
	return nil
}
