package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"tableflip.dev/photobook/pkg/config"
)

func addInit(topLevel *cobra.Command) {
	dir := "."
	force := false

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config template to fill in.",
		Example: `
photobook init
photobook init --dir ~ --force
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return writeTemplate(dir, force)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", dir, "Directory to write "+config.Name+".yaml into.")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config.")

	topLevel.AddCommand(cmd)
}

func writeTemplate(dir string, force bool) error {
	path := filepath.Join(dir, config.Name+".yaml")
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to replace it", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	b, err := config.Template()
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(b)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	_, _ = fmt.Fprintf(color.Output, "Wrote %s. Replace every %s value, then run `photobook check`.\n", path, config.Placeholder)
	return nil
}
