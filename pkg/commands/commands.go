package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/photobook/pkg/app"
	"tableflip.dev/photobook/pkg/commands/options"
	"tableflip.dev/photobook/pkg/config"
	"tableflip.dev/photobook/pkg/printers"
)

var (
	lo         = &options.LogOptions{}
	configPath string

	logger    = slog.New(slog.NewTextHandler(io.Discard, nil))
	logCloser io.Closer
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "photobook",
		Short: base.Wrap80("A live photo book, one month at a time."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, c, err := lo.Logger()
			if err != nil {
				return err
			}
			logger, logCloser = l, c
			if !printers.IsTerminal(os.Stdout) {
				color.NoColor = true
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddLogArgs(cmd, lo)
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Directory searched first for "+config.Name+".yaml.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addUpload(topLevel)
	addGet(topLevel)
	addInfo(topLevel)
	addInit(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}

func loadConfig() (*config.Config, error) {
	var paths []string
	if configPath != "" {
		paths = append(paths, configPath)
	}
	cfg, err := config.Load(config.Options{Paths: paths})
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded", "file", cfg.File)
	return cfg, nil
}

// openService loads the config and both stores. It fails without touching
// a store when the config is not ready.
func openService() (*app.Service, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	svc, err := openServiceFrom(cfg)
	return svc, cfg, err
}

func openServiceFrom(cfg *config.Config) (*app.Service, error) {
	svc, err := app.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
