// Package main implements the squash CLI: compress files locally with the
// same engine that backs the upload service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iamNilotpal/squash/config"
	"github.com/iamNilotpal/squash/pkg/errors"
	"github.com/iamNilotpal/squash/pkg/logger"
)

// version information
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the root has loaded config.
type app struct {
	configPath string
	cfg        *config.Config
	log        *zap.SugaredLogger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "squash",
		Short: "Compress images, documents, archives and media",
		Long: `squash picks a compression strategy from a file's type and applies it.

Images are re-encoded, PDFs are stripped of metadata, media is transcoded
with ffmpeg and everything else goes through a lossless byte compressor.
A result is never larger than its input.

Configuration is read from --config (YAML), then SQUASH_* environment
variables, which may also come from a .env file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.AddCommand(newCompressCmd(a), newClassifyCmd(a), newLevelsCmd())

	return root
}

func (a *app) load() error {
	// A missing .env is normal; anything else is worth surfacing.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.NewWithOptions(cfg.ServiceName, logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	return nil
}

// reportError logs err with validation details when it has them.
func (a *app) reportError(msg string, err error) {
	if ve := errors.AsValidationError(err); ve != nil {
		a.log.Errorw(msg, "field", ve.Field, "value", ve.Value, "error", ve.Err)
		return
	}
	a.log.Errorw(msg, "error", err)
}
