// Package main is the copyscan CLI: check content against the web, or serve
// checks over a websocket.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	cfgPkg "github.com/xhad/copyscan/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "copyscan",
	Short: "Find web pages that contain your content",
	Long: `copyscan searches the web for pages that reproduce submitted text, a PDF or a
scanned image, fetches each candidate and scores it by TF-IDF cosine similarity.

Search credentials come from the config file or the GOOGLE_API_KEY and
GOOGLE_SEARCH_ENGINE_ID environment variables.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./config.yaml or ~/.config/copyscan/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log pipeline details to stderr")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the config named by --config, or the default locations.
func loadConfig(cmd *cobra.Command) (*cfgPkg.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := cfgPkg.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *cfgPkg.Config) error {
	errs := cfg.Validate()
	if len(errs) == 0 {
		return nil
	}
	for _, e := range errs {
		color.Red("config: %s", e.Error())
	}
	return fmt.Errorf("invalid configuration (%d problems)", len(errs))
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func getProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("pages"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func getSpinner(w io.Writer, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}
