// Command guide-creator writes a comprehensive guide on any topic: it asks
// a model for an outline, authors every section in order, and compiles them.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"guide_creator/config"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	cfgMgr  *config.Manager
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "guide-creator",
	Short: "Create comprehensive guides with a language model",
	Long: `guide-creator builds a long-form guide in three steps:

  1. collect a topic and an audience level (beginner, intermediate, advanced)
  2. ask a model for a structured outline (output/guide_outline.json)
  3. write every section in order, each one seeing the sections before it,
     and compile the result (output/complete_guide.md)

Run "guide-creator create" for an interactive session or
"guide-creator serve" to accept requests over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		m, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfgMgr = m
		logger = newLogger(m.Get().LogLevel, m.Get().LogFormat)
		slog.SetDefault(logger)
		if f := m.FileUsed(); f != "" {
			logger.Debug("using config file", "path", f)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./guide-creator.yaml or ~/.config/guide-creator/guide-creator.yaml)")
}

// skipConfig replaces the root hook for commands that must run without a config.
func skipConfig(cmd *cobra.Command, args []string) error { return nil }

// newLogger builds the process logger on stderr. Unknown levels fall back to info.
func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
