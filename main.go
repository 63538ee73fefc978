// jumpscroller is a side-scrolling platformer.
//
// Usage:
//
//	jumpscroller [--config path] [--level name] [--audio ebiten|beep|none] [--debug]
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/jumpscroller/config"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagLevel  string
	flagAudio  string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "jumpscroller",
	Short:         "A side-scrolling platformer",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to config file (default: search ~/.jumpscroller, ./configs, built-in)")
	rootCmd.Flags().StringVar(&flagLevel, "level", "", "Level prefab to play after the title, e.g. level1.yaml")
	rootCmd.Flags().StringVar(&flagAudio, "audio", "", "Audio backend: ebiten, beep or none")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Show collision markers and debug text")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLevel != "" {
		cfg.Level = flagLevel
	}
	if flagAudio != "" {
		cfg.Audio.Backend = flagAudio
	}
	if flagDebug {
		cfg.Debug = true
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "jumpscroller",
	})
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)

	game, err := NewGame(cfg, logger)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width*cfg.Window.Scale, cfg.Window.Height*cfg.Window.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// The game paces its own ticks; ebiten only supplies frames.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(game); err != nil {
		return err
	}
	return nil
}
