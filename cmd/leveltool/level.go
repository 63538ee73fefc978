package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/milk9111/jumpscroller/level"
	"github.com/spf13/cobra"
)

func newNewCmd() *cobra.Command {
	var width, height, ground, groundTile int
	cmd := &cobra.Command{
		Use:   "new <file.lvl>",
		Short: "Create an empty level, optionally with filled ground rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width < 1 || height < 1 || width > 0xffff || height > 0xffff {
				return fmt.Errorf("size %dx%d out of range", width, height)
			}
			tile, err := tileIndex(strconv.Itoa(groundTile))
			if err != nil {
				return err
			}
			l := level.Generate(width, height, ground, tile, nil)
			if err := saveLevel(args[0], l); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%dx%d)\n", args[0], width, height)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 200, "Width in tiles")
	cmd.Flags().IntVar(&height, "height", 20, "Height in tiles")
	cmd.Flags().IntVar(&ground, "ground", 0, "Number of ground rows to fill")
	cmd.Flags().IntVar(&groundTile, "ground-tile", 1, "Tile index for the ground rows")
	return cmd
}

func newInfoCmd() *cobra.Command {
	var tiles string
	cmd := &cobra.Command{
		Use:   "info <file.lvl>",
		Short: "Print level size and tile usage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var behaviors *level.Behaviors
			if tiles != "" {
				b, err := loadBehaviors(tiles, false)
				if err != nil {
					return err
				}
				behaviors = b
			}
			l, err := loadLevel(args[0], behaviors)
			if err != nil {
				return err
			}

			counts := map[byte]int{}
			for x := 0; x < l.Width(); x++ {
				for y := 0; y < l.Height(); y++ {
					if b := l.Block(x, y); b != 0 {
						counts[b]++
					}
				}
			}
			used := make([]int, 0, len(counts))
			for t := range counts {
				used = append(used, int(t))
			}
			sort.Ints(used)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %dx%d tiles\n", args[0], l.Width(), l.Height())
			for _, t := range used {
				if behaviors != nil {
					fmt.Fprintf(out, "  tile %3d: %5d  %s\n", t, counts[byte(t)], behaviors.Get(byte(t)))
				} else {
					fmt.Fprintf(out, "  tile %3d: %5d\n", t, counts[byte(t)])
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tiles, "tiles", "", "Behavior table to annotate tiles with")
	return cmd
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <file.lvl> <x> <y> <tile>",
		Short: "Set one tile",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadLevel(args[0], nil)
			if err != nil {
				return err
			}
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("x: %w", err)
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("y: %w", err)
			}
			if x < 0 || y < 0 || x >= l.Width() || y >= l.Height() {
				return fmt.Errorf("%d,%d is outside the %dx%d level", x, y, l.Width(), l.Height())
			}
			tile, err := tileIndex(args[3])
			if err != nil {
				return err
			}
			l.SetBlock(x, y, tile)
			return saveLevel(args[0], l)
		},
	}
}

func tileIndex(s string) (byte, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= level.BehaviorCount {
		return 0, fmt.Errorf("tile %q must be 0-%d", s, level.BehaviorCount-1)
	}
	return byte(n), nil
}

func loadLevel(path string, behaviors *level.Behaviors) (*level.Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	log.Debug("reading level", "path", path)
	return level.Load(f, behaviors)
}

func saveLevel(path string, l *level.Level) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := l.Save(f); err != nil {
		f.Close()
		return err
	}
	log.Debug("wrote level", "path", path)
	return f.Close()
}
