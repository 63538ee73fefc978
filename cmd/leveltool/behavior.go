package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/milk9111/jumpscroller/level"
	"github.com/spf13/cobra"
)

func newBehaviorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "behavior",
		Short: "Read and write tile behavior tables",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get <tiles.dat> <tile>",
		Short: "Print the behavior flags of a tile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBehaviors(args[0], false)
			if err != nil {
				return err
			}
			tile, err := tileIndex(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), b.Get(tile))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <tiles.dat> <tile> <flag>...",
		Short: "Replace the behavior flags of a tile",
		Long: "Replace the behavior flags of a tile. Flags are any of:\n  " +
			strings.Join(level.BitDescriptions(), ", ") +
			"\nwritten with spaces or underscores, or none to clear the tile.",
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBehaviors(args[0], true)
			if err != nil {
				return err
			}
			tile, err := tileIndex(args[1])
			if err != nil {
				return err
			}
			var flags level.Behavior
			for _, name := range args[2:] {
				if strings.EqualFold(name, "none") {
					continue
				}
				f, err := level.ParseBehavior(name)
				if err != nil {
					return err
				}
				flags |= f
			}
			b.Set(tile, flags)
			if err := saveBehaviors(args[0], b); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tile %d: %s\n", tile, flags)
			return nil
		},
	})
	return cmd
}

// loadBehaviors reads a behavior table. With create set a missing file
// yields an empty table.
func loadBehaviors(path string, create bool) (*level.Behaviors, error) {
	b := level.NewBehaviors()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) && create {
		return b, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	log.Debug("reading behaviors", "path", path)
	if _, err := b.ReadFrom(f); err != nil {
		return nil, err
	}
	return b, nil
}

func saveBehaviors(path string, b *level.Behaviors) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := b.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	log.Debug("wrote behaviors", "path", path)
	return f.Close()
}
