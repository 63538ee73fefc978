// songgen writes the game's background songs as standard MIDI files.
//
// Usage:
//
//	songgen [--out assets/songs]
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var out string
	root := &cobra.Command{
		Use:           "songgen",
		Short:         "Write the jumpscroller songs as MIDI files",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(out, 0o755); err != nil {
				return err
			}
			for _, s := range songs {
				path := filepath.Join(out, s.name+".mid")
				if err := s.build().WriteFile(path); err != nil {
					return fmt.Errorf("songgen: %s: %w", s.name, err)
				}
				log.Info("wrote song", "path", path, "parts", len(s.parts))
			}
			return nil
		},
	}
	root.Flags().StringVarP(&out, "out", "o", filepath.Join("assets", "songs"), "Output directory")
	return root
}
