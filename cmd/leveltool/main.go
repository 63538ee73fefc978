// leveltool creates and edits level maps and tile behavior tables.
//
// Usage:
//
//	leveltool new <file.lvl> --width 200 --height 20 [--ground 0 --ground-tile 1]
//	leveltool info <file.lvl> [--tiles tiles.dat]
//	leveltool set <file.lvl> <x> <y> <tile>
//	leveltool behavior get <tiles.dat> <tile>
//	leveltool behavior set <tiles.dat> <tile> <flag>...
package main

import (
	"fmt"
	"os"

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
	var verbose bool
	root := &cobra.Command{
		Use:           "leveltool",
		Short:         "Create and edit jumpscroller levels",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every file read and written")

	root.AddCommand(newNewCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newSetCmd())
	root.AddCommand(newBehaviorCmd())
	return root
}
