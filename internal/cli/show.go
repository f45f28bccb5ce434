package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/factoryfloor/pkg/floor"
	ffio "github.com/matzehuels/factoryfloor/pkg/io"
)

// showCommand creates the show command, which prints a saved snapshot.
func (c *CLI) showCommand() *cobra.Command {
	var (
		divider string
		plain   bool
	)

	cmd := &cobra.Command{
		Use:   "show <snapshot.json>",
		Short: "Print a floor snapshot written by run -o",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ffio.ImportJSON(args[0])
			if err != nil {
				return fmt.Errorf("load snapshot: %w", err)
			}
			if divider == "" {
				divider = c.Config.Floor.Divider
			}
			w := cmd.OutOrStdout()
			printFloor(w, f, divider, plain)
			if !plain {
				printKeyValue(w, "positions", fmt.Sprint(f.Size()))
				printKeyValue(w, "displaced", fmt.Sprint(displaced(f)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&divider, "divider", "", "divider between positions in --plain output")
	cmd.Flags().BoolVar(&plain, "plain", false, "print plain text instead of a table")
	return cmd
}

// displaced counts blocks that are not on their home position.
func displaced(f *floor.Floor) int {
	n := 0
	for b := 0; b < f.Size(); b++ {
		pos, _ := f.BlockPosition(floor.Block(b))
		home, _ := f.Home(floor.Block(b))
		if pos != home {
			n++
		}
	}
	return n
}
