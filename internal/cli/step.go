package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/factoryfloor/pkg/command"
	"github.com/matzehuels/factoryfloor/pkg/pipeline"
)

// stepCommand creates the step command, an interactive viewer that applies
// one script command per keypress.
func (c *CLI) stepCommand() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "step <script|->",
		Short: "Step through a script interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readScript(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			script, err := command.ParseString(text)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			opts := pipeline.Options{Size: size, DefaultSize: c.Config.Floor.Size}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			model, err := NewStepModel(opts.ResolveSize(script), script)
			if err != nil {
				return err
			}
			teaOpts := []tea.ProgramOption{tea.WithContext(cmd.Context())}
			if args[0] == "-" {
				// stdin held the script; read keys from the terminal
				teaOpts = append(teaOpts, tea.WithInputTTY())
			}
			p := tea.NewProgram(model, teaOpts...)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("stepper: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&size, "size", "n", 0, "floor size (overrides the script's size line)")
	return cmd
}
