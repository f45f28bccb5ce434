package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	ffio "github.com/matzehuels/factoryfloor/pkg/io"
	"github.com/matzehuels/factoryfloor/pkg/pipeline"
)

// runOpts holds the flags shared by the run and exec commands.
type runOpts struct {
	size    int    // floor size, overrides the script's size line
	divider string // between positions in plain output
	output  string // snapshot file to write
	noCache bool   // bypass the cache entirely
	refresh bool   // skip the lookup but store the result
	plain   bool   // plain text instead of a table
}

func (o *runOpts) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.size, "size", "n", 0, "floor size (overrides the script's size line)")
	cmd.Flags().StringVar(&o.divider, "divider", "", "divider between positions in --plain output (default from config)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write the final floor as a JSON snapshot")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable result caching")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached results but store the new one")
	cmd.Flags().BoolVar(&o.plain, "plain", false, "print plain text instead of a table")
}

// runCommand creates the run command, which executes a script file.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run <script|->",
		Short: "Run a block-moving script and print the final floor",
		Long: `Run executes a script of move and pile commands against a fresh floor.

The optional first line of the script is the floor size; --size overrides it.
Use "-" to read the script from stdin.`,
		Example: `  factoryfloor run moves.txt
  printf '4\nmove 1 onto 2\npile 3 over 2\n' | factoryfloor run - --plain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := readScript(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return c.runScript(cmd.Context(), cmd.OutOrStdout(), script, &opts)
		},
	}
	opts.register(cmd)
	return cmd
}

// readScript reads a script from path, or from stdin when path is "-".
func readScript(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(data), nil
}

// pipelineOptions merges command flags with the loaded config.
func (c *CLI) pipelineOptions(script string, opts *runOpts) pipeline.Options {
	divider := opts.divider
	if divider == "" {
		divider = c.Config.Floor.Divider
	}
	return pipeline.Options{
		Script:      script,
		Size:        opts.size,
		DefaultSize: c.Config.Floor.Size,
		Divider:     divider,
		Refresh:     opts.refresh,
		TTL:         c.Config.Cache.TTL.Duration,
	}
}

// runScript executes script through the pipeline and prints the result.
func (c *CLI) runScript(ctx context.Context, w io.Writer, script string, opts *runOpts) error {
	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	res, err := runner.Execute(ctx, c.pipelineOptions(script, opts))
	if err != nil {
		return err
	}

	if opts.plain {
		fmt.Fprintln(w, res.Output)
	} else {
		fmt.Fprintln(w, floorTable(res.Floor, nil))
		printStats(w, res.Stats.Commands, res.Stats.Applied, res.Stats.Ignored, res.CacheHit)
	}

	if opts.output != "" {
		prog := newProgress(loggerFromContext(ctx))
		if err := ffio.ExportJSON(res.Floor, opts.output); err != nil {
			return err
		}
		prog.done("wrote snapshot")
		if !opts.plain {
			printFile(w, opts.output)
		}
	}
	return nil
}

// execCommand creates the exec command, which runs commands given as
// arguments.
func (c *CLI) execCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "exec <command>...",
		Short: "Run commands given as arguments",
		Example: `  factoryfloor exec -n 4 "move 1 onto 2" "pile 3 over 2"
  factoryfloor exec -n 8 "move 7 onto 1" --plain --divider " | "`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScript(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, "\n"), &opts)
		},
	}
	opts.register(cmd)
	return cmd
}
