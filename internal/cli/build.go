package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsontree/pkg/render/sink"
	"github.com/matzehuels/jsontree/pkg/tree"
)

// buildCommand creates the build command, which writes the flow JSON of a document.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		in     inputOpts
		output string
		indent bool
		meta   bool
	)

	cmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Lay out a document and write its nodes and edges as JSON",
		Long: `Lay out a document and write its nodes and edges as JSON.

Each value becomes a node with id, position, data.label, style and draggable;
each container-to-child link becomes an edge with id, source, target and
animated. Reads standard input when no file (or "-") is given.`,
		Example: `  jsontree build data.json -o tree.json
  curl -s https://api.example.com/user | jsontree build --indent
  jsontree build config.yaml --meta`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := argOrStdin(args)
			d, err := c.loadDiagram(ctx, cmd, path, in)
			if err != nil {
				return err
			}

			var opts []sink.JSONOption
			if indent {
				opts = append(opts, sink.WithIndent())
			}
			if meta {
				opts = append(opts, sink.WithMeta())
			}
			data, err := sink.RenderJSON(d, opts...)
			if err != nil {
				return err
			}

			out, err := openOutput(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer out.Close()
			if _, err := out.Write(append(data, '\n')); err != nil {
				return err
			}

			if output != "" && output != "-" {
				printSuccess("Built %s", displayName(path))
				printStats(len(d.Nodes), len(d.Edges), maxDepth(d))
				printFile(output)
				printNextStep("Explore it", appName+" view "+path)
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&indent, "indent", false, "pretty-print the JSON")
	cmd.Flags().BoolVar(&meta, "meta", false, "include path, depth, type and highlight in node data")

	return cmd
}

func argOrStdin(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

func maxDepth(d tree.Diagram) int {
	m := 0
	for _, n := range d.Nodes {
		m = max(m, n.Depth)
	}
	return m
}
