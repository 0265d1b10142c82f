package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsontree/pkg/document"
	"github.com/matzehuels/jsontree/pkg/workspace"
)

// findCommand creates the find command, which locates a node by path.
func (c *CLI) findCommand() *cobra.Command {
	var (
		in       inputOpts
		asJSON   bool
		fromFile string
	)

	cmd := &cobra.Command{
		Use:   "find <path> [file]",
		Short: "Locate a node by path such as $.user.address.city",
		Long: `Locate a node by path such as $.user.address.city or $.items[0].name.

The path is trimmed and matched exactly against node ids: there is no
partial or case-insensitive matching. Prints the node id, label and
position, and where a viewer would center on it. Exits with an error
when the path is empty or matches nothing.`,
		Example: `  jsontree find '$.items[1].name' data.json
  cat data.json | jsontree find '$.user' --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			path := "-"
			if len(args) == 2 {
				path = args[1]
			}
			if fromFile != "" {
				path = fromFile
			}
			data, format, err := readInput(path, in.format, cmd.InOrStdin())
			if err != nil {
				return err
			}

			layout := cfg.TreeOptions()
			layout.AnimatedEdges = layout.AnimatedEdges || in.animated
			ws := workspace.New(layout, cfg.ViewOptions())
			if _, err := ws.Generate(ctx, data, format); err != nil {
				return err
			}

			res, err := ws.Search(ctx, args[0])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			printSuccess("Found %s", StyleHighlight.Render(res.Query))
			printKeyValue("id", res.ID)
			printKeyValue("label", res.Node.Label)
			printKeyValue("type", res.Node.Type.String())
			printKeyValue("depth", fmt.Sprint(res.Node.Depth))
			printKeyValue("position", fmt.Sprintf("%s, %s", document.FormatNumber(res.Position.X), document.FormatNumber(res.Position.Y)))
			printKeyValue("center", fmt.Sprintf("zoom %s over %s", document.FormatNumber(res.Center.Zoom), res.Center.Duration))
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the search result as JSON")
	cmd.Flags().StringVar(&fromFile, "file", "", "document file (alternative to the second argument)")

	return cmd
}
