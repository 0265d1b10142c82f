package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsontree/pkg/document"
	"github.com/matzehuels/jsontree/pkg/workspace"
)

// viewCommand creates the view command, an interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		in    inputOpts
		query string
	)

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Explore a document tree interactively in the terminal",
		Long: `Explore a document tree interactively in the terminal.

Type a path and press enter to highlight the node and scroll to it.
ctrl+r re-reads the file and rebuilds the tree; a document that fails
to parse leaves the current tree on screen. Without a file the viewer
starts from a small sample document.`,
		Example: `  jsontree view data.json
  jsontree view data.json --find '$.items[0]'
  jsontree view`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			var (
				source string
				piped  bool
				text   = []byte(document.Sample)
				format = document.FormatJSON
			)
			if len(args) == 1 {
				source = args[0]
				text, format, err = readInput(source, in.format, cmd.InOrStdin())
				if err != nil {
					return err
				}
				if source == "-" {
					source, piped = "", true
				}
			}

			layout := cfg.TreeOptions()
			layout.AnimatedEdges = layout.AnimatedEdges || in.animated
			ws := workspace.New(layout, cfg.ViewOptions())
			if _, err := ws.Generate(ctx, text, format); err != nil {
				return err
			}

			m := NewViewModel(ctx, ws, source, format)
			if query != "" {
				m.input.SetValue(query)
				m.search()
			}

			popts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
			if piped {
				// stdin held the document; read keys from the terminal.
				popts = append(popts, tea.WithInputTTY())
			}
			p := tea.NewProgram(m, popts...)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("viewer: %w", err)
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&query, "find", "", "path to highlight on start")

	return cmd
}
