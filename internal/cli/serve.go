package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsontree/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API and canvas page.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tree canvas and workspace API over HTTP",
		Long: `Serve the tree canvas and workspace API over HTTP.

GET / opens a page with an editable document, Generate and Find buttons
and the tree canvas. Each page load gets its own in-memory workspace;
workspaces expire after server.workspace_ttl of inactivity and nothing
is written to disk.

API:
  POST   /api/workspaces              create (body: document, default sample)
  GET    /api/workspaces/{id}         flow nodes and edges
  PUT    /api/workspaces/{id}         generate from a new document
  POST   /api/workspaces/{id}/search  highlight a path
  GET    /api/workspaces/{id}/svg     picture (?engine=graphviz)
  GET    /api/workspaces/{id}/dot     Graphviz source
  GET    /api/workspaces/{id}/source  last accepted document
  DELETE /api/workspaces/{id}`,
		Example: `  jsontree serve
  jsontree serve --addr 127.0.0.1:9000
  JSONTREE_SERVER_ADDR=:3000 jsontree serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			srv := server.New(server.Options{
				Layout:        cfg.TreeOptions(),
				View:          cfg.ViewOptions(),
				MaxWorkspaces: cfg.Server.MaxWorkspaces,
				WorkspaceTTL:  cfg.Server.WorkspaceTTL,
				Logger:        c.Logger,
			})

			printSuccess("Serving on %s", StyleLink.Render(serverURL(addr)))
			printInfo("Press Ctrl+C to stop")

			return srv.ListenAndServe(cmd.Context(), addr, server.Timeouts{
				Read:     cfg.Server.ReadTimeout,
				Write:    cfg.Server.WriteTimeout,
				Shutdown: cfg.Server.ShutdownTimeout,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

// serverURL turns a listen address into a URL a browser can open.
func serverURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
