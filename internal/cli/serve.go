package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ssnmovie/internal/server"
	"github.com/matzehuels/ssnmovie/pkg/errors"
)

// serveCommand creates the serve command for browsing finished runs.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [output-dir]",
		Short: "Browse rendered frames in a web browser",
		Long: `Serve the output directory of 'ssnmovie sweep' over HTTP. The index page
links every frame and summary chart; manifests are available as JSON under
/api/sources.`,
		Example: `  ssnmovie serve frames --addr :8080`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			if info, err := os.Stat(root); err != nil || !info.IsDir() {
				return errors.New(errors.ErrCodeFileNotFound, "output directory %s does not exist", root)
			}
			srv := server.New(root, loggerFromContext(cmd.Context()))
			printInfo("Serving %s on %s", root, StyleLink.Render("http://localhost"+addr))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
