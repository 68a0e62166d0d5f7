package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ssnmovie/pkg/errors"
	pkgio "github.com/matzehuels/ssnmovie/pkg/io"
)

// convertCommand creates the convert command, which writes an XGMML network
// in the JSON network format.
func (c *CLI) convertCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <network.xgmml>",
		Short: "Convert a network to JSON",
		Long: `Read a network (XGMML or JSON) and write it as JSON. The JSON form keeps
every node attribute and edge score and loads faster than XGMML in later
sweeps.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			sw := newStopwatch(logger)

			g, err := pkgio.Import(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".json"
			}
			if filepath.Clean(output) == filepath.Clean(args[0]) {
				return errors.New(errors.ErrCodeInvalidInput, "output %s would overwrite the input", output)
			}
			if err := pkgio.ExportJSON(g, output); err != nil {
				return err
			}
			sw.done("Converted network")
			printSuccess("%d nodes, %d edges", g.NodeCount(), g.EdgeCount())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with .json)")

	return cmd
}
