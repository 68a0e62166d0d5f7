package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ssnmovie/pkg/palette"
)

// paletteCommand creates the palette preview command.
func (c *CLI) paletteCommand() *cobra.Command {
	var (
		count int
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "palette [scheme]",
		Short: "Preview a color scheme in the terminal",
		Long: `Print the colors a scheme assigns to the first N genes as swatches with
their hex codes. Append _r to a scheme name for the reversed colormap.`,
		Example: `  ssnmovie palette tab20 -n 25
  ssnmovie palette viridis_r
  ssnmovie palette --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if list {
				writeSchemeList(w)
				return nil
			}
			name := palette.Default
			if len(args) == 1 {
				name = args[0]
			}
			colors, err := palette.Get(name, count)
			if err != nil {
				return err
			}
			writeSwatches(w, name, colors)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 20, "number of colors")
	cmd.Flags().BoolVar(&list, "list", false, "list all scheme names")

	return cmd
}

// writeSchemeList prints every scheme with a short swatch strip.
func writeSchemeList(w io.Writer) {
	nameStyle := lipgloss.NewStyle().Foreground(colorWhite).Width(14)
	for _, name := range palette.Names() {
		s, _ := palette.Lookup(name)
		kind := "continuous"
		if s.Qualitative() {
			kind = fmt.Sprintf("qualitative, %d", s.Size)
		}
		strip := palette.MustGet(name, 8)
		fmt.Fprintln(w, nameStyle.Render(name)+" "+swatchStrip(strip)+" "+StyleDim.Render(kind))
	}
}

// writeSwatches prints one line per color: index, swatch and hex code.
func writeSwatches(w io.Writer, name string, colors []string) {
	fmt.Fprintln(w, StyleTitle.Render(name)+" "+StyleDim.Render(fmt.Sprintf("(%d colors)", len(colors))))
	for i, hex := range colors {
		idx := StyleDim.Render(fmt.Sprintf("%3d", i))
		fmt.Fprintln(w, idx+" "+swatch(hex, 4)+" "+StyleValue.Render(hex))
	}
}

func swatchStrip(colors []string) string {
	var b strings.Builder
	for _, hex := range colors {
		b.WriteString(swatch(hex, 2))
	}
	return b.String()
}

func swatch(hex string, width int) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(strings.Repeat(" ", width))
}
