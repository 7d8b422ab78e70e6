package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/render/presets"
)

// layoutsCommand creates the layouts command, which lists the layout catalog.
func (c *CLI) layoutsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List the available certificate layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(layoutsTable())
			return nil
		},
	}
}

// layoutRows returns one row per layout: name, title, page and badge.
func layoutRows() [][]string {
	rows := make([][]string, 0, len(certificate.PresetKinds)+1)
	for _, k := range presets.Kinds() {
		p, _ := presets.Lookup(k)
		badge := "yes"
		if !p.Badge {
			badge = "no"
		}
		rows = append(rows, []string{
			string(k),
			k.Title(),
			fmt.Sprintf("%.0f×%.0f", p.Page.Width, p.Page.Height),
			badge,
		})
	}
	rows = append(rows, []string{
		string(certificate.LayoutFreeform),
		certificate.LayoutFreeform.Title(),
		"from layout data",
		"if placed",
	})
	return rows
}

// layoutsTable renders the catalog as a bordered table.
func layoutsTable() string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("LAYOUT", "TITLE", "PAGE", "BADGE").
		Rows(layoutRows()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorCyan)
			default:
				return base.Foreground(colorWhite)
			}
		})

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Layouts"))
	b.WriteString("\n")
	b.WriteString(t.Render())
	return b.String()
}
