package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/certifyme/certrender/pkg/core/asset"
	"github.com/certifyme/certrender/pkg/core/render/presets"
	"github.com/certifyme/certrender/pkg/preview"
)

// cellWidth approximates one terminal column in surface units.
const cellWidth = 8

var (
	previewLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	previewFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// PreviewModel - Live terminal preview
// =============================================================================

// artifactMsg carries a published preview state.
type artifactMsg preview.Artifact

// savedMsg reports the outcome of a save.
type savedMsg struct {
	path string
	err  error
}

// PreviewModel is the bubbletea model for the live preview. It follows the
// terminal width and re-renders as assets arrive.
type PreviewModel struct {
	Target   *preview.Target
	Artifact preview.Artifact
	Output   string
	Status   string
	Cols     int
}

// NewPreviewModel creates a preview model over a mounted target.
func NewPreviewModel(t *preview.Target, output string) PreviewModel {
	return PreviewModel{
		Target:   t,
		Artifact: t.Artifact(),
		Output:   output,
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return waitForArtifact(m.Target)
}

// waitForArtifact blocks until the target publishes. A closed target ends
// the program.
func waitForArtifact(t *preview.Target) tea.Cmd {
	return func() tea.Msg {
		a, ok := <-t.Updates()
		if !ok {
			return tea.Quit()
		}
		return artifactMsg(a)
	}
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "s":
			return m, saveSVG(m.Artifact, m.Output)
		}
	case tea.WindowSizeMsg:
		m.Cols = msg.Width
		m.Target.Resize(float64(msg.Width * cellWidth))
	case artifactMsg:
		m.Artifact = preview.Artifact(msg)
		return m, waitForArtifact(m.Target)
	case savedMsg:
		if msg.err != nil {
			m.Status = "save failed: " + msg.err.Error()
		} else {
			m.Status = "saved " + msg.path
		}
	}
	return m, nil
}

func saveSVG(a preview.Artifact, path string) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{path: path, err: writeFile(path, a.SVG())}
	}
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Certificate Preview"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("resize the window to rescale  s save  q quit"))
	b.WriteString("\n\n")

	a := m.Artifact
	rec := m.Target.Record()
	var lines []string
	row := func(k, v string) {
		lines = append(lines, previewLabelStyle.Render(k)+" "+StyleValue.Render(v))
	}
	row("Layout", rec.Kind.Title())
	row("Recipient", rec.RecipientName)
	row("Course", rec.CourseTitle)
	row("Issued", rec.IssueDateFormatted)
	row("Surface", fmt.Sprintf("%.0f × %.0f", a.Surface.Width, a.Surface.Height))
	row("Scale", fmt.Sprintf("%.3f", a.Surface.Scale))
	row("Revision", fmt.Sprintf("%d", a.Revision))
	if a.Tree != nil {
		row("Nodes", fmt.Sprintf("%d", a.Tree.Count()))
		row("Images", imageSummary(a))
	}
	b.WriteString(previewFrameStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	if m.Status != "" {
		b.WriteString(StyleDim.Render(m.Status))
		b.WriteString("\n")
	}
	return b.String()
}

// imageSummary reports how many image slots of the artifact are filled.
func imageSummary(a preview.Artifact) string {
	logos := len(a.Tree.Find(presets.RoleLogo))
	bgs := len(a.Tree.Find(presets.RoleBackgroundImage))
	if logos+bgs == 0 {
		return "none placed"
	}
	return fmt.Sprintf("%d logo, %d background", logos, bgs)
}

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// Command
// =============================================================================

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		recordPath string
		output     string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "preview [template-or-bundle]",
		Short: "Live terminal preview that follows the window size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			opts, err := c.pipelineOptions(args[0], recordPath)
			if err != nil {
				return err
			}
			c.applyConfig(&opts)
			if output == "" {
				output = basePath("", args[0]) + ".svg"
			}

			cc, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			defer cc.Close()
			fetcher := asset.NewHTTPFetcher(opts.AssetTimeout, cc)

			target := preview.Mount(ctx, opts.Template, opts.Record, preview.Options{
				Origin:   opts.Origin,
				Resolver: asset.NewResolver(opts.AssetBase),
				Debounce: c.Config.Debounce,
				Fetcher:  fetcher,
				Logger:   c.Logger,
			})
			defer target.Close()

			_, err = tea.NewProgram(NewPreviewModel(target, output), tea.WithContext(ctx)).Run()
			if err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&recordPath, "record", "", "record file (JSON or YAML)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "path the s key saves the SVG to")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
