package sink

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/merge"
	"github.com/certifyme/certrender/pkg/core/render/badge"
	"github.com/certifyme/certrender/pkg/core/render/presets"
	"github.com/certifyme/certrender/pkg/core/render/visual"
	"github.com/certifyme/certrender/pkg/errors"
)

func sampleTree() *visual.Tree {
	t := visual.New("test", visual.DefaultSize)
	fill := t.AddGradient(visual.Linear("band", 90,
		visual.Stop{Offset: 0, Color: "#0284C7"},
		visual.Stop{Offset: 1, Color: "#E2E8F0"},
	))
	g := &visual.Group{Base: visual.Base{ID: "el-0", Role: "element", Opacity: 0.5}, X: 10, Y: 20, Rotate: 45}
	g.Add(visual.NewText("text", "A & B <C>", 0, 0, 0, visual.TextStyle{Size: 20, Family: "Georgia", Bold: true}))
	t.Add(
		&visual.Rect{Base: visual.Base{Role: "card"}, Width: 842, Height: 595, Fill: "#FFFFFF", Shadow: true},
		&visual.Rect{X: 0, Y: 0, Width: 842, Height: 12, Fill: fill},
		g,
		&visual.Image{X: 1, Y: 2, Width: 50, Height: 50, Href: "data:image/png;base64,AA==", Fit: visual.FitContain, Round: true, Grayscale: true},
		badge.Node("https://example.com", "abc123", 700, 450, 80),
	)
	return t
}

func TestRenderSVGHeader(t *testing.T) {
	svg := string(RenderSVG(sampleTree()))
	if !strings.HasPrefix(svg, "<svg ") {
		t.Fatalf("svg starts with %q", svg[:10])
	}
	if !strings.Contains(svg, `viewBox="0 0 842 595" width="842" height="595"`) {
		t.Errorf("unexpected header: %s", svg[:200])
	}

	svg = string(RenderSVG(sampleTree(), WithWidth(421)))
	if !strings.Contains(svg, `viewBox="0 0 842 595" width="421" height="297.5"`) {
		t.Errorf("scaled header: %s", svg[:200])
	}
}

func TestRenderSVGWellFormed(t *testing.T) {
	dec := xml.NewDecoder(strings.NewReader(string(RenderSVG(sampleTree()))))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("invalid XML: %v", err)
		}
	}
}

func TestRenderSVGContent(t *testing.T) {
	svg := string(RenderSVG(sampleTree()))
	for _, want := range []string{
		`<linearGradient id="band" x1="0" y1="0.5" x2="1" y2="0.5">`,
		`fill="url(#band)"`,
		`<filter id="shadow"`,
		`filter="url(#shadow)"`,
		`<filter id="grayscale">`,
		`clip-path="url(#clip-1)"`,
		`preserveAspectRatio="xMidYMid meet"`,
		`transform="translate(10 20) rotate(45)"`,
		`opacity="0.5"`,
		`A &amp; B &lt;C&gt;`,
		`font-weight="bold"`,
		`data-payload="https://example.com/verify/abc123"`,
		`shape-rendering="crispEdges"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestRenderSVGCodePlaceholder(t *testing.T) {
	tr := visual.New("test", visual.DefaultSize)
	tr.Add(&visual.Code{X: 10, Y: 10, Size: 40, Payload: "x", Label: "QR"})
	svg := string(RenderSVG(tr))
	if !strings.Contains(svg, ">QR</text>") {
		t.Errorf("placeholder label missing: %s", svg)
	}
	if strings.Contains(svg, "crispEdges") {
		t.Error("placeholder should not draw modules")
	}
}

func TestRenderSVGFadedGradientStops(t *testing.T) {
	tr := visual.New("test", visual.DefaultSize)
	tr.AddGradient(visual.Linear("wash", 180,
		visual.Stop{Offset: 0, Color: "#000000", Opacity: 0.25},
		visual.Stop{Offset: 1, Color: "#000000"},
	))
	svg := string(RenderSVG(tr))
	if !strings.Contains(svg, `stop-opacity="0.25"`) || !strings.Contains(svg, `stop-opacity="0"`) {
		t.Errorf("stop opacities missing: %s", svg)
	}
}

func TestRenderSVGEveryPreset(t *testing.T) {
	rec := merge.Merge(nil, &certificate.DynamicRecord{
		RecipientName: "Jane <Doe>",
		ExtraFields:   certificate.Fields{{Key: "grade", Value: "A&B"}},
	}, merge.WithToday(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)))
	for _, kind := range presets.Kinds() {
		svg := RenderSVG(presets.Render(kind, rec, nil, "https://example.com"))
		dec := xml.NewDecoder(strings.NewReader(string(svg)))
		for {
			_, err := dec.Token()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("%s: invalid XML: %v", kind, err)
			}
		}
		if !strings.Contains(string(svg), "Jane &lt;Doe&gt;") {
			t.Errorf("%s: recipient missing", kind)
		}
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(sampleTree())
	b := RenderSVG(sampleTree())
	if string(a) != string(b) {
		t.Error("svg is not deterministic")
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{842, "842"},
		{297.5, "297.5"},
		{1.23456, "1.235"},
		{-0.0001, "0"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sampleTree(), WithJSONWidth(421), WithModules())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Layout != "test" || out.Width != 842 || out.Height != 595 {
		t.Errorf("header = %+v", out)
	}
	if out.Surface == nil || out.Surface.Scale != 0.5 || out.Surface.Height != 297.5 {
		t.Errorf("surface = %+v", out.Surface)
	}

	var types []string
	for _, n := range out.Nodes {
		types = append(types, n.Type)
	}
	if got := strings.Join(types, ","); got != "rect,rect,group,image,code" {
		t.Errorf("types = %s", got)
	}
	group := out.Nodes[2]
	if len(group.Children) != 1 || group.Children[0].Type != "text" || group.Children[0].Lines[0] != "A & B <C>" {
		t.Errorf("group children = %+v", group.Children)
	}
	code := out.Nodes[4]
	if code.Payload != "https://example.com/verify/abc123" || len(code.Modules) == 0 {
		t.Errorf("code = %+v", code)
	}
	if len(code.Modules[0]) != len(code.Modules) {
		t.Errorf("modules are not square")
	}
}

func TestRenderJSONWithoutModules(t *testing.T) {
	data, err := RenderJSON(sampleTree())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"modules"`) || strings.Contains(string(data), `"surface"`) {
		t.Error("optional sections emitted by default")
	}
}

func TestConvertMissingTool(t *testing.T) {
	_, err := RenderPNG(context.Background(), sampleTree(), WithTool("certrender-no-such-tool"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("RenderPNG() error = %v, want UNSUPPORTED", err)
	}
	_, err = RenderPDF(context.Background(), sampleTree(), WithTool("certrender-no-such-tool"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("RenderPDF() error = %v, want UNSUPPORTED", err)
	}
}

func TestRenderPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := RenderPNG(context.Background(), sampleTree(), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !strings.HasPrefix(string(png), "\x89PNG") {
		t.Error("output is not a PNG")
	}
}
