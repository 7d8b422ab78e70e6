package pipeline

import (
	"context"
	"fmt"

	"github.com/certifyme/certrender/pkg/core/render/sink"
	"github.com/certifyme/certrender/pkg/core/render/visual"
	"github.com/certifyme/certrender/pkg/errors"
)

// RenderArtifacts serializes the tree in the requested formats.
func RenderArtifacts(ctx context.Context, t *visual.Tree, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(t, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, t, sink.WithSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, t, sink.WithSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(t, buildJSONOptions(opts)...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Width > 0 {
		svgOpts = append(svgOpts, sink.WithWidth(opts.Width))
	}
	return svgOpts
}

func buildJSONOptions(opts Options) []sink.JSONOption {
	var jsonOpts []sink.JSONOption
	if opts.Width > 0 {
		jsonOpts = append(jsonOpts, sink.WithJSONWidth(opts.Width))
	}
	if opts.Modules {
		jsonOpts = append(jsonOpts, sink.WithModules())
	}
	return jsonOpts
}
