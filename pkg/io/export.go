package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/merge"
)

// WriteTemplate encodes t to w.
func WriteTemplate(t *certificate.Template, w io.Writer, f Format) error {
	return encode(t, w, f)
}

// WriteRecord encodes a canonical record as indented JSON.
func WriteRecord(rec merge.Record, w io.Writer) error {
	return encode(rec, w, FormatJSON)
}

// ExportTemplate writes t to a file. The encoding follows the extension.
func ExportTemplate(t *certificate.Template, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTemplate(t, f, FormatOf(path))
}

func encode(v any, w io.Writer, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	}
}
