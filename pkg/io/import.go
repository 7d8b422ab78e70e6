package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf infers the encoding from a file extension. Anything other than
// .yaml or .yml is treated as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Bundle is a template and a record stored in one document:
//
//	{"template": {...}, "record": {...}}
type Bundle struct {
	Template *certificate.Template      `json:"template" yaml:"template"`
	Record   *certificate.DynamicRecord `json:"record,omitempty" yaml:"record,omitempty"`
}

// ReadTemplate decodes a template from r.
//
// Unknown keys are ignored, so documents exported by the template store
// (with ids, timestamps and owner fields) decode as they are.
func ReadTemplate(r io.Reader, f Format) (*certificate.Template, error) {
	var t certificate.Template
	if err := decode(r, f, &t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "decode template")
	}
	return &t, nil
}

// ReadRecord decodes a dynamic record from r. The order of extra_fields is
// kept as written.
func ReadRecord(r io.Reader, f Format) (*certificate.DynamicRecord, error) {
	var rec certificate.DynamicRecord
	if err := decode(r, f, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "decode record")
	}
	return &rec, nil
}

// ReadBundle decodes a bundle from r. A document without a "template" key
// is read as a bare template.
func ReadBundle(r io.Reader, f Format) (*Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var b Bundle
	if err := decode(bytes.NewReader(data), f, &b); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "decode bundle")
	}
	if b.Template != nil {
		return &b, nil
	}

	t, err := ReadTemplate(bytes.NewReader(data), f)
	if err != nil {
		return nil, err
	}
	return &Bundle{Template: t}, nil
}

// ImportTemplate reads a template file. The encoding follows the extension.
func ImportTemplate(path string) (*certificate.Template, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadTemplate(f, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ImportRecord reads a dynamic record file.
func ImportRecord(path string) (*certificate.DynamicRecord, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rec, err := ReadRecord(f, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// ImportBundle reads a bundle file.
func ImportBundle(path string) (*Bundle, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := ReadBundle(f, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

func open(path string) (*os.File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func decode(r io.Reader, f Format, v any) error {
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(v); err != nil && err != io.EOF {
			return err
		}
		return nil
	case FormatJSON, "":
		return json.NewDecoder(r).Decode(v)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", f)
}
