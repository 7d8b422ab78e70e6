package certificate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DynamicRecord carries the recipient-specific values supplied at render
// time. Every field is optional.
type DynamicRecord struct {
	RecipientName  string `json:"recipient_name,omitempty" yaml:"recipient_name,omitempty"`
	RecipientEmail string `json:"recipient_email,omitempty" yaml:"recipient_email,omitempty"`
	CourseTitle    string `json:"course_title,omitempty" yaml:"course_title,omitempty"`
	IssueDate      string `json:"issue_date,omitempty" yaml:"issue_date,omitempty"`
	IssuerName     string `json:"issuer_name,omitempty" yaml:"issuer_name,omitempty"`
	Signature      string `json:"signature,omitempty" yaml:"signature,omitempty"`
	SignatureImage string `json:"signature_image,omitempty" yaml:"signature_image,omitempty"`
	VerificationID string `json:"verification_id,omitempty" yaml:"verification_id,omitempty"`
	Amount         Scalar `json:"amount,omitempty" yaml:"amount,omitempty"`

	// Per-certificate overrides of the template's custom text.
	CertificateTitle string `json:"certificate_title,omitempty" yaml:"certificate_title,omitempty"`
	CertificateBody  string `json:"certificate_body,omitempty" yaml:"certificate_body,omitempty"`

	ExtraFields Fields `json:"extra_fields,omitempty" yaml:"extra_fields,omitempty"`
}

// NewVerificationID mints a random verification id.
func NewVerificationID() string {
	return uuid.NewString()
}

// WithVerificationID returns a copy of r that carries a verification id,
// minting one when r has none.
func (r DynamicRecord) WithVerificationID() DynamicRecord {
	if strings.TrimSpace(r.VerificationID) == "" {
		r.VerificationID = NewVerificationID()
	}
	return r
}

// =============================================================================
// Scalar
// =============================================================================

// Scalar is a string that also accepts JSON numbers and booleans, so that
// `"amount": 50` and `"amount": "50"` decode the same way.
type Scalar string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	v, err := scalarString(data)
	if err != nil {
		return err
	}
	*s = Scalar(v)
	return nil
}

// String returns the underlying value.
func (s Scalar) String() string { return string(s) }

// =============================================================================
// Fields
// =============================================================================

// Field is one extension key/value pair.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Fields is an ordered set of extension fields. It decodes from a JSON
// object or a YAML mapping and keeps the document's key order. Non-string
// values are stringified; a repeated key keeps its first position and its
// last value.
type Fields []Field

// Get returns the value stored under key.
func (f Fields) Get(key string) (string, bool) {
	for _, fld := range f {
		if fld.Key == key {
			return fld.Value, true
		}
	}
	return "", false
}

func (f *Fields) set(key, value string) {
	for i := range *f {
		if (*f)[i].Key == key {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Key: key, Value: value})
}

// Map returns the fields as a map. Order is lost.
func (f Fields) Map() map[string]string {
	m := make(map[string]string, len(f))
	for _, fld := range f {
		m[fld.Key] = fld.Value
	}
	return m
}

// MarshalJSON encodes the fields as a JSON object in order.
func (f Fields) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fld := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(fld.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(fld.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (f *Fields) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("extra_fields: expected object, got %v", tok)
	}

	out := Fields{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("extra_fields: expected key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("extra_fields.%s: %w", key, err)
		}
		value, err := scalarString(raw)
		if err != nil {
			return fmt.Errorf("extra_fields.%s: %w", key, err)
		}
		out.set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = out
	return nil
}

// UnmarshalYAML decodes a YAML mapping, keeping key order.
func (f *Fields) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*f = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("extra_fields: expected mapping at line %d", node.Line)
	}

	out := Fields{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		var value string
		switch {
		case v.Kind == yaml.ScalarNode && v.Tag == "!!null":
		case v.Kind == yaml.ScalarNode:
			value = v.Value
		default:
			var decoded interface{}
			if err := v.Decode(&decoded); err != nil {
				return fmt.Errorf("extra_fields.%s: %w", k.Value, err)
			}
			b, err := json.Marshal(decoded)
			if err != nil {
				return fmt.Errorf("extra_fields.%s: %w", k.Value, err)
			}
			value = string(b)
		}
		out.set(k.Value, value)
	}
	*f = out
	return nil
}

// MarshalYAML encodes the fields as an ordered YAML mapping.
func (f Fields) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, fld := range f {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fld.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fld.Value},
		)
	}
	return node, nil
}

// scalarString renders a raw JSON value as display text. Strings are
// unquoted, null is empty, numbers and booleans keep their literal form,
// and composite values are compacted.
func scalarString(raw []byte) (string, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")):
		return "", nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case raw[0] == '{' || raw[0] == '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	if !json.Valid(raw) {
		return "", fmt.Errorf("invalid JSON value %q", raw)
	}
	return string(raw), nil
}
