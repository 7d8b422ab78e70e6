// Package io reads and writes certificate documents.
//
// # Documents
//
// Three documents are understood, each as JSON or YAML:
//
//   - a template, as stored by the template store (layout kind, colors,
//     asset references, custom text, and layout_data for free-form designs)
//   - a dynamic record with the recipient-specific values
//   - a bundle holding both:
//
//	template:
//	  layout_kind: classic
//	  custom_text:
//	    title: Award
//	record:
//	  recipient_name: Jane Doe
//	  extra_fields:
//	    grade: A
//	    hours: 12
//
// The encoding follows the file extension: .yaml and .yml are YAML,
// everything else is JSON. extra_fields keep the key order of the source
// document in both encodings, and non-string values are stringified.
//
// # Errors
//
// A missing file yields errors.ErrCodeFileNotFound; a document that does
// not decode yields errors.ErrCodeInvalidTemplate or
// errors.ErrCodeInvalidRecord. Decoding never validates layout semantics:
// unknown layout kinds and missing fields are rendering concerns with
// their own fallbacks.
package io
