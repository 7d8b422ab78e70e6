// Package tokens substitutes {{name}} placeholders in certificate text.
//
// A token is recognized when its name is a key of the supplied [Fields].
// Matching ignores case, so {{Recipient_Name}} and {{recipient_name}} are
// the same token. Recognized tokens with an empty value become "[name]"
// so that an unfilled template stays visibly diagnosable. Unrecognized
// tokens are left exactly as written.
//
// Substitution is a single left-to-right pass over the input: a value that
// itself contains "{{...}}" is emitted verbatim and never expanded again.
package tokens

import (
	"regexp"
	"strings"
)

// Canonical token names produced by the merge layer.
const (
	RecipientName  = "recipient_name"
	CourseTitle    = "course_title"
	IssueDate      = "issue_date"
	IssuerName     = "issuer_name"
	VerificationID = "verification_id"
	Signature      = "signature"
	Amount         = "amount"
)

// Fields maps token names to values. Keys are matched case-insensitively.
type Fields map[string]string

var tokenRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)

// Substitute replaces every recognized token in text.
func Substitute(text string, fields Fields) string {
	if text == "" || !strings.Contains(text, "{{") {
		return text
	}
	lookup := fields.fold()

	return tokenRe.ReplaceAllStringFunc(text, func(match string) string {
		name := strings.ToLower(tokenRe.FindStringSubmatch(match)[1])
		value, ok := lookup[name]
		if !ok {
			return match
		}
		if strings.TrimSpace(value) == "" {
			return "[" + name + "]"
		}
		return value
	})
}

// Names returns the distinct token names used in text, lower-cased, in
// order of first appearance.
func Names(text string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range tokenRe.FindAllStringSubmatch(text, -1) {
		name := strings.ToLower(m[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Unresolved returns the token names in text that fields does not
// recognize or recognizes with an empty value.
func Unresolved(text string, fields Fields) []string {
	lookup := fields.fold()
	var out []string
	for _, name := range Names(text) {
		if v, ok := lookup[name]; !ok || strings.TrimSpace(v) == "" {
			out = append(out, name)
		}
	}
	return out
}

// fold lower-cases keys. When two keys fold to the same name the
// non-empty value wins.
func (f Fields) fold() map[string]string {
	out := make(map[string]string, len(f))
	for k, v := range f {
		key := strings.ToLower(k)
		if prev, ok := out[key]; ok && prev != "" && v == "" {
			continue
		}
		out[key] = v
	}
	return out
}
