package cli

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/tokens"
)

func TestTokenReport(t *testing.T) {
	layout := &certificate.LayoutData{Elements: []certificate.Element{
		{Type: certificate.ElementText, Text: "Awarded to {{recipient_name}}"},
		{Type: certificate.ElementText, Text: "for {{Course_Title}} on {{issue_date}}"},
		{Type: certificate.ElementShape},
		{Type: certificate.ElementText, Text: "{{recipient_name}} · {{grade}}"},
	}}
	fields := tokens.Fields{"recipient_name": "Jane Doe", "course_title": "", "issue_date": "March 14, 2025"}

	used, unfilled := tokenReport(layout, fields)
	if want := []string{"recipient_name", "course_title", "issue_date", "grade"}; !reflect.DeepEqual(used, want) {
		t.Errorf("used = %v, want %v", used, want)
	}
	if want := []string{"course_title", "grade"}; !reflect.DeepEqual(unfilled, want) {
		t.Errorf("unfilled = %v, want %v", unfilled, want)
	}

	if used, unfilled := tokenReport(nil, fields); used != nil || unfilled != nil {
		t.Error("nil layout should report nothing")
	}
}

func TestInspectCommand(t *testing.T) {
	dir := isolate(t)
	tpl := writeTestFile(t, filepath.Join(dir, "template.json"), testTemplate)
	rec := writeTestFile(t, filepath.Join(dir, "jane.json"), testRecord)

	for _, args := range [][]string{
		{"inspect", tpl, "--record", rec},
		{"inspect", tpl, "--record", rec, "--json"},
	} {
		if logs, err := execute(t, args...); err != nil {
			t.Fatalf("%v: %v\n%s", args, err, logs)
		}
	}

	if _, err := execute(t, "inspect", filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing template")
	}
}
