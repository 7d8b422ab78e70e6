package cli

import (
	"strings"
	"testing"
)

func TestLayoutRows(t *testing.T) {
	rows := layoutRows()
	if len(rows) != 14 {
		t.Fatalf("rows = %d, want 14", len(rows))
	}
	if rows[0][0] != "classic" || rows[0][2] != "842×595" || rows[0][3] != "yes" {
		t.Errorf("first row = %v", rows[0])
	}
	if last := rows[len(rows)-1]; last[0] != "freeform" {
		t.Errorf("last row = %v", last)
	}

	for _, r := range rows {
		if r[0] == "elegant_serif" {
			if r[2] != "595×842" || r[3] != "no" {
				t.Errorf("elegant_serif row = %v", r)
			}
			return
		}
	}
	t.Error("elegant_serif missing")
}

func TestLayoutsTable(t *testing.T) {
	out := layoutsTable()
	for _, want := range []string{"Layouts", "Modern Landscape", "achievement_star", "Freeform"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q", want)
		}
	}
}
