package certificate

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestFieldsUnmarshalJSONKeepsOrder(t *testing.T) {
	data := `{"grade":"A","amount":50,"honors":true,"cohort":null,"tags":["go", "svg"],"zeta":"last"}`

	var f Fields
	if err := json.Unmarshal([]byte(data), &f); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := Fields{
		{"grade", "A"},
		{"amount", "50"},
		{"honors", "true"},
		{"cohort", ""},
		{"tags", `["go","svg"]`},
		{"zeta", "last"},
	}
	if len(f) != len(want) {
		t.Fatalf("got %d fields, want %d: %v", len(f), len(want), f)
	}
	for i := range want {
		if f[i] != want[i] {
			t.Errorf("field %d = %+v, want %+v", i, f[i], want[i])
		}
	}
}

func TestFieldsUnmarshalJSONDuplicateKey(t *testing.T) {
	var f Fields
	if err := json.Unmarshal([]byte(`{"a":"1","b":"2","a":"3"}`), &f); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(f) != 2 || f[0] != (Field{"a", "3"}) {
		t.Errorf("duplicate key handling: %v", f)
	}
}

func TestFieldsUnmarshalJSONErrors(t *testing.T) {
	var f Fields
	if err := json.Unmarshal([]byte(`["a"]`), &f); err == nil {
		t.Error("expected error for array")
	}
	if err := json.Unmarshal([]byte(`null`), &f); err != nil || f != nil {
		t.Errorf("null: f=%v err=%v", f, err)
	}
}

func TestFieldsMarshalJSON(t *testing.T) {
	f := Fields{{"z", "1"}, {"a", "two"}}
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"z":"1","a":"two"}` {
		t.Errorf("Marshal = %s", data)
	}
}

func TestFieldsYAML(t *testing.T) {
	src := `
extra_fields:
  score: 98
  mentor: Ada
  empty:
  levels: [1, 2]
`
	var doc struct {
		ExtraFields Fields `yaml:"extra_fields"`
	}
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	keys := make([]string, len(doc.ExtraFields))
	for i, f := range doc.ExtraFields {
		keys[i] = f.Key
	}
	if strings.Join(keys, ",") != "score,mentor,empty,levels" {
		t.Errorf("keys = %v", keys)
	}
	if v, _ := doc.ExtraFields.Get("score"); v != "98" {
		t.Errorf("score = %q", v)
	}
	if v, _ := doc.ExtraFields.Get("empty"); v != "" {
		t.Errorf("empty = %q", v)
	}
	if v, _ := doc.ExtraFields.Get("levels"); v != "[1,2]" {
		t.Errorf("levels = %q", v)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), "score: \"98\"") {
		t.Errorf("Marshal = %s", out)
	}
}

func TestDynamicRecordJSON(t *testing.T) {
	data := `{
		"recipient_name": "Jane Doe",
		"amount": 49.99,
		"extra_fields": {"grade": "A", "amount": "50"}
	}`

	var r DynamicRecord
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r.RecipientName != "Jane Doe" {
		t.Errorf("RecipientName = %q", r.RecipientName)
	}
	if r.Amount != "49.99" {
		t.Errorf("Amount = %q, want 49.99", r.Amount)
	}
	if v, ok := r.ExtraFields.Get("amount"); !ok || v != "50" {
		t.Errorf("extra amount = %q, %v", v, ok)
	}
}

func TestWithVerificationID(t *testing.T) {
	r := DynamicRecord{}.WithVerificationID()
	if len(r.VerificationID) != 36 {
		t.Errorf("minted id = %q, want uuid", r.VerificationID)
	}

	kept := DynamicRecord{VerificationID: "abc123"}.WithVerificationID()
	if kept.VerificationID != "abc123" {
		t.Errorf("existing id replaced: %q", kept.VerificationID)
	}

	if NewVerificationID() == NewVerificationID() {
		t.Error("ids should be unique")
	}
}
