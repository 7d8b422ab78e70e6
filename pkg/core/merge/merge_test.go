package merge

import (
	"reflect"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/asset"
	"github.com/certifyme/certrender/pkg/core/tokens"
)

var today = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

func TestMergeFallbacks(t *testing.T) {
	rec := Merge(nil, nil, WithToday(today))

	checks := []struct {
		name, got, want string
	}{
		{"title", rec.Title, DefaultTitle},
		{"body", rec.Body, DefaultBody},
		{"recipient", rec.RecipientName, DefaultRecipientName},
		{"course", rec.CourseTitle, DefaultCourseTitle},
		{"issuer", rec.IssuerName, DefaultIssuerName},
		{"signature", rec.Signature, DefaultIssuerName},
		{"amount", rec.Amount, DefaultAmount},
		{"email", rec.RecipientEmail, DefaultRecipientEmail},
		{"date", rec.IssueDateFormatted, "March 14, 2025"},
		{"primary", rec.Style.PrimaryColor, DefaultPrimaryColor},
		{"secondary", rec.Style.SecondaryColor, DefaultSecondaryColor},
		{"body color", rec.Style.BodyFontColor, DefaultBodyFontColor},
		{"font", rec.Style.FontFamily, DefaultFontFamily},
		{"kind", string(rec.Kind), string(certificate.LayoutClassic)},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			if c.got != c.want {
				t.Errorf("got %q, want %q", c.got, c.want)
			}
		})
	}

	if !rec.Logo.IsZero() || !rec.Background.IsZero() {
		t.Error("no asset references should resolve to zero refs")
	}
	if len(rec.CustomFields) != 0 {
		t.Errorf("CustomFields = %v, want empty", rec.CustomFields)
	}
}

func TestMergePrecedence(t *testing.T) {
	tmpl := &certificate.Template{
		CustomText: &certificate.CustomText{Title: "Award", Body: "template body"},
	}

	t.Run("template default over fallback", func(t *testing.T) {
		rec := Merge(tmpl, &certificate.DynamicRecord{RecipientName: "Jane Doe"}, WithToday(today))
		if rec.Title != "Award" {
			t.Errorf("Title = %q, want Award", rec.Title)
		}
		if rec.Body != "template body" {
			t.Errorf("Body = %q", rec.Body)
		}
		if rec.RecipientName != "Jane Doe" {
			t.Errorf("RecipientName = %q", rec.RecipientName)
		}
		if rec.CourseTitle != DefaultCourseTitle {
			t.Errorf("CourseTitle = %q", rec.CourseTitle)
		}
	})

	t.Run("dynamic over template", func(t *testing.T) {
		rec := Merge(tmpl, &certificate.DynamicRecord{CertificateTitle: "Honors"}, WithToday(today))
		if rec.Title != "Honors" {
			t.Errorf("Title = %q, want Honors", rec.Title)
		}
	})

	t.Run("blank values fall through", func(t *testing.T) {
		rec := Merge(tmpl, &certificate.DynamicRecord{CertificateTitle: "   ", IssuerName: "Acme"}, WithToday(today))
		if rec.Title != "Award" {
			t.Errorf("Title = %q, want Award", rec.Title)
		}
		if rec.Signature != "Acme" {
			t.Errorf("Signature = %q, want issuer name", rec.Signature)
		}
	})
}

func TestMergeAmount(t *testing.T) {
	tests := []struct {
		name string
		rec  certificate.DynamicRecord
		want string
	}{
		{"explicit", certificate.DynamicRecord{Amount: "$50.00", ExtraFields: certificate.Fields{{Key: "amount", Value: "$10"}}}, "$50.00"},
		{"extra field", certificate.DynamicRecord{ExtraFields: certificate.Fields{{Key: "amount", Value: "$10"}}}, "$10"},
		{"fallback", certificate.DynamicRecord{}, "PAID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Merge(nil, &tt.rec, WithToday(today))
			if rec.Amount != tt.want {
				t.Errorf("Amount = %q, want %q", rec.Amount, tt.want)
			}
		})
	}
}

func TestMergeCustomFieldsExcludeAmount(t *testing.T) {
	dyn := &certificate.DynamicRecord{
		ExtraFields: certificate.Fields{
			{Key: "amount", Value: "50"},
			{Key: "grade", Value: "A"},
			{Key: "cohort", Value: "2025"},
		},
	}
	rec := Merge(nil, dyn, WithToday(today))

	want := certificate.Fields{{Key: "grade", Value: "A"}, {Key: "cohort", Value: "2025"}}
	if !reflect.DeepEqual(rec.CustomFields, want) {
		t.Errorf("CustomFields = %v, want %v", rec.CustomFields, want)
	}
	if len(dyn.ExtraFields) != 3 {
		t.Error("Merge must not mutate the dynamic record")
	}
}

func TestMergeIssueDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-15", "January 15, 2024"},
		{"2024-01-15T23:30:00Z", "January 15, 2024"},
		{"2024-01-15T08:00:00", "January 15, 2024"},
		{"January 15, 2024", "January 15, 2024"},
		{"01/15/2024", "January 15, 2024"},
		{"", "March 14, 2025"},
		{"not a date", "March 14, 2025"},
		{"2024-13-45", "March 14, 2025"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rec := Merge(nil, &certificate.DynamicRecord{IssueDate: tt.in}, WithToday(today))
			if rec.IssueDateFormatted != tt.want {
				t.Errorf("IssueDateFormatted = %q, want %q", rec.IssueDateFormatted, tt.want)
			}
		})
	}
}

func TestMergeTokens(t *testing.T) {
	t.Run("raw values", func(t *testing.T) {
		rec := Merge(nil, &certificate.DynamicRecord{RecipientName: "Jane Doe"}, WithToday(today))

		got := tokens.Substitute("{{recipient_name}} finished {{course_title}} on {{issue_date}}", rec.Tokens)
		want := "Jane Doe finished [course_title] on [issue_date]"
		if got != want {
			t.Errorf("Substitute = %q, want %q", got, want)
		}
	})

	t.Run("derived values", func(t *testing.T) {
		rec := Merge(nil, &certificate.DynamicRecord{
			IssuerName:     "Acme Academy",
			IssueDate:      "2024-06-01",
			VerificationID: "abc123",
			ExtraFields:    certificate.Fields{{Key: "grade", Value: "A+"}, {Key: "amount", Value: "$20"}},
		}, WithToday(today))

		got := tokens.Substitute("{{signature}}|{{issue_date}}|{{verification_id}}|{{grade}}|{{amount}}", rec.Tokens)
		want := "Acme Academy|June 1, 2024|abc123|A+|$20"
		if got != want {
			t.Errorf("Substitute = %q, want %q", got, want)
		}
	})

	t.Run("canonical names win over extension fields", func(t *testing.T) {
		rec := Merge(nil, &certificate.DynamicRecord{
			RecipientName: "Jane",
			ExtraFields:   certificate.Fields{{Key: "recipient_name", Value: "Mallory"}},
		}, WithToday(today))
		if rec.Tokens[tokens.RecipientName] != "Jane" {
			t.Errorf("recipient_name token = %q", rec.Tokens[tokens.RecipientName])
		}
	})

	t.Run("empty canonical name beats differently cased extension field", func(t *testing.T) {
		rec := Merge(nil, &certificate.DynamicRecord{
			ExtraFields: certificate.Fields{{Key: "Recipient_Name", Value: "Mallory"}, {Key: "Grade", Value: "A"}},
		}, WithToday(today))

		got := tokens.Substitute("{{recipient_name}}|{{Recipient_Name}}|{{grade}}", rec.Tokens)
		want := "[recipient_name]|[recipient_name]|A"
		if got != want {
			t.Errorf("Substitute = %q, want %q", got, want)
		}
		if _, ok := rec.Tokens["Recipient_Name"]; ok {
			t.Error("token keys should be lower-cased")
		}
	})
}

func TestMergeAssets(t *testing.T) {
	tmpl := &certificate.Template{
		LogoURL:       "/uploads/logo.png",
		BackgroundURL: "blob:http://localhost:5173/abcd",
	}
	rec := Merge(tmpl, &certificate.DynamicRecord{SignatureImage: "https://cdn.example.com/sig.png"},
		WithToday(today), WithResolver(asset.NewResolver("https://api.example.com/")))

	if rec.Logo.URL != "https://api.example.com/uploads/logo.png" {
		t.Errorf("Logo = %q", rec.Logo.URL)
	}
	if rec.Background.Kind != asset.KindPreview {
		t.Errorf("Background kind = %v, want preview", rec.Background.Kind)
	}
	if rec.SignatureImage.Kind != asset.KindAbsolute {
		t.Errorf("SignatureImage kind = %v, want absolute", rec.SignatureImage.Kind)
	}
}

func TestMergeDeterministic(t *testing.T) {
	tmpl := &certificate.Template{LayoutKind: "modern", PrimaryColor: "#111111"}
	dyn := &certificate.DynamicRecord{
		RecipientName: "Jane",
		ExtraFields:   certificate.Fields{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}},
	}

	a := Merge(tmpl, dyn, WithToday(today))
	b := Merge(tmpl, dyn, WithToday(today))
	if !reflect.DeepEqual(a, b) {
		t.Error("Merge should be deterministic")
	}
}

func TestRecordReference(t *testing.T) {
	tests := []struct {
		id, want string
	}{
		{"3f2a9c10-aaaa-bbbb", "#3F2A9C10"},
		{"ab", "#AB"},
		{"", "#12345678"},
		{"ééééé", "#ÉÉÉÉÉ"},
		{"éééééééééé", "#ÉÉÉÉÉÉÉÉ"},
		{"日本語のIDです12", "#日本語のIDです"},
	}
	for _, tt := range tests {
		got := (Record{VerificationID: tt.id}).Reference()
		if got != tt.want {
			t.Errorf("Reference(%q) = %q, want %q", tt.id, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("Reference(%q) is not valid UTF-8", tt.id)
		}
	}
}
