package presets

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/asset"
	"github.com/certifyme/certrender/pkg/core/merge"
	"github.com/certifyme/certrender/pkg/core/render/badge"
	"github.com/certifyme/certrender/pkg/core/render/visual"
)

const origin = "https://certs.example.com"

var today = time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

func record(t *certificate.Template, dyn *certificate.DynamicRecord) merge.Record {
	return merge.Merge(t, dyn, merge.WithToday(today), merge.WithResolver(asset.NewResolver("https://api.example.com")))
}

func TestEveryKindRenders(t *testing.T) {
	kinds := append(Kinds(), "unknown_style", certificate.LayoutFreeform)
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			tr := Render(kind, record(nil, nil), nil, origin)
			if tr == nil || tr.Count() < 5 {
				t.Fatalf("tree too small for %s", kind)
			}
			if !tr.Size.Valid() {
				t.Errorf("Size = %v", tr.Size)
			}
			if tr.Text(RoleRecipient) != merge.DefaultRecipientName {
				t.Errorf("recipient = %q, want %q", tr.Text(RoleRecipient), merge.DefaultRecipientName)
			}
		})
	}
}

func TestKindsMatchesCatalog(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 13 || len(catalog) != 13 {
		t.Fatalf("Kinds() = %d, catalog = %d, want 13", len(kinds), len(catalog))
	}
	for _, k := range kinds {
		p, ok := Lookup(k)
		if !ok || p.Kind != k {
			t.Errorf("Lookup(%s) = %s, %v", k, p.Kind, ok)
		}
	}
}

func TestLookupFallback(t *testing.T) {
	for _, kind := range []certificate.LayoutKind{"", "bogus", certificate.LayoutFreeform} {
		p, ok := Lookup(kind)
		if ok {
			t.Errorf("Lookup(%q) ok = true", kind)
		}
		if p.Kind != certificate.LayoutClassic {
			t.Errorf("Lookup(%q) = %s, want classic", kind, p.Kind)
		}
	}
}

func TestPageSizes(t *testing.T) {
	for _, kind := range Kinds() {
		tr := Render(kind, record(nil, nil), nil, origin)
		want := visual.DefaultSize
		if kind == certificate.LayoutElegantSerif {
			want = visual.PortraitSize
		}
		if tr.Size != want {
			t.Errorf("%s: Size = %v, want %v", kind, tr.Size, want)
		}
		if tr.Layout != string(kind) {
			t.Errorf("%s: Layout = %q", kind, tr.Layout)
		}
	}
}

func TestBadgePlacement(t *testing.T) {
	rec := record(nil, &certificate.DynamicRecord{VerificationID: "abc123"})
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			tr := Render(kind, rec, nil, origin)
			codes := tr.Find(badge.Role)
			want := 1
			if kind == certificate.LayoutElegantSerif {
				want = 0
			}
			if len(codes) != want {
				t.Fatalf("badges = %d, want %d", len(codes), want)
			}
			if want == 0 {
				return
			}
			code := codes[0].(*visual.Code)
			if code.Payload != origin+"/verify/abc123" {
				t.Errorf("payload = %q", code.Payload)
			}
			if code.X < 0 || code.Y < 0 || code.X+code.Size > tr.Size.Width || code.Y+code.Size > tr.Size.Height {
				t.Errorf("badge at (%v,%v) size %v falls off the page", code.X, code.Y, code.Size)
			}
		})
	}
}

func TestPendingBadge(t *testing.T) {
	tr := Render(certificate.LayoutClassic, record(nil, nil), nil, origin)
	code := tr.Find(badge.Role)[0].(*visual.Code)
	if code.Payload != origin+"/verify/"+badge.PendingID {
		t.Errorf("payload = %q", code.Payload)
	}
}

func TestCustomFieldsListed(t *testing.T) {
	rec := record(nil, &certificate.DynamicRecord{ExtraFields: certificate.Fields{
		{Key: "amount", Value: "50"},
		{Key: "grade", Value: "A"},
	}})
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			tr := Render(kind, rec, nil, origin)
			keys := strings.ToLower(tr.Text(RoleFieldKey))
			if !strings.Contains(keys, "grade") {
				t.Errorf("field keys = %q, want grade", keys)
			}
			if strings.Contains(keys, "amount") {
				t.Errorf("field keys = %q, amount must not be listed", keys)
			}
			if got := tr.Text(RoleFieldValue); got != "A" {
				t.Errorf("field values = %q, want A", got)
			}
		})
	}
}

func TestNoCustomFields(t *testing.T) {
	for _, kind := range Kinds() {
		tr := Render(kind, record(nil, nil), nil, origin)
		if n := len(tr.Find(RoleFieldKey)); n != 0 {
			t.Errorf("%s: %d field keys without custom fields", kind, n)
		}
	}
}

func TestClassicScenario(t *testing.T) {
	tmpl := &certificate.Template{
		LayoutKind:   "classic",
		PrimaryColor: "#112233",
		CustomText:   &certificate.CustomText{Title: "Award"},
	}
	rec := record(tmpl, &certificate.DynamicRecord{RecipientName: "Jane Doe"})
	tr := Render(certificate.LayoutClassic, rec, nil, origin)

	if got := tr.Text(RoleTitle); got != "AWARD" {
		t.Errorf("title = %q, want AWARD", got)
	}
	if got := tr.Text(RoleRecipient); got != "Jane Doe" {
		t.Errorf("recipient = %q, want Jane Doe", got)
	}
	if got := tr.Text(RoleCourse); got != "COURSE TITLE" {
		t.Errorf("course = %q, want COURSE TITLE", got)
	}
	if got := tr.Text(RoleDate); got != "Awarded on March 14, 2025" {
		t.Errorf("date = %q", got)
	}

	title := tr.Find(RoleTitle)[0].(*visual.Text)
	if title.Style.Color != "#112233" {
		t.Errorf("title color = %q, want primary", title.Style.Color)
	}
}

func TestReceiptAmount(t *testing.T) {
	rec := record(nil, &certificate.DynamicRecord{Amount: "$120.00", RecipientEmail: "jane@example.com"})
	tr := Render(certificate.LayoutReceipt, rec, nil, origin)
	if got := tr.Texts(RoleAmount); len(got) != 1 || got[0] != "$120.00" {
		t.Errorf("amount = %q", got)
	}
	if got := tr.Text(RoleTotal); got != "$120.00" {
		t.Errorf("total = %q", got)
	}
	if got := tr.Text(RoleEmail); got != "jane@example.com" {
		t.Errorf("email = %q", got)
	}

	tr = Render(certificate.LayoutReceipt, record(nil, nil), nil, origin)
	if got := tr.Text(RoleTotal); got != merge.DefaultAmount {
		t.Errorf("default total = %q, want %q", got, merge.DefaultAmount)
	}
}

func TestReceiptOwnsContainer(t *testing.T) {
	p, _ := Lookup(certificate.LayoutReceipt)
	if !p.OwnsContainer {
		t.Fatal("receipt should draw its own container")
	}
	tr := p.Render(record(nil, nil), nil, origin)
	cards := tr.Find(RoleCard)
	if len(cards) != 1 {
		t.Fatalf("cards = %d, want 1", len(cards))
	}
	if r := cards[0].(*visual.Rect); r.Radius == 0 {
		t.Error("receipt card should be rounded")
	}
}

func TestImagesOnlyWhenLoaded(t *testing.T) {
	tmpl := &certificate.Template{LogoURL: "/uploads/logo.png", BackgroundURL: "/uploads/bg.png"}
	rec := record(tmpl, nil)

	tr := Render(certificate.LayoutClassic, rec, nil, origin)
	if len(tr.Find(RoleLogo)) != 0 || len(tr.Find(RoleBackgroundImage)) != 0 {
		t.Error("images drawn before they loaded")
	}

	images := asset.Static{
		"https://api.example.com/uploads/logo.png": "data:image/png;base64,AA==",
		"https://api.example.com/uploads/bg.png":   "data:image/png;base64,AQ==",
	}
	for _, kind := range Kinds() {
		tr := Render(kind, rec, images, origin)
		if len(tr.Find(RoleLogo)) != 1 {
			t.Errorf("%s: logos = %d, want 1", kind, len(tr.Find(RoleLogo)))
		}
		bg := tr.Find(RoleBackgroundImage)
		if len(bg) != 1 {
			t.Errorf("%s: backgrounds = %d, want 1", kind, len(bg))
			continue
		}
		if img := bg[0].(*visual.Image); img.Fit != visual.FitCover {
			t.Errorf("%s: background fit = %q", kind, img.Fit)
		}
	}
}

func TestFakeContentReplaced(t *testing.T) {
	rec := record(nil, &certificate.DynamicRecord{IssuerName: "Acme Academy", VerificationID: "deadbeef-0001"})

	tr := Render(certificate.LayoutCorporateBlue, rec, nil, origin)
	if got := tr.Text(RoleIssuer); got != "Acme Academy" {
		t.Errorf("corporate_blue issuer = %q", got)
	}

	tr = Render(certificate.LayoutTechDark, rec, nil, origin)
	if got := tr.Text(RoleVerificationID); got != "ID: deadbeef-0001" {
		t.Errorf("tech_dark id = %q", got)
	}

	tr = Render(certificate.LayoutAchievementStar, rec, nil, origin)
	if got := tr.Text(RoleReference); got != "#DEADBEEF" {
		t.Errorf("achievement_star reference = %q", got)
	}
}

func TestDeterministic(t *testing.T) {
	rec := record(&certificate.Template{FontFamily: "Lato"}, &certificate.DynamicRecord{
		RecipientName: "Jane Doe",
		ExtraFields:   certificate.Fields{{Key: "grade", Value: "A"}},
	})
	for _, kind := range Kinds() {
		a, err := json.Marshal(Render(kind, rec, nil, origin))
		if err != nil {
			t.Fatalf("%s: marshal: %v", kind, err)
		}
		b, _ := json.Marshal(Render(kind, rec, nil, origin))
		if string(a) != string(b) {
			t.Errorf("%s: render is not deterministic", kind)
		}
	}
}

func TestLongRecipientWraps(t *testing.T) {
	name := strings.Repeat("Bartholomew ", 12)
	rec := record(nil, &certificate.DynamicRecord{RecipientName: name})
	tr := Render(certificate.LayoutClassic, rec, nil, origin)
	txt := tr.Find(RoleRecipient)[0].(*visual.Text)
	if len(txt.Lines) < 2 {
		t.Errorf("lines = %d, want the name wrapped", len(txt.Lines))
	}
}

func TestLayoutRunsJoinsPunctuation(t *testing.T) {
	st := visual.TextStyle{Size: 12, Family: "Helvetica"}
	nodes, h := layoutRuns(0, 0, 1000, visual.AlignLeft, []run{
		{RoleBody, "has completed", st},
		{RoleCourse, "Go", st},
		{RoleLabel, ".", st},
	})
	if len(nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(nodes))
	}
	if h != st.LineHeight() {
		t.Errorf("height = %v, want one line", h)
	}
	course := nodes[1].(*visual.Text)
	dot := nodes[2].(*visual.Text)
	if want := course.X + st.Measure("Go"); math.Abs(dot.X-want) > 1e-6 {
		t.Errorf("dot x = %v, want %v", dot.X, want)
	}
}

func TestLayoutRunsWraps(t *testing.T) {
	st := visual.TextStyle{Size: 12, Family: "Helvetica"}
	nodes, h := layoutRuns(0, 0, 60, visual.AlignLeft, []run{
		{RoleBody, "one two three four five six", st},
	})
	if h <= st.LineHeight() {
		t.Errorf("height = %v, want several lines", h)
	}
	for _, n := range nodes {
		if txt := n.(*visual.Text); txt.MaxLineWidth() > 60+0.01 {
			t.Errorf("fragment %q overflows", txt.Lines[0])
		}
	}
}

func TestDotGrid(t *testing.T) {
	d := dotGrid(40, 20, 20, 1.5)
	if got := strings.Count(d, "M"); got != 2 {
		t.Errorf("dots = %d, want 2", got)
	}
	if !strings.HasPrefix(d, "M10 10h1.5v1.5h-1.5z") {
		t.Errorf("path = %q", d)
	}
}

func TestRightAlignedText(t *testing.T) {
	rec := record(nil, &certificate.DynamicRecord{VerificationID: "abc123", Amount: "$120.00"})

	tests := []struct {
		kind certificate.LayoutKind
		role string
	}{
		{certificate.LayoutReceipt, RoleTotal},
		{certificate.LayoutReceipt, RoleReference},
		{certificate.LayoutReceipt, RoleAmount},
		{certificate.LayoutModern, RoleVerificationID},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.role, func(t *testing.T) {
			nodes := Render(tt.kind, rec, nil, origin).Find(tt.role)
			if len(nodes) == 0 {
				t.Fatalf("no %s text", tt.role)
			}
			for _, n := range nodes {
				if txt := n.(*visual.Text); txt.Style.Align != visual.AlignRight {
					t.Errorf("%q align = %q, want right", strings.Join(txt.Lines, " "), txt.Style.Align)
				}
			}
		})
	}
}

// textBounds returns the page-space top of the first and the bottom of the
// last text with role, accumulating group offsets.
func textBounds(tr *visual.Tree, role string) (top, bottom float64, ok bool) {
	top = math.Inf(1)
	var visit func(n visual.Node, dx, dy float64)
	visit = func(n visual.Node, dx, dy float64) {
		switch v := n.(type) {
		case *visual.Group:
			for _, c := range v.Children {
				visit(c, dx+v.X, dy+v.Y)
			}
		case *visual.Text:
			if v.Role != role {
				return
			}
			ok = true
			top = math.Min(top, dy+v.Y)
			bottom = math.Max(bottom, dy+v.Bottom())
		}
	}
	visit(tr.Root, 0, 0)
	return top, bottom, ok
}

func TestClassicFieldsClearSignature(t *testing.T) {
	var fields certificate.Fields
	for i := 0; i < 16; i++ {
		fields = append(fields, certificate.Field{Key: "field " + string(rune('a'+i)), Value: "value"})
	}

	for _, n := range []int{0, 2, 16} {
		rec := record(nil, &certificate.DynamicRecord{ExtraFields: fields[:n]})
		tr := Render(certificate.LayoutClassic, rec, nil, origin)

		_, colBottom, _ := textBounds(tr, RoleDate)
		if n > 0 {
			_, colBottom, _ = textBounds(tr, RoleFieldValue)
		}
		sigTop, _, ok := textBounds(tr, RoleSignature)
		if !ok {
			t.Fatalf("%d fields: no signature", n)
		}
		if colBottom >= sigTop {
			t.Errorf("%d fields: column ends at %v, signature starts at %v", n, colBottom, sigTop)
		}

		code := tr.Find(badge.Role)[0].(*visual.Code)
		if code.Y < colBottom {
			t.Errorf("%d fields: badge at %v overlaps column ending at %v", n, code.Y, colBottom)
		}
	}
}
