package merge

import (
	"strings"
	"time"

	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/asset"
	"github.com/certifyme/certrender/pkg/core/tokens"
)

// =============================================================================
// Fallbacks
// =============================================================================

const (
	DefaultTitle          = "Certificate of Completion"
	DefaultBody           = "has successfully completed the course"
	DefaultRecipientName  = "Recipient Name"
	DefaultCourseTitle    = "Course Title"
	DefaultIssuerName     = "Issuer Name"
	DefaultAmount         = "PAID"
	DefaultRecipientEmail = "recipient@example.com"

	DefaultPrimaryColor   = "#0284C7"
	DefaultSecondaryColor = "#E2E8F0"
	DefaultBodyFontColor  = "#1E293B"
	DefaultFontFamily     = "Lato"
)

// DateLayout is the display form of the issue date.
const DateLayout = "January 2, 2006"

// dateInputs are the issue date forms accepted from records, tried in order.
var dateInputs = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	DateLayout,
	"01/02/2006",
}

// =============================================================================
// Record
// =============================================================================

// Style is the resolved style block.
type Style struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	BodyFontColor  string `json:"body_font_color"`
	FontFamily     string `json:"font_family"`
}

// Record is the canonical render record. It is derived on every render and
// never persisted.
type Record struct {
	TemplateID string                 `json:"template_id,omitempty"`
	Kind       certificate.LayoutKind `json:"layout_kind"`

	Title          string `json:"title"`
	Body           string `json:"body"`
	RecipientName  string `json:"recipient_name"`
	RecipientEmail string `json:"recipient_email"`
	CourseTitle    string `json:"course_title"`
	IssuerName     string `json:"issuer_name"`
	Signature      string `json:"signature"`
	Amount         string `json:"amount"`

	IssueDate          time.Time `json:"issue_date"`
	IssueDateFormatted string    `json:"issue_date_formatted"`

	// VerificationID is the raw id; empty until one is assigned.
	VerificationID string `json:"verification_id,omitempty"`

	// CustomFields are the extension fields in document order, without
	// the amount field.
	CustomFields certificate.Fields `json:"custom_fields"`

	Style          Style     `json:"style"`
	Logo           asset.Ref `json:"logo"`
	Background     asset.Ref `json:"background"`
	SignatureImage asset.Ref `json:"signature_image"`

	// Resolver resolved the asset references above. Free-form layouts use
	// it for their own image elements.
	Resolver asset.Resolver `json:"-"`

	// Tokens is the substitution map for free-form text. It is built from
	// the raw dynamic values so that unfilled tokens stay diagnosable.
	Tokens tokens.Fields `json:"tokens"`
}

// Reference returns the short receipt reference: "#" and the first eight
// characters of the verification id, upper-cased.
func (r Record) Reference() string {
	id := r.VerificationID
	if id == "" {
		return "#12345678"
	}
	if r := []rune(id); len(r) > 8 {
		id = string(r[:8])
	}
	return "#" + strings.ToUpper(id)
}

// DisplayID returns the verification id for display, or "PENDING".
func (r Record) DisplayID() string {
	if r.VerificationID == "" {
		return "PENDING"
	}
	return r.VerificationID
}

// =============================================================================
// Options
// =============================================================================

type config struct {
	today    time.Time
	resolver asset.Resolver
}

// Option configures a merge.
type Option func(*config)

// WithToday sets the reference date used when the record has no usable
// issue date.
func WithToday(t time.Time) Option {
	return func(c *config) { c.today = t }
}

// WithResolver sets the resolver for asset references.
func WithResolver(r asset.Resolver) Option {
	return func(c *config) { c.resolver = r }
}

// =============================================================================
// Merge
// =============================================================================

// Merge combines t and r into the canonical record. Both may be nil. Merge
// never fails: missing or malformed values fall back to defaults.
func Merge(t *certificate.Template, r *certificate.DynamicRecord, opts ...Option) Record {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if t == nil {
		t = &certificate.Template{}
	}
	if r == nil {
		r = &certificate.DynamicRecord{}
	}
	var custom certificate.CustomText
	if t.CustomText != nil {
		custom = *t.CustomText
	}

	kind, _ := t.Kind()
	rec := Record{
		TemplateID:     t.ID,
		Kind:           kind,
		Title:          first(r.CertificateTitle, custom.Title, DefaultTitle),
		Body:           first(r.CertificateBody, custom.Body, DefaultBody),
		RecipientName:  first(r.RecipientName, DefaultRecipientName),
		RecipientEmail: first(r.RecipientEmail, DefaultRecipientEmail),
		CourseTitle:    first(r.CourseTitle, DefaultCourseTitle),
		IssuerName:     first(r.IssuerName, DefaultIssuerName),
		VerificationID: strings.TrimSpace(r.VerificationID),
		Style: Style{
			PrimaryColor:   first(t.PrimaryColor, DefaultPrimaryColor),
			SecondaryColor: first(t.SecondaryColor, DefaultSecondaryColor),
			BodyFontColor:  first(t.BodyFontColor, DefaultBodyFontColor),
			FontFamily:     first(t.FontFamily, DefaultFontFamily),
		},
		Logo:           cfg.resolver.Resolve(t.LogoURL),
		Background:     cfg.resolver.Resolve(t.BackgroundURL),
		SignatureImage: cfg.resolver.Resolve(r.SignatureImage),
		Resolver:       cfg.resolver,
	}
	rec.Signature = first(r.Signature, rec.IssuerName)

	extraAmount, _ := r.ExtraFields.Get(tokens.Amount)
	rec.Amount = first(r.Amount.String(), extraAmount, DefaultAmount)

	issued, ok := ParseDate(r.IssueDate)
	if !ok {
		issued = cfg.today
	}
	rec.IssueDate = dateOnly(issued)
	rec.IssueDateFormatted = rec.IssueDate.Format(DateLayout)

	rec.CustomFields = customFields(r.ExtraFields)
	rec.Tokens = tokenFields(r, rec, ok)
	return rec
}

// ParseDate parses an issue date in any accepted form.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateInputs {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateOnly drops the time of day. RFC 3339 inputs keep the calendar date
// they were written with.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func customFields(extra certificate.Fields) certificate.Fields {
	out := make(certificate.Fields, 0, len(extra))
	for _, f := range extra {
		if f.Key == tokens.Amount {
			continue
		}
		out = append(out, f)
	}
	return out
}

// tokenFields builds the substitution map from raw values. Keys are
// lower-cased and extension fields go in first, so a canonical name always
// wins over an extension field spelled with different case, even when the
// canonical value is empty.
func tokenFields(r *certificate.DynamicRecord, rec Record, dated bool) tokens.Fields {
	fields := make(tokens.Fields, len(r.ExtraFields)+7)
	for _, f := range r.ExtraFields {
		key := strings.ToLower(f.Key)
		if prev, ok := fields[key]; ok && prev != "" && f.Value == "" {
			continue
		}
		fields[key] = f.Value
	}

	issueDate := ""
	if dated {
		issueDate = rec.IssueDateFormatted
	}
	amount := r.Amount.String()
	if amount == "" {
		amount, _ = r.ExtraFields.Get(tokens.Amount)
	}

	fields[tokens.RecipientName] = strings.TrimSpace(r.RecipientName)
	fields[tokens.CourseTitle] = strings.TrimSpace(r.CourseTitle)
	fields[tokens.IssueDate] = issueDate
	fields[tokens.IssuerName] = strings.TrimSpace(r.IssuerName)
	fields[tokens.VerificationID] = rec.VerificationID
	fields[tokens.Signature] = first(r.Signature, r.IssuerName)
	fields[tokens.Amount] = strings.TrimSpace(amount)
	return fields
}

// first returns the first value that is not blank, trimmed.
func first(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
