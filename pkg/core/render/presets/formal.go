package presets

import (
	"math"

	"github.com/certifyme/certrender/pkg/core/render/visual"
)

// classic: double border in the primary color, a gradient band across the
// top and a centered column.
func classic(p *page) {
	primary, secondary := p.rec.Style.PrimaryColor, p.rec.Style.SecondaryColor
	p.add(
		frame(4, 4, p.w-8, p.h-8, 3, primary),
		frame(11, 11, p.w-22, p.h-22, 2, primary),
	)
	band := p.t.AddGradient(visual.Linear("classic-band", 90,
		visual.Stop{Offset: 0, Color: primary},
		visual.Stop{Offset: 1, Color: secondary},
	))
	p.add(
		fill(13, 13, p.w-26, 12, band),
		hline(13, p.w-13, 27, 4, primary),
	)

	accent := "#4B5EAA"
	f := newFlow(60, p.w-120)
	f.logo(p, 80, 80, visual.AlignCenter, 10)
	f.text(RoleTitle, p.rec.Title, p.style(24, primary, bold, upper, center, spaced(1.5)), 6)
	f.text(RoleLabel, "This is to certify that", p.style(12, accent, italic, center), 6)
	f.text(RoleRecipient, p.rec.RecipientName, p.recipientStyle(30, center, family(serif)), 6)
	f.text(RoleBody, p.rec.Body, p.style(12, accent, italic, center), 6)
	f.text(RoleCourse, p.rec.CourseTitle, p.style(16, secondary, bold, upper, center), 8)
	f.text(RoleDate, "Awarded on "+p.rec.IssueDateFormatted, p.style(12, p.rec.Style.BodyFontColor, center), 12)
	f.fields(p.rec.CustomFields, grid{
		cols:   2,
		colGap: 16,
		rowGap: 10,
		width:  (p.w - 120) * 0.8,
		align:  visual.AlignCenter,
		key:    p.style(9, gray500, bold, upper),
		value:  p.style(13, p.rec.Style.BodyFontColor, bold),
		rule:   secondary,
	}, 0)
	f.center(p, 34, 380)

	// A column taller than its band pushes the signature rules down.
	ruleY := math.Max(480, 34+f.height()+40)
	sig := p.style(13, p.rec.Style.BodyFontColor, bold)
	caption := p.style(10, gray500)
	bottom := &visual.Group{}
	sigBlock{role: RoleSignature, value: p.rec.Signature, label: "Signature", valueSt: sig, labelSt: caption, rule: gray400}.
		draw(bottom, 110, ruleY, 220)
	sigBlock{role: RoleIssuer, value: p.rec.IssuerName, label: "Issuer", valueSt: sig, labelSt: caption, rule: gray400}.
		draw(bottom, p.w-330, ruleY, 220)
	p.add(bottom)
	p.badge((p.w-48)/2, ruleY+20, 48)
}

// elegantSerif: a portrait page with a wide double border, centered serif
// type and an official seal. It carries no badge.
func elegantSerif(p *page) {
	primary, secondary := p.rec.Style.PrimaryColor, p.rec.Style.SecondaryColor
	p.add(&visual.Rect{Base: visual.Base{Role: RoleCard}, Width: p.w, Height: p.h, Fill: "#FAFAFA", Shadow: true})
	p.backgroundImage(0, 0, p.w, p.h)
	p.add(
		frame(2.5, 2.5, p.w-5, p.h-5, 5, primary),
		frame(13.5, 13.5, p.w-27, p.h-27, 5, primary),
	)

	f := newFlow(64, p.w-128)
	if img := f.logo(p, 160, 96, visual.AlignCenter, 32); img != nil {
		img.Grayscale = true
		img.Opacity = 0.8
	}
	f.text(RoleHeading, "Certificate of Achievement", p.style(28, gray800, italic, center, family(serif)), 8)
	f.rule(64, 1, gray300, visual.AlignCenter, 40)
	f.text(RoleLabel, "Presented to", p.style(18, gray500, italic, center, family(serif)), 14)
	name := f.text(RoleRecipient, p.rec.RecipientName, p.recipientStyle(34, center, family(serif)), 0)
	nameW := name.MaxLineWidth() + 64
	f.space(14)
	f.g.Add(hline(f.alignX(nameW, visual.AlignCenter), f.alignX(nameW, visual.AlignCenter)+nameW, f.y, 1, secondary))
	f.space(32)

	inner := newFlow(f.alignX(384, visual.AlignCenter), 384)
	inner.y = f.y
	inner.g = f.g
	inner.text(RoleLabel, "For the successful completion of the curriculum and requirements for:", p.style(14, gray600, center, family(serif)), 16)
	inner.text(RoleCourse, p.rec.CourseTitle, p.style(22, primary, bold, upper, center, spaced(3)), 40)
	inner.fields(p.rec.CustomFields, grid{
		cols:   1,
		rowGap: 10,
		align:  visual.AlignCenter,
		key:    p.style(9, gray400, upper, spaced(2), family(serif)),
		value:  p.style(18, gray800, italic, family(serif)),
		rule:   gray200,
	}, 0)
	f.y = inner.y
	f.place(p, 64)

	p.seal(100, p.h-110, 40, secondary, gray100, true, "OFFICIAL SEAL", p.style(7, gray700, bold))
	bottom := &visual.Group{}
	sigBlock{
		role:    RoleSignature,
		value:   p.rec.Signature,
		label:   "Director Signature",
		valueSt: p.style(18, gray900, italic, family(serif)),
		labelSt: p.style(10, gray700, italic, family(serif)),
		rule:    gray800,
	}.draw(bottom, p.w-60-160, p.h-100, 160)
	p.add(bottom)
}

// diplomaClassic: a ruled double frame, a centered diploma column and a
// signature row around an official seal.
func diplomaClassic(p *page) {
	p.add(
		frame(16, 16, p.w-32, p.h-32, 3, black),
		frame(24, 24, p.w-48, p.h-48, 1, black),
	)

	f := newFlow(60, p.w-120)
	f.logo(p, 160, 64, visual.AlignCenter, 10)
	f.text(RoleHeading, "Diploma", p.style(34, gray900, bold, upper, center, spaced(3), family(serif)), 2)
	f.text(RoleLabel, "Of Graduation", p.style(11, gray500, upper, center, spaced(6)), 18)
	f.text(RoleLabel, "This is to certify that", p.style(16, gray600, italic, center, family(serif)), 10)
	name := f.text(RoleRecipient, p.rec.RecipientName, p.recipientStyle(32, center, family(serif)), 0)
	nameW := name.MaxLineWidth() + 96
	f.space(6)
	f.g.Add(hline(f.alignX(nameW, visual.AlignCenter), f.alignX(nameW, visual.AlignCenter)+nameW, f.y, 1, black))
	f.space(16)
	f.text(RoleLabel, "Has completed the prescribed course of study in", p.style(16, gray800, center, family(serif)), 6)
	f.runs(visual.AlignCenter, 14,
		run{RoleBody, p.rec.Body, p.style(20, gray900, bold, family(serif))},
		run{RoleCourse, p.rec.CourseTitle, p.style(20, gray900, bold, family(serif))},
	)
	if len(p.rec.CustomFields) > 0 {
		x := f.alignX(512, visual.AlignCenter)
		f.g.Add(hline(x, x+512, f.y, 1, gray300))
		f.space(10)
	}
	f.fields(p.rec.CustomFields, grid{
		cols:   1,
		rowGap: 4,
		inline: true,
		width:  512,
		align:  visual.AlignCenter,
		key:    p.style(11, gray500, bold, upper, family(serif)),
		value:  p.style(11, gray900, bold, family(serif)),
	}, 0)
	f.center(p, 40, 420)

	caption := p.style(10, black, bold, upper, family(serif))
	sig := p.style(14, gray900, italic, family(serif))
	bottom := &visual.Group{}
	sigBlock{role: RoleSignature, value: p.rec.Signature, label: "Principal", valueSt: sig, labelSt: caption, rule: black}.
		draw(bottom, 130, p.h-84, 160)
	sigBlock{role: RoleIssuer, value: p.rec.IssuerName, label: "Secretary", valueSt: sig, labelSt: caption, rule: black}.
		draw(bottom, p.w-290, p.h-84, 160)
	p.add(bottom)

	gold := "#CA8A04"
	p.add(faded(&visual.Circle{Base: visual.Base{Role: RoleSeal}, CX: p.w / 2, CY: p.h - 92, R: 48, Fill: gold}, 0.2))
	p.seal(p.w/2, p.h-92, 44, gold, "", false, "OFFICIAL SEAL", p.style(10, "#854D0E", bold))
	p.badge(40, p.h-40-48, 48)
}

// awardGold: a heavy gold frame on a warm radial wash with a star.
func awardGold(p *page) {
	gold := "#C0A062"
	if !p.loaded(p.rec.Background) {
		wash := p.t.AddGradient(visual.Radial("award-wash",
			visual.Stop{Offset: 0, Color: "#FFFFF0"},
			visual.Stop{Offset: 1, Color: white},
		))
		p.add(fill(0, 0, p.w, p.h, wash))
	}
	p.add(
		frame(12, 12, p.w-24, p.h-24, 24, gold),
		faded(frame(32, 32, p.w-64, p.h-64, 1, gold), 0.5),
		faded(frame(40, 40, p.w-80, p.h-80, 1, gold), 0.3),
	)

	if img := p.logo(60, 56, 120, 40); img != nil {
		p.add(img)
	}

	f := newFlow(80, p.w-160)
	f.g.Add(star(f.alignX(48, visual.AlignCenter), 0, 48, gold))
	f.space(56)
	f.text(RoleHeading, "Achievement Award", p.style(30, gold, upper, center, spaced(4), family(serif)), 2)
	f.text(RoleLabel, "Highest Honor", p.style(9, gray400, upper, center, spaced(6)), 14)
	f.text(RoleLabel, "This certifies that", p.style(15, gray500, italic, center, family(serif)), 4)
	f.text(RoleRecipient, p.rec.RecipientName, p.recipientStyle(38, center), 10)

	col := newFlow(f.alignX(448, visual.AlignCenter), 448)
	col.g, col.y = f.g, f.y
	col.text(RoleLabel, "Has successfully met all the criteria required for the completion of", p.style(13, gray600, center, family(serif)), 4)
	col.text(RoleCourse, p.rec.CourseTitle, p.style(18, black, bold, center), 14)
	col.fields(p.rec.CustomFields, grid{
		cols:   1,
		rowGap: 4,
		inline: true,
		key:    p.style(12, gray500, italic, family(serif)),
		value:  p.style(12, gray800, bold),
		rule:   "#E6D9C0",
	}, 10)
	f.y = col.y
	f.center(p, 52, 400)

	rowX := (p.w - 512) / 2
	p.add(hline(rowX, rowX+512, p.h-110, 1, "#E6D9C0"))
	bottom := &visual.Group{}
	label := p.style(12, gray800, bold, center)
	date := visual.NewText(RoleLabel, "Date", rowX+32, p.h-98, 140, label)
	dateV := visual.NewText(RoleDate, p.rec.IssueDateFormatted, rowX+32, date.Bottom()+2, 140, p.style(11, gray500, center))
	sigL := visual.NewText(RoleLabel, "Signature", rowX+512-172, p.h-98, 140, label)
	sigV := visual.NewText(RoleSignature, p.rec.Signature, rowX+512-172, sigL.Bottom()+2, 140, p.style(13, gray500, italic, center))
	bottom.Add(date, dateV, sigL, sigV)
	p.add(bottom)
	p.badge(p.w-48-48, p.h-48-48, 44)
}
