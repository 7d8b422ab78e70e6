package presets

import (
	"github.com/certifyme/certrender/pkg/core/render/visual"
)

// modern: a gradient side panel carrying the issuer and the badge, with the
// certificate text on the right.
func modern(p *page) {
	primary, secondary := p.rec.Style.PrimaryColor, p.rec.Style.SecondaryColor
	panelW := p.w * 0.35
	wash := p.t.AddGradient(visual.Linear("modern-panel", 135,
		visual.Stop{Offset: 0, Color: primary},
		visual.Stop{Offset: 1, Color: secondary},
	))
	p.add(
		fill(4, 4, panelW-4, p.h-8, wash),
		frame(2, 2, p.w-4, p.h-4, 4, primary),
	)

	side := newFlow(24, panelW-44)
	if p.hasLogo() {
		cx := side.alignX(96, visual.AlignCenter)
		side.g.Add(&visual.Circle{Base: visual.Base{Role: RoleDecoration}, CX: cx + 48, CY: 48, R: 48, Fill: white})
		if img := p.logo(cx+12, 12, 72, 72); img != nil {
			img.Round = true
			side.g.Add(img)
		}
		side.space(112)
	}
	side.text(RoleIssuer, p.rec.IssuerName, p.style(18, white, bold, upper, center, spaced(2)), 0)
	side.center(p, 40, 300)
	bx := (panelW - 64) / 2
	p.badgePanel(bx, p.h-120, 64, 8, white, 8)

	f := newFlow(panelW+40, p.w-panelW-80)
	f.text(RoleTitle, p.rec.Title, p.style(30, primary, upper, spaced(2)), 18)
	f.text(RoleRecipient, p.rec.RecipientName, p.recipientStyle(34), 10)
	f.text(RoleBody, p.rec.Body, p.style(14, gray600, italic), 10)
	f.text(RoleCourse, p.rec.CourseTitle, p.style(20, secondary, bold, upper), 10)
	f.text(RoleDate, "Awarded on "+p.rec.IssueDateFormatted, p.style(12, gray500), 16)
	f.fields(p.rec.CustomFields, grid{
		cols:   2,
		colGap: 16,
		rowGap: 8,
		inline: true,
		suffix: ":",
		key:    p.style(10, gray500, bold, upper),
		value:  p.style(12, p.rec.Style.BodyFontColor, bold),
	}, 0)
	f.place(p, 48)

	left, rightX := panelW+40, p.w-40
	ruleY := p.h - 92
	p.add(hline(left, rightX, ruleY, 2, primary))
	bottom := &visual.Group{}
	if img := p.image(p.rec.SignatureImage, left, ruleY+10, 140, 36, visual.FitContain); img != nil {
		img.Role = RoleSignature
		bottom.Add(img)
	} else {
		bottom.Add(visual.NewText(RoleSignature, p.rec.Signature, left, ruleY+14, 200, p.style(18, gray800, italic, family(serif))))
	}
	bottom.Add(visual.NewText(RoleLabel, "Authorized Signature", left, ruleY+52, 200, p.style(9, gray500, upper, spaced(1))))
	bottom.Add(visual.NewText(RoleVerificationID, p.rec.DisplayID(), rightX-220, ruleY+14, 220, p.style(12, gray800, alignRight, family(mono))))
	bottom.Add(visual.NewText(RoleLabel, "Verification ID", rightX-220, ruleY+52, 220, p.style(9, gray500, upper, alignRight, spaced(1))))
	p.add(bottom)
}

// modernLandscape: a tinted right third, a "pro certified" masthead and a
// verification strip at the bottom.
func modernLandscape(p *page) {
	primary, secondary := p.rec.Style.PrimaryColor, p.rec.Style.SecondaryColor
	wash := p.t.AddGradient(visual.Linear("landscape-wash", 225,
		visual.Stop{Offset: 0, Color: primary, Opacity: 0.13},
		visual.Stop{Offset: 1, Color: primary, Opacity: 0},
	))
	p.add(fill(p.w*2/3, 0, p.w/3, p.h, wash))

	top := &visual.Group{}
	if img := p.logo(48, 40, 160, 48); img != nil {
		top.Add(img)
	}
	top.Add(
		visual.NewText(RoleTitle, p.rec.Title, p.w-348, 40, 300, p.style(12, gray400, bold, upper, alignRight, spaced(3))),
		visual.NewText(RoleDate, "Date: "+p.rec.IssueDateFormatted, p.w-348, 60, 300, p.style(13, primary, bold, alignRight)),
	)
	p.add(top)

	f := newFlow(48, p.w*0.6)
	f.runs(visual.AlignLeft, 6,
		run{RoleHeading, "PRO", p.style(40, primary, bold)},
		run{RoleHeading, "CERTIFIED", p.style(40, gray800, bold)},
	)
	f.text(RoleLabel, "This document verifies that", p.style(16, gray500), 6)
	f.text(RoleRecipient, p.rec.RecipientName, p.recipientStyle(44), 10)
	f.rule(80, 4, secondary, visual.AlignLeft, 14)
	f.runs(visual.AlignLeft, 14,
		run{RoleBody, p.rec.Body, p.style(16, gray600)},
		run{RoleCourse, p.rec.CourseTitle, p.style(16, gray900, bold)},
	)
	f.fields(p.rec.CustomFields, grid{
		cols:   2,
		colGap: 24,
		rowGap: 8,
		key:    p.style(9, gray400, bold, upper, spaced(1)),
		value:  p.style(13, gray800, bold),
	}, 0)
	f.center(p, 110, 360)

	bottom := &visual.Group{}
	y := p.h - 96
	bottom.Add(
		visual.NewText(RoleVerificationID, "ID: "+p.rec.DisplayID(), 120, y+10, 260, p.style(11, gray500, family(mono))),
		visual.NewText(RoleLabel, "Verified Securely", 120, y+28, 260, p.style(10, primary, bold, upper, spaced(1))),
	)
	p.add(bottom)
	p.badge(48, y, 56)

	sig := &visual.Group{}
	sigBlock{
		role:    RoleSignature,
		value:   p.rec.Signature,
		label:   "Authorized Signature",
		valueSt: p.style(20, gray800, italic, family(serif)),
		labelSt: p.style(9, gray400, bold, upper, spaced(1)),
		rule:    gray300,
	}.draw(sig, p.w-48-200, p.h-60, 200)
	p.add(sig)
}

// minimalistBold: a solid primary rail with the certificate id, and heavy
// type set flush left.
func minimalistBold(p *page) {
	primary := p.rec.Style.PrimaryColor
	p.add(fill(0, 0, 96, p.h, primary))
	id := p.rec.VerificationID
	if id == "" {
		id = "000000"
	}
	rail := &visual.Group{X: 48, Y: p.h / 2, Rotate: -90}
	label := visual.NewText(RoleVerificationID, "Certificate ID: "+id, -200, -8, 400, p.style(11, white, bold, upper, center, spaced(3)))
	label.Opacity = 0.5
	rail.Add(label)
	p.add(rail)

	f := newFlow(136, p.w-136-64)
	f.logo(p, 160, 48, visual.AlignLeft, 20)
	f.text(RoleHeading, "Certificate", p.style(56, gray900, bold, upper), 0)
	f.text(RoleHeading, "Of Completion", p.style(22, primary, bold, upper, spaced(4)), 24)
	f.text(RoleLabel, "Proudly presented to", p.style(11, gray400, bold, upper, spaced(2)), 4)
	f.text(RoleRecipient, p.rec.RecipientName, p.recipientStyle(36), 14)
	f.runs(visual.AlignLeft, 16,
		run{RoleBody, p.rec.Body, p.style(15, gray600)},
		run{RoleCourse, p.rec.CourseTitle, p.style(15, primary, bold)},
		run{RoleLabel, "on", p.style(15, gray600)},
		run{RoleDate, p.rec.IssueDateFormatted, p.style(15, gray600)},
		run{RoleLabel, ".", p.style(15, gray600)},
	)
	f.fields(p.rec.CustomFields, grid{
		cols:     1,
		rowGap:   4,
		inline:   true,
		keyWidth: 128,
		width:    420,
		key:      p.style(10, gray400, bold, upper, spaced(1)),
		value:    p.style(13, gray900, bold),
	}, 0)
	f.place(p, 48)

	caption := p.style(9, gray400, bold, upper, spaced(2))
	bottom := &visual.Group{}
	sigBlock{role: RoleSignature, value: p.rec.Signature, label: "Signature", valueSt: p.style(16, gray900, bold), labelSt: caption, rule: gray900, align: visual.AlignLeft}.
		draw(bottom, 136, p.h-64, 180)
	sigBlock{role: RoleDate, value: p.rec.IssueDateFormatted, label: "Date", valueSt: p.style(14, gray900, bold), labelSt: caption, rule: gray900, align: visual.AlignLeft}.
		draw(bottom, 356, p.h-64, 180)
	p.add(bottom)
	p.badge(p.w-48-72, p.h-48-72, 72)
}

// corporateBlue: a slanted header band, a floating content panel and two
// signature lines.
func corporateBlue(p *page) {
	primary, secondary := p.rec.Style.PrimaryColor, p.rec.Style.SecondaryColor
	p.add(
		frame(20, 20, p.w-40, p.h-40, 1, gray200),
		polygon(primary, [2]float64{20, 20}, [2]float64{p.w - 20, 20}, [2]float64{p.w - 20, 168}, [2]float64{20, 205}),
		faded(polygon(secondary, [2]float64{p.w - 20, p.h - 220}, [2]float64{p.w - 20, p.h - 20}, [2]float64{p.w - 260, p.h - 20}), 0.1),
	)

	if p.hasLogo() {
		p.add(&visual.Rect{Base: visual.Base{Role: RoleDecoration}, X: 52, Y: 44, Width: 120, Height: 56, Radius: 4, Fill: white})
		p.add(p.logo(60, 48, 104, 48))
	} else {
		p.add(&visual.Circle{Base: visual.Base{Role: RoleDecoration}, CX: 76, CY: 72, R: 24, Fill: white})
	}

	panelW := 601.5
	panelX := (p.w - panelW) / 2
	f := newFlow(panelX+32, panelW-64)
	f.text(RoleHeading, "Certificate of Excellence", p.style(22, gray800, bold, upper, center, spaced(2)), 12)
	f.text(RoleRecipient, p.rec.RecipientName, p.recipientStyle(32, center), 8)
	f.rule(96, 3, primary, visual.AlignCenter, 12)
	f.text(RoleLabel, "This award certifies the successful completion of", p.style(13, gray500, center), 4)
	f.text(RoleCourse, p.rec.CourseTitle, p.style(18, primary, bold, center), 8)
	f.text(RoleDate, "Given on this day "+p.rec.IssueDateFormatted, p.style(11, gray400, center), 12)
	f.fields(p.rec.CustomFields, grid{
		cols:   2,
		colGap: 16,
		rowGap: 8,
		align:  visual.AlignCenter,
		key:    p.style(9, gray400, bold, upper),
		value:  p.style(12, gray800, bold),
	}, 0)
	panelH := f.height() + 48
	panelY := 120.0
	p.add(faded(&visual.Rect{Base: visual.Base{Role: RoleDecoration}, X: panelX, Y: panelY, Width: panelW, Height: panelH, Radius: 12, Fill: white, Shadow: true}, 0.9))
	f.place(p, panelY+24)

	caption := p.style(9, gray500, bold, upper, spaced(2))
	value := p.style(14, gray800, bold)
	bottom := &visual.Group{}
	sigBlock{role: RoleSignature, value: p.rec.Signature, label: "Instructor", valueSt: value, labelSt: caption, rule: gray400}.
		draw(bottom, 90, p.h-70, 180)
	sigBlock{role: RoleIssuer, value: p.rec.IssuerName, label: "Director", valueSt: value, labelSt: caption, rule: gray400}.
		draw(bottom, p.w-270, p.h-70, 180)
	p.add(bottom)
	p.badge((p.w-56)/2, p.h-40-56, 56)
}
