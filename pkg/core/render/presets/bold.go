package presets

import (
	"strings"

	"github.com/certifyme/certrender/pkg/core/render/visual"
)

// techDark: a dotted terminal backdrop with monospaced type.
func techDark(p *page) {
	primary, secondary := p.rec.Style.PrimaryColor, p.rec.Style.SecondaryColor
	p.add(
		faded(&visual.Path{Base: visual.Base{Role: RoleDecoration}, D: dotGrid(p.w, p.h, 20, 1.5), Fill: primary}, 0.2),
		fill(0, 0, 8, p.h, primary),
	)

	st := func(size float64, color string, opts ...styleOpt) visual.TextStyle {
		return p.style(size, color, append(opts, family(mono))...)
	}

	head := newFlow(56, p.w-112)
	if img := head.logo(p, 48, 48, visual.AlignLeft, 0); img != nil {
		head.y -= 48
		head.x += 64
	}
	head.text(RoleLabel, "System Validation", st(11, gray400, bold, upper, spaced(3)), 0)
	head.place(p, 40)

	f := newFlow(56, p.w*0.62)
	f.text(RoleTitle, p.rec.Title, st(30, primary, bold, upper), 4)
	f.text(RoleVerificationID, "ID: "+p.rec.DisplayID(), st(11, gray500), 20)
	f.text(RoleLabel, "Is hereby granted to:", st(13, gray400), 8)

	name := visual.NewText(RoleRecipient, p.rec.RecipientName, f.x+16, f.y+8, 0, st(30, black, bold))
	boxW := name.MaxLineWidth() + 32
	boxH := name.Height() + 16
	f.g.Add(
		polygon(white,
			[2]float64{f.x + 10, f.y}, [2]float64{f.x + boxW + 10, f.y},
			[2]float64{f.x + boxW, f.y + boxH}, [2]float64{f.x, f.y + boxH}),
		name,
	)
	f.space(boxH + 18)

	bodyTop := f.y
	body := newFlow(f.x+16, f.w-16)
	body.g, body.y = f.g, f.y
	body.runs(visual.AlignLeft, 0,
		run{RoleBody, p.rec.Body, st(13, gray300)},
		run{RoleCourse, p.rec.CourseTitle, st(13, primary, bold)},
		run{RoleLabel, ". Skills verified algorithmically.", st(13, gray300)},
	)
	f.g.Add(vline(f.x+1, bodyTop, body.y, 2, gray700))
	f.y = body.y + 18
	f.fields(p.rec.CustomFields, grid{
		cols:   2,
		colGap: 16,
		rowGap: 8,
		prefix: ">> ",
		key:    st(9, gray500, upper),
		value:  st(13, white, bold),
	}, 0)
	f.place(p, 104)

	foot := &visual.Group{}
	y := p.h - 92
	foot.Add(
		&visual.Circle{Base: visual.Base{Role: RoleDecoration}, CX: 80, CY: y + 24, R: 24, Stroke: primary, StrokeWidth: 2},
		visual.NewText(RoleSeal, "AI", 56, y+16, 48, st(14, primary, bold, center)),
		visual.NewText(RoleLabel, "Verified", 116, y+8, 200, st(12, white, bold)),
		visual.NewText(RoleSignature, "Automated Sign", 116, y+26, 200, st(10, gray500)),
		visual.NewText(RoleLabel, "100%", p.w-348, y+4, 120, st(26, secondary, bold, alignRight)),
		visual.NewText(RoleLabel, "Score", p.w-348, y+36, 120, st(10, gray500, upper, alignRight)),
	)
	p.add(foot)
	p.badgePanel(p.w-48-72, 40, 72, 6, white, 4)
}

// dotGrid returns path data for a square dot every step units.
func dotGrid(w, h, step, dot float64) string {
	var b strings.Builder
	for y := step / 2; y < h; y += step {
		for x := step / 2; x < w; x += step {
			b.WriteString("M" + num(x) + " " + num(y) + "h" + num(dot) + "v" + num(dot) + "h-" + num(dot) + "z")
		}
	}
	return b.String()
}

// creativeArt: color blobs behind a tilted outlined card.
func creativeArt(p *page) {
	primary, secondary := p.rec.Style.PrimaryColor, p.rec.Style.SecondaryColor
	p.add(
		faded(&visual.Circle{Base: visual.Base{Role: RoleDecoration}, CX: 60, CY: 60, R: 128, Fill: primary}, 0.7),
		faded(&visual.Circle{Base: visual.Base{Role: RoleDecoration}, CX: p.w - 60, CY: p.h - 60, R: 128, Fill: secondary}, 0.7),
	)

	head := newFlow(60, p.w-120)
	head.text(RoleHeading, "Certificate", p.style(54, primary, italic, center, family(serif)), 0)
	head.place(p, 40)

	cardW, cardX := 560.0, (p.w-560)/2
	f := newFlow(32, cardW-64)
	f.text(RoleLabel, "Presented to", p.style(11, gray500, bold, upper, center, spaced(4)), 8)
	f.text(RoleRecipient, p.rec.RecipientName, p.recipientStyle(36, center), 8)
	f.rule(120, 2, gray900, visual.AlignCenter, 12)
	f.text(RoleLabel, "For artistic excellence in", p.style(13, gray600, center), 4)
	f.text(RoleCourse, p.rec.CourseTitle, p.style(20, gray900, bold, center), 14)
	f.fields(p.rec.CustomFields, grid{
		cols:   1,
		rowGap: 6,
		inline: true,
		width:  360,
		align:  visual.AlignCenter,
		key:    p.style(11, gray500, bold, upper),
		value:  p.style(12, gray900, bold),
		rule:   gray300,
	}, 12)
	f.text(RoleDate, p.rec.IssueDateFormatted, p.style(12, gray500, center, family(mono)), 0)

	cardH := f.height() + 56
	card := &visual.Group{X: cardX, Y: 130, Rotate: 1}
	card.Add(&visual.Rect{
		Base:        visual.Base{Role: RoleDecoration, Opacity: 0.5},
		Width:       cardW,
		Height:      cardH,
		Fill:        white,
		Stroke:      gray900,
		StrokeWidth: 4,
	})
	f.g.Y = 28
	card.Add(f.g)
	p.add(card)

	if img := p.logo(48, p.h-96, 120, 48); img != nil {
		img.Grayscale = true
		img.Opacity = 0.5
		p.add(img)
	}
	p.badge(p.w-40-64, p.h-40-64, 64)
}

// badgeCert: a dark trophy panel on the left and the award on the right.
func badgeCert(p *page) {
	primary, secondary := p.rec.Style.PrimaryColor, p.rec.Style.SecondaryColor
	panelW := p.w / 3
	slate := "#1E293B"
	p.add(
		fill(0, 0, panelW, p.h, slate),
		faded(fill(0, 0, panelW, 8, primary), 0.9),
		&visual.Circle{Base: visual.Base{Role: RoleDecoration}, CX: panelW / 2, CY: 150, R: 56, Fill: primary},
		star(panelW/2-28, 122, 56, white),
	)
	side := newFlow(24, panelW-48)
	side.text(RoleTitle, p.rec.Title, p.style(20, white, bold, upper, center, spaced(1)), 6)
	side.text(RoleLabel, "Top Performer", p.style(10, secondary, bold, upper, center, spaced(4)), 0)
	side.place(p, 230)
	p.badgePanel((panelW-64)/2, p.h-112, 64, 8, white, 6)

	f := newFlow(panelW+48, p.w-panelW-96)
	f.logo(p, 140, 44, visual.AlignLeft, 24)
	f.text(RoleLabel, "Awarded to", p.style(11, gray400, bold, upper, spaced(4)), 6)
	f.text(RoleRecipient, p.rec.RecipientName, p.recipientStyle(38), 18)
	bodyTop := f.y
	body := newFlow(f.x+16, f.w-16)
	body.g, body.y = f.g, f.y
	body.runs(visual.AlignLeft, 0,
		run{RoleBody, p.rec.Body, p.style(14, gray600)},
		run{RoleCourse, p.rec.CourseTitle, p.style(14, slate, bold)},
		run{RoleLabel, ". Recognized for outstanding dedication and skill.", p.style(14, gray600)},
	)
	f.g.Add(vline(f.x+2, bodyTop, body.y, 4, primary))
	f.y = body.y + 20
	f.fields(p.rec.CustomFields, grid{
		cols:     1,
		rowGap:   4,
		inline:   true,
		keyWidth: 128,
		key:      p.style(10, gray400, bold, upper),
		value:    p.style(13, slate, bold),
	}, 0)
	f.place(p, 48)

	footY := p.h - 112
	footX, footW := panelW+48, p.w-panelW-96
	p.add(&visual.Rect{Base: visual.Base{Role: RoleDecoration}, X: footX, Y: footY, Width: footW, Height: 64, Radius: 8, Fill: white, Stroke: gray200, StrokeWidth: 1})
	caption := p.style(9, gray400, bold, upper, spaced(2))
	foot := &visual.Group{}
	foot.Add(
		visual.NewText(RoleLabel, "Date Awarded", footX+20, footY+14, footW/2-20, caption),
		visual.NewText(RoleDate, p.rec.IssueDateFormatted, footX+20, footY+30, footW/2-20, p.style(14, slate, bold)),
		visual.NewText(RoleLabel, "Signature", footX+footW/2, footY+14, footW/2-20, p.style(9, gray400, bold, upper, alignRight, spaced(2))),
		visual.NewText(RoleSignature, p.rec.Signature, footX+footW/2, footY+30, footW/2-20, p.style(16, slate, italic, alignRight, family(serif))),
	)
	p.add(foot)
}

// achievementStar: a deep indigo page with a yellow rail and a stats row.
func achievementStar(p *page) {
	yellow, indigo := "#EAB308", "#312E81"
	primary, secondary := p.rec.Style.PrimaryColor, p.rec.Style.SecondaryColor
	p.add(
		faded(&visual.Circle{Base: visual.Base{Role: RoleDecoration}, CX: p.w - 80, CY: 40, R: 160, Fill: primary}, 0.3),
		faded(&visual.Circle{Base: visual.Base{Role: RoleDecoration}, CX: 160, CY: p.h, R: 140, Fill: secondary}, 0.2),
		fill(0, 0, 64, p.h, yellow),
	)
	rail := &visual.Group{X: 32, Y: p.h / 2, Rotate: -90}
	rail.Add(visual.NewText(RoleLabel, "Achievement", -200, -12, 400, p.style(18, indigo, bold, upper, center, spaced(8))))
	p.add(rail)

	f := newFlow(112, p.w-112-160)
	if p.hasLogo() {
		f.g.Add(&visual.Rect{Base: visual.Base{Role: RoleDecoration}, X: f.x, Y: f.y, Width: 64, Height: 64, Radius: 12, Fill: white})
		if img := p.logo(f.x+8, f.y+8, 48, 48); img != nil {
			f.g.Add(img)
		}
	} else {
		f.g.Add(star(f.x, f.y, 64, "#FACC15"))
	}
	f.space(80)
	f.text(RoleHeading, "Star Student Award", p.style(12, "#C7D2FE", bold, upper, spaced(4)), 4)
	f.text(RoleHeading, "Congratulations!", p.style(38, white, bold), 4)
	f.text(RoleRecipient, p.rec.RecipientName, p.style(32, "#FACC15", bold), 16)

	panelTop := f.y
	in := newFlow(f.x+20, f.w-40)
	in.g, in.y = f.g, f.y+16
	in.runs(visual.AlignLeft, 6,
		run{RoleBody, p.rec.Body, p.style(14, "#E0E7FF")},
		run{RoleCourse, p.rec.CourseTitle, p.style(14, white, bold)},
		run{RoleLabel, ".", p.style(14, "#E0E7FF")},
	)
	in.text(RoleLabel, "Your hard work has truly shone through!", p.style(14, "#E0E7FF", italic), 10)
	in.fields(p.rec.CustomFields, grid{
		cols:   2,
		colGap: 16,
		rowGap: 6,
		inline: true,
		suffix: ":",
		key:    p.style(11, "#A5B4FC", bold, upper),
		value:  p.style(12, white, bold),
	}, 0)
	panel := faded(&visual.Rect{Base: visual.Base{Role: RoleDecoration}, X: f.x, Y: panelTop, Width: f.w, Height: in.y - panelTop + 16, Radius: 12, Fill: white}, 0.1)
	f.g.Children = append([]visual.Node{panel}, f.g.Children...)
	f.y = in.y + 16
	f.place(p, 40)

	caption := p.style(9, "#A5B4FC", bold, upper, spaced(2))
	value := p.style(13, white, bold)
	stats := &visual.Group{}
	y := p.h - 76
	cols := []struct {
		role, label, value string
	}{
		{RoleIssuer, "Issued by", p.rec.IssuerName},
		{RoleReference, "ID", p.rec.Reference()},
		{RoleDate, "Date", p.rec.IssueDateFormatted},
	}
	colW := (p.w - 112 - 48) / 3
	for i, c := range cols {
		x := 112 + float64(i)*colW
		stats.Add(
			visual.NewText(RoleLabel, c.label, x, y, colW-16, caption),
			visual.NewText(c.role, c.value, x, y+16, colW-16, value),
		)
	}
	p.add(stats)
	p.badgePanel(p.w-40-72, 40, 72, 6, white, 8)
}
