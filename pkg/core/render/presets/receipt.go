package presets

import (
	"github.com/certifyme/certrender/pkg/core/render/visual"
)

// receipt draws its own container: a white sheet with an inner bordered
// card holding a billing header, a line-item table and a total.
func receipt(p *page) {
	primary := p.rec.Style.PrimaryColor
	body := p.rec.Style.BodyFontColor
	p.add(&visual.Rect{Base: visual.Base{Role: RoleCard}, Width: p.w, Height: p.h, Radius: 8, Fill: white, Shadow: true})
	p.backgroundImage(0, 0, p.w, p.h)
	x0, y0 := 16.0, 16.0
	w := p.w - 32
	p.add(&visual.Rect{Base: visual.Base{Role: RoleDecoration}, X: x0, Y: y0, Width: w, Height: p.h - 32, Radius: 6, Stroke: gray200, StrokeWidth: 1})

	pad := 32.0
	left, rightX := x0+pad, x0+w-pad
	inner := rightX - left

	head := &visual.Group{}
	if img := p.logo(left, y0+24, 140, 44); img != nil {
		head.Add(img)
	} else {
		head.Add(visual.NewText(RoleIssuer, p.rec.IssuerName, left, y0+32, inner/2, p.style(20, body, bold)))
	}
	head.Add(
		visual.NewText(RoleIssuer, p.rec.IssuerName, rightX-260, y0+20, 260, p.style(14, gray900, bold, alignRight)),
		visual.NewText(RoleLabel, "Payment Receipt", rightX-260, y0+40, 260, p.style(11, gray500, alignRight)),
		visual.NewText(RoleDate, p.rec.IssueDateFormatted, rightX-260, y0+56, 260, p.style(11, gray500, alignRight)),
	)
	p.add(head)

	barY := y0 + 92
	p.add(&visual.Rect{Base: visual.Base{Role: RoleDecoration}, X: left, Y: barY, Width: inner, Height: 40, Radius: 4, Fill: primary})
	p.add(
		visual.NewText(RoleTitle, p.rec.Title, left+16, barY+11, inner*0.6, p.style(15, white, bold, upper, spaced(1))),
		visual.NewText(RoleReference, p.rec.Reference(), rightX-216, barY+13, 200, p.style(12, white, alignRight, family(mono))),
	)

	infoY := barY + 60
	caption := p.style(9, gray400, bold, upper, spaced(2))
	info := &visual.Group{}
	info.Add(
		visual.NewText(RoleLabel, "Bill To", left, infoY, 200, caption),
		visual.NewText(RoleRecipient, p.rec.RecipientName, left, infoY+16, inner/2, p.recipientStyle(16)),
		visual.NewText(RoleEmail, p.rec.RecipientEmail, left, infoY+38, inner/2, p.style(11, gray500)),
		visual.NewText(RoleLabel, "Status", rightX-120, infoY, 120, p.style(9, gray400, bold, upper, alignRight, spaced(2))),
		&visual.Rect{Base: visual.Base{Role: RoleDecoration}, X: rightX - 64, Y: infoY + 16, Width: 64, Height: 22, Radius: 11, Fill: "#DCFCE7"},
		visual.NewText(RoleLabel, "PAID", rightX-64, infoY+20, 64, p.style(10, "#15803D", bold, center)),
	)
	p.add(info)

	tableY := infoY + 72
	table := &visual.Group{}
	table.Add(
		fill(left, tableY, inner, 28, "#F9FAFB"),
		visual.NewText(RoleLabel, "Description", left+12, tableY+9, inner/2, caption),
		visual.NewText(RoleLabel, "Amount", rightX-212, tableY+9, 200, p.style(9, gray400, bold, upper, alignRight, spaced(2))),
	)
	y := tableY + 28
	row := func(key, keyRole, value, valueRole string, vs visual.TextStyle) {
		k := visual.NewText(keyRole, key, left+12, y+10, inner-240, p.style(12, gray800))
		v := visual.NewText(valueRole, value, rightX-212, y+10, 200, vs)
		table.Add(k, v)
		y = max(k.Bottom(), v.Bottom()) + 10
		table.Add(hline(left, rightX, y, 1, gray100))
	}
	row(p.rec.CourseTitle, RoleCourse, p.rec.Amount, RoleAmount, p.style(12, primary, bold, alignRight))
	for _, fld := range p.rec.CustomFields {
		row(fld.Key, RoleFieldKey, fld.Value, RoleFieldValue, p.style(12, gray700, alignRight))
	}
	y += 12
	table.Add(
		visual.NewText(RoleLabel, "Total", rightX-320, y, 100, p.style(13, gray900, bold, alignRight)),
		visual.NewText(RoleTotal, p.rec.Amount, rightX-212, y-2, 200, p.style(16, primary, bold, alignRight)),
	)
	p.add(table)

	footY := p.h - 16 - 88
	p.add(hline(left, rightX, footY, 1, gray200))
	foot := &visual.Group{}
	foot.Add(
		visual.NewText(RoleSignature, "Auth Signature: "+p.rec.Signature, left, footY+18, inner/2, p.style(11, gray600, italic)),
		visual.NewText(RoleLabel, "Thank you for your business.", left, footY+36, inner/2, p.style(10, gray400)),
	)
	p.add(foot)
	p.badgePanel(rightX-48-4, footY+14, 48, 4, gray100, 4)
}
