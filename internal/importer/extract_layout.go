package importer

import (
	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

var (
	appearanceLayoutChildren = []string{"gaps", "focus-ring", "border", "background-color"}
	behaviorLayoutChildren   = []string{
		"center-focused-column", "always-center-single-column", "empty-workspace-above-first",
		"default-column-width", "preset-column-widths",
	}
	extrasLayoutChildren = []string{"shadow", "struts", "insert-hint", "preset-window-heights"}
)

func extractLayout(x *extractor, n *kdl.Node) {
	var known []string
	known = append(known, appearanceLayoutChildren...)
	known = append(known, behaviorLayoutChildren...)
	known = append(known, extrasLayoutChildren...)
	x.checkChildren(n, known...)

	x.touchIf(n, models.CategoryAppearance, appearanceLayoutChildren...)
	x.touchIf(n, models.CategoryBehavior, behaviorLayoutChildren...)
	x.touchIf(n, models.CategoryLayoutExtras, extrasLayoutChildren...)

	a := &x.s.Appearance
	if g := n.Child("gaps"); g != nil {
		// `gaps 16` or the older `gaps inner=16 outer=8`
		if _, ok := g.Arg(0); ok {
			x.number(n, "gaps", &a.Gaps)
		} else if !x.number(g, "inner", &a.Gaps) {
			x.warnf(g, "gaps: missing value")
		}
	}
	if c := n.Child("focus-ring"); c != nil {
		extractDecoration(x, c, &a.FocusRing, true)
	}
	if c := n.Child("border"); c != nil {
		extractDecoration(x, c, &a.Border, false)
	}
	x.text(n, "background-color", &a.BackgroundColor)

	b := &x.s.Behavior
	enumValue(x, n, "center-focused-column", &b.CenterFocusedColumn, models.CenterColumns)
	b.AlwaysCenterSingleColumn = x.flag(n, "always-center-single-column")
	b.EmptyWorkspaceAboveFirst = x.flag(n, "empty-workspace-above-first")
	if c := n.Child("default-column-width"); c != nil {
		if w, ok := x.columnWidth(c); ok {
			b.DefaultColumnWidth = w
		}
	}
	if c := n.Child("preset-column-widths"); c != nil {
		b.PresetColumnWidths = x.widthList(c)
	}

	e := &x.s.LayoutExtras
	if c := n.Child("shadow"); c != nil {
		extractShadow(x, c, &e.Shadow)
	}
	if c := n.Child("struts"); c != nil {
		x.checkChildren(c, "left", "right", "top", "bottom")
		x.number(c, "left", &e.Struts.Left)
		x.number(c, "right", &e.Struts.Right)
		x.number(c, "top", &e.Struts.Top)
		x.number(c, "bottom", &e.Struts.Bottom)
	}
	if c := n.Child("insert-hint"); c != nil {
		x.checkChildren(c, "off", "color")
		e.InsertHint.Off = x.flag(c, "off")
		x.text(c, "color", &e.InsertHint.Color)
	}
	if c := n.Child("preset-window-heights"); c != nil {
		e.PresetWindowHeights = x.widthList(c)
	}
}

func extractDecoration(x *extractor, n *kdl.Node, d *models.Decoration, enabledByDefault bool) {
	x.checkChildren(n, "on", "off", "width", "active-color", "inactive-color", "urgent-color")
	d.Enabled = enabledByDefault
	if x.flag(n, "on") {
		d.Enabled = true
	}
	if x.flag(n, "off") {
		d.Enabled = false
	}
	x.number(n, "width", &d.Width)
	x.text(n, "active-color", &d.ActiveColor)
	x.text(n, "inactive-color", &d.InactiveColor)
	x.text(n, "urgent-color", &d.UrgentColor)
}

func extractShadow(x *extractor, n *kdl.Node, s *models.Shadow) {
	x.checkChildren(n, "on", "off", "softness", "spread", "offset", "draw-behind-window", "color", "inactive-color")
	s.On = x.flag(n, "on") && !x.flag(n, "off")
	x.number(n, "softness", &s.Softness)
	x.number(n, "spread", &s.Spread)
	if off := n.Child("offset"); off != nil {
		x.number(off, "x", &s.OffsetX)
		x.number(off, "y", &s.OffsetY)
	}
	s.DrawBehindWindow = x.flag(n, "draw-behind-window")
	x.text(n, "color", &s.Color)
	x.text(n, "inactive-color", &s.InactiveColor)
}
