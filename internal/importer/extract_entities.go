package importer

import (
	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

func extractOutput(x *extractor, n *kdl.Node) {
	name, ok := firstString(n)
	if !ok {
		x.warnf(n, "output: missing connector name, skipped")
		return
	}
	x.checkChildren(n, "off", "mode", "scale", "transform", "position",
		"variable-refresh-rate", "focus-at-startup", "backdrop-color")

	o := models.Output{ID: x.entityID(n), Name: name}
	o.Off = x.flag(n, "off")
	x.text(n, "mode", &o.Mode)
	x.number(n, "scale", &o.Scale)
	enumValue(x, n, "transform", &o.Transform, models.Transforms)
	if p := n.Child("position"); p != nil {
		var pos models.Position
		okX := x.integer(p, "x", &pos.X)
		okY := x.integer(p, "y", &pos.Y)
		if okX && okY {
			o.Position = &pos
		} else {
			x.warnf(p, "position: expected x= and y=")
		}
	}
	if vrr := n.Child("variable-refresh-rate"); vrr != nil {
		o.VRR = models.VRROn
		if x.flag(vrr, "on-demand") {
			o.VRR = models.VRROnDemand
		}
	}
	o.FocusAtStartup = x.flag(n, "focus-at-startup")
	x.text(n, "backdrop-color", &o.BackdropColor)

	x.touch(models.CategoryOutputs)
	x.s.Outputs = append(x.s.Outputs, o)
}

func extractWorkspace(x *extractor, n *kdl.Node) {
	name, ok := firstString(n)
	if !ok {
		x.warnf(n, "workspace: missing name, skipped")
		return
	}
	x.checkChildren(n, "open-on-output")
	w := models.Workspace{ID: x.entityID(n), Name: name}
	x.text(n, "open-on-output", &w.OpenOnOutput)

	x.touch(models.CategoryWorkspaces)
	x.s.Workspaces = append(x.s.Workspaces, w)
}

func extractBinds(x *extractor, n *kdl.Node) {
	x.touch(models.CategoryKeybindings)
	for _, c := range n.Children {
		if len(c.Children) != 1 {
			x.warnf(c, "bind %s: expected exactly one action, skipped", c.Name)
			continue
		}
		kb := models.DefaultKeybinding(x.entityID(c), c.Name, kdl.FormatInline(c.Children[0]))
		if v, ok := c.Prop("repeat"); ok {
			kb.Repeat, _ = v.AsBool()
		}
		if v, ok := c.Prop("allow-when-locked"); ok {
			kb.AllowWhenLocked, _ = v.AsBool()
		}
		if v, ok := c.Prop("allow-inhibiting"); ok {
			kb.AllowInhibiting, _ = v.AsBool()
		}
		if v, ok := c.Prop("cooldown-ms"); ok {
			if ms, ok := v.AsInt(); ok {
				kb.CooldownMs = int(ms)
			}
		}
		if v, ok := c.Prop("hotkey-overlay-title"); ok {
			if v.IsNull() {
				kb.HideFromOverlay = true
			} else {
				kb.HotkeyOverlayTitle, _ = v.AsString()
			}
		}
		x.s.Keybindings = append(x.s.Keybindings, kb)
	}
}

func extractWindowRule(x *extractor, n *kdl.Node) {
	x.checkChildren(n, "match", "exclude", "default-column-width", "open-on-output", "open-on-workspace",
		"open-maximized", "open-fullscreen", "open-floating", "open-focused", "block-out-from",
		"opacity", "geometry-corner-radius", "clip-to-geometry", "draw-border-with-background",
		"min-width", "max-width", "min-height", "max-height")

	r := models.WindowRule{ID: x.entityID(n)}
	for _, c := range n.Children {
		switch c.Name {
		case "match":
			r.Matches = append(r.Matches, x.windowMatch(c))
		case "exclude":
			r.Excludes = append(r.Excludes, x.windowMatch(c))
		}
	}
	if c := n.Child("default-column-width"); c != nil {
		if w, ok := x.columnWidth(c); ok {
			r.DefaultColumnWidth = &w
		}
	}
	x.text(n, "open-on-output", &r.OpenOnOutput)
	x.text(n, "open-on-workspace", &r.OpenOnWorkspace)
	r.OpenMaximized = x.optBool(n, "open-maximized")
	r.OpenFullscreen = x.optBool(n, "open-fullscreen")
	r.OpenFloating = x.optBool(n, "open-floating")
	r.OpenFocused = x.optBool(n, "open-focused")
	enumValue(x, n, "block-out-from", &r.BlockOutFrom, models.BlockOutModes)
	r.Opacity = x.optNumber(n, "opacity")
	r.GeometryCornerRadius = x.optNumber(n, "geometry-corner-radius")
	r.ClipToGeometry = x.optBool(n, "clip-to-geometry")
	r.DrawBorderWithBackground = x.optBool(n, "draw-border-with-background")
	x.integer(n, "min-width", &r.MinWidth)
	x.integer(n, "max-width", &r.MaxWidth)
	x.integer(n, "min-height", &r.MinHeight)
	x.integer(n, "max-height", &r.MaxHeight)

	x.touch(models.CategoryWindowRules)
	x.s.WindowRules = append(x.s.WindowRules, r)
}

func (x *extractor) windowMatch(n *kdl.Node) models.WindowMatch {
	var m models.WindowMatch
	if v, ok := n.Prop("app-id"); ok {
		m.AppID, _ = v.AsString()
	}
	if v, ok := n.Prop("title"); ok {
		m.Title, _ = v.AsString()
	}
	m.IsActive = x.optBool(n, "is-active")
	m.IsFocused = x.optBool(n, "is-focused")
	m.IsFloating = x.optBool(n, "is-floating")
	m.AtStartup = x.optBool(n, "at-startup")
	return m
}

func extractLayerRule(x *extractor, n *kdl.Node) {
	x.checkChildren(n, "match", "exclude", "opacity", "block-out-from", "shadow",
		"geometry-corner-radius", "place-within-backdrop", "baba-is-float")

	r := models.LayerRule{ID: x.entityID(n)}
	for _, c := range n.Children {
		switch c.Name {
		case "match":
			r.Matches = append(r.Matches, x.layerMatch(c))
		case "exclude":
			r.Excludes = append(r.Excludes, x.layerMatch(c))
		}
	}
	r.Opacity = x.optNumber(n, "opacity")
	enumValue(x, n, "block-out-from", &r.BlockOutFrom, models.BlockOutModes)
	if sh := n.Child("shadow"); sh != nil {
		r.ShadowOn = x.flag(sh, "on")
	}
	r.GeometryCornerRadius = x.optNumber(n, "geometry-corner-radius")
	r.PlaceWithinBackdrop = x.flag(n, "place-within-backdrop")
	r.BabaIsFloat = x.flag(n, "baba-is-float")

	x.touch(models.CategoryLayerRules)
	x.s.LayerRules = append(x.s.LayerRules, r)
}

func (x *extractor) layerMatch(n *kdl.Node) models.LayerMatch {
	var m models.LayerMatch
	if v, ok := n.Prop("namespace"); ok {
		m.Namespace, _ = v.AsString()
	}
	m.AtStartup = x.optBool(n, "at-startup")
	return m
}

func firstString(n *kdl.Node) (string, bool) {
	v, ok := n.Arg(0)
	if !ok {
		return "", false
	}
	s, ok := v.AsString()
	return s, ok && s != ""
}
