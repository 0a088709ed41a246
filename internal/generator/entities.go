package generator

import (
	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

func outputs(s *models.Settings) []*kdl.Node {
	var nodes []*kdl.Node
	for _, o := range s.Outputs {
		n := withID(kdl.NewNode("output", kdl.String(o.Name)), o.ID)
		n.Add(
			flag("off", o.Off),
			str("mode", o.Mode),
		)
		if o.Scale != 0 {
			n.Add(num("scale", o.Scale))
		}
		n.Add(enum("transform", o.Transform))
		if o.Position != nil {
			n.Add(kdl.NewNode("position").
				With("x", kdl.Int(int64(o.Position.X))).
				With("y", kdl.Int(int64(o.Position.Y))))
		}
		switch o.VRR {
		case models.VRROn:
			n.Add(kdl.NewNode("variable-refresh-rate"))
		case models.VRROnDemand:
			n.Add(kdl.NewNode("variable-refresh-rate").With("on-demand", kdl.Bool(true)))
		}
		n.Add(
			flag("focus-at-startup", o.FocusAtStartup),
			str("backdrop-color", o.BackdropColor),
		)
		nodes = append(nodes, n)
	}
	return nodes
}

func workspaces(s *models.Settings) []*kdl.Node {
	var nodes []*kdl.Node
	for _, w := range s.Workspaces {
		n := withID(kdl.NewNode("workspace", kdl.String(w.Name)), w.ID)
		if w.OpenOnOutput != "" {
			n.Add(str("open-on-output", w.OpenOnOutput))
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// keybindings emits one binds block. A binding whose action text does not
// parse as exactly one node is left out.
func keybindings(s *models.Settings) []*kdl.Node {
	binds := block("binds")
	for _, kb := range s.Keybindings {
		action, ok := parseAction(kb.Action)
		if !ok {
			continue
		}
		n := withID(kdl.NewNode(kb.Key), kb.ID)
		if !kb.Repeat {
			n.With("repeat", kdl.Bool(false))
		}
		if kb.CooldownMs > 0 {
			n.With("cooldown-ms", kdl.Int(int64(kb.CooldownMs)))
		}
		if kb.AllowWhenLocked {
			n.With("allow-when-locked", kdl.Bool(true))
		}
		if !kb.AllowInhibiting {
			n.With("allow-inhibiting", kdl.Bool(false))
		}
		switch {
		case kb.HideFromOverlay:
			n.With("hotkey-overlay-title", kdl.Null())
		case kb.HotkeyOverlayTitle != "":
			n.With("hotkey-overlay-title", kdl.String(kb.HotkeyOverlayTitle))
		}
		binds.Add(n.Add(action))
	}
	return []*kdl.Node{binds}
}

func parseAction(text string) (*kdl.Node, bool) {
	doc, err := kdl.Parse([]byte(text))
	if err != nil || len(doc.Nodes) != 1 {
		return nil, false
	}
	a := doc.Nodes[0]
	a.Hidden = nil
	return a, true
}

// ValidAction reports whether text can be written as a bind action
func ValidAction(text string) bool {
	_, ok := parseAction(text)
	return ok
}

func layerRules(s *models.Settings) []*kdl.Node {
	var nodes []*kdl.Node
	for _, r := range s.LayerRules {
		n := withID(block("layer-rule"), r.ID)
		for _, m := range r.Matches {
			n.Add(layerMatch("match", m))
		}
		for _, m := range r.Excludes {
			n.Add(layerMatch("exclude", m))
		}
		n.Add(
			optNum("opacity", r.Opacity),
			enum("block-out-from", r.BlockOutFrom),
		)
		if r.ShadowOn {
			n.Add(block("shadow", kdl.NewNode("on")))
		}
		n.Add(optNum("geometry-corner-radius", r.GeometryCornerRadius))
		n.Add(
			boolArg("place-within-backdrop", r.PlaceWithinBackdrop),
			boolArg("baba-is-float", r.BabaIsFloat),
		)
		nodes = append(nodes, n)
	}
	return nodes
}

func layerMatch(name string, m models.LayerMatch) *kdl.Node {
	n := kdl.NewNode(name)
	if m.Namespace != "" {
		n.With("namespace", kdl.String(m.Namespace))
	}
	if m.AtStartup != nil {
		n.With("at-startup", kdl.Bool(*m.AtStartup))
	}
	return n
}

func windowRules(s *models.Settings) []*kdl.Node {
	var nodes []*kdl.Node
	for _, r := range s.WindowRules {
		n := withID(block("window-rule"), r.ID)
		for _, m := range r.Matches {
			n.Add(windowMatch("match", m))
		}
		for _, m := range r.Excludes {
			n.Add(windowMatch("exclude", m))
		}
		if r.DefaultColumnWidth != nil {
			n.Add(columnWidth("default-column-width", *r.DefaultColumnWidth))
		}
		n.Add(
			str("open-on-output", r.OpenOnOutput),
			str("open-on-workspace", r.OpenOnWorkspace),
			optBool("open-maximized", r.OpenMaximized),
			optBool("open-fullscreen", r.OpenFullscreen),
			optBool("open-floating", r.OpenFloating),
			optBool("open-focused", r.OpenFocused),
			enum("block-out-from", r.BlockOutFrom),
			optNum("opacity", r.Opacity),
			optNum("geometry-corner-radius", r.GeometryCornerRadius),
			optBool("clip-to-geometry", r.ClipToGeometry),
			optBool("draw-border-with-background", r.DrawBorderWithBackground),
			posInt("min-width", r.MinWidth),
			posInt("max-width", r.MaxWidth),
			posInt("min-height", r.MinHeight),
			posInt("max-height", r.MaxHeight),
		)
		nodes = append(nodes, n)
	}
	return nodes
}

func windowMatch(name string, m models.WindowMatch) *kdl.Node {
	n := kdl.NewNode(name)
	if m.AppID != "" {
		n.With("app-id", kdl.String(m.AppID))
	}
	if m.Title != "" {
		n.With("title", kdl.String(m.Title))
	}
	for _, p := range []struct {
		key string
		v   *bool
	}{
		{"is-active", m.IsActive},
		{"is-focused", m.IsFocused},
		{"is-floating", m.IsFloating},
		{"at-startup", m.AtStartup},
	} {
		if p.v != nil {
			n.With(p.key, kdl.Bool(*p.v))
		}
	}
	return n
}
