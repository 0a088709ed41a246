package generator

import (
	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

func appearance(s *models.Settings) []*kdl.Node {
	a := s.Appearance
	return []*kdl.Node{block("layout",
		num("gaps", a.Gaps),
		decoration("focus-ring", a.FocusRing),
		decoration("border", a.Border),
		str("background-color", a.BackgroundColor),
	)}
}

// decoration always states on or off so the value does not depend on the
// compositor's default for that decoration.
func decoration(name string, d models.Decoration) *kdl.Node {
	state := "off"
	if d.Enabled {
		state = "on"
	}
	return block(name,
		kdl.NewNode(state),
		num("width", d.Width),
		str("active-color", d.ActiveColor),
		str("inactive-color", d.InactiveColor),
		str("urgent-color", d.UrgentColor),
	)
}

func layoutExtras(s *models.Settings) []*kdl.Node {
	e := s.LayoutExtras
	sh := e.Shadow
	layout := block("layout",
		block("shadow",
			flag("on", sh.On),
			num("softness", sh.Softness),
			num("spread", sh.Spread),
			kdl.NewNode("offset").
				With("x", kdl.Float(sh.OffsetX)).
				With("y", kdl.Float(sh.OffsetY)),
			boolArg("draw-behind-window", sh.DrawBehindWindow),
			str("color", sh.Color),
			str("inactive-color", sh.InactiveColor),
		),
		block("struts",
			num("left", e.Struts.Left),
			num("right", e.Struts.Right),
			num("top", e.Struts.Top),
			num("bottom", e.Struts.Bottom),
		),
		block("insert-hint",
			flag("off", e.InsertHint.Off),
			str("color", e.InsertHint.Color),
		),
	)
	if len(e.PresetWindowHeights) > 0 {
		layout.Add(widthList("preset-window-heights", e.PresetWindowHeights))
	}
	return []*kdl.Node{layout}
}

func overview(s *models.Settings) []*kdl.Node {
	o := s.Overview
	var ws *kdl.Node
	if o.WorkspaceShadowOff {
		ws = block("workspace-shadow", kdl.NewNode("off"))
	}
	return []*kdl.Node{block("overview",
		num("zoom", o.Zoom),
		str("backdrop-color", o.BackdropColor),
		ws,
	)}
}

func gestures(s *models.Settings) []*kdl.Node {
	g := s.Gestures
	var hc *kdl.Node
	if g.HotCornersOff {
		hc = block("hot-corners", kdl.NewNode("off"))
	}
	return []*kdl.Node{block("gestures",
		hc,
		edgeScroll("dnd-edge-view-scroll", "trigger-width", g.DndEdgeViewScroll),
		edgeScroll("dnd-edge-workspace-switch", "trigger-height", g.DndEdgeWorkspaceSwitch),
	)}
}

func edgeScroll(name, trigger string, e models.EdgeScroll) *kdl.Node {
	return block(name,
		num(trigger, e.TriggerSize),
		integer("delay-ms", e.DelayMs),
		num("max-speed", e.MaxSpeed),
	)
}

func cursor(s *models.Settings) []*kdl.Node {
	c := s.Cursor
	return []*kdl.Node{block("cursor",
		str("xcursor-theme", c.Theme),
		integer("xcursor-size", c.Size),
		flag("hide-when-typing", c.HideWhenTyping),
		posInt("hide-after-inactive-ms", c.HideAfterInactiveMs),
	)}
}

func animations(s *models.Settings) []*kdl.Node {
	a := s.Animations
	n := block("animations",
		flag("off", a.Off),
		num("slowdown", a.Slowdown),
	)
	for _, ov := range a.Overrides {
		o := block(ov.Name, flag("off", ov.Off))
		switch {
		case ov.Spring != nil:
			o.Add(kdl.NewNode("spring").
				With("damping-ratio", kdl.Float(ov.Spring.DampingRatio)).
				With("stiffness", kdl.Int(int64(ov.Spring.Stiffness))).
				With("epsilon", kdl.Float(ov.Spring.Epsilon)))
		case ov.Easing != nil:
			o.Add(
				integer("duration-ms", ov.Easing.DurationMs),
				enum("curve", ov.Easing.Curve),
			)
		}
		o.Add(str("custom-shader", ov.CustomShader))
		n.Add(o)
	}
	return []*kdl.Node{n}
}

func recentWindows(s *models.Settings) []*kdl.Node {
	r := s.RecentWindows
	h := r.Highlight
	return []*kdl.Node{block("recent-windows",
		flag("off", r.Off),
		integer("debounce-ms", r.DebounceMs),
		integer("open-delay-ms", r.OpenDelayMs),
		block("highlight",
			str("active-color", h.ActiveColor),
			str("urgent-color", h.UrgentColor),
			num("padding", h.Padding),
			num("corner-radius", h.CornerRadius),
		),
		block("previews",
			integer("max-height", r.Previews.MaxHeight),
			num("max-scale", r.Previews.MaxScale),
		),
	)}
}
