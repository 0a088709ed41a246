package generator

import (
	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

func input(children ...*kdl.Node) []*kdl.Node {
	return []*kdl.Node{block("input", children...)}
}

func keyboard(s *models.Settings) []*kdl.Node {
	k := s.Keyboard
	return input(block("keyboard",
		block("xkb",
			str("layout", k.XkbLayout),
			str("variant", k.XkbVariant),
			str("options", k.XkbOptions),
			str("model", k.XkbModel),
			str("rules", k.XkbRules),
			str("file", k.XkbFile),
		),
		integer("repeat-delay", k.RepeatDelay),
		integer("repeat-rate", k.RepeatRate),
		enum("track-layout", k.TrackLayout),
		flag("numlock", k.Numlock),
	))
}

func pointer(p models.PointerDevice) []*kdl.Node {
	return []*kdl.Node{
		flag("off", p.Off),
		flag("natural-scroll", p.NaturalScroll),
		flag("left-handed", p.LeftHanded),
		flag("middle-emulation", p.MiddleEmulation),
		num("accel-speed", p.AccelSpeed),
		enum("accel-profile", p.AccelProfile),
		enum("scroll-method", p.ScrollMethod),
	}
}

func mouse(s *models.Settings) []*kdl.Node {
	m := s.Mouse
	return input(block("mouse", append(pointer(m.PointerDevice),
		num("scroll-factor", m.ScrollFactor),
	)...))
}

func touchpad(s *models.Settings) []*kdl.Node {
	t := s.Touchpad
	return input(block("touchpad", append(pointer(t.PointerDevice),
		flag("tap", t.Tap),
		flag("dwt", t.Dwt),
		flag("dwtp", t.Dwtp),
		flag("drag-lock", t.DragLock),
		flag("disabled-on-external-mouse", t.DisabledOnExternalMouse),
		enum("click-method", t.ClickMethod),
		enum("tap-button-map", t.TapButtonMap),
		num("scroll-factor", t.ScrollFactor),
	)...))
}

func trackpoint(s *models.Settings) []*kdl.Node {
	return input(block("trackpoint", pointer(s.Trackpoint.PointerDevice)...))
}

func trackball(s *models.Settings) []*kdl.Node {
	return input(block("trackball", pointer(s.Trackball.PointerDevice)...))
}

func tablet(s *models.Settings) []*kdl.Node {
	t := s.Tablet
	return input(block("tablet",
		flag("off", t.Off),
		str("map-to-output", t.MapToOutput),
		flag("left-handed", t.LeftHanded),
	))
}

func touch(s *models.Settings) []*kdl.Node {
	t := s.Touch
	return input(block("touch",
		flag("off", t.Off),
		str("map-to-output", t.MapToOutput),
	))
}

// behavior spans two host nodes: focus and modifier settings live under
// input, column placement under layout.
func behavior(s *models.Settings) []*kdl.Node {
	b := s.Behavior
	var ffm *kdl.Node
	if b.FocusFollowsMouse {
		ffm = kdl.NewNode("focus-follows-mouse")
		if b.FocusFollowsMaxScroll != "" {
			ffm.With("max-scroll-amount", kdl.String(b.FocusFollowsMaxScroll))
		}
	}
	in := block("input",
		ffm,
		flag("warp-mouse-to-focus", b.WarpMouseToFocus),
		flag("workspace-auto-back-and-forth", b.WorkspaceAutoBackAndForth),
		flag("disable-power-key-handling", b.DisablePowerKeyHandling),
		enum("mod-key", b.ModKey),
		enum("mod-key-nested", b.ModKeyNested),
	)
	layout := block("layout",
		enum("center-focused-column", b.CenterFocusedColumn),
		flag("always-center-single-column", b.AlwaysCenterSingleColumn),
		flag("empty-workspace-above-first", b.EmptyWorkspaceAboveFirst),
		columnWidth("default-column-width", b.DefaultColumnWidth),
		widthList("preset-column-widths", b.PresetColumnWidths),
	)
	return []*kdl.Node{in, layout}
}
