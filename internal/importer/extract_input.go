package importer

import (
	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

var pointerChildren = []string{
	"off", "natural-scroll", "left-handed", "middle-emulation",
	"accel-speed", "accel-profile", "scroll-method",
}

var behaviorInputChildren = []string{
	"focus-follows-mouse", "warp-mouse-to-focus", "workspace-auto-back-and-forth",
	"disable-power-key-handling", "mod-key", "mod-key-nested",
}

func extractInput(x *extractor, n *kdl.Node) {
	x.checkChildren(n, append([]string{
		"keyboard", "mouse", "touchpad", "trackpoint", "trackball", "tablet", "touch",
	}, behaviorInputChildren...)...)

	if c := n.Child("keyboard"); c != nil {
		x.touch(models.CategoryKeyboard)
		extractKeyboard(x, c)
	}
	if c := n.Child("mouse"); c != nil {
		x.touch(models.CategoryMouse)
		x.checkChildren(c, append(pointerChildren, "scroll-factor")...)
		extractPointer(x, c, &x.s.Mouse.PointerDevice)
		x.number(c, "scroll-factor", &x.s.Mouse.ScrollFactor)
	}
	if c := n.Child("touchpad"); c != nil {
		x.touch(models.CategoryTouchpad)
		extractTouchpad(x, c)
	}
	if c := n.Child("trackpoint"); c != nil {
		x.touch(models.CategoryTrackpoint)
		x.checkChildren(c, pointerChildren...)
		extractPointer(x, c, &x.s.Trackpoint.PointerDevice)
	}
	if c := n.Child("trackball"); c != nil {
		x.touch(models.CategoryTrackball)
		x.checkChildren(c, pointerChildren...)
		extractPointer(x, c, &x.s.Trackball.PointerDevice)
	}
	if c := n.Child("tablet"); c != nil {
		x.touch(models.CategoryTablet)
		x.checkChildren(c, "off", "map-to-output", "left-handed")
		t := &x.s.Tablet
		t.Off = x.flag(c, "off")
		t.LeftHanded = x.flag(c, "left-handed")
		x.text(c, "map-to-output", &t.MapToOutput)
	}
	if c := n.Child("touch"); c != nil {
		x.touch(models.CategoryTouch)
		x.checkChildren(c, "off", "map-to-output")
		t := &x.s.Touch
		t.Off = x.flag(c, "off")
		x.text(c, "map-to-output", &t.MapToOutput)
	}

	x.touchIf(n, models.CategoryBehavior, behaviorInputChildren...)
	b := &x.s.Behavior
	b.FocusFollowsMouse = x.flag(n, "focus-follows-mouse")
	if ffm := n.Child("focus-follows-mouse"); ffm != nil {
		if v, ok := ffm.Prop("max-scroll-amount"); ok {
			b.FocusFollowsMaxScroll, _ = v.AsString()
		}
	}
	b.WarpMouseToFocus = x.flag(n, "warp-mouse-to-focus")
	b.WorkspaceAutoBackAndForth = x.flag(n, "workspace-auto-back-and-forth")
	b.DisablePowerKeyHandling = x.flag(n, "disable-power-key-handling")
	enumValue(x, n, "mod-key", &b.ModKey, models.ModKeys)
	enumValue(x, n, "mod-key-nested", &b.ModKeyNested, models.ModKeys)
}

func extractKeyboard(x *extractor, n *kdl.Node) {
	x.checkChildren(n, "xkb", "repeat-delay", "repeat-rate", "track-layout", "numlock")
	k := &x.s.Keyboard
	if xkb := n.Child("xkb"); xkb != nil {
		x.checkChildren(xkb, "layout", "variant", "options", "model", "rules", "file")
		x.text(xkb, "layout", &k.XkbLayout)
		x.text(xkb, "variant", &k.XkbVariant)
		x.text(xkb, "options", &k.XkbOptions)
		x.text(xkb, "model", &k.XkbModel)
		x.text(xkb, "rules", &k.XkbRules)
		x.text(xkb, "file", &k.XkbFile)
	}
	x.integer(n, "repeat-delay", &k.RepeatDelay)
	x.integer(n, "repeat-rate", &k.RepeatRate)
	enumValue(x, n, "track-layout", &k.TrackLayout, models.TrackLayouts)
	k.Numlock = x.flag(n, "numlock")
}

func extractPointer(x *extractor, n *kdl.Node, p *models.PointerDevice) {
	p.Off = x.flag(n, "off")
	p.NaturalScroll = x.flag(n, "natural-scroll")
	p.LeftHanded = x.flag(n, "left-handed")
	p.MiddleEmulation = x.flag(n, "middle-emulation")
	x.number(n, "accel-speed", &p.AccelSpeed)
	enumValue(x, n, "accel-profile", &p.AccelProfile, models.AccelProfiles)
	enumValue(x, n, "scroll-method", &p.ScrollMethod, models.ScrollMethods)
}

func extractTouchpad(x *extractor, n *kdl.Node) {
	x.checkChildren(n, append(pointerChildren,
		"tap", "dwt", "dwtp", "drag-lock", "disabled-on-external-mouse",
		"click-method", "tap-button-map", "scroll-factor")...)
	t := &x.s.Touchpad
	extractPointer(x, n, &t.PointerDevice)
	t.Tap = x.flag(n, "tap")
	t.Dwt = x.flag(n, "dwt")
	t.Dwtp = x.flag(n, "dwtp")
	t.DragLock = x.flag(n, "drag-lock")
	t.DisabledOnExternalMouse = x.flag(n, "disabled-on-external-mouse")
	enumValue(x, n, "click-method", &t.ClickMethod, models.ClickMethods)
	enumValue(x, n, "tap-button-map", &t.TapButtonMap, models.TapButtonMaps)
	x.number(n, "scroll-factor", &t.ScrollFactor)
}
