package importer

import (
	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

// AnimationNames lists the named animations that accept overrides
var AnimationNames = []string{
	"workspace-switch", "window-open", "window-close", "horizontal-view-movement",
	"window-movement", "window-resize", "config-notification-open-close",
	"exit-confirmation-open-close", "screenshot-ui-open", "overview-open-close",
	"recent-windows-close",
}

func extractPreferNoCSD(x *extractor, n *kdl.Node) {
	x.touch(models.CategoryMisc)
	x.s.Misc.PreferNoCSD = true
	if v, ok := n.Arg(0); ok {
		if b, ok := v.AsBool(); ok {
			x.s.Misc.PreferNoCSD = b
		}
	}
}

func extractScreenshotPath(x *extractor, n *kdl.Node) {
	x.touch(models.CategoryMisc)
	m := &x.s.Misc
	v, ok := n.Arg(0)
	switch {
	case !ok:
		x.warnf(n, "screenshot-path: missing value")
	case v.IsNull():
		m.ScreenshotDisabled = true
		m.ScreenshotPath = ""
	case v.IsString():
		m.ScreenshotDisabled = false
		m.ScreenshotPath = v.Str
	default:
		x.warnf(n, "screenshot-path: expected a string or null, got %s", v.Kind)
	}
}

func extractHotkeyOverlay(x *extractor, n *kdl.Node) {
	x.touch(models.CategoryMisc)
	x.checkChildren(n, "skip-at-startup", "hide-not-bound")
	x.s.Misc.HotkeyOverlaySkipAtStartup = x.flag(n, "skip-at-startup")
	x.s.Misc.HotkeyOverlayHideNotBound = x.flag(n, "hide-not-bound")
}

func extractClipboard(x *extractor, n *kdl.Node) {
	x.touch(models.CategoryMisc)
	x.checkChildren(n, "disable-primary")
	x.s.Misc.ClipboardDisablePrimary = x.flag(n, "disable-primary")
}

func extractXwaylandSatellite(x *extractor, n *kdl.Node) {
	x.touch(models.CategoryMisc)
	x.checkChildren(n, "off", "path")
	x.s.Misc.XwaylandSatelliteOff = x.flag(n, "off")
	x.text(n, "path", &x.s.Misc.XwaylandSatellitePath)
}

func extractConfigNotification(x *extractor, n *kdl.Node) {
	x.touch(models.CategoryMisc)
	x.checkChildren(n, "disable-failed")
	x.s.Misc.ConfigNotificationDisableFailed = x.flag(n, "disable-failed")
}

func extractSpawn(x *extractor, n *kdl.Node) {
	args := x.stringArgs(n)
	if len(args) == 0 {
		x.warnf(n, "spawn-at-startup: missing command, skipped")
		return
	}
	x.touch(models.CategoryStartup)
	x.s.Startup = append(x.s.Startup, models.StartupCommand{Command: args})
}

func extractSpawnSh(x *extractor, n *kdl.Node) {
	cmd, ok := firstString(n)
	if !ok {
		x.warnf(n, "spawn-sh-at-startup: missing command, skipped")
		return
	}
	x.touch(models.CategoryStartup)
	x.s.Startup = append(x.s.Startup, models.StartupCommand{Command: []string{cmd}, Shell: true})
}

func extractEnvironment(x *extractor, n *kdl.Node) {
	x.touch(models.CategoryEnvironment)
	for _, c := range n.Children {
		v, ok := c.Arg(0)
		switch {
		case !ok:
			x.warnf(c, "environment %s: missing value, skipped", c.Name)
		case v.IsNull():
			x.s.Environment = append(x.s.Environment, models.EnvVar{Name: c.Name, Unset: true})
		default:
			val := v.Str
			if !v.IsString() {
				val = v.Text()
			}
			x.s.Environment = append(x.s.Environment, models.EnvVar{Name: c.Name, Value: val})
		}
	}
}

func extractCursor(x *extractor, n *kdl.Node) {
	x.touch(models.CategoryCursor)
	x.checkChildren(n, "xcursor-theme", "xcursor-size", "hide-when-typing", "hide-after-inactive-ms")
	c := &x.s.Cursor
	x.text(n, "xcursor-theme", &c.Theme)
	x.integer(n, "xcursor-size", &c.Size)
	c.HideWhenTyping = x.flag(n, "hide-when-typing")
	x.integer(n, "hide-after-inactive-ms", &c.HideAfterInactiveMs)
}

func extractAnimations(x *extractor, n *kdl.Node) {
	x.touch(models.CategoryAnimations)
	x.checkChildren(n, append([]string{"off", "slowdown"}, AnimationNames...)...)
	a := &x.s.Animations
	a.Off = x.flag(n, "off")
	x.number(n, "slowdown", &a.Slowdown)

	a.Overrides = nil
	for _, c := range n.Children {
		if c.Name == "off" || c.Name == "slowdown" || !isAnimationName(c.Name) {
			continue
		}
		x.checkChildren(c, "off", "spring", "duration-ms", "curve", "custom-shader")
		ov := models.AnimationOverride{Name: c.Name, Off: x.flag(c, "off")}
		if sp := c.Child("spring"); sp != nil {
			spring := models.Spring{
				DampingRatio: models.DampingRatioRange.Default,
				Stiffness:    models.StiffnessRange.Default,
				Epsilon:      models.EpsilonRange.Default,
			}
			x.number(sp, "damping-ratio", &spring.DampingRatio)
			x.integer(sp, "stiffness", &spring.Stiffness)
			x.number(sp, "epsilon", &spring.Epsilon)
			ov.Spring = &spring
		}
		if c.HasChild("duration-ms") || c.HasChild("curve") {
			easing := models.Easing{DurationMs: models.DurationRange.Default}
			x.integer(c, "duration-ms", &easing.DurationMs)
			enumValue(x, c, "curve", &easing.Curve, models.Curves)
			if ov.Spring != nil {
				x.warnf(c, "%s: both spring and easing given, using spring", c.Name)
			} else {
				ov.Easing = &easing
			}
		}
		x.text(c, "custom-shader", &ov.CustomShader)
		a.Overrides = append(a.Overrides, ov)
	}
}

func isAnimationName(name string) bool {
	for _, n := range AnimationNames {
		if n == name {
			return true
		}
	}
	return false
}

func extractOverview(x *extractor, n *kdl.Node) {
	x.touch(models.CategoryOverview)
	x.checkChildren(n, "zoom", "backdrop-color", "workspace-shadow")
	o := &x.s.Overview
	x.number(n, "zoom", &o.Zoom)
	x.text(n, "backdrop-color", &o.BackdropColor)
	o.WorkspaceShadowOff = false
	if ws := n.Child("workspace-shadow"); ws != nil {
		o.WorkspaceShadowOff = x.flag(ws, "off")
	}
}

func extractGestures(x *extractor, n *kdl.Node) {
	x.touch(models.CategoryGestures)
	x.checkChildren(n, "hot-corners", "dnd-edge-view-scroll", "dnd-edge-workspace-switch")
	g := &x.s.Gestures
	g.HotCornersOff = false
	if hc := n.Child("hot-corners"); hc != nil {
		g.HotCornersOff = x.flag(hc, "off")
	}
	if c := n.Child("dnd-edge-view-scroll"); c != nil {
		extractEdgeScroll(x, c, "trigger-width", &g.DndEdgeViewScroll)
	}
	if c := n.Child("dnd-edge-workspace-switch"); c != nil {
		extractEdgeScroll(x, c, "trigger-height", &g.DndEdgeWorkspaceSwitch)
	}
}

func extractEdgeScroll(x *extractor, n *kdl.Node, trigger string, e *models.EdgeScroll) {
	x.checkChildren(n, trigger, "delay-ms", "max-speed")
	x.number(n, trigger, &e.TriggerSize)
	x.integer(n, "delay-ms", &e.DelayMs)
	x.number(n, "max-speed", &e.MaxSpeed)
}

// debugFlags maps debug flag names to their fields
var debugFlags = []struct {
	name  string
	field func(*models.Debug) *bool
}{
	{"enable-overlay-planes", func(d *models.Debug) *bool { return &d.EnableOverlayPlanes }},
	{"disable-cursor-plane", func(d *models.Debug) *bool { return &d.DisableCursorPlane }},
	{"disable-direct-scanout", func(d *models.Debug) *bool { return &d.DisableDirectScanout }},
	{"restrict-primary-scanout-to-matching-format", func(d *models.Debug) *bool { return &d.RestrictPrimaryScanoutToMatchingFormat }},
	{"wait-for-frame-completion-before-queueing", func(d *models.Debug) *bool { return &d.WaitForFrameCompletionBeforeQueueing }},
	{"emulate-zero-presentation-time", func(d *models.Debug) *bool { return &d.EmulateZeroPresentationTime }},
	{"disable-resize-throttling", func(d *models.Debug) *bool { return &d.DisableResizeThrottling }},
	{"disable-transactions", func(d *models.Debug) *bool { return &d.DisableTransactions }},
	{"keep-laptop-panel-on-when-lid-is-closed", func(d *models.Debug) *bool { return &d.KeepLaptopPanelOnWhenLidIsClosed }},
	{"disable-monitor-names", func(d *models.Debug) *bool { return &d.DisableMonitorNames }},
	{"strict-new-window-focus-policy", func(d *models.Debug) *bool { return &d.StrictNewWindowFocusPolicy }},
	{"honor-xdg-activation-with-invalid-serial", func(d *models.Debug) *bool { return &d.HonorXdgActivationWithInvalidSerial }},
}

// DebugFlagNames returns the debug flag names in emission order
func DebugFlagNames() []string {
	out := make([]string, len(debugFlags))
	for i, f := range debugFlags {
		out[i] = f.name
	}
	return out
}

// DebugFlag returns a pointer to the named debug flag, or nil
func DebugFlag(d *models.Debug, name string) *bool {
	for _, f := range debugFlags {
		if f.name == name {
			return f.field(d)
		}
	}
	return nil
}

func extractDebug(x *extractor, n *kdl.Node) {
	x.touch(models.CategoryDebug)
	x.checkChildren(n, append([]string{"preview-render", "render-drm-device"}, DebugFlagNames()...)...)
	d := &x.s.Debug
	enumValue(x, n, "preview-render", &d.PreviewRender, models.BlockOutModes)
	x.text(n, "render-drm-device", &d.RenderDrmDevice)
	for _, f := range debugFlags {
		*f.field(d) = x.flag(n, f.name)
	}
}

func extractSwitchEvents(x *extractor, n *kdl.Node) {
	x.touch(models.CategorySwitchEvents)
	x.checkChildren(n, "lid-open", "lid-close", "tablet-mode-on", "tablet-mode-off")
	e := &x.s.SwitchEvents
	e.LidOpen = x.switchAction(n, "lid-open")
	e.LidClose = x.switchAction(n, "lid-close")
	e.TabletModeOn = x.switchAction(n, "tablet-mode-on")
	e.TabletModeOff = x.switchAction(n, "tablet-mode-off")
}

func (x *extractor) switchAction(n *kdl.Node, name string) []string {
	c := n.Child(name)
	if c == nil {
		return nil
	}
	spawn := c.Child("spawn")
	if spawn == nil {
		x.warnf(c, "%s: only spawn actions are supported", name)
		return nil
	}
	return x.stringArgs(spawn)
}

func extractRecentWindows(x *extractor, n *kdl.Node) {
	x.touch(models.CategoryRecentWindows)
	x.checkChildren(n, "off", "debounce-ms", "open-delay-ms", "highlight", "previews")
	r := &x.s.RecentWindows
	r.Off = x.flag(n, "off")
	x.integer(n, "debounce-ms", &r.DebounceMs)
	x.integer(n, "open-delay-ms", &r.OpenDelayMs)
	if h := n.Child("highlight"); h != nil {
		x.checkChildren(h, "active-color", "urgent-color", "padding", "corner-radius")
		x.text(h, "active-color", &r.Highlight.ActiveColor)
		x.text(h, "urgent-color", &r.Highlight.UrgentColor)
		x.number(h, "padding", &r.Highlight.Padding)
		x.number(h, "corner-radius", &r.Highlight.CornerRadius)
	}
	if p := n.Child("previews"); p != nil {
		x.checkChildren(p, "max-height", "max-scale")
		x.integer(p, "max-height", &r.Previews.MaxHeight)
		x.number(p, "max-scale", &r.Previews.MaxScale)
	}
}
