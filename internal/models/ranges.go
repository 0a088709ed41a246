package models

import (
	"fmt"
	"math"
	"strconv"
)

type FloatRange struct {
	Min, Max, Default float64
}

// Clamp bounds v to the range. NaN becomes the default.
func (r FloatRange) Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return r.Default
	case v < r.Min:
		return r.Min
	case v > r.Max:
		return r.Max
	}
	return v
}

type IntRange struct {
	Min, Max, Default int
}

func (r IntRange) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Documented ranges. Values outside them are corrected, never rejected.
var (
	GapsRange            = FloatRange{Min: 0, Max: 64, Default: 16}
	DecorationWidthRange = FloatRange{Min: 1, Max: 16, Default: 4}
	RepeatDelayRange     = IntRange{Min: 100, Max: 2000, Default: 600}
	RepeatRateRange      = IntRange{Min: 1, Max: 100, Default: 25}
	AccelSpeedRange      = FloatRange{Min: -1, Max: 1, Default: 0}
	ScrollFactorRange    = FloatRange{Min: 0.1, Max: 10, Default: 1}
	OutputScaleRange     = FloatRange{Min: 0.25, Max: 10, Default: 1}
	SlowdownRange        = FloatRange{Min: 0.1, Max: 10, Default: 1}
	CursorSizeRange      = IntRange{Min: 8, Max: 128, Default: 24}
	HideAfterRange       = IntRange{Min: 0, Max: 60000, Default: 0}
	OverviewZoomRange    = FloatRange{Min: 0.1, Max: 0.75, Default: 0.5}
	ProportionRange      = FloatRange{Min: 0.1, Max: 1, Default: 0.5}
	FixedSizeRange       = FloatRange{Min: 1, Max: 16384, Default: 800}
	ShadowSoftnessRange  = FloatRange{Min: 0, Max: 100, Default: 30}
	ShadowSpreadRange    = FloatRange{Min: 0, Max: 100, Default: 5}
	ShadowOffsetRange    = FloatRange{Min: -100, Max: 100, Default: 0}
	StrutRange           = FloatRange{Min: 0, Max: 500, Default: 0}
	OpacityRange         = FloatRange{Min: 0, Max: 1, Default: 1}
	CornerRadiusRange    = FloatRange{Min: 0, Max: 64, Default: 0}
	RecentDebounceRange  = IntRange{Min: 0, Max: 5000, Default: 750}
	RecentOpenDelayRange = IntRange{Min: 0, Max: 5000, Default: 150}
	HighlightPadRange    = FloatRange{Min: 0, Max: 100, Default: 30}
	PreviewHeightRange   = IntRange{Min: 1, Max: 10000, Default: 480}
	PreviewScaleRange    = FloatRange{Min: 0.1, Max: 1, Default: 0.5}
	CooldownRange        = IntRange{Min: 0, Max: 10000, Default: 0}
	DampingRatioRange    = FloatRange{Min: 0.1, Max: 10, Default: 1}
	StiffnessRange       = IntRange{Min: 1, Max: 100000, Default: 1000}
	EpsilonRange         = FloatRange{Min: 0.00001, Max: 0.1, Default: 0.0001}
	DurationRange        = IntRange{Min: 0, Max: 10000, Default: 250}
	EdgeTriggerRange     = FloatRange{Min: 0, Max: 500, Default: 30}
	EdgeDelayRange       = IntRange{Min: 0, Max: 5000, Default: 100}
	EdgeSpeedRange       = FloatRange{Min: 0, Max: 10000, Default: 1500}
	WindowSizeRange      = IntRange{Min: 0, Max: 65535, Default: 0}
)

// Correction records one value changed by Clamp
type Correction struct {
	Field string
	From  string
	To    string
}

func (c Correction) String() string {
	return fmt.Sprintf("%s: %s out of range, using %s", c.Field, c.From, c.To)
}

type clamper struct {
	out []Correction
}

func (c *clamper) floatField(field string, v *float64, r FloatRange) {
	got := r.Clamp(*v)
	if got != *v || math.IsNaN(*v) {
		c.out = append(c.out, Correction{
			Field: field,
			From:  strconv.FormatFloat(*v, 'f', -1, 64),
			To:    strconv.FormatFloat(got, 'f', -1, 64),
		})
		*v = got
	}
}

func (c *clamper) optFloat(field string, v *float64, r FloatRange) {
	if v != nil {
		c.floatField(field, v, r)
	}
}

func (c *clamper) intField(field string, v *int, r IntRange) {
	got := r.Clamp(*v)
	if got != *v {
		c.out = append(c.out, Correction{Field: field, From: strconv.Itoa(*v), To: strconv.Itoa(got)})
		*v = got
	}
}

func enumField[E ~string](c *clamper, field string, v *E, allowed []E) {
	if !ValidEnum(*v, allowed) {
		c.out = append(c.out, Correction{Field: field, From: strconv.Quote(string(*v)), To: "unset"})
		*v = ""
	}
}

func (c *clamper) required(field string, v *string, def string) {
	if *v == "" {
		c.out = append(c.out, Correction{Field: field, From: `""`, To: strconv.Quote(def)})
		*v = def
	}
}

func (c *clamper) width(field string, w *ColumnWidth) {
	if w.Fixed {
		c.floatField(field, &w.Value, FixedSizeRange)
		return
	}
	c.floatField(field, &w.Value, ProportionRange)
}

func (c *clamper) pointer(prefix string, p *PointerDevice) {
	c.floatField(prefix+".accel-speed", &p.AccelSpeed, AccelSpeedRange)
	enumField(c, prefix+".accel-profile", &p.AccelProfile, AccelProfiles)
	enumField(c, prefix+".scroll-method", &p.ScrollMethod, ScrollMethods)
}

func (c *clamper) edge(prefix string, e *EdgeScroll) {
	c.floatField(prefix+".trigger-width", &e.TriggerSize, EdgeTriggerRange)
	c.intField(prefix+".delay-ms", &e.DelayMs, EdgeDelayRange)
	c.floatField(prefix+".max-speed", &e.MaxSpeed, EdgeSpeedRange)
}

// Clamp forces every numeric field into its documented range and every
// enum to a known value, returning what was changed.
func (s *Settings) Clamp() []Correction {
	c := &clamper{}

	a := &s.Appearance
	c.floatField("layout.gaps", &a.Gaps, GapsRange)
	c.floatField("layout.focus-ring.width", &a.FocusRing.Width, DecorationWidthRange)
	c.floatField("layout.border.width", &a.Border.Width, DecorationWidthRange)

	b := &s.Behavior
	enumField(c, "input.mod-key", &b.ModKey, ModKeys)
	enumField(c, "input.mod-key-nested", &b.ModKeyNested, ModKeys)
	enumField(c, "layout.center-focused-column", &b.CenterFocusedColumn, CenterColumns)
	c.width("layout.default-column-width", &b.DefaultColumnWidth)
	for i := range b.PresetColumnWidths {
		c.width(fmt.Sprintf("layout.preset-column-widths[%d]", i), &b.PresetColumnWidths[i])
	}

	k := &s.Keyboard
	c.intField("input.keyboard.repeat-delay", &k.RepeatDelay, RepeatDelayRange)
	c.intField("input.keyboard.repeat-rate", &k.RepeatRate, RepeatRateRange)
	enumField(c, "input.keyboard.track-layout", &k.TrackLayout, TrackLayouts)

	c.pointer("input.mouse", &s.Mouse.PointerDevice)
	c.floatField("input.mouse.scroll-factor", &s.Mouse.ScrollFactor, ScrollFactorRange)
	c.pointer("input.touchpad", &s.Touchpad.PointerDevice)
	c.floatField("input.touchpad.scroll-factor", &s.Touchpad.ScrollFactor, ScrollFactorRange)
	enumField(c, "input.touchpad.click-method", &s.Touchpad.ClickMethod, ClickMethods)
	enumField(c, "input.touchpad.tap-button-map", &s.Touchpad.TapButtonMap, TapButtonMaps)
	c.pointer("input.trackpoint", &s.Trackpoint.PointerDevice)
	c.pointer("input.trackball", &s.Trackball.PointerDevice)

	for i := range s.Outputs {
		o := &s.Outputs[i]
		prefix := fmt.Sprintf("output %q", o.Name)
		if o.Scale != 0 {
			c.floatField(prefix+".scale", &o.Scale, OutputScaleRange)
		}
		enumField(c, prefix+".transform", &o.Transform, Transforms)
		enumField(c, prefix+".variable-refresh-rate", &o.VRR, VRRModes)
	}

	an := &s.Animations
	c.floatField("animations.slowdown", &an.Slowdown, SlowdownRange)
	for i := range an.Overrides {
		ov := &an.Overrides[i]
		prefix := "animations." + ov.Name
		if ov.Spring != nil {
			c.floatField(prefix+".spring.damping-ratio", &ov.Spring.DampingRatio, DampingRatioRange)
			c.intField(prefix+".spring.stiffness", &ov.Spring.Stiffness, StiffnessRange)
			c.floatField(prefix+".spring.epsilon", &ov.Spring.Epsilon, EpsilonRange)
		}
		if ov.Easing != nil {
			c.intField(prefix+".duration-ms", &ov.Easing.DurationMs, DurationRange)
			enumField(c, prefix+".curve", &ov.Easing.Curve, Curves)
		}
	}

	c.intField("cursor.xcursor-size", &s.Cursor.Size, CursorSizeRange)
	c.intField("cursor.hide-after-inactive-ms", &s.Cursor.HideAfterInactiveMs, HideAfterRange)
	c.floatField("overview.zoom", &s.Overview.Zoom, OverviewZoomRange)

	for i := range s.Keybindings {
		kb := &s.Keybindings[i]
		c.intField("binds."+kb.Key+".cooldown-ms", &kb.CooldownMs, CooldownRange)
	}

	le := &s.LayoutExtras
	c.floatField("layout.shadow.softness", &le.Shadow.Softness, ShadowSoftnessRange)
	c.floatField("layout.shadow.spread", &le.Shadow.Spread, ShadowSpreadRange)
	c.floatField("layout.shadow.offset.x", &le.Shadow.OffsetX, ShadowOffsetRange)
	c.floatField("layout.shadow.offset.y", &le.Shadow.OffsetY, ShadowOffsetRange)
	c.floatField("layout.struts.left", &le.Struts.Left, StrutRange)
	c.floatField("layout.struts.right", &le.Struts.Right, StrutRange)
	c.floatField("layout.struts.top", &le.Struts.Top, StrutRange)
	c.floatField("layout.struts.bottom", &le.Struts.Bottom, StrutRange)
	for i := range le.PresetWindowHeights {
		c.width(fmt.Sprintf("layout.preset-window-heights[%d]", i), &le.PresetWindowHeights[i])
	}

	c.edge("gestures.dnd-edge-view-scroll", &s.Gestures.DndEdgeViewScroll)
	c.edge("gestures.dnd-edge-workspace-switch", &s.Gestures.DndEdgeWorkspaceSwitch)

	for i := range s.LayerRules {
		r := &s.LayerRules[i]
		prefix := fmt.Sprintf("layer-rule %d", r.ID)
		c.optFloat(prefix+".opacity", r.Opacity, OpacityRange)
		c.optFloat(prefix+".geometry-corner-radius", r.GeometryCornerRadius, CornerRadiusRange)
		enumField(c, prefix+".block-out-from", &r.BlockOutFrom, BlockOutModes)
	}

	for i := range s.WindowRules {
		r := &s.WindowRules[i]
		prefix := fmt.Sprintf("window-rule %d", r.ID)
		c.optFloat(prefix+".opacity", r.Opacity, OpacityRange)
		c.optFloat(prefix+".geometry-corner-radius", r.GeometryCornerRadius, CornerRadiusRange)
		enumField(c, prefix+".block-out-from", &r.BlockOutFrom, BlockOutModes)
		if r.DefaultColumnWidth != nil {
			c.width(prefix+".default-column-width", r.DefaultColumnWidth)
		}
		c.intField(prefix+".min-width", &r.MinWidth, WindowSizeRange)
		c.intField(prefix+".max-width", &r.MaxWidth, WindowSizeRange)
		c.intField(prefix+".min-height", &r.MinHeight, WindowSizeRange)
		c.intField(prefix+".max-height", &r.MaxHeight, WindowSizeRange)
	}

	enumField(c, "debug.preview-render", &s.Debug.PreviewRender, BlockOutModes)

	rw := &s.RecentWindows
	c.intField("recent-windows.debounce-ms", &rw.DebounceMs, RecentDebounceRange)
	c.intField("recent-windows.open-delay-ms", &rw.OpenDelayMs, RecentOpenDelayRange)
	c.floatField("recent-windows.highlight.padding", &rw.Highlight.Padding, HighlightPadRange)
	c.floatField("recent-windows.highlight.corner-radius", &rw.Highlight.CornerRadius, CornerRadiusRange)
	c.intField("recent-windows.previews.max-height", &rw.Previews.MaxHeight, PreviewHeightRange)
	c.floatField("recent-windows.previews.max-scale", &rw.Previews.MaxScale, PreviewScaleRange)

	// Fields whose defaults are non-empty never hold an empty string,
	// since an omitted value reads back as the default.
	def := Default()
	c.required("layout.focus-ring.active-color", &a.FocusRing.ActiveColor, def.Appearance.FocusRing.ActiveColor)
	c.required("layout.focus-ring.inactive-color", &a.FocusRing.InactiveColor, def.Appearance.FocusRing.InactiveColor)
	c.required("layout.border.active-color", &a.Border.ActiveColor, def.Appearance.Border.ActiveColor)
	c.required("layout.border.inactive-color", &a.Border.InactiveColor, def.Appearance.Border.InactiveColor)
	c.required("layout.border.urgent-color", &a.Border.UrgentColor, def.Appearance.Border.UrgentColor)
	c.required("layout.shadow.color", &le.Shadow.Color, def.LayoutExtras.Shadow.Color)
	c.required("layout.insert-hint.color", &le.InsertHint.Color, def.LayoutExtras.InsertHint.Color)
	c.required("cursor.xcursor-theme", &s.Cursor.Theme, def.Cursor.Theme)
	c.required("recent-windows.highlight.active-color", &rw.Highlight.ActiveColor, def.RecentWindows.Highlight.ActiveColor)
	c.required("recent-windows.highlight.urgent-color", &rw.Highlight.UrgentColor, def.RecentWindows.Highlight.UrgentColor)
	if s.Misc.ScreenshotDisabled {
		s.Misc.ScreenshotPath = ""
	} else {
		c.required("screenshot-path", &s.Misc.ScreenshotPath, def.Misc.ScreenshotPath)
	}

	return c.out
}
