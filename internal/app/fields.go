package app

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

type Kind string

const (
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindString Kind = "string"
	KindEnum   Kind = "enum"
)

// Field is one scalar setting reachable by key. Set parses the text form
// and clamps it to the documented range.
type Field struct {
	Key      string
	Category models.Category
	Kind     Kind
	Help     string
	// Options lists the accepted values of an enum field; "" unsets it
	Options []string
	Get     func(*models.Settings) string
	Set     func(*models.Settings, string) error
}

func boolField(key string, cat models.Category, help string, ptr func(*models.Settings) *bool) Field {
	return Field{
		Key: key, Category: cat, Kind: KindBool, Help: help,
		Get: func(s *models.Settings) string { return strconv.FormatBool(*ptr(s)) },
		Set: func(s *models.Settings, v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s: expected true or false, got %q", key, v)
			}
			*ptr(s) = b
			return nil
		},
	}
}

func intField(key string, cat models.Category, help string, r models.IntRange, ptr func(*models.Settings) *int) Field {
	return Field{
		Key: key, Category: cat, Kind: KindInt,
		Help: fmt.Sprintf("%s (%d..%d)", help, r.Min, r.Max),
		Get:  func(s *models.Settings) string { return strconv.Itoa(*ptr(s)) },
		Set: func(s *models.Settings, v string) error {
			i, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s: expected an integer, got %q", key, v)
			}
			*ptr(s) = r.Clamp(i)
			return nil
		},
	}
}

func floatField(key string, cat models.Category, help string, r models.FloatRange, ptr func(*models.Settings) *float64) Field {
	return Field{
		Key: key, Category: cat, Kind: KindFloat,
		Help: fmt.Sprintf("%s (%g..%g)", help, r.Min, r.Max),
		Get:  func(s *models.Settings) string { return strconv.FormatFloat(*ptr(s), 'f', -1, 64) },
		Set: func(s *models.Settings, v string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("%s: expected a number, got %q", key, v)
			}
			*ptr(s) = r.Clamp(f)
			return nil
		},
	}
}

func stringField(key string, cat models.Category, help string, ptr func(*models.Settings) *string) Field {
	return Field{
		Key: key, Category: cat, Kind: KindString, Help: help,
		Get: func(s *models.Settings) string { return *ptr(s) },
		Set: func(s *models.Settings, v string) error {
			*ptr(s) = v
			return nil
		},
	}
}

// requiredStringField rejects blank values, which the model would reset to
// the default on the next load
func requiredStringField(key string, cat models.Category, help string, ptr func(*models.Settings) *string) Field {
	f := stringField(key, cat, help, ptr)
	f.Set = func(s *models.Settings, v string) error {
		v = strings.TrimSpace(v)
		if v == "" {
			return fmt.Errorf("%s: a value is required", key)
		}
		*ptr(s) = v
		return nil
	}
	return f
}

// columnWidthField edits a width in one mode, proportion or fixed pixels.
// Get is empty while the width is in the other mode; setting a value
// switches the mode.
func columnWidthField(key string, cat models.Category, help string, fixed bool, ptr func(*models.Settings) *models.ColumnWidth) Field {
	r := models.ProportionRange
	if fixed {
		r = models.FixedSizeRange
	}
	return Field{
		Key: key, Category: cat, Kind: KindFloat,
		Help: fmt.Sprintf("%s (%g..%g)", help, r.Min, r.Max),
		Get: func(s *models.Settings) string {
			w := ptr(s)
			if w.Fixed != fixed {
				return ""
			}
			return strconv.FormatFloat(w.Value, 'f', -1, 64)
		},
		Set: func(s *models.Settings, v string) error {
			v = strings.TrimSpace(v)
			if v == "" {
				return nil
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: expected a number, got %q", key, v)
			}
			w := ptr(s)
			w.Fixed = fixed
			w.Value = r.Clamp(f)
			if fixed {
				w.Value = math.Round(w.Value)
			}
			return nil
		},
	}
}

func enumField[E ~string](key string, cat models.Category, help string, allowed []E, ptr func(*models.Settings) *E) Field {
	return Field{
		Key: key, Category: cat, Kind: KindEnum, Help: help,
		Options: models.EnumStrings(allowed),
		Get:     func(s *models.Settings) string { return string(*ptr(s)) },
		Set: func(s *models.Settings, v string) error {
			e, ok := models.ParseEnum(v, allowed)
			if !ok {
				return fmt.Errorf("%s: %q is not one of %s", key, v, strings.Join(models.EnumStrings(allowed), ", "))
			}
			*ptr(s) = e
			return nil
		},
	}
}

var registry = []Field{
	floatField("appearance.gaps", models.CategoryAppearance, "Gap between windows", models.GapsRange,
		func(s *models.Settings) *float64 { return &s.Appearance.Gaps }),
	boolField("appearance.focus-ring.enabled", models.CategoryAppearance, "Draw a focus ring",
		func(s *models.Settings) *bool { return &s.Appearance.FocusRing.Enabled }),
	floatField("appearance.focus-ring.width", models.CategoryAppearance, "Focus ring width", models.DecorationWidthRange,
		func(s *models.Settings) *float64 { return &s.Appearance.FocusRing.Width }),
	requiredStringField("appearance.focus-ring.active-color", models.CategoryAppearance, "Focus ring color of the active window",
		func(s *models.Settings) *string { return &s.Appearance.FocusRing.ActiveColor }),
	requiredStringField("appearance.focus-ring.inactive-color", models.CategoryAppearance, "Focus ring color of inactive windows",
		func(s *models.Settings) *string { return &s.Appearance.FocusRing.InactiveColor }),
	boolField("appearance.border.enabled", models.CategoryAppearance, "Draw window borders",
		func(s *models.Settings) *bool { return &s.Appearance.Border.Enabled }),
	floatField("appearance.border.width", models.CategoryAppearance, "Border width", models.DecorationWidthRange,
		func(s *models.Settings) *float64 { return &s.Appearance.Border.Width }),
	requiredStringField("appearance.border.active-color", models.CategoryAppearance, "Border color of the active window",
		func(s *models.Settings) *string { return &s.Appearance.Border.ActiveColor }),
	stringField("appearance.background-color", models.CategoryAppearance, "Workspace background color",
		func(s *models.Settings) *string { return &s.Appearance.BackgroundColor }),

	boolField("behavior.focus-follows-mouse", models.CategoryBehavior, "Focus the window under the pointer",
		func(s *models.Settings) *bool { return &s.Behavior.FocusFollowsMouse }),
	boolField("behavior.warp-mouse-to-focus", models.CategoryBehavior, "Move the pointer to newly focused windows",
		func(s *models.Settings) *bool { return &s.Behavior.WarpMouseToFocus }),
	boolField("behavior.workspace-auto-back-and-forth", models.CategoryBehavior, "Switching to the current workspace goes back",
		func(s *models.Settings) *bool { return &s.Behavior.WorkspaceAutoBackAndForth }),
	boolField("behavior.disable-power-key-handling", models.CategoryBehavior, "Leave the power key to logind",
		func(s *models.Settings) *bool { return &s.Behavior.DisablePowerKeyHandling }),
	enumField("behavior.mod-key", models.CategoryBehavior, "Modifier used by Mod bindings", models.ModKeys,
		func(s *models.Settings) *models.ModKey { return &s.Behavior.ModKey }),
	enumField("behavior.mod-key-nested", models.CategoryBehavior, "Modifier when running nested", models.ModKeys,
		func(s *models.Settings) *models.ModKey { return &s.Behavior.ModKeyNested }),
	enumField("behavior.center-focused-column", models.CategoryBehavior, "When to center the focused column", models.CenterColumns,
		func(s *models.Settings) *models.CenterColumn { return &s.Behavior.CenterFocusedColumn }),
	boolField("behavior.always-center-single-column", models.CategoryBehavior, "Center a lone column",
		func(s *models.Settings) *bool { return &s.Behavior.AlwaysCenterSingleColumn }),
	boolField("behavior.empty-workspace-above-first", models.CategoryBehavior, "Keep an empty workspace above the first",
		func(s *models.Settings) *bool { return &s.Behavior.EmptyWorkspaceAboveFirst }),
	columnWidthField("behavior.default-column-width", models.CategoryBehavior, "Default column width as a proportion", false,
		func(s *models.Settings) *models.ColumnWidth { return &s.Behavior.DefaultColumnWidth }),
	columnWidthField("behavior.default-column-width-fixed", models.CategoryBehavior, "Default column width in pixels", true,
		func(s *models.Settings) *models.ColumnWidth { return &s.Behavior.DefaultColumnWidth }),

	stringField("keyboard.xkb-layout", models.CategoryKeyboard, "XKB layouts, comma separated",
		func(s *models.Settings) *string { return &s.Keyboard.XkbLayout }),
	stringField("keyboard.xkb-variant", models.CategoryKeyboard, "XKB variants",
		func(s *models.Settings) *string { return &s.Keyboard.XkbVariant }),
	stringField("keyboard.xkb-options", models.CategoryKeyboard, "XKB options",
		func(s *models.Settings) *string { return &s.Keyboard.XkbOptions }),
	intField("keyboard.repeat-delay", models.CategoryKeyboard, "Key repeat delay in ms", models.RepeatDelayRange,
		func(s *models.Settings) *int { return &s.Keyboard.RepeatDelay }),
	intField("keyboard.repeat-rate", models.CategoryKeyboard, "Key repeats per second", models.RepeatRateRange,
		func(s *models.Settings) *int { return &s.Keyboard.RepeatRate }),
	enumField("keyboard.track-layout", models.CategoryKeyboard, "Keep the layout global or per window", models.TrackLayouts,
		func(s *models.Settings) *models.TrackLayout { return &s.Keyboard.TrackLayout }),
	boolField("keyboard.numlock", models.CategoryKeyboard, "Enable numlock at startup",
		func(s *models.Settings) *bool { return &s.Keyboard.Numlock }),

	boolField("mouse.natural-scroll", models.CategoryMouse, "Invert scroll direction",
		func(s *models.Settings) *bool { return &s.Mouse.NaturalScroll }),
	floatField("mouse.accel-speed", models.CategoryMouse, "Pointer acceleration", models.AccelSpeedRange,
		func(s *models.Settings) *float64 { return &s.Mouse.AccelSpeed }),
	enumField("mouse.accel-profile", models.CategoryMouse, "Acceleration profile", models.AccelProfiles,
		func(s *models.Settings) *models.AccelProfile { return &s.Mouse.AccelProfile }),
	floatField("mouse.scroll-factor", models.CategoryMouse, "Scroll speed multiplier", models.ScrollFactorRange,
		func(s *models.Settings) *float64 { return &s.Mouse.ScrollFactor }),

	boolField("touchpad.off", models.CategoryTouchpad, "Disable the touchpad",
		func(s *models.Settings) *bool { return &s.Touchpad.Off }),
	boolField("touchpad.tap", models.CategoryTouchpad, "Tap to click",
		func(s *models.Settings) *bool { return &s.Touchpad.Tap }),
	boolField("touchpad.dwt", models.CategoryTouchpad, "Disable while typing",
		func(s *models.Settings) *bool { return &s.Touchpad.Dwt }),
	boolField("touchpad.natural-scroll", models.CategoryTouchpad, "Invert scroll direction",
		func(s *models.Settings) *bool { return &s.Touchpad.NaturalScroll }),
	floatField("touchpad.accel-speed", models.CategoryTouchpad, "Pointer acceleration", models.AccelSpeedRange,
		func(s *models.Settings) *float64 { return &s.Touchpad.AccelSpeed }),
	enumField("touchpad.click-method", models.CategoryTouchpad, "How clicks are detected", models.ClickMethods,
		func(s *models.Settings) *models.ClickMethod { return &s.Touchpad.ClickMethod }),
	enumField("touchpad.scroll-method", models.CategoryTouchpad, "How scrolling is detected", models.ScrollMethods,
		func(s *models.Settings) *models.ScrollMethod { return &s.Touchpad.ScrollMethod }),
	floatField("touchpad.scroll-factor", models.CategoryTouchpad, "Scroll speed multiplier", models.ScrollFactorRange,
		func(s *models.Settings) *float64 { return &s.Touchpad.ScrollFactor }),

	floatField("trackpoint.accel-speed", models.CategoryTrackpoint, "Pointer acceleration", models.AccelSpeedRange,
		func(s *models.Settings) *float64 { return &s.Trackpoint.AccelSpeed }),
	floatField("trackball.accel-speed", models.CategoryTrackball, "Pointer acceleration", models.AccelSpeedRange,
		func(s *models.Settings) *float64 { return &s.Trackball.AccelSpeed }),

	boolField("animations.off", models.CategoryAnimations, "Disable all animations",
		func(s *models.Settings) *bool { return &s.Animations.Off }),
	floatField("animations.slowdown", models.CategoryAnimations, "Global animation slowdown", models.SlowdownRange,
		func(s *models.Settings) *float64 { return &s.Animations.Slowdown }),

	requiredStringField("cursor.theme", models.CategoryCursor, "XCursor theme",
		func(s *models.Settings) *string { return &s.Cursor.Theme }),
	intField("cursor.size", models.CategoryCursor, "XCursor size", models.CursorSizeRange,
		func(s *models.Settings) *int { return &s.Cursor.Size }),
	boolField("cursor.hide-when-typing", models.CategoryCursor, "Hide the cursor while typing",
		func(s *models.Settings) *bool { return &s.Cursor.HideWhenTyping }),
	intField("cursor.hide-after-inactive-ms", models.CategoryCursor, "Hide the cursor after inactivity, 0 is off", models.HideAfterRange,
		func(s *models.Settings) *int { return &s.Cursor.HideAfterInactiveMs }),

	floatField("overview.zoom", models.CategoryOverview, "Overview zoom", models.OverviewZoomRange,
		func(s *models.Settings) *float64 { return &s.Overview.Zoom }),
	stringField("overview.backdrop-color", models.CategoryOverview, "Overview backdrop color",
		func(s *models.Settings) *string { return &s.Overview.BackdropColor }),

	boolField("layout-extras.shadow.on", models.CategoryLayoutExtras, "Draw window shadows",
		func(s *models.Settings) *bool { return &s.LayoutExtras.Shadow.On }),
	floatField("layout-extras.shadow.softness", models.CategoryLayoutExtras, "Shadow blur radius", models.ShadowSoftnessRange,
		func(s *models.Settings) *float64 { return &s.LayoutExtras.Shadow.Softness }),
	floatField("layout-extras.shadow.spread", models.CategoryLayoutExtras, "Shadow spread", models.ShadowSpreadRange,
		func(s *models.Settings) *float64 { return &s.LayoutExtras.Shadow.Spread }),
	floatField("layout-extras.struts.left", models.CategoryLayoutExtras, "Left strut", models.StrutRange,
		func(s *models.Settings) *float64 { return &s.LayoutExtras.Struts.Left }),
	floatField("layout-extras.struts.right", models.CategoryLayoutExtras, "Right strut", models.StrutRange,
		func(s *models.Settings) *float64 { return &s.LayoutExtras.Struts.Right }),
	floatField("layout-extras.struts.top", models.CategoryLayoutExtras, "Top strut", models.StrutRange,
		func(s *models.Settings) *float64 { return &s.LayoutExtras.Struts.Top }),
	floatField("layout-extras.struts.bottom", models.CategoryLayoutExtras, "Bottom strut", models.StrutRange,
		func(s *models.Settings) *float64 { return &s.LayoutExtras.Struts.Bottom }),
	boolField("layout-extras.insert-hint.off", models.CategoryLayoutExtras, "Hide the insert hint",
		func(s *models.Settings) *bool { return &s.LayoutExtras.InsertHint.Off }),

	boolField("gestures.hot-corners-off", models.CategoryGestures, "Disable the hot corner",
		func(s *models.Settings) *bool { return &s.Gestures.HotCornersOff }),

	boolField("misc.prefer-no-csd", models.CategoryMisc, "Ask clients to omit client-side decorations",
		func(s *models.Settings) *bool { return &s.Misc.PreferNoCSD }),
	requiredStringField("misc.screenshot-path", models.CategoryMisc, "Screenshot path, strftime format",
		func(s *models.Settings) *string { return &s.Misc.ScreenshotPath }),
	boolField("misc.hotkey-overlay.skip-at-startup", models.CategoryMisc, "Do not show the hotkey overlay at startup",
		func(s *models.Settings) *bool { return &s.Misc.HotkeyOverlaySkipAtStartup }),
	boolField("misc.clipboard.disable-primary", models.CategoryMisc, "Disable the primary selection",
		func(s *models.Settings) *bool { return &s.Misc.ClipboardDisablePrimary }),

	enumField("debug.preview-render", models.CategoryDebug, "Render monitors as if captured", models.BlockOutModes,
		func(s *models.Settings) *models.BlockOutFrom { return &s.Debug.PreviewRender }),
	boolField("debug.disable-direct-scanout", models.CategoryDebug, "Disable direct scanout",
		func(s *models.Settings) *bool { return &s.Debug.DisableDirectScanout }),

	boolField("recent-windows.off", models.CategoryRecentWindows, "Disable the recent windows switcher",
		func(s *models.Settings) *bool { return &s.RecentWindows.Off }),
	intField("recent-windows.debounce-ms", models.CategoryRecentWindows, "Delay before a focused window counts as recent", models.RecentDebounceRange,
		func(s *models.Settings) *int { return &s.RecentWindows.DebounceMs }),
	intField("recent-windows.open-delay-ms", models.CategoryRecentWindows, "Delay before the switcher opens", models.RecentOpenDelayRange,
		func(s *models.Settings) *int { return &s.RecentWindows.OpenDelayMs }),
}

var byKey = func() map[string]int {
	m := make(map[string]int, len(registry))
	for i, f := range registry {
		if _, dup := m[f.Key]; dup {
			panic("duplicate field key " + f.Key)
		}
		m[f.Key] = i
	}
	return m
}()

// Fields lists every field sorted by category, then key
func Fields() []Field {
	out := append([]Field(nil), registry...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func LookupField(key string) (Field, bool) {
	i, ok := byKey[key]
	if !ok {
		return Field{}, false
	}
	return registry[i], true
}

// Get returns the text form of a field
func (c *Context) Get(key string) (string, error) {
	f, ok := LookupField(key)
	if !ok {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return f.Get(&c.settings), nil
}

// Set parses value into a field, then saves its category
func (c *Context) Set(key, value string) error {
	f, ok := LookupField(key)
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	return c.Update(f.Category, func(s *models.Settings) error {
		return f.Set(s, value)
	})
}
