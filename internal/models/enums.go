package models

// Enum values are the exact, case-sensitive strings used in the host
// config. The empty string is the unset value and is never written.

type ModKey string

const (
	ModKeyUnset          ModKey = ""
	ModKeySuper          ModKey = "Super"
	ModKeyAlt            ModKey = "Alt"
	ModKeyCtrl           ModKey = "Ctrl"
	ModKeyShift          ModKey = "Shift"
	ModKeyMod3           ModKey = "Mod3"
	ModKeyMod5           ModKey = "Mod5"
	ModKeyISOLevel3Shift ModKey = "ISO_Level3_Shift"
	ModKeyISOLevel5Shift ModKey = "ISO_Level5_Shift"
)

type CenterColumn string

const (
	CenterColumnUnset      CenterColumn = ""
	CenterColumnNever      CenterColumn = "never"
	CenterColumnAlways     CenterColumn = "always"
	CenterColumnOnOverflow CenterColumn = "on-overflow"
)

type TrackLayout string

const (
	TrackLayoutUnset  TrackLayout = ""
	TrackLayoutGlobal TrackLayout = "global"
	TrackLayoutWindow TrackLayout = "window"
)

type AccelProfile string

const (
	AccelProfileUnset    AccelProfile = ""
	AccelProfileAdaptive AccelProfile = "adaptive"
	AccelProfileFlat     AccelProfile = "flat"
)

type ScrollMethod string

const (
	ScrollMethodUnset        ScrollMethod = ""
	ScrollMethodNoScroll     ScrollMethod = "no-scroll"
	ScrollMethodTwoFinger    ScrollMethod = "two-finger"
	ScrollMethodEdge         ScrollMethod = "edge"
	ScrollMethodOnButtonDown ScrollMethod = "on-button-down"
)

type ClickMethod string

const (
	ClickMethodUnset       ClickMethod = ""
	ClickMethodButtonAreas ClickMethod = "button-areas"
	ClickMethodClickfinger ClickMethod = "clickfinger"
)

type TapButtonMap string

const (
	TapButtonMapUnset           TapButtonMap = ""
	TapButtonMapLeftRightMiddle TapButtonMap = "left-right-middle"
	TapButtonMapLeftMiddleRight TapButtonMap = "left-middle-right"
)

type Transform string

const (
	TransformUnset      Transform = ""
	TransformNormal     Transform = "normal"
	Transform90         Transform = "90"
	Transform180        Transform = "180"
	Transform270        Transform = "270"
	TransformFlipped    Transform = "flipped"
	TransformFlipped90  Transform = "flipped-90"
	TransformFlipped180 Transform = "flipped-180"
	TransformFlipped270 Transform = "flipped-270"
)

type VRR string

const (
	VRRUnset    VRR = ""
	VRROn       VRR = "on"
	VRROnDemand VRR = "on-demand"
)

// BlockOutFrom is shared by window rules, layer rules and debug
// preview-render.
type BlockOutFrom string

const (
	BlockOutUnset         BlockOutFrom = ""
	BlockOutScreencast    BlockOutFrom = "screencast"
	BlockOutScreenCapture BlockOutFrom = "screen-capture"
)

type Curve string

const (
	CurveUnset        Curve = ""
	CurveLinear       Curve = "linear"
	CurveEaseOutQuad  Curve = "ease-out-quad"
	CurveEaseOutCubic Curve = "ease-out-cubic"
	CurveEaseOutExpo  Curve = "ease-out-expo"
)

type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

var (
	ModKeys       = []ModKey{ModKeySuper, ModKeyAlt, ModKeyCtrl, ModKeyShift, ModKeyMod3, ModKeyMod5, ModKeyISOLevel3Shift, ModKeyISOLevel5Shift}
	CenterColumns = []CenterColumn{CenterColumnNever, CenterColumnAlways, CenterColumnOnOverflow}
	TrackLayouts  = []TrackLayout{TrackLayoutGlobal, TrackLayoutWindow}
	AccelProfiles = []AccelProfile{AccelProfileAdaptive, AccelProfileFlat}
	ScrollMethods = []ScrollMethod{ScrollMethodNoScroll, ScrollMethodTwoFinger, ScrollMethodEdge, ScrollMethodOnButtonDown}
	ClickMethods  = []ClickMethod{ClickMethodButtonAreas, ClickMethodClickfinger}
	TapButtonMaps = []TapButtonMap{TapButtonMapLeftRightMiddle, TapButtonMapLeftMiddleRight}
	Transforms    = []Transform{TransformNormal, Transform90, Transform180, Transform270, TransformFlipped, TransformFlipped90, TransformFlipped180, TransformFlipped270}
	VRRModes      = []VRR{VRROn, VRROnDemand}
	BlockOutModes = []BlockOutFrom{BlockOutScreencast, BlockOutScreenCapture}
	Curves        = []Curve{CurveLinear, CurveEaseOutQuad, CurveEaseOutCubic, CurveEaseOutExpo}
	Themes        = []Theme{ThemeSystem, ThemeLight, ThemeDark}
)

// ParseEnum matches s exactly against the allowed values. The empty string
// always parses to the unset value.
func ParseEnum[E ~string](s string, allowed []E) (E, bool) {
	if s == "" {
		return "", true
	}
	for _, v := range allowed {
		if string(v) == s {
			return v, true
		}
	}
	var zero E
	return zero, false
}

// ValidEnum reports whether v is unset or one of allowed.
func ValidEnum[E ~string](v E, allowed []E) bool {
	_, ok := ParseEnum(string(v), allowed)
	return ok
}

// EnumStrings lists allowed values as strings, for help text.
func EnumStrings[E ~string](allowed []E) []string {
	out := make([]string, len(allowed))
	for i, v := range allowed {
		out[i] = string(v)
	}
	return out
}
