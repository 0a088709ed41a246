package models

import "fmt"

// Category is one persisted section of Settings and the unit of dirtiness
type Category int

const (
	CategoryAppearance Category = iota
	CategoryBehavior
	CategoryKeyboard
	CategoryMouse
	CategoryTouchpad
	CategoryTrackpoint
	CategoryTrackball
	CategoryTablet
	CategoryTouch
	CategoryOutputs
	CategoryAnimations
	CategoryCursor
	CategoryOverview
	CategoryWorkspaces
	CategoryKeybindings
	CategoryLayoutExtras
	CategoryGestures
	CategoryLayerRules
	CategoryWindowRules
	CategoryMisc
	CategoryStartup
	CategoryEnvironment
	CategoryDebug
	CategorySwitchEvents
	CategoryRecentWindows

	categoryCount
)

// CategoryCount is the number of categories
const CategoryCount = int(categoryCount)

type categoryInfo struct {
	name string
	file string
	copy func(dst, src *Settings)
}

var categories = [categoryCount]categoryInfo{
	CategoryAppearance: {"appearance", "appearance.kdl", func(d, s *Settings) { d.Appearance = s.Appearance }},
	CategoryBehavior: {"behavior", "behavior.kdl", func(d, s *Settings) {
		d.Behavior = s.Behavior
		d.Behavior.PresetColumnWidths = cloneSlice(s.Behavior.PresetColumnWidths)
	}},
	CategoryKeyboard:   {"keyboard", "input/keyboard.kdl", func(d, s *Settings) { d.Keyboard = s.Keyboard }},
	CategoryMouse:      {"mouse", "input/mouse.kdl", func(d, s *Settings) { d.Mouse = s.Mouse }},
	CategoryTouchpad:   {"touchpad", "input/touchpad.kdl", func(d, s *Settings) { d.Touchpad = s.Touchpad }},
	CategoryTrackpoint: {"trackpoint", "input/trackpoint.kdl", func(d, s *Settings) { d.Trackpoint = s.Trackpoint }},
	CategoryTrackball:  {"trackball", "input/trackball.kdl", func(d, s *Settings) { d.Trackball = s.Trackball }},
	CategoryTablet:     {"tablet", "input/tablet.kdl", func(d, s *Settings) { d.Tablet = s.Tablet }},
	CategoryTouch:      {"touch", "input/touch.kdl", func(d, s *Settings) { d.Touch = s.Touch }},
	CategoryOutputs:    {"outputs", "outputs.kdl", func(d, s *Settings) { d.Outputs = cloneOutputs(s.Outputs) }},
	CategoryAnimations: {"animations", "animations.kdl", func(d, s *Settings) { d.Animations = s.Animations.clone() }},
	CategoryCursor:     {"cursor", "cursor.kdl", func(d, s *Settings) { d.Cursor = s.Cursor }},
	CategoryOverview:   {"overview", "overview.kdl", func(d, s *Settings) { d.Overview = s.Overview }},
	CategoryWorkspaces: {"workspaces", "workspaces.kdl", func(d, s *Settings) { d.Workspaces = cloneSlice(s.Workspaces) }},
	CategoryKeybindings: {"keybindings", "keybindings.kdl", func(d, s *Settings) {
		d.Keybindings = cloneSlice(s.Keybindings)
	}},
	CategoryLayoutExtras: {"layout-extras", "layout-extras.kdl", func(d, s *Settings) {
		d.LayoutExtras = s.LayoutExtras
		d.LayoutExtras.PresetWindowHeights = cloneSlice(s.LayoutExtras.PresetWindowHeights)
	}},
	CategoryGestures:    {"gestures", "gestures.kdl", func(d, s *Settings) { d.Gestures = s.Gestures }},
	CategoryLayerRules:  {"layer-rules", "layer-rules.kdl", func(d, s *Settings) { d.LayerRules = cloneLayerRules(s.LayerRules) }},
	CategoryWindowRules: {"window-rules", "window-rules.kdl", func(d, s *Settings) { d.WindowRules = cloneWindowRules(s.WindowRules) }},
	CategoryMisc:        {"misc", "misc.kdl", func(d, s *Settings) { d.Misc = s.Misc }},
	CategoryStartup:     {"startup", "startup.kdl", func(d, s *Settings) { d.Startup = cloneStartup(s.Startup) }},
	CategoryEnvironment: {"environment", "environment.kdl", func(d, s *Settings) { d.Environment = cloneSlice(s.Environment) }},
	CategoryDebug:       {"debug", "debug.kdl", func(d, s *Settings) { d.Debug = s.Debug }},
	CategorySwitchEvents: {"switch-events", "switch-events.kdl", func(d, s *Settings) {
		d.SwitchEvents = s.SwitchEvents.clone()
	}},
	CategoryRecentWindows: {"recent-windows", "recent-windows.kdl", func(d, s *Settings) { d.RecentWindows = s.RecentWindows }},
}

func (c Category) Valid() bool {
	return c >= 0 && c < categoryCount
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categories[c].name
}

// FileName is the category's file path relative to the nirify directory
func (c Category) FileName() string {
	if !c.Valid() {
		return ""
	}
	return categories[c].file
}

// Repeatable reports whether the category holds a list of entities with IDs
func (c Category) Repeatable() bool {
	switch c {
	case CategoryOutputs, CategoryWorkspaces, CategoryKeybindings, CategoryLayerRules, CategoryWindowRules:
		return true
	}
	return false
}

// MarshalText encodes the category by name
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory looks a category up by name
func ParseCategory(name string) (Category, error) {
	for i := range categories {
		if categories[i].name == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}

// AllCategories returns every category in declaration order
func AllCategories() []Category {
	out := make([]Category, categoryCount)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// CopySection deep-copies one category's section from src into dst
func CopySection(dst, src *Settings, cat Category) {
	if !cat.Valid() {
		return
	}
	categories[cat].copy(dst, src)
}
