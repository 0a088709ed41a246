package models

// Settings is the aggregate of every managed section. Each field is tagged
// with the category that owns it; the tag list and the Category enum must
// stay in one-to-one correspondence.
type Settings struct {
	Appearance    Appearance       `json:"appearance" category:"appearance"`
	Behavior      Behavior         `json:"behavior" category:"behavior"`
	Keyboard      Keyboard         `json:"keyboard" category:"keyboard"`
	Mouse         Mouse            `json:"mouse" category:"mouse"`
	Touchpad      Touchpad         `json:"touchpad" category:"touchpad"`
	Trackpoint    Trackpoint       `json:"trackpoint" category:"trackpoint"`
	Trackball     Trackball        `json:"trackball" category:"trackball"`
	Tablet        Tablet           `json:"tablet" category:"tablet"`
	Touch         Touch            `json:"touch" category:"touch"`
	Outputs       []Output         `json:"outputs" category:"outputs"`
	Animations    Animations       `json:"animations" category:"animations"`
	Cursor        Cursor           `json:"cursor" category:"cursor"`
	Overview      Overview         `json:"overview" category:"overview"`
	Workspaces    []Workspace      `json:"workspaces" category:"workspaces"`
	Keybindings   []Keybinding     `json:"keybindings" category:"keybindings"`
	LayoutExtras  LayoutExtras     `json:"layout_extras" category:"layout-extras"`
	Gestures      Gestures         `json:"gestures" category:"gestures"`
	LayerRules    []LayerRule      `json:"layer_rules" category:"layer-rules"`
	WindowRules   []WindowRule     `json:"window_rules" category:"window-rules"`
	Misc          Misc             `json:"misc" category:"misc"`
	Startup       []StartupCommand `json:"startup" category:"startup"`
	Environment   []EnvVar         `json:"environment" category:"environment"`
	Debug         Debug            `json:"debug" category:"debug"`
	SwitchEvents  SwitchEvents     `json:"switch_events" category:"switch-events"`
	RecentWindows RecentWindows    `json:"recent_windows" category:"recent-windows"`
}

// Decoration is a focus ring or window border
type Decoration struct {
	Enabled       bool    `json:"enabled"`
	Width         float64 `json:"width"`
	ActiveColor   string  `json:"active_color,omitempty"`
	InactiveColor string  `json:"inactive_color,omitempty"`
	UrgentColor   string  `json:"urgent_color,omitempty"`
}

type Appearance struct {
	Gaps            float64    `json:"gaps"`
	FocusRing       Decoration `json:"focus_ring"`
	Border          Decoration `json:"border"`
	BackgroundColor string     `json:"background_color,omitempty"`
}

// ColumnWidth is either a proportion of the output width or a fixed
// size in logical pixels.
type ColumnWidth struct {
	Fixed bool    `json:"fixed"`
	Value float64 `json:"value"`
}

type Behavior struct {
	FocusFollowsMouse         bool          `json:"focus_follows_mouse"`
	FocusFollowsMaxScroll     string        `json:"focus_follows_max_scroll,omitempty"` // e.g. "25%"
	WarpMouseToFocus          bool          `json:"warp_mouse_to_focus"`
	WorkspaceAutoBackAndForth bool          `json:"workspace_auto_back_and_forth"`
	DisablePowerKeyHandling   bool          `json:"disable_power_key_handling"`
	ModKey                    ModKey        `json:"mod_key,omitempty"`
	ModKeyNested              ModKey        `json:"mod_key_nested,omitempty"`
	CenterFocusedColumn       CenterColumn  `json:"center_focused_column,omitempty"`
	AlwaysCenterSingleColumn  bool          `json:"always_center_single_column"`
	EmptyWorkspaceAboveFirst  bool          `json:"empty_workspace_above_first"`
	DefaultColumnWidth        ColumnWidth   `json:"default_column_width"`
	PresetColumnWidths        []ColumnWidth `json:"preset_column_widths"`
}

type Keyboard struct {
	XkbLayout   string      `json:"xkb_layout,omitempty"`
	XkbVariant  string      `json:"xkb_variant,omitempty"`
	XkbOptions  string      `json:"xkb_options,omitempty"`
	XkbModel    string      `json:"xkb_model,omitempty"`
	XkbRules    string      `json:"xkb_rules,omitempty"`
	XkbFile     string      `json:"xkb_file,omitempty"`
	RepeatDelay int         `json:"repeat_delay"`
	RepeatRate  int         `json:"repeat_rate"`
	TrackLayout TrackLayout `json:"track_layout,omitempty"`
	Numlock     bool        `json:"numlock"`
}

// PointerDevice holds the fields shared by every pointer-like input
type PointerDevice struct {
	Off             bool         `json:"off"`
	NaturalScroll   bool         `json:"natural_scroll"`
	LeftHanded      bool         `json:"left_handed"`
	MiddleEmulation bool         `json:"middle_emulation"`
	AccelSpeed      float64      `json:"accel_speed"`
	AccelProfile    AccelProfile `json:"accel_profile,omitempty"`
	ScrollMethod    ScrollMethod `json:"scroll_method,omitempty"`
}

type Mouse struct {
	PointerDevice
	ScrollFactor float64 `json:"scroll_factor"`
}

type Touchpad struct {
	PointerDevice
	Tap                     bool         `json:"tap"`
	Dwt                     bool         `json:"dwt"`
	Dwtp                    bool         `json:"dwtp"`
	DragLock                bool         `json:"drag_lock"`
	DisabledOnExternalMouse bool         `json:"disabled_on_external_mouse"`
	ClickMethod             ClickMethod  `json:"click_method,omitempty"`
	TapButtonMap            TapButtonMap `json:"tap_button_map,omitempty"`
	ScrollFactor            float64      `json:"scroll_factor"`
}

type Trackpoint struct {
	PointerDevice
}

type Trackball struct {
	PointerDevice
}

type Tablet struct {
	Off         bool   `json:"off"`
	MapToOutput string `json:"map_to_output,omitempty"`
	LeftHanded  bool   `json:"left_handed"`
}

type Touch struct {
	Off         bool   `json:"off"`
	MapToOutput string `json:"map_to_output,omitempty"`
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Output struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Off            bool      `json:"off"`
	Mode           string    `json:"mode,omitempty"` // WIDTHxHEIGHT[@RATE]
	Scale          float64   `json:"scale,omitempty"`
	Transform      Transform `json:"transform,omitempty"`
	Position       *Position `json:"position,omitempty"`
	VRR            VRR       `json:"vrr,omitempty"`
	FocusAtStartup bool      `json:"focus_at_startup"`
	BackdropColor  string    `json:"backdrop_color,omitempty"`
}

type Spring struct {
	DampingRatio float64 `json:"damping_ratio"`
	Stiffness    int     `json:"stiffness"`
	Epsilon      float64 `json:"epsilon"`
}

type Easing struct {
	DurationMs int   `json:"duration_ms"`
	Curve      Curve `json:"curve"`
}

// AnimationOverride customizes one named animation. At most one of
// Spring and Easing is set.
type AnimationOverride struct {
	Name         string  `json:"name"`
	Off          bool    `json:"off"`
	Spring       *Spring `json:"spring,omitempty"`
	Easing       *Easing `json:"easing,omitempty"`
	CustomShader string  `json:"custom_shader,omitempty"`
}

type Animations struct {
	Off       bool                `json:"off"`
	Slowdown  float64             `json:"slowdown"`
	Overrides []AnimationOverride `json:"overrides"`
}

type Cursor struct {
	Theme               string `json:"theme"`
	Size                int    `json:"size"`
	HideWhenTyping      bool   `json:"hide_when_typing"`
	HideAfterInactiveMs int    `json:"hide_after_inactive_ms"`
}

type Overview struct {
	Zoom               float64 `json:"zoom"`
	BackdropColor      string  `json:"backdrop_color,omitempty"`
	WorkspaceShadowOff bool    `json:"workspace_shadow_off"`
}

type Workspace struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	OpenOnOutput string `json:"open_on_output,omitempty"`
}

// Keybinding maps a key combination to a single action. Action holds the
// action node in inline form, e.g. `spawn "alacritty"`.
type Keybinding struct {
	ID                 int    `json:"id"`
	Key                string `json:"key"`
	Action             string `json:"action"`
	Repeat             bool   `json:"repeat"`
	CooldownMs         int    `json:"cooldown_ms,omitempty"`
	AllowWhenLocked    bool   `json:"allow_when_locked"`
	AllowInhibiting    bool   `json:"allow_inhibiting"`
	HotkeyOverlayTitle string `json:"hotkey_overlay_title,omitempty"`
	HideFromOverlay    bool   `json:"hide_from_overlay"`
}

type Shadow struct {
	On               bool    `json:"on"`
	Softness         float64 `json:"softness"`
	Spread           float64 `json:"spread"`
	OffsetX          float64 `json:"offset_x"`
	OffsetY          float64 `json:"offset_y"`
	DrawBehindWindow bool    `json:"draw_behind_window"`
	Color            string  `json:"color,omitempty"`
	InactiveColor    string  `json:"inactive_color,omitempty"`
}

type Struts struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

type InsertHint struct {
	Off   bool   `json:"off"`
	Color string `json:"color,omitempty"`
}

type LayoutExtras struct {
	Shadow              Shadow        `json:"shadow"`
	Struts              Struts        `json:"struts"`
	InsertHint          InsertHint    `json:"insert_hint"`
	PresetWindowHeights []ColumnWidth `json:"preset_window_heights"`
}

// EdgeScroll configures scrolling while dragging near a screen edge
type EdgeScroll struct {
	TriggerSize float64 `json:"trigger_size"`
	DelayMs     int     `json:"delay_ms"`
	MaxSpeed    float64 `json:"max_speed"`
}

type Gestures struct {
	HotCornersOff          bool       `json:"hot_corners_off"`
	DndEdgeViewScroll      EdgeScroll `json:"dnd_edge_view_scroll"`
	DndEdgeWorkspaceSwitch EdgeScroll `json:"dnd_edge_workspace_switch"`
}

type LayerMatch struct {
	Namespace string `json:"namespace,omitempty"` // regex
	AtStartup *bool  `json:"at_startup,omitempty"`
}

type LayerRule struct {
	ID                   int          `json:"id"`
	Matches              []LayerMatch `json:"matches"`
	Excludes             []LayerMatch `json:"excludes"`
	Opacity              *float64     `json:"opacity,omitempty"`
	BlockOutFrom         BlockOutFrom `json:"block_out_from,omitempty"`
	ShadowOn             bool         `json:"shadow_on"`
	GeometryCornerRadius *float64     `json:"geometry_corner_radius,omitempty"`
	PlaceWithinBackdrop  bool         `json:"place_within_backdrop"`
	BabaIsFloat          bool         `json:"baba_is_float"`
}

type WindowMatch struct {
	AppID      string `json:"app_id,omitempty"` // regex
	Title      string `json:"title,omitempty"`  // regex
	IsActive   *bool  `json:"is_active,omitempty"`
	IsFocused  *bool  `json:"is_focused,omitempty"`
	IsFloating *bool  `json:"is_floating,omitempty"`
	AtStartup  *bool  `json:"at_startup,omitempty"`
}

type WindowRule struct {
	ID                       int           `json:"id"`
	Matches                  []WindowMatch `json:"matches"`
	Excludes                 []WindowMatch `json:"excludes"`
	DefaultColumnWidth       *ColumnWidth  `json:"default_column_width,omitempty"`
	OpenOnOutput             string        `json:"open_on_output,omitempty"`
	OpenOnWorkspace          string        `json:"open_on_workspace,omitempty"`
	OpenMaximized            *bool         `json:"open_maximized,omitempty"`
	OpenFullscreen           *bool         `json:"open_fullscreen,omitempty"`
	OpenFloating             *bool         `json:"open_floating,omitempty"`
	OpenFocused              *bool         `json:"open_focused,omitempty"`
	BlockOutFrom             BlockOutFrom  `json:"block_out_from,omitempty"`
	Opacity                  *float64      `json:"opacity,omitempty"`
	GeometryCornerRadius     *float64      `json:"geometry_corner_radius,omitempty"`
	ClipToGeometry           *bool         `json:"clip_to_geometry,omitempty"`
	DrawBorderWithBackground *bool         `json:"draw_border_with_background,omitempty"`
	MinWidth                 int           `json:"min_width,omitempty"`
	MaxWidth                 int           `json:"max_width,omitempty"`
	MinHeight                int           `json:"min_height,omitempty"`
	MaxHeight                int           `json:"max_height,omitempty"`
}

// Misc groups the small top-level flags. ScreenshotPath is empty while
// ScreenshotDisabled is set.
type Misc struct {
	PreferNoCSD                     bool   `json:"prefer_no_csd"`
	ScreenshotPath                  string `json:"screenshot_path"`
	ScreenshotDisabled              bool   `json:"screenshot_disabled"`
	HotkeyOverlaySkipAtStartup      bool   `json:"hotkey_overlay_skip_at_startup"`
	HotkeyOverlayHideNotBound       bool   `json:"hotkey_overlay_hide_not_bound"`
	ClipboardDisablePrimary         bool   `json:"clipboard_disable_primary"`
	XwaylandSatelliteOff            bool   `json:"xwayland_satellite_off"`
	XwaylandSatellitePath           string `json:"xwayland_satellite_path,omitempty"`
	ConfigNotificationDisableFailed bool   `json:"config_notification_disable_failed"`
}

// StartupCommand is a spawn-at-startup entry. Shell commands hold the
// whole command line in Command[0].
type StartupCommand struct {
	Command []string `json:"command"`
	Shell   bool     `json:"shell"`
}

type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Unset bool   `json:"unset"`
}

type Debug struct {
	PreviewRender                          BlockOutFrom `json:"preview_render,omitempty"`
	RenderDrmDevice                        string       `json:"render_drm_device,omitempty"`
	EnableOverlayPlanes                    bool         `json:"enable_overlay_planes"`
	DisableCursorPlane                     bool         `json:"disable_cursor_plane"`
	DisableDirectScanout                   bool         `json:"disable_direct_scanout"`
	RestrictPrimaryScanoutToMatchingFormat bool         `json:"restrict_primary_scanout_to_matching_format"`
	WaitForFrameCompletionBeforeQueueing   bool         `json:"wait_for_frame_completion_before_queueing"`
	EmulateZeroPresentationTime            bool         `json:"emulate_zero_presentation_time"`
	DisableResizeThrottling                bool         `json:"disable_resize_throttling"`
	DisableTransactions                    bool         `json:"disable_transactions"`
	KeepLaptopPanelOnWhenLidIsClosed       bool         `json:"keep_laptop_panel_on_when_lid_is_closed"`
	DisableMonitorNames                    bool         `json:"disable_monitor_names"`
	StrictNewWindowFocusPolicy             bool         `json:"strict_new_window_focus_policy"`
	HonorXdgActivationWithInvalidSerial    bool         `json:"honor_xdg_activation_with_invalid_serial"`
}

// SwitchEvents maps lid and tablet-mode switches to spawn commands
type SwitchEvents struct {
	LidOpen       []string `json:"lid_open,omitempty"`
	LidClose      []string `json:"lid_close,omitempty"`
	TabletModeOn  []string `json:"tablet_mode_on,omitempty"`
	TabletModeOff []string `json:"tablet_mode_off,omitempty"`
}

type RecentHighlight struct {
	ActiveColor  string  `json:"active_color,omitempty"`
	UrgentColor  string  `json:"urgent_color,omitempty"`
	Padding      float64 `json:"padding"`
	CornerRadius float64 `json:"corner_radius"`
}

type RecentPreviews struct {
	MaxHeight int     `json:"max_height"`
	MaxScale  float64 `json:"max_scale"`
}

type RecentWindows struct {
	Off         bool            `json:"off"`
	DebounceMs  int             `json:"debounce_ms"`
	OpenDelayMs int             `json:"open_delay_ms"`
	Highlight   RecentHighlight `json:"highlight"`
	Previews    RecentPreviews  `json:"previews"`
}

// MaxID returns the largest ID in a repeatable category, or 0
func (s *Settings) MaxID(cat Category) int {
	maxID := 0
	bump := func(id int) {
		if id > maxID {
			maxID = id
		}
	}
	switch cat {
	case CategoryOutputs:
		for _, o := range s.Outputs {
			bump(o.ID)
		}
	case CategoryWorkspaces:
		for _, w := range s.Workspaces {
			bump(w.ID)
		}
	case CategoryKeybindings:
		for _, k := range s.Keybindings {
			bump(k.ID)
		}
	case CategoryLayerRules:
		for _, r := range s.LayerRules {
			bump(r.ID)
		}
	case CategoryWindowRules:
		for _, r := range s.WindowRules {
			bump(r.ID)
		}
	}
	return maxID
}

// NextID returns a fresh ID for a new entry in a repeatable category
func (s *Settings) NextID(cat Category) int {
	return s.MaxID(cat) + 1
}

// idRefs returns pointers to every entry ID of a repeatable category
func (s *Settings) idRefs(cat Category) []*int {
	var refs []*int
	switch cat {
	case CategoryOutputs:
		for i := range s.Outputs {
			refs = append(refs, &s.Outputs[i].ID)
		}
	case CategoryWorkspaces:
		for i := range s.Workspaces {
			refs = append(refs, &s.Workspaces[i].ID)
		}
	case CategoryKeybindings:
		for i := range s.Keybindings {
			refs = append(refs, &s.Keybindings[i].ID)
		}
	case CategoryLayerRules:
		for i := range s.LayerRules {
			refs = append(refs, &s.LayerRules[i].ID)
		}
	case CategoryWindowRules:
		for i := range s.WindowRules {
			refs = append(refs, &s.WindowRules[i].ID)
		}
	}
	return refs
}

// EnsureIDs gives every entry of cat a positive ID unique within the
// category. Valid IDs are kept; zero and duplicate IDs are replaced with
// fresh ones above the current maximum. It returns how many were replaced.
func (s *Settings) EnsureIDs(cat Category) int {
	refs := s.idRefs(cat)
	seen := make(map[int]bool, len(refs))
	next := s.NextID(cat)
	fixed := 0
	for _, id := range refs {
		if *id > 0 && !seen[*id] {
			seen[*id] = true
			continue
		}
		*id = next
		seen[next] = true
		next++
		fixed++
	}
	return fixed
}

// AssignIDs numbers the entries of cat 1..N in order
func (s *Settings) AssignIDs(cat Category) {
	for i, id := range s.idRefs(cat) {
		*id = i + 1
	}
}
