// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

// SampleSettings returns settings with every section set away from its
// defaults, using only values that survive a generate/import cycle.
func SampleSettings() models.Settings {
	s := models.Default()

	s.Appearance = models.Appearance{
		Gaps: 12,
		FocusRing: models.Decoration{
			Enabled:       true,
			Width:         3,
			ActiveColor:   "#88c0d0",
			InactiveColor: "#4c566a",
			UrgentColor:   "#bf616a",
		},
		Border: models.Decoration{
			Enabled:       true,
			Width:         2.5,
			ActiveColor:   "#a3be8c",
			InactiveColor: "#3b4252",
			UrgentColor:   "#d08770",
		},
		BackgroundColor: "#2e3440",
	}

	s.Behavior = models.Behavior{
		FocusFollowsMouse:         true,
		FocusFollowsMaxScroll:     "25%",
		WarpMouseToFocus:          true,
		WorkspaceAutoBackAndForth: true,
		DisablePowerKeyHandling:   true,
		ModKey:                    models.ModKeyAlt,
		ModKeyNested:              models.ModKeySuper,
		CenterFocusedColumn:       models.CenterColumnOnOverflow,
		AlwaysCenterSingleColumn:  true,
		EmptyWorkspaceAboveFirst:  true,
		DefaultColumnWidth:        models.ColumnWidth{Fixed: true, Value: 1200},
		PresetColumnWidths:        []models.ColumnWidth{{Value: 0.25}, {Value: 0.75}, {Fixed: true, Value: 640}},
	}

	s.Keyboard = models.Keyboard{
		XkbLayout:   "us,de",
		XkbVariant:  "colemak,",
		XkbOptions:  "grp:win_space_toggle,compose:ralt",
		XkbModel:    "pc105",
		XkbRules:    "evdev",
		RepeatDelay: 300,
		RepeatRate:  50,
		TrackLayout: models.TrackLayoutWindow,
		Numlock:     true,
	}

	s.Mouse = models.Mouse{
		PointerDevice: models.PointerDevice{
			NaturalScroll: true,
			AccelSpeed:    -0.25,
			AccelProfile:  models.AccelProfileFlat,
			ScrollMethod:  models.ScrollMethodOnButtonDown,
		},
		ScrollFactor: 1.5,
	}
	s.Touchpad = models.Touchpad{
		PointerDevice: models.PointerDevice{
			NaturalScroll:   true,
			MiddleEmulation: true,
			AccelSpeed:      0.2,
			AccelProfile:    models.AccelProfileAdaptive,
			ScrollMethod:    models.ScrollMethodTwoFinger,
		},
		Tap:                     true,
		Dwt:                     true,
		Dwtp:                    true,
		DragLock:                true,
		DisabledOnExternalMouse: true,
		ClickMethod:             models.ClickMethodClickfinger,
		TapButtonMap:            models.TapButtonMapLeftMiddleRight,
		ScrollFactor:            0.5,
	}
	s.Trackpoint = models.Trackpoint{PointerDevice: models.PointerDevice{Off: true, AccelSpeed: 0.5}}
	s.Trackball = models.Trackball{PointerDevice: models.PointerDevice{LeftHanded: true, ScrollMethod: models.ScrollMethodEdge}}
	s.Tablet = models.Tablet{MapToOutput: "eDP-1", LeftHanded: true}
	s.Touch = models.Touch{Off: true, MapToOutput: "eDP-1"}

	s.Outputs = []models.Output{
		{
			ID:             1,
			Name:           "eDP-1",
			Mode:           "2560x1600@165.000",
			Scale:          1.25,
			Transform:      models.TransformNormal,
			Position:       &models.Position{X: 0, Y: 0},
			VRR:            models.VRROnDemand,
			FocusAtStartup: true,
			BackdropColor:  "#001100",
		},
		{ID: 4, Name: "HDMI-A-1", Off: true},
	}

	s.Animations = models.Animations{
		Slowdown: 2,
		Overrides: []models.AnimationOverride{
			{Name: "workspace-switch", Spring: &models.Spring{DampingRatio: 1, Stiffness: 1000, Epsilon: 0.0001}},
			{Name: "window-open", Easing: &models.Easing{DurationMs: 200, Curve: models.CurveEaseOutExpo}},
			{Name: "window-close", Off: true},
		},
	}

	s.Cursor = models.Cursor{Theme: "Adwaita", Size: 32, HideWhenTyping: true, HideAfterInactiveMs: 5000}
	s.Overview = models.Overview{Zoom: 0.4, BackdropColor: "#262626", WorkspaceShadowOff: true}

	s.Workspaces = []models.Workspace{
		{ID: 1, Name: "browser", OpenOnOutput: "eDP-1"},
		{ID: 2, Name: "chat"},
	}

	s.Keybindings = []models.Keybinding{
		models.DefaultKeybinding(1, "Mod+T", `spawn "alacritty"`),
		{ID: 2, Key: "XF86AudioRaiseVolume", Action: `spawn-sh "wpctl set-volume @DEFAULT_AUDIO_SINK@ 0.1+"`, Repeat: true, AllowWhenLocked: true, AllowInhibiting: true},
		{ID: 3, Key: "Mod+Shift+E", Action: `quit skip-confirmation=true`, AllowInhibiting: false, CooldownMs: 150, HotkeyOverlayTitle: "Quit"},
		{ID: 5, Key: "Mod+1", Action: `focus-workspace 1`, Repeat: true, AllowInhibiting: true, HideFromOverlay: true},
	}

	s.LayoutExtras = models.LayoutExtras{
		Shadow: models.Shadow{
			On:               true,
			Softness:         40,
			Spread:           10,
			OffsetX:          -2,
			OffsetY:          8,
			DrawBehindWindow: true,
			Color:            "#00000070",
			InactiveColor:    "#00000040",
		},
		Struts:              models.Struts{Left: 8, Right: 8, Top: 4, Bottom: 0},
		InsertHint:          models.InsertHint{Color: "#ffc87f80"},
		PresetWindowHeights: []models.ColumnWidth{{Value: 0.5}, {Fixed: true, Value: 720}},
	}

	s.Gestures = models.Gestures{
		HotCornersOff:          true,
		DndEdgeViewScroll:      models.EdgeScroll{TriggerSize: 40, DelayMs: 50, MaxSpeed: 2000},
		DndEdgeWorkspaceSwitch: models.EdgeScroll{TriggerSize: 60, DelayMs: 120, MaxSpeed: 1000},
	}

	s.LayerRules = []models.LayerRule{
		{
			ID:                   1,
			Matches:              []models.LayerMatch{{Namespace: "^notifications$"}},
			BlockOutFrom:         models.BlockOutScreencast,
			Opacity:              models.Ptr(0.9),
			GeometryCornerRadius: models.Ptr(8.0),
			ShadowOn:             true,
		},
		{
			ID:                  2,
			Matches:             []models.LayerMatch{{Namespace: "^wallpaper$", AtStartup: models.Ptr(true)}},
			Excludes:            []models.LayerMatch{{Namespace: "^swww$"}},
			PlaceWithinBackdrop: true,
			BabaIsFloat:         true,
		},
	}

	s.WindowRules = []models.WindowRule{
		{
			ID:                   1,
			Matches:              []models.WindowMatch{{AppID: `^org\.gnome\.`, IsFloating: models.Ptr(false)}},
			Excludes:             []models.WindowMatch{{Title: "Preferences"}},
			DefaultColumnWidth:   &models.ColumnWidth{Value: 0.6},
			OpenOnWorkspace:      "browser",
			OpenMaximized:        models.Ptr(true),
			OpenFocused:          models.Ptr(false),
			GeometryCornerRadius: models.Ptr(12.0),
			ClipToGeometry:       models.Ptr(true),
			MinWidth:             400,
			MaxHeight:            1200,
		},
		{
			ID:                       7,
			Matches:                  []models.WindowMatch{{AppID: "firefox", Title: "Picture-in-Picture", AtStartup: models.Ptr(true)}},
			OpenOnOutput:             "HDMI-A-1",
			OpenFloating:             models.Ptr(true),
			OpenFullscreen:           models.Ptr(false),
			BlockOutFrom:             models.BlockOutScreenCapture,
			Opacity:                  models.Ptr(0.85),
			DrawBorderWithBackground: models.Ptr(false),
		},
	}

	s.Misc = models.Misc{
		PreferNoCSD:                     true,
		ScreenshotPath:                  "~/Pictures/shot-%Y%m%d.png",
		HotkeyOverlaySkipAtStartup:      true,
		HotkeyOverlayHideNotBound:       true,
		ClipboardDisablePrimary:         true,
		XwaylandSatellitePath:           "/usr/local/bin/xwayland-satellite",
		ConfigNotificationDisableFailed: true,
	}

	s.Startup = []models.StartupCommand{
		{Command: []string{"waybar"}},
		{Command: []string{"swaybg", "-i", "/home/me/wall.png"}},
		{Command: []string{"notify-send hello && echo done"}, Shell: true},
	}

	s.Environment = []models.EnvVar{
		{Name: "QT_QPA_PLATFORM", Value: "wayland"},
		{Name: "DISPLAY", Unset: true},
	}

	s.Debug = models.Debug{
		PreviewRender:        models.BlockOutScreencast,
		RenderDrmDevice:      "/dev/dri/renderD129",
		EnableOverlayPlanes:  true,
		DisableDirectScanout: true,
		DisableMonitorNames:  true,
	}

	s.SwitchEvents = models.SwitchEvents{
		LidClose:     []string{"systemctl", "suspend"},
		TabletModeOn: []string{"bash", "-c", "wvkbd-mobintl &"},
	}

	s.RecentWindows = models.RecentWindows{
		DebounceMs:  500,
		OpenDelayMs: 100,
		Highlight: models.RecentHighlight{
			ActiveColor:  "#ffffffff",
			UrgentColor:  "#ff0000ff",
			Padding:      20,
			CornerRadius: 6,
		},
		Previews: models.RecentPreviews{MaxHeight: 360, MaxScale: 0.4},
	}

	return s
}

// WriteFile writes content below dir, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
