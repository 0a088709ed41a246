package models

const DefaultScreenshotPath = "~/Pictures/Screenshots/Screenshot from %Y-%m-%d %H-%M-%S.png"

// Default returns the compiled-in settings used for any section that is
// absent or unreadable.
func Default() Settings {
	return Settings{
		Appearance: Appearance{
			Gaps: GapsRange.Default,
			FocusRing: Decoration{
				Enabled:       true,
				Width:         DecorationWidthRange.Default,
				ActiveColor:   "#7fc8ff",
				InactiveColor: "#505050",
			},
			Border: Decoration{
				Width:         DecorationWidthRange.Default,
				ActiveColor:   "#ffc87f",
				InactiveColor: "#505050",
				UrgentColor:   "#9b0000",
			},
		},
		Behavior: Behavior{
			DefaultColumnWidth: ColumnWidth{Value: ProportionRange.Default},
			PresetColumnWidths: DefaultPresetColumnWidths(),
		},
		Keyboard: Keyboard{
			RepeatDelay: RepeatDelayRange.Default,
			RepeatRate:  RepeatRateRange.Default,
		},
		Mouse: Mouse{ScrollFactor: ScrollFactorRange.Default},
		Touchpad: Touchpad{
			PointerDevice: PointerDevice{NaturalScroll: true},
			Tap:           true,
			ScrollFactor:  ScrollFactorRange.Default,
		},
		Animations: Animations{
			Slowdown: SlowdownRange.Default,
		},
		Cursor: Cursor{
			Theme: "default",
			Size:  CursorSizeRange.Default,
		},
		Overview: Overview{Zoom: OverviewZoomRange.Default},
		LayoutExtras: LayoutExtras{
			Shadow: Shadow{
				Softness: ShadowSoftnessRange.Default,
				Spread:   ShadowSpreadRange.Default,
				OffsetY:  5,
				Color:    "#0007",
			},
			InsertHint: InsertHint{Color: "#ffc87f80"},
		},
		Gestures: Gestures{
			DndEdgeViewScroll: EdgeScroll{
				TriggerSize: EdgeTriggerRange.Default,
				DelayMs:     EdgeDelayRange.Default,
				MaxSpeed:    EdgeSpeedRange.Default,
			},
			DndEdgeWorkspaceSwitch: EdgeScroll{
				TriggerSize: 50,
				DelayMs:     EdgeDelayRange.Default,
				MaxSpeed:    EdgeSpeedRange.Default,
			},
		},
		Misc: Misc{ScreenshotPath: DefaultScreenshotPath},
		RecentWindows: RecentWindows{
			DebounceMs:  RecentDebounceRange.Default,
			OpenDelayMs: RecentOpenDelayRange.Default,
			Highlight: RecentHighlight{
				ActiveColor: "#999999ff",
				UrgentColor: "#ff9999ff",
				Padding:     HighlightPadRange.Default,
			},
			Previews: RecentPreviews{
				MaxHeight: PreviewHeightRange.Default,
				MaxScale:  PreviewScaleRange.Default,
			},
		},
	}
}

// DefaultPresetColumnWidths is one third, one half and two thirds
func DefaultPresetColumnWidths() []ColumnWidth {
	return []ColumnWidth{{Value: 0.33333}, {Value: 0.5}, {Value: 0.66667}}
}

// DefaultKeybinding returns a binding with the compositor's defaults for
// the optional flags.
func DefaultKeybinding(id int, key, action string) Keybinding {
	return Keybinding{ID: id, Key: key, Action: action, Repeat: true, AllowInhibiting: true}
}
