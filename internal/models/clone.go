package models

// Clone returns a deep copy. Snapshots taken with Clone never alias the
// slices or pointers of the original.
func (s *Settings) Clone() Settings {
	out := *s
	for _, cat := range AllCategories() {
		CopySection(&out, s, cat)
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneOutputs(in []Output) []Output {
	out := cloneSlice(in)
	for i := range out {
		out[i].Position = clonePtr(out[i].Position)
	}
	return out
}

func (a Animations) clone() Animations {
	a.Overrides = cloneSlice(a.Overrides)
	for i := range a.Overrides {
		a.Overrides[i].Spring = clonePtr(a.Overrides[i].Spring)
		a.Overrides[i].Easing = clonePtr(a.Overrides[i].Easing)
	}
	return a
}

func cloneLayerMatches(in []LayerMatch) []LayerMatch {
	out := cloneSlice(in)
	for i := range out {
		out[i].AtStartup = clonePtr(out[i].AtStartup)
	}
	return out
}

func cloneLayerRules(in []LayerRule) []LayerRule {
	out := cloneSlice(in)
	for i := range out {
		r := &out[i]
		r.Matches = cloneLayerMatches(r.Matches)
		r.Excludes = cloneLayerMatches(r.Excludes)
		r.Opacity = clonePtr(r.Opacity)
		r.GeometryCornerRadius = clonePtr(r.GeometryCornerRadius)
	}
	return out
}

func cloneWindowMatches(in []WindowMatch) []WindowMatch {
	out := cloneSlice(in)
	for i := range out {
		m := &out[i]
		m.IsActive = clonePtr(m.IsActive)
		m.IsFocused = clonePtr(m.IsFocused)
		m.IsFloating = clonePtr(m.IsFloating)
		m.AtStartup = clonePtr(m.AtStartup)
	}
	return out
}

func cloneWindowRules(in []WindowRule) []WindowRule {
	out := cloneSlice(in)
	for i := range out {
		r := &out[i]
		r.Matches = cloneWindowMatches(r.Matches)
		r.Excludes = cloneWindowMatches(r.Excludes)
		r.DefaultColumnWidth = clonePtr(r.DefaultColumnWidth)
		r.OpenMaximized = clonePtr(r.OpenMaximized)
		r.OpenFullscreen = clonePtr(r.OpenFullscreen)
		r.OpenFloating = clonePtr(r.OpenFloating)
		r.OpenFocused = clonePtr(r.OpenFocused)
		r.Opacity = clonePtr(r.Opacity)
		r.GeometryCornerRadius = clonePtr(r.GeometryCornerRadius)
		r.ClipToGeometry = clonePtr(r.ClipToGeometry)
		r.DrawBorderWithBackground = clonePtr(r.DrawBorderWithBackground)
	}
	return out
}

func cloneStartup(in []StartupCommand) []StartupCommand {
	out := cloneSlice(in)
	for i := range out {
		out[i].Command = cloneSlice(out[i].Command)
	}
	return out
}

func (e SwitchEvents) clone() SwitchEvents {
	return SwitchEvents{
		LidOpen:       cloneSlice(e.LidOpen),
		LidClose:      cloneSlice(e.LidClose),
		TabletModeOn:  cloneSlice(e.TabletModeOn),
		TabletModeOff: cloneSlice(e.TabletModeOff),
	}
}

// Ptr returns a pointer to v, for optional fields
func Ptr[T any](v T) *T {
	return &v
}
