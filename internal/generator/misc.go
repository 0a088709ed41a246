package generator

import (
	"github.com/FrozenTear/Nirify-sub003/internal/importer"
	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

// misc emits several small top-level nodes; a node whose settings are all
// unset is left out entirely.
func misc(s *models.Settings) []*kdl.Node {
	m := s.Misc
	var nodes []*kdl.Node
	add := func(n *kdl.Node) {
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	add(flag("prefer-no-csd", m.PreferNoCSD))
	switch {
	case m.ScreenshotDisabled:
		add(kdl.NewNode("screenshot-path", kdl.Null()))
	case m.ScreenshotPath != "":
		add(str("screenshot-path", m.ScreenshotPath))
	}
	if m.HotkeyOverlaySkipAtStartup || m.HotkeyOverlayHideNotBound {
		add(block("hotkey-overlay",
			flag("skip-at-startup", m.HotkeyOverlaySkipAtStartup),
			flag("hide-not-bound", m.HotkeyOverlayHideNotBound),
		))
	}
	if m.ClipboardDisablePrimary {
		add(block("clipboard", kdl.NewNode("disable-primary")))
	}
	if m.XwaylandSatelliteOff || m.XwaylandSatellitePath != "" {
		add(block("xwayland-satellite",
			flag("off", m.XwaylandSatelliteOff),
			str("path", m.XwaylandSatellitePath),
		))
	}
	if m.ConfigNotificationDisableFailed {
		add(block("config-notification", kdl.NewNode("disable-failed")))
	}
	return nodes
}

func startup(s *models.Settings) []*kdl.Node {
	var nodes []*kdl.Node
	for _, c := range s.Startup {
		if len(c.Command) == 0 {
			continue
		}
		if c.Shell {
			nodes = append(nodes, kdl.NewNode("spawn-sh-at-startup", kdl.String(c.Command[0])))
			continue
		}
		nodes = append(nodes, strArgs("spawn-at-startup", c.Command))
	}
	return nodes
}

func environment(s *models.Settings) []*kdl.Node {
	if len(s.Environment) == 0 {
		return nil
	}
	env := block("environment")
	for _, v := range s.Environment {
		if v.Unset {
			env.Add(kdl.NewNode(v.Name, kdl.Null()))
			continue
		}
		env.Add(kdl.NewNode(v.Name, kdl.String(v.Value)))
	}
	return []*kdl.Node{env}
}

func debug(s *models.Settings) []*kdl.Node {
	d := s.Debug
	n := block("debug",
		enum("preview-render", d.PreviewRender),
		str("render-drm-device", d.RenderDrmDevice),
	)
	for _, name := range importer.DebugFlagNames() {
		n.Add(flag(name, *importer.DebugFlag(&d, name)))
	}
	return []*kdl.Node{n}
}

func switchEvents(s *models.Settings) []*kdl.Node {
	e := s.SwitchEvents
	return []*kdl.Node{block("switch-events",
		switchAction("lid-open", e.LidOpen),
		switchAction("lid-close", e.LidClose),
		switchAction("tablet-mode-on", e.TabletModeOn),
		switchAction("tablet-mode-off", e.TabletModeOff),
	)}
}

func switchAction(name string, cmd []string) *kdl.Node {
	if len(cmd) == 0 {
		return nil
	}
	return block(name, strArgs("spawn", cmd))
}
