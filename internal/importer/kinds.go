package importer

import (
	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

// NodeKind is a top-level node the settings app owns. The same table
// drives import and the smart merge, so the two can never disagree about
// which nodes are managed.
type NodeKind int

const (
	KindInput NodeKind = iota
	KindOutput
	KindLayout
	KindPreferNoCSD
	KindScreenshotPath
	KindHotkeyOverlay
	KindClipboard
	KindXwaylandSatellite
	KindConfigNotification
	KindSpawnAtStartup
	KindSpawnShAtStartup
	KindEnvironment
	KindCursor
	KindAnimations
	KindWindowRule
	KindLayerRule
	KindBinds
	KindSwitchEvents
	KindWorkspace
	KindGestures
	KindDebug
	KindOverview
	KindRecentWindows

	nodeKindCount
)

type extractFunc func(x *extractor, n *kdl.Node)

type kindSpec struct {
	name       string
	categories []models.Category
	extract    extractFunc
}

var kinds = [nodeKindCount]kindSpec{
	KindInput: {"input", []models.Category{
		models.CategoryKeyboard, models.CategoryMouse, models.CategoryTouchpad,
		models.CategoryTrackpoint, models.CategoryTrackball, models.CategoryTablet,
		models.CategoryTouch, models.CategoryBehavior,
	}, extractInput},
	KindOutput: {"output", []models.Category{models.CategoryOutputs}, extractOutput},
	KindLayout: {"layout", []models.Category{
		models.CategoryAppearance, models.CategoryBehavior, models.CategoryLayoutExtras,
	}, extractLayout},
	KindPreferNoCSD:        {"prefer-no-csd", []models.Category{models.CategoryMisc}, extractPreferNoCSD},
	KindScreenshotPath:     {"screenshot-path", []models.Category{models.CategoryMisc}, extractScreenshotPath},
	KindHotkeyOverlay:      {"hotkey-overlay", []models.Category{models.CategoryMisc}, extractHotkeyOverlay},
	KindClipboard:          {"clipboard", []models.Category{models.CategoryMisc}, extractClipboard},
	KindXwaylandSatellite:  {"xwayland-satellite", []models.Category{models.CategoryMisc}, extractXwaylandSatellite},
	KindConfigNotification: {"config-notification", []models.Category{models.CategoryMisc}, extractConfigNotification},
	KindSpawnAtStartup:     {"spawn-at-startup", []models.Category{models.CategoryStartup}, extractSpawn},
	KindSpawnShAtStartup:   {"spawn-sh-at-startup", []models.Category{models.CategoryStartup}, extractSpawnSh},
	KindEnvironment:        {"environment", []models.Category{models.CategoryEnvironment}, extractEnvironment},
	KindCursor:             {"cursor", []models.Category{models.CategoryCursor}, extractCursor},
	KindAnimations:         {"animations", []models.Category{models.CategoryAnimations}, extractAnimations},
	KindWindowRule:         {"window-rule", []models.Category{models.CategoryWindowRules}, extractWindowRule},
	KindLayerRule:          {"layer-rule", []models.Category{models.CategoryLayerRules}, extractLayerRule},
	KindBinds:              {"binds", []models.Category{models.CategoryKeybindings}, extractBinds},
	KindSwitchEvents:       {"switch-events", []models.Category{models.CategorySwitchEvents}, extractSwitchEvents},
	KindWorkspace:          {"workspace", []models.Category{models.CategoryWorkspaces}, extractWorkspace},
	KindGestures:           {"gestures", []models.Category{models.CategoryGestures}, extractGestures},
	KindDebug:              {"debug", []models.Category{models.CategoryDebug}, extractDebug},
	KindOverview:           {"overview", []models.Category{models.CategoryOverview}, extractOverview},
	KindRecentWindows:      {"recent-windows", []models.Category{models.CategoryRecentWindows}, extractRecentWindows},
}

var kindsByName = func() map[string]NodeKind {
	m := make(map[string]NodeKind, nodeKindCount)
	for i := range kinds {
		m[kinds[i].name] = NodeKind(i)
	}
	return m
}()

func (k NodeKind) String() string {
	if k < 0 || k >= nodeKindCount {
		return "unknown"
	}
	return kinds[k].name
}

// Categories lists the categories a node of this kind feeds
func (k NodeKind) Categories() []models.Category {
	if k < 0 || k >= nodeKindCount {
		return nil
	}
	return kinds[k].categories
}

// Feeds reports whether this kind contributes to cat
func (k NodeKind) Feeds(cat models.Category) bool {
	for _, c := range k.Categories() {
		if c == cat {
			return true
		}
	}
	return false
}

// KindOf classifies a top-level node name
func KindOf(name string) (NodeKind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// IsManaged reports whether a top-level node is owned by the settings app
func IsManaged(n *kdl.Node) bool {
	_, ok := KindOf(n.Name)
	return ok
}

// ManagedNames returns every managed top-level node name in table order
func ManagedNames() []string {
	names := make([]string, nodeKindCount)
	for i := range kinds {
		names[i] = kinds[i].name
	}
	return names
}
