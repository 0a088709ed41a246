// Package generator renders settings sections as canonical host config
// text. Each category has one pure function; the importer's extractor for
// the same nodes is its inverse.
package generator

import (
	"math"
	"strings"

	"github.com/FrozenTear/Nirify-sub003/internal/constants"
	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

type nodesFunc func(s *models.Settings) []*kdl.Node

var generators = [models.CategoryCount]nodesFunc{
	models.CategoryAppearance:    appearance,
	models.CategoryBehavior:      behavior,
	models.CategoryKeyboard:      keyboard,
	models.CategoryMouse:         mouse,
	models.CategoryTouchpad:      touchpad,
	models.CategoryTrackpoint:    trackpoint,
	models.CategoryTrackball:     trackball,
	models.CategoryTablet:        tablet,
	models.CategoryTouch:         touch,
	models.CategoryOutputs:       outputs,
	models.CategoryAnimations:    animations,
	models.CategoryCursor:        cursor,
	models.CategoryOverview:      overview,
	models.CategoryWorkspaces:    workspaces,
	models.CategoryKeybindings:   keybindings,
	models.CategoryLayoutExtras:  layoutExtras,
	models.CategoryGestures:      gestures,
	models.CategoryLayerRules:    layerRules,
	models.CategoryWindowRules:   windowRules,
	models.CategoryMisc:          misc,
	models.CategoryStartup:       startup,
	models.CategoryEnvironment:   environment,
	models.CategoryDebug:         debug,
	models.CategorySwitchEvents:  switchEvents,
	models.CategoryRecentWindows: recentWindows,
}

// Nodes returns the top-level nodes for one category
func Nodes(cat models.Category, s *models.Settings) []*kdl.Node {
	if !cat.Valid() {
		return nil
	}
	return generators[cat](s)
}

// Generate renders one category file, header included. Output is
// byte-identical for identical input.
func Generate(cat models.Category, s *models.Settings) string {
	var b strings.Builder
	b.WriteString(constants.GeneratedHeader)
	b.WriteString("\n\n")
	b.WriteString(kdl.Format(Nodes(cat, s)))
	return b.String()
}

// GenerateMain renders main.kdl, which includes every category file in
// the order given.
func GenerateMain(cats []models.Category) string {
	nodes := make([]*kdl.Node, 0, len(cats))
	for _, c := range cats {
		nodes = append(nodes, kdl.NewNode("include", kdl.String(c.FileName())))
	}
	return constants.GeneratedHeader + "\n\n" + kdl.Format(nodes)
}

// node helpers; the optional ones return nil so Add skips them

func num(name string, f float64) *kdl.Node {
	return kdl.NewNode(name, kdl.Float(f))
}

func integer(name string, i int) *kdl.Node {
	return kdl.NewNode(name, kdl.Int(int64(i)))
}

func posInt(name string, i int) *kdl.Node {
	if i <= 0 {
		return nil
	}
	return integer(name, i)
}

func str(name, v string) *kdl.Node {
	if v == "" {
		return nil
	}
	return kdl.NewNode(name, kdl.String(v))
}

func flag(name string, on bool) *kdl.Node {
	if !on {
		return nil
	}
	return kdl.NewNode(name)
}

// boolArg is flag for settings the compositor expects as `name true`
func boolArg(name string, on bool) *kdl.Node {
	if !on {
		return nil
	}
	return kdl.NewNode(name, kdl.Bool(true))
}

func enum[E ~string](name string, v E) *kdl.Node {
	return str(name, string(v))
}

func optBool(name string, v *bool) *kdl.Node {
	if v == nil {
		return nil
	}
	return kdl.NewNode(name, kdl.Bool(*v))
}

func optNum(name string, v *float64) *kdl.Node {
	if v == nil {
		return nil
	}
	return num(name, *v)
}

func strArgs(name string, args []string) *kdl.Node {
	n := kdl.NewNode(name)
	for _, a := range args {
		n.Args = append(n.Args, kdl.String(a))
	}
	return n
}

// block returns a node with a (possibly empty) child block
func block(name string, children ...*kdl.Node) *kdl.Node {
	return kdl.NewNode(name).Add(children...)
}

// sizeValue writes whole pixel sizes as integers, which the compositor
// requires for fixed widths.
func sizeValue(f float64) kdl.Value {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return kdl.Int(int64(f))
	}
	return kdl.Float(f)
}

func columnWidth(name string, w models.ColumnWidth) *kdl.Node {
	return block(name, widthNode(w))
}

func widthNode(w models.ColumnWidth) *kdl.Node {
	if w.Fixed {
		return kdl.NewNode("fixed", sizeValue(w.Value))
	}
	return num("proportion", w.Value)
}

func widthList(name string, ws []models.ColumnWidth) *kdl.Node {
	n := block(name)
	for _, w := range ws {
		n.Add(widthNode(w))
	}
	return n
}

func withID(n *kdl.Node, id int) *kdl.Node {
	if id > 0 {
		n.WithHidden("id", kdl.Int(int64(id)))
	}
	return n
}
