package importer

import (
	"fmt"

	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

// extractor carries the settings being filled and the warnings collected
// while walking one document.
type extractor struct {
	s        *models.Settings
	warnings []string
	touched  [models.CategoryCount]bool
	keepIDs  bool
}

func newExtractor(s *models.Settings, keepIDs bool) *extractor {
	return &extractor{s: s, keepIDs: keepIDs}
}

func (x *extractor) warnf(n *kdl.Node, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if n != nil && n.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", n.Line, msg)
	}
	x.warnings = append(x.warnings, msg)
}

func (x *extractor) touch(cats ...models.Category) {
	for _, c := range cats {
		x.touched[c] = true
	}
}

// touchIf marks cat as imported when n has any of the named children
func (x *extractor) touchIf(n *kdl.Node, cat models.Category, names ...string) {
	for _, name := range names {
		if n.HasChild(name) {
			x.touched[cat] = true
			return
		}
	}
}

// run applies one node's extractor. A panic inside an extractor restores
// the sections the node feeds and becomes a warning.
func (x *extractor) run(kind NodeKind, n *kdl.Node) {
	before := x.s.Clone()
	defer func() {
		if r := recover(); r != nil {
			for _, cat := range kind.Categories() {
				models.CopySection(x.s, &before, cat)
			}
			x.warnf(n, "%s: skipped after internal error: %v", n.Name, r)
		}
	}()
	kinds[kind].extract(x, n)
}

// checkChildren warns about children the model does not cover. Those are
// lost when the node is regenerated.
func (x *extractor) checkChildren(n *kdl.Node, known ...string) {
	for _, c := range n.Children {
		found := false
		for _, k := range known {
			if c.Name == k {
				found = true
				break
			}
		}
		if !found {
			x.warnf(c, "%s: unsupported setting %q skipped", n.Name, c.Name)
		}
	}
}

// lookup finds key as a child node's first argument, falling back to an
// inline property of n. at is the node holding the value.
func lookup(n *kdl.Node, key string) (v kdl.Value, at *kdl.Node, ok bool) {
	if c := n.Child(key); c != nil {
		if v, ok := c.Arg(0); ok {
			return v, c, true
		}
		return kdl.Value{}, c, false
	}
	if v, ok := n.Prop(key); ok {
		return v, n, true
	}
	return kdl.Value{}, nil, false
}

func (x *extractor) number(n *kdl.Node, key string, dst *float64) bool {
	v, at, ok := lookup(n, key)
	if !ok {
		if at != nil {
			x.warnf(at, "%s: missing value", key)
		}
		return false
	}
	f, ok := v.AsFloat()
	if !ok {
		x.warnf(at, "%s: expected a number, got %s", key, v.Kind)
		return false
	}
	*dst = f
	return true
}

func (x *extractor) integer(n *kdl.Node, key string, dst *int) bool {
	v, at, ok := lookup(n, key)
	if !ok {
		if at != nil {
			x.warnf(at, "%s: missing value", key)
		}
		return false
	}
	i, ok := v.AsInt()
	if !ok {
		x.warnf(at, "%s: expected an integer, got %s", key, v.Kind)
		return false
	}
	*dst = int(i)
	return true
}

func (x *extractor) text(n *kdl.Node, key string, dst *string) bool {
	v, at, ok := lookup(n, key)
	if !ok {
		if at != nil {
			x.warnf(at, "%s: missing value", key)
		}
		return false
	}
	switch v.Kind {
	case kdl.KindString:
		*dst = v.Str
	case kdl.KindInt, kdl.KindFloat:
		*dst = v.Text()
	default:
		x.warnf(at, "%s: expected a string, got %s", key, v.Kind)
		return false
	}
	return true
}

// flag reads a presence flag. A bare child means true; an explicit
// boolean argument or property is honored.
func (x *extractor) flag(n *kdl.Node, key string) bool {
	if c := n.Child(key); c != nil {
		v, ok := c.Arg(0)
		if !ok {
			return true
		}
		b, ok := v.AsBool()
		if !ok {
			x.warnf(c, "%s: expected a boolean, got %s", key, v.Kind)
			return true
		}
		return b
	}
	if v, ok := n.Prop(key); ok {
		b, ok := v.AsBool()
		if !ok {
			x.warnf(n, "%s: expected a boolean, got %s", key, v.Kind)
			return false
		}
		return b
	}
	return false
}

func (x *extractor) optBool(n *kdl.Node, key string) *bool {
	if !n.HasChild(key) {
		if _, ok := n.Prop(key); !ok {
			return nil
		}
	}
	return models.Ptr(x.flag(n, key))
}

func (x *extractor) optNumber(n *kdl.Node, key string) *float64 {
	var f float64
	if !x.number(n, key, &f) {
		return nil
	}
	return &f
}

func enumValue[E ~string](x *extractor, n *kdl.Node, key string, dst *E, allowed []E) {
	var s string
	if !x.text(n, key, &s) {
		return
	}
	e, ok := models.ParseEnum(s, allowed)
	if !ok {
		x.warnf(n, "%s: unknown value %q, expected one of %v", key, s, models.EnumStrings(allowed))
		return
	}
	*dst = e
}

// stringArgs returns every positional argument as a string
func (x *extractor) stringArgs(n *kdl.Node) []string {
	var out []string
	for _, a := range n.Args {
		switch a.Kind {
		case kdl.KindString:
			out = append(out, a.Str)
		case kdl.KindInt, kdl.KindFloat, kdl.KindBool:
			out = append(out, a.Text())
		default:
			x.warnf(n, "%s: skipped %s argument", n.Name, a.Kind)
		}
	}
	return out
}

// entityID returns the embedded /-id of a repeatable node, or 0 when IDs
// are being assigned fresh.
func (x *extractor) entityID(n *kdl.Node) int {
	if !x.keepIDs {
		return 0
	}
	v, ok := n.HiddenProp("id")
	if !ok {
		return 0
	}
	id, ok := v.AsInt()
	if !ok || id <= 0 {
		return 0
	}
	return int(id)
}

// columnWidth reads `proportion X` or `fixed X` from n
func (x *extractor) columnWidth(n *kdl.Node) (models.ColumnWidth, bool) {
	var w models.ColumnWidth
	if n.HasChild("fixed") {
		w.Fixed = true
		return w, x.number(n, "fixed", &w.Value)
	}
	if n.HasChild("proportion") {
		return w, x.number(n, "proportion", &w.Value)
	}
	return w, false
}

// widthList reads a block of proportion/fixed children in order
func (x *extractor) widthList(n *kdl.Node) []models.ColumnWidth {
	var out []models.ColumnWidth
	for _, c := range n.Children {
		var w models.ColumnWidth
		switch c.Name {
		case "proportion":
		case "fixed":
			w.Fixed = true
		default:
			x.warnf(c, "%s: expected proportion or fixed, got %q", n.Name, c.Name)
			continue
		}
		v, ok := c.Arg(0)
		f, isNum := v.AsFloat()
		if !ok || !isNum {
			x.warnf(c, "%s: expected a number", c.Name)
			continue
		}
		w.Value = f
		out = append(out, w)
	}
	return out
}
