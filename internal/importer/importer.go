// Package importer turns host config text into typed settings.
package importer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/FrozenTear/Nirify-sub003/internal/constants"
	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

// SectionCount names an imported section and how many entries it holds.
// Single-record sections always count 1.
type SectionCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ImportResult is the report of one host config import
type ImportResult struct {
	Settings  models.Settings `json:"-"`
	Imported  []SectionCount  `json:"imported_sections"`
	Defaulted []string        `json:"defaulted_sections"`
	Warnings  []string        `json:"warnings"`
}

// Import builds settings from host config text. It never fails: a missing
// or unparsable file yields the defaults and exactly one warning.
func Import(text []byte, exists bool) ImportResult {
	if !exists {
		return defaultResult("host config not found, using defaults")
	}
	doc, err := kdl.Parse(text)
	if err != nil {
		return defaultResult(fmt.Sprintf("host config could not be parsed, using defaults: %v", err))
	}

	s := models.Default()
	x := newExtractor(&s, false)
	for _, n := range doc.Nodes {
		kind, ok := KindOf(n.Name)
		if !ok {
			x.unmanaged(n)
			continue
		}
		x.run(kind, n)
	}
	for _, cat := range models.AllCategories() {
		if cat.Repeatable() {
			s.AssignIDs(cat)
		}
	}
	for _, c := range s.Clamp() {
		x.warnings = append(x.warnings, c.String())
	}

	res := ImportResult{Settings: s, Warnings: x.warnings}
	for _, cat := range models.AllCategories() {
		if x.touched[cat] {
			res.Imported = append(res.Imported, SectionCount{Name: cat.String(), Count: sectionCount(&s, cat)})
		} else {
			res.Defaulted = append(res.Defaulted, cat.String())
		}
	}
	return res
}

// ImportFile reads and imports the host config at p
func ImportFile(p string) ImportResult {
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return Import(nil, false)
	}
	if err != nil {
		return defaultResult(fmt.Sprintf("host config could not be read, using defaults: %v", err))
	}
	return Import(data, true)
}

// ImportCategory parses one generated category file. Only cat's section
// of the returned settings is read from text; every other section holds
// its default. The error is non-nil only when text is not a valid
// document.
func ImportCategory(cat models.Category, text []byte) (models.Settings, []string, error) {
	out := models.Default()
	if !cat.Valid() {
		return out, nil, fmt.Errorf("invalid category %d", int(cat))
	}
	doc, err := kdl.Parse(text)
	if err != nil {
		return out, nil, err
	}

	work := models.Default()
	x := newExtractor(&work, true)
	for _, n := range doc.Nodes {
		kind, ok := KindOf(n.Name)
		switch {
		case ok && kind.Feeds(cat):
			x.run(kind, n)
		case ok:
			x.warnf(n, "%s: does not belong in the %s file, ignored", n.Name, cat)
		default:
			x.warnf(n, "unknown node %q ignored", n.Name)
		}
	}

	models.CopySection(&out, &work, cat)
	if cat.Repeatable() {
		if fixed := out.EnsureIDs(cat); fixed > 0 {
			x.warnings = append(x.warnings, fmt.Sprintf("%s: assigned %d missing or duplicate ids", cat, fixed))
		}
	}
	for _, c := range out.Clamp() {
		x.warnings = append(x.warnings, c.String())
	}
	return out, x.warnings, nil
}

func defaultResult(warning string) ImportResult {
	res := ImportResult{Settings: models.Default(), Warnings: []string{warning}}
	for _, cat := range models.AllCategories() {
		res.Defaulted = append(res.Defaulted, cat.String())
	}
	return res
}

// unmanaged reports a top-level node the importer does not read. Our own
// include directive is expected and stays silent.
func (x *extractor) unmanaged(n *kdl.Node) {
	if n.Name != "include" {
		x.warnf(n, "unknown node %q skipped", n.Name)
		return
	}
	target, _ := firstString(n)
	if IsOwnInclude(target) {
		return
	}
	x.warnf(n, "include %q not followed, its settings are not imported", target)
}

// IsOwnInclude reports whether an include target points at the generated
// main file.
func IsOwnInclude(target string) bool {
	if target == "" {
		return false
	}
	clean := path.Clean(strings.ReplaceAll(target, "\\", "/"))
	return strings.HasSuffix(clean, constants.DirName+"/"+constants.MainFileName)
}

func sectionCount(s *models.Settings, cat models.Category) int {
	switch cat {
	case models.CategoryOutputs:
		return len(s.Outputs)
	case models.CategoryWorkspaces:
		return len(s.Workspaces)
	case models.CategoryKeybindings:
		return len(s.Keybindings)
	case models.CategoryLayerRules:
		return len(s.LayerRules)
	case models.CategoryWindowRules:
		return len(s.WindowRules)
	case models.CategoryStartup:
		return len(s.Startup)
	case models.CategoryEnvironment:
		return len(s.Environment)
	}
	return 1
}
