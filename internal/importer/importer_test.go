package importer

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
	"github.com/FrozenTear/Nirify-sub003/internal/testutil"
)

func hasWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func TestImportClampsOutOfRange(t *testing.T) {
	src := `
layout {
    gaps inner=-50
    focus-ring width=100
}
input {
    keyboard {
        repeat-delay 5
    }
}
`
	res := Import([]byte(src), true)
	s := res.Settings

	if s.Appearance.Gaps != models.GapsRange.Min {
		t.Errorf("expected gaps clamped to %v, got %v", models.GapsRange.Min, s.Appearance.Gaps)
	}
	if s.Appearance.FocusRing.Width != models.DecorationWidthRange.Max {
		t.Errorf("expected focus-ring width clamped to %v, got %v", models.DecorationWidthRange.Max, s.Appearance.FocusRing.Width)
	}
	if s.Keyboard.RepeatDelay != models.RepeatDelayRange.Min {
		t.Errorf("expected repeat-delay clamped to %d, got %d", models.RepeatDelayRange.Min, s.Keyboard.RepeatDelay)
	}
	if !hasWarning(res.Warnings, "out of range") {
		t.Errorf("expected a clamping warning, got %v", res.Warnings)
	}
}

func TestImportMissingFileUsesDefaults(t *testing.T) {
	res := Import(nil, false)
	if len(res.Warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %v", res.Warnings)
	}
	if len(res.Defaulted) != models.CategoryCount {
		t.Errorf("expected all %d sections defaulted, got %d", models.CategoryCount, len(res.Defaulted))
	}
	if len(res.Imported) != 0 {
		t.Errorf("expected no imported sections, got %v", res.Imported)
	}
	def := models.Default()
	if res.Settings.Appearance != def.Appearance || res.Settings.Cursor != def.Cursor {
		t.Error("expected default settings")
	}
}

func TestImportUnparsableFileUsesDefaults(t *testing.T) {
	inputs := []string{
		"layout { gaps 16",
		"output \"eDP-1\" { scale 1.5 } }",
		"binds { Mod+T { spawn \"unterminated } }",
	}
	for _, src := range inputs {
		res := Import([]byte(src), true)
		if len(res.Warnings) != 1 {
			t.Errorf("%q: expected exactly one warning, got %v", src, res.Warnings)
		}
		if len(res.Imported) != 0 {
			t.Errorf("%q: expected nothing imported, got %v", src, res.Imported)
		}
		if res.Settings.Appearance.Gaps != models.GapsRange.Default {
			t.Errorf("%q: expected default gaps", src)
		}
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	res := ImportFile(filepath.Join(dir, "missing.kdl"))
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "not found") {
		t.Errorf("expected a single not-found warning, got %v", res.Warnings)
	}

	p := testutil.WriteFile(t, dir, "config.kdl", "cursor {\n    xcursor-size 32\n}\n")
	res = ImportFile(p)
	if res.Settings.Cursor.Size != 32 {
		t.Errorf("expected cursor size 32, got %d", res.Settings.Cursor.Size)
	}
}

func TestImportUnknownNodesWarnAndContinue(t *testing.T) {
	src := `
frobnicate 1 2 3
cursor {
    xcursor-theme "Adwaita"
    sparkle true
}
prefer-no-csd
`
	res := Import([]byte(src), true)
	if res.Settings.Cursor.Theme != "Adwaita" {
		t.Errorf("expected cursor theme Adwaita, got %q", res.Settings.Cursor.Theme)
	}
	if !res.Settings.Misc.PreferNoCSD {
		t.Error("expected prefer-no-csd")
	}
	if !hasWarning(res.Warnings, `line 2: unknown node "frobnicate"`) {
		t.Errorf("expected unknown node warning with line number, got %v", res.Warnings)
	}
	if !hasWarning(res.Warnings, `unsupported setting "sparkle"`) {
		t.Errorf("expected unsupported child warning, got %v", res.Warnings)
	}
}

func TestImportIncludes(t *testing.T) {
	src := `
include "nirify/main.kdl"
include "colors.kdl"
`
	res := Import([]byte(src), true)
	if len(res.Warnings) != 1 {
		t.Fatalf("expected one warning for the foreign include, got %v", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], "colors.kdl") {
		t.Errorf("unexpected warning %q", res.Warnings[0])
	}
}

func TestImportSectionsReport(t *testing.T) {
	src := `
output "eDP-1" { scale 2.0; }
output "HDMI-A-1" { off; }
layout { gaps 8; }
spawn-at-startup "waybar"
`
	res := Import([]byte(src), true)

	counts := map[string]int{}
	for _, sc := range res.Imported {
		counts[sc.Name] = sc.Count
	}
	want := map[string]int{"outputs": 2, "appearance": 1, "startup": 1}
	for name, n := range want {
		if counts[name] != n {
			t.Errorf("%s: expected count %d, got %d", name, n, counts[name])
		}
	}
	if len(res.Imported)+len(res.Defaulted) != models.CategoryCount {
		t.Errorf("imported and defaulted must cover every section once, got %d+%d", len(res.Imported), len(res.Defaulted))
	}
	for _, name := range res.Defaulted {
		if _, ok := want[name]; ok {
			t.Errorf("%s reported as both imported and defaulted", name)
		}
	}
}

func TestImportAssignsSequentialIDs(t *testing.T) {
	src := `
window-rule /-id=40 { match app-id="firefox"; }
window-rule { match app-id="mpv"; open-floating true; }
window-rule /-id=40 { match title="Picture-in-Picture"; }
binds {
    Mod+T { spawn "alacritty"; }
    Mod+Q repeat=false { close-window; }
}
`
	res := Import([]byte(src), true)
	rules := res.Settings.WindowRules
	if len(rules) != 3 {
		t.Fatalf("expected 3 window rules, got %d", len(rules))
	}
	for i, r := range rules {
		if r.ID != i+1 {
			t.Errorf("rule %d: expected id %d, got %d", i, i+1, r.ID)
		}
	}
	if rules[1].OpenFloating == nil || !*rules[1].OpenFloating {
		t.Error("expected second rule to open floating")
	}

	binds := res.Settings.Keybindings
	if len(binds) != 2 {
		t.Fatalf("expected 2 binds, got %d", len(binds))
	}
	if binds[0].Action != `spawn "alacritty"` {
		t.Errorf("unexpected action %q", binds[0].Action)
	}
	if binds[1].Repeat {
		t.Error("expected repeat=false on Mod+Q")
	}
	if binds[1].ID != 2 {
		t.Errorf("expected bind id 2, got %d", binds[1].ID)
	}
}

func TestImportRecoversFromExtractorPanic(t *testing.T) {
	saved := kinds[KindCursor].extract
	defer func() { kinds[KindCursor].extract = saved }()
	kinds[KindCursor].extract = func(x *extractor, n *kdl.Node) {
		x.s.Cursor.Size = 99
		var m map[string]int
		m["boom"] = 1
	}

	src := "cursor { xcursor-size 48; }\nlayout { gaps 4; }\n"
	res := Import([]byte(src), true)
	if res.Settings.Cursor.Size != models.CursorSizeRange.Default {
		t.Errorf("expected cursor section restored to default, got size %d", res.Settings.Cursor.Size)
	}
	if res.Settings.Appearance.Gaps != 4 {
		t.Errorf("expected later nodes to import, got gaps %v", res.Settings.Appearance.Gaps)
	}
	if !hasWarning(res.Warnings, "cursor: skipped after internal error") {
		t.Errorf("expected panic warning, got %v", res.Warnings)
	}
}

func TestImportCategoryKeepsEmbeddedIDs(t *testing.T) {
	src := `
output "eDP-1" /-id=7 { scale 1.5; }
output "DP-1" /-id=7 { off; }
output "DP-2" { off; }
cursor { xcursor-size 40; }
`
	s, warnings, err := ImportCategory(models.CategoryOutputs, []byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := []int{s.Outputs[0].ID, s.Outputs[1].ID, s.Outputs[2].ID}
	if ids[0] != 7 || ids[1] != 8 || ids[2] != 9 {
		t.Errorf("expected ids [7 8 9], got %v", ids)
	}
	if s.Cursor.Size != models.CursorSizeRange.Default {
		t.Error("nodes of other categories must not leak into the result")
	}
	if !hasWarning(warnings, "does not belong in the outputs file") {
		t.Errorf("expected foreign node warning, got %v", warnings)
	}
	if !hasWarning(warnings, "assigned 2 missing or duplicate ids") {
		t.Errorf("expected id warning, got %v", warnings)
	}
}

func TestImportCategoryOnlyReadsItsSection(t *testing.T) {
	// keyboard.kdl holds an input node; behavior flags inside it belong elsewhere
	src := "input {\n    keyboard {\n        repeat-rate 40\n    }\n}\n"
	s, warnings, err := ImportCategory(models.CategoryKeyboard, []byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if s.Keyboard.RepeatRate != 40 {
		t.Errorf("expected repeat-rate 40, got %d", s.Keyboard.RepeatRate)
	}
	def := models.Default()
	if s.Mouse != def.Mouse || s.Behavior.FocusFollowsMouse != def.Behavior.FocusFollowsMouse {
		t.Error("other sections must keep their defaults")
	}
}

func TestImportCategoryParseError(t *testing.T) {
	_, _, err := ImportCategory(models.CategoryCursor, []byte("cursor {"))
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var perr *kdl.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *kdl.ParseError, got %T", err)
	}
	if perr.Line != 1 {
		t.Errorf("expected error on line 1, got %d", perr.Line)
	}
}

func TestManagedTable(t *testing.T) {
	seen := map[models.Category]bool{}
	for k := NodeKind(0); k < nodeKindCount; k++ {
		got, ok := KindOf(k.String())
		if !ok || got != k {
			t.Errorf("%s: KindOf round trip failed", k)
		}
		for _, c := range k.Categories() {
			seen[c] = true
		}
	}
	for _, c := range models.AllCategories() {
		if !seen[c] {
			t.Errorf("category %s is fed by no managed node", c)
		}
	}
	if IsManaged(kdl.NewNode("include", kdl.String("x.kdl"))) {
		t.Error("include must be unmanaged")
	}
	if !IsManaged(kdl.NewNode("window-rule")) {
		t.Error("window-rule must be managed")
	}
}

func TestIsOwnInclude(t *testing.T) {
	cases := map[string]bool{
		"nirify/main.kdl":                      true,
		"./nirify/main.kdl":                    true,
		"/home/u/.config/niri/nirify/main.kdl": true,
		"colors.kdl":                           false,
		"nirify/appearance.kdl":                false,
		"":                                     false,
	}
	for target, want := range cases {
		if got := IsOwnInclude(target); got != want {
			t.Errorf("IsOwnInclude(%q) = %v, want %v", target, got, want)
		}
	}
}
