package models_test

import (
	"reflect"
	"testing"

	"github.com/FrozenTear/Nirify-sub003/internal/models"
	"github.com/FrozenTear/Nirify-sub003/internal/testutil"
)

func TestCategoryFieldBijection(t *testing.T) {
	typ := reflect.TypeOf(models.Settings{})
	if typ.NumField() != models.CategoryCount {
		t.Fatalf("Settings has %d fields, want %d categories", typ.NumField(), models.CategoryCount)
	}

	seen := make(map[models.Category]string)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("category")
		cat, err := models.ParseCategory(tag)
		if err != nil {
			t.Fatalf("field %s: %v", field.Name, err)
		}
		if other, ok := seen[cat]; ok {
			t.Fatalf("category %s claimed by both %s and %s", cat, other, field.Name)
		}
		seen[cat] = field.Name
	}
	if len(seen) != models.CategoryCount {
		t.Errorf("expected every category to own a field, got %d", len(seen))
	}
}

func TestCopySectionTouchesOnlyItsField(t *testing.T) {
	src := testutil.SampleSettings()
	typ := reflect.TypeOf(src)

	for _, cat := range models.AllCategories() {
		t.Run(cat.String(), func(t *testing.T) {
			var dst models.Settings
			models.CopySection(&dst, &src, cat)

			dv := reflect.ValueOf(dst)
			sv := reflect.ValueOf(src)
			for i := 0; i < typ.NumField(); i++ {
				owned := typ.Field(i).Tag.Get("category") == cat.String()
				if owned {
					if !reflect.DeepEqual(dv.Field(i).Interface(), sv.Field(i).Interface()) {
						t.Errorf("field %s was not copied", typ.Field(i).Name)
					}
					continue
				}
				if !dv.Field(i).IsZero() {
					t.Errorf("field %s changed while copying %s", typ.Field(i).Name, cat)
				}
			}
		})
	}
}

func TestCategoryNamesAndFiles(t *testing.T) {
	names := make(map[string]bool)
	files := make(map[string]bool)
	for _, cat := range models.AllCategories() {
		if names[cat.String()] {
			t.Errorf("duplicate category name %s", cat)
		}
		if files[cat.FileName()] {
			t.Errorf("duplicate file name %s", cat.FileName())
		}
		names[cat.String()] = true
		files[cat.FileName()] = true

		parsed, err := models.ParseCategory(cat.String())
		if err != nil || parsed != cat {
			t.Errorf("ParseCategory(%q) = %v, %v", cat.String(), parsed, err)
		}
	}

	if _, err := models.ParseCategory("nope"); err == nil {
		t.Error("expected error for unknown category")
	}
	if models.Category(99).Valid() {
		t.Error("expected out-of-range category to be invalid")
	}
	if models.CategoryKeyboard.FileName() != "input/keyboard.kdl" {
		t.Errorf("unexpected keyboard file %s", models.CategoryKeyboard.FileName())
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	orig := testutil.SampleSettings()
	clone := orig.Clone()

	if !reflect.DeepEqual(orig, clone) {
		t.Fatal("clone differs from original")
	}

	clone.Outputs[0].Position.X = 999
	clone.Keybindings[0].Action = "close-window"
	clone.WindowRules[0].Matches[0].AppID = "changed"
	*clone.WindowRules[0].OpenMaximized = false
	clone.Startup[1].Command[0] = "changed"
	clone.SwitchEvents.LidClose[0] = "changed"
	clone.Animations.Overrides[0].Spring.Stiffness = 1

	if orig.Outputs[0].Position.X == 999 {
		t.Error("output position aliased")
	}
	if orig.Keybindings[0].Action == "close-window" {
		t.Error("keybindings aliased")
	}
	if orig.WindowRules[0].Matches[0].AppID == "changed" {
		t.Error("window rule matches aliased")
	}
	if !*orig.WindowRules[0].OpenMaximized {
		t.Error("window rule pointer aliased")
	}
	if orig.Startup[1].Command[0] == "changed" {
		t.Error("startup command aliased")
	}
	if orig.SwitchEvents.LidClose[0] == "changed" {
		t.Error("switch events aliased")
	}
	if orig.Animations.Overrides[0].Spring.Stiffness == 1 {
		t.Error("animation spring aliased")
	}
}

func TestNextID(t *testing.T) {
	s := testutil.SampleSettings()
	if got := s.NextID(models.CategoryKeybindings); got != 6 {
		t.Errorf("expected next keybinding id 6, got %d", got)
	}
	if got := s.NextID(models.CategoryWindowRules); got != 8 {
		t.Errorf("expected next window rule id 8, got %d", got)
	}
	empty := models.Default()
	if got := empty.NextID(models.CategoryOutputs); got != 1 {
		t.Errorf("expected 1 for empty list, got %d", got)
	}
}

func TestEnsureIDs(t *testing.T) {
	s := models.Default()
	s.Keybindings = []models.Keybinding{
		{ID: 4, Key: "Mod+A"},
		{ID: 0, Key: "Mod+B"},
		{ID: 4, Key: "Mod+C"},
		{ID: 2, Key: "Mod+D"},
	}
	if fixed := s.EnsureIDs(models.CategoryKeybindings); fixed != 2 {
		t.Fatalf("expected 2 ids replaced, got %d", fixed)
	}
	want := []int{4, 5, 6, 2}
	for i, kb := range s.Keybindings {
		if kb.ID != want[i] {
			t.Errorf("binding %s: expected id %d, got %d", kb.Key, want[i], kb.ID)
		}
	}

	s.AssignIDs(models.CategoryKeybindings)
	for i, kb := range s.Keybindings {
		if kb.ID != i+1 {
			t.Errorf("binding %s: expected id %d after assign, got %d", kb.Key, i+1, kb.ID)
		}
	}
}
