package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateOutput    ConflictType = "duplicate_output"
	ConflictDuplicateWorkspace ConflictType = "duplicate_workspace"
	ConflictDuplicateKey       ConflictType = "duplicate_key"
	ConflictInvalidRegex       ConflictType = "invalid_regex"
	ConflictUnknownOutput      ConflictType = "unknown_output"
	ConflictEmptyAction        ConflictType = "empty_action"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict is one problem inside the managed settings
type Conflict struct {
	Type        ConflictType    `json:"type"`
	Severity    Severity        `json:"severity"`
	Category    models.Category `json:"category"`
	Description string          `json:"description"`
	Items       []string        `json:"items,omitempty"`
	IDs         []int           `json:"ids,omitempty"`
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict `json:"conflicts"`
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// HasErrors ignores warnings
func (r *Result) HasErrors() bool {
	for _, c := range r.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", c.Severity, c.Category, c.Description)
	}
	return b.String()
}

func (r *Result) add(c Conflict) {
	if c.Severity == "" {
		c.Severity = SeverityError
	}
	r.Conflicts = append(r.Conflicts, c)
}

// Validate checks the settings for conflicts the compositor would reject
// or silently resolve.
func Validate(s *models.Settings) Result {
	result := Result{Conflicts: []Conflict{}}
	checkOutputs(&result, s)
	checkWorkspaces(&result, s)
	checkKeybindings(&result, s)
	checkWindowRules(&result, s)
	checkLayerRules(&result, s)
	return result
}

// duplicates groups ids by key and returns the keys seen more than once
// in sorted order.
func duplicates(keys []string, ids []int) ([]string, map[string][]int) {
	seen := make(map[string][]int)
	for i, k := range keys {
		if k == "" {
			continue
		}
		seen[k] = append(seen[k], ids[i])
	}
	var dups []string
	for k, v := range seen {
		if len(v) > 1 {
			dups = append(dups, k)
		}
	}
	sort.Strings(dups)
	return dups, seen
}

func checkOutputs(r *Result, s *models.Settings) {
	keys := make([]string, len(s.Outputs))
	ids := make([]int, len(s.Outputs))
	for i, o := range s.Outputs {
		keys[i], ids[i] = o.Name, o.ID
	}
	dups, seen := duplicates(keys, ids)
	for _, name := range dups {
		r.add(Conflict{
			Type:        ConflictDuplicateOutput,
			Category:    models.CategoryOutputs,
			Description: fmt.Sprintf("Duplicate output: %q (IDs: %v)", name, seen[name]),
			Items:       []string{name},
			IDs:         seen[name],
		})
	}
}

func checkWorkspaces(r *Result, s *models.Settings) {
	keys := make([]string, len(s.Workspaces))
	ids := make([]int, len(s.Workspaces))
	for i, w := range s.Workspaces {
		// workspace names are matched case-insensitively
		keys[i], ids[i] = strings.ToLower(w.Name), w.ID
	}
	dups, seen := duplicates(keys, ids)
	for _, name := range dups {
		r.add(Conflict{
			Type:        ConflictDuplicateWorkspace,
			Category:    models.CategoryWorkspaces,
			Description: fmt.Sprintf("Duplicate workspace: %q (IDs: %v)", name, seen[name]),
			Items:       []string{name},
			IDs:         seen[name],
		})
	}

	known := make(map[string]bool, len(s.Outputs))
	for _, o := range s.Outputs {
		known[o.Name] = true
	}
	for _, w := range s.Workspaces {
		if w.OpenOnOutput == "" || known[w.OpenOnOutput] {
			continue
		}
		r.add(Conflict{
			Type:        ConflictUnknownOutput,
			Severity:    SeverityWarning,
			Category:    models.CategoryWorkspaces,
			Description: fmt.Sprintf("Workspace %q opens on output %q which is not configured", w.Name, w.OpenOnOutput),
			Items:       []string{w.Name, w.OpenOnOutput},
			IDs:         []int{w.ID},
		})
	}
}

// NormalizeKey canonicalizes a key combo so modifier order and case do
// not matter: "shift+Mod+t" and "Mod+Shift+T" are the same binding.
func NormalizeKey(key string) string {
	parts := strings.Split(key, "+")
	if len(parts) == 0 {
		return ""
	}
	mods := parts[:len(parts)-1]
	for i, m := range mods {
		mods[i] = strings.ToLower(strings.TrimSpace(m))
	}
	sort.Strings(mods)
	last := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	return strings.Join(append(mods, last), "+")
}

func checkKeybindings(r *Result, s *models.Settings) {
	keys := make([]string, len(s.Keybindings))
	ids := make([]int, len(s.Keybindings))
	original := make(map[string]string)
	for i, kb := range s.Keybindings {
		keys[i], ids[i] = NormalizeKey(kb.Key), kb.ID
		if _, ok := original[keys[i]]; !ok {
			original[keys[i]] = kb.Key
		}
		if strings.TrimSpace(kb.Action) == "" {
			r.add(Conflict{
				Type:        ConflictEmptyAction,
				Category:    models.CategoryKeybindings,
				Description: fmt.Sprintf("Binding %q has no action", kb.Key),
				Items:       []string{kb.Key},
				IDs:         []int{kb.ID},
			})
		}
	}
	dups, seen := duplicates(keys, ids)
	for _, k := range dups {
		r.add(Conflict{
			Type:        ConflictDuplicateKey,
			Category:    models.CategoryKeybindings,
			Description: fmt.Sprintf("Duplicate key binding: %q (IDs: %v)", original[k], seen[k]),
			Items:       []string{original[k]},
			IDs:         seen[k],
		})
	}
}

func badRegex(r *Result, cat models.Category, ruleID int, field, expr string) {
	if expr == "" {
		return
	}
	if _, err := regexp.Compile(expr); err != nil {
		r.add(Conflict{
			Type:        ConflictInvalidRegex,
			Category:    cat,
			Description: fmt.Sprintf("Rule %d has invalid %s regex %q: %v", ruleID, field, expr, err),
			Items:       []string{expr},
			IDs:         []int{ruleID},
		})
	}
}

func checkWindowRules(r *Result, s *models.Settings) {
	for _, rule := range s.WindowRules {
		for _, list := range [][]models.WindowMatch{rule.Matches, rule.Excludes} {
			for _, m := range list {
				badRegex(r, models.CategoryWindowRules, rule.ID, "app-id", m.AppID)
				badRegex(r, models.CategoryWindowRules, rule.ID, "title", m.Title)
			}
		}
	}
}

func checkLayerRules(r *Result, s *models.Settings) {
	for _, rule := range s.LayerRules {
		for _, list := range [][]models.LayerMatch{rule.Matches, rule.Excludes} {
			for _, m := range list {
				badRegex(r, models.CategoryLayerRules, rule.ID, "namespace", m.Namespace)
			}
		}
	}
}
