package merge

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrozenTear/Nirify-sub003/internal/backup"
	"github.com/FrozenTear/Nirify-sub003/internal/kdl"
	"github.com/FrozenTear/Nirify-sub003/internal/logger"
	"github.com/FrozenTear/Nirify-sub003/internal/storage"
	"github.com/FrozenTear/Nirify-sub003/internal/testutil"
)

const include = `include "nirify/main.kdl"`

// setup returns paths with a generated main.kdl and, when host is not
// empty, a host config holding it.
func setup(t *testing.T, host string) (storage.Paths, *backup.Manager) {
	t.Helper()
	root := t.TempDir()
	paths := storage.Paths{
		HostConfig: filepath.Join(root, "config.kdl"),
		Dir:        filepath.Join(root, "nirify"),
	}
	testutil.WriteFile(t, paths.Dir, "main.kdl", "")
	if host != "" {
		testutil.WriteFile(t, root, "config.kdl", host)
	}
	start := time.Date(2026, 2, 1, 9, 0, 0, 0, time.Local)
	tick := start
	clock := func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return paths, backup.NewManager(paths.BackupDir(), 0, logger.Discard(), backup.WithClock(clock))
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestMergeCompleteness(t *testing.T) {
	host := `layout { gaps inner=20 outer=10 } custom-node { foo "bar" }`
	paths, mgr := setup(t, host)

	res, err := SmartReplace(paths, Options{Backups: mgr, Log: logger.Discard()})
	require.NoError(t, err)
	assert.Equal(t, 1, res.ReplacedCount)
	assert.Equal(t, 1, res.PreservedCount)
	assert.True(t, res.IncludeAdded)
	require.NotEmpty(t, res.BackupPath)

	out := read(t, paths.HostConfig)
	assert.Equal(t, include+"\n\ncustom-node { foo \"bar\" }\n", out)
	assert.NotContains(t, out, "layout")
	assert.Equal(t, host, read(t, res.BackupPath))
}

func TestMergeNodesOnOneLine(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "managed first", host: "layout { gaps 4 }   custom-node 1\n", want: "custom-node 1\n"},
		{name: "managed last", host: "custom-node { foo \"bar\" } layout { gaps 4 }\n", want: "custom-node { foo \"bar\" }\n"},
		{name: "managed between", host: "a 1\nlayout { } cursor { } b 2\n", want: "a 1\nb 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Plan([]byte(tt.host), "nirify/main.kdl")
			require.NoError(t, err)
			assert.Equal(t, include+"\n\n"+tt.want, plan.Output)
		})
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	paths, mgr := setup(t, "layout {\n    gaps 8\n}\ncustom-node 1\n")

	_, err := SmartReplace(paths, Options{Backups: mgr, Log: logger.Discard()})
	require.NoError(t, err)
	after := read(t, paths.HostConfig)

	res, err := SmartReplace(paths, Options{Backups: mgr, Log: logger.Discard()})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ReplacedCount)
	assert.False(t, res.IncludeAdded)
	assert.Empty(t, res.BackupPath)
	assert.Equal(t, after, read(t, paths.HostConfig))

	backups, err := mgr.List()
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestMergeMissingFile(t *testing.T) {
	paths, mgr := setup(t, "")

	res, err := SmartReplace(paths, Options{Backups: mgr, Log: logger.Discard()})
	require.NoError(t, err)
	assert.Equal(t, Result{IncludeAdded: true, Output: include + "\n"}, res)
	assert.Equal(t, include+"\n", read(t, paths.HostConfig))

	backups, _ := mgr.List()
	assert.Empty(t, backups)
}

func TestMergeCorruptedFile(t *testing.T) {
	host := "layout {\n    gaps 8\n// never closed"
	paths, mgr := setup(t, host)

	res, err := SmartReplace(paths, Options{Backups: mgr, Log: logger.Discard()})
	require.NoError(t, err)
	require.NotEmpty(t, res.BackupPath)
	assert.Len(t, res.Warnings, 1)
	assert.True(t, res.IncludeAdded)
	assert.Equal(t, host, read(t, res.BackupPath))
	assert.Equal(t, include+"\n", read(t, paths.HostConfig))

	backups, _ := mgr.List()
	require.Len(t, backups, 1)
	assert.Equal(t, backup.ReasonCorrupt, backups[0].Reason)
}

func TestMergeDryRunWritesNothing(t *testing.T) {
	host := "cursor { xcursor-size 32; }\nfoo\n"
	paths, mgr := setup(t, host)

	res, err := SmartReplace(paths, Options{Backups: mgr, DryRun: true, Log: logger.Discard()})
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	assert.Equal(t, 1, res.ReplacedCount)
	assert.Empty(t, res.BackupPath)
	assert.Equal(t, include+"\n\nfoo\n", res.Output)
	assert.Equal(t, host, read(t, paths.HostConfig))

	backups, _ := mgr.List()
	assert.Empty(t, backups)
}

func TestMergeRequiresGeneratedFiles(t *testing.T) {
	paths, mgr := setup(t, "layout {}\n")
	require.NoError(t, os.Remove(paths.MainFile()))

	_, err := SmartReplace(paths, Options{Backups: mgr, Log: logger.Discard()})
	var me *MergeError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "precheck", me.Stage)
	assert.True(t, errors.Is(err, ErrNotGenerated))
	assert.Equal(t, "layout {}\n", read(t, paths.HostConfig))
}

func TestMergeWithoutGeneratedFilesKeepsBackupGuarantee(t *testing.T) {
	tests := []struct {
		name string
		host string
	}{
		{name: "corrupt", host: "layout { gaps 8"},
		{name: "unmanaged only", host: "custom-node 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, mgr := setup(t, tt.host)
			require.NoError(t, os.Remove(paths.MainFile()))

			res, err := SmartReplace(paths, Options{Backups: mgr, Log: logger.Discard()})
			require.NoError(t, err)
			assert.True(t, res.IncludeAdded)
			require.NotEmpty(t, res.BackupPath)
			assert.Equal(t, tt.host, read(t, res.BackupPath))
			assert.True(t, strings.HasPrefix(read(t, paths.HostConfig), include+"\n"))
		})
	}
}

func TestMergeKeepsExistingIncludeInPlace(t *testing.T) {
	host := "// mine\nbinds {\n    Mod+T { spawn \"foot\"; }\n}\ninclude \"other.kdl\"\n\n\n\ninclude \"nirify/main.kdl\"\nwindow-rule {\n}\n"
	paths, mgr := setup(t, host)

	res, err := SmartReplace(paths, Options{Backups: mgr, Log: logger.Discard()})
	require.NoError(t, err)
	assert.Equal(t, 2, res.ReplacedCount)
	assert.Equal(t, 1, res.PreservedCount)
	assert.False(t, res.IncludeAdded)
	assert.Equal(t, "include \"other.kdl\"\n\ninclude \"nirify/main.kdl\"\n", read(t, paths.HostConfig))
}

func TestPlanCompletenessInvariant(t *testing.T) {
	inputs := []string{
		"layout { gaps 1; }\ncustom 1\ninput {}\n",
		include + "\n" + include + "\nspawn-at-startup \"waybar\"\nhello\n",
		"/* block */ output \"eDP-1\" { scale 2; }\nworkspace \"a\"; workspace \"b\"\n// tail comment\n",
		"",
		"\xef\xbb\xbfprefer-no-csd\nfoo\n",
	}
	for _, in := range inputs {
		doc, err := kdl.Parse([]byte(in))
		require.NoError(t, err, in)

		plan, err := Plan([]byte(in), "nirify/main.kdl")
		require.NoError(t, err, in)

		got := append(append([]string{}, plan.DroppedNames...), plan.PreservedNames...)
		want := doc.Names()
		sort.Strings(got)
		sort.Strings(want)
		assert.Equal(t, want, got, in)

		out, err := kdl.Parse([]byte(plan.Output))
		require.NoError(t, err, plan.Output)
		names := out.Names()
		if !plan.HasInclude {
			// the include the plan added
			names = names[1:]
		}
		assert.Equal(t, strings.Join(plan.PreservedNames, ","), strings.Join(names, ","), in)
	}
}

func TestPlanPreservesUnmanagedTextVerbatim(t *testing.T) {
	in := "// keep me\nmy-node  1   2 key=\"v\" {\n  child   // odd spacing\n}\nlayout {\n}\n"
	plan, err := Plan([]byte(in), "nirify/main.kdl")
	require.NoError(t, err)
	assert.Equal(t, include+"\n\n// keep me\nmy-node  1   2 key=\"v\" {\n  child   // odd spacing\n}\n", plan.Output)
	assert.Equal(t, []string{"layout"}, plan.DroppedNames)
}

func TestPlanAbsoluteTarget(t *testing.T) {
	plan, err := Plan([]byte("include \"/srv/settings/main.kdl\"\n"), "/srv/settings/main.kdl")
	require.NoError(t, err)
	assert.True(t, plan.NoOp())
}
