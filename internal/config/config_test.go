package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FrozenTear/Nirify-sub003/internal/constants"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
	"github.com/FrozenTear/Nirify-sub003/internal/testutil"
)

func TestLoadPreferencesMissingFile(t *testing.T) {
	p, warnings, err := LoadPreferences(filepath.Join(t.TempDir(), "preferences.toml"))
	if err != nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings %v", warnings)
	}
	if p != DefaultPreferences() {
		t.Errorf("expected defaults, got %+v", p)
	}
}

func TestLegacyThemeIndexMigration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    models.Theme
	}{
		{"system", "theme_index = 0\n", models.ThemeSystem},
		{"light", "theme_index = 1\n", models.ThemeLight},
		{"dark", "theme_index = 2\n", models.ThemeDark},
		{"unknown", "theme_index = 7\n", models.ThemeSystem},
		{"negative", "theme_index = -1\n", models.ThemeSystem},
		{"new key wins", "theme = \"light\"\ntheme_index = 2\n", models.ThemeLight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, t.TempDir(), "preferences.toml", tt.content)
			p, warnings, err := LoadPreferences(path)
			if err != nil {
				t.Fatalf("LoadPreferences failed: %v", err)
			}
			if len(warnings) != 0 {
				t.Errorf("unexpected warnings %v", warnings)
			}
			if p.Theme != tt.want {
				t.Errorf("expected theme %s, got %s", tt.want, p.Theme)
			}
			if p.ThemeIndex != nil {
				t.Error("expected legacy field to be cleared")
			}
		})
	}
}

func TestSaveDropsLegacyKey(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "preferences.toml", "theme_index = 2\nreload_on_save = false\n")
	p, _, err := LoadPreferences(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := SavePreferences(path, p); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "theme_index") {
		t.Errorf("expected legacy key to be dropped:\n%s", data)
	}
	again, _, err := LoadPreferences(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.Theme != models.ThemeDark || again.ReloadOnSave {
		t.Errorf("expected dark theme and reload off, got %+v", again)
	}
}

func TestLoadPreferencesCorrectsValues(t *testing.T) {
	content := "theme = \"purple\"\nreload_interval_ms = 5\nmax_backups = 0\nshiny = true\n"
	path := testutil.WriteFile(t, t.TempDir(), "preferences.toml", content)
	p, warnings, err := LoadPreferences(path)
	if err != nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}
	if p.Theme != models.ThemeSystem || p.ReloadIntervalMs != 100 || p.MaxBackups != 1 {
		t.Errorf("unexpected corrected preferences %+v", p)
	}
	if len(warnings) != 4 {
		t.Errorf("expected 4 warnings, got %v", warnings)
	}
}

func TestLoadPreferencesInvalidTOML(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "preferences.toml", "theme = \n")
	p, _, err := LoadPreferences(path)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if p != DefaultPreferences() {
		t.Error("expected defaults alongside the error")
	}
}

func TestResolvePrecedence(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv(constants.EnvConfigDir, "")
	t.Setenv(constants.EnvHostConfig, "")
	t.Setenv(constants.EnvDebug, "")

	res, err := Resolve(Flags{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Paths.HostConfig != filepath.Join(xdg, "niri", "config.kdl") {
		t.Errorf("unexpected default host %s", res.Paths.HostConfig)
	}
	if res.Paths.Dir != filepath.Join(xdg, "niri", "nirify") {
		t.Errorf("unexpected default dir %s", res.Paths.Dir)
	}

	t.Setenv(constants.EnvHostConfig, "/env/niri/config.kdl")
	t.Setenv(constants.EnvDebug, "true")
	res, _ = Resolve(Flags{})
	if res.Paths.HostConfig != "/env/niri/config.kdl" || res.Paths.Dir != "/env/niri/nirify" || !res.Debug {
		t.Errorf("expected environment to apply, got %+v", res)
	}

	res, _ = Resolve(Flags{HostConfig: "/flag/config.kdl", ConfigDir: "/flag/gen"})
	if res.Paths.HostConfig != "/flag/config.kdl" || res.Paths.Dir != "/flag/gen" {
		t.Errorf("expected flags to win, got %+v", res.Paths)
	}
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	gen := filepath.Join(dir, "gen")
	testutil.WriteFile(t, gen, ".env", constants.EnvHostConfig+"=/dotenv/config.kdl\n"+constants.EnvNiriSocket+"=/run/dotenv.sock\n")
	t.Setenv(constants.EnvConfigDir, gen)
	t.Setenv(constants.EnvHostConfig, "/real/config.kdl")
	t.Setenv(constants.EnvNiriSocket, "")
	os.Unsetenv(constants.EnvNiriSocket)

	res, err := Resolve(Flags{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Paths.HostConfig != "/real/config.kdl" {
		t.Errorf("expected process environment to win, got %s", res.Paths.HostConfig)
	}
	if res.Env.NiriSocket != "/run/dotenv.sock" {
		t.Errorf("expected socket from .env, got %q", res.Env.NiriSocket)
	}
}
