package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping end-to-end test in short mode")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not on PATH")
	}
	bin := filepath.Join(t.TempDir(), "nirify")
	out, err := exec.Command("go", "build", "-o", bin, ".").CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to build: %v\nOutput: %s", err, out)
	}
	return bin
}

// isolatedEnv points every config location into dir
func isolatedEnv(dir string) []string {
	var env []string
	for _, e := range os.Environ() {
		switch {
		case strings.HasPrefix(e, "XDG_CONFIG_HOME="),
			strings.HasPrefix(e, "HOME="),
			strings.HasPrefix(e, "NIRI_SOCKET="),
			strings.HasPrefix(e, "NIRIFY_"):
			continue
		}
		env = append(env, e)
	}
	return append(env,
		fmt.Sprintf("XDG_CONFIG_HOME=%s", dir),
		fmt.Sprintf("HOME=%s", dir),
	)
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func TestEndToEndWorkflow(t *testing.T) {
	bin := buildBinary(t)
	home := t.TempDir()
	env := isolatedEnv(home)

	niriDir := filepath.Join(home, "niri")
	if err := os.MkdirAll(niriDir, 0o755); err != nil {
		t.Fatal(err)
	}
	host := filepath.Join(niriDir, "config.kdl")
	original := "layout {\n    gaps 20\n}\nspawn-at-startup \"waybar\"\nmy-node 1\n"
	if err := os.WriteFile(host, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Log("Initializing...")
	out := runCmd(t, bin, env, "init")
	if !strings.Contains(out, "Initialized nirify") {
		t.Errorf("unexpected init output: %s", out)
	}

	if got := strings.TrimSpace(runCmd(t, bin, env, "get", "appearance.gaps")); got != "20" {
		t.Errorf("expected imported gaps 20, got %q", got)
	}

	runCmd(t, bin, env, "set", "appearance.gaps", "8")
	data, err := os.ReadFile(filepath.Join(niriDir, "nirify", "appearance.kdl"))
	if err != nil {
		t.Fatalf("Failed to read generated file: %v", err)
	}
	if !strings.Contains(string(data), "gaps 8") {
		t.Errorf("expected gaps 8 in generated file:\n%s", data)
	}

	t.Log("Merging...")
	runCmd(t, bin, env, "merge", "--yes")
	merged, err := os.ReadFile(host)
	if err != nil {
		t.Fatal(err)
	}
	if string(merged) != "include \"nirify/main.kdl\"\n\nmy-node 1\n" {
		t.Errorf("unexpected merged host config:\n%s", merged)
	}

	out = runCmd(t, bin, env, "backup", "list")
	if !strings.Contains(out, "1 total") {
		t.Errorf("expected one backup:\n%s", out)
	}

	out = runCmd(t, bin, env, "status")
	if !strings.Contains(out, "All files OK.") {
		t.Errorf("expected healthy status:\n%s", out)
	}
}

func TestUnknownFieldExitsNonZero(t *testing.T) {
	bin := buildBinary(t)
	cmd := exec.Command(bin, "get", "no.such.field")
	cmd.Env = isolatedEnv(t.TempDir())
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected failure, got output: %s", out)
	}
	if !strings.Contains(string(out), "no.such.field") {
		t.Errorf("expected the key in the error output:\n%s", out)
	}
}
