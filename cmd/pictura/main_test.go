package main

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pictura/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	imageDir   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	imageDir := filepath.Join(base, "photos")
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		t.Fatalf("mkdir photos: %v", err)
	}

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
library_db = %q
log_dir = %q

[library]
batch_pause_millis = 0

[ollama]
enabled = false
rate_limit_delay = 0.0
`,
		filepath.Join(base, "library.db"),
		filepath.Join(base, "logs"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{baseDir: base, configPath: configPath, imageDir: imageDir}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestCLIScanAndStats(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WritePNG(t, env.imageDir, "a.png", 16, 16, color.White)
	testsupport.WritePNG(t, env.imageDir, "b.png", 16, 16, color.Black)

	out, _, err := runCLI(t, env.configPath, "scan", env.imageDir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Added")

	// Rescanning adds nothing new.
	out, _, err = runCLI(t, env.configPath, "scan", env.imageDir)
	if err != nil {
		t.Fatalf("rescan: %v", err)
	}
	requireContains(t, out, "Known")

	out, _, err = runCLI(t, env.configPath, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "Images:         2")
	requireContains(t, out, "png")
}

func TestCLIProcessAndShow(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WritePNG(t, env.imageDir, "wide.png", 30, 10, color.White)

	out, _, err := runCLI(t, env.configPath, "process", path)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	requireContains(t, out, "landscape/panoramic")
	requireContains(t, out, "local heuristic")
	requireContains(t, out, "Cached:      yes")

	out, _, err = runCLI(t, env.configPath, "show", path)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "landscape/panoramic")

	_, _, err = runCLI(t, env.configPath, "show", filepath.Join(env.imageDir, "missing.png"))
	if err == nil {
		t.Fatal("expected error for unknown image")
	}
}

func TestCLIBatchAndSearch(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WritePNG(t, env.imageDir, "one.png", 30, 10, color.White)
	testsupport.WritePNG(t, env.imageDir, "two.png", 10, 30, color.Black)

	out, _, err := runCLI(t, env.configPath, "batch", env.imageDir)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	requireContains(t, out, "Classified 2 of 2 images")

	out, _, err = runCLI(t, env.configPath, "search", "--category", "landscape/panoramic")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, "one.png")
	if strings.Contains(out, "two.png") {
		t.Fatalf("portrait image matched landscape search:\n%s", out)
	}

	_, _, err = runCLI(t, env.configPath, "search")
	if err == nil {
		t.Fatal("expected error for empty search filter")
	}
}

func TestCLIConfigInit(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// Without --overwrite a second init refuses.
	_, _, err = runCLI(t, "", "config", "init", "--path", target)
	if err == nil {
		t.Fatal("expected error when config already exists")
	}
}
