package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "contribwall")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/xdg-cache/contribwall" {
		t.Errorf("cacheDir() = %q", dir)
	}
}

func TestGitHubToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")

	if got := githubToken("flag-token"); got != "flag-token" {
		t.Errorf("explicit flag should win, got %q", got)
	}
	if got := githubToken(""); got != "env-token" {
		t.Errorf("env fallback, got %q", got)
	}

	t.Setenv("GITHUB_TOKEN", "")
	if got := githubToken(""); got != "" {
		t.Errorf("no token anywhere, got %q", got)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	want := []string{"generate", "preview", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if strings.HasPrefix(sub.Use, name) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing %q", name)
		}
	}
}
