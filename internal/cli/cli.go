// Package cli implements the contribwall command-line interface.
//
// This package provides commands for generating the contributors wall of a
// GitHub repository, previewing what a run would publish, and managing the
// local avatar cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Build the wall and publish it (to the repository or a file)
//   - preview: Run the pipeline without publishing and report what would change
//   - cache: Manage the local avatar cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/contribwall/pkg/buildinfo"
	"github.com/matzehuels/contribwall/pkg/cache"
	"github.com/matzehuels/contribwall/pkg/integrations/github"
)

const (
	// appName is the application name used for directories and display.
	appName = "contribwall"

	// avatarCacheTTL bounds how long fetched avatar bytes are reused.
	avatarCacheTTL = 24 * time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "contribwall",
		Short:         "Contribwall renders a repository's contributors as an SVG wall",
		Long:          `Contribwall collects the contributors, bots, and collaborators of a GitHub repository and renders them as an SVG avatar wall, publishing the result back to the repository or to a local file.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true, // main.go prints errors with their code
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newGitHubClient builds the API client used by every command. Avatar bytes
// are cached on disk by default; --cache-url switches to redis and --no-cache
// disables caching entirely.
func (c *CLI) newGitHubClient(ctx context.Context, token string, noCache bool, cacheURL string) *github.Client {
	return github.NewClient(token, c.newCache(ctx, noCache, cacheURL), avatarCacheTTL)
}

func (c *CLI) newCache(ctx context.Context, noCache bool, cacheURL string) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if cacheURL != "" {
		redis, err := cache.NewRedisCache(ctx, cacheURL)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, continuing without cache", "err", err)
			return cache.NewNullCache()
		}
		return cache.NewScoped(redis, appName)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, continuing without cache", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/contribwall/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// githubToken resolves the API token: an explicit flag wins, then the
// GITHUB_TOKEN environment variable. Empty means unauthenticated.
func githubToken(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("GITHUB_TOKEN")
}
