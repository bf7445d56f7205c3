package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/contribwall/pkg/integrations/github"
	"github.com/matzehuels/contribwall/pkg/pipeline"
	"github.com/matzehuels/contribwall/pkg/publish"
)

// defaultTimeout bounds a complete generation run.
const defaultTimeout = 5 * time.Minute

// generateFlags carries the command-line surface of generate and preview.
type generateFlags struct {
	token      string
	configPath string
	cacheURL   string
	noCache    bool
	noCommit   bool
	timeout    time.Duration

	svgTemplatePath  string
	itemTemplatePath string

	opts pipeline.Options
}

// registerFlags wires the shared generation flags onto cmd. Flag defaults
// come from the pipeline so every entry point agrees on them.
func (f *generateFlags) registerFlags(cmd *cobra.Command) {
	f.opts = pipeline.DefaultOptions()

	cmd.Flags().StringVar(&f.token, "token", "", "GitHub API token (defaults to $GITHUB_TOKEN)")
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path to a .contribwall.toml config file")
	cmd.Flags().StringVar(&f.cacheURL, "cache-url", "", "redis URL for the avatar cache (default: local file cache)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable avatar caching")
	cmd.Flags().DurationVar(&f.timeout, "timeout", defaultTimeout, "timeout for the whole run")

	cmd.Flags().BoolVar(&f.opts.Sort, "sort", f.opts.Sort, "order users by contribution count")
	cmd.Flags().BoolVar(&f.opts.IncludeBots, "include-bots", f.opts.IncludeBots, "keep bots in the contributor section")
	cmd.Flags().BoolVar(&f.opts.IncludeCollaborators, "include-collaborators", f.opts.IncludeCollaborators, "render the collaborator section")
	cmd.Flags().StringVar((*string)(&f.opts.Affiliation), "affiliation", string(f.opts.Affiliation), "collaborator filter: all, direct, outside")
	cmd.Flags().IntVar(&f.opts.Truncate, "truncate", f.opts.Truncate, "shorten display names longer than this (0 disables)")
	cmd.Flags().IntVar(&f.opts.MaxPerSection, "max-per-section", f.opts.MaxPerSection, "cap each section's user count (0 disables)")
	cmd.Flags().StringSliceVar(&f.opts.Excluded, "exclude", nil, "logins to leave off the wall")

	cmd.Flags().IntVar(&f.opts.SVGWidth, "svg-width", f.opts.SVGWidth, "canvas width in pixels")
	cmd.Flags().IntVar(&f.opts.AvatarSize, "avatar-size", f.opts.AvatarSize, "tile edge length in pixels")
	cmd.Flags().IntVar(&f.opts.AvatarMargin, "avatar-margin", f.opts.AvatarMargin, "spacing around each tile in pixels")
	cmd.Flags().IntVar(&f.opts.NameHeight, "name-height", f.opts.NameHeight, "room for the name label in pixels")
	cmd.Flags().BoolVar(&f.opts.Round, "round", f.opts.Round, "mask avatars to circles")

	cmd.Flags().StringVar(&f.svgTemplatePath, "svg-template", f.svgTemplatePath, "path to a custom document template")
	cmd.Flags().StringVar(&f.itemTemplatePath, "item-template", f.itemTemplatePath, "path to a custom per-user template")

	cmd.Flags().StringVar(&f.opts.SVGPath, "svg-path", f.opts.SVGPath, "destination path of the wall")
	cmd.Flags().StringVar(&f.opts.CommitMessage, "message", f.opts.CommitMessage, "commit message for repository publishes")
	cmd.Flags().StringVar((*string)(&f.opts.AvatarFailure), "avatar-failure", string(f.opts.AvatarFailure), "failed avatar handling: placeholder or fail")
	cmd.Flags().IntVar(&f.opts.Concurrency, "concurrency", f.opts.Concurrency, "max parallel page and avatar fetches")
}

// resolve merges the config file (if any) under the explicitly set flags and
// loads template files. It returns the final pipeline options.
func (f *generateFlags) resolve(cmd *cobra.Command, args []string) (pipeline.Options, error) {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return pipeline.Options{}, err
	}
	if cfg != nil {
		cfg.apply(cmd, &f.opts)
	}

	if len(args) == 1 {
		f.opts.Repo = args[0]
	}
	// In a GitHub Actions job the repository comes from the environment.
	if f.opts.Repo == "" || f.opts.Repo == "/" {
		f.opts.Repo = os.Getenv("GITHUB_REPOSITORY")
	}

	if f.svgTemplatePath != "" {
		data, err := os.ReadFile(f.svgTemplatePath)
		if err != nil {
			return pipeline.Options{}, fmt.Errorf("read svg template: %w", err)
		}
		f.opts.SVGTemplate = string(data)
	}
	if f.itemTemplatePath != "" {
		data, err := os.ReadFile(f.itemTemplatePath)
		if err != nil {
			return pipeline.Options{}, fmt.Errorf("read item template: %w", err)
		}
		f.opts.ItemTemplate = string(data)
	}

	return f.opts, nil
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	flags := &generateFlags{}
	var force bool

	cmd := &cobra.Command{
		Use:   "generate [owner/repo]",
		Short: "Build the contributors wall and publish it",
		Long: `Build the contributors wall of a repository and publish it.

By default the wall is committed to the repository itself through the
contents API. With --no-commit, it is written to a local file instead.

When the published wall already renders the same user set, the run is a
no-op: no avatars are fetched and nothing is committed.

If no repository is given, your repositories are listed for interactive
selection (requires a token).

Examples:
  contribwall generate octo/widgets
  contribwall generate octo/widgets --no-commit --svg-path docs/contributors.svg
  contribwall generate                          # interactive selection`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.opts.Force = force
			return c.runGenerate(cmd, args, flags)
		},
	}

	flags.registerFlags(cmd)
	cmd.Flags().BoolVar(&flags.noCommit, "no-commit", false, "write the wall to a local file instead of committing")
	cmd.Flags().BoolVar(&force, "force", false, "publish even when the wall is unchanged")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, args []string, flags *generateFlags) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
	defer cancel()

	opts, err := flags.resolve(cmd, args)
	if err != nil {
		return err
	}

	token := githubToken(flags.token)
	client := c.newGitHubClient(ctx, token, flags.noCache, flags.cacheURL)

	if opts.Repo == "" {
		opts.Repo, err = c.pickRepository(ctx, client)
		if err != nil {
			return err
		}
	}

	var store publish.Store
	if flags.noCommit {
		store = publish.NewFileStore()
	} else {
		owner, repo, err := github.ParseRepoRef(opts.Repo)
		if err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("committing to %s requires a token (set $GITHUB_TOKEN or use --no-commit)", opts.Repo)
		}
		store = publish.NewRepoStore(client, owner, repo)
	}

	opts.Logger = c.Logger
	runner := pipeline.NewRunner(client, store, c.Logger)

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating wall for %s...", opts.Repo))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Processed %s", opts.Repo))

	c.printResult(result, opts, flags.noCommit)
	return nil
}

func (c *CLI) printResult(result *pipeline.Result, opts pipeline.Options, local bool) {
	switch result.Outcome {
	case publish.OutcomeUnchanged:
		printInfo("Wall unchanged, nothing published")
	case publish.OutcomeCreated:
		printSuccess("Created %s", opts.SVGPath)
	case publish.OutcomeUpdated:
		printSuccess("Updated %s", opts.SVGPath)
	}
	printSectionCounts(result.Counts.Contributors, result.Counts.Bots, result.Counts.Collaborators)

	if result.Outcome != publish.OutcomeUnchanged {
		printDetail("%dx%d px, %d tiles", opts.SVGWidth, result.Heights.Total, result.Counts.Total())
		if local {
			printFile(opts.SVGPath)
		}
	}
}
